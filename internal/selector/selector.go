// Package selector picks the URL most likely to be the employer's own job
// posting out of a search result, skipping job aggregators.
package selector

import (
	"net/url"
	"strings"

	"go-jobscout/internal/models"
)

type Provenance string

const (
	DirectLink        Provenance = "direct-link"
	AlternateOption   Provenance = "alternate-option"
	RelatedLink       Provenance = "related-link"
	ShareLinkFallback Provenance = "share-link-fallback"
	None              Provenance = "none"
)

// AggregatorDomains are job boards whose pages never count as employer pages
var AggregatorDomains = []string{
	"indeed.com",
	"linkedin.com",
	"naukri.com",
	"monster.com",
	"glassdoor.com",
	"ziprecruiter.com",
	"shine.com",
	"timesjobs.com",
	"instahyre.com",
	"hirist.com",
	"foundit.in",
	"apna.co",
}

var (
	careerKeywords = []string{"career", "job", "hiring", "work-with-us", "join", "opportunity"}
	jobIndicators  = []string{"job", "position", "opening", "jid=", "jobid="}
)

// Selection is the chosen URL and the rule that produced it. URL is empty
// when Provenance is None.
type Selection struct {
	URL        string     `json:"url"`
	Provenance Provenance `json:"provenance"`
}

func (s Selection) Found() bool {
	return s.Provenance != None && s.URL != ""
}

// IsAggregator reports whether the URL's host belongs to a known job board
func IsAggregator(rawURL string) bool {
	host := hostOf(rawURL)
	for _, domain := range AggregatorDomains {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}

// IsEmployerPage is true for non-aggregator URLs that mention a career keyword
// anywhere in the URL. Ambiguous URLs are rejected.
func IsEmployerPage(rawURL string) bool {
	if IsAggregator(rawURL) {
		return false
	}
	return containsAny(strings.ToLower(rawURL), careerKeywords)
}

// Select walks the candidate's links in priority order and returns the first
// employer page: direct apply link, apply options, job-specific related
// links, then the share URL.
func Select(candidate models.JobCandidate) Selection {
	if link := strings.TrimSpace(candidate.ApplyLink); link != "" && IsEmployerPage(link) {
		return Selection{URL: link, Provenance: DirectLink}
	}

	for _, option := range candidate.ApplyOptions {
		if link := strings.TrimSpace(option.Link); link != "" && IsEmployerPage(link) {
			return Selection{URL: link, Provenance: AlternateOption}
		}
	}

	for _, related := range candidate.RelatedLinks {
		link := strings.TrimSpace(related.Link)
		if link == "" || !IsEmployerPage(link) {
			continue
		}
		if containsAny(strings.ToLower(link), jobIndicators) {
			return Selection{URL: link, Provenance: RelatedLink}
		}
	}

	// share URLs usually point back at the provider's own listing
	if link := strings.TrimSpace(candidate.ShareURL); link != "" && IsEmployerPage(link) {
		return Selection{URL: link, Provenance: ShareLinkFallback}
	}

	return Selection{Provenance: None}
}

// Annotate records the selection on the candidate. When nothing was selected
// the fallback (usually the company's careers page) is used as the URL while
// the source stays "none".
func Annotate(candidate *models.JobCandidate, sel Selection, fallback string) {
	candidate.URLSource = string(sel.Provenance)
	if sel.Found() {
		candidate.CareerPageURL = sel.URL
		return
	}
	candidate.CareerPageURL = fallback
}

func hostOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Host)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
