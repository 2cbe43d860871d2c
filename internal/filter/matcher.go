package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// scraped text shorter than this is replaced by the provider description
	MinScrapedChars = 100
	// anything shorter than this is not worth scoring
	MinContentChars = 50
)

const (
	SourceScraped     = "scraped"
	SourceDescription = "provider_description"
)

// MatchesCompany reports whether a result's company name belongs to the
// company that was searched for
func MatchesCompany(resultCompany, target string) bool {
	target = Normalize(target)
	if target == "" {
		return true
	}
	return strings.Contains(Normalize(resultCompany), target)
}

// ChooseContent picks the text to score: the scraped page when it is long
// enough, otherwise the provider description. ok is false when neither is
// usable.
func ChooseContent(scraped, title, description string) (content, source string, ok bool) {
	scraped = strings.TrimSpace(scraped)
	if utf8.RuneCountInString(scraped) >= MinScrapedChars {
		return scraped, SourceScraped, true
	}

	content = scraped
	if description = strings.TrimSpace(description); description != "" {
		content = fmt.Sprintf("Job Title: %s\n\n%s", title, description)
		source = SourceDescription
	}

	if utf8.RuneCountInString(content) < MinContentChars {
		return content, source, false
	}
	if source == "" {
		source = SourceScraped
	}
	return content, source, true
}
