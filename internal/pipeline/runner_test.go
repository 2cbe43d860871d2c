package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go-jobscout/internal/companies"
	"go-jobscout/internal/config"
	"go-jobscout/internal/fetcher"
	"go-jobscout/internal/models"
	"go-jobscout/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	jobs      []models.JobCandidate
	err       error
	companies []companies.Company
	skills    []string
	mode      string
}

func (f *fakeFinder) SearchCompanies(_ context.Context, list []companies.Company, _, _ string, _, _ int) ([]models.JobCandidate, error) {
	f.mode = "companies"
	f.companies = list
	return f.jobs, f.err
}

func (f *fakeFinder) SearchBySkills(_ context.Context, _ string, skills []string, _ int, _ string, _ int) ([]models.JobCandidate, error) {
	f.mode = "skills"
	f.skills = skills
	return f.jobs, f.err
}

type fakeFetcher struct {
	pages   map[string]string
	blocked map[string]bool
	calls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if f.blocked[url] {
		return "", fmt.Errorf("%w: %s", fetcher.ErrBlockedByRobots, url)
	}
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("timeout")
	}
	return page, nil
}

type fakeScorer struct {
	scores map[string]int
	link   *string
	texts  []string
}

func (s *fakeScorer) Score(_ context.Context, text, _ string) models.Analysis {
	s.texts = append(s.texts, text)
	for marker, score := range s.scores {
		if strings.Contains(text, marker) {
			return models.Analysis{MatchScore: score, Reason: "because " + marker, ApplyLink: s.link}
		}
	}
	return models.Analysis{Reason: "unknown"}
}

type memorySeen map[string]bool

func (m memorySeen) IsSeen(url string) bool { return m[url] }

func (m memorySeen) Add(urls []string) {
	for _, u := range urls {
		m[u] = true
	}
}

func page(marker string) string {
	return marker + " " + strings.Repeat("responsibilities and requirements ", 5)
}

func testProfile() *profile.Profile {
	return profile.FromText("Go developer with Docker", "test")
}

func TestRun_CompaniesMode(t *testing.T) {
	finder := &fakeFinder{jobs: []models.JobCandidate{
		{Title: "Great", CompanyName: "Acme", Location: "Pune", CareerPageURL: "https://acme.com/careers/1", URLSource: "direct-link"},
		{Title: "Blocked", CompanyName: "Beta", CareerPageURL: "https://beta.io/careers/2", URLSource: "direct-link"},
		{Title: "Weak", CompanyName: "Gamma", CareerPageURL: "https://gamma.io/jobs/3", URLSource: "alternate-option"},
		{Title: "Desc", CompanyName: "Delta", CareerPageURL: "https://delta.io/careers/4", URLSource: "related-link",
			Description: "DESCMARKER we need a Go engineer to build billing services and APIs."},
		{Title: "Empty", CompanyName: "Eps", CareerPageURL: "https://eps.io/careers/5"},
	}}
	fetch := &fakeFetcher{
		pages: map[string]string{
			"https://acme.com/careers/1": page("GREAT"),
			"https://gamma.io/jobs/3":    page("WEAK"),
			"https://delta.io/careers/4": "Loading...",
			"https://eps.io/careers/5":   "",
		},
		blocked: map[string]bool{"https://beta.io/careers/2": true},
	}
	scorer := &fakeScorer{scores: map[string]int{"GREAT": 90, "WEAK": 40, "DESCMARKER": 70}}
	seen := memorySeen{}

	runner := NewRunner(finder, fetch, scorer, WithSeenStore(seen), WithJobInterval(0))
	params := Params{Mode: ModeCompanies, CompanyTier: "high", MinScore: 70, JobTitle: "Go Developer", Location: "India"}

	report, err := runner.Run(context.Background(), params, testProfile())
	require.NoError(t, err)

	assert.Equal(t, "companies", finder.mode)
	assert.Equal(t, companies.ByTier(companies.High), finder.companies)
	assert.Equal(t, 5, report.Candidates)
	assert.Equal(t, 3, report.Analyzed)

	require.Len(t, report.Matches, 2)
	great := report.Matches[0]
	assert.Equal(t, "Great", great.Title)
	assert.Equal(t, 90, great.Score)
	assert.Equal(t, "https://acme.com/careers/1", great.URL)
	assert.Equal(t, "https://acme.com/careers/1", great.ApplyLink)
	assert.Equal(t, "scraped", great.ContentSource)
	assert.Equal(t, "Pune", great.Location)

	desc := report.Matches[1]
	assert.Equal(t, "provider_description", desc.ContentSource)
	assert.Equal(t, "Unknown", desc.Location)
	assert.Equal(t, "related-link", desc.URLSource)

	require.Len(t, report.Skipped, 2)
	assert.Equal(t, Skip{Title: "Blocked", Company: "Beta", URL: "https://beta.io/careers/2", Reason: SkipRobots}, report.Skipped[0])
	assert.Equal(t, SkipShortContent, report.Skipped[1].Reason)

	assert.True(t, seen["https://acme.com/careers/1"])
	assert.True(t, seen["https://gamma.io/jobs/3"])
	assert.False(t, seen["https://beta.io/careers/2"])

	assert.False(t, report.FinishedAt.Before(report.StartedAt))
	assert.NotEmpty(t, report.Log)
	assert.Contains(t, report.Log[1], "INFO: JOB SEARCH SESSION STARTED")
}

func TestRun_SkipsSeenAndUsesAnalysisLink(t *testing.T) {
	link := "https://acme.com/apply/1"
	finder := &fakeFinder{jobs: []models.JobCandidate{
		{Title: "Old", CareerPageURL: "https://acme.com/careers/old"},
		{Title: "New", CareerPageURL: "https://acme.com/careers/new"},
	}}
	fetch := &fakeFetcher{pages: map[string]string{
		"https://acme.com/careers/old": page("OLD"),
		"https://acme.com/careers/new": page("NEW"),
	}}
	scorer := &fakeScorer{scores: map[string]int{"OLD": 95, "NEW": 95}, link: &link}
	seen := memorySeen{"https://acme.com/careers/old": true}

	runner := NewRunner(finder, fetch, scorer, WithSeenStore(seen), WithJobInterval(0))
	report, err := runner.Run(context.Background(), Params{Mode: ModeSkills, SkipSeen: true, MinScore: 70}, testProfile())
	require.NoError(t, err)

	assert.Equal(t, "skills", finder.mode)
	assert.Equal(t, []string{"Go", "Docker"}, finder.skills)
	assert.Equal(t, []string{"https://acme.com/careers/new"}, fetch.calls)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, link, report.Matches[0].ApplyLink)
	assert.Equal(t, SkipSeen, report.Skipped[0].Reason)
}

func TestRun_NoURLUsesDescriptionAndShareURL(t *testing.T) {
	finder := &fakeFinder{jobs: []models.JobCandidate{
		{Title: "Remote Go", ShareURL: "https://www.google.com/search?ibp=htl;jobs",
			Description: "GOODFIT remote backend role building APIs in Go for a fintech team."},
	}}
	fetch := &fakeFetcher{}
	scorer := &fakeScorer{scores: map[string]int{"GOODFIT": 80}}

	report, err := NewRunner(finder, fetch, scorer, WithJobInterval(0)).Run(context.Background(), Params{Mode: ModeSkills, MinScore: 70}, testProfile())
	require.NoError(t, err)
	assert.Empty(t, fetch.calls)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, "https://www.google.com/search?ibp=htl;jobs", report.Matches[0].URL)
	assert.True(t, strings.HasPrefix(scorer.texts[0], "Job Title: Remote Go\n\n"))
}

func TestRun_NoResults(t *testing.T) {
	report, err := NewRunner(&fakeFinder{}, &fakeFetcher{}, &fakeScorer{}).Run(context.Background(), Params{Mode: ModeCompanies}, testProfile())
	assert.ErrorIs(t, err, ErrNoResults)
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Candidates)
}

func TestRun_SearchError(t *testing.T) {
	finder := &fakeFinder{err: errors.New("quota exceeded")}
	_, err := NewRunner(finder, &fakeFetcher{}, &fakeScorer{}).Run(context.Background(), Params{Mode: ModeSkills}, testProfile())
	assert.ErrorContains(t, err, "quota exceeded")

	_, err = NewRunner(finder, &fakeFetcher{}, &fakeScorer{}).Run(context.Background(), Params{Mode: "astrology"}, testProfile())
	assert.ErrorContains(t, err, "unknown run mode")
}

func TestRun_CanceledBetweenJobs(t *testing.T) {
	finder := &fakeFinder{jobs: []models.JobCandidate{
		{Title: "One", CareerPageURL: "https://acme.com/careers/1"},
		{Title: "Two", CareerPageURL: "https://acme.com/careers/2"},
	}}
	fetch := &fakeFetcher{pages: map[string]string{
		"https://acme.com/careers/1": page("ONE"),
		"https://acme.com/careers/2": page("TWO"),
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	runner := NewRunner(finder, fetch, &fakeScorer{}, WithJobInterval(time.Hour))
	report, err := runner.Run(ctx, Params{Mode: ModeSkills}, testProfile())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, report.Analyzed)
}

func TestParamsFromConfig(t *testing.T) {
	p := ParamsFromConfig(config.RunConfig{Mode: "skills", JobTitle: "SRE", MinScore: 80, SkipSeen: true, JobsPerCompany: 2})
	assert.Equal(t, ModeSkills, p.Mode)
	assert.Equal(t, "SRE", p.JobTitle)
	assert.Equal(t, 80, p.MinScore)
	assert.True(t, p.SkipSeen)
	assert.Equal(t, 2, p.JobsPerCompany)
}

func TestSessionLog(t *testing.T) {
	s := NewSessionLog()
	s.now = func() time.Time { return time.Date(2026, 1, 1, 15, 4, 5, 0, time.UTC) }

	s.Section("START")
	s.Warn("careful %d", 1)

	lines := s.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "[15:04:05] INFO: START", lines[1])
	assert.Equal(t, "[15:04:05] WARN: careful 1", lines[3])
	assert.Equal(t, strings.Join(lines, "\n"), s.String())
}
