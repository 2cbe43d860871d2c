// Package pipeline runs one job discovery session: find candidates, check
// robots.txt, fetch, score and keep the good matches.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobscout/internal/companies"
	"go-jobscout/internal/fetcher"
	"go-jobscout/internal/filter"
	"go-jobscout/internal/models"
	"go-jobscout/internal/profile"

	"golang.org/x/time/rate"
)

var (
	ErrNoResults    = errors.New("no jobs found")
	ErrEmptyContent = errors.New("content too short to analyze")
)

const DefaultJobInterval = time.Second

type Finder interface {
	SearchCompanies(ctx context.Context, list []companies.Company, title, location string, maxCompanies, perCompany int) ([]models.JobCandidate, error)
	SearchBySkills(ctx context.Context, title string, skills []string, years int, location string, maxResults int) ([]models.JobCandidate, error)
}

type Scorer interface {
	Score(ctx context.Context, jobText, profile string) models.Analysis
}

type SeenStore interface {
	IsSeen(url string) bool
	Add(urls []string)
}

type Runner struct {
	finder      Finder
	fetcher     fetcher.Fetcher
	scorer      Scorer
	seen        SeenStore
	jobInterval time.Duration
	now         func() time.Time
}

type Option func(*Runner)

func WithSeenStore(s SeenStore) Option {
	return func(r *Runner) { r.seen = s }
}

// WithJobInterval spaces out job analyses; <= 0 disables pacing
func WithJobInterval(d time.Duration) Option {
	return func(r *Runner) { r.jobInterval = d }
}

func NewRunner(finder Finder, f fetcher.Fetcher, scorer Scorer, opts ...Option) *Runner {
	r := &Runner{
		finder:      finder,
		fetcher:     f,
		scorer:      scorer,
		jobInterval: DefaultJobInterval,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one session. It returns the report together with
// ErrNoResults when discovery finds nothing, or the context error when
// canceled part way; the report then holds what was done so far.
func (r *Runner) Run(ctx context.Context, params Params, prof *profile.Profile) (*Report, error) {
	session := NewSessionLog()
	report := &Report{
		Params:    params,
		Profile:   prof.Source,
		Skills:    profile.SkillsOrFallback(prof.Skills),
		StartedAt: r.now(),
	}
	defer func() {
		report.FinishedAt = r.now()
		report.Log = session.Lines()
	}()

	session.Section("JOB SEARCH SESSION STARTED")
	session.Info("Search Parameters: Title=%s, Location=%s, Mode=%s, Tier=%s", params.JobTitle, params.Location, params.Mode, params.CompanyTier)
	session.Info("Settings: Max Companies=%d, Min Score=%d", params.MaxCompanies, params.MinScore)
	session.Info("Profile: %s (%d chars), skills: %v", prof.Source, len(prof.Text), report.Skills)

	candidates, err := r.discover(ctx, params, report.Skills, session)
	report.Candidates = len(candidates)
	if err != nil {
		session.Error("Search failed: %v", err)
		return report, err
	}
	if len(candidates) == 0 {
		session.Warn("No jobs found from search")
		return report, ErrNoResults
	}
	session.Info("Search complete: Found %d total job postings", len(candidates))

	limiter := rate.NewLimiter(rate.Inf, 1)
	if r.jobInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(r.jobInterval), 1)
	}

	var analyzedURLs []string
	defer func() {
		if r.seen != nil && len(analyzedURLs) > 0 {
			r.seen.Add(analyzedURLs)
		}
	}()

	for i, job := range candidates {
		if err := wait(ctx, limiter); err != nil {
			return report, err
		}

		url := job.CareerPageURL
		session.Info("Job %d/%d: %s @ %s", i+1, len(candidates), job.Title, job.CompanyName)
		session.Info("  URL (%s): %s", job.URLSource, orNone(url))

		if params.SkipSeen && r.seen != nil && url != "" && r.seen.IsSeen(url) {
			session.Info("  ⏭️ Already seen, skipping")
			report.Skipped = append(report.Skipped, skipOf(job, SkipSeen))
			continue
		}

		content, source, err := r.content(ctx, job, session)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			reason := SkipShortContent
			if errors.Is(err, fetcher.ErrBlockedByRobots) {
				reason = SkipRobots
			}
			session.Warn("  SKIPPED: %v", err)
			report.Skipped = append(report.Skipped, skipOf(job, reason))
			continue
		}

		analysis := r.scorer.Score(ctx, content, prof.Text)
		report.Analyzed++
		if url != "" {
			analyzedURLs = append(analyzedURLs, url)
		}
		session.Info("  AI returned score: %d/100 - %s", analysis.MatchScore, analysis.Reason)

		if analysis.MatchScore < params.MinScore {
			session.Info("  ⏭️ Score too low (%d < %d)", analysis.MatchScore, params.MinScore)
			continue
		}

		session.Logf(LevelSuccess, "  ✅ GOOD MATCH! (score %d >= threshold %d)", analysis.MatchScore, params.MinScore)
		report.Matches = append(report.Matches, matchOf(job, analysis, source))
	}

	session.Section(fmt.Sprintf("SESSION ENDED - %d MATCHES", len(report.Matches)))
	return report, nil
}

func (r *Runner) discover(ctx context.Context, params Params, skills []string, session *SessionLog) ([]models.JobCandidate, error) {
	switch params.Mode {
	case ModeSkills:
		session.Info("Searching by skills and experience...")
		return r.finder.SearchBySkills(ctx, params.JobTitle, skills, params.YearsExperience, params.Location, params.MaxResults)
	case ModeCompanies, "":
		tier := companies.ParseTier(params.CompanyTier)
		list := companies.ByTier(tier)
		session.Info("Loaded %s tier: %d companies", tier, len(list))
		return r.finder.SearchCompanies(ctx, list, params.JobTitle, params.Location, params.MaxCompanies, params.JobsPerCompany)
	default:
		return nil, fmt.Errorf("unknown run mode %q", params.Mode)
	}
}

// content fetches the job page and falls back to the provider description
func (r *Runner) content(ctx context.Context, job models.JobCandidate, session *SessionLog) (string, string, error) {
	var scraped string
	if url := job.CareerPageURL; url != "" {
		text, err := r.fetcher.Fetch(ctx, url)
		switch {
		case errors.Is(err, fetcher.ErrBlockedByRobots):
			return "", "", err
		case err != nil:
			if ctx.Err() != nil {
				return "", "", ctx.Err()
			}
			session.Warn("  ⚠️ Scraping failed: %v", err)
		default:
			scraped = text
			session.Info("  Scraped %d characters from job page", len(text))
		}
	}

	content, source, ok := filter.ChooseContent(scraped, job.Title, job.Description)
	if !ok {
		return "", "", fmt.Errorf("%w (%d chars)", ErrEmptyContent, len(content))
	}
	session.Info("  Content source: %s, length: %d", source, len(content))
	return content, source, nil
}

// wait blocks for the limiter's next slot. Unlike Limiter.Wait it does not
// refuse up front when the slot lies past the context deadline.
func wait(ctx context.Context, limiter *rate.Limiter) error {
	res := limiter.Reserve()
	delay := res.Delay()
	if delay == 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		res.Cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func matchOf(job models.JobCandidate, analysis models.Analysis, source string) models.Match {
	url := job.CareerPageURL
	if url == "" {
		url = job.ShareURL
	}
	if url == "" {
		url = "#"
	}

	apply := url
	if analysis.ApplyLink != nil && *analysis.ApplyLink != "" {
		apply = *analysis.ApplyLink
	}

	return models.Match{
		Title:         job.Title,
		Company:       job.CompanyName,
		Location:      orDefault(job.Location, "Unknown"),
		Score:         analysis.MatchScore,
		Reason:        analysis.Reason,
		URL:           url,
		URLSource:     job.URLSource,
		ApplyLink:     apply,
		ContentSource: source,
	}
}

func skipOf(job models.JobCandidate, reason string) Skip {
	return Skip{Title: job.Title, Company: job.CompanyName, URL: job.CareerPageURL, Reason: reason}
}

func orNone(s string) string {
	return orDefault(s, "No URL")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
