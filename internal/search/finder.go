package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-jobscout/internal/companies"
	"go-jobscout/internal/filter"
	"go-jobscout/internal/models"
	"go-jobscout/internal/profile"
	"go-jobscout/internal/selector"
)

// Finder turns search results into candidates annotated with the employer
// URL to fetch
type Finder struct {
	provider Provider
	maxAge   time.Duration
	now      func() time.Time
}

// NewFinder drops postings older than maxAge; 0 keeps everything
func NewFinder(provider Provider, maxAge time.Duration) *Finder {
	return &Finder{provider: provider, maxAge: maxAge, now: time.Now}
}

// CompanyQuery is "<title> at <company> <location>", or "jobs at ..." without a title
func CompanyQuery(company, title, location string) string {
	if strings.TrimSpace(title) == "" {
		return join("jobs at", company, location)
	}
	return join(title, "at", company, location)
}

// SkillsQuery is "<level> <title> <top 3 skills> <location>"
func SkillsQuery(title string, skills []string, years int, location string) string {
	if len(skills) > 3 {
		skills = skills[:3]
	}
	return join(profile.Level(years), title, strings.Join(skills, " "), location)
}

func join(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// SearchCompany returns the results that belong to company
func (f *Finder) SearchCompany(ctx context.Context, company, title, location string) ([]models.JobCandidate, error) {
	jobs, err := f.provider.Search(ctx, CompanyQuery(company, title, location), location)
	if err != nil {
		return nil, fmt.Errorf("search at %s: %w", company, err)
	}

	var kept []models.JobCandidate
	for _, job := range jobs {
		if !filter.MatchesCompany(job.CompanyName, company) {
			continue
		}
		if !filter.ShouldIncludeJob(job, f.now(), f.maxAge) {
			continue
		}
		kept = append(kept, job)
	}
	log.Printf("📋 %d/%d results belong to %s", len(kept), len(jobs), company)
	return kept, nil
}

// SearchCompanies searches the first maxCompanies companies and keeps up to
// perCompany results each. Every candidate gets a URL: the selected employer
// page, or the company's careers page when nothing qualified. A failed
// company is logged and skipped.
func (f *Finder) SearchCompanies(ctx context.Context, list []companies.Company, title, location string, maxCompanies, perCompany int) ([]models.JobCandidate, error) {
	if maxCompanies > 0 && len(list) > maxCompanies {
		list = list[:maxCompanies]
	}
	log.Printf("🏢 Searching %d companies for '%s' in '%s'", len(list), title, location)

	var all []models.JobCandidate
	for i, c := range list {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		log.Printf("🏢 Company %d/%d: %s (%s)", i+1, len(list), c.Name, c.Careers)

		jobs, err := f.SearchCompany(ctx, c.Name, title, location)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			log.Printf("⚠️ %v", err)
			continue
		}
		if len(jobs) == 0 {
			log.Printf("ℹ️ No jobs found at %s", c.Name)
			continue
		}

		if perCompany > 0 && len(jobs) > perCompany {
			jobs = jobs[:perCompany]
		}
		for _, job := range jobs {
			job.CompanyCareerURL = c.Careers
			sel := selector.Select(job)
			selector.Annotate(&job, sel, c.Careers)
			log.Printf("  🔗 %s: %s (%s)", job.Title, job.CareerPageURL, job.URLSource)
			all = append(all, job)
		}
	}

	log.Printf("✅ Search complete: %d jobs from %d companies", len(all), len(list))
	return all, nil
}

// SearchBySkills runs a single query built from the profile and keeps only
// results with an employer page
func (f *Finder) SearchBySkills(ctx context.Context, title string, skills []string, years int, location string, maxResults int) ([]models.JobCandidate, error) {
	query := SkillsQuery(title, skills, years, location)
	log.Printf("🎯 Advanced search query: %s", query)

	jobs, err := f.provider.Search(ctx, query, location)
	if err != nil {
		return nil, fmt.Errorf("skills search: %w", err)
	}
	if maxResults > 0 && len(jobs) > maxResults {
		jobs = jobs[:maxResults]
	}

	var kept []models.JobCandidate
	for _, job := range jobs {
		if !filter.ShouldIncludeJob(job, f.now(), f.maxAge) {
			continue
		}
		sel := selector.Select(job)
		if !sel.Found() {
			continue
		}
		selector.Annotate(&job, sel, "")
		kept = append(kept, job)
	}

	log.Printf("✅ Found %d jobs on employer pages, filtered out %d", len(kept), len(jobs)-len(kept))
	return kept, nil
}
