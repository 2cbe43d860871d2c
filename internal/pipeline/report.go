package pipeline

import (
	"time"

	"go-jobscout/internal/config"
	"go-jobscout/internal/models"
)

type Mode string

const (
	ModeCompanies Mode = "companies"
	ModeSkills    Mode = "skills"
)

// Params are the inputs of one discovery run
type Params struct {
	Mode            Mode   `json:"mode"`
	JobTitle        string `json:"job_title"`
	Location        string `json:"location"`
	YearsExperience int    `json:"years_experience"`
	CompanyTier     string `json:"company_tier"`
	MaxCompanies    int    `json:"max_companies"`
	JobsPerCompany  int    `json:"jobs_per_company"`
	MaxResults      int    `json:"max_results"`
	MinScore        int    `json:"min_score"`
	SkipSeen        bool   `json:"skip_seen"`
}

func ParamsFromConfig(rc config.RunConfig) Params {
	return Params{
		Mode:            Mode(rc.Mode),
		JobTitle:        rc.JobTitle,
		Location:        rc.Location,
		YearsExperience: rc.YearsExperience,
		CompanyTier:     rc.CompanyTier,
		MaxCompanies:    rc.MaxCompanies,
		JobsPerCompany:  rc.JobsPerCompany,
		MaxResults:      rc.MaxResults,
		MinScore:        rc.MinScore,
		SkipSeen:        rc.SkipSeen,
	}
}

// Skip records a candidate that was not scored, and why
type Skip struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	URL     string `json:"url"`
	Reason  string `json:"reason"`
}

const (
	SkipSeen         = "already seen"
	SkipRobots       = "blocked by robots.txt"
	SkipShortContent = "content too short"
)

type Report struct {
	Params     Params         `json:"params"`
	Profile    string         `json:"profile_source"`
	Skills     []string       `json:"skills"`
	Candidates int            `json:"candidates"`
	Analyzed   int            `json:"analyzed"`
	Matches    []models.Match `json:"matches"`
	Skipped    []Skip         `json:"skipped"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Log        []string       `json:"log,omitempty"`
}

func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
