package models

import (
	"time"
)

type RunStatus string

const (
	RunRunning   RunStatus = "RUNNING"
	RunCompleted RunStatus = "COMPLETED"
	RunFailed    RunStatus = "FAILED"
)

// SearchRun is one execution of the discovery pipeline
type SearchRun struct {
	ID         string     `json:"id"`
	JobTitle   string     `json:"job_title"`
	Location   string     `json:"location"`
	Mode       string     `json:"mode"`
	MinScore   int        `json:"min_score"`
	Status     RunStatus  `json:"status"`
	Analyzed   int        `json:"analyzed"`
	Matched    int        `json:"matched"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// StoredMatch is a Match persisted against the run that found it
type StoredMatch struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Match     Match     `json:"match"`
	CreatedAt time.Time `json:"created_at"`
}
