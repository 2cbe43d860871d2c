package reporter

import (
	"context"
	"fmt"
	"log"

	"go-jobscout/internal/models"
	"go-jobscout/internal/pipeline"
)

// RunStore is implemented by database.Repository
type RunStore interface {
	SaveRun(ctx context.Context, run *models.SearchRun) (*models.SearchRun, error)
	SaveMatch(ctx context.Context, runID string, m models.Match) (*models.StoredMatch, error)
}

// DatabaseReporter stores the run summary and its matches
type DatabaseReporter struct {
	store RunStore
}

func NewDatabaseReporter(store RunStore) *DatabaseReporter {
	return &DatabaseReporter{store: store}
}

func (r *DatabaseReporter) Name() string { return "database" }

// RunFromReport builds the stored summary of a finished report
func RunFromReport(report *pipeline.Report, status models.RunStatus) *models.SearchRun {
	run := &models.SearchRun{
		JobTitle:  report.Params.JobTitle,
		Location:  report.Params.Location,
		Mode:      string(report.Params.Mode),
		MinScore:  report.Params.MinScore,
		Status:    status,
		Analyzed:  report.Analyzed,
		Matched:   len(report.Matches),
		StartedAt: report.StartedAt,
	}
	if !report.FinishedAt.IsZero() {
		finished := report.FinishedAt
		run.FinishedAt = &finished
	}
	return run
}

func (r *DatabaseReporter) Report(ctx context.Context, report *pipeline.Report) error {
	run, err := r.store.SaveRun(ctx, RunFromReport(report, models.RunCompleted))
	if err != nil {
		return err
	}

	for _, m := range report.Matches {
		if _, err := r.store.SaveMatch(ctx, run.ID, m); err != nil {
			return fmt.Errorf("run %s: %w", run.ID, err)
		}
	}
	log.Printf("💾 Stored run %s with %d matches", run.ID, len(report.Matches))
	return nil
}
