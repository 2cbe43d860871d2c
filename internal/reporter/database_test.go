package reporter

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobscout/internal/models"
	"go-jobscout/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	runs    []*models.SearchRun
	matches map[string][]models.Match
	failRun bool
}

func (m *memoryStore) SaveRun(_ context.Context, run *models.SearchRun) (*models.SearchRun, error) {
	if m.failRun {
		return nil, errors.New("connection refused")
	}
	run.ID = "run-1"
	m.runs = append(m.runs, run)
	return run, nil
}

func (m *memoryStore) SaveMatch(_ context.Context, runID string, match models.Match) (*models.StoredMatch, error) {
	if m.matches == nil {
		m.matches = map[string][]models.Match{}
	}
	m.matches[runID] = append(m.matches[runID], match)
	return &models.StoredMatch{RunID: runID, Match: match}, nil
}

func TestRunFromReport(t *testing.T) {
	report := sampleReport()
	report.StartedAt = fixedNow
	report.FinishedAt = fixedNow.Add(90 * time.Second)

	run := RunFromReport(report, models.RunCompleted)
	assert.Equal(t, "Go Developer", run.JobTitle)
	assert.Equal(t, "companies", run.Mode)
	assert.Equal(t, 3, run.Analyzed)
	assert.Equal(t, 2, run.Matched)
	require.NotNil(t, run.FinishedAt)
	assert.Equal(t, report.FinishedAt, *run.FinishedAt)

	assert.Nil(t, RunFromReport(&pipeline.Report{}, models.RunFailed).FinishedAt)
}

func TestDatabaseReporter(t *testing.T) {
	store := &memoryStore{}
	require.NoError(t, NewDatabaseReporter(store).Report(context.Background(), sampleReport()))
	require.Len(t, store.runs, 1)
	assert.Len(t, store.matches["run-1"], 2)

	assert.Error(t, NewDatabaseReporter(&memoryStore{failRun: true}).Report(context.Background(), sampleReport()))
}
