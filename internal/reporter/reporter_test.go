package reporter

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-jobscout/internal/models"
	"go-jobscout/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func sampleReport() *pipeline.Report {
	return &pipeline.Report{
		Params:   pipeline.Params{Mode: pipeline.ModeCompanies, JobTitle: "Go Developer", MinScore: 70},
		Skills:   []string{"Go"},
		Analyzed: 3,
		Matches: []models.Match{
			{Title: "Backend Engineer", Company: "Acme", Location: "Pune", Score: 91, Reason: "Great fit", ApplyLink: "https://acme.com/careers/1"},
			{Title: "Platform Engineer", Company: "Beta", Location: "Remote", Score: 75, Reason: "Good fit", ApplyLink: "https://beta.io/jobs/2"},
		},
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(sampleReport(), fixedNow)

	assert.True(t, strings.HasPrefix(out, "# Job Search Results\n\nGenerated: 2026-03-01 10:30:00\n\nTotal Matches: 2\n\n"))
	assert.Contains(t, out, "## 1. Backend Engineer\n- **Company:** Acme\n- **Location:** Pune\n- **Match Score:** 91/100\n- **Why:** Great fit\n- **Apply:** https://acme.com/careers/1\n")
	assert.Contains(t, out, "## 2. Platform Engineer")
}

func TestMarkdownReporter(t *testing.T) {
	dir := t.TempDir()
	r := NewMarkdownReporter(dir)
	r.now = func() time.Time { return fixedNow }

	require.NoError(t, r.Report(context.Background(), sampleReport()))
	data, err := os.ReadFile(filepath.Join(dir, "job_results_1772361000.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Matches: 2")

	empty := t.TempDir()
	require.NoError(t, NewMarkdownReporter(empty).Report(context.Background(), &pipeline.Report{}))
	entries, _ := os.ReadDir(empty)
	assert.Empty(t, entries)
}

func TestJSONReporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	r := NewJSONReporter(dir)
	r.now = func() time.Time { return fixedNow }

	require.NoError(t, r.Report(context.Background(), sampleReport()))
	assert.Equal(t, filepath.Join(dir, "job-search-2026-03-01.json"), r.Path())

	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)

	var decoded pipeline.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Matches, 2)
	assert.Equal(t, pipeline.ModeCompanies, decoded.Params.Mode)
}

type fakeSender struct {
	matches  []models.Match
	statuses []string
	failOn   string
}

func (f *fakeSender) SendMatch(m models.Match) error {
	if m.Title == f.failOn {
		return errors.New("chat not found")
	}
	f.matches = append(f.matches, m)
	return nil
}

func (f *fakeSender) SendStatus(message string) error {
	f.statuses = append(f.statuses, message)
	return nil
}

func TestTelegramReporter(t *testing.T) {
	sender := &fakeSender{}
	r := NewTelegramReporter(sender)
	r.interval = 0

	require.NoError(t, r.Report(context.Background(), sampleReport()))
	assert.Len(t, sender.matches, 2)
	assert.Equal(t, []string{"✅ Analyzed 3 jobs, 2 matched (min score 70), sent 2."}, sender.statuses)

	sender = &fakeSender{failOn: "Platform Engineer"}
	r = NewTelegramReporter(sender)
	r.interval = 0
	assert.Error(t, r.Report(context.Background(), sampleReport()))
	assert.Len(t, sender.matches, 1)
	assert.Len(t, sender.statuses, 1)

	sender = &fakeSender{}
	require.NoError(t, NewTelegramReporter(sender).Report(context.Background(), &pipeline.Report{Params: pipeline.Params{MinScore: 80}}))
	assert.Contains(t, sender.statuses[0], "No jobs matched your criteria (min score: 80)")
}

type stubReporter struct {
	name  string
	err   error
	calls int
}

func (s *stubReporter) Name() string { return s.name }

func (s *stubReporter) Report(context.Context, *pipeline.Report) error {
	s.calls++
	return s.err
}

func TestMulti(t *testing.T) {
	a := &stubReporter{name: "a", err: errors.New("disk full")}
	b := &stubReporter{name: "b"}

	err := Multi{a, b}.Report(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: disk full")
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)

	assert.NoError(t, Multi{b}.Report(context.Background(), sampleReport()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Multi{b}.Report(ctx, sampleReport()), context.Canceled)
	assert.Equal(t, 2, b.calls)
}
