package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-jobscout/internal/pipeline"
)

// JSONReporter saves the whole report to <dir>/job-search-YYYY-MM-DD.json.
// A later run on the same day overwrites the file.
type JSONReporter struct {
	dir string
	now func() time.Time
}

func NewJSONReporter(dir string) *JSONReporter {
	return &JSONReporter{dir: dir, now: time.Now}
}

func (r *JSONReporter) Name() string { return "json" }

func (r *JSONReporter) Path() string {
	return filepath.Join(r.dir, fmt.Sprintf("job-search-%s.json", r.now().Format("2006-01-02")))
}

func (r *JSONReporter) Report(_ context.Context, report *pipeline.Report) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	path := r.Path()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write logs file: %w", err)
	}

	log.Printf("📁 Results saved to %s", path)
	return nil
}
