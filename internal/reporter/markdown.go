package reporter

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-jobscout/internal/pipeline"
)

// MarkdownReporter writes job_results_<unix>.md into dir
type MarkdownReporter struct {
	dir string
	now func() time.Time
}

func NewMarkdownReporter(dir string) *MarkdownReporter {
	return &MarkdownReporter{dir: dir, now: time.Now}
}

func (r *MarkdownReporter) Name() string { return "markdown" }

// RenderMarkdown formats the matches of a report
func RenderMarkdown(report *pipeline.Report, generated time.Time) string {
	var b strings.Builder
	b.WriteString("# Job Search Results\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Matches: %d\n\n", len(report.Matches))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i, m := range report.Matches {
		fmt.Fprintf(&b, "## %d. %s\n", i+1, m.Title)
		fmt.Fprintf(&b, "- **Company:** %s\n", m.Company)
		fmt.Fprintf(&b, "- **Location:** %s\n", m.Location)
		fmt.Fprintf(&b, "- **Match Score:** %d/100\n", m.Score)
		fmt.Fprintf(&b, "- **Why:** %s\n", m.Reason)
		fmt.Fprintf(&b, "- **Apply:** %s\n\n", m.ApplyLink)
	}
	return b.String()
}

func (r *MarkdownReporter) Report(_ context.Context, report *pipeline.Report) error {
	if len(report.Matches) == 0 {
		log.Println("ℹ️ No matches to export.")
		return nil
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.dir, err)
	}

	now := r.now()
	path := filepath.Join(r.dir, fmt.Sprintf("job_results_%d.md", now.Unix()))
	if err := os.WriteFile(path, []byte(RenderMarkdown(report, now)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Printf("📁 Results exported to %s", path)
	return nil
}
