package reporter

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"go-jobscout/internal/pdf"
	"go-jobscout/internal/pipeline"
)

// PDFReporter prints the report to <dir>/job-search-YYYY-MM-DD.pdf
type PDFReporter struct {
	dir       string
	generator *pdf.Generator
	now       func() time.Time
}

func NewPDFReporter(dir string) *PDFReporter {
	return &PDFReporter{dir: dir, generator: pdf.NewGenerator(), now: time.Now}
}

func (r *PDFReporter) Name() string { return "pdf" }

func (r *PDFReporter) Report(_ context.Context, report *pipeline.Report) error {
	pdfBytes, err := r.generator.Generate(report)
	if err != nil {
		return err
	}

	path := filepath.Join(r.dir, fmt.Sprintf("job-search-%s.pdf", r.now().Format("2006-01-02")))
	if err := pdf.SaveToFile(pdfBytes, path); err != nil {
		return fmt.Errorf("failed to save PDF: %w", err)
	}
	log.Printf("📄 PDF report saved to %s", path)
	return nil
}
