// Package reporter delivers the result of a discovery run: files on disk,
// Telegram messages, a PDF.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-jobscout/internal/pipeline"
)

type Reporter interface {
	Name() string
	Report(ctx context.Context, report *pipeline.Report) error
}

// Multi sends the report to every reporter in order. A failing reporter is
// logged and does not stop the others; all failures are returned joined.
type Multi []Reporter

func (m Multi) Name() string { return "multi" }

func (m Multi) Report(ctx context.Context, report *pipeline.Report) error {
	var errs []error
	for _, r := range m {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := r.Report(ctx, report); err != nil {
			log.Printf("⚠️ %s reporter failed: %v", r.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
		}
	}
	return errors.Join(errs...)
}
