package browser

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ScreenshotDebugger saves full-page screenshots of failed visits
type ScreenshotDebugger struct {
	outputDir string
}

func NewScreenshotDebugger(logsDir string) *ScreenshotDebugger {
	dir := filepath.Join(logsDir, "screenshots")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create screenshots directory: %v", err)
	}
	return &ScreenshotDebugger{outputDir: dir}
}

// FileName is where a capture named name taken at t is written
func (s *ScreenshotDebugger) FileName(name string, t time.Time) string {
	name = unsafeName.ReplaceAllString(name, "_")
	if len(name) > 80 {
		name = name[:80]
	}
	return filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", name, t.Format("2006-01-02_15-04-05")))
}

func (s *ScreenshotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	path := s.FileName(name, time.Now())
	log.Printf("📸 %s", message)

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", path)
	return nil
}
