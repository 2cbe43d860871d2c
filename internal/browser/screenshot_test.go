package browser

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScreenshotDebugger_FileName(t *testing.T) {
	dir := t.TempDir()
	s := NewScreenshotDebugger(dir)

	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	got := s.FileName("https://acme.com/careers?id=1", at)

	assert.Equal(t, filepath.Join(dir, "screenshots"), filepath.Dir(got))
	assert.Equal(t, "https_acme_com_careers_id_1_2026-03-01_09-30-00.png", filepath.Base(got))

	long := s.FileName(strings.Repeat("a", 200), at)
	assert.LessOrEqual(t, len(filepath.Base(long)), 80+len("_2026-03-01_09-30-00.png"))
}

func TestRandomDelay(t *testing.T) {
	start := time.Now()
	assert.NoError(t, RandomDelay(context.Background(), 10*time.Millisecond, 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, RandomDelay(ctx, time.Hour, 2*time.Hour), context.Canceled)
}

func TestStealthContextOptions(t *testing.T) {
	opts := stealthContextOptions()
	assert.Equal(t, desktopUserAgent, *opts.UserAgent)
	assert.Equal(t, 1920, opts.Viewport.Width)
	assert.Equal(t, "en-US,en;q=0.9", opts.ExtraHttpHeaders["Accept-Language"])
	assert.Contains(t, launchArgs, "--disable-blink-features=AutomationControlled")
}
