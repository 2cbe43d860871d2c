package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const stealthInitScript = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
window.chrome = window.chrome || { runtime: {} };`

func stealthContextOptions() playwright.BrowserNewContextOptions {
	return playwright.BrowserNewContextOptions{
		UserAgent:   playwright.String(desktopUserAgent),
		Viewport:    &playwright.Size{Width: 1920, Height: 1080},
		Locale:      playwright.String("en-US"),
		TimezoneId:  playwright.String("America/New_York"),
		ColorScheme: playwright.ColorSchemeLight,
		ExtraHttpHeaders: map[string]string{
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.9",
			"DNT":                       "1",
			"Upgrade-Insecure-Requests": "1",
		},
	}
}

// RandomDelay waits for a random duration between min and max, or until ctx ends
func RandomDelay(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min)))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// HumanScroll reads down the page in one or two wheel moves
func HumanScroll(ctx context.Context, page playwright.Page) error {
	if err := page.Mouse().Wheel(0, float64(300+rand.Intn(400))); err != nil {
		return err
	}
	if err := RandomDelay(ctx, time.Second, 2*time.Second); err != nil {
		return err
	}

	//sometimes keep reading
	if rand.Float64() > 0.5 {
		if err := page.Mouse().Wheel(0, float64(400+rand.Intn(400))); err != nil {
			return err
		}
		return RandomDelay(ctx, 500*time.Millisecond, 1500*time.Millisecond)
	}
	return nil
}

// MouseJiggle simulates random mouse movements to prevent idle detection
func MouseJiggle(ctx context.Context, page playwright.Page) error {
	width, height := 1920, 1080
	if size := page.ViewportSize(); size != nil {
		width, height = size.Width, size.Height
	}
	for i := 0; i < 3; i++ {
		if err := page.Mouse().Move(float64(rand.Intn(width)), float64(rand.Intn(height))); err != nil {
			return err
		}
		if err := RandomDelay(ctx, 100*time.Millisecond, 300*time.Millisecond); err != nil {
			return err
		}
	}
	return nil
}
