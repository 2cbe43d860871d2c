package browser

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// launchArgs hide the automation flag and keep chromium stable in containers
var launchArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--disable-setuid-sandbox",
}

// PlaywrightManager owns one playwright driver and one chromium instance.
// Contexts are cheap; create one per page visit.
type PlaywrightManager struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright starts the driver and launches chromium
func NewPlaywright(ctx context.Context, headless bool) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     launchArgs,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}

	log.Printf("✅ Chromium launched (headless=%v)", headless)
	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext creates an isolated browser context with the stealth fingerprint
func (pm *PlaywrightManager) NewContext() (playwright.BrowserContext, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.browser == nil {
		return nil, fmt.Errorf("browser is closed")
	}

	bctx, err := pm.browser.NewContext(stealthContextOptions())
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	if err := bctx.AddInitScript(playwright.Script{Content: playwright.String(stealthInitScript)}); err != nil {
		bctx.Close()
		return nil, fmt.Errorf("could not install stealth script: %w", err)
	}
	return bctx, nil
}

// Browser exposes the underlying browser, e.g. for PDF rendering
func (pm *PlaywrightManager) Browser() playwright.Browser {
	return pm.browser
}

func (pm *PlaywrightManager) Close() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	var firstErr error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			firstErr = fmt.Errorf("could not close browser: %w", err)
		}
		pm.browser = nil
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("could not stop playwright: %w", err)
		}
		pm.pw = nil
	}
	return firstErr
}
