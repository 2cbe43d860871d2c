package fetcher

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-jobscout/internal/browser"

	"github.com/playwright-community/playwright-go"
)

// BrowserFetcher renders the page in a stealth chromium context and returns
// document.body.innerText
type BrowserFetcher struct {
	manager     *browser.PlaywrightManager
	timeout     time.Duration
	screenshots *browser.ScreenshotDebugger
}

// NewBrowserFetcher uses manager for every visit; screenshots may be nil
func NewBrowserFetcher(manager *browser.PlaywrightManager, timeout time.Duration, screenshots *browser.ScreenshotDebugger) *BrowserFetcher {
	return &BrowserFetcher{manager: manager, timeout: timeout, screenshots: screenshots}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	log.Printf("🕵️ Stealth visiting: %s", url)

	bctx, err := f.manager.NewContext()
	if err != nil {
		return "", err
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return "", fmt.Errorf("could not create new page: %w", err)
	}

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(f.timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		f.capture(page, url, "Navigation failed")
		return "", fmt.Errorf("could not open %s: %w", url, err)
	}

	//act like a reader before extracting
	if err := browser.RandomDelay(ctx, 2*time.Second, 5*time.Second); err != nil {
		return "", err
	}
	if err := browser.HumanScroll(ctx, page); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("⚠️ Scroll failed on %s: %v", url, err)
	}

	content, err := page.Evaluate("document.body.innerText")
	if err != nil {
		f.capture(page, url, "Text extraction failed")
		return "", fmt.Errorf("could not read text of %s: %w", url, err)
	}

	text, _ := content.(string)
	log.Printf("✅ Successfully scraped %d characters", len(text))
	return text, nil
}

func (f *BrowserFetcher) capture(page playwright.Page, url, message string) {
	if f.screenshots == nil {
		return
	}
	_ = f.screenshots.CaptureAndLog(page, url, fmt.Sprintf("%s: %s", message, url))
}
