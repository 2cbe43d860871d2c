// Package fetcher retrieves the visible text of job pages, either through a
// stealth browser or a plain HTTP client, behind the robots.txt gate.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-jobscout/internal/robots"
)

var ErrBlockedByRobots = errors.New("blocked by robots.txt")

// Fetcher returns the readable text of a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Gate is the part of robots.Gate the fetcher needs
type Gate interface {
	Evaluate(ctx context.Context, url string) robots.Decision
	DelayFor(url string) (time.Duration, bool)
}

// PoliteFetcher consults the gate before every fetch and waits out any
// crawl-delay the site declares
type PoliteFetcher struct {
	gate Gate
	next Fetcher
}

func NewPoliteFetcher(gate Gate, next Fetcher) *PoliteFetcher {
	return &PoliteFetcher{gate: gate, next: next}
}

func (f *PoliteFetcher) Fetch(ctx context.Context, url string) (string, error) {
	decision := f.gate.Evaluate(ctx, url)
	log.Printf("   🤖 robots.txt: %s", decision.Reason)
	if !decision.Allowed {
		return "", fmt.Errorf("%w: %s", ErrBlockedByRobots, url)
	}

	if delay, ok := f.gate.DelayFor(url); ok {
		log.Printf("   ⏱️ Respecting crawl-delay: %s", delay)
		if err := sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return f.next.Fetch(ctx, url)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
