// Package bootstrap wires config into the components the CLIs and the HTTP
// server share.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-jobscout/internal/ai"
	"go-jobscout/internal/browser"
	"go-jobscout/internal/config"
	"go-jobscout/internal/database"
	"go-jobscout/internal/dedup"
	"go-jobscout/internal/fetcher"
	"go-jobscout/internal/pipeline"
	"go-jobscout/internal/reporter"
	"go-jobscout/internal/robots"
	"go-jobscout/internal/search"
	"go-jobscout/internal/telegram"
)

// NewGate builds the robots gate from cfg.Robots
func NewGate(cfg *config.Config) *robots.Gate {
	return robots.NewGate(cfg.Robots.UserAgent,
		robots.WithTTL(cfg.Robots.CacheTTL),
		robots.WithCapacity(cfg.Robots.Capacity),
		robots.WithTimeout(cfg.Robots.Timeout),
	)
}

// Pipeline is a ready runner plus whatever has to be released after use
type Pipeline struct {
	Runner  *pipeline.Runner
	AI      ai.Client
	closers []func() error
}

func (p *Pipeline) Close() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	p.closers = nil
	return errors.Join(errs...)
}

// NewPipeline builds search, fetch and scoring from cfg. The gate is
// consulted before every page fetch unless robots are disabled in config.
func NewPipeline(ctx context.Context, cfg *config.Config, gate *robots.Gate) (*Pipeline, error) {
	p := &Pipeline{}

	client, err := ai.New(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to init AI client: %w", err)
	}
	p.AI = client
	log.Printf("🤖 AI provider: %s", client.Name())

	provider := search.NewSerpAPIClient(cfg.Search.SerpAPIKey,
		search.WithInterval(cfg.Search.Interval),
		search.WithCountry(cfg.Search.Country),
		search.WithLanguage(cfg.Search.Language),
	)
	maxAge := time.Duration(cfg.Run.MaxAgeDays) * 24 * time.Hour
	finder := search.NewFinder(provider, maxAge)

	var pages fetcher.Fetcher
	switch cfg.Fetch.Mode {
	case "http":
		pages = fetcher.NewHTTPFetcher(cfg.Robots.UserAgent, cfg.Fetch.Timeout)
	default:
		pm, err := browser.NewPlaywright(ctx, cfg.Headless())
		if err != nil {
			return nil, fmt.Errorf("failed to init Playwright: %w", err)
		}
		p.closers = append(p.closers, pm.Close)
		pages = fetcher.NewBrowserFetcher(pm, cfg.Fetch.Timeout, browser.NewScreenshotDebugger(cfg.LogsDir))
	}

	if cfg.RespectRobots() {
		pages = fetcher.NewPoliteFetcher(gate, pages)
	} else {
		log.Println("⚠️ robots.txt checks are disabled")
	}

	p.Runner = pipeline.NewRunner(finder, pages, ai.NewScorer(client),
		pipeline.WithSeenStore(dedup.NewSeenCache(cfg.CachePath)),
		pipeline.WithJobInterval(cfg.Run.JobInterval),
	)
	return p, nil
}

// ConnectDatabase returns nil without error when DATABASE_URL is unset
func ConnectDatabase(ctx context.Context, cfg *config.Config) (*database.Repository, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	log.Println("💾 Database connected")
	return repo, nil
}

// NewReporters always writes markdown and JSON into outDir, then adds the
// optional sinks that cfg enables. A nil repo skips the database sink.
func NewReporters(cfg *config.Config, outDir string, repo *database.Repository) reporter.Multi {
	sinks := reporter.Multi{
		reporter.NewMarkdownReporter(outDir),
		reporter.NewJSONReporter(outDir),
	}

	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			sinks = append(sinks, reporter.NewTelegramReporter(bot))
		}
	}
	if cfg.ExportPDF {
		sinks = append(sinks, reporter.NewPDFReporter(outDir))
	}
	if repo != nil {
		sinks = append(sinks, reporter.NewDatabaseReporter(repo))
	}
	return sinks
}
