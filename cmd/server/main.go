package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-jobscout/internal/api"
	"go-jobscout/internal/bootstrap"
	"go-jobscout/internal/config"
	"go-jobscout/internal/pipeline"
	"go-jobscout/internal/profile"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFile(config.DefaultPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gate := bootstrap.NewGate(cfg)
	var opts []api.Option

	repo, err := bootstrap.ConnectDatabase(ctx, cfg)
	if err != nil {
		log.Printf("⚠️ Database disabled: %v", err)
	}
	if repo != nil {
		defer repo.Close()
		opts = append(opts, api.WithMatches(repo))
	}

	// the robots and selector endpoints work without any keys; runs need them
	if err := cfg.Validate(); err != nil {
		log.Printf("⚠️ Runs disabled: %v", err)
	} else {
		prof, err := profile.Load(cfg.CVPath)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		p, err := bootstrap.NewPipeline(ctx, cfg, gate)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer p.Close()

		opts = append(opts,
			api.WithRunner(p.Runner, prof, pipeline.ParamsFromConfig(cfg.Run)),
			api.WithReporter(bootstrap.NewReporters(cfg, cfg.LogsDir, repo)),
		)
	}

	server := api.NewServer(gate, opts...)
	if err := server.ListenAndServe(ctx, cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
