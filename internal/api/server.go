// Package api exposes the robots gate, the URL selector and discovery runs
// over HTTP.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go-jobscout/internal/models"
	"go-jobscout/internal/pipeline"
	"go-jobscout/internal/profile"
	"go-jobscout/internal/reporter"
	"go-jobscout/internal/robots"

	"github.com/gin-gonic/gin"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 15 * time.Minute
	idleTimeout  = 120 * time.Second
)

// Gate is the part of robots.Gate the API needs
type Gate interface {
	Evaluate(ctx context.Context, rawURL string) robots.Decision
	DelayFor(rawURL string) (time.Duration, bool)
	Reset()
}

type Runner interface {
	Run(ctx context.Context, params pipeline.Params, prof *profile.Profile) (*pipeline.Report, error)
}

type MatchLister interface {
	ListRecentMatches(ctx context.Context, limit int) ([]models.StoredMatch, error)
}

type Option func(*Server)

// WithRunner enables POST /api/v1/runs
func WithRunner(r Runner, prof *profile.Profile, defaults pipeline.Params) Option {
	return func(s *Server) {
		s.runner = r
		s.profile = prof
		s.defaults = defaults
	}
}

// WithReporter receives every finished run report
func WithReporter(r reporter.Reporter) Option {
	return func(s *Server) {
		s.reporter = r
	}
}

// WithMatches enables GET /api/v1/matches
func WithMatches(m MatchLister) Option {
	return func(s *Server) {
		s.matches = m
	}
}

type Server struct {
	gate     Gate
	runner   Runner
	profile  *profile.Profile
	defaults pipeline.Params
	reporter reporter.Reporter
	matches  MatchLister
	router   *gin.Engine
}

func NewServer(gate Gate, opts ...Option) *Server {
	s := &Server{gate: gate}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the configured gin engine
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(loggingMiddleware())

	r.GET("/", s.health)

	v1 := r.Group("/api/v1")
	v1.POST("/robots/evaluate", s.evaluate)
	v1.GET("/robots/delay", s.delay)
	v1.DELETE("/robots/cache", s.resetCache)
	v1.POST("/select", s.selectURL)
	v1.GET("/employer-page", s.employerPage)
	v1.POST("/runs", s.createRun)
	v1.GET("/matches", s.listMatches)
	return r
}

// ListenAndServe blocks until ctx is canceled or the server fails
func (s *Server) ListenAndServe(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server listening on port %s", port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Println("🛑 Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[%s] %s %s %d %v", c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Writer.Status(), time.Since(start))
	}
}
