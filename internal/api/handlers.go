package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go-jobscout/internal/models"
	"go-jobscout/internal/pipeline"
	"go-jobscout/internal/profile"
	"go-jobscout/internal/selector"

	"github.com/gin-gonic/gin"
)

const maxMatchesLimit = 200

type EvaluateRequest struct {
	URL string `json:"url" binding:"required"`
}

type EvaluateResponse struct {
	Allowed           bool    `json:"allowed"`
	Reason            string  `json:"reason"`
	CrawlDelaySeconds float64 `json:"crawl_delay_seconds"`
}

type DelayResponse struct {
	HasDelay          bool    `json:"has_delay"`
	CrawlDelaySeconds float64 `json:"crawl_delay_seconds"`
}

type EmployerPageResponse struct {
	URL          string `json:"url"`
	EmployerPage bool   `json:"employer_page"`
	Aggregator   bool   `json:"aggregator"`
}

// RunRequest overrides the server's default run parameters. Profile, when
// set, replaces the loaded CV text for this run only.
type RunRequest struct {
	pipeline.Params
	Profile string `json:"profile"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "JobScout API is running!",
		"status":  "healthy",
		"runs":    s.runner != nil,
	})
}

func (s *Server) evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: url is required"})
		return
	}

	d := s.gate.Evaluate(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, EvaluateResponse{
		Allowed:           d.Allowed,
		Reason:            d.Reason,
		CrawlDelaySeconds: d.CrawlDelay.Seconds(),
	})
}

func (s *Server) delay(c *gin.Context) {
	rawURL := strings.TrimSpace(c.Query("url"))
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	d, ok := s.gate.DelayFor(rawURL)
	c.JSON(http.StatusOK, DelayResponse{HasDelay: ok, CrawlDelaySeconds: d.Seconds()})
}

func (s *Server) resetCache(c *gin.Context) {
	s.gate.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func (s *Server) selectURL(c *gin.Context) {
	var candidate models.JobCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job candidate"})
		return
	}
	c.JSON(http.StatusOK, selector.Select(candidate))
}

func (s *Server) employerPage(c *gin.Context) {
	rawURL := strings.TrimSpace(c.Query("url"))
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}
	c.JSON(http.StatusOK, EmployerPageResponse{
		URL:          rawURL,
		EmployerPage: selector.IsEmployerPage(rawURL),
		Aggregator:   selector.IsAggregator(rawURL),
	})
}

func (s *Server) createRun(c *gin.Context) {
	if s.runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "runs are not configured: set SERPAPI_KEY and an AI key"})
		return
	}

	req := RunRequest{Params: s.defaults}
	// an empty body runs with the defaults
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run parameters"})
		return
	}
	switch req.Mode {
	case pipeline.ModeCompanies, pipeline.ModeSkills:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be companies or skills"})
		return
	}
	if req.MinScore < 0 || req.MinScore > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_score must be between 0 and 100"})
		return
	}

	prof := s.profile
	if strings.TrimSpace(req.Profile) != "" {
		prof = profile.FromText(req.Profile, "request")
	}

	ctx := c.Request.Context()
	report, err := s.runner.Run(ctx, req.Params, prof)
	switch {
	case errors.Is(err, pipeline.ErrNoResults):
		c.JSON(http.StatusOK, gin.H{"message": err.Error(), "report": report})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "report": report})
		return
	}

	if s.reporter != nil {
		if err := s.reporter.Report(ctx, report); err != nil {
			c.JSON(http.StatusOK, gin.H{"report": report, "warning": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (s *Server) listMatches(c *gin.Context) {
	if s.matches == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database is not configured"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxMatchesLimit)
	}

	matches, err := s.matches.ListRecentMatches(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list matches"})
		return
	}
	if matches == nil {
		matches = []models.StoredMatch{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}
