// Package search finds job candidates through the SerpApi Google Jobs engine.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-jobscout/internal/models"

	"golang.org/x/time/rate"
)

const (
	serpAPIURL      = "https://serpapi.com/search.json"
	DefaultInterval = 2 * time.Second
)

// Provider returns job candidates for a free-text query
type Provider interface {
	Search(ctx context.Context, query, location string) ([]models.JobCandidate, error)
}

type SerpAPIClient struct {
	apiKey     string
	baseURL    string
	country    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*SerpAPIClient)

func WithBaseURL(u string) Option {
	return func(c *SerpAPIClient) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *SerpAPIClient) { c.httpClient = hc }
}

// WithInterval sets the minimum spacing between requests; <= 0 disables pacing
func WithInterval(d time.Duration) Option {
	return func(c *SerpAPIClient) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

func WithCountry(gl string) Option {
	return func(c *SerpAPIClient) { c.country = gl }
}

func WithLanguage(hl string) Option {
	return func(c *SerpAPIClient) { c.language = hl }
}

func NewSerpAPIClient(apiKey string, opts ...Option) *SerpAPIClient {
	c := &SerpAPIClient{
		apiKey:     apiKey,
		baseURL:    serpAPIURL,
		country:    "in",
		language:   "en",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(DefaultInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type serpResponse struct {
	JobsResults []models.JobCandidate `json:"jobs_results"`
	Error       string                `json:"error,omitempty"`
}

// Search runs one google_jobs query. An empty result set is not an error.
func (c *SerpAPIClient) Search(ctx context.Context, query, location string) ([]models.JobCandidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", query)
	if location != "" {
		params.Set("location", location)
	}
	params.Set("hl", c.language)
	params.Set("gl", c.country)
	params.Set("api_key", c.apiKey)

	log.Printf("🔍 SerpApi query: '%s' (%s)", query, location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read serpapi response: %w", err)
	}

	var result serpResponse
	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("serpapi returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode serpapi response: %w", err)
	}

	if result.Error != "" {
		// no hits is reported as an error by the API
		if strings.Contains(result.Error, "hasn't returned any results") {
			return nil, nil
		}
		return nil, fmt.Errorf("serpapi error: %s", result.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}

	log.Printf("📋 SerpApi returned %d jobs", len(result.JobsResults))
	return result.JobsResults, nil
}
