package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "search_metadata": {"status": "Success"},
  "jobs_results": [
    {
      "title": "Software Engineer, Backend",
      "company_name": "Google",
      "location": "Bengaluru, Karnataka, India",
      "via": "Google Careers",
      "description": "Design and build backend services in Go.",
      "job_id": "eyJqb2JfdGl0bGUiOiJTV0UifQ==",
      "apply_options": [
        {"title": "LinkedIn", "link": "https://in.linkedin.com/jobs/view/1"},
        {"title": "Google Careers", "link": "https://careers.google.com/jobs/results/123"}
      ],
      "related_links": [{"link": "https://www.google.com/search?q=google", "text": "See web results for Google"}],
      "share_link": "https://www.google.com/search?ibp=htl;jobs",
      "share_url": "https://www.google.com/search?ibp=htl;jobs#htidocid=1",
      "detected_extensions": {"posted_at": "3 days ago", "schedule_type": "Full-time"}
    }
  ]
}`

func TestSerpAPIClient_Search(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"engine":   q.Get("engine"),
			"q":        q.Get("q"),
			"location": q.Get("location"),
			"hl":       q.Get("hl"),
			"gl":       q.Get("gl"),
			"api_key":  q.Get("api_key"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewSerpAPIClient("secret", WithBaseURL(srv.URL), WithInterval(0), WithCountry("us"))
	jobs, err := client.Search(context.Background(), "Software Engineer at Google India", "India")
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	assert.Equal(t, map[string]string{
		"engine":   "google_jobs",
		"q":        "Software Engineer at Google India",
		"location": "India",
		"hl":       "en",
		"gl":       "us",
		"api_key":  "secret",
	}, got)

	job := jobs[0]
	assert.Equal(t, "Google", job.CompanyName)
	assert.Equal(t, "Google Careers", job.Via)
	require.Len(t, job.ApplyOptions, 2)
	assert.Equal(t, "https://careers.google.com/jobs/results/123", job.ApplyOptions[1].Link)
	assert.Equal(t, "3 days ago", job.DetectedExtensions.PostedAt)
	assert.Contains(t, job.ShareURL, "htidocid=1")
}

func TestSerpAPIClient_NoResultsIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Google hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	client := NewSerpAPIClient("secret", WithBaseURL(srv.URL), WithInterval(0))
	jobs, err := client.Search(context.Background(), "nothing", "")
	assert.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestSerpAPIClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusUnauthorized, `{"error": "Invalid API key."}`},
		{"server error", http.StatusBadGateway, `<html>bad gateway</html>`},
		{"garbage", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewSerpAPIClient("secret", WithBaseURL(srv.URL), WithInterval(0))
			_, err := client.Search(context.Background(), "q", "")
			assert.Error(t, err)
		})
	}
}

func TestSerpAPIClient_Paced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jobs_results": []}`))
	}))
	defer srv.Close()

	client := NewSerpAPIClient("secret", WithBaseURL(srv.URL), WithInterval(100*time.Millisecond))
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Search(context.Background(), "q", "")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 180*time.Millisecond)
}

func TestSerpAPIClient_CanceledWhileWaiting(t *testing.T) {
	client := NewSerpAPIClient("secret", WithBaseURL("http://127.0.0.1:1"), WithInterval(time.Hour))
	client.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Search(ctx, "q", "")
	assert.Error(t, err)
}
