package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxPolicyBytes limits how much of a robots.txt response is read
const maxPolicyBytes = 512 * 1024

// PolicyFetcher retrieves a robots.txt document. A non-nil error means the
// document could not be retrieved at all; HTTP failures are reported through
// the status code.
type PolicyFetcher interface {
	FetchPolicy(ctx context.Context, robotsURL string) (status int, body []byte, err error)
}

type httpPolicyFetcher struct {
	userAgent  string
	httpClient *http.Client
}

// NewHTTPPolicyFetcher fetches robots.txt over HTTP with a per-request timeout
func NewHTTPPolicyFetcher(userAgent string, timeout time.Duration) PolicyFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &httpPolicyFetcher{
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (f *httpPolicyFetcher) FetchPolicy(ctx context.Context, robotsURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create robots request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("robots request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPolicyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read robots body: %w", err)
	}
	return resp.StatusCode, body, nil
}
