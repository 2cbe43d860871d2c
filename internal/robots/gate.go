// Package robots decides whether a URL may be fetched under its site's
// robots.txt, caching one policy per scheme+host for a fixed window.
package robots

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultUserAgent = "JobScoutBot/1.0 (+personal job discovery)"
	DefaultTTL       = time.Hour
	DefaultCapacity  = 1024
	DefaultTimeout   = 5 * time.Second

	robotsTxtPath = "/robots.txt"

	reasonNoPolicy = "no policy found, allowed by default"
	reasonAllowed  = "allowed by robots.txt"
	reasonBlocked  = "blocked by robots.txt"
)

// Decision is the outcome of Evaluate
type Decision struct {
	Allowed    bool
	Reason     string
	CrawlDelay time.Duration
}

// policy is the cached record for one domain. A nil data field is the
// "no policy found" sentinel.
type policy struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
}

func (p *policy) unrestricted() bool {
	return p.data == nil
}

type Option func(*Gate)

// WithTTL sets how long a fetched policy stays valid
func WithTTL(ttl time.Duration) Option {
	return func(g *Gate) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

// WithCapacity bounds the number of domains kept in the cache
func WithCapacity(n int) Option {
	return func(g *Gate) {
		if n > 0 {
			g.capacity = n
		}
	}
}

// WithTimeout bounds each robots.txt fetch
func WithTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithFetcher replaces the HTTP policy fetcher
func WithFetcher(f PolicyFetcher) Option {
	return func(g *Gate) {
		if f != nil {
			g.fetcher = f
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// Gate is safe for concurrent use. Concurrent misses on the same domain
// share a single robots.txt fetch.
type Gate struct {
	userAgent string
	ttl       time.Duration
	capacity  int
	timeout   time.Duration
	fetcher   PolicyFetcher
	now       func() time.Time

	mu     sync.Mutex
	cache  *lru.Cache[string, *policy]
	flight singleflight.Group
}

func NewGate(userAgent string, opts ...Option) *Gate {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	g := &Gate{
		userAgent: userAgent,
		ttl:       DefaultTTL,
		capacity:  DefaultCapacity,
		timeout:   DefaultTimeout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.fetcher == nil {
		g.fetcher = NewHTTPPolicyFetcher(userAgent, g.timeout)
	}

	// only fails for a non-positive size, which the options rule out
	cache, err := lru.New[string, *policy](g.capacity)
	if err != nil {
		panic(fmt.Sprintf("robots: cache init: %v", err))
	}
	g.cache = cache
	return g
}

func (g *Gate) UserAgent() string {
	return g.userAgent
}

// Evaluate reports whether rawURL may be fetched. It never returns an error:
// malformed URLs and unreachable policies are allowed with an explanatory reason.
func (g *Gate) Evaluate(ctx context.Context, rawURL string) Decision {
	target, domain, err := parseTarget(rawURL)
	if err != nil {
		log.Printf("⚠️ Error checking robots.txt for %q: %v", rawURL, err)
		return Decision{
			Allowed: true,
			Reason:  fmt.Sprintf("error checking robots.txt (%v), allowed by default", err),
		}
	}

	p := g.lookup(ctx, domain)
	if p.unrestricted() {
		return Decision{Allowed: true, Reason: reasonNoPolicy}
	}

	delay := g.crawlDelay(p)
	if p.data.TestAgent(pathOf(target), g.userAgent) {
		return Decision{Allowed: true, Reason: reasonAllowed, CrawlDelay: delay}
	}
	if delay > 0 {
		return Decision{
			Allowed:    false,
			Reason:     fmt.Sprintf("%s (crawl-delay: %gs)", reasonBlocked, delay.Seconds()),
			CrawlDelay: delay,
		}
	}
	return Decision{Allowed: false, Reason: reasonBlocked}
}

// DelayFor returns the crawl-delay declared by the cached policy of rawURL's
// domain. It does not fetch and does not sleep.
func (g *Gate) DelayFor(rawURL string) (time.Duration, bool) {
	_, domain, err := parseTarget(rawURL)
	if err != nil {
		return 0, false
	}

	g.mu.Lock()
	p, ok := g.cache.Get(domain)
	g.mu.Unlock()
	if !ok || p.unrestricted() {
		return 0, false
	}

	delay := g.crawlDelay(p)
	return delay, delay > 0
}

// Reset drops every cached policy
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cache.Purge()
}

// Len is the number of cached domains
func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cache.Len()
}

func (g *Gate) lookup(ctx context.Context, domain string) *policy {
	if p, ok := g.fresh(domain); ok {
		return p
	}

	v, _, _ := g.flight.Do(domain, func() (interface{}, error) {
		// another caller may have filled the cache while we waited
		if p, ok := g.fresh(domain); ok {
			return p, nil
		}
		p := g.fetch(ctx, domain)
		// a canceled caller says nothing about the site
		if ctx.Err() != nil {
			return p, nil
		}
		g.mu.Lock()
		g.cache.Add(domain, p)
		g.mu.Unlock()
		return p, nil
	})
	return v.(*policy)
}

func (g *Gate) fresh(domain string) (*policy, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.cache.Get(domain)
	if !ok {
		return nil, false
	}
	if !g.now().Before(p.fetchedAt.Add(g.ttl)) {
		return nil, false
	}
	return p, true
}

func (g *Gate) fetch(ctx context.Context, domain string) *policy {
	robotsURL := domain + robotsTxtPath
	log.Printf("📋 Checking robots.txt: %s", robotsURL)

	fetchedAt := g.now()
	status, body, err := g.fetcher.FetchPolicy(ctx, robotsURL)
	if err != nil {
		log.Printf("   ⚠️ Could not read robots.txt: %v", err)
		return &policy{fetchedAt: fetchedAt}
	}
	if status < 200 || status >= 300 {
		log.Printf("   ⚠️ robots.txt returned status %d", status)
		return &policy{fetchedAt: fetchedAt}
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		log.Printf("   ⚠️ Could not parse robots.txt: %v", err)
		return &policy{fetchedAt: fetchedAt}
	}
	return &policy{data: data, fetchedAt: fetchedAt}
}

func (g *Gate) crawlDelay(p *policy) time.Duration {
	if p.unrestricted() {
		return 0
	}
	group := p.data.FindGroup(g.userAgent)
	if group == nil {
		return 0
	}
	return group.CrawlDelay
}

// parseTarget returns the parsed URL and its scheme://host cache key
func parseTarget(rawURL string) (*url.URL, string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, "", fmt.Errorf("url %q has no scheme or host", rawURL)
	}
	domain := strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
	return u, domain, nil
}

func pathOf(u *url.URL) string {
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}
