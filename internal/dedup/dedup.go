package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	FileName  = "seen_jobs.json"
	Retention = 30 * 24 * time.Hour
)

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// SeenCache remembers job URLs already scored so repeated runs skip them.
// Entries older than Retention are dropped on load.
type SeenCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
	now      func() time.Time
}

// NewSeenCache creates or loads the cache file in cacheDir
func NewSeenCache(cacheDir string) *SeenCache {
	return newSeenCache(cacheDir, time.Now)
}

func newSeenCache(cacheDir string, now func() time.Time) *SeenCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &SeenCache{
		filePath: filepath.Join(cacheDir, FileName),
		seen:     make(map[string]int64),
		now:      now,
	}
	cache.load()
	return cache
}

// IsSeen checks if a URL has already been processed
func (c *SeenCache) IsSeen(url string) bool {
	key := normalize(url)
	if key == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.seen[key]
	return exists
}

// Add records urls and persists the cache when anything new was added
func (c *SeenCache) Add(urls []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now().UnixMilli()
	changed := false
	for _, url := range urls {
		key := normalize(url)
		if key == "" {
			continue
		}
		if _, exists := c.seen[key]; !exists {
			c.seen[key] = now
			changed = true
		}
	}

	if changed {
		c.save()
	}
}

func (c *SeenCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// trailing slashes and fragments do not make a different posting
func normalize(url string) string {
	url = strings.TrimSpace(url)
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	return strings.TrimRight(url, "/")
}

func (c *SeenCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", FileName, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", FileName, err)
		return
	}

	cutoff := c.now().Add(-Retention).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen[normalize(e.URL)] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen jobs (%d expired and removed)", loaded, len(entries)-loaded)
}

func (c *SeenCache) save() {
	entries := make([]seenEntry, 0, len(c.seen))
	for url, ts := range c.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen jobs: %v", err)
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write %s: %v", FileName, err)
		return
	}
	log.Printf("💾 Saved %d seen jobs to cache", len(entries))
}
