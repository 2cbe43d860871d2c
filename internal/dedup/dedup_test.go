package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenCache_AddAndPersist(t *testing.T) {
	dir := t.TempDir()

	cache := NewSeenCache(dir)
	assert.False(t, cache.IsSeen("https://acme.com/careers/1"))

	cache.Add([]string{"https://acme.com/careers/1/", "", "https://acme.com/careers/2#apply"})
	assert.True(t, cache.IsSeen("https://acme.com/careers/1"))
	assert.True(t, cache.IsSeen("https://acme.com/careers/2"))
	assert.False(t, cache.IsSeen(""))
	assert.Equal(t, 2, cache.Len())

	reloaded := NewSeenCache(dir)
	assert.True(t, reloaded.IsSeen("https://acme.com/careers/1"))
	assert.Equal(t, 2, reloaded.Len())
}

func TestSeenCache_DropsExpiredEntries(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []seenEntry{
		{URL: "https://acme.com/careers/old", Timestamp: now.Add(-31 * 24 * time.Hour).UnixMilli()},
		{URL: "https://acme.com/careers/new", Timestamp: now.Add(-24 * time.Hour).UnixMilli()},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0644))

	cache := newSeenCache(dir, func() time.Time { return now })
	assert.False(t, cache.IsSeen("https://acme.com/careers/old"))
	assert.True(t, cache.IsSeen("https://acme.com/careers/new"))
}

func TestSeenCache_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0644))

	cache := NewSeenCache(dir)
	assert.Equal(t, 0, cache.Len())
}
