package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbrief/internal/pipeline"
)

func TestPutGetRoundTrip(t *testing.T) {
	bc := NewBriefCache(filepath.Join(t.TempDir(), "cache.json"), 24)

	brief := pipeline.Result{Title: "Acme surges", Sentiment: "positive", Hashtags: []string{"#Earnings"}}
	bc.Put("Acme surges after earnings", "body text", brief)

	got, ok := bc.Get("Acme surges after earnings", "body text")
	require.True(t, ok)
	assert.Equal(t, brief, got)
}

func TestGetMissesOnDifferentContent(t *testing.T) {
	bc := NewBriefCache(filepath.Join(t.TempDir(), "cache.json"), 24)
	bc.Put("title", "body", pipeline.Result{Title: "x"})

	_, ok := bc.Get("title", "different body")
	assert.False(t, ok)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	bc := NewBriefCache(path, 24)
	bc.Put("title", "body", pipeline.Result{Title: "persisted"})
	require.NoError(t, bc.Save())

	reloaded := NewBriefCache(path, 24)
	require.NoError(t, reloaded.Load())

	got, ok := reloaded.Get("title", "body")
	require.True(t, ok)
	assert.Equal(t, "persisted", got.Title)
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	bc := NewBriefCache(filepath.Join(t.TempDir(), "absent.json"), 24)
	assert.NoError(t, bc.Load())
}

func TestLoadDropsExpiredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	bc := NewBriefCache(path, 24)
	bc.Put("title", "body", pipeline.Result{Title: "stale"})

	// age the entry past the TTL before saving
	bc.mu.Lock()
	for hash, item := range bc.items {
		item.CreatedAt = time.Now().Add(-25 * time.Hour)
		bc.items[hash] = item
	}
	bc.mu.Unlock()
	require.NoError(t, bc.Save())

	reloaded := NewBriefCache(path, 24)
	require.NoError(t, reloaded.Load())

	_, ok := reloaded.Get("title", "body")
	assert.False(t, ok)
}

func TestHashNormalizesWhitespaceAndCase(t *testing.T) {
	assert.Equal(t, Hash("Breaking News", "the  body"), Hash("breaking news", "the body"))
	assert.NotEqual(t, Hash("a", "b"), Hash("a", "c"))
}
