// Package storage persists finished briefs to a JSON file so repeated runs
// over the same article skip the model calls entirely.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"finbrief/internal/pipeline"
)

// CachedBrief is one persisted brief, keyed by the article content hash.
type CachedBrief struct {
	Hash      string          `json:"hash"`
	Title     string          `json:"title"`
	Brief     pipeline.Result `json:"brief"`
	CreatedAt time.Time       `json:"created_at"`
}

// BriefCache holds briefs in memory and mirrors them to a JSON file.
type BriefCache struct {
	filePath string
	ttlHours int
	items    map[string]CachedBrief
	mu       sync.RWMutex
}

func NewBriefCache(filePath string, ttlHours int) *BriefCache {
	return &BriefCache{
		filePath: filePath,
		ttlHours: ttlHours,
		items:    make(map[string]CachedBrief),
	}
}

// Load reads the cache file, dropping entries past the TTL. A missing or
// empty file starts an empty cache.
func (bc *BriefCache) Load() error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if _, err := os.Stat(bc.filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(bc.filePath)
	if err != nil {
		return fmt.Errorf("failed to read brief cache: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []CachedBrief
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to unmarshal brief cache: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(bc.ttlHours) * time.Hour)
	for _, item := range items {
		if item.CreatedAt.After(cutoff) {
			bc.items[item.Hash] = item
		}
	}
	return nil
}

// Save writes the current cache to disk.
func (bc *BriefCache) Save() error {
	bc.mu.RLock()
	items := make([]CachedBrief, 0, len(bc.items))
	for _, item := range bc.items {
		items = append(items, item)
	}
	bc.mu.RUnlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal brief cache: %w", err)
	}
	if err := os.WriteFile(bc.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write brief cache: %w", err)
	}
	return nil
}

// Get returns the cached brief for an article, if present and fresh.
func (bc *BriefCache) Get(title, body string) (pipeline.Result, bool) {
	hash := Hash(title, body)

	bc.mu.RLock()
	defer bc.mu.RUnlock()

	item, ok := bc.items[hash]
	if !ok {
		return pipeline.Result{}, false
	}
	if time.Since(item.CreatedAt) > time.Duration(bc.ttlHours)*time.Hour {
		return pipeline.Result{}, false
	}
	return item.Brief, true
}

// Put stores a brief under the article's content hash.
func (bc *BriefCache) Put(title, body string, brief pipeline.Result) {
	hash := Hash(title, body)

	bc.mu.Lock()
	bc.items[hash] = CachedBrief{
		Hash:      hash,
		Title:     title,
		Brief:     brief,
		CreatedAt: time.Now(),
	}
	bc.mu.Unlock()
}

// Hash builds a stable key from normalized title and body text.
func Hash(title, body string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(title+" "+body), " "))
	h := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(h[:])
}
