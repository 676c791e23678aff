// Package ocrcache caches OCR results on disk so the same screenshot is
// never recognized twice. Entries are keyed by a hash of the image bytes,
// so renamed or moved files still hit.
package ocrcache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/screensift/models"
)

// Cache is a file-based OCR result cache with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// New creates a Cache rooted at path, creating the directory if needed.
func New(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// Key derives the cache key for an image from its raw bytes.
func Key(imageData []byte) string {
	hash := sha256.Sum256(imageData)
	return fmt.Sprintf("%x", hash)
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.path, key+".json")
}

// Get retrieves a cached OCR result. The second return value is false on a
// miss: absent, expired, unreadable or undecodable entries all count as
// misses so a fresh OCR run can repopulate them.
func (c *Cache) Get(key string) (models.OcrResult, bool) {
	filePath := c.entryPath(key)

	info, err := os.Stat(filePath)
	if err != nil {
		return models.OcrResult{}, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return models.OcrResult{}, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.OcrResult{}, false
	}

	var result models.OcrResult
	if err := json.Unmarshal(data, &result); err != nil {
		return models.OcrResult{}, false
	}

	return result, true
}

// Set stores an OCR result under key.
func (c *Cache) Set(key string, result models.OcrResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode OCR result: %w", err)
	}
	if err := os.WriteFile(c.entryPath(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Purge removes every cache entry, expired or not. Returns the number of
// entries removed.
func (c *Cache) Purge() (int, error) {
	entries, err := os.ReadDir(c.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.path, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove cache entry %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
