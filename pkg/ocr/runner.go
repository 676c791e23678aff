package ocr

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dtnitsch/screensift/models"
	"github.com/dtnitsch/screensift/pkg/ocrcache"
)

// ErrNoEngine is returned when a cache miss requires recognition but no
// engine is available (stub build, or the engine failed to initialize).
var ErrNoEngine = errors.New("no OCR engine available for cache miss")

// Engine recognizes text in raw image bytes.
type Engine interface {
	Recognize(imageData []byte) (models.OcrResult, error)
}

// Runner executes OCR cache-first: cached results are returned without
// touching the engine, misses are recognized and stored.
//
// Run may be called from multiple goroutines. A Tesseract session is not
// safe for concurrent use, so recognition is serialized; cache lookups run
// in parallel.
type Runner struct {
	logger *slog.Logger
	cache  *ocrcache.Cache

	mu     sync.Mutex // guards engine
	engine Engine
}

// NewRunner creates a Runner. cache may be nil to disable caching and engine
// may be nil when recognition is unavailable; a nil engine turns every cache
// miss into ErrNoEngine.
func NewRunner(logger *slog.Logger, cache *ocrcache.Cache, engine Engine) *Runner {
	return &Runner{
		logger: logger,
		cache:  cache,
		engine: engine,
	}
}

// Run produces the OCR result for the image at path.
//
// Engine failures on a readable image are not fatal: they are logged and the
// empty OcrResult is returned, which downstream classifies as "none". An
// unreadable image or a missing engine is an error, since that is a setup
// problem rather than bad OCR input.
func (r *Runner) Run(path string) (models.OcrResult, error) {
	imageData, err := os.ReadFile(path)
	if err != nil {
		return models.OcrResult{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}

	key := ocrcache.Key(imageData)
	if r.cache != nil {
		if result, ok := r.cache.Get(key); ok {
			r.logger.Debug("OCR cache hit", "image", path)
			return result, nil
		}
	}

	if r.engine == nil {
		return models.OcrResult{}, fmt.Errorf("image %s not cached: %w", path, ErrNoEngine)
	}

	r.logger.Info("Running OCR", "image", path)
	r.mu.Lock()
	result, err := r.engine.Recognize(imageData)
	r.mu.Unlock()
	if err != nil {
		r.logger.Error("OCR failed, returning empty result", "image", path, "error", err)
		return models.OcrResult{}, nil
	}

	if r.cache != nil {
		if err := r.cache.Set(key, result); err != nil {
			r.logger.Warn("Failed to cache OCR result", "image", path, "error", err)
		}
	}

	return result, nil
}
