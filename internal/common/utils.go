// Package common holds helpers shared by the CLI actions: logger setup,
// config resolution and OCR runner construction.
package common

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/screensift/models"
	"github.com/dtnitsch/screensift/pkg/ocr"
	"github.com/dtnitsch/screensift/pkg/ocrcache"
)

// NewLogger builds the JSON logger used by every command. quiet raises the
// level so only errors reach stderr.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// ResolveConfig loads the YAML config named by --config and applies global
// flag overrides on top.
func ResolveConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}

	return cfg, nil
}

// NewRunner builds the cache-first OCR runner. In builds without the ocr tag
// (or when engine setup fails) the runner works cache-only and the problem
// is logged once here; callers then fail per-image on cache misses.
//
// The returned closer releases the engine and must be called even when the
// engine is unavailable.
func NewRunner(logger *slog.Logger, cfg *models.Config, noCache bool) (*ocr.Runner, func(), error) {
	var cache *ocrcache.Cache
	if !noCache {
		var err error
		cache, err = ocrcache.New(cfg.CacheDir, time.Duration(cfg.CacheTTL))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize OCR cache: %w", err)
		}
	}

	var engine ocr.Engine
	closer := func() {}

	client, err := ocr.NewClient(cfg.OcrLanguage)
	if err != nil {
		logger.Warn("OCR engine unavailable, running cache-only", "error", err)
	} else {
		engine = client
		closer = func() { _ = client.Close() }
	}

	return ocr.NewRunner(logger, cache, engine), closer, nil
}

// ResolveImagePath normalizes an image path argument and checks the file
// exists. Relative paths are resolved against the working directory.
func ResolveImagePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no image path provided")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve image path %s: %w", path, err)
	}

	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("image not found: %s", abs)
	}

	return abs, nil
}
