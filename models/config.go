// Package models defines the shared value types passed between the OCR,
// feature-extraction, classification and evaluation packages.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "12h" or "30m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds runtime configuration. Values come from an optional YAML file;
// CLI flags override individual fields.
type Config struct {
	Threshold   float64  `yaml:"threshold"`
	WorkerCount int      `yaml:"worker_count"`
	DBPath      string   `yaml:"db_path"`
	CacheDir    string   `yaml:"cache_dir"`
	CacheTTL    Duration `yaml:"cache_ttl"`
	OcrLanguage string   `yaml:"ocr_language"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Threshold:   5.0,
		WorkerCount: 4,
		DBPath:      "screensift.db",
		CacheDir:    "data/ocr_cache",
		CacheTTL:    Duration(30 * 24 * time.Hour),
		OcrLanguage: "eng",
	}
}

// LoadConfig reads the YAML config at path, applying defaults for any field
// left unset. A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = Duration(30 * 24 * time.Hour)
	}
	if cfg.OcrLanguage == "" {
		cfg.OcrLanguage = "eng"
	}

	return cfg, nil
}
