package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Threshold != 5.0 {
		t.Errorf("Threshold = %f, want 5.0", cfg.Threshold)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want 4", cfg.WorkerCount)
	}
	if cfg.OcrLanguage != "eng" {
		t.Errorf("OcrLanguage = %q, want eng", cfg.OcrLanguage)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screensift.yaml")
	content := "threshold: 4.5\nworker_count: 8\ndb_path: /tmp/test.db\ncache_ttl: 1h\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Threshold != 4.5 {
		t.Errorf("Threshold = %f, want 4.5", cfg.Threshold)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("WorkerCount = %d, want 8", cfg.WorkerCount)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if time.Duration(cfg.CacheTTL) != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", time.Duration(cfg.CacheTTL))
	}
	// Unset fields keep defaults.
	if cfg.OcrLanguage != "eng" {
		t.Errorf("OcrLanguage = %q, want default eng", cfg.OcrLanguage)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("threshold: [not a number"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for invalid YAML")
	}
}
