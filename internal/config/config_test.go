package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wikirace-config-test-*")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origDir, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(origDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %v, want %v", cfg.Cache.TTL, time.Hour)
	}
	if cfg.Fetcher.RateLimit != 100.0 {
		t.Errorf("Fetcher.RateLimit = %v, want %v", cfg.Fetcher.RateLimit, 100.0)
	}
	if cfg.Engine.MaxDepth != 6 {
		t.Errorf("Engine.MaxDepth = %d, want %d", cfg.Engine.MaxDepth, 6)
	}
	if cfg.Engine.Timeout != 20*time.Second {
		t.Errorf("Engine.Timeout = %v, want %v", cfg.Engine.Timeout, 20*time.Second)
	}
	if cfg.Engine.ConcurrentRequestsLimit != 10 {
		t.Errorf("Engine.ConcurrentRequestsLimit = %d, want %d", cfg.Engine.ConcurrentRequestsLimit, 10)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wikirace-config-test-*")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configContent := `
cache:
  backing_store_path: /custom/path/cache.db
engine:
  max_depth: 8
  timeout: 45s
log:
  level: debug
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	origDir, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(origDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Cache.BackingStorePath != "/custom/path/cache.db" {
		t.Errorf("Cache.BackingStorePath = %q, want %q", cfg.Cache.BackingStorePath, "/custom/path/cache.db")
	}
	if cfg.Engine.MaxDepth != 8 {
		t.Errorf("Engine.MaxDepth = %d, want %d", cfg.Engine.MaxDepth, 8)
	}
	if cfg.Engine.Timeout != 45*time.Second {
		t.Errorf("Engine.Timeout = %v, want %v", cfg.Engine.Timeout, 45*time.Second)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wikirace-config-test-*")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origDir, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(origDir)

	os.Setenv("WIKIRACE_ENGINE_MAX_DEPTH", "12")
	os.Setenv("WIKIRACE_LOG_LEVEL", "warn")
	defer os.Unsetenv("WIKIRACE_ENGINE_MAX_DEPTH")
	defer os.Unsetenv("WIKIRACE_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Engine.MaxDepth != 12 {
		t.Errorf("Engine.MaxDepth = %d, want %d", cfg.Engine.MaxDepth, 12)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
}
