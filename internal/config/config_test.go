package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AOER_ENGINE_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("server address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Provider.Kind != "http" {
		t.Fatalf("provider kind = %q, want http", cfg.Provider.Kind)
	}
	if cfg.Provider.HTTP.ObservationsPath != "/api/v1/query-checks" {
		t.Fatalf("observations path = %q", cfg.Provider.HTTP.ObservationsPath)
	}
	if cfg.Scoring.Window != 30*24*time.Hour {
		t.Fatalf("scoring window = %v, want 720h", cfg.Scoring.Window)
	}
	if cfg.Cache.Enabled {
		t.Fatalf("cache must be disabled by default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("AOER_ENGINE_CONFIG", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "aoer.yaml")
	if err := os.WriteFile(path, []byte(`server:
  address: ":9090"
provider:
  kind: postgres
  postgres:
    dsn: "postgres://localhost/aoer"
scoring:
  window: 168h
`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Fatalf("server address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Provider.Kind != "postgres" || cfg.Provider.Postgres.DSN == "" {
		t.Fatalf("unexpected provider config: %+v", cfg.Provider)
	}
	if cfg.Scoring.Window != 7*24*time.Hour {
		t.Fatalf("scoring window = %v, want 168h", cfg.Scoring.Window)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Server.MetricsAddress != ":2112" {
		t.Fatalf("metrics address = %q, want :2112", cfg.Server.MetricsAddress)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AOER_ENGINE_CONFIG", "")
	t.Setenv("AOER_ENGINE_SERVER_ADDRESS", ":7070")
	t.Setenv("AOER_ENGINE_PROVIDER_BASE_URL", "http://provider:9100")
	t.Setenv("AOER_ENGINE_SCORING_WINDOW", "336h")
	t.Setenv("AOER_ENGINE_CACHE_ENABLED", "true")
	t.Setenv("AOER_ENGINE_CACHE_ADDR", "valkey:6379")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Fatalf("server address = %q, want :7070", cfg.Server.Address)
	}
	if cfg.Provider.HTTP.BaseURL != "http://provider:9100" {
		t.Fatalf("base URL = %q", cfg.Provider.HTTP.BaseURL)
	}
	if cfg.Scoring.Window != 14*24*time.Hour {
		t.Fatalf("scoring window = %v, want 336h", cfg.Scoring.Window)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Addr != "valkey:6379" {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
}

func TestLoadRejectsUnknownProviderKind(t *testing.T) {
	t.Setenv("AOER_ENGINE_CONFIG", "")
	t.Setenv("AOER_ENGINE_PROVIDER_KIND", "kafka")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for unknown provider kind")
	}
}
