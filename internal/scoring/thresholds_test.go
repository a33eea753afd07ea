package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dealershipai/aoer-engine/internal/exposure"
)

func TestLoadThresholdPackEmptyPath(t *testing.T) {
	pack, err := LoadThresholdPack("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if pack.Standalone != exposure.DefaultThresholds() {
		t.Fatalf("unexpected standalone defaults: %+v", pack.Standalone)
	}
	if pack.Integration != IntegrationThresholds() {
		t.Fatalf("unexpected integration defaults: %+v", pack.Integration)
	}
}

func TestLoadThresholdPackMissingFile(t *testing.T) {
	pack, err := LoadThresholdPack("non-existent.yaml")
	if err != nil {
		t.Fatalf("expected nil error for a missing pack, got %v", err)
	}
	if pack.Standalone != exposure.DefaultThresholds() {
		t.Fatalf("expected defaults for a missing pack, got %+v", pack.Standalone)
	}
}

func TestLoadThresholdPackPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yaml")
	if err := os.WriteFile(path, []byte(`standalone:
  exposure: 0.5
integration:
  clickLoss: 250
`), 0644); err != nil {
		t.Fatalf("write pack: %v", err)
	}

	pack, err := LoadThresholdPack(path)
	if err != nil {
		t.Fatalf("load pack: %v", err)
	}
	if pack.Standalone.Exposure != 0.5 {
		t.Fatalf("standalone exposure = %v, want 0.5", pack.Standalone.Exposure)
	}
	// Unset fields fall back to their defaults.
	if pack.Standalone.ClickLoss != 1000 || pack.Standalone.PriorityScore != 80 {
		t.Fatalf("expected standalone fallbacks, got %+v", pack.Standalone)
	}
	if pack.Integration.ClickLoss != 250 {
		t.Fatalf("integration clickLoss = %v, want 250", pack.Integration.ClickLoss)
	}
	if pack.Integration.Exposure != 0.6 {
		t.Fatalf("integration exposure = %v, want 0.6", pack.Integration.Exposure)
	}
}

func TestLoadThresholdPackMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yaml")
	if err := os.WriteFile(path, []byte("standalone: [not a map"), 0644); err != nil {
		t.Fatalf("write pack: %v", err)
	}
	if _, err := LoadThresholdPack(path); err == nil {
		t.Fatalf("expected parse error for malformed pack")
	}
}
