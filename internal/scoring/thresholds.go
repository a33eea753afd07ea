package scoring

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dealershipai/aoer-engine/internal/exposure"
)

// ThresholdPack holds tunable recommendation cut-offs for both surfaces:
// the standalone reporting rules and the looser integration-layer rules.
type ThresholdPack struct {
	Standalone  exposure.Thresholds `yaml:"standalone"`
	Integration exposure.Thresholds `yaml:"integration"`
}

// LoadThresholdPack reads cut-offs from a YAML file. An empty path or a
// missing file yields the built-in defaults; fields left zero in the file
// also fall back per-field so a pack can override selectively.
func LoadThresholdPack(path string) (ThresholdPack, error) {
	pack := ThresholdPack{
		Standalone:  exposure.DefaultThresholds(),
		Integration: IntegrationThresholds(),
	}
	if path == "" {
		return pack, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pack, nil
		}
		return pack, fmt.Errorf("read threshold pack: %w", err)
	}
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return pack, fmt.Errorf("parse threshold pack: %w", err)
	}

	fillThresholds(&pack.Standalone, exposure.DefaultThresholds())
	fillThresholds(&pack.Integration, IntegrationThresholds())
	return pack, nil
}

func fillThresholds(t *exposure.Thresholds, defaults exposure.Thresholds) {
	if t.Exposure <= 0 {
		t.Exposure = defaults.Exposure
	}
	if t.CitationShare <= 0 {
		t.CitationShare = defaults.CitationShare
	}
	if t.ClickLoss <= 0 {
		t.ClickLoss = defaults.ClickLoss
	}
	if t.PriorityScore <= 0 {
		t.PriorityScore = defaults.PriorityScore
	}
}
