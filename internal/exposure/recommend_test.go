package exposure

import (
	"testing"

	"github.com/dealershipai/aoer-engine/internal/models"
)

func TestGenerateRecommendationsQuietBatch(t *testing.T) {
	// A cited mid overview on a zero-volume query trips no rule.
	observations := []models.Observation{
		{Query: "camry lease deals", Intent: models.IntentInventory,
			AIPresent: true, AIPosition: models.AIPositionMid, HasOurCitation: true},
	}

	recs := GenerateRecommendations(GenerateRollup(observations))
	if len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %d: %+v", len(recs), recs)
	}
}

func TestGenerateRecommendationsAllRulesFire(t *testing.T) {
	rollup := GenerateRollup(claimedBatch(10, 50000))

	recs := GenerateRecommendations(rollup)
	if len(recs) != 4 {
		t.Fatalf("expected all 4 rules to fire, got %d", len(recs))
	}

	wantTypes := []models.RecommendationType{
		models.RecommendationContentOptimization,
		models.RecommendationCitationImprovement,
		models.RecommendationSnippetOptimization,
		models.RecommendationQueryFocus,
	}
	seen := make(map[string]bool, len(recs))
	for i, rec := range recs {
		if rec.Type != wantTypes[i] {
			t.Fatalf("recommendation %d type = %q, want %q", i, rec.Type, wantTypes[i])
		}
		if rec.ID == "" || seen[rec.ID] {
			t.Fatalf("expected unique non-empty recommendation IDs, got %q", rec.ID)
		}
		seen[rec.ID] = true
		if rec.Message == "" || rec.Action == "" {
			t.Fatalf("recommendation %d missing message or action", i)
		}
	}
}

func TestRecommendationsWithCustomThresholds(t *testing.T) {
	rollup := GenerateRollup(claimedBatch(10, 50000))

	strict := Thresholds{
		Exposure:      2,
		CitationShare: 0,
		ClickLoss:     1e9,
		PriorityScore: 200,
	}
	if recs := RecommendationsWithThresholds(rollup, strict); len(recs) != 0 {
		t.Fatalf("expected no recommendations under strict thresholds, got %d", len(recs))
	}
}

func TestDefaultThresholds(t *testing.T) {
	d := DefaultThresholds()
	if d.Exposure != 0.7 || d.CitationShare != 0.3 || d.ClickLoss != 1000 || d.PriorityScore != 80 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}
