package exposure

import (
	"fmt"
	"math"
	"testing"

	"github.com/dealershipai/aoer-engine/internal/models"
)

func claimedBatch(n int, volume float64) []models.Observation {
	observations := make([]models.Observation, 0, n)
	for i := 0; i < n; i++ {
		observations = append(observations, models.Observation{
			Query:        fmt.Sprintf("query %d", i),
			Intent:       models.IntentLocal,
			Volume:       volume,
			SERPPosition: 1,
			AIPresent:    true,
			AIPosition:   models.AIPositionTop,
			AITokens:     600,
		})
	}
	return observations
}

func TestGenerateRollupDegenerateBatch(t *testing.T) {
	rollup := GenerateRollup(nil)
	if rollup.QueriesTotal != 0 || rollup.QueriesWithAI != 0 {
		t.Fatalf("expected zero counts, got %+v", rollup)
	}
	if rollup.AvgClaimScore != 0 || rollup.CitationShare != 0 || rollup.EstimatedMonthlyClickLoss != 0 {
		t.Fatalf("expected zero aggregates, got %+v", rollup)
	}
	if len(rollup.TopPriorityQueries) != 0 {
		t.Fatalf("expected empty top-priority list, got %d entries", len(rollup.TopPriorityQueries))
	}
	if rollup.GeneratedAt.IsZero() {
		t.Fatalf("expected generated_at to be set")
	}
}

func TestGenerateRollupTotals(t *testing.T) {
	observations := claimedBatch(12, 1000)
	observations[0].HasOurCitation = true
	observations[1].HasOurCitation = true
	observations = append(observations, models.Observation{
		Query: "unclaimed", Intent: models.IntentTrade, Volume: 500, SERPPosition: 2,
		AIPosition: models.AIPositionNone,
	})

	rollup := GenerateRollup(observations)
	if rollup.QueriesTotal != 13 {
		t.Fatalf("queries_total = %d, want 13", rollup.QueriesTotal)
	}
	if rollup.QueriesWithAI != 12 {
		t.Fatalf("queries_with_ai = %d, want 12", rollup.QueriesWithAI)
	}
	if math.Abs(rollup.CitationShare-2.0/13.0) > tolerance {
		t.Fatalf("citation_share = %v, want %v", rollup.CitationShare, 2.0/13.0)
	}
	if len(rollup.TopPriorityQueries) != topPriorityLimit {
		t.Fatalf("top-priority list = %d entries, want %d", len(rollup.TopPriorityQueries), topPriorityLimit)
	}

	// Loss totals over the whole batch, not just the trimmed top list.
	var wantLoss float64
	for _, obs := range observations {
		wantLoss += ClickLoss(obs)
	}
	if math.Abs(rollup.EstimatedMonthlyClickLoss-wantLoss) > tolerance {
		t.Fatalf("estimated_monthly_click_loss = %v, want %v", rollup.EstimatedMonthlyClickLoss, wantLoss)
	}
}

func TestCalculateTrendsImproving(t *testing.T) {
	previous := claimedBatch(4, 1000)
	current := make([]models.Observation, len(previous))
	for i, obs := range previous {
		obs.AIPresent = false
		obs.AIPosition = models.AIPositionNone
		obs.AITokens = 0
		current[i] = obs
	}

	report := CalculateTrends(current, previous)
	if report.Direction != models.TrendImproving {
		t.Fatalf("direction = %q, want %q", report.Direction, models.TrendImproving)
	}
	if report.ExposureChange >= 0 {
		t.Fatalf("expected negative exposure change, got %v", report.ExposureChange)
	}
	if report.ClickLossChange >= 0 {
		t.Fatalf("expected negative click-loss change, got %v", report.ClickLossChange)
	}
}

func TestCalculateTrendsStableWithinDeadband(t *testing.T) {
	window := claimedBatch(4, 1000)
	report := CalculateTrends(window, window)
	if report.Direction != models.TrendStable {
		t.Fatalf("direction = %q, want %q", report.Direction, models.TrendStable)
	}
	if report.ExposureChange != 0 || report.CitationShareChange != 0 {
		t.Fatalf("expected zero changes for identical windows, got %+v", report)
	}
}

func TestCalculateTrendsDecliningOnCitationDrop(t *testing.T) {
	// Exposure holds steady; losing every citation flips the trend negative.
	previous := claimedBatch(4, 1000)
	for i := range previous {
		previous[i].HasOurCitation = true
	}
	current := claimedBatch(4, 1000)

	report := CalculateTrends(current, previous)
	if report.Direction != models.TrendDeclining {
		t.Fatalf("direction = %q, want %q", report.Direction, models.TrendDeclining)
	}
	if report.CitationShareChange != -1 {
		t.Fatalf("citation_share_change = %v, want -1", report.CitationShareChange)
	}
}
