package exposure

import (
	"math"
	"testing"

	"github.com/dealershipai/aoer-engine/internal/models"
)

const tolerance = 1e-9

func TestBaselineCTRTable(t *testing.T) {
	cases := []struct {
		rank int
		want float64
	}{
		{1, 0.28},
		{2, 0.16},
		{3, 0.11},
		{4, 0.08},
		{5, 0.06},
		{6, 0.03},
		{42, 0.03},
		{0, 0.03}, // not ranked
	}
	for _, tc := range cases {
		if got := BaselineCTR(tc.rank); got != tc.want {
			t.Fatalf("BaselineCTR(%d) = %v, want %v", tc.rank, got, tc.want)
		}
	}
}

func TestComputeCTRMetricsNoOverview(t *testing.T) {
	obs := models.Observation{
		Query:        "trade in value calculator",
		Intent:       models.IntentTrade,
		Volume:       1000,
		SERPPosition: 1,
		AIPresent:    false,
		AIPosition:   models.AIPositionNone,
	}

	m := ComputeCTRMetrics(obs)
	if m.ClicksWithAI != m.ClicksNoAI {
		t.Fatalf("expected identical click estimates without an overview, got %v vs %v", m.ClicksWithAI, m.ClicksNoAI)
	}
	if got := ClickLoss(obs); got != 0 {
		t.Fatalf("expected zero click loss without an overview, got %v", got)
	}
}

func TestClickLossTopOverview(t *testing.T) {
	obs := models.Observation{
		Query:        "toyota dealership near me",
		Intent:       models.IntentLocal,
		Volume:       1000,
		SERPPosition: 3,
		AIPresent:    true,
		AIPosition:   models.AIPositionTop,
		AITokens:     600,
	}

	// 1000 * 0.11 baseline clicks, dampened to 55% by a top overview.
	want := 1000*0.11 - 1000*0.11*0.55
	if got := ClickLoss(obs); math.Abs(got-want) > tolerance {
		t.Fatalf("ClickLoss = %v, want %v", got, want)
	}
}

func TestClickLossProminenceOrdering(t *testing.T) {
	base := models.Observation{
		Query:        "auto loan rates",
		Intent:       models.IntentFinance,
		Volume:       500,
		SERPPosition: 2,
		AIPresent:    true,
	}

	top, mid, bottom := base, base, base
	top.AIPosition = models.AIPositionTop
	mid.AIPosition = models.AIPositionMid
	bottom.AIPosition = models.AIPositionBottom

	if !(ClickLoss(top) > ClickLoss(mid) && ClickLoss(mid) > ClickLoss(bottom)) {
		t.Fatalf("expected strictly decreasing loss by prominence, got top=%v mid=%v bottom=%v",
			ClickLoss(top), ClickLoss(mid), ClickLoss(bottom))
	}
	if ClickLoss(bottom) <= 0 {
		t.Fatalf("expected positive loss for a bottom overview, got %v", ClickLoss(bottom))
	}
}

func TestClickLossZeroVolume(t *testing.T) {
	obs := models.Observation{
		Query:      "is awd worth it",
		Intent:     models.IntentInfo,
		AIPresent:  true,
		AIPosition: models.AIPositionTop,
	}
	if got := ClickLoss(obs); got != 0 {
		t.Fatalf("expected zero loss at zero volume, got %v", got)
	}
}
