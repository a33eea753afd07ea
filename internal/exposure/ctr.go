// Package exposure implements the AI-Overview Exposure Rate (AOER) analytics:
// per-query claim scores, click-loss estimates, batch exposure ratios,
// priority ranking, and reporting-window rollups. All functions are pure and
// total over validated observations; degenerate batches produce zero-valued
// aggregates instead of dividing by zero.
package exposure

import (
	"github.com/dealershipai/aoer-engine/internal/models"
)

// baselineCTRByRank holds empirical organic click-through rates for the top
// five organic positions. The steep decay past position five flattens into
// the long-tail fallback.
var baselineCTRByRank = map[int]float64{
	1: 0.28,
	2: 0.16,
	3: 0.11,
	4: 0.08,
	5: 0.06,
}

const fallbackCTR = 0.03

// aiDampening maps AI-overview prominence to the factor applied to organic
// CTR when an overview is present. The more prominent the overview, the more
// it suppresses organic clicks.
var aiDampening = map[models.AIPosition]float64{
	models.AIPositionTop:    0.55,
	models.AIPositionMid:    0.70,
	models.AIPositionBottom: 0.85,
	models.AIPositionNone:   1.00,
}

// BaselineCTR returns the organic click-through rate for an organic rank.
// Ranks past five and unranked queries (rank 0) use the long-tail fallback.
func BaselineCTR(rank int) float64 {
	if ctr, ok := baselineCTRByRank[rank]; ok {
		return ctr
	}
	return fallbackCTR
}

// CTRMetrics bundles the click figures derived for one observation.
type CTRMetrics struct {
	BaselineCTR   float64
	AIAdjustedCTR float64
	ClicksNoAI    float64
	ClicksWithAI  float64
}

// ComputeCTRMetrics derives baseline and AI-adjusted click estimates for one
// observation. When no AI overview is present the adjusted figures equal the
// baseline.
func ComputeCTRMetrics(obs models.Observation) CTRMetrics {
	base := BaselineCTR(obs.SERPPosition)
	damp, ok := aiDampening[obs.AIPosition]
	if !ok {
		damp = 1.0
	}

	m := CTRMetrics{
		BaselineCTR:   base,
		AIAdjustedCTR: base * damp,
	}
	m.ClicksNoAI = obs.Volume * base
	if obs.AIPresent {
		m.ClicksWithAI = obs.Volume * m.AIAdjustedCTR
	} else {
		m.ClicksWithAI = m.ClicksNoAI
	}
	return m
}

// ClickLoss estimates absolute monthly organic clicks displaced by the AI
// overview. Never negative; zero by construction when no overview is present.
func ClickLoss(obs models.Observation) float64 {
	m := ComputeCTRMetrics(obs)
	loss := m.ClicksNoAI - m.ClicksWithAI
	if loss < 0 {
		return 0
	}
	return loss
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
