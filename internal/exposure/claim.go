package exposure

import (
	"math"

	"github.com/dealershipai/aoer-engine/internal/models"
)

// Claim score sub-signal weights; they sum to 100.
const (
	weightPresence   = 45.0
	weightProminence = 25.0
	weightNoCitation = 20.0
	weightDepth      = 10.0

	// depthSaturationTokens is the answer length at which the depth
	// sub-signal maxes out.
	depthSaturationTokens = 600.0
)

// prominenceSignal maps overview prominence to its 0-100 sub-signal value.
var prominenceSignal = map[models.AIPosition]float64{
	models.AIPositionTop:    100,
	models.AIPositionMid:    60,
	models.AIPositionBottom: 30,
	models.AIPositionNone:   0,
}

// ClaimScore rates how aggressively an AI overview claims a query, 0-100.
// A prominent, deep answer that excludes the tenant scores highest; a cited
// mention is far less risky even when present. A query without an AI
// overview carries zero claim risk.
func ClaimScore(obs models.Observation) float64 {
	if !obs.AIPresent {
		return 0
	}

	presence := 100.0
	prominence := prominenceSignal[obs.AIPosition]
	noCitation := 0.0
	if !obs.HasOurCitation {
		noCitation = 100
	}
	depth := math.Min(1, float64(obs.AITokens)/depthSaturationTokens) * 100

	score := (presence*weightPresence +
		prominence*weightProminence +
		noCitation*weightNoCitation +
		depth*weightDepth) / 100

	return clamp(score, 0, 100)
}
