package exposure

import (
	"math"
	"sort"

	"github.com/dealershipai/aoer-engine/internal/models"
)

const rankingPercentile = 95

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between the closest ranks. Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	pos := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

// PriorityScores derives per-query metrics for the batch and ranks them by
// remediation priority, descending, with input order breaking ties. Impact
// and claim risk contribute equally; search volume scales the result without
// gating it, so zero-volume queries keep the 0.4 floor.
//
// Impact and volume normalise against their 95th-percentile value rather
// than the max to resist single-outlier skew. With fewer than ~20
// observations the percentile collapses toward the largest value and most
// entries saturate at 1.0; callers interpreting priority at low volume
// should expect that compression.
func PriorityScores(observations []models.Observation) []models.QueryMetrics {
	if len(observations) == 0 {
		return nil
	}

	metrics := make([]models.QueryMetrics, 0, len(observations))
	losses := make([]float64, 0, len(observations))
	volumes := make([]float64, 0, len(observations))

	for _, obs := range observations {
		ctr := ComputeCTRMetrics(obs)
		loss := ctr.ClicksNoAI - ctr.ClicksWithAI
		if loss < 0 {
			loss = 0
		}
		metrics = append(metrics, models.QueryMetrics{
			Query:          obs.Query,
			Intent:         obs.Intent,
			Volume:         obs.Volume,
			ClaimScore:     ClaimScore(obs),
			BaselineCTR:    ctr.BaselineCTR,
			AIAdjustedCTR:  ctr.AIAdjustedCTR,
			ClickLoss:      loss,
			AIPresent:      obs.AIPresent,
			HasOurCitation: obs.HasOurCitation,
		})
		losses = append(losses, loss)
		volumes = append(volumes, obs.Volume)
	}

	p95Loss := Percentile(losses, rankingPercentile)
	p95Volume := Percentile(volumes, rankingPercentile)

	for i := range metrics {
		impactNorm := normalizeAgainst(metrics[i].ClickLoss, p95Loss)
		volumeNorm := normalizeAgainst(metrics[i].Volume, p95Volume)
		riskNorm := metrics[i].ClaimScore / 100
		metrics[i].PriorityScore = 100 * (0.5*impactNorm + 0.5*riskNorm) * (0.6*volumeNorm + 0.4)
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].PriorityScore > metrics[j].PriorityScore
	})
	return metrics
}

func normalizeAgainst(value, reference float64) float64 {
	if reference <= 0 {
		return 0
	}
	norm := value / reference
	if norm > 1 {
		return 1
	}
	return norm
}
