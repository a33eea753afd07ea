package exposure

import (
	"time"

	"github.com/dealershipai/aoer-engine/internal/models"
)

const (
	topPriorityLimit = 10

	exposureDeadband = 0.05
	citationDeadband = 0.05
)

// GenerateRollup summarises one reporting window: the four exposure ratios,
// average claim score, citation share, total estimated monthly click loss,
// counts, and the top queries by priority.
func GenerateRollup(observations []models.Observation) models.AOERRollup {
	ranked := PriorityScores(observations)

	rollup := models.AOERRollup{
		AOER:         ComputeAOER(observations),
		QueriesTotal: len(observations),
		GeneratedAt:  time.Now().UTC(),
	}

	var claimSum, lossSum float64
	cited := 0
	for _, qm := range ranked {
		claimSum += qm.ClaimScore
		lossSum += qm.ClickLoss
		if qm.AIPresent {
			rollup.QueriesWithAI++
		}
		if qm.HasOurCitation {
			cited++
		}
	}

	if len(ranked) > 0 {
		rollup.AvgClaimScore = claimSum / float64(len(ranked))
		rollup.CitationShare = float64(cited) / float64(len(ranked))
	}
	rollup.EstimatedMonthlyClickLoss = lossSum

	top := ranked
	if len(top) > topPriorityLimit {
		top = top[:topPriorityLimit]
	}
	rollup.TopPriorityQueries = top

	return rollup
}

// CalculateTrends rolls up both windows and classifies the movement.
// Rules are evaluated in order and the first match wins; exposure changes
// within the ±0.05 deadband are treated as noise, not a trend.
func CalculateTrends(current, previous []models.Observation) models.TrendReport {
	cur := GenerateRollup(current)
	prev := GenerateRollup(previous)

	report := models.TrendReport{
		Current:             cur,
		Previous:            prev,
		ExposureChange:      cur.AOER.ProminenceVolumeWeighted - prev.AOER.ProminenceVolumeWeighted,
		ClickLossChange:     cur.EstimatedMonthlyClickLoss - prev.EstimatedMonthlyClickLoss,
		CitationShareChange: cur.CitationShare - prev.CitationShare,
	}

	switch {
	case report.ExposureChange < -exposureDeadband || report.CitationShareChange > citationDeadband:
		report.Direction = models.TrendImproving
	case report.ExposureChange > exposureDeadband || report.CitationShareChange < -citationDeadband:
		report.Direction = models.TrendDeclining
	default:
		report.Direction = models.TrendStable
	}
	return report
}
