package exposure

import (
	"sort"

	"github.com/dealershipai/aoer-engine/internal/models"
)

// claimScoreBands define the histogram edges for the claim-score
// distribution tiles. The last band is inclusive of 100.
var claimScoreBands = []models.ClaimScoreBucket{
	{Label: "minimal", Min: 0, Max: 20},
	{Label: "low", Min: 20, Max: 40},
	{Label: "moderate", Min: 40, Max: 60},
	{Label: "high", Min: 60, Max: 80},
	{Label: "severe", Min: 80, Max: 100},
}

// ClaimScoreDistribution buckets per-query claim scores into fixed severity
// bands. Every band is reported, including empty ones, so dashboards render
// a stable histogram.
func ClaimScoreDistribution(metrics []models.QueryMetrics) []models.ClaimScoreBucket {
	buckets := append([]models.ClaimScoreBucket(nil), claimScoreBands...)
	for _, qm := range metrics {
		for i := range buckets {
			upperInclusive := i == len(buckets)-1
			if qm.ClaimScore >= buckets[i].Min &&
				(qm.ClaimScore < buckets[i].Max || (upperInclusive && qm.ClaimScore <= buckets[i].Max)) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// ClickLossByIntent aggregates estimated click loss per intent segment,
// sorted by descending loss. Intents with no observations are omitted.
func ClickLossByIntent(metrics []models.QueryMetrics) []models.IntentClickLoss {
	totals := make(map[models.Intent]*models.IntentClickLoss)
	for _, qm := range metrics {
		agg, ok := totals[qm.Intent]
		if !ok {
			agg = &models.IntentClickLoss{Intent: qm.Intent}
			totals[qm.Intent] = agg
		}
		agg.TotalClickLoss += qm.ClickLoss
		agg.Queries++
	}

	segments := make([]models.IntentClickLoss, 0, len(totals))
	for _, agg := range totals {
		segments = append(segments, *agg)
	}
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].TotalClickLoss > segments[j].TotalClickLoss
	})
	return segments
}
