package exposure

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dealershipai/aoer-engine/internal/models"
)

// Thresholds tunes the rule cut-offs for recommendation generation.
type Thresholds struct {
	Exposure      float64 `yaml:"exposure"`
	CitationShare float64 `yaml:"citationShare"`
	ClickLoss     float64 `yaml:"clickLoss"`
	PriorityScore float64 `yaml:"priorityScore"`
}

// DefaultThresholds returns the standalone reporting cut-offs. The score
// integration layer carries a deliberately looser set; see scoring.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Exposure:      0.7,
		CitationShare: 0.3,
		ClickLoss:     1000,
		PriorityScore: 80,
	}
}

// GenerateRecommendations applies the fixed rule set to a rollup. Rules are
// independent and non-exclusive; up to four recommendations fire.
func GenerateRecommendations(rollup models.AOERRollup) []models.Recommendation {
	return RecommendationsWithThresholds(rollup, DefaultThresholds())
}

// RecommendationsWithThresholds evaluates the rule set against custom
// cut-offs, e.g. from a tuned threshold pack.
func RecommendationsWithThresholds(rollup models.AOERRollup, t Thresholds) []models.Recommendation {
	recs := make([]models.Recommendation, 0, 4)

	if rollup.AOER.ProminenceVolumeWeighted > t.Exposure {
		recs = append(recs, models.Recommendation{
			ID:       uuid.NewString(),
			Type:     models.RecommendationContentOptimization,
			Priority: models.PriorityHigh,
			Message:  fmt.Sprintf("AI overviews claim %.0f%% of your monitored search volume", rollup.AOER.ProminenceVolumeWeighted*100),
			Action:   "Restructure high-priority pages so AI overviews cite them directly",
			Impact:   "Recovers organic visibility on queries dominated by AI answers",
		})
	}

	if rollup.CitationShare < t.CitationShare {
		recs = append(recs, models.Recommendation{
			ID:       uuid.NewString(),
			Type:     models.RecommendationCitationImprovement,
			Priority: models.PriorityHigh,
			Message:  fmt.Sprintf("Your content is cited in only %.0f%% of AI overviews", rollup.CitationShare*100),
			Action:   "Add structured data and authoritative sourcing to citation-worthy pages",
			Impact:   "Turns AI overviews from a threat into a referral channel",
		})
	}

	if rollup.EstimatedMonthlyClickLoss > t.ClickLoss {
		recs = append(recs, models.Recommendation{
			ID:       uuid.NewString(),
			Type:     models.RecommendationSnippetOptimization,
			Priority: models.PriorityMedium,
			Message:  fmt.Sprintf("An estimated %.0f monthly clicks are lost to AI answer surfaces", rollup.EstimatedMonthlyClickLoss),
			Action:   "Optimise titles and snippets on the highest-loss queries to win the remaining clicks",
			Impact:   "Claws back click share on pages still ranking organically",
		})
	}

	if count := countAbovePriority(rollup.TopPriorityQueries, t.PriorityScore); count > 0 {
		recs = append(recs, models.Recommendation{
			ID:       uuid.NewString(),
			Type:     models.RecommendationQueryFocus,
			Priority: models.PriorityMedium,
			Message:  fmt.Sprintf("%d queries carry a priority score above %.0f", count, t.PriorityScore),
			Action:   "Focus content work on the top-priority query list first",
			Impact:   "Concentrates effort where claim risk and click loss overlap",
		})
	}

	return recs
}

func countAbovePriority(metrics []models.QueryMetrics, threshold float64) int {
	count := 0
	for _, qm := range metrics {
		if qm.PriorityScore > threshold {
			count++
		}
	}
	return count
}
