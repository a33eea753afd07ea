package exposure

import (
	"github.com/dealershipai/aoer-engine/internal/models"
)

// prominenceWeight scales an AI-present row's contribution to the
// prominence-weighted ratios.
var prominenceWeight = map[models.AIPosition]float64{
	models.AIPositionTop:    1.0,
	models.AIPositionMid:    0.6,
	models.AIPositionBottom: 0.3,
	models.AIPositionNone:   0,
}

// ComputeAOER derives the four exposure ratios for a batch. The ratios are
// independent views of the same phenomenon at increasing nuance; callers
// should key decisions on ProminenceVolumeWeighted and treat the rest as
// diagnostics. Empty batches and all-zero volumes yield zero-valued metrics.
func ComputeAOER(observations []models.Observation) models.AOERMetrics {
	n := float64(len(observations))
	if n == 0 {
		return models.AOERMetrics{}
	}

	var totalVolume, aiCount, aiVolume, promSum, promVolumeSum float64
	for _, obs := range observations {
		totalVolume += obs.Volume
		if !obs.AIPresent {
			continue
		}
		aiCount++
		aiVolume += obs.Volume
		w := prominenceWeight[obs.AIPosition]
		promSum += w
		promVolumeSum += w * obs.Volume
	}

	metrics := models.AOERMetrics{
		Unweighted:         aiCount / n,
		ProminenceWeighted: promSum / n,
	}
	if totalVolume > 0 {
		metrics.VolumeWeighted = aiVolume / totalVolume
		metrics.ProminenceVolumeWeighted = promVolumeSum / totalVolume
	}
	return metrics
}

// ComputeAOERByIntent partitions the batch by intent and computes exposure
// ratios per segment. Intents with no observations are omitted rather than
// zero-filled.
func ComputeAOERByIntent(observations []models.Observation) map[models.Intent]models.AOERMetrics {
	segments := make(map[models.Intent][]models.Observation)
	for _, obs := range observations {
		segments[obs.Intent] = append(segments[obs.Intent], obs)
	}

	result := make(map[models.Intent]models.AOERMetrics, len(segments))
	for intent, segment := range segments {
		result[intent] = ComputeAOER(segment)
	}
	return result
}
