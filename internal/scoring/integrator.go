// Package scoring bridges the exposure metrics library to externally-owned
// composite indices (visibility, trust) for a tenant's trailing reporting
// window. Exposure data is best-effort here: any observation-source failure
// is logged and degrades to the unmodified base score, never propagated.
package scoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/dealershipai/aoer-engine/internal/exposure"
	"github.com/dealershipai/aoer-engine/internal/models"
)

// ObservationSource supplies observations for a tenant whose check timestamp
// falls at or after since.
type ObservationSource interface {
	FetchRecentObservations(ctx context.Context, tenantID string, since time.Time) ([]models.Observation, error)
}

const (
	exposurePenaltyFactor = 0.20
	citationBonusFactor   = 0.10

	citationTrustFactor = 0.25
	claimTrustFactor    = 0.15

	aoerImpactExposureFactor = -0.10
	aoerImpactCitationFactor = 0.05

	// DefaultWindow is the trailing observation window for score adjustments.
	DefaultWindow = 30 * 24 * time.Hour

	maxExampleQueries = 5

	// exampleClaimFloor filters the example queries attached to
	// recommendations down to those with meaningful claim risk.
	exampleClaimFloor = 50.0
)

// IntegrationThresholds returns the recommendation cut-offs used at this
// layer. They are deliberately looser than exposure.DefaultThresholds so the
// tenant is nudged before the standalone reporting rules fire; keep both
// sets distinct.
func IntegrationThresholds() exposure.Thresholds {
	return exposure.Thresholds{
		Exposure:      0.6,
		CitationShare: 0.3,
		ClickLoss:     500,
		PriorityScore: 80,
	}
}

// Integrator adjusts externally-owned composite scores using AOER signals.
type Integrator struct {
	logger     *slog.Logger
	source     ObservationSource
	window     time.Duration
	thresholds exposure.Thresholds
	now        func() time.Time
}

// NewIntegrator constructs an Integrator. A zero window falls back to the
// trailing 30 days and zero-valued thresholds fall back to the integration
// defaults.
func NewIntegrator(logger *slog.Logger, source ObservationSource, window time.Duration, thresholds exposure.Thresholds) *Integrator {
	if logger == nil {
		logger = slog.Default()
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if thresholds == (exposure.Thresholds{}) {
		thresholds = IntegrationThresholds()
	}
	return &Integrator{
		logger:     logger,
		source:     source,
		window:     window,
		thresholds: thresholds,
		now:        time.Now,
	}
}

// fetchWindow returns the tenant's observations for the trailing window.
// Source failures and malformed rows are logged and dropped so score
// adjustment always has a usable (possibly empty) batch.
func (i *Integrator) fetchWindow(ctx context.Context, tenantID string) []models.Observation {
	if i.source == nil {
		return nil
	}
	since := i.now().Add(-i.window)
	observations, err := i.source.FetchRecentObservations(ctx, tenantID, since)
	if err != nil {
		i.logger.Warn("observation fetch failed, scores fall back to base values",
			slog.String("tenant_id", tenantID), slog.Any("error", err))
		return nil
	}

	valid := observations[:0]
	for idx := range observations {
		observations[idx].Normalize()
		if err := observations[idx].Validate(); err != nil {
			i.logger.Warn("dropping malformed observation", slog.Any("error", err))
			continue
		}
		valid = append(valid, observations[idx])
	}
	return valid
}

// AdjustVisibility scales a base visibility score by AOER exposure. Exposure
// crowds visibility down; citations within AI overviews partially recover it.
// With no observations the base score passes through unchanged.
func (i *Integrator) AdjustVisibility(ctx context.Context, tenantID string, baseScore float64) float64 {
	observations := i.fetchWindow(ctx, tenantID)
	if len(observations) == 0 {
		return baseScore
	}
	rollup := exposure.GenerateRollup(observations)
	return adjustVisibilityWith(rollup, baseScore)
}

// AdjustTrust adds AOER-derived trust signals onto a base trust score.
// Citations and low average claim risk are independent positive signals,
// added rather than multiplied. With no observations the base score passes
// through unchanged.
func (i *Integrator) AdjustTrust(ctx context.Context, tenantID string, baseScore float64) float64 {
	observations := i.fetchWindow(ctx, tenantID)
	if len(observations) == 0 {
		return baseScore
	}
	rollup := exposure.GenerateRollup(observations)
	return adjustTrustWith(rollup, baseScore)
}

// CompositeReputation blends adjusted visibility, adjusted trust, and the
// UGC score into one reputation figure plus its breakdown. With no
// observations it returns the plain average of the three inputs and a zero
// AOER impact.
func (i *Integrator) CompositeReputation(ctx context.Context, tenantID string, visibility, trust, ugcScore float64) models.CompositeResult {
	result := models.CompositeResult{TenantID: tenantID}

	observations := i.fetchWindow(ctx, tenantID)
	if len(observations) == 0 {
		result.Composite = clamp(mean(visibility, trust, ugcScore), 0, 100)
		result.Breakdown = models.CompositeBreakdown{
			AdjustedVisibility: visibility,
			AdjustedTrust:      trust,
			UGCScore:           ugcScore,
		}
		return result
	}

	rollup := exposure.GenerateRollup(observations)
	adjustedVisibility := adjustVisibilityWith(rollup, visibility)
	adjustedTrust := adjustTrustWith(rollup, trust)

	aoerImpact := rollup.AOER.ProminenceVolumeWeighted*aoerImpactExposureFactor +
		rollup.CitationShare*aoerImpactCitationFactor

	result.Composite = clamp(mean(adjustedVisibility, adjustedTrust, ugcScore)+aoerImpact*100, 0, 100)
	result.Breakdown = models.CompositeBreakdown{
		AdjustedVisibility: adjustedVisibility,
		AdjustedTrust:      adjustedTrust,
		UGCScore:           ugcScore,
		AOERImpact:         aoerImpact * 100,
	}
	result.ClickLossImpact = rollup.EstimatedMonthlyClickLoss
	return result
}

// OptimizationRecommendations emits up to three tenant-facing
// recommendations using this layer's looser thresholds, each carrying
// example queries drawn from the top-priority list.
func (i *Integrator) OptimizationRecommendations(ctx context.Context, tenantID string) []models.Recommendation {
	observations := i.fetchWindow(ctx, tenantID)
	if len(observations) == 0 {
		return nil
	}
	rollup := exposure.GenerateRollup(observations)

	recs := make([]models.Recommendation, 0, 3)
	for _, rec := range exposure.RecommendationsWithThresholds(rollup, i.thresholds) {
		switch rec.Type {
		case models.RecommendationContentOptimization:
			rec.ExampleQueries = exampleQueries(rollup.TopPriorityQueries, func(qm models.QueryMetrics) bool {
				return qm.AIPresent && qm.ClaimScore >= exampleClaimFloor
			})
		case models.RecommendationCitationImprovement:
			rec.ExampleQueries = exampleQueries(rollup.TopPriorityQueries, func(qm models.QueryMetrics) bool {
				return qm.AIPresent && !qm.HasOurCitation
			})
		case models.RecommendationSnippetOptimization:
			rec.ExampleQueries = exampleQueries(rollup.TopPriorityQueries, func(qm models.QueryMetrics) bool {
				return qm.ClickLoss > 0
			})
		default:
			// query_focus belongs to the standalone reporting surface.
			continue
		}
		recs = append(recs, rec)
	}
	return recs
}

func adjustVisibilityWith(rollup models.AOERRollup, baseScore float64) float64 {
	exposurePenalty := rollup.AOER.ProminenceVolumeWeighted * exposurePenaltyFactor
	citationBonus := rollup.CitationShare * citationBonusFactor
	return clamp(baseScore*(1-exposurePenalty+citationBonus), 0, 100)
}

func adjustTrustWith(rollup models.AOERRollup, baseScore float64) float64 {
	citationBoost := rollup.CitationShare * citationTrustFactor
	claimBoost := (1 - rollup.AvgClaimScore/100) * claimTrustFactor
	return clamp(baseScore+(citationBoost+claimBoost)*100, 0, 100)
}

func exampleQueries(metrics []models.QueryMetrics, match func(models.QueryMetrics) bool) []string {
	queries := make([]string, 0, maxExampleQueries)
	for _, qm := range metrics {
		if !match(qm) {
			continue
		}
		queries = append(queries, qm.Query)
		if len(queries) == maxExampleQueries {
			break
		}
	}
	return queries
}

func mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
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
