// Package services hosts the facade the transport layer calls into.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dealershipai/aoer-engine/internal/exposure"
	"github.com/dealershipai/aoer-engine/internal/metrics"
	"github.com/dealershipai/aoer-engine/internal/models"
	"github.com/dealershipai/aoer-engine/internal/scoring"
	"github.com/dealershipai/aoer-engine/internal/utils"
)

// ObservationProvider extends the integrator's source contract with bounded
// window fetches used for trend comparison.
type ObservationProvider interface {
	scoring.ObservationSource
	FetchWindowObservations(ctx context.Context, tenantID string, start, end time.Time) ([]models.Observation, error)
}

// AOERService fronts rollup generation, trend reports, recommendations, and
// composite score adjustments.
type AOERService struct {
	logger     *slog.Logger
	provider   ObservationProvider
	integrator *scoring.Integrator
	thresholds scoring.ThresholdPack
	window     time.Duration
	latencies  *utils.LatencyTracker
	now        func() time.Time
}

// NewAOERService constructs the service facade. A zero window falls back to
// the trailing 30 days.
func NewAOERService(logger *slog.Logger, provider ObservationProvider, integrator *scoring.Integrator, thresholds scoring.ThresholdPack, window time.Duration) *AOERService {
	if logger == nil {
		logger = slog.Default()
	}
	if window <= 0 {
		window = scoring.DefaultWindow
	}
	return &AOERService{
		logger:     logger,
		provider:   provider,
		integrator: integrator,
		thresholds: thresholds,
		window:     window,
		latencies:  utils.NewLatencyTracker(1024),
		now:        time.Now,
	}
}

// RollupFromObservations validates a caller-supplied batch and rolls it up.
// This is the stateless surface; malformed input fails fast.
func (s *AOERService) RollupFromObservations(observations []models.Observation) (models.AOERRollup, error) {
	start := time.Now()
	if err := models.ValidateBatch(observations); err != nil {
		metrics.ObserveRollup(time.Since(start), metrics.OutcomeError)
		return models.AOERRollup{}, err
	}
	rollup := exposure.GenerateRollup(observations)
	s.observeRollup(time.Since(start))
	return rollup, nil
}

// TenantRollup fetches the tenant's trailing window and rolls it up.
func (s *AOERService) TenantRollup(ctx context.Context, tenantID string) (models.AOERRollup, error) {
	start := time.Now()
	observations, err := s.fetchCurrentWindow(ctx, tenantID)
	if err != nil {
		metrics.ObserveRollup(time.Since(start), metrics.OutcomeError)
		return models.AOERRollup{}, err
	}
	rollup := exposure.GenerateRollup(observations)
	s.observeRollup(time.Since(start))
	return rollup, nil
}

// TenantRollupByIntent computes per-intent exposure ratios for the trailing
// window. Intents with no observations are omitted.
func (s *AOERService) TenantRollupByIntent(ctx context.Context, tenantID string) (map[models.Intent]models.AOERMetrics, error) {
	observations, err := s.fetchCurrentWindow(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return exposure.ComputeAOERByIntent(observations), nil
}

// TenantTrends compares the trailing window against the one before it.
func (s *AOERService) TenantTrends(ctx context.Context, tenantID string) (models.TrendReport, error) {
	now := s.now().UTC()
	currentStart, previousStart, previousEnd := utils.TrendWindows(now, s.window)

	current, err := s.fetchWindow(ctx, tenantID, currentStart, now)
	if err != nil {
		return models.TrendReport{}, err
	}
	previous, err := s.fetchWindow(ctx, tenantID, previousStart, previousEnd)
	if err != nil {
		return models.TrendReport{}, err
	}
	return exposure.CalculateTrends(current, previous), nil
}

// TenantClickLoss breaks estimated click loss down by intent and claim-score
// severity for the trailing window.
func (s *AOERService) TenantClickLoss(ctx context.Context, tenantID string) (models.ClickLossAnalysis, error) {
	observations, err := s.fetchCurrentWindow(ctx, tenantID)
	if err != nil {
		return models.ClickLossAnalysis{}, err
	}
	ranked := exposure.PriorityScores(observations)

	analysis := models.ClickLossAnalysis{
		ByIntent:               exposure.ClickLossByIntent(ranked),
		ClaimScoreDistribution: exposure.ClaimScoreDistribution(ranked),
	}
	for _, qm := range ranked {
		analysis.TotalClickLoss += qm.ClickLoss
	}
	return analysis, nil
}

// ReportRecommendations applies the standalone reporting rules to a rollup.
func (s *AOERService) ReportRecommendations(rollup models.AOERRollup) []models.Recommendation {
	return exposure.RecommendationsWithThresholds(rollup, s.thresholds.Standalone)
}

// TenantRecommendations emits the integration layer's eager nudges.
func (s *AOERService) TenantRecommendations(ctx context.Context, tenantID string) []models.Recommendation {
	if s.integrator == nil {
		return nil
	}
	return s.integrator.OptimizationRecommendations(ctx, tenantID)
}

// AdjustVisibility applies the AOER visibility adjustment for a tenant.
func (s *AOERService) AdjustVisibility(ctx context.Context, tenantID string, baseScore float64) float64 {
	metrics.ObserveAdjustment(metrics.AdjustmentVisibility)
	if s.integrator == nil {
		return baseScore
	}
	return s.integrator.AdjustVisibility(ctx, tenantID, baseScore)
}

// AdjustTrust applies the AOER trust adjustment for a tenant.
func (s *AOERService) AdjustTrust(ctx context.Context, tenantID string, baseScore float64) float64 {
	metrics.ObserveAdjustment(metrics.AdjustmentTrust)
	if s.integrator == nil {
		return baseScore
	}
	return s.integrator.AdjustTrust(ctx, tenantID, baseScore)
}

// CompositeReputation blends the three component scores for a tenant.
func (s *AOERService) CompositeReputation(ctx context.Context, tenantID string, req models.CompositeRequest) models.CompositeResult {
	metrics.ObserveAdjustment(metrics.AdjustmentComposite)
	if s.integrator == nil {
		return models.CompositeResult{
			TenantID:  tenantID,
			Composite: (req.Visibility + req.Trust + req.UGCScore) / 3,
			Breakdown: models.CompositeBreakdown{
				AdjustedVisibility: req.Visibility,
				AdjustedTrust:      req.Trust,
				UGCScore:           req.UGCScore,
			},
		}
	}
	return s.integrator.CompositeReputation(ctx, tenantID, req.Visibility, req.Trust, req.UGCScore)
}

// LatencyP95 returns the current p95 rollup latency.
func (s *AOERService) LatencyP95() time.Duration {
	if s.latencies == nil {
		return 0
	}
	return s.latencies.Percentile(95)
}

func (s *AOERService) fetchCurrentWindow(ctx context.Context, tenantID string) ([]models.Observation, error) {
	since := s.now().UTC().Add(-s.window)
	return s.fetchWindow(ctx, tenantID, since, s.now().UTC())
}

func (s *AOERService) fetchWindow(ctx context.Context, tenantID string, start, end time.Time) ([]models.Observation, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("observation provider not configured")
	}
	observations, err := s.provider.FetchWindowObservations(ctx, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch observations: %w", err)
	}

	valid := observations[:0]
	for i := range observations {
		observations[i].Normalize()
		if err := observations[i].Validate(); err != nil {
			s.logger.Warn("dropping malformed observation", slog.String("tenant_id", tenantID), slog.Any("error", err))
			continue
		}
		valid = append(valid, observations[i])
	}
	return valid, nil
}

func (s *AOERService) observeRollup(duration time.Duration) {
	s.latencies.Observe(duration)
	metrics.ObserveRollup(duration, metrics.OutcomeSuccess)
	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		s.logger.Info("rollup latency", slog.Duration("p95", s.latencies.Percentile(95)), slog.Int("samples", count))
	}
}
