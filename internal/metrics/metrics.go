package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels successful rollup computations.
	OutcomeSuccess = "success"
	// OutcomeError labels failed rollup computations (fetch or input issues).
	OutcomeError = "error"
)

// Adjustment kind labels for scoreAdjustmentsTotal.
const (
	AdjustmentVisibility = "visibility"
	AdjustmentTrust      = "trust"
	AdjustmentComposite  = "composite"
)

var (
	rollupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aoer_engine",
			Name:      "rollups_total",
			Help:      "Total number of rollup computations handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	rollupDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aoer_engine",
			Name:      "rollup_seconds",
			Help:      "Rollup computation latency in seconds, fetch included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8},
		},
	)

	scoreAdjustmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aoer_engine",
			Name:      "score_adjustments_total",
			Help:      "Composite score adjustments served, partitioned by kind.",
		},
		[]string{"kind"},
	)
)

// Register attaches the engine's collectors to the supplied registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		rollupsTotal,
		rollupDurationSeconds,
		scoreAdjustmentsTotal,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRollup records one rollup computation's duration and outcome.
func ObserveRollup(duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	rollupsTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	rollupDurationSeconds.Observe(duration.Seconds())
}

// ObserveAdjustment counts one served score adjustment.
func ObserveAdjustment(kind string) {
	scoreAdjustmentsTotal.WithLabelValues(kind).Inc()
}
