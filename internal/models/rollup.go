package models

import "time"

// QueryMetrics carries the derived per-observation exposure figures.
type QueryMetrics struct {
	Query          string  `json:"query"`
	Intent         Intent  `json:"intent"`
	Volume         float64 `json:"volume"`
	ClaimScore     float64 `json:"claim_score"`
	BaselineCTR    float64 `json:"baseline_ctr"`
	AIAdjustedCTR  float64 `json:"ai_adjusted_ctr"`
	ClickLoss      float64 `json:"click_loss"`
	PriorityScore  float64 `json:"priority_score"`
	AIPresent      bool    `json:"ai_present"`
	HasOurCitation bool    `json:"has_our_citation"`
}

// AOERMetrics holds the four exposure ratios over a batch, each in [0,1].
// ProminenceVolumeWeighted is the most informative view and the one the
// score integration layer keys decisions on; the rest are diagnostics.
type AOERMetrics struct {
	Unweighted               float64 `json:"unweighted"`
	VolumeWeighted           float64 `json:"volume_weighted"`
	ProminenceWeighted       float64 `json:"prominence_weighted"`
	ProminenceVolumeWeighted float64 `json:"prominence_volume_weighted"`
}

// AOERRollup summarises one reporting window.
type AOERRollup struct {
	AOER                      AOERMetrics    `json:"aoer"`
	AvgClaimScore             float64        `json:"avg_claim_score"`
	CitationShare             float64        `json:"citation_share"`
	EstimatedMonthlyClickLoss float64        `json:"estimated_monthly_click_loss"`
	QueriesTotal              int            `json:"queries_total"`
	QueriesWithAI             int            `json:"queries_with_ai"`
	TopPriorityQueries        []QueryMetrics `json:"top_priority_queries"`
	GeneratedAt               time.Time      `json:"generated_at"`
}

// TrendDirection labels the window-over-window exposure movement.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// TrendReport diffs two reporting windows.
type TrendReport struct {
	Current             AOERRollup     `json:"current"`
	Previous            AOERRollup     `json:"previous"`
	ExposureChange      float64        `json:"exposure_change"`
	ClickLossChange     float64        `json:"click_loss_change"`
	CitationShareChange float64        `json:"citation_share_change"`
	Direction           TrendDirection `json:"direction"`
}

// RecommendationType tags the remediation family a recommendation belongs to.
type RecommendationType string

const (
	RecommendationContentOptimization RecommendationType = "content_optimization"
	RecommendationCitationImprovement RecommendationType = "citation_improvement"
	RecommendationSnippetOptimization RecommendationType = "snippet_optimization"
	RecommendationQueryFocus          RecommendationType = "query_focus"
)

// RecommendationPriority orders recommendations for display.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

// Recommendation is a tenant-facing remediation suggestion.
type Recommendation struct {
	ID             string                 `json:"id"`
	Type           RecommendationType     `json:"type"`
	Priority       RecommendationPriority `json:"priority"`
	Message        string                 `json:"message"`
	Action         string                 `json:"action"`
	Impact         string                 `json:"impact"`
	ExampleQueries []string               `json:"example_queries,omitempty"`
}

// ClaimScoreBucket counts observations whose claim score falls in [Min, Max).
type ClaimScoreBucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// IntentClickLoss aggregates estimated click loss for one intent segment.
type IntentClickLoss struct {
	Intent         Intent  `json:"intent"`
	TotalClickLoss float64 `json:"total_click_loss"`
	Queries        int     `json:"queries"`
}

// ClickLossAnalysis is the dashboard view of where click loss concentrates.
type ClickLossAnalysis struct {
	TotalClickLoss         float64            `json:"total_click_loss"`
	ByIntent               []IntentClickLoss  `json:"by_intent"`
	ClaimScoreDistribution []ClaimScoreBucket `json:"claim_score_distribution"`
}
