package models

// RollupRequest carries a raw observation batch for stateless rollup calls.
type RollupRequest struct {
	Observations []Observation `json:"observations" binding:"required"`
}

// ScoreAdjustRequest asks for an AOER adjustment of one composite base score.
type ScoreAdjustRequest struct {
	BaseScore float64 `json:"base_score" binding:"min=0,max=100"`
}

// ScoreAdjustResponse returns the adjusted composite score.
type ScoreAdjustResponse struct {
	TenantID      string  `json:"tenant_id"`
	BaseScore     float64 `json:"base_score"`
	AdjustedScore float64 `json:"adjusted_score"`
}

// CompositeRequest supplies the three externally-owned component scores.
type CompositeRequest struct {
	Visibility float64 `json:"visibility" binding:"min=0,max=100"`
	Trust      float64 `json:"trust" binding:"min=0,max=100"`
	UGCScore   float64 `json:"ugc_score" binding:"min=0,max=100"`
}

// CompositeBreakdown itemises the composite reputation calculation, with the
// AOER impact expressed in score points.
type CompositeBreakdown struct {
	AdjustedVisibility float64 `json:"adjusted_visibility"`
	AdjustedTrust      float64 `json:"adjusted_trust"`
	UGCScore           float64 `json:"ugc_score"`
	AOERImpact         float64 `json:"aoer_impact"`
}

// CompositeResult is the blended reputation score plus its breakdown.
type CompositeResult struct {
	TenantID        string             `json:"tenant_id"`
	Composite       float64            `json:"composite"`
	Breakdown       CompositeBreakdown `json:"breakdown"`
	ClickLossImpact float64            `json:"click_loss_impact"`
}
