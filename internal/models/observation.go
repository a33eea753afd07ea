package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Intent classifies the commercial intent behind a monitored search query.
type Intent string

const (
	IntentLocal     Intent = "local"
	IntentInventory Intent = "inventory"
	IntentFinance   Intent = "finance"
	IntentTrade     Intent = "trade"
	IntentInfo      Intent = "info"
	IntentService   Intent = "service"
	IntentBrand     Intent = "brand"
)

// Intents returns the closed set of query intents in reporting order.
func Intents() []Intent {
	return []Intent{
		IntentLocal,
		IntentInventory,
		IntentFinance,
		IntentTrade,
		IntentInfo,
		IntentService,
		IntentBrand,
	}
}

// AIPosition ranks how prominently an AI overview renders on the results page.
type AIPosition string

const (
	AIPositionTop    AIPosition = "top"
	AIPositionMid    AIPosition = "mid"
	AIPositionBottom AIPosition = "bottom"
	AIPositionNone   AIPosition = "none"
)

// Observation is one measurement of how a single search query currently
// resolves. Upstream providers know this record as a "query check".
// SERPPosition and AITokens use zero as the explicit "not observed" default.
type Observation struct {
	Query           string     `json:"query" validate:"required"`
	Intent          Intent     `json:"intent" validate:"required,oneof=local inventory finance trade info service brand"`
	Volume          float64    `json:"volume" validate:"gte=0"`
	SERPPosition    int        `json:"serp_position,omitempty" validate:"gte=0"`
	AIPresent       bool       `json:"ai_present"`
	AIPosition      AIPosition `json:"ai_position" validate:"oneof=top mid bottom none"`
	HasOurCitation  bool       `json:"has_our_citation"`
	AITokens        int        `json:"ai_tokens,omitempty" validate:"gte=0"`
	AILinksCount    int        `json:"ai_links_count,omitempty"`
	PAAPresent      bool       `json:"paa_present,omitempty"`
	MapPackPresent  bool       `json:"map_pack_present,omitempty"`
	ShoppingPresent bool       `json:"shopping_present,omitempty"`
	CheckedAt       time.Time  `json:"checked_at,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize fills explicit defaults for optional fields a provider may omit.
func (o *Observation) Normalize() {
	if o.AIPosition == "" && !o.AIPresent {
		o.AIPosition = AIPositionNone
	}
}

// Validate reports the first invariant violated by the observation.
func (o Observation) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("observation %q: %w", o.Query, err)
	}
	if !o.AIPresent && o.AIPosition != AIPositionNone {
		return fmt.Errorf("observation %q: ai_position must be %q when ai_present is false", o.Query, AIPositionNone)
	}
	return nil
}

// ValidateBatch normalizes every observation in place and fails fast on the
// first malformed record.
func ValidateBatch(observations []Observation) error {
	for i := range observations {
		observations[i].Normalize()
		if err := observations[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
