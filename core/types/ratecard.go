// Package types - Rate card configuration
package types

import "github.com/shopspring/decimal"

// MessageTier is one bracket of the volume rate schedule. The bracket
// covers quantities up to and including MaxQuantity; the rate applies to
// the entire quantity, not marginally.
type MessageTier struct {
	// MaxQuantity is the inclusive upper bound of the bracket.
	// Zero marks the unbounded final bracket.
	MaxQuantity int64 `json:"max_quantity"`

	// Rate is the per-message price inside the bracket
	Rate decimal.Decimal `json:"rate"`
}

// Unbounded reports whether the tier has no upper bound
func (t MessageTier) Unbounded() bool {
	return t.MaxQuantity == 0
}

// RateCard carries every business constant a run needs. It is passed
// explicitly into the engine; the core holds no process-wide rates.
type RateCard struct {
	// Currency is the invoice currency
	Currency Currency `json:"currency"`

	// MonthlyFee is the fixed broker fee per period
	MonthlyFee decimal.Decimal `json:"monthly_fee"`

	// HSMRate is the flat price per net billable session
	HSMRate decimal.Decimal `json:"hsm_rate"`

	// FreeTierAllowance is the complimentary session allotment granted
	// by the upstream platform each period
	FreeTierAllowance int `json:"free_tier_allowance"`

	// MessageTiers is the volume rate schedule, ordered by ascending
	// MaxQuantity with an unbounded final tier
	MessageTiers []MessageTier `json:"message_tiers"`

	// TaxRate is applied to the subtotal
	TaxRate decimal.Decimal `json:"tax_rate"`

	// CreditTipificationKeywords are matched case-insensitively as
	// substrings of conversation tipifications
	CreditTipificationKeywords []string `json:"credit_tipification_keywords"`

	// CreditTriggerPhrases are matched case-insensitively as substrings
	// of message text; the earliest match sets the credit cutoff
	CreditTriggerPhrases []string `json:"credit_trigger_phrases"`

	// AgentEventType is the message type code marking human-agent handoff
	AgentEventType string `json:"agent_event_type"`

	// DeskThreshold is the post-trigger message count above which a
	// credit conversation is billed on both desks
	DeskThreshold int `json:"desk_threshold"`
}
