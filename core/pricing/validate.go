// Package pricing converts net billable quantities into monetary amounts
// using a fixed fee, a flat session rate, and a volume-tiered message rate.
package pricing

import (
	"quina-billing/core/types"
	"quina-billing/internal/errors"
)

// ValidateRateCard rejects a rate card before any record is processed.
// The engine never substitutes default business values: an absent fee or
// rate is a configuration error, never assumed zero.
func ValidateRateCard(card types.RateCard) error {
	if card.Currency == "" {
		return errors.Config("rate card missing currency")
	}
	if card.MonthlyFee.IsNegative() {
		return errors.Config("monthly fee must not be negative")
	}
	if card.HSMRate.IsZero() || card.HSMRate.IsNegative() {
		return errors.Config("hsm rate must be positive")
	}
	if card.FreeTierAllowance < 0 {
		return errors.Config("free tier allowance must not be negative")
	}
	if card.TaxRate.IsNegative() {
		return errors.Config("tax rate must not be negative")
	}
	if card.AgentEventType == "" {
		return errors.Config("rate card missing agent event type")
	}
	if card.DeskThreshold < 0 {
		return errors.Config("desk threshold must not be negative")
	}

	if len(card.MessageTiers) == 0 {
		return errors.Config("rate card has no message tiers")
	}
	var prevMax int64
	var prevRate = card.MessageTiers[0].Rate
	for i, tier := range card.MessageTiers {
		if tier.Rate.IsNegative() {
			return errors.Configf("message tier %d has a negative rate", i)
		}
		if tier.Unbounded() {
			if i != len(card.MessageTiers)-1 {
				return errors.Configf("unbounded message tier %d must be last", i)
			}
		} else {
			if tier.MaxQuantity <= prevMax {
				return errors.Configf("message tier thresholds must be strictly increasing at tier %d", i)
			}
			prevMax = tier.MaxQuantity
		}
		if tier.Rate.GreaterThan(prevRate) {
			return errors.Configf("message tier rates must be non-increasing at tier %d", i)
		}
		prevRate = tier.Rate
	}
	if !card.MessageTiers[len(card.MessageTiers)-1].Unbounded() {
		return errors.Config("message tier schedule must end with an unbounded tier")
	}

	return nil
}
