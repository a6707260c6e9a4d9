// Package pricing - Volume-tiered rate resolution
package pricing

import (
	"github.com/shopspring/decimal"

	"quina-billing/core/types"
)

// TierRate returns the per-message rate for a net quantity. The rate of
// the bracket containing the quantity applies to the entire quantity;
// this is a volume rate, not a marginal one. Bracket upper bounds are
// inclusive. Quantities at or below zero resolve to the first bracket's
// rate, which prices a zero amount anyway.
func TierRate(quantity int64, tiers []types.MessageTier) decimal.Decimal {
	if len(tiers) == 0 {
		return decimal.Zero
	}
	for _, tier := range tiers {
		if tier.Unbounded() || quantity <= tier.MaxQuantity {
			return tier.Rate
		}
	}
	return tiers[len(tiers)-1].Rate
}

// MessageAmount prices a net message quantity at its volume tier rate.
func MessageAmount(quantity int64, tiers []types.MessageTier) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return TierRate(quantity, tiers).Mul(decimal.NewFromInt(quantity))
}
