// Package pricing - Invoice amount calculation
package pricing

import (
	"github.com/shopspring/decimal"

	"quina-billing/core/types"
)

// Charges is the monetary outcome of pricing one run's net quantities.
type Charges struct {
	// HSMAmount is the net session quantity at the flat rate
	HSMAmount decimal.Decimal

	// MessageAmount is the net message quantity at its tier rate
	MessageAmount decimal.Decimal

	// AppliedMessageRate is the tier rate used for the whole quantity
	AppliedMessageRate decimal.Decimal

	// MonthlyFee is the fixed fee carried from the rate card
	MonthlyFee decimal.Decimal

	// Subtotal is fee + HSM + messages
	Subtotal decimal.Decimal

	// Tax is Subtotal at the configured tax rate
	Tax decimal.Decimal

	// Total is Subtotal + Tax
	Total decimal.Decimal
}

// Calculate prices the net quantities. Pure function of the inputs and
// the rate card; the card must have been validated beforehand.
func Calculate(hsmNet, messageNet int64, card types.RateCard) Charges {
	hsmAmount := card.HSMRate.Mul(decimal.NewFromInt(hsmNet))
	if hsmNet <= 0 {
		hsmAmount = decimal.Zero
	}

	msgAmount := MessageAmount(messageNet, card.MessageTiers)
	subtotal := card.MonthlyFee.Add(hsmAmount).Add(msgAmount)
	tax := subtotal.Mul(card.TaxRate)

	return Charges{
		HSMAmount:          hsmAmount,
		MessageAmount:      msgAmount,
		AppliedMessageRate: TierRate(messageNet, card.MessageTiers),
		MonthlyFee:         card.MonthlyFee,
		Subtotal:           subtotal,
		Tax:                tax,
		Total:              subtotal.Add(tax),
	}
}
