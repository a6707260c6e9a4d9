// Package pricing - Default rate card
package pricing

import (
	"github.com/shopspring/decimal"

	"quina-billing/core/types"
)

// DefaultRateCard returns the rate card in force for the Quina service
// line: fixed broker fee, flat HSM rate per addendum N° 2, the Meta free
// tier of 1,000 sessions, the four-bracket message schedule, and IGV.
func DefaultRateCard() types.RateCard {
	return types.RateCard{
		Currency:          types.CurrencyPEN,
		MonthlyFee:        decimal.RequireFromString("760.00"),
		HSMRate:           decimal.RequireFromString("0.077"),
		FreeTierAllowance: 1000,
		MessageTiers: []types.MessageTier{
			{MaxQuantity: 9999, Rate: decimal.RequireFromString("0.0456")},
			{MaxQuantity: 99999, Rate: decimal.RequireFromString("0.0380")},
			{MaxQuantity: 249999, Rate: decimal.RequireFromString("0.0304")},
			{Rate: decimal.RequireFromString("0.0228")},
		},
		TaxRate: decimal.RequireFromString("0.18"),
		CreditTipificationKeywords: []string{
			"evalú", "evalua", "crédito", "credito", "opción 3", "opcion 3",
		},
		CreditTriggerPhrases: []string{
			"evalúa si tienes un crédito",
			"evalua si tienes un credito",
			"3. evalúa",
			"3. evalua",
		},
		AgentEventType: "NOTIFICATION",
		DeskThreshold:  7,
	}
}
