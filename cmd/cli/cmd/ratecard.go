// Package cmd - ratecard command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quina-billing/core/pricing"
)

// ratecardCmd prints and validates the active rate card
var ratecardCmd = &cobra.Command{
	Use:   "ratecard",
	Short: "Show and validate the active rate card",
	RunE: func(cmd *cobra.Command, args []string) error {
		card, err := activeRateCard()
		if err != nil {
			return err
		}
		if err := pricing.ValidateRateCard(card); err != nil {
			return err
		}

		fmt.Printf("Currency:              %s\n", card.Currency)
		fmt.Printf("Monthly fee:           %s\n", card.MonthlyFee.StringFixed(2))
		fmt.Printf("HSM rate:              %s\n", card.HSMRate.String())
		fmt.Printf("Free tier allowance:   %d sessions\n", card.FreeTierAllowance)
		fmt.Printf("Tax rate:              %s\n", card.TaxRate.String())
		fmt.Printf("Agent event type:      %s\n", card.AgentEventType)
		fmt.Printf("Desk threshold:        %d messages\n", card.DeskThreshold)

		fmt.Println("Message tiers:")
		for _, tier := range card.MessageTiers {
			if tier.Unbounded() {
				fmt.Printf("  above previous tier:   %s per message\n", tier.Rate.String())
			} else {
				fmt.Printf("  up to %-9d        %s per message\n", tier.MaxQuantity, tier.Rate.String())
			}
		}

		fmt.Printf("Tipification keywords: %d\n", len(card.CreditTipificationKeywords))
		fmt.Printf("Trigger phrases:       %d\n", len(card.CreditTriggerPhrases))
		return nil
	},
}
