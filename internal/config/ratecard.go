// Package config - Rate card loading
package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"quina-billing/core/types"
	"quina-billing/internal/errors"
)

// hclRateCard is the on-disk shape of a rate card. Monetary values are
// strings so they survive decoding without binary float drift.
type hclRateCard struct {
	Currency                   string        `hcl:"currency"`
	MonthlyFee                 string        `hcl:"monthly_fee"`
	HSMRate                    string        `hcl:"hsm_rate"`
	FreeTierAllowance          int           `hcl:"free_tier_allowance"`
	TaxRate                    string        `hcl:"tax_rate"`
	AgentEventType             string        `hcl:"agent_event_type"`
	DeskThreshold              int           `hcl:"desk_threshold,optional"`
	CreditTipificationKeywords []string      `hcl:"credit_tipification_keywords"`
	CreditTriggerPhrases       []string      `hcl:"credit_trigger_phrases"`
	MessageTiers               []hclTierSpec `hcl:"message_tier,block"`
}

type hclTierSpec struct {
	MaxQuantity int64  `hcl:"max_quantity,optional"`
	Rate        string `hcl:"rate"`
}

// LoadRateCard decodes an HCL rate card file. The result still goes
// through pricing validation before any record is processed.
func LoadRateCard(path string) (types.RateCard, error) {
	var raw hclRateCard
	if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
		return types.RateCard{}, errors.Wrapf(errors.TypeConfig, err, "decoding rate card %s", path)
	}

	fee, err := parseMoney("monthly_fee", raw.MonthlyFee)
	if err != nil {
		return types.RateCard{}, err
	}
	hsmRate, err := parseMoney("hsm_rate", raw.HSMRate)
	if err != nil {
		return types.RateCard{}, err
	}
	taxRate, err := parseMoney("tax_rate", raw.TaxRate)
	if err != nil {
		return types.RateCard{}, err
	}

	tiers := make([]types.MessageTier, 0, len(raw.MessageTiers))
	for _, spec := range raw.MessageTiers {
		rate, err := parseMoney("message_tier rate", spec.Rate)
		if err != nil {
			return types.RateCard{}, err
		}
		tiers = append(tiers, types.MessageTier{MaxQuantity: spec.MaxQuantity, Rate: rate})
	}

	return types.RateCard{
		Currency:                   types.Currency(raw.Currency),
		MonthlyFee:                 fee,
		HSMRate:                    hsmRate,
		FreeTierAllowance:          raw.FreeTierAllowance,
		MessageTiers:               tiers,
		TaxRate:                    taxRate,
		CreditTipificationKeywords: raw.CreditTipificationKeywords,
		CreditTriggerPhrases:       raw.CreditTriggerPhrases,
		AgentEventType:             raw.AgentEventType,
		DeskThreshold:              raw.DeskThreshold,
	}, nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.TypeConfig, err, "rate card field %s", field)
	}
	return d, nil
}
