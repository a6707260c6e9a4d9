// Package config - Configuration and rate card loading tests
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"quina-billing/core/pricing"
	"quina-billing/internal/errors"
)

const sampleCard = `
currency            = "PEN"
monthly_fee         = "760.00"
hsm_rate            = "0.077"
free_tier_allowance = 1000
tax_rate            = "0.18"
agent_event_type    = "NOTIFICATION"
desk_threshold      = 7

credit_tipification_keywords = ["crédito", "credito", "opción 3"]
credit_trigger_phrases       = ["evalúa si tienes un crédito"]

message_tier {
  max_quantity = 9999
  rate         = "0.0456"
}

message_tier {
  max_quantity = 99999
  rate         = "0.0380"
}

message_tier {
  rate = "0.0228"
}
`

func writeCard(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ratecard.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rate card: %v", err)
	}
	return path
}

func TestLoadRateCard(t *testing.T) {
	card, err := LoadRateCard(writeCard(t, sampleCard))
	if err != nil {
		t.Fatalf("LoadRateCard: %v", err)
	}

	if !card.MonthlyFee.Equal(decimal.RequireFromString("760.00")) {
		t.Errorf("fee = %s, want 760.00", card.MonthlyFee)
	}
	if !card.HSMRate.Equal(decimal.RequireFromString("0.077")) {
		t.Errorf("hsm rate = %s, want 0.077", card.HSMRate)
	}
	if card.FreeTierAllowance != 1000 {
		t.Errorf("allowance = %d, want 1000", card.FreeTierAllowance)
	}
	if len(card.MessageTiers) != 3 {
		t.Fatalf("tiers = %d, want 3", len(card.MessageTiers))
	}
	if !card.MessageTiers[2].Unbounded() {
		t.Error("tier without max_quantity should be unbounded")
	}
	if len(card.CreditTipificationKeywords) != 3 || card.AgentEventType != "NOTIFICATION" {
		t.Errorf("vocabulary not loaded: %+v", card)
	}

	// A loaded card goes through the same validation as the built-in one.
	if err := pricing.ValidateRateCard(card); err != nil {
		t.Fatalf("loaded card failed validation: %v", err)
	}
}

func TestLoadRateCardRejectsBadMoney(t *testing.T) {
	bad := writeCard(t, `
currency            = "PEN"
monthly_fee         = "setecientos"
hsm_rate            = "0.077"
free_tier_allowance = 0
tax_rate            = "0.18"
agent_event_type    = "NOTIFICATION"

credit_tipification_keywords = []
credit_trigger_phrases       = []

message_tier {
  rate = "0.0228"
}
`)
	if _, err := LoadRateCard(bad); !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("error = %v, want CONFIG_ERROR", err)
	}
}

func TestLoadRateCardRejectsMalformedHCL(t *testing.T) {
	bad := writeCard(t, "currency = \n")
	if _, err := LoadRateCard(bad); !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("error = %v, want CONFIG_ERROR", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.RateCardPath = "/etc/quina/ratecard.hcl"
	cfg.Storage.Backend = "file"
	cfg.Storage.Path = "/var/lib/quina/runs"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RateCardPath != cfg.RateCardPath || loaded.Storage.Backend != "file" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.DefaultFormat != "cli" || cfg.Storage.Backend != "sqlite" {
		t.Errorf("defaults = %+v", cfg)
	}
}
