// Package detect - Signal detection tests
package detect

import (
	"testing"
	"time"

	"quina-billing/core/pricing"
	"quina-billing/core/types"
)

var base = time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

func msg(conv, text, typ string, at time.Time) types.MessageRecord {
	return types.MessageRecord{ConversationID: conv, Text: text, Type: typ, Timestamp: at}
}

func TestTipificationMatchIsCaseInsensitiveSubstring(t *testing.T) {
	d := NewCreditDetector(pricing.DefaultRateCard())

	cases := []struct {
		tipification string
		want         bool
	}{
		{"Evalúa tu Crédito", true},
		{"EVALUA SI TIENES UN CREDITO", true},
		{"Derivado - Opción 3", true},
		{"Consulta de saldo", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := d.MatchTipification(tc.tipification); got != tc.want {
			t.Errorf("MatchTipification(%q) = %v, want %v", tc.tipification, got, tc.want)
		}
	}
}

func TestTriggerCutoffIsEarliestMatch(t *testing.T) {
	d := NewCreditDetector(pricing.DefaultRateCard())

	msgs := []types.MessageRecord{
		msg("c1", "Hola, bienvenido", "text", base),
		msg("c1", "Aquí podrás EVALÚA SI TIENES UN CRÉDITO pre-aprobado", "text", base.Add(2*time.Minute)),
		msg("c1", "3. evalúa tu crédito", "text", base.Add(5*time.Minute)),
		msg("c2", "gracias", "text", base),
	}

	cutoffs := d.TriggerCutoffs(msgs)
	cutoff, ok := cutoffs["c1"]
	if !ok {
		t.Fatal("expected a credit cutoff for c1")
	}
	if !cutoff.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("cutoff = %v, want earliest match at %v", cutoff, base.Add(2*time.Minute))
	}
	if _, ok := cutoffs["c2"]; ok {
		t.Error("c2 has no trigger message and must have no cutoff")
	}
}

func TestFlagConversationsByTipification(t *testing.T) {
	d := NewCreditDetector(pricing.DefaultRateCard())

	flagged := d.FlagConversations([]types.ConversationRecord{
		{ConversationID: "c1", Tipification: "Opción 3 - crédito"},
		{ConversationID: "c2", Tipification: "Consulta de saldo"},
		{Tipification: "crédito"},
	})

	if !flagged["c1"] {
		t.Error("c1 tipification should flag the conversation")
	}
	if flagged["c2"] {
		t.Error("c2 tipification must not flag the conversation")
	}
	if len(flagged) != 1 {
		t.Errorf("flagged set = %v, want records without an ID excluded", flagged)
	}
}

func TestAgentCutoffUsesNormalizedTypeAndMinTimestamp(t *testing.T) {
	msgs := []types.MessageRecord{
		msg("c1", "hola", "text", base),
		msg("c1", "", "  notification ", base.Add(3*time.Minute)),
		msg("c1", "", "NOTIFICATION", base.Add(10*time.Minute)),
		msg("c2", "sin agente", "text", base),
	}

	cutoffs := AgentCutoffs(msgs, "NOTIFICATION")
	cutoff, ok := cutoffs["c1"]
	if !ok {
		t.Fatal("expected an agent cutoff for c1")
	}
	if !cutoff.Equal(base.Add(3 * time.Minute)) {
		t.Errorf("cutoff = %v, want first notification at %v", cutoff, base.Add(3*time.Minute))
	}
	if _, ok := cutoffs["c2"]; ok {
		t.Error("conversation without notifications must have no cutoff")
	}
}

func TestDeskClassification(t *testing.T) {
	cutoff := base.Add(time.Minute)
	flagged := map[string]bool{"heavy": true, "light": true, "silent": true}
	cutoffs := map[string]time.Time{"heavy": cutoff, "light": cutoff}

	var msgs []types.MessageRecord
	// heavy: 3 messages after the trigger, threshold 2 -> both desks
	for i := 0; i < 3; i++ {
		msgs = append(msgs, msg("heavy", "x", "text", cutoff.Add(time.Duration(i)*time.Second)))
	}
	msgs = append(msgs, msg("heavy", "before", "text", base))
	// light: only the trigger itself at the cutoff
	msgs = append(msgs, msg("light", "trigger", "text", cutoff))
	// silent: flagged via tipification, trigger never observed
	msgs = append(msgs, msg("silent", "hola", "text", base))

	desks := ClassifyDesks(msgs, flagged, cutoffs, 2)

	if desks["heavy"] != DeskBoth {
		t.Errorf("heavy = %s, want both", desks["heavy"])
	}
	if desks["light"] != DeskCommercial {
		t.Errorf("light = %s, want commercial", desks["light"])
	}
	if desks["silent"] != DeskManualReview {
		t.Errorf("silent = %s, want manual_review", desks["silent"])
	}
}

func TestDeskClassificationIgnoresZeroTimestamps(t *testing.T) {
	// Messages without a timestamp are excluded everywhere else; they
	// must not inflate the post-trigger count either.
	cutoff := base.Add(time.Minute)
	flagged := map[string]bool{"c1": true}
	cutoffs := map[string]time.Time{"c1": cutoff}

	msgs := []types.MessageRecord{
		msg("c1", "trigger", "text", cutoff),
		msg("c1", "sin fecha", "text", time.Time{}),
		msg("c1", "sin fecha", "text", time.Time{}),
	}

	desks := ClassifyDesks(msgs, flagged, cutoffs, 1)
	if desks["c1"] != DeskCommercial {
		t.Errorf("c1 = %s, want commercial with one timed post-trigger message", desks["c1"])
	}
}
