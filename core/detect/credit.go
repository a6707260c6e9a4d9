// Package detect identifies the discount signals inside the raw logs:
// credit-evaluation routing and human-agent handoff.
package detect

import (
	"strings"
	"time"

	"quina-billing/core/types"
)

// CreditDetector matches credit-evaluation signals. Two independent
// sources feed it: conversation tipifications (reliable retrospective
// signal for session accounting) and message trigger phrases (precise
// in-stream timestamp for message attribution).
type CreditDetector struct {
	keywords []string
	phrases  []string
}

// NewCreditDetector builds a detector from the rate card vocabularies.
// Matching is case-insensitive substring containment.
func NewCreditDetector(card types.RateCard) *CreditDetector {
	return &CreditDetector{
		keywords: lowerAll(card.CreditTipificationKeywords),
		phrases:  lowerAll(card.CreditTriggerPhrases),
	}
}

// MatchTipification reports whether a tipification text carries a
// credit-evaluation keyword.
func (d *CreditDetector) MatchTipification(tipification string) bool {
	return containsAny(strings.ToLower(tipification), d.keywords)
}

// MatchMessage reports whether a message body contains a trigger phrase.
func (d *CreditDetector) MatchMessage(text string) bool {
	return containsAny(strings.ToLower(text), d.phrases)
}

// FlagConversations returns the set of conversation IDs whose
// tipification matches the credit vocabulary.
func (d *CreditDetector) FlagConversations(records []types.ConversationRecord) map[string]bool {
	flagged := make(map[string]bool)
	for _, rec := range records {
		if rec.ConversationID == "" {
			continue
		}
		if d.MatchTipification(rec.Tipification) {
			flagged[rec.ConversationID] = true
		}
	}
	return flagged
}

// TriggerCutoffs returns, per conversation, the earliest timestamp of a
// message matching a trigger phrase.
func (d *CreditDetector) TriggerCutoffs(messages []types.MessageRecord) map[string]time.Time {
	cutoffs := make(map[string]time.Time)
	for _, msg := range messages {
		if msg.ConversationID == "" || msg.Timestamp.IsZero() {
			continue
		}
		if !d.MatchMessage(msg.Text) {
			continue
		}
		if prev, ok := cutoffs[msg.ConversationID]; !ok || msg.Timestamp.Before(prev) {
			cutoffs[msg.ConversationID] = msg.Timestamp
		}
	}
	return cutoffs
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func containsAny(text string, needles []string) bool {
	if text == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
