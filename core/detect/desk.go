// Package detect - Desk classification of credit conversations
package detect

import (
	"time"

	"quina-billing/core/types"
)

// Desk says which billing desk a credit conversation lands on.
type Desk string

const (
	// DeskCommercial bills the conversation on the commercial desk only
	DeskCommercial Desk = "commercial"

	// DeskBoth bills the conversation on both desks
	DeskBoth Desk = "both"

	// DeskManualReview marks a credit-flagged conversation where the
	// trigger phrase was never observed in the message stream
	DeskManualReview Desk = "manual_review"
)

// ClassifyDesks assigns a desk to every credit-flagged conversation.
// A conversation with more than threshold messages at or after its
// credit trigger is billed on both desks; otherwise only the commercial
// desk. Without an observed trigger the conversation needs manual review.
//
// The classification annotates the audit output; it never changes totals.
func ClassifyDesks(
	messages []types.MessageRecord,
	flagged map[string]bool,
	cutoffs map[string]time.Time,
	threshold int,
) map[string]Desk {
	postTrigger := make(map[string]int)
	for _, msg := range messages {
		if !flagged[msg.ConversationID] || msg.Timestamp.IsZero() {
			continue
		}
		cutoff, ok := cutoffs[msg.ConversationID]
		if !ok {
			continue
		}
		if !msg.Timestamp.Before(cutoff) {
			postTrigger[msg.ConversationID]++
		}
	}

	desks := make(map[string]Desk, len(flagged))
	for id := range flagged {
		if _, ok := cutoffs[id]; !ok {
			desks[id] = DeskManualReview
			continue
		}
		if postTrigger[id] > threshold {
			desks[id] = DeskBoth
		} else {
			desks[id] = DeskCommercial
		}
	}
	return desks
}
