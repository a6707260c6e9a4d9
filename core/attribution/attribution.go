// Package attribution classifies every message as billable or discounted
// against its conversation's agent and credit cutoffs.
//
// Both comparisons are strict less-than at the cutoff instant: the
// message stamped exactly at the agent cutoff is the notification event
// itself and is never billable. The agent cutoff takes precedence over
// the credit cutoff unconditionally, so when a credit trigger precedes
// the handoff the messages between the two land in the agent bucket and
// the credit bucket is undercounted. That asymmetry matches the invoiced
// totals this engine reconciles against and must not be corrected.
package attribution

import (
	"time"

	"quina-billing/core/types"
)

// Class is the billing classification of a single message
type Class int

const (
	// ClassBillable counts toward net billable messages
	ClassBillable Class = iota

	// ClassPostAgent is discounted: at or after the agent handoff
	ClassPostAgent

	// ClassPostCredit is discounted: before the handoff but at or after
	// the credit trigger
	ClassPostCredit
)

// String returns the class name
func (c Class) String() string {
	switch c {
	case ClassBillable:
		return "billable"
	case ClassPostAgent:
		return "post_agent"
	case ClassPostCredit:
		return "post_credit"
	}
	return "unknown"
}

// Classify attributes one message to exactly one bucket given its
// conversation's optional cutoffs.
func Classify(ts time.Time, agentCutoff, creditCutoff *time.Time) Class {
	beforeAgent := agentCutoff == nil || ts.Before(*agentCutoff)
	beforeCredit := creditCutoff == nil || ts.Before(*creditCutoff)

	switch {
	case beforeAgent && beforeCredit:
		return ClassBillable
	case !beforeAgent:
		return ClassPostAgent
	default:
		return ClassPostCredit
	}
}

// Counts aggregates the per-message classes of one conversation.
// Billable + PostAgent + PostCredit == Gross always holds.
type Counts struct {
	Gross      int
	PostAgent  int
	PostCredit int
	Billable   int
}

// Add folds one classified message into the counts
func (c *Counts) Add(class Class) {
	c.Gross++
	switch class {
	case ClassPostAgent:
		c.PostAgent++
	case ClassPostCredit:
		c.PostCredit++
	default:
		c.Billable++
	}
}

// Accumulate classifies every message and reduces the results per
// conversation. Messages missing a conversation ID or timestamp cannot
// be attributed and are excluded, counted in the drop report.
func Accumulate(
	messages []types.MessageRecord,
	agentCutoffs, creditCutoffs map[string]time.Time,
) (map[string]Counts, types.DropReport) {
	var dropped types.DropReport
	counts := make(map[string]Counts)

	for _, msg := range messages {
		if msg.ConversationID == "" {
			dropped.MessagesMissingConversation++
			continue
		}
		if msg.Timestamp.IsZero() {
			dropped.MessagesMissingTimestamp++
			continue
		}

		var agent, credit *time.Time
		if t, ok := agentCutoffs[msg.ConversationID]; ok {
			agent = &t
		}
		if t, ok := creditCutoffs[msg.ConversationID]; ok {
			credit = &t
		}

		c := counts[msg.ConversationID]
		c.Add(Classify(msg.Timestamp, agent, credit))
		counts[msg.ConversationID] = c
	}

	return counts, dropped
}
