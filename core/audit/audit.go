// Package audit builds the reconciled per-conversation verification
// table. Every number in the billing summary must be reproducible by
// summing a column of this table; it is the run's verifiability surface.
package audit

import (
	"time"

	"quina-billing/core/detect"
	"quina-billing/core/determinism"
	"quina-billing/core/session"
	"quina-billing/core/types"
)

// Row is one reconciled audit line. The summary log is the anchor:
// conversations seen only in the message detail get a zero-filled
// summary side and an orphan flag instead of being dropped.
type Row struct {
	// ConversationID identifies the conversation
	ConversationID string `json:"conversation_id"`

	// Date is the conversation start day (YYYY-MM-DD), empty for orphans
	Date string `json:"date,omitempty"`

	// StartTime is the RDC start time, zero for orphans
	StartTime time.Time `json:"start_time,omitzero"`

	// Tipification is the RDC free-text classification
	Tipification string `json:"tipification,omitempty"`

	// BillableSession is the 24h window result
	BillableSession bool `json:"billable_session"`

	// WindowReason explains the window classification
	WindowReason session.Reason `json:"window_reason,omitempty"`

	// CreditFlagged marks credit-evaluation routing
	CreditFlagged bool `json:"credit_flagged"`

	// Desk is the desk classification for credit conversations
	Desk detect.Desk `json:"desk,omitempty"`

	// GrossMessages counts every message of the conversation
	GrossMessages int `json:"gross_messages"`

	// PostAgentMessages counts messages discounted by agent handoff
	PostAgentMessages int `json:"post_agent_messages"`

	// PostCreditMessages counts messages discounted by the credit trigger
	PostCreditMessages int `json:"post_credit_messages"`

	// BillableMessages counts net billable messages
	BillableMessages int `json:"billable_messages"`

	// AgentCutoff is the earliest handoff notification
	AgentCutoff *time.Time `json:"agent_cutoff,omitempty"`

	// CreditCutoff is the earliest credit trigger
	CreditCutoff *time.Time `json:"credit_cutoff,omitempty"`

	// OrphanDDC flags a conversation with message detail but no summary
	// row, a data-quality condition surfaced rather than dropped
	OrphanDDC bool `json:"orphan_ddc,omitempty"`
}

// Build produces one row per conversation present in either log, ordered
// by conversation ID. Conversations without message metrics keep zero
// counts and absent cutoffs.
func Build(
	classified []session.Classified,
	states map[string]types.ConversationBillingState,
	desks map[string]detect.Desk,
) []Row {
	rows := make([]Row, 0, len(states))
	anchored := make(map[string]bool, len(classified))

	for _, rec := range classified {
		if rec.ConversationID == "" || anchored[rec.ConversationID] {
			continue
		}
		anchored[rec.ConversationID] = true

		row := Row{
			ConversationID:  rec.ConversationID,
			Date:            rec.StartTime.Format("2006-01-02"),
			StartTime:       rec.StartTime,
			Tipification:    rec.Tipification,
			BillableSession: rec.Billable,
			WindowReason:    rec.Reason,
			Desk:            desks[rec.ConversationID],
		}
		if st, ok := states[rec.ConversationID]; ok {
			row.BillableSession = st.BillableSession
			row.CreditFlagged = st.CreditFlagged
			row.GrossMessages = st.GrossMessages
			row.PostAgentMessages = st.PostAgentMessages
			row.PostCreditMessages = st.PostCreditMessages
			row.BillableMessages = st.BillableMessages
			row.AgentCutoff = st.AgentCutoff
			row.CreditCutoff = st.CreditCutoff
		}
		rows = append(rows, row)
	}

	// Message-only conversations: zero-filled summary side, flagged.
	determinism.RangeMapSorted(states, func(id string, st types.ConversationBillingState) bool {
		if anchored[id] {
			return true
		}
		rows = append(rows, Row{
			ConversationID:     id,
			CreditFlagged:      st.CreditFlagged,
			Desk:               desks[id],
			GrossMessages:      st.GrossMessages,
			PostAgentMessages:  st.PostAgentMessages,
			PostCreditMessages: st.PostCreditMessages,
			BillableMessages:   st.BillableMessages,
			AgentCutoff:        st.AgentCutoff,
			CreditCutoff:       st.CreditCutoff,
			OrphanDDC:          true,
		})
		return true
	})

	determinism.SortSlice(rows, func(a, b Row) bool {
		return a.ConversationID < b.ConversationID
	})
	return rows
}
