// Package engine orchestrates one billing run: session windowing, signal
// detection, message attribution, aggregation, pricing, and the audit
// table. Data flows strictly forward; no stage reads back from a later
// one, and a run either completes or fails without a partial summary.
package engine

import (
	"go.uber.org/zap"

	"quina-billing/core/attribution"
	"quina-billing/core/audit"
	"quina-billing/core/detect"
	"quina-billing/core/determinism"
	"quina-billing/core/pricing"
	"quina-billing/core/session"
	"quina-billing/core/types"
	"quina-billing/internal/errors"
	"quina-billing/internal/logging"
)

// Input is the fully ingested record set for one billing period.
// Records arrive parsed and type-coerced; the ingestion collaborator
// rejects malformed sources before they reach the engine.
type Input struct {
	// Conversations is the per-conversation summary log (RDC)
	Conversations []types.ConversationRecord

	// Messages is the per-message detail log (DDC), already concatenated
	// across sources. May be empty: session accounting still runs.
	Messages []types.MessageRecord
}

// Result is everything one run produces.
type Result struct {
	// Summary carries the invoice quantities and amounts
	Summary types.BillingSummary

	// States is the reconciled per-conversation billing state
	States map[string]types.ConversationBillingState

	// Audit is the ordered per-conversation verification table
	Audit []audit.Row

	// Sessions is the classified conversation set in window order
	Sessions []session.Classified

	// Desks is the desk classification of credit conversations
	Desks map[string]detect.Desk

	// Orphans lists conversation IDs seen only in the message detail
	Orphans []string

	// Dropped counts rows excluded for missing required fields
	Dropped types.DropReport
}

// Engine runs the billing rules for a fixed rate card.
type Engine struct {
	card types.RateCard
	log  *zap.Logger
}

// New validates the rate card and builds an engine. An invalid card is
// rejected here, before any record is processed.
func New(card types.RateCard) (*Engine, error) {
	if err := pricing.ValidateRateCard(card); err != nil {
		return nil, err
	}
	return &Engine{card: card, log: logging.Named("engine")}, nil
}

// Run executes one deterministic batch pass over the period's records.
func (e *Engine) Run(input Input) (*Result, error) {
	if len(input.Conversations) == 0 {
		return nil, errors.EmptyInput("no conversation records for the period")
	}

	sess := session.Classify(input.Conversations)
	if len(sess.Records) == 0 {
		return nil, errors.EmptyInput("every conversation record was missing a required field")
	}

	detector := detect.NewCreditDetector(e.card)
	creditCutoffs := detector.TriggerCutoffs(input.Messages)
	agentCutoffs := detect.AgentCutoffs(input.Messages, e.card.AgentEventType)
	counts, msgDropped := attribution.Accumulate(input.Messages, agentCutoffs, creditCutoffs)

	// One accumulation pass keyed by conversation ID builds the billing
	// state directly; no intermediate per-metric tables are joined. The
	// classifier guarantees every surviving record carries an ID.
	states := make(map[string]types.ConversationBillingState, len(sess.Records))
	for _, rec := range sess.Records {
		st := states[rec.ConversationID]
		st.ConversationID = rec.ConversationID
		st.BillableSession = st.BillableSession || rec.Billable
		st.CreditFlagged = st.CreditFlagged || detector.MatchTipification(rec.Tipification)
		states[rec.ConversationID] = st
	}

	var orphans []string
	for id, c := range counts {
		st, anchored := states[id]
		if !anchored {
			st.ConversationID = id
			orphans = append(orphans, id)
		}
		st.GrossMessages = c.Gross
		st.PostAgentMessages = c.PostAgent
		st.PostCreditMessages = c.PostCredit
		st.BillableMessages = c.Billable
		if t, ok := agentCutoffs[id]; ok {
			cutoff := t
			st.AgentCutoff = &cutoff
		}
		if t, ok := creditCutoffs[id]; ok {
			cutoff := t
			st.CreditCutoff = &cutoff
			st.CreditFlagged = true
		}
		states[id] = st
	}
	determinism.SortSlice(orphans, func(a, b string) bool { return a < b })
	for _, id := range orphans {
		e.log.Warn("message detail without summary counterpart",
			zap.String("conversation_id", id),
			zap.String("error", errors.AmbiguousJoin(id).Error()))
	}

	flagged := make(map[string]bool)
	for id, st := range states {
		if st.CreditFlagged {
			flagged[id] = true
		}
	}
	desks := detect.ClassifyDesks(input.Messages, flagged, creditCutoffs, e.card.DeskThreshold)

	summary := e.summarize(states)
	rows := audit.Build(sess.Records, states, desks)
	if err := audit.Reconcile(rows, summary); err != nil {
		return nil, err
	}

	dropped := sess.Dropped.Merge(msgDropped)
	e.logDrops(dropped)
	e.log.Info("billing run complete",
		zap.Int("conversations", len(sess.Records)),
		zap.Int("messages", len(input.Messages)),
		zap.Int("hsm_net", summary.HSMNet),
		zap.Int("message_net", summary.MessageNet),
		zap.Int("orphans", len(orphans)),
		zap.Int("dropped_rows", dropped.Total()))

	return &Result{
		Summary:  summary,
		States:   states,
		Audit:    rows,
		Sessions: sess.Records,
		Desks:    desks,
		Orphans:  orphans,
		Dropped:  dropped,
	}, nil
}

// logDrops surfaces excluded rows per missing field, in a fixed order.
func (e *Engine) logDrops(dropped types.DropReport) {
	drops := []struct {
		rows   int
		record string
		field  string
	}{
		{dropped.ConversationsMissingID, "summary", "conversationID"},
		{dropped.ConversationsMissingUser, "summary", "userID"},
		{dropped.ConversationsMissingStart, "summary", "startTime"},
		{dropped.MessagesMissingConversation, "message detail", "conversationID"},
		{dropped.MessagesMissingTimestamp, "message detail", "timestamp"},
	}
	for _, d := range drops {
		if d.rows == 0 {
			continue
		}
		e.log.Warn("rows excluded from the run",
			zap.Int("rows", d.rows),
			zap.String("error", errors.MissingField(d.record, d.field).Error()))
	}
}

// summarize reduces the per-conversation states to the run totals and
// prices them.
func (e *Engine) summarize(states map[string]types.ConversationBillingState) types.BillingSummary {
	var s types.BillingSummary
	for _, st := range states {
		if st.BillableSession {
			s.HSMGross++
			if st.CreditFlagged {
				s.HSMCreditDiscount++
			}
		}
		s.MessageGross += st.GrossMessages
		s.MessageAgentDiscount += st.PostAgentMessages
		s.MessageCreditDiscount += st.PostCreditMessages
		s.MessageNet += st.BillableMessages
	}

	s.HSMNet = s.HSMGross - s.HSMCreditDiscount - e.card.FreeTierAllowance
	if s.HSMNet < 0 {
		s.HSMNet = 0
	}

	charges := pricing.Calculate(int64(s.HSMNet), int64(s.MessageNet), e.card)
	s.HSMAmount = charges.HSMAmount
	s.MessageAmount = charges.MessageAmount
	s.AppliedMessageRate = charges.AppliedMessageRate
	s.MonthlyFee = charges.MonthlyFee
	s.Subtotal = charges.Subtotal
	s.Tax = charges.Tax
	s.Total = charges.Total
	s.Currency = e.card.Currency
	return s
}

// RateCard returns the card the engine was built with.
func (e *Engine) RateCard() types.RateCard {
	return e.card
}
