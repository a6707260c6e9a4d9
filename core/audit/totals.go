// Package audit - Column totals and summary reconciliation
package audit

import (
	"quina-billing/core/types"
	"quina-billing/internal/errors"
)

// Totals are the column sums of an audit table.
type Totals struct {
	HSMGross              int
	HSMCreditDiscount     int
	MessageGross          int
	MessageAgentDiscount  int
	MessageCreditDiscount int
	MessageNet            int
}

// SumColumns reduces the audit rows to their column totals.
func SumColumns(rows []Row) Totals {
	var t Totals
	for _, row := range rows {
		if row.BillableSession {
			t.HSMGross++
			if row.CreditFlagged {
				t.HSMCreditDiscount++
			}
		}
		t.MessageGross += row.GrossMessages
		t.MessageAgentDiscount += row.PostAgentMessages
		t.MessageCreditDiscount += row.PostCreditMessages
		t.MessageNet += row.BillableMessages
	}
	return t
}

// Reconcile verifies that the audit table reproduces the summary counts.
// A mismatch means the aggregation diverged from its own audit trail.
func Reconcile(rows []Row, summary types.BillingSummary) error {
	t := SumColumns(rows)
	switch {
	case t.HSMGross != summary.HSMGross:
		return errors.Newf(errors.TypeInternal, "audit hsm gross %d != summary %d", t.HSMGross, summary.HSMGross)
	case t.HSMCreditDiscount != summary.HSMCreditDiscount:
		return errors.Newf(errors.TypeInternal, "audit hsm credit %d != summary %d", t.HSMCreditDiscount, summary.HSMCreditDiscount)
	case t.MessageGross != summary.MessageGross:
		return errors.Newf(errors.TypeInternal, "audit message gross %d != summary %d", t.MessageGross, summary.MessageGross)
	case t.MessageAgentDiscount != summary.MessageAgentDiscount:
		return errors.Newf(errors.TypeInternal, "audit post-agent %d != summary %d", t.MessageAgentDiscount, summary.MessageAgentDiscount)
	case t.MessageCreditDiscount != summary.MessageCreditDiscount:
		return errors.Newf(errors.TypeInternal, "audit post-credit %d != summary %d", t.MessageCreditDiscount, summary.MessageCreditDiscount)
	case t.MessageNet != summary.MessageNet:
		return errors.Newf(errors.TypeInternal, "audit message net %d != summary %d", t.MessageNet, summary.MessageNet)
	}
	return nil
}
