// Package output - Audit table CSV export
package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"quina-billing/core/audit"
)

// WriteAuditCSV writes the verification table in the column order the
// finance team audits it: identity, window result, credit signals,
// message counts, then cutoffs.
func WriteAuditCSV(w io.Writer, rows []audit.Row) error {
	cw := csv.NewWriter(w)
	header := []string{
		"conversation_id", "date", "start_time", "tipification",
		"billable_session", "credit_flagged", "desk",
		"gross_messages", "post_agent_messages", "post_credit_messages", "billable_messages",
		"agent_cutoff", "credit_cutoff", "orphan_ddc",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		start := ""
		if !row.StartTime.IsZero() {
			start = row.StartTime.Format(time.RFC3339)
		}
		record := []string{
			row.ConversationID,
			row.Date,
			start,
			row.Tipification,
			boolFlag(row.BillableSession),
			boolFlag(row.CreditFlagged),
			string(row.Desk),
			strconv.Itoa(row.GrossMessages),
			strconv.Itoa(row.PostAgentMessages),
			strconv.Itoa(row.PostCreditMessages),
			strconv.Itoa(row.BillableMessages),
			formatCutoff(row.AgentCutoff),
			formatCutoff(row.CreditCutoff),
			boolFlag(row.OrphanDDC),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatCutoff(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
