// Package output - Invoice-style CLI rendering
package output

import (
	"fmt"
	"io"

	"quina-billing/core/engine"
	"quina-billing/core/types"
)

type cliRenderer struct{}

func (cliRenderer) Format() Format { return FormatCLI }

// Render writes the invoice breakdown the way the finance team reads it:
// fee, session accounting with its discounts, message accounting with
// its discounts, then subtotal, tax, and total.
func (cliRenderer) Render(w io.Writer, result *engine.Result) error {
	s := result.Summary
	cur := symbol(s.Currency)

	line := func(label string, quantity, amount, note string) {
		fmt.Fprintf(w, "%-42s %14s %14s  %s\n", label, quantity, amount, note)
	}

	fmt.Fprintf(w, "%-42s %14s %14s  %s\n", "CONCEPT", "QUANTITY", "AMOUNT "+cur, "NOTES")
	line("Monthly fee", "1", s.MonthlyFee.StringFixed(2), "WhatsApp API broker fee")
	fmt.Fprintln(w)

	line("HSM gross (24h sessions)", itoa(s.HSMGross), "", "before discounts")
	line("(-) HSM credit sessions", itoa(-s.HSMCreditDiscount), "", "routed to credit evaluation")
	line("(-) HSM free tier", itoa(-freeTier(s)), "", "platform allowance")
	line("HSM net billable", itoa(s.HSMNet), s.HSMAmount.StringFixed(2), "")
	fmt.Fprintln(w)

	line("Messages gross", itoa(s.MessageGross), "", "all messages in period")
	line("(-) Post-agent messages", itoa(-s.MessageAgentDiscount), "", "after human handoff")
	line("(-) Post-credit messages", itoa(-s.MessageCreditDiscount), "", "after credit trigger")
	line("Messages net billable", itoa(s.MessageNet), s.MessageAmount.StringFixed(2),
		fmt.Sprintf("volume rate %s", s.AppliedMessageRate.String()))
	fmt.Fprintln(w)

	line("SUBTOTAL", "", s.Subtotal.StringFixed(2), "")
	line("TAX", "", s.Tax.StringFixed(2), "")
	line("TOTAL TO INVOICE", "", s.Total.StringFixed(2), "")

	if result.Dropped.Total() > 0 || len(result.Orphans) > 0 {
		fmt.Fprintf(w, "\n%d rows dropped for missing fields, %d conversations without summary rows\n",
			result.Dropped.Total(), len(result.Orphans))
	}
	return nil
}

// freeTier recovers the allowance actually consumed in the net formula
// so the printed breakdown sums to the net line.
func freeTier(s types.BillingSummary) int {
	used := s.HSMGross - s.HSMCreditDiscount - s.HSMNet
	if used < 0 {
		return 0
	}
	return used
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}

func symbol(c types.Currency) string {
	if c == types.CurrencyPEN {
		return "S/"
	}
	return c.String()
}
