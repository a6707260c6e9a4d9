// Package output - Markdown rendering
package output

import (
	"fmt"
	"io"

	"quina-billing/core/engine"
)

type markdownRenderer struct{}

func (markdownRenderer) Format() Format { return FormatMarkdown }

func (markdownRenderer) Render(w io.Writer, result *engine.Result) error {
	s := result.Summary
	cur := symbol(s.Currency)

	fmt.Fprintf(w, "## Billing summary\n\n")
	fmt.Fprintf(w, "| Concept | Quantity | Amount (%s) |\n", cur)
	fmt.Fprintf(w, "|---|---:|---:|\n")
	fmt.Fprintf(w, "| Monthly fee | 1 | %s |\n", s.MonthlyFee.StringFixed(2))
	fmt.Fprintf(w, "| HSM gross | %d | |\n", s.HSMGross)
	fmt.Fprintf(w, "| HSM credit discount | -%d | |\n", s.HSMCreditDiscount)
	fmt.Fprintf(w, "| HSM net | %d | %s |\n", s.HSMNet, s.HSMAmount.StringFixed(2))
	fmt.Fprintf(w, "| Messages gross | %d | |\n", s.MessageGross)
	fmt.Fprintf(w, "| Post-agent discount | -%d | |\n", s.MessageAgentDiscount)
	fmt.Fprintf(w, "| Post-credit discount | -%d | |\n", s.MessageCreditDiscount)
	fmt.Fprintf(w, "| Messages net (rate %s) | %d | %s |\n",
		s.AppliedMessageRate.String(), s.MessageNet, s.MessageAmount.StringFixed(2))
	fmt.Fprintf(w, "| Subtotal | | %s |\n", s.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "| Tax | | %s |\n", s.Tax.StringFixed(2))
	fmt.Fprintf(w, "| **Total** | | **%s** |\n", s.Total.StringFixed(2))

	if len(result.Orphans) > 0 {
		fmt.Fprintf(w, "\n%d conversations had message detail but no summary row.\n", len(result.Orphans))
	}
	return nil
}
