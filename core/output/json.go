// Package output - JSON rendering
package output

import (
	"encoding/json"
	"io"

	"quina-billing/core/audit"
	"quina-billing/core/engine"
	"quina-billing/core/types"
)

type jsonRenderer struct{}

func (jsonRenderer) Format() Format { return FormatJSON }

// jsonReport is the machine-readable shape of a run. Field order and the
// pre-sorted audit rows keep repeated runs byte-identical.
type jsonReport struct {
	Summary types.BillingSummary `json:"summary"`
	Audit   []audit.Row          `json:"audit"`
	Orphans []string             `json:"orphans,omitempty"`
	Dropped types.DropReport     `json:"dropped"`
}

func (jsonRenderer) Render(w io.Writer, result *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Summary: result.Summary,
		Audit:   result.Audit,
		Orphans: result.Orphans,
		Dropped: result.Dropped,
	})
}
