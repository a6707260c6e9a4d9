// Package output - Rendering tests
package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"quina-billing/core/engine"
	"quina-billing/core/pricing"
	"quina-billing/core/types"
)

func sampleResult(t *testing.T) *engine.Result {
	t.Helper()
	card := pricing.DefaultRateCard()
	card.FreeTierAllowance = 0
	eng, err := engine.New(card)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	start := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	result, err := eng.Run(engine.Input{
		Conversations: []types.ConversationRecord{
			{ConversationID: "c1", UserID: "u1", StartTime: start, Tipification: "opción 3"},
			{ConversationID: "c2", UserID: "u2", StartTime: start},
		},
		Messages: []types.MessageRecord{
			{ConversationID: "c1", Text: "hola", Type: "TEXT", Timestamp: start},
			{ConversationID: "zz", Text: "sin resumen", Type: "TEXT", Timestamp: start},
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func TestForSelectsRenderer(t *testing.T) {
	for _, format := range []Format{FormatCLI, FormatJSON, FormatMarkdown, ""} {
		r, err := For(format)
		if err != nil {
			t.Fatalf("For(%q): %v", format, err)
		}
		if r == nil {
			t.Fatalf("For(%q) returned nil renderer", format)
		}
	}
	if _, err := For("yaml"); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestCLIRenderShowsInvoiceLines(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	r, _ := For(FormatCLI)
	if err := r.Render(&buf, result); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Monthly fee", "HSM net billable", "Messages net billable",
		"SUBTOTAL", "TAX", "TOTAL TO INVOICE", "S/",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("cli output missing %q", want)
		}
	}
	if !strings.Contains(out, "conversations without summary rows") {
		t.Error("cli output missing the orphan notice")
	}
}

func TestAuditCSVRoundTrips(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	if err := WriteAuditCSV(&buf, result.Audit); err != nil {
		t.Fatalf("WriteAuditCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	if len(records) != len(result.Audit)+1 {
		t.Fatalf("csv rows = %d, want header plus %d", len(records), len(result.Audit))
	}
	if records[0][0] != "conversation_id" || records[0][len(records[0])-1] != "orphan_ddc" {
		t.Errorf("unexpected header: %v", records[0])
	}

	var orphan []string
	for _, rec := range records[1:] {
		if rec[0] == "zz" {
			orphan = rec
		}
	}
	if orphan == nil {
		t.Fatal("orphan conversation missing from csv")
	}
	if orphan[len(orphan)-1] != "1" {
		t.Errorf("orphan flag = %q, want \"1\"", orphan[len(orphan)-1])
	}
}
