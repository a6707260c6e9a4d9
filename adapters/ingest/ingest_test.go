// Package ingest - Source discovery and parsing tests
package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"quina-billing/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestCoerceID(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{"51987654321", "51987654321"},
		{"51987654321.0", "51987654321"},
		{"  7412.0  ", "7412"},
		{"7412.5", "7412.5"},
		{"abc-123", "abc-123"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := CoerceID(tc.raw); got != tc.want {
			t.Errorf("CoerceID(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestReadConversationsParsesSpanishHeaders(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "RDC_abril.csv",
		"ID,F.Inicio Chat,ID Chat,Tipificación Chat\n"+
			"51911111111.0,2025-04-01 09:15:00,1001,Consulta saldo\n"+
			"51922222222,2025-04-02 10:00:00,1002.0,Evalúa crédito\n"+
			"51933333333,,1003,\n")

	records, err := ReadConversations(path)
	if err != nil {
		t.Fatalf("ReadConversations: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	first := records[0]
	if first.UserID != "51911111111" {
		t.Errorf("user = %q, want float suffix stripped", first.UserID)
	}
	if first.ConversationID != "1001" {
		t.Errorf("conversation = %q, want 1001", first.ConversationID)
	}
	want := time.Date(2025, 4, 1, 9, 15, 0, 0, time.UTC)
	if !first.StartTime.Equal(want) {
		t.Errorf("start = %v, want %v", first.StartTime, want)
	}
	if records[1].ConversationID != "1002" {
		t.Errorf("conversation = %q, want coerced 1002", records[1].ConversationID)
	}
	// Missing start time is kept as a zero time; the engine drops it later.
	if !records[2].StartTime.IsZero() {
		t.Errorf("empty start parsed as %v, want zero", records[2].StartTime)
	}
}

func TestReadConversationsRejectsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "RDC_roto.csv", "ID,ID Chat\n1,1001\n")

	_, err := ReadConversations(path)
	if !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("error = %v, want PARSING_ERROR", err)
	}
}

func TestReadMessagesHandlesAliasesAndBadTimestamps(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "DDC_1.csv",
		"ID_Chat,Mensaje,Fecha_Hora,Tipo\n"+
			"1001,Hola,2025-04-01 09:15:10,TEXT\n")

	records, err := ReadMessages(path)
	if err != nil {
		t.Fatalf("ReadMessages: %v", err)
	}
	if len(records) != 1 || records[0].Text != "Hola" || records[0].Type != "TEXT" {
		t.Fatalf("unexpected records: %+v", records)
	}

	bad := writeFile(t, dir, "DDC_2.csv",
		"ID Chat,Mensaje,Fecha Hora,Tipo\n1001,x,no es fecha,TEXT\n")
	if _, err := ReadMessages(bad); !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("error = %v, want PARSING_ERROR", err)
	}
}

func TestReadAllMessagesConcatenatesInPathOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "DDC_a.csv",
		"ID Chat,Mensaje,Fecha Hora,Tipo\n1,a1,2025-04-01 09:00:00,TEXT\n1,a2,2025-04-01 09:01:00,TEXT\n")
	b := writeFile(t, dir, "DDC_b.csv",
		"ID Chat,Mensaje,Fecha Hora,Tipo\n2,b1,2025-04-01 08:00:00,TEXT\n")

	records, err := ReadAllMessages([]string{a, b})
	if err != nil {
		t.Fatalf("ReadAllMessages: %v", err)
	}
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}
	want := []string{"a1", "a2", "b1"}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("merge order = %v, want %v", texts, want)
		}
	}
}

func TestDiscoverPeriod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "RDC_abril.csv", "ID,F.Inicio Chat,ID Chat\n")
	writeFile(t, dir, "DDC_2.csv", "ID Chat,Fecha Hora\n")
	writeFile(t, dir, "DDC_1.csv", "ID Chat,Fecha Hora\n")
	writeFile(t, dir, "notas.txt", "ignorar")

	src, err := DiscoverPeriod(dir)
	if err != nil {
		t.Fatalf("DiscoverPeriod: %v", err)
	}
	if filepath.Base(src.RDC) != "RDC_abril.csv" {
		t.Errorf("rdc = %s", src.RDC)
	}
	if len(src.DDC) != 2 || filepath.Base(src.DDC[0]) != "DDC_1.csv" {
		t.Errorf("ddc = %v, want sorted DDC files", src.DDC)
	}
}

func TestDiscoverPeriodRequiresExactlyOneRDC(t *testing.T) {
	empty := t.TempDir()
	if _, err := DiscoverPeriod(empty); !errors.IsType(err, errors.TypeEmptyInput) {
		t.Fatalf("error = %v, want EMPTY_INPUT", err)
	}

	dir := t.TempDir()
	writeFile(t, dir, "RDC_a.csv", "x\n")
	writeFile(t, dir, "RDC_b.csv", "x\n")
	if _, err := DiscoverPeriod(dir); !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("error = %v, want PARSING_ERROR for duplicate RDC", err)
	}
}
