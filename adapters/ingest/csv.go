// Package ingest - CSV source parsing
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"quina-billing/core/types"
	"quina-billing/internal/errors"
	"quina-billing/internal/logging"
)

// Column header aliases across export variants of the same logs.
var (
	rdcUserColumns  = []string{"ID", "ID Usuario", "ID_Usuario"}
	rdcStartColumns = []string{"F.Inicio Chat", "F_Inicio_Chat", "F Inicio Chat"}
	rdcConvColumns  = []string{"ID Chat", "ID_Chat"}
	rdcTipifColumns = []string{"Tipificación Chat", "Tipificación_Chat", "Tipificacion Chat", "Tipificacion_Chat"}

	ddcConvColumns = []string{"ID Chat", "ID_Chat"}
	ddcTextColumns = []string{"Mensaje"}
	ddcTimeColumns = []string{"Fecha Hora", "Fecha_Hora"}
	ddcTypeColumns = []string{"Tipo"}
)

// ReadConversations parses one RDC export.
func ReadConversations(path string) ([]types.ConversationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Parsing("opening RDC file", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, errors.Parsing("reading RDC header", err)
	}
	cols := indexColumns(header)

	userIdx, err := cols.require(path, rdcUserColumns)
	if err != nil {
		return nil, err
	}
	startIdx, err := cols.require(path, rdcStartColumns)
	if err != nil {
		return nil, err
	}
	convIdx, err := cols.require(path, rdcConvColumns)
	if err != nil {
		return nil, err
	}
	tipifIdx := cols.optional(rdcTipifColumns)

	var records []types.ConversationRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Parsing("reading RDC row", err)
		}

		start, err := parseTime(field(row, startIdx))
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "RDC file %s", path)
		}
		records = append(records, types.ConversationRecord{
			ConversationID: CoerceID(field(row, convIdx)),
			UserID:         CoerceID(field(row, userIdx)),
			StartTime:      start,
			Tipification:   strings.TrimSpace(field(row, tipifIdx)),
		})
	}

	logging.Debug("parsed RDC file", zap.String("path", path), zap.Int("rows", len(records)))
	return records, nil
}

// ReadMessages parses one DDC export.
func ReadMessages(path string) ([]types.MessageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Parsing("opening DDC file", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, errors.Parsing("reading DDC header", err)
	}
	cols := indexColumns(header)

	convIdx, err := cols.require(path, ddcConvColumns)
	if err != nil {
		return nil, err
	}
	timeIdx, err := cols.require(path, ddcTimeColumns)
	if err != nil {
		return nil, err
	}
	textIdx := cols.optional(ddcTextColumns)
	typeIdx := cols.optional(ddcTypeColumns)

	var records []types.MessageRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Parsing("reading DDC row", err)
		}

		ts, err := parseTime(field(row, timeIdx))
		if err != nil {
			return nil, errors.Wrapf(errors.TypeParsing, err, "DDC file %s", path)
		}
		records = append(records, types.MessageRecord{
			ConversationID: CoerceID(field(row, convIdx)),
			Text:           field(row, textIdx),
			Timestamp:      ts,
			Type:           field(row, typeIdx),
		})
	}

	logging.Debug("parsed DDC file", zap.String("path", path), zap.Int("rows", len(records)))
	return records, nil
}

// ReadAllMessages parses every DDC export concurrently. The sources are
// independent; each file keeps its row order and files concatenate in
// the order given, so the merged set is deterministic. Grouping and
// attribution happen later, only after ingestion completes.
func ReadAllMessages(paths []string) ([]types.MessageRecord, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	perFile := make([][]types.MessageRecord, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			perFile[i], errs[i] = ReadMessages(path)
		}(i, path)
	}
	wg.Wait()

	var merged []types.MessageRecord
	for i := range paths {
		if errs[i] != nil {
			return nil, errs[i]
		}
		merged = append(merged, perFile[i]...)
	}
	return merged, nil
}

// columnIndex maps normalized header names to positions.
type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[normalizeHeader(name)] = i
	}
	return idx
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func (c columnIndex) require(path string, aliases []string) (int, error) {
	if i := c.optional(aliases); i >= 0 {
		return i, nil
	}
	return -1, errors.Newf(errors.TypeParsing, "%s missing required column %q", path, aliases[0])
}

func (c columnIndex) optional(aliases []string) int {
	for _, alias := range aliases {
		if i, ok := c[normalizeHeader(alias)]; ok {
			return i
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
