// Package ingest - Field coercion
package ingest

import (
	"strconv"
	"strings"
	"time"

	"quina-billing/internal/errors"
)

// timeLayouts are the timestamp shapes seen across the raw exports.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
}

// CoerceID normalizes a conversation or user identifier to its string
// form. Raw exports sometimes re-encode numeric IDs as floats
// ("51987654321.0"); the fractional suffix is stripped so joins across
// the two logs line up.
func CoerceID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// parseTime tries each known layout. Empty input returns a zero time
// without error; the engine counts such rows as dropped.
func parseTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Newf(errors.TypeParsing, "unrecognized timestamp %q", raw)
}
