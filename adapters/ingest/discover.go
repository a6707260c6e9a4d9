// Package ingest discovers and parses the raw billing logs for a period
// folder. It is the ingestion collaborator of the core engine: malformed
// sources are rejected here, and the engine only ever sees parsed,
// type-coerced records.
package ingest

import (
	"path/filepath"
	"sort"

	"quina-billing/internal/errors"
)

// Sources are the files found for one billing period.
type Sources struct {
	// RDC is the per-conversation summary log file
	RDC string

	// DDC are the per-message detail log files, possibly several exports
	DDC []string
}

// DiscoverPeriod locates RDC_*.csv and DDC_*.csv inside a period folder.
// Exactly one RDC file is required; DDC files are optional (session
// accounting still runs without message detail). Paths come back sorted
// so repeated runs ingest in the same order.
func DiscoverPeriod(dir string) (Sources, error) {
	rdc, err := filepath.Glob(filepath.Join(dir, "RDC_*.csv"))
	if err != nil {
		return Sources{}, errors.Parsing("scanning period folder", err)
	}
	ddc, err := filepath.Glob(filepath.Join(dir, "DDC_*.csv"))
	if err != nil {
		return Sources{}, errors.Parsing("scanning period folder", err)
	}

	if len(rdc) == 0 {
		return Sources{}, errors.Newf(errors.TypeEmptyInput, "no RDC_*.csv file in %s", dir)
	}
	if len(rdc) > 1 {
		return Sources{}, errors.Newf(errors.TypeParsing, "expected one RDC file in %s, found %d", dir, len(rdc))
	}

	sort.Strings(ddc)
	return Sources{RDC: rdc[0], DDC: ddc}, nil
}
