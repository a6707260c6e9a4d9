// Package storage - SQLite backend
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver

	"quina-billing/internal/errors"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	period      TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	hsm_net     INTEGER NOT NULL,
	message_net INTEGER NOT NULL,
	total       TEXT NOT NULL,
	audit_rows  INTEGER NOT NULL,
	payload     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_period ON runs(period, created_at);
`

// SQLiteStore persists runs in a single-file database. A few summary
// columns are denormalized for listing; the full run lives in payload.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the run database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.Config("sqlite storage requires a database path")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, errors.Storage("creating database directory", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, errors.Storage("opening run database", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Storage("creating schema", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save stores a billing run
func (s *SQLiteStore) Save(ctx context.Context, run *StoredRun) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return errors.Storage("encoding run", err)
	}
	// created_at is stored as unix nanoseconds: ordering the listing on a
	// textual timestamp breaks when fractional seconds are absent.
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO runs
		(id, period, created_at, hsm_net, message_net, total, audit_rows, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Period, run.CreatedAt.UTC().UnixNano(),
		run.Summary.HSMNet, run.Summary.MessageNet, run.Summary.Total.String(),
		run.AuditRows, string(payload),
	)
	if err != nil {
		return errors.Storage("saving run", err)
	}
	return nil
}

// Get retrieves a run by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*StoredRun, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM runs WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.Newf(errors.TypeStorage, "run %s not found", id)
	}
	if err != nil {
		return nil, errors.Storage("reading run", err)
	}
	return decodeRun(payload)
}

// List returns all runs, newest first
func (s *SQLiteStore) List(ctx context.Context) ([]*StoredRun, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM runs ORDER BY created_at DESC, id ASC")
	if err != nil {
		return nil, errors.Storage("listing runs", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*StoredRun
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.Storage("scanning run", err)
		}
		run, err := decodeRun(payload)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("listing runs", err)
	}
	return runs, nil
}

// Latest returns the most recent run for a period
func (s *SQLiteStore) Latest(ctx context.Context, period string) (*StoredRun, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM runs WHERE period = ? ORDER BY created_at DESC, id ASC LIMIT 1",
		period).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.Newf(errors.TypeStorage, "no runs stored for period %s", period)
	}
	if err != nil {
		return nil, errors.Storage("reading run", err)
	}
	return decodeRun(payload)
}

// Close closes the run database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func decodeRun(payload string) (*StoredRun, error) {
	var run StoredRun
	if err := json.Unmarshal([]byte(payload), &run); err != nil {
		return nil, errors.Storage("decoding run payload", err)
	}
	return &run, nil
}
