// Package storage persists billing run history so a period's invoice can
// be re-read without recomputing it. Backends: memory, file, sqlite.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quina-billing/core/types"
	"quina-billing/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// StoredRun is one persisted billing run.
type StoredRun struct {
	// ID is the unique run identifier
	ID string `json:"id"`

	// Period labels the billing period the run covered
	Period string `json:"period"`

	// CreatedAt is when the run was stored
	CreatedAt time.Time `json:"created_at"`

	// Summary is the run's billing summary
	Summary types.BillingSummary `json:"summary"`

	// AuditRows is the size of the audit table
	AuditRows int `json:"audit_rows"`

	// Dropped counts the rows excluded during the run
	Dropped types.DropReport `json:"dropped"`
}

// Store is the run-history interface.
type Store interface {
	// Save stores a billing run
	Save(ctx context.Context, run *StoredRun) error

	// Get retrieves a run by ID
	Get(ctx context.Context, id string) (*StoredRun, error)

	// List returns all runs, newest first
	List(ctx context.Context) ([]*StoredRun, error)

	// Latest returns the most recent run for a period
	Latest(ctx context.Context, period string) (*StoredRun, error)

	// Close releases backend resources
	Close() error
}

// New opens a store for the given backend. File and sqlite backends need
// a path; memory ignores it.
func New(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	}
	return nil, errors.Configf("unknown storage backend %q", backend)
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}
