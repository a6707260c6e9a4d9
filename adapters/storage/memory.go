// Package storage - In-memory backend
package storage

import (
	"context"
	"sort"
	"sync"

	"quina-billing/internal/errors"
)

// MemoryStore keeps runs in process memory. Used in tests and as the
// default when no persistence is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*StoredRun
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*StoredRun)}
}

// Save stores a billing run
func (s *MemoryStore) Save(ctx context.Context, run *StoredRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *run
	s.runs[run.ID] = &cp
	return nil
}

// Get retrieves a run by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*StoredRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, errors.Newf(errors.TypeStorage, "run %s not found", id)
	}
	cp := *run
	return &cp, nil
}

// List returns all runs, newest first
func (s *MemoryStore) List(ctx context.Context) ([]*StoredRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*StoredRun, 0, len(s.runs))
	for _, run := range s.runs {
		cp := *run
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Latest returns the most recent run for a period
func (s *MemoryStore) Latest(ctx context.Context, period string) (*StoredRun, error) {
	runs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, run := range runs {
		if run.Period == period {
			return run, nil
		}
	}
	return nil, errors.Newf(errors.TypeStorage, "no runs stored for period %s", period)
}

// Close releases backend resources
func (s *MemoryStore) Close() error {
	return nil
}
