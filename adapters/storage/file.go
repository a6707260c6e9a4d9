// Package storage - File backend
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quina-billing/internal/errors"
)

// FileStore persists each run as one JSON document in a directory.
type FileStore struct {
	dir string
}

// NewFileStore opens (creating if needed) a directory-backed store.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.Config("file storage requires a directory path")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Storage("creating storage directory", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save stores a billing run
func (s *FileStore) Save(ctx context.Context, run *StoredRun) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return errors.Storage("encoding run", err)
	}
	path := filepath.Join(s.dir, run.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Storage("writing run file", err)
	}
	return nil
}

// Get retrieves a run by ID
func (s *FileStore) Get(ctx context.Context, id string) (*StoredRun, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.TypeStorage, "run %s not found", id)
		}
		return nil, errors.Storage("reading run file", err)
	}
	var run StoredRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, errors.Storage("decoding run file", err)
	}
	return &run, nil
}

// List returns all runs, newest first
func (s *FileStore) List(ctx context.Context) ([]*StoredRun, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Storage("listing storage directory", err)
	}

	var runs []*StoredRun
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		run, err := s.Get(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

// Latest returns the most recent run for a period
func (s *FileStore) Latest(ctx context.Context, period string) (*StoredRun, error) {
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
func (s *FileStore) Close() error {
	return nil
}
