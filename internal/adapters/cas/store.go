// Package cas implements the generation record store backed by a flat JSON
// file under the workspace's .tdbuild directory.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/tdbuild/internal/core/domain"
	"go.trai.ch/tdbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecordStore = (*Store)(nil)

// Store implements ports.RecordStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.GenerationRecord
}

// NewStore creates a record store backed by the file at path. A missing file
// is an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.GenerationRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves the record for a task name. Returns nil, nil if not found.
func (s *Store) Get(taskName string) (*domain.GenerationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[taskName]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the record and persists the store.
func (s *Store) Put(record domain.GenerationRecord) error {
	s.mu.Lock()
	s.cache[record.TaskName] = record
	s.mu.Unlock()

	return s.save()
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read record store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal record store")
	}

	return nil
}

// save writes the store atomically: marshal to a sibling temp file, then
// rename over the target.
func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.cache, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal record store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create record store directory")
	}

	tmp, err := os.CreateTemp(dir, domain.StateFileName+".*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp record store")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to write record store")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to close temp record store")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to replace record store")
	}

	return nil
}
