package checkpoint

import (
	"sort"
	"sync"

	"github.com/rlmesh/rlmesh/core"
)

// InMemoryStore is a trivial in-process CheckpointStore implementation useful
// for tests, examples and single-process prototypes. It keeps all snapshots
// in a nested map guarded by an RWMutex. Data is copied on save and retrieval
// to avoid accidental external mutation of internal buffers.
//
// Layout: runID -> name -> raw bytes
type InMemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]map[string][]byte
}

// NewInMemoryStore returns an empty in-memory checkpoint store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{snapshots: make(map[string]map[string][]byte)}
}

// Save stores (or overwrites) the snapshot bytes for the given run and name.
// The input slice is copied before storage.
func (s *InMemoryStore) Save(runID, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.snapshots[runID]; !exists {
		s.snapshots[runID] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.snapshots[runID][name] = cp
	return nil
}

// Get returns a copy of the stored snapshot bytes or core.ErrNotFound.
func (s *InMemoryStore) Get(runID, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.snapshots[runID]
	if !ok {
		return nil, core.ErrNotFound
	}
	data, ok := m[name]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the snapshot names stored for the run. The slice is a snapshot
// and safe for caller mutation.
func (s *InMemoryStore) List(runID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.snapshots[runID]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the snapshot if present or returns core.ErrNotFound.
func (s *InMemoryStore) Delete(runID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.snapshots[runID]
	if !ok {
		return core.ErrNotFound
	}
	if _, ok := m[name]; !ok {
		return core.ErrNotFound
	}
	delete(m, name)
	return nil
}
