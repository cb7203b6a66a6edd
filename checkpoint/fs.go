package checkpoint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rlmesh/rlmesh/core"
)

// FSStore is a durable CheckpointStore writing one file per snapshot at
// <root>/<runID>/<name>. Names and run IDs must be plain path segments;
// anything containing a separator or traversal element is rejected.
type FSStore struct {
	root string
}

// NewFSStore creates the root directory if needed and returns the store.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create checkpoint root: %w", err)
	}
	return &FSStore{root: root}, nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func (s *FSStore) path(runID, name string) (string, error) {
	if !validSegment(runID) || !validSegment(name) {
		return "", fmt.Errorf("invalid checkpoint key %q/%q", runID, name)
	}
	return filepath.Join(s.root, runID, name), nil
}

// Save writes the snapshot bytes, creating the run directory on first use.
func (s *FSStore) Save(runID, name string, data []byte) error {
	path, err := s.path(runID, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// Get reads the snapshot bytes or returns core.ErrNotFound.
func (s *FSStore) Get(runID, name string) ([]byte, error) {
	path, err := s.path(runID, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	return data, nil
}

// List returns the snapshot names stored for the run.
func (s *FSStore) List(runID string) ([]string, error) {
	if !validSegment(runID) {
		return nil, fmt.Errorf("invalid run id %q", runID)
	}
	entries, err := os.ReadDir(filepath.Join(s.root, runID))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Delete removes the snapshot file or returns core.ErrNotFound.
func (s *FSStore) Delete(runID, name string) error {
	path, err := s.path(runID, name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.ErrNotFound
	}
	return err
}
