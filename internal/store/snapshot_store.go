package store

import (
	"path/filepath"
	"sync"

	"autistnet/internal/domain"
)

const snapshotFile = "state.json"

// SnapshotFileStore keeps the feed snapshot as plain JSON on disk.
type SnapshotFileStore struct {
	path string
	mu   sync.Mutex
}

// NewSnapshotFileStore returns a SnapshotFileStore rooted at dir.
func NewSnapshotFileStore(dir string) *SnapshotFileStore {
	return &SnapshotFileStore{path: filepath.Join(dir, snapshotFile)}
}

// Path returns the file the snapshot is written to.
func (s *SnapshotFileStore) Path() string { return s.path }

// SaveSnapshot replaces the stored snapshot.
func (s *SnapshotFileStore) SaveSnapshot(snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, snap, 0o600)
}

// LoadSnapshot returns the stored snapshot; ok is false when none was saved yet.
func (s *SnapshotFileStore) LoadSnapshot() (domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap domain.Snapshot
	found, err := readJSON(s.path, &snap)
	if err != nil || !found {
		return domain.Snapshot{}, false, err
	}
	return snap, true, nil
}

// Compile-time assertion that SnapshotFileStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*SnapshotFileStore)(nil)
