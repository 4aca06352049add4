package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"autistnet/internal/domain"
	"autistnet/internal/util/memzero"
)

const sealedFile = "state.enc"

// ErrNoPassphrase is returned when a sealed store is built without a passphrase.
var ErrNoPassphrase = errors.New("sealed snapshot store needs a passphrase")

// SealedSnapshotStore keeps the feed snapshot encrypted under a passphrase.
type SealedSnapshotStore struct {
	path       string
	passphrase string
	kdf        scryptParams
	mu         sync.Mutex
}

// SealedOption tunes a SealedSnapshotStore.
type SealedOption func(*SealedSnapshotStore)

// WithScryptCost overrides the scrypt CPU/memory cost N (a power of two).
// Existing files keep the cost they were written with.
func WithScryptCost(n int) SealedOption {
	return func(s *SealedSnapshotStore) { s.kdf.N = n }
}

// NewSealedSnapshotStore returns a SealedSnapshotStore rooted at dir.
func NewSealedSnapshotStore(dir, passphrase string, opts ...SealedOption) (*SealedSnapshotStore, error) {
	if passphrase == "" {
		return nil, ErrNoPassphrase
	}
	s := &SealedSnapshotStore{
		path:       filepath.Join(dir, sealedFile),
		passphrase: passphrase,
		kdf:        defaultScryptParams(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the file the sealed snapshot is written to.
func (s *SealedSnapshotStore) Path() string { return s.path }

// SaveSnapshot seals and replaces the stored snapshot.
func (s *SealedSnapshotStore) SaveSnapshot(snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	blob, err := seal(s.passphrase, raw, s.kdf)
	memzero.Zero(raw)
	if err != nil {
		return fmt.Errorf("seal snapshot: %w", err)
	}
	return writeFile(s.path, blob, 0o600)
}

// LoadSnapshot opens the stored snapshot; ok is false when none was saved yet.
// A wrong passphrase yields ErrWrongPassphrase.
func (s *SealedSnapshotStore) LoadSnapshot() (domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, found, err := readFile(s.path)
	if err != nil || !found {
		return domain.Snapshot{}, false, err
	}
	raw, err := unseal(s.passphrase, blob)
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	defer memzero.Zero(raw)
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("decode %s: %w", sealedFile, err)
	}
	return snap, true, nil
}

var _ domain.SnapshotStore = (*SealedSnapshotStore)(nil)
