package feed

import (
	"fmt"
	"slices"
	"time"

	"autistnet/internal/domain"
	"autistnet/internal/domain/types"
)

// Snapshot returns the serialisable form of s, stamped with at.
func (s State) Snapshot(at time.Time) domain.Snapshot {
	ledgers := make(map[domain.UserID][]domain.Transaction, len(s.ledgers))
	for id, txs := range s.ledgers {
		ledgers[id] = slices.Clone(txs)
	}
	return domain.Snapshot{
		Version:       types.SnapshotVersion,
		ActiveID:      s.activeID,
		SuspendedID:   s.suspendedID,
		GovernmentID:  s.governmentID,
		Accounts:      s.Accounts(),
		Posts:         s.Posts(),
		Ads:           s.Ads(),
		Follows:       s.Follows(),
		Ledgers:       ledgers,
		Conversations: s.Conversations(),
		SavedAt:       at,
	}
}

// FromSnapshot rebuilds a State and checks its references.
func FromSnapshot(snap domain.Snapshot) (State, error) {
	if snap.Version > types.SnapshotVersion {
		return State{}, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	s := State{
		activeID:     snap.ActiveID,
		suspendedID:  snap.SuspendedID,
		governmentID: snap.GovernmentID,
		accounts:     make(map[domain.UserID]domain.Account, len(snap.Accounts)),
		posts:        slices.Clone(snap.Posts),
		ads:          slices.Clone(snap.Ads),
		follows:      make(map[domain.FollowEdge]struct{}, len(snap.Follows)),
		ledgers:      make(map[domain.UserID][]domain.Transaction, len(snap.Ledgers)),
	}
	for _, a := range snap.Accounts {
		if err := s.addAccount(a); err != nil {
			return State{}, fmt.Errorf("snapshot: %w", err)
		}
	}
	for _, id := range []domain.UserID{snap.ActiveID, snap.GovernmentID} {
		if _, ok := s.accounts[id]; !ok {
			return State{}, fmt.Errorf("snapshot: account %q missing", id)
		}
	}
	if gov := s.accounts[snap.GovernmentID]; gov.Role != domain.RoleGovernment {
		return State{}, fmt.Errorf("snapshot: government identity %q has role %s", gov.ID, gov.Role)
	}
	if snap.SuspendedID != "" {
		if _, ok := s.accounts[snap.SuspendedID]; !ok {
			return State{}, fmt.Errorf("snapshot: suspended account %q missing", snap.SuspendedID)
		}
	}
	for _, e := range snap.Follows {
		s.follows[e] = struct{}{}
	}
	for id, txs := range snap.Ledgers {
		s.ledgers[id] = slices.Clone(txs)
	}
	s.conversations = make([]domain.Conversation, len(snap.Conversations))
	for i, c := range snap.Conversations {
		c.Messages = slices.Clone(c.Messages)
		s.conversations[i] = c
	}
	return s, nil
}
