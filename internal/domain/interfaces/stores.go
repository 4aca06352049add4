package interfaces

import (
	"context"

	domaintypes "autistnet/internal/domain/types"
)

// SnapshotStore persists the whole feed state between sessions.
type SnapshotStore interface {
	SaveSnapshot(snapshot domaintypes.Snapshot) error
	LoadSnapshot() (domaintypes.Snapshot, bool, error)
}

// LedgerMirror copies committed ledger entries to an external ledger.
// balance is the account balance after the entry was applied.
type LedgerMirror interface {
	RecordTransaction(
		ctx context.Context,
		account domaintypes.UserID,
		balance int64,
		tx domaintypes.Transaction,
	) error
}

// FollowMirror copies follow-set changes to an external graph.
type FollowMirror interface {
	SetFollow(ctx context.Context, edge domaintypes.FollowEdge, following bool) error
}
