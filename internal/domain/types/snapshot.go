package types

import "time"

// SnapshotVersion is the current on-disk snapshot format.
const SnapshotVersion = 1

// Snapshot is the serialisable form of the whole feed state.
type Snapshot struct {
	Version       int                      `json:"version"`
	ActiveID      UserID                   `json:"active_id"`
	SuspendedID   UserID                   `json:"suspended_id,omitempty"`
	GovernmentID  UserID                   `json:"government_id"`
	Accounts      []Account                `json:"accounts"`
	Posts         []Post                   `json:"posts"`
	Ads           []Ad                     `json:"ads"`
	Follows       []FollowEdge             `json:"follows"`
	Ledgers       map[UserID][]Transaction `json:"ledgers"`
	Conversations []Conversation           `json:"conversations"`
	SavedAt       time.Time                `json:"saved_at"`
}

// EventKind names a committed state change.
type EventKind string

const (
	EventPostCreated      EventKind = "post.created"
	EventPostDeleted      EventKind = "post.deleted"
	EventComplaintAnswer  EventKind = "complaint.responded"
	EventFollowToggled    EventKind = "follow.toggled"
	EventCoinsTransferred EventKind = "wallet.transferred"
	EventRewardGranted    EventKind = "wallet.rewarded"
	EventGovernmentMode   EventKind = "identity.government"
	EventMessageSent      EventKind = "message.sent"
	EventAdChanged        EventKind = "ad.changed"
	EventProfileUpdated   EventKind = "profile.updated"
)

// Event describes a committed state change for outside observers.
type Event struct {
	Kind    EventKind      `json:"kind"`
	Actor   UserID         `json:"actor"`
	Subject string         `json:"subject,omitempty"`
	At      time.Time      `json:"at"`
	Data    map[string]any `json:"data,omitempty"`
}
