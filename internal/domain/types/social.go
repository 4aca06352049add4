package types

import "time"

// FollowEdge is a directed follow relationship.
type FollowEdge struct {
	Follower UserID `json:"follower"`
	Followee UserID `json:"followee"`
}

// Ad is a sponsored entry shown alongside the feed.
type Ad struct {
	ID       AdID   `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageRef string `json:"image_ref,omitempty"`
	Link     string `json:"link,omitempty"`
}

// ModerationKind names the moderation notice being raised.
type ModerationKind string

const (
	ModerationBlock        ModerationKind = "block"
	ModerationReport       ModerationKind = "report"
	ModerationVerification ModerationKind = "verification"
)

// ModerationNotice is sent to the moderation collaborator. Nothing is kept
// locally.
type ModerationNotice struct {
	Kind   ModerationKind `json:"kind"`
	Actor  UserID         `json:"actor"`
	Target UserID         `json:"target"`
	Reason string         `json:"reason,omitempty"`
	At     time.Time      `json:"at"`
}

// EnhanceVariant selects the rewriting prompt used by the text enhancer.
type EnhanceVariant string

const (
	EnhancePost      EnhanceVariant = "post"
	EnhanceComplaint EnhanceVariant = "complaint"
)
