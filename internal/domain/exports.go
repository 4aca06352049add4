package domain

import (
	interfaces "autistnet/internal/domain/interfaces"
	types "autistnet/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	UserID           = types.UserID
	PostID           = types.PostID
	AdID             = types.AdID
	TxID             = types.TxID
	ConversationID   = types.ConversationID
	MessageID        = types.MessageID
	Role             = types.Role
	Account          = types.Account
	ProfilePatch     = types.ProfilePatch
	ProfileStats     = types.ProfileStats
	Post             = types.Post
	PostKind         = types.PostKind
	RegularPost      = types.RegularPost
	ComplaintPost    = types.ComplaintPost
	ComplaintStatus  = types.ComplaintStatus
	ComplaintDetails = types.ComplaintDetails
	OfficialResponse = types.OfficialResponse
	Direction        = types.Direction
	Transaction      = types.Transaction
	Message          = types.Message
	Conversation     = types.Conversation
	FollowEdge       = types.FollowEdge
	Ad               = types.Ad
	ModerationKind   = types.ModerationKind
	ModerationNotice = types.ModerationNotice
	EnhanceVariant   = types.EnhanceVariant
	Snapshot         = types.Snapshot
	EventKind        = types.EventKind
	Event            = types.Event
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SnapshotStore      = interfaces.SnapshotStore
	LedgerMirror       = interfaces.LedgerMirror
	FollowMirror       = interfaces.FollowMirror
	TextEnhancer       = interfaces.TextEnhancer
	ImageLoader        = interfaces.ImageLoader
	ModerationNotifier = interfaces.ModerationNotifier
	EventPublisher     = interfaces.EventPublisher
	ModerationService  = interfaces.ModerationService
)

// Role values.
const (
	RoleMember     = types.RoleMember
	RoleModerator  = types.RoleModerator
	RoleAdmin      = types.RoleAdmin
	RoleInfluencer = types.RoleInfluencer
	RoleGovernment = types.RoleGovernment
)

// Ledger directions.
const (
	Credit = types.Credit
	Debit  = types.Debit
)

// Complaint states.
const (
	AwaitingResponse = types.AwaitingResponse
	Responded        = types.Responded
)

// Prompt variants for the text enhancer.
const (
	EnhancePost      = types.EnhancePost
	EnhanceComplaint = types.EnhanceComplaint
)

// Moderation notice kinds.
const (
	ModerationBlock        = types.ModerationBlock
	ModerationReport       = types.ModerationReport
	ModerationVerification = types.ModerationVerification
)

// ParseRole parses a role name such as "government".
func ParseRole(s string) (Role, error) { return types.ParseRole(s) }

// Event kinds.
const (
	EventPostCreated      = types.EventPostCreated
	EventPostDeleted      = types.EventPostDeleted
	EventComplaintAnswer  = types.EventComplaintAnswer
	EventFollowToggled    = types.EventFollowToggled
	EventCoinsTransferred = types.EventCoinsTransferred
	EventRewardGranted    = types.EventRewardGranted
	EventGovernmentMode   = types.EventGovernmentMode
	EventMessageSent      = types.EventMessageSent
	EventAdChanged        = types.EventAdChanged
	EventProfileUpdated   = types.EventProfileUpdated
)
