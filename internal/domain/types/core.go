package types

// UserID identifies an account in the directory.
type UserID string

// String returns the string form of the user id.
func (id UserID) String() string { return string(id) }

// PostID identifies a post in the feed.
type PostID string

// String returns the string form of the post id.
func (id PostID) String() string { return string(id) }

// AdID identifies a sponsored ad.
type AdID string

// String returns the string form of the ad id.
func (id AdID) String() string { return string(id) }

// TxID identifies a ledger entry.
type TxID string

// String returns the string form of the transaction id.
func (id TxID) String() string { return string(id) }

// ConversationID identifies a conversation with a peer.
type ConversationID string

// String returns the string form of the conversation identifier.
func (id ConversationID) String() string { return string(id) }

// MessageID identifies a single message within a conversation.
type MessageID string

// String returns the string form of the message id.
func (id MessageID) String() string { return string(id) }
