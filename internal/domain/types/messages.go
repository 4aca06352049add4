package types

import "time"

// Message is a single entry in a conversation.
type Message struct {
	ID         MessageID `json:"id"`
	SenderID   UserID    `json:"sender_id"`
	Text       string    `json:"text"`
	At         time.Time `json:"at"`
	FromActive bool      `json:"from_active"`
}

// Conversation is an ordered, append-only exchange with a peer.
type Conversation struct {
	ID       ConversationID `json:"id"`
	PeerID   UserID         `json:"peer_id"`
	Title    string         `json:"title"`
	Messages []Message      `json:"messages"`
}

// Last returns the most recent message, if any.
func (c Conversation) Last() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}
