package feed

import (
	"slices"

	"autistnet/internal/domain"
)

func (SendMessage) name() string { return "send_message" }

func (a SendMessage) apply(s *State, env Env) error {
	if blank(a.Text) {
		return domain.Validationf("message text is required")
	}
	i := s.conversationIndex(a.Conversation)
	if i < 0 {
		return domain.Validationf("unknown conversation %q", a.Conversation)
	}
	s.conversations[i].Messages = append(s.conversations[i].Messages, domain.Message{
		ID:         domain.MessageID(env.newID("m_")),
		SenderID:   a.Sender,
		Text:       a.Text,
		At:         env.now(),
		FromActive: a.Sender == s.activeID,
	})
	return nil
}

func (OpenConversation) name() string { return "open_conversation" }

func (a OpenConversation) apply(s *State, env Env) error {
	peer, err := s.mustAccount(a.Peer)
	if err != nil {
		return err
	}
	if slices.ContainsFunc(s.conversations, func(c domain.Conversation) bool { return c.PeerID == peer.ID }) {
		return nil
	}
	title := a.Title
	if blank(title) {
		title = peer.Name
	}
	s.conversations = append(s.conversations, domain.Conversation{
		ID:     domain.ConversationID(env.newID("c_")),
		PeerID: peer.ID,
		Title:  title,
	})
	return nil
}

// ConversationWith returns the conversation with peer, if one exists.
func (s State) ConversationWith(peer domain.UserID) (domain.Conversation, bool) {
	i := slices.IndexFunc(s.conversations, func(c domain.Conversation) bool { return c.PeerID == peer })
	if i < 0 {
		return domain.Conversation{}, false
	}
	c := s.conversations[i]
	c.Messages = slices.Clone(c.Messages)
	return c, true
}
