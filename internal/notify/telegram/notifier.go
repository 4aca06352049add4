// Package telegram forwards moderation notices to a Telegram chat watched by
// the moderators.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"autistnet/internal/domain"
)

// ErrNoToken is returned by New when the bot token is empty.
var ErrNoToken = errors.New("telegram bot token is empty")

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts one message per notice to a fixed chat.
type Notifier struct {
	sender Sender
	chatID int64
}

// New logs the bot in with token and returns a Notifier for chatID.
func New(token string, chatID int64) (*Notifier, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoToken
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	return NewWithSender(bot, chatID), nil
}

// NewWithSender returns a Notifier that sends through s.
func NewWithSender(s Sender, chatID int64) *Notifier {
	return &Notifier{sender: s, chatID: chatID}
}

// Notify sends notice to the moderators' chat.
func (n *Notifier) Notify(ctx context.Context, notice domain.ModerationNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, Format(notice))
	msg.DisableWebPagePreview = true
	if _, err := n.sender.Send(msg); err != nil {
		return domain.NewServiceError("telegram", err)
	}
	return nil
}

// Format renders notice as plain text.
func Format(notice domain.ModerationNotice) string {
	var b strings.Builder
	switch notice.Kind {
	case domain.ModerationBlock:
		fmt.Fprintf(&b, "🚫 %s blocked %s", notice.Actor, notice.Target)
	case domain.ModerationReport:
		fmt.Fprintf(&b, "⚠️ %s reported %s", notice.Actor, notice.Target)
	case domain.ModerationVerification:
		fmt.Fprintf(&b, "✅ %s asked to verify %s", notice.Actor, notice.Target)
	default:
		fmt.Fprintf(&b, "%s: %s -> %s", notice.Kind, notice.Actor, notice.Target)
	}
	if r := strings.TrimSpace(notice.Reason); r != "" {
		fmt.Fprintf(&b, "\nReason: %s", r)
	}
	if !notice.At.IsZero() {
		fmt.Fprintf(&b, "\n%s", notice.At.UTC().Format(time.RFC3339))
	}
	return b.String()
}

var _ domain.ModerationNotifier = (*Notifier)(nil)
