package moderation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"autistnet/internal/domain"
)

// Service fans each notice out to every notifier.
type Service struct {
	notifiers []domain.ModerationNotifier
	now       func() time.Time
	logger    *slog.Logger
}

// New returns a moderation service. With no notifiers every request is
// accepted and only logged.
func New(logger *slog.Logger, notifiers ...domain.ModerationNotifier) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{notifiers: notifiers, now: time.Now, logger: logger}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// BlockUser tells moderators that actor blocked target.
func (s *Service) BlockUser(ctx context.Context, actor, target domain.UserID) error {
	return s.raise(ctx, domain.ModerationBlock, actor, target, "")
}

// ReportUser tells moderators that actor reported target.
func (s *Service) ReportUser(ctx context.Context, actor, target domain.UserID, reason string) error {
	return s.raise(ctx, domain.ModerationReport, actor, target, strings.TrimSpace(reason))
}

// RequestVerification asks moderators to verify account.
func (s *Service) RequestVerification(ctx context.Context, actor, account domain.UserID) error {
	return s.raise(ctx, domain.ModerationVerification, actor, account, "")
}

func (s *Service) raise(
	ctx context.Context,
	kind domain.ModerationKind,
	actor, target domain.UserID,
	reason string,
) error {
	if strings.TrimSpace(target.String()) == "" {
		return domain.Validationf("%s needs a target account", kind)
	}
	notice := domain.ModerationNotice{
		Kind:   kind,
		Actor:  actor,
		Target: target,
		Reason: reason,
		At:     s.now(),
	}
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, notice); err != nil {
			s.logger.Warn("Moderation notice not delivered",
				slog.String("kind", string(kind)),
				slog.String("target", target.String()),
				slog.String("error", err.Error()))
		}
	}
	s.logger.Info("Moderation notice raised",
		slog.String("kind", string(kind)),
		slog.String("actor", actor.String()),
		slog.String("target", target.String()))
	return nil
}

var _ domain.ModerationService = (*Service)(nil)
