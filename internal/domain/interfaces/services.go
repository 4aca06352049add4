package interfaces

import (
	"context"

	domaintypes "autistnet/internal/domain/types"
)

// TextEnhancer rewrites draft text. enabled is false when no credential is
// configured; that is not an error.
type TextEnhancer interface {
	Enhance(
		ctx context.Context,
		variant domaintypes.EnhanceVariant,
		raw string,
	) (text string, enabled bool, err error)
}

// ImageLoader turns a local file into an embeddable image reference.
type ImageLoader interface {
	Load(path string) (string, error)
}

// ModerationNotifier hands a notice to the moderation collaborator.
type ModerationNotifier interface {
	Notify(ctx context.Context, notice domaintypes.ModerationNotice) error
}

// EventPublisher fans committed state changes out to observers.
type EventPublisher interface {
	Publish(ctx context.Context, event domaintypes.Event) error
}

// ModerationService raises block, report and verification notices. None of
// them changes feed state.
type ModerationService interface {
	BlockUser(ctx context.Context, actor, target domaintypes.UserID) error
	ReportUser(ctx context.Context, actor, target domaintypes.UserID, reason string) error
	RequestVerification(ctx context.Context, actor, account domaintypes.UserID) error
}
