// Package events publishes committed feed changes to NATS.
//
// Each event goes to the subject "<prefix>.<kind>", for example
// "autistnet.post.created", with the JSON-encoded event as payload.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"autistnet/internal/domain"
)

// DefaultPrefix is the subject prefix used when none is configured.
const DefaultPrefix = "autistnet"

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher sends events to NATS.
type Publisher struct {
	conn   Conn
	prefix string
	logger *slog.Logger
}

// New returns a Publisher writing to conn under prefix.
func New(conn Conn, prefix string, logger *slog.Logger) *Publisher {
	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{conn: conn, prefix: prefix, logger: logger}
}

// Connect dials the NATS server at url. The caller owns the returned
// connection and should Drain or Close it.
func Connect(url string, logger *slog.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	nc, err := nats.Connect(url,
		nats.Name("autistnet"),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return nc, nil
}

// Subject returns the subject kind is published on.
func (p *Publisher) Subject(kind domain.EventKind) string {
	return p.prefix + "." + string(kind)
}

// Publish encodes ev and sends it. NATS publish does not take a context, so
// ctx is only checked before sending.
func (p *Publisher) Publish(ctx context.Context, ev domain.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	subject := p.Subject(ev.Kind)
	if err := p.conn.Publish(subject, data); err != nil {
		return domain.NewServiceError("nats", err)
	}
	p.logger.Debug("Event published", slog.String("subject", subject))
	return nil
}

var _ domain.EventPublisher = (*Publisher)(nil)
