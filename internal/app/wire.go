package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"autistnet/internal/domain"
	"autistnet/internal/events"
	"autistnet/internal/feed"
	"autistnet/internal/metrics"
	"autistnet/internal/notify/telegram"
	"autistnet/internal/relay"
	"autistnet/internal/services/enhance"
	"autistnet/internal/services/media"
	"autistnet/internal/services/moderation"
	"autistnet/internal/store"
	"autistnet/internal/store/graph"
	"autistnet/internal/store/postgres"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Feed       *feed.Store
	Snapshots  domain.SnapshotStore
	Moderation domain.ModerationService
	Enhancer   domain.TextEnhancer
	Images     domain.ImageLoader
	Relay      *relay.Client
	// Ledger and Follows are the optional mirrors; nil when not configured
	// or unreachable.
	Ledger     *postgres.LedgerMirror
	Follows    *graph.FollowMirror
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	HTTP       *http.Client

	logger  *slog.Logger
	closers []func(context.Context) error
}

// NewWire constructs the dependency graph from cfg. The feed state is
// restored from the snapshot in cfg.Home, or seeded from cfg on first start.
// Optional mirrors that cannot be reached are logged and left out.
func NewWire(ctx context.Context, cfg *Config, logger *slog.Logger) (*Wire, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Wire{
		HTTP:     &http.Client{Timeout: cfg.Timeout},
		Registry: prometheus.NewRegistry(),
		logger:   logger,
	}
	w.Metrics = metrics.New(w.Registry)

	snapshots, err := newSnapshotStore(cfg)
	if err != nil {
		return nil, err
	}
	w.Snapshots = snapshots

	initial, err := loadState(cfg, snapshots)
	if err != nil {
		return nil, err
	}

	env := feed.DefaultEnv()
	env.Policy = cfg.Policy.Policy()
	opts := []feed.Option{
		feed.WithEnv(env),
		feed.WithSnapshotStore(snapshots),
		feed.WithMetrics(w.Metrics),
		feed.WithLogger(logger),
	}
	opts = append(opts, w.mirrors(ctx, cfg)...)
	w.Feed = feed.NewStore(initial, opts...)

	// Moderation fan-out
	var notifiers []domain.ModerationNotifier
	if cfg.Moderation.RelayURL != "" {
		w.Relay = relay.NewHTTP(cfg.Moderation.RelayURL, w.HTTP)
		notifiers = append(notifiers, w.Relay)
	}
	if tg := cfg.Moderation.Telegram; tg.ChatID != 0 {
		n, err := telegram.New(Secret(tg.TokenEnv), tg.ChatID)
		if err != nil {
			logger.Warn("Telegram notifier disabled", slog.String("error", err.Error()))
		} else {
			notifiers = append(notifiers, n)
		}
	}
	w.Moderation = moderation.New(logger, notifiers...)

	w.Enhancer = enhance.New(enhance.Config{
		APIKey:  Secret(cfg.Enhance.APIKeyEnv),
		Model:   cfg.Enhance.Model,
		BaseURL: cfg.Enhance.BaseURL,
		HTTP:    w.HTTP,
	}, logger)
	w.Images = media.New(cfg.Media.MaxBytes)

	return w, nil
}

func newSnapshotStore(cfg *Config) (domain.SnapshotStore, error) {
	if !cfg.Storage.Sealed {
		return store.NewSnapshotFileStore(cfg.Home), nil
	}
	var opts []store.SealedOption
	if cfg.Storage.ScryptCost > 0 {
		opts = append(opts, store.WithScryptCost(cfg.Storage.ScryptCost))
	}
	sealed, err := store.NewSealedSnapshotStore(cfg.Home, Secret(cfg.Storage.PassphraseEnv), opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: %w (set %s)", err, cfg.Storage.PassphraseEnv)
	}
	return sealed, nil
}

func loadState(cfg *Config, snapshots domain.SnapshotStore) (feed.State, error) {
	snap, found, err := snapshots.LoadSnapshot()
	if err != nil {
		return feed.State{}, fmt.Errorf("load snapshot: %w", err)
	}
	if found {
		return feed.FromSnapshot(snap)
	}
	return SeedState(cfg)
}

// SeedState builds the first-start state from the configured identities.
func SeedState(cfg *Config) (feed.State, error) {
	member, err := cfg.Identity.Member.Account()
	if err != nil {
		return feed.State{}, err
	}
	gov, err := cfg.Identity.Government.Account()
	if err != nil {
		return feed.State{}, err
	}
	others := make([]domain.Account, 0, len(cfg.Accounts))
	for _, seed := range cfg.Accounts {
		acct, err := seed.Account()
		if err != nil {
			return feed.State{}, err
		}
		others = append(others, acct)
	}
	return feed.New(member, gov, others...)
}

// mirrors connects the optional NATS, Postgres and Neo4j hooks.
func (w *Wire) mirrors(ctx context.Context, cfg *Config) []feed.Option {
	var opts []feed.Option

	if url := cfg.Events.NATSURL; url != "" {
		nc, err := events.Connect(url, w.logger)
		if err != nil {
			w.logger.Warn("Event publishing disabled", slog.String("url", url), slog.String("error", err.Error()))
		} else {
			opts = append(opts, feed.WithEventPublisher(events.New(nc, cfg.Events.SubjectPrefix, w.logger)))
			w.closers = append(w.closers, func(context.Context) error { return nc.Drain() })
		}
	}

	if dsn := Secret(cfg.Ledger.PostgresDSNEnv); dsn != "" {
		lm, err := postgres.Open(ctx, dsn, w.logger)
		if err != nil {
			w.logger.Warn("Ledger mirror disabled", slog.String("error", err.Error()))
		} else {
			w.Ledger = lm
			opts = append(opts, feed.WithLedgerMirror(lm))
			w.closers = append(w.closers, func(context.Context) error { return lm.Close() })
		}
	}

	if g := cfg.Graph; g.URI != "" {
		runner, err := graph.NewNeo4jRunner(g.URI, g.Username, Secret(g.PasswordEnv), g.Database)
		if err == nil {
			if err = runner.Verify(ctx); err != nil {
				_ = runner.Close(ctx)
			}
		}
		if err != nil {
			w.logger.Warn("Follow mirror disabled", slog.String("uri", g.URI), slog.String("error", err.Error()))
		} else {
			w.Follows = graph.NewFollowMirror(runner, w.logger)
			opts = append(opts, feed.WithFollowMirror(w.Follows))
			w.closers = append(w.closers, runner.Close)
		}
	}
	return opts
}

// Close releases external connections in reverse order of creation.
func (w *Wire) Close(ctx context.Context) error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}
