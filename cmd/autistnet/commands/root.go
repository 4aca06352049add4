package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"autistnet/internal/app"
	"autistnet/internal/domain"
)

var (
	cfgPath string
	verbose bool

	cfg    *app.Config
	logger *slog.Logger
	appCtx *app.Wire
)

// Execute runs the CLI with os.Args and releases the wiring afterwards.
func Execute() error {
	err := NewRootCmd().Execute()
	if appCtx != nil {
		if cerr := appCtx.Close(context.Background()); cerr != nil {
			logger.Warn("Shutdown failed", slog.String("error", cerr.Error()))
		}
	}
	return err
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "autistnet",
		Short:         "Social network for autistic people, their families and public agencies",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(cmd.Context()); err != nil {
				return err
			}
			logger.Debug("Loaded state", slog.String("home", cfg.Home),
				slog.String("active", appCtx.Feed.State().Active().ID.String()))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (overrides user and project config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		feedCmd(), postCmd(), respondCmd(), deleteCmd(), enhanceCmd(),
		followCmd(), followingCmd(), blockCmd(), reportCmd(), verifyCmd(), reportsCmd(),
		transferCmd(), walletCmd(), rewardCmd(), storyCmd(),
		govCmd(), chatCmd(), adCmd(),
		profileCmd(), avatarCmd(), accountsCmd(),
		configCmd(),
	)
	return root
}

func setup(ctx context.Context) error {
	logger = newLogger("info")
	c, err := app.NewLoader(logger).Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = c
	logger = newLogger(cfg.Log.Level)

	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return fmt.Errorf("create home: %w", err)
	}
	w, err := app.NewWire(ctx, cfg, logger)
	if err != nil {
		return err
	}
	appCtx = w
	return nil
}

func newLogger(level string) *slog.Logger {
	lvl, err := app.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// opCtx bounds a single operation by the configured timeout.
func opCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), cfg.Timeout)
}

// active returns the identity the session currently acts as.
func active() domain.Account {
	return appCtx.Feed.State().Active()
}
