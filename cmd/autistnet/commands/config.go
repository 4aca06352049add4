package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autistnet/internal/app"
)

// config runs without the feed wiring so a broken config can still be inspected.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or locate the user config file",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			appCtx = nil
			logger = newLogger("")
			return nil
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the default config to the user config path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				loader := app.NewLoader(logger)
				created, err := loader.EnsureUserConfig()
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", loader.UserConfigPath())
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", loader.UserConfigPath())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the user config path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), app.NewLoader(logger).UserConfigPath())
				return nil
			},
		},
	)
	return cmd
}
