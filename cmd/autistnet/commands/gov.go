package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func govCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gov",
		Short: "Enter or leave government mode",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "enter <registration-id>",
			Short: "Act as the government identity",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := opCtx(cmd)
				defer cancel()

				acct, err := appCtx.Feed.EnterGovernmentMode(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "now acting as %s\n", acct.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "exit",
			Short: "Return to the member identity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := opCtx(cmd)
				defer cancel()

				acct, err := appCtx.Feed.ExitGovernmentMode(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "now acting as %s\n", acct.Name)
				return nil
			},
		},
	)
	return cmd
}
