package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autistnet/internal/domain"
)

func followCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <account>",
		Short: "Follow an account, or unfollow it if already followed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			following, err := appCtx.Feed.ToggleFollow(ctx, active().ID, domain.UserID(args[0]))
			if err != nil {
				return err
			}
			if following {
				fmt.Fprintf(cmd.OutOrStdout(), "following %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "unfollowed %s\n", args[0])
			}
			return nil
		},
	}
}

// following: who the active account follows, from state or the graph mirror.
func followingCmd() *cobra.Command {
	var mirror bool
	cmd := &cobra.Command{
		Use:   "following",
		Short: "List the accounts you follow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := appCtx.Feed.State()
			me := st.Active().ID

			var ids []domain.UserID
			if mirror {
				if appCtx.Follows == nil {
					return fmt.Errorf("no follow mirror configured. set graph.uri")
				}
				ctx, cancel := opCtx(cmd)
				defer cancel()

				got, err := appCtx.Follows.Followees(ctx, me)
				if err != nil {
					return err
				}
				ids = got
			} else {
				for _, e := range st.Follows() {
					if e.Follower == me {
						ids = append(ids, e.Followee)
					}
				}
			}

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				fmt.Fprintln(out, "not following anyone")
			}
			for _, id := range ids {
				fmt.Fprintf(out, "%s  %s\n", id, authorName(st, id))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&mirror, "mirror", false, "read from the follow graph mirror")
	return cmd
}

func blockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block <account>",
		Short: "Block an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := appCtx.Moderation.BlockUser(ctx, active().ID, domain.UserID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "blocked %s\n", args[0])
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "report <account>",
		Short: "Report an account to the moderators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := appCtx.Moderation.ReportUser(ctx, active().ID, domain.UserID(args[0]), reason); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reported %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "what happened")
	return cmd
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Request verification of the active account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			me := active()
			if err := appCtx.Moderation.RequestVerification(ctx, me.ID, me.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "verification requested")
			return nil
		},
	}
}

// reports: read back what the moderation relay has queued.
func reportsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List recent reports held by the moderation relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Relay == nil {
				return fmt.Errorf("no relay configured. set moderation.relay_url")
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			notices, err := appCtx.Relay.FetchReports(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(notices) == 0 {
				fmt.Fprintln(out, "no reports")
			}
			for _, n := range notices {
				fmt.Fprintf(out, "%s  %s reported %s: %s\n", n.At.Format(timeLayout), n.Actor, n.Target, n.Reason)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of reports")
	return cmd
}
