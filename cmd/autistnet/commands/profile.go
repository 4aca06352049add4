package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autistnet/internal/domain"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [account]",
		Short: "Show a profile (default: the active account)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := appCtx.Feed.State()
			acct := st.Active()
			if len(args) == 1 {
				a, ok := st.Account(domain.UserID(args[0]))
				if !ok {
					return domain.NotFound("account", args[0])
				}
				acct = a
			}
			out := cmd.OutOrStdout()
			printAccount(out, acct)
			stats := st.ProfileStats(acct.ID)
			fmt.Fprintf(out, "  posts: %d  likes received: %d\n", stats.Posts, stats.TotalLikes)
			if acct.ID != st.Active().ID {
				fmt.Fprintf(out, "  you follow: %t\n", st.IsFollowing(st.Active().ID, acct.ID))
			}
			return nil
		},
	}
	cmd.AddCommand(profileEditCmd())
	return cmd
}

// profile edit: only flags that were given are applied.
func profileEditCmd() *cobra.Command {
	var name, bio, caregiver, city, state, country string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the active account's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			flags := cmd.Flags()
			pick := func(flag string, v *string) *string {
				if flags.Changed(flag) {
					return v
				}
				return nil
			}
			patch := domain.ProfilePatch{
				Name:          pick("name", &name),
				Bio:           pick("bio", &bio),
				CaregiverName: pick("caregiver", &caregiver),
				City:          pick("city", &city),
				State:         pick("state", &state),
				Country:       pick("country", &country),
			}
			acct, err := appCtx.Feed.UpdateProfile(ctx, active().ID, patch)
			if err != nil {
				return err
			}
			printAccount(cmd.OutOrStdout(), acct)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&bio, "bio", "", "short bio")
	cmd.Flags().StringVar(&caregiver, "caregiver", "", "caregiver name")
	cmd.Flags().StringVar(&city, "city", "", "city")
	cmd.Flags().StringVar(&state, "state", "", "state")
	cmd.Flags().StringVar(&country, "country", "", "country")
	return cmd
}

func avatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <image-file>",
		Short: "Set the active account's picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := appCtx.Images.Load(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if _, err := appCtx.Feed.SetAvatar(ctx, active().ID, ref); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "avatar updated")
			return nil
		},
	}
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List known accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := appCtx.Feed.State()
			me := st.Active().ID
			out := cmd.OutOrStdout()
			for _, a := range st.Accounts() {
				marker := " "
				if a.ID == me {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-6s %-28s %s\n", marker, a.ID, a.Name, a.Role)
			}
			return nil
		},
	}
}
