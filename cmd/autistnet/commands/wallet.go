package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"autistnet/internal/domain"
	"autistnet/internal/feed"
)

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <account> <amount>",
		Short: "Send coins to another account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return domain.Validationf("amount must be a whole number of coins")
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			tx, err := appCtx.Feed.TransferCoins(ctx, active().ID, domain.UserID(args[0]), amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d coins to %s (balance %d)\n", tx.Amount, args[0], active().Coins)
			return nil
		},
	}
}

func walletCmd() *cobra.Command {
	var mirror bool
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show balance and transaction history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := appCtx.Feed.State()
			me := st.Active()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "balance: %d coins\n", me.Coins)
			if mirror {
				if appCtx.Ledger == nil {
					return fmt.Errorf("no ledger mirror configured. set %s", cfg.Ledger.PostgresDSNEnv)
				}
				ctx, cancel := opCtx(cmd)
				defer cancel()

				balance, found, err := appCtx.Ledger.Balance(ctx, me.ID)
				if err != nil {
					return err
				}
				if found {
					fmt.Fprintf(out, "mirrored balance: %d coins\n", balance)
				} else {
					fmt.Fprintln(out, "mirrored balance: none yet")
				}
			}
			ledger := st.Ledger(me.ID)
			for i := len(ledger) - 1; i >= 0; i-- {
				printTransaction(out, ledger[i])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&mirror, "mirror", false, "also show the balance held by the ledger mirror")
	return cmd
}

func rewardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reward <video>",
		Short: "Claim the coin reward for watching a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			balance, err := appCtx.Feed.ClaimReward(ctx, active().ID, feed.RewardKind(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reward claimed (balance %d)\n", balance)
			return nil
		},
	}
}

func storyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "story <text>",
		Short: "Share an inspiring story and earn coins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			balance, err := appCtx.Feed.SubmitStory(ctx, active().ID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "story sent for review (balance %d)\n", balance)
			return nil
		},
	}
}
