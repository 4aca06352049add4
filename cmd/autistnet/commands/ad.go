package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autistnet/internal/domain"
	"autistnet/internal/feed"
)

func adCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ad",
		Short: "Manage sponsored ads",
	}
	cmd.AddCommand(adCreateCmd(), adDeleteCmd(), adListCmd())
	return cmd
}

func adCreateCmd() *cobra.Command {
	var (
		a     feed.CreateAd
		image string
	)
	cmd := &cobra.Command{
		Use:   "create <title> <body>",
		Short: "Create an ad",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			a.Title, a.Body = args[0], args[1]
			if image != "" {
				ref, err := appCtx.Images.Load(image)
				if err != nil {
					return err
				}
				a.ImageRef = ref
			}
			ad, err := appCtx.Feed.CreateAd(ctx, a)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created ad %s\n", ad.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "image file")
	cmd.Flags().StringVar(&a.Link, "link", "", "link target")
	return cmd
}

func adDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ad-id>",
		Short: "Delete an ad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			removed, err := appCtx.Feed.DeleteAd(ctx, domain.AdID(args[0]))
			if err != nil {
				return err
			}
			if !removed {
				return domain.NotFound("ad", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

func adListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ads := appCtx.Feed.State().Ads()
			if len(ads) == 0 {
				fmt.Fprintln(out, "no ads")
			}
			for _, ad := range ads {
				fmt.Fprintf(out, "%s  %s: %s", ad.ID, ad.Title, ad.Body)
				if ad.Link != "" {
					fmt.Fprintf(out, "  -> %s", ad.Link)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
