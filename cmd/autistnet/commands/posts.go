package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"autistnet/internal/domain"
	"autistnet/internal/feed"
)

// feed: list posts, most recent first.
func feedCmd() *cobra.Command {
	var (
		complaints bool
		author     string
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List posts, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := appCtx.Feed.State()
			filter := feed.FilterAll
			if complaints {
				filter = feed.FilterComplaints
			}
			posts := st.Feed(filter)
			if author != "" {
				posts = st.PostsBy(domain.UserID(author))
				if complaints {
					posts = slices.DeleteFunc(posts, func(p domain.Post) bool { return !p.IsComplaint() })
				}
			}
			out := cmd.OutOrStdout()
			if len(posts) == 0 {
				fmt.Fprintln(out, "no posts")
				return nil
			}
			for _, p := range posts {
				printPost(out, st, p)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&complaints, "complaints", false, "only show complaints")
	cmd.Flags().StringVar(&author, "author", "", "only show posts by this account")
	return cmd
}

// post <text>: publish as the active identity.
func postCmd() *cobra.Command {
	var (
		image     string
		complaint bool
		agency    string
		location  string
	)
	cmd := &cobra.Command{
		Use:   "post <text>",
		Short: "Publish a post, or a complaint with --complaint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			a := feed.CreatePost{Author: active().ID, Body: args[0], IsComplaint: complaint}
			if complaint {
				a.Details = &domain.ComplaintDetails{Agency: agency, Location: location}
			}
			if image != "" {
				ref, err := appCtx.Images.Load(image)
				if err != nil {
					return err
				}
				a.ImageRef = ref
			}
			post, err := appCtx.Feed.CreatePost(ctx, a)
			if err != nil {
				return err
			}
			me, _ := appCtx.Feed.State().Account(post.AuthorID)
			fmt.Fprintf(cmd.OutOrStdout(), "posted %s (balance %d)\n", post.ID, me.Coins)
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "attach an image file")
	cmd.Flags().BoolVar(&complaint, "complaint", false, "publish as a complaint")
	cmd.Flags().StringVar(&agency, "agency", "", "agency the complaint is addressed to")
	cmd.Flags().StringVar(&location, "location", "", "where the problem happened")
	return cmd
}

// respond <post-id> <text>: official answer to a complaint.
func respondCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "respond <post-id> <text>",
		Short: "Attach an official response to a complaint (government mode)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			post, err := appCtx.Feed.AttachOfficialResponse(ctx, active().ID, domain.PostID(args[0]), args[1])
			if err != nil {
				return err
			}
			printPost(cmd.OutOrStdout(), appCtx.Feed.State(), post)
			return nil
		},
	}
}

// delete <post-id>: remove one of the active identity's posts.
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			removed, err := appCtx.Feed.DeletePost(ctx, active().ID, domain.PostID(args[0]))
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing deleted")
			}
			return nil
		},
	}
}

// enhance <post|complaint> <text>: preview only, nothing is stored.
func enhanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enhance <post|complaint> <text>",
		Short: "Preview an AI-enhanced version of a text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			text, enabled, err := appCtx.Enhancer.Enhance(ctx, domain.EnhanceVariant(args[0]), args[1])
			if err != nil {
				return err
			}
			if !enabled {
				return fmt.Errorf("text enhancement is disabled. set %s", cfg.Enhance.APIKeyEnv)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
