package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autistnet/internal/domain"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Direct conversations",
	}
	cmd.AddCommand(chatOpenCmd(), chatSendCmd(), chatListCmd(), chatShowCmd())
	return cmd
}

func chatOpenCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "open <account>",
		Short: "Start or find the conversation with an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			conv, err := appCtx.Feed.OpenConversation(ctx, domain.UserID(args[0]), title)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", conv.ID, conv.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "conversation title (default: the peer's name)")
	return cmd
}

func chatSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <conversation-id> <text>",
		Short: "Send a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opCtx(cmd)
			defer cancel()

			msg, err := appCtx.Feed.SendMessage(ctx, domain.ConversationID(args[0]), active().ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", msg.ID)
			return nil
		},
	}
}

func chatListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			convs := appCtx.Feed.State().Conversations()
			if len(convs) == 0 {
				fmt.Fprintln(out, "no conversations")
			}
			for _, c := range convs {
				last := ""
				if m, ok := c.Last(); ok {
					last = abbreviate(m.Text, 40)
				}
				fmt.Fprintf(out, "%s  %s  %d messages  %s\n", c.ID, c.Title, len(c.Messages), last)
			}
			return nil
		},
	}
}

func chatShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <conversation-id>",
		Short: "Print a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := appCtx.Feed.State()
			conv, ok := st.Conversation(domain.ConversationID(args[0]))
			if !ok {
				return domain.NotFound("conversation", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", conv.Title)
			for _, m := range conv.Messages {
				fmt.Fprintf(out, "%s  %s: %s\n", m.At.Format(timeLayout), authorName(st, m.SenderID), m.Text)
			}
			return nil
		},
	}
}
