package ops

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	Chat.Flags().String("session", "", "session id to continue; a new session is created when omitted")
}

var Chat = &cobra.Command{
	Use:     "chat [message]",
	GroupID: "ops",
	Short:   "Ask the operations assistant a question",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, err := cmd.Flags().GetString("session")
		if err != nil {
			return err
		}

		stack, err := newStack(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = stack.Close() }()

		if sessionID == "" {
			sessionID = stack.store.CreateChatSession()
			fmt.Printf("session %s\n", sessionID)
		}

		message := strings.Join(args, " ")
		for _, reply := range stack.store.SendChatMessage(cmd.Context(), sessionID, message) {
			fmt.Printf("%s: %s\n", reply.Role, reply.Content)
		}
		return nil
	},
}
