package ops

import (
	"context"
	"fmt"

	"github.com/myrjola/trackside/internal/store"
	"github.com/spf13/cobra"
)

// decide loads the current recommendations, applies the decision through the
// store, and reports the audit entry that recorded it.
func decide(ctx context.Context, action func(ctx context.Context, s *store.Store) error) error {
	stack, err := newStack(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = stack.Close() }()

	if err = stack.store.FetchRecommendations(ctx); err != nil {
		return err
	}
	if err = action(ctx, stack.store); err != nil {
		return err
	}

	state := stack.store.State()
	if len(state.AuditLogs) > 0 {
		entry := state.AuditLogs[0]
		fmt.Printf("recorded %s (%s) as audit entry %s\n", entry.Action, entry.Reason, entry.ID)
	}
	return nil
}

var Accept = &cobra.Command{
	Use:     "accept [recommendation-id]",
	GroupID: "ops",
	Short:   "Accept a pending recommendation as proposed",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			return s.AcceptRecommendation(ctx, args[0])
		})
	},
}

var Reject = &cobra.Command{
	Use:     "reject [recommendation-id] [reason]",
	GroupID: "ops",
	Short:   "Reject a pending recommendation with a reason",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			return s.RejectRecommendation(ctx, args[0], args[1])
		})
	},
}

var Override = &cobra.Command{
	Use:     "override [recommendation-id] [alternative-id]",
	GroupID: "ops",
	Short:   "Accept a recommendation with one of its alternatives",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return decide(cmd.Context(), func(ctx context.Context, s *store.Store) error {
			return s.OverrideRecommendation(ctx, args[0], args[1])
		})
	},
}
