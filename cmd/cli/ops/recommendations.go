package ops

import (
	"fmt"

	"github.com/myrjola/trackside/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	Recommendations.Flags().Bool("request", false, "ask the optimizer for fresh recommendations first")
}

var Recommendations = &cobra.Command{
	Use:     "recommendations",
	GroupID: "ops",
	Short:   "List recommendations, optionally requesting fresh ones",
	RunE: func(cmd *cobra.Command, _ []string) error {
		request, err := cmd.Flags().GetBool("request")
		if err != nil {
			return err
		}

		stack, err := newStack(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = stack.Close() }()

		ctx := cmd.Context()
		if request {
			// The optimizer works off the current system state, so refresh
			// trains and KPIs before asking.
			if err = stack.store.FetchTrains(ctx); err != nil {
				return err
			}
			if err = stack.store.FetchKPIs(ctx, false); err != nil {
				return err
			}
			err = stack.store.RequestRecommendations(ctx)
		} else {
			err = stack.store.FetchRecommendations(ctx)
		}
		if err != nil {
			return err
		}

		for _, rec := range stack.store.State().Recommendations {
			printRecommendation(rec)
		}
		return nil
	},
}

func printRecommendation(rec models.Recommendation) {
	fmt.Printf("%s [%s/%s] %s\n", rec.ID, rec.Priority, rec.Status, rec.Action)
	fmt.Printf("    %s (confidence %.0f%%)\n", rec.Rationale, rec.Confidence*100)
	for _, alt := range rec.Alternatives {
		fmt.Printf("    alternative %s: %s\n", alt.ID, alt.Action)
	}
}
