package ops

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/myrjola/trackside/internal/models"
	"github.com/myrjola/trackside/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	Watch.Flags().Duration("interval", 5*time.Second, "refresh interval")
}

var Watch = &cobra.Command{
	Use:     "watch",
	GroupID: "ops",
	Short:   "Poll the network and print changes until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		interval, err := cmd.Flags().GetDuration("interval")
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stack, err := newStack(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = stack.Close() }()

		updates, cancel := stack.store.Watch()
		defer cancel()

		refresh := func() {
			// Failures already surface through the store's error string.
			_ = stack.store.FetchTrains(ctx)
			_ = stack.store.FetchRecommendations(ctx)
			_ = stack.store.FetchKPIs(ctx, false)
		}
		go func() {
			refresh()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					refresh()
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil
			case collection := <-updates:
				printUpdate(stack.store.State(), collection)
			}
		}
	},
}

func printUpdate(state store.State, collection store.Collection) {
	if state.Err != "" {
		fmt.Printf("%s  %s\n", time.Now().Format("15:04:05"), state.Err)
		return
	}
	switch collection {
	case store.CollectionTrains:
		delayed := 0
		for _, train := range state.Trains {
			if train.DelayMinutes > 0 {
				delayed++
			}
		}
		fmt.Printf("%s  trains: %d running, %d delayed\n",
			time.Now().Format("15:04:05"), len(state.Trains), delayed)
	case store.CollectionRecommendations:
		pending := 0
		for _, rec := range state.Recommendations {
			if rec.Status == models.RecommendationStatusPending {
				pending++
			}
		}
		fmt.Printf("%s  recommendations: %d open, %d pending\n",
			time.Now().Format("15:04:05"), len(state.Recommendations), pending)
	case store.CollectionKPIs:
		fmt.Printf("%s  kpis: %.1f%% on time, avg delay %.1f min\n",
			time.Now().Format("15:04:05"), state.KPISummary.OnTimePercent, state.KPISummary.AvgDelayMinutes)
	default:
	}
}
