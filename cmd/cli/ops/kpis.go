package ops

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	KPIs.Flags().Bool("history", false, "include KPI history samples")
	KPIs.Flags().String("range", "24h", "time range, e.g. 24h or 7d")
}

var KPIs = &cobra.Command{
	Use:     "kpis",
	GroupID: "ops",
	Short:   "Show the KPI report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		includeHistory, err := cmd.Flags().GetBool("history")
		if err != nil {
			return err
		}
		timeRange, err := cmd.Flags().GetString("range")
		if err != nil {
			return err
		}

		stack, err := newStack(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = stack.Close() }()

		stack.store.SetTimeRange(cmd.Context(), timeRange)
		if err = stack.store.FetchKPIs(cmd.Context(), includeHistory); err != nil {
			return err
		}
		state := stack.store.State()

		fmt.Printf("On time %.1f%%, average delay %.1f min, %d active trains, %d critical\n",
			state.KPISummary.OnTimePercent, state.KPISummary.AvgDelayMinutes,
			state.KPISummary.ActiveTrains, state.KPISummary.CriticalCount)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "KPI\tVALUE\tTARGET\tTREND\tSTATUS")
		for _, kpi := range state.KPIs {
			target := "-"
			if kpi.Target != nil {
				target = fmt.Sprintf("%.1f%s", *kpi.Target, kpi.Unit)
			}
			_, _ = fmt.Fprintf(w, "%s\t%.1f%s\t%s\t%s\t%s\n",
				kpi.Name, kpi.Value, kpi.Unit, target, kpi.Trend, kpi.Status)
		}
		if err = w.Flush(); err != nil {
			return err
		}

		for _, sample := range state.KPIHistory {
			fmt.Printf("%s", sample.Timestamp.Format("2006-01-02 15:04"))
			for name, value := range sample.Values {
				fmt.Printf("  %s=%.1f", name, value)
			}
			fmt.Println()
		}
		return nil
	},
}
