package ops

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var Trains = &cobra.Command{
	Use:     "trains",
	GroupID: "ops",
	Short:   "List the current fleet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		stack, err := newStack(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = stack.Close() }()

		if err = stack.store.FetchTrains(cmd.Context()); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NUMBER\tORIGIN\tDESTINATION\tLOCATION\tSTATUS\tDELAY\tLOAD")
		for _, train := range stack.store.State().Trains {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dm\t%d/%d\n",
				train.Number, train.Origin, train.Destination, train.Location,
				train.Status, train.DelayMinutes, train.PassengerCount, train.Capacity)
		}
		return w.Flush()
	},
}
