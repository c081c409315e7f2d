package ops

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/myrjola/trackside/internal/errors"
	"github.com/myrjola/trackside/internal/models"
	"github.com/spf13/cobra"
)

func init() {
	Audit.Flags().String("start", "", "earliest timestamp, RFC 3339")
	Audit.Flags().String("end", "", "latest timestamp, RFC 3339")
	Audit.Flags().StringSlice("train", nil, "filter by train id, repeatable")
}

var Audit = &cobra.Command{
	Use:     "audit",
	GroupID: "ops",
	Short:   "List audit entries, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var filter models.AuditFilter
		if raw, err := cmd.Flags().GetString("start"); err != nil {
			return err
		} else if raw != "" {
			if filter.StartDate, err = time.Parse(time.RFC3339, raw); err != nil {
				return errors.Wrap(err, "parse start", slog.String("start", raw))
			}
		}
		if raw, err := cmd.Flags().GetString("end"); err != nil {
			return err
		} else if raw != "" {
			if filter.EndDate, err = time.Parse(time.RFC3339, raw); err != nil {
				return errors.Wrap(err, "parse end", slog.String("end", raw))
			}
		}
		trainIDs, err := cmd.Flags().GetStringSlice("train")
		if err != nil {
			return err
		}
		filter.TrainIDs = trainIDs

		stack, err := newStack(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = stack.Close() }()

		if err = stack.store.FetchAuditLogs(cmd.Context(), filter); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "TIME\tACTION\tACTOR\tTRAIN\tOUTCOME\tREASON")
		for _, entry := range stack.store.State().AuditLogs {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				entry.Timestamp.Format(time.RFC3339), entry.Action, entry.Actor,
				entry.TrainID, entry.Outcome, entry.Reason)
		}
		return w.Flush()
	},
}
