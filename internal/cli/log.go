package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

var logCmd = LeafCommand{
	Use:   "log",
	Short: "List all recorded work days, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return runLog(cmd, a.tracker)
	},
}.Build()

func runLog(cmd *cobra.Command, tracker *session.Tracker) error {
	records, err := tracker.Store().ListRecords()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(out, Silent("no records"))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, Silent("DATE\tIN\tOUT\tGROSS\tBREAK\tNET"))
	for _, r := range records {
		if r.CheckOut == nil {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\t\t\n",
				r.Date, tz.FormatTimeHM(r.CheckIn), Info("open"))
			continue
		}
		sum, err := rules.Summarize(r.CheckIn, *r.CheckOut, tracker.Rules())
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date,
			tz.FormatTimeHM(r.CheckIn),
			tz.FormatTimeHM(*r.CheckOut),
			tz.FormatMinutesHHMM(sum.GrossMinutes),
			tz.FormatMinutesHHMM(sum.DeductionMinutes),
			tz.FormatMinutesHHMM(sum.NetMinutes),
		)
	}
	return w.Flush()
}
