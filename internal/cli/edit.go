package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

var editCmd = LeafCommand{
	Use:   "edit <date>",
	Short: "Rewrite the times of a recorded day",
	Args:  cobra.ExactArgs(1),
	StrFlags: []StringFlag{
		{Name: "in", Usage: "check-in time (HH:MM), required"},
		{Name: "out", Usage: "check-out time (HH:MM); omit to leave the day open"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		inFlag, _ := cmd.Flags().GetString("in")
		outFlag, _ := cmd.Flags().GetString("out")
		return runEdit(cmd, a.tracker, args[0], inFlag, outFlag)
	},
}.Build()

func runEdit(cmd *cobra.Command, tracker *session.Tracker, date, in, out string) error {
	if in == "" {
		return fmt.Errorf("--in is required")
	}

	rec, err := tracker.Edit(date, in, out)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if rec.CheckOut == nil {
		_, _ = fmt.Fprintf(w, "%s now %s → %s\n",
			Primary(rec.Date), tz.FormatTimeHM(rec.CheckIn), Info("open"))
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s now %s → %s\n",
		Primary(rec.Date), tz.FormatTimeHM(rec.CheckIn), tz.FormatTimeHM(*rec.CheckOut))
	return nil
}
