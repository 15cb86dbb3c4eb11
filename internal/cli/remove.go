package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

var removeCmd = LeafCommand{
	Use:   "remove <date>",
	Short: "Delete a recorded work day",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		yesFlag, _ := cmd.Flags().GetBool("yes")
		confirm := NewConfirmFunc()
		if yesFlag {
			confirm = AlwaysYes()
		}
		return runRemove(cmd, a.tracker, args[0], confirm)
	},
}.Build()

func runRemove(cmd *cobra.Command, tracker *session.Tracker, date string, confirm ConfirmFunc) error {
	rec, err := tracker.Store().GetRecord(date)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no record for %s", date)
	}

	w := cmd.OutOrStdout()
	detail := tz.FormatTimeHM(rec.CheckIn) + " → open"
	if rec.CheckOut != nil {
		detail = tz.FormatTimeHM(rec.CheckIn) + " → " + tz.FormatTimeHM(*rec.CheckOut)
	}
	_, _ = fmt.Fprintf(w, "  date:  %s\n", Primary(rec.Date))
	_, _ = fmt.Fprintf(w, "  times: %s\n", Primary(detail))

	ok, err := confirm("Remove this day?")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, "cancelled")
		return nil
	}

	if err := tracker.Delete(date); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "removed %s\n", Silent(date))
	return nil
}
