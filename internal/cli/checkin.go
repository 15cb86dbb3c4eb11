package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

var checkinCmd = LeafCommand{
	Use:   "checkin",
	Short: "Start a work day",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "at", Usage: "check in at this wall-clock time (HH:MM) instead of now"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		atFlag, _ := cmd.Flags().GetString("at")
		return runCheckin(cmd, a.tracker, atFlag)
	},
}.Build()

func runCheckin(cmd *cobra.Command, tracker *session.Tracker, at string) error {
	rec, _, err := tracker.CheckIn(at)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "checked in at %s on %s\n",
		Primary(tz.FormatTimeHM(rec.CheckIn)),
		Silent(rec.Date),
	)
	return nil
}
