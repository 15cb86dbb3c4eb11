package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

var checkoutCmd = LeafCommand{
	Use:   "checkout",
	Short: "End the open work day",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "at", Usage: "check out at this wall-clock time (HH:MM) instead of now"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		atFlag, _ := cmd.Flags().GetString("at")
		return runCheckout(cmd, a.tracker, atFlag)
	},
}.Build()

func runCheckout(cmd *cobra.Command, tracker *session.Tracker, at string) error {
	rec, _, err := tracker.CheckOut(at)
	if err != nil {
		return err
	}

	sum, err := rules.Summarize(rec.CheckIn, *rec.CheckOut, tracker.Rules())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "checked out at %s on %s\n",
		Primary(tz.FormatTimeHM(*rec.CheckOut)),
		Silent(rec.Date),
	)
	_, _ = fmt.Fprintf(w, "%s %s  %s %s  %s %s\n",
		Silent("gross"), tz.FormatMinutesHHMM(sum.GrossMinutes),
		Silent("break"), tz.FormatMinutesHHMM(sum.DeductionMinutes),
		Silent("net"), Primary(tz.FormatMinutesHHMM(sum.NetMinutes)),
	)
	return nil
}
