package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

var targetCmd = LeafCommand{
	Use:   "target <net>",
	Short: "Show when the open day reaches a net target (minutes or a duration like 7h30m)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return runTarget(cmd, a.tracker, args[0])
	},
}.Build()

func runTarget(cmd *cobra.Command, tracker *session.Tracker, arg string) error {
	targetNet, err := parseMinutes(arg)
	if err != nil {
		return err
	}

	rec, err := tracker.Active()
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no record for today; check in first")
	}

	gross := rules.TargetGrossForNet(targetNet, tracker.Rules())
	at := rules.TargetTimeForNet(rec.CheckIn, targetNet, tracker.Rules())

	end := tracker.Now()
	if rec.CheckOut != nil {
		end = *rec.CheckOut
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s net needs %s gross\n",
		Primary(tz.FormatMinutesHHMM(targetNet)), tz.FormatMinutesHHMM(gross))
	if _, reached := rules.AchievedAt(rec.CheckIn, end, targetNet, tracker.Rules()); reached {
		_, _ = fmt.Fprintf(w, "%s %s\n", Info("reached at"), Primary(tz.FormatTimeHM(at)))
	} else {
		_, _ = fmt.Fprintf(w, "%s %s\n", Warning("reaches at"), Primary(tz.FormatTimeHM(at)))
	}
	return nil
}
