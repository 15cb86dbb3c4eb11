package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

// statusTargets are the net targets shown in the status panel.
var statusTargets = []int{360, 420, 480}

var statusCmd = LeafCommand{
	Use:   "status",
	Short: "Show the current day and progress toward net targets",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "watch", Usage: "keep the panel on screen, refreshed every minute"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		watchFlag, _ := cmd.Flags().GetBool("watch")
		if watchFlag {
			return runStatusWatch(cmd, a.tracker)
		}
		return runStatus(cmd, a.tracker)
	},
}.Build()

func runStatus(cmd *cobra.Command, tracker *session.Tracker) error {
	out, err := renderStatus(tracker, tracker.Now())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// renderStatus builds the status panel for the given instant.
func renderStatus(tracker *session.Tracker, now time.Time) (string, error) {
	rec, err := tracker.Active()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if rec == nil {
		b.WriteString(Silent("Not checked in.") + "\n")
		return b.String(), nil
	}

	end := now
	state := Info("open")
	if rec.CheckOut != nil {
		end = *rec.CheckOut
		state = Silent("closed")
	}

	sum, err := rules.Summarize(rec.CheckIn, end, tracker.Rules())
	if err != nil {
		return "", err
	}

	fmt.Fprintf(&b, "%s  %s %s\n", Silent("Day:"), Primary(rec.Date), state)
	fmt.Fprintf(&b, "%s   %s\n", Silent("In:"), Primary(tz.FormatTimeHM(rec.CheckIn)))
	if rec.CheckOut != nil {
		fmt.Fprintf(&b, "%s  %s\n", Silent("Out:"), Primary(tz.FormatTimeHM(*rec.CheckOut)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n",
		Silent("gross"), tz.FormatMinutesHHMM(sum.GrossMinutes),
		Silent("break"), tz.FormatMinutesHHMM(sum.DeductionMinutes),
		Silent("net"), Primary(tz.FormatMinutesHHMM(sum.NetMinutes)),
	)

	if rec.CheckOut == nil {
		b.WriteString("\n")
		for _, target := range statusTargets {
			label := fmt.Sprintf("%dh net", target/60)
			if at, reached := rules.AchievedAt(rec.CheckIn, end, target, tracker.Rules()); reached {
				fmt.Fprintf(&b, "%s  %s %s\n",
					Silent(label), Info("reached at"), tz.FormatTimeHM(at))
			} else {
				at = rules.TargetTimeForNet(rec.CheckIn, target, tracker.Rules())
				fmt.Fprintf(&b, "%s  %s %s\n",
					Silent(label), Warning("reaches at"), tz.FormatTimeHM(at))
			}
		}
	}
	return b.String(), nil
}
