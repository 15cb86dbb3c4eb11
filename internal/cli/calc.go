package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

var calcCmd = LeafCommand{
	Use:   "calc",
	Short: "Compute gross/break/net for an arbitrary interval without recording it",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "from", Usage: "start time (HH:MM), required"},
		{Name: "to", Usage: "end time (HH:MM), required"},
		{Name: "from-date", Usage: "start day (YYYY-MM-DD), defaults to today"},
		{Name: "to-date", Usage: "end day (YYYY-MM-DD), defaults to the start day (next day when the end precedes the start)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")
		fromDateFlag, _ := cmd.Flags().GetString("from-date")
		toDateFlag, _ := cmd.Flags().GetString("to-date")
		return runCalc(cmd, a.tracker, fromDateFlag, fromFlag, toDateFlag, toFlag)
	},
}.Build()

func runCalc(cmd *cobra.Command, tracker *session.Tracker, fromDate, from, toDate, to string) error {
	if from == "" || to == "" {
		return fmt.Errorf("--from and --to are required")
	}
	if fromDate == "" {
		fromDate = tz.DayKey(tracker.Now())
	}

	start, err := tz.ResolveLocalTime(fromDate, from, nil)
	if err != nil {
		return err
	}

	inferOvernight := toDate == ""
	if toDate == "" {
		toDate = fromDate
	}
	end, err := tz.ResolveLocalTime(toDate, to, nil)
	if err != nil {
		return err
	}
	if end.Before(start) && inferOvernight {
		next, err := tz.AddDays(toDate, 1)
		if err != nil {
			return err
		}
		if end, err = tz.ResolveLocalTime(next, to, nil); err != nil {
			return err
		}
	}

	sum, err := rules.Summarize(start, end, tracker.Rules())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s %s  %s %s\n",
		Silent("gross"), tz.FormatMinutesHHMM(sum.GrossMinutes),
		Silent("break"), tz.FormatMinutesHHMM(sum.DeductionMinutes),
		Silent("net"), Primary(tz.FormatMinutesHHMM(sum.NetMinutes)),
	)
	return nil
}
