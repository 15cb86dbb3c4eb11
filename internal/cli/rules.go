package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
)

var rulesCmd = GroupCommand{
	Use:   "rules",
	Short: "Manage break-deduction rules",
	Subcommands: []*cobra.Command{
		rulesListCmd,
		rulesSetCmd,
		rulesResetCmd,
	},
}.Build()

var rulesListCmd = LeafCommand{
	Use:   "list",
	Short: "Show the active deduction rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return runRulesList(cmd, a.tracker)
	},
}.Build()

var rulesSetCmd = LeafCommand{
	Use:   "set <threshold=deduction> ...",
	Short: "Replace the deduction rules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return runRulesSet(cmd, a.tracker, args)
	},
}.Build()

var rulesResetCmd = LeafCommand{
	Use:   "reset",
	Short: "Restore the default deduction rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return runRulesReset(cmd, a.tracker)
	},
}.Build()

func runRulesList(cmd *cobra.Command, tracker *session.Tracker) error {
	w := cmd.OutOrStdout()
	rs := tracker.Rules()
	if len(rs) == 0 {
		_, _ = fmt.Fprintln(w, Silent("no rules; net always equals gross"))
		return nil
	}
	for _, r := range rs {
		_, _ = fmt.Fprintf(w, "%s gross → %s break\n",
			Primary(tz.FormatMinutesHHMM(r.ThresholdMin)),
			Primary(tz.FormatMinutesHHMM(r.DeductionMin)),
		)
	}
	return nil
}

func runRulesSet(cmd *cobra.Command, tracker *session.Tracker, pairs []string) error {
	rs := make([]rules.Rule, 0, len(pairs))
	for _, pair := range pairs {
		r, err := parseRulePair(pair)
		if err != nil {
			return err
		}
		rs = append(rs, r)
	}

	if err := tracker.SetRules(rs); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rules updated (%d)\n", len(tracker.Rules()))
	return runRulesList(cmd, tracker)
}

func runRulesReset(cmd *cobra.Command, tracker *session.Tracker) error {
	if err := tracker.ResetRules(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "rules reset to defaults")
	return runRulesList(cmd, tracker)
}

// parseRulePair parses "THRESHOLD=DEDUCTION", each side either raw minutes
// ("360") or a duration ("6h", "6h30m", "30m").
func parseRulePair(s string) (rules.Rule, error) {
	threshold, deduction, ok := strings.Cut(s, "=")
	if !ok {
		return rules.Rule{}, fmt.Errorf("invalid rule %q: expected THRESHOLD=DEDUCTION", s)
	}
	t, err := parseMinutes(threshold)
	if err != nil {
		return rules.Rule{}, fmt.Errorf("invalid threshold in %q: %w", s, err)
	}
	d, err := parseMinutes(deduction)
	if err != nil {
		return rules.Rule{}, fmt.Errorf("invalid deduction in %q: %w", s, err)
	}
	return rules.Rule{ThresholdMin: t, DeductionMin: d}, nil
}

func parseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative minutes %d", n)
		}
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("not minutes or a duration: %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return int(d / time.Minute), nil
}
