package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/session"
)

const keyAllowFutureCheckout = "allow-future-checkout"

var configCmd = GroupCommand{
	Use:   "config",
	Short: "Inspect and change tracker settings",
	Subcommands: []*cobra.Command{
		configGetCmd,
		configSetCmd,
	},
}.Build()

var configGetCmd = LeafCommand{
	Use:   "get [key]",
	Short: "Show a setting, or all settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		key := ""
		if len(args) == 1 {
			key = args[0]
		}
		return runConfigGet(cmd, a.tracker, key)
	},
}.Build()

var configSetCmd = LeafCommand{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		return runConfigSet(cmd, a.tracker, args[0], args[1])
	},
}.Build()

func runConfigGet(cmd *cobra.Command, tracker *session.Tracker, key string) error {
	w := cmd.OutOrStdout()
	s := tracker.Settings()

	switch key {
	case "":
		_, _ = fmt.Fprintf(w, "%s %t\n", Silent(keyAllowFutureCheckout), s.AllowFutureCheckout)
		if s.OpenRecordDate != "" {
			_, _ = fmt.Fprintf(w, "%s %s\n", Silent("open-day"), s.OpenRecordDate)
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", Silent("timezone"), s.Timezone)
		return nil
	case keyAllowFutureCheckout:
		_, _ = fmt.Fprintf(w, "%t\n", s.AllowFutureCheckout)
		return nil
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}

func runConfigSet(cmd *cobra.Command, tracker *session.Tracker, key, value string) error {
	switch key {
	case keyAllowFutureCheckout:
		allow, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: expected true or false", value, key)
		}
		if err := tracker.SetAllowFutureCheckout(allow); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", Silent(key), Primary(strconv.FormatBool(allow)))
		return nil
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
}
