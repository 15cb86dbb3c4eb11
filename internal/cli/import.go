package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/exchange"
	"github.com/mkarsai/worktime/internal/store"
)

var importCmd = LeafCommand{
	Use:   "import <file>",
	Short: "Import a JSON export, overwriting matching days",
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
		return runImport(cmd, a.store, args[0], confirm, a.tracker.Now)
	},
}.Build()

func runImport(cmd *cobra.Command, st store.Store, path string, confirm ConfirmFunc, nowFn func() time.Time) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	ok, err := confirm(fmt.Sprintf("Import %s? Days present in the file overwrite stored ones.", path))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, "cancelled")
		return nil
	}

	res, err := exchange.Import(st, data, nowFn())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "imported %s records", Primary(fmt.Sprintf("%d", res.Imported)))
	if res.Skipped > 0 {
		_, _ = fmt.Fprintf(w, ", skipped %s", Warning(fmt.Sprintf("%d", res.Skipped)))
	}
	_, _ = fmt.Fprintln(w)
	if res.Settings.OpenRecordDate != "" {
		_, _ = fmt.Fprintf(w, "open day: %s\n", Info(res.Settings.OpenRecordDate))
	}
	return nil
}
