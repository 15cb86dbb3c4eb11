package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkarsai/worktime/internal/exchange"
	"github.com/mkarsai/worktime/internal/report"
	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/tz"
	"github.com/mkarsai/worktime/internal/workday"
)

var exportCmd = GroupCommand{
	Use:   "export",
	Short: "Export recorded data",
	Subcommands: []*cobra.Command{
		exportCSVCmd,
		exportJSONCmd,
		exportPDFCmd,
	},
}.Build()

var exportCSVCmd = LeafCommand{
	Use:   "csv",
	Short: "Write records as CSV",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "out", Usage: "output file (stdout when omitted)"},
		{Name: "month", Usage: "limit to one month (YYYY-MM)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		outFlag, _ := cmd.Flags().GetString("out")
		monthFlag, _ := cmd.Flags().GetString("month")
		return runExportCSV(cmd, a.tracker, outFlag, monthFlag)
	},
}.Build()

var exportJSONCmd = LeafCommand{
	Use:   "json",
	Short: "Write the full dataset as JSON (records and settings)",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "out", Usage: "output file (stdout when omitted)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		outFlag, _ := cmd.Flags().GetString("out")
		return runExportJSON(cmd, a.tracker, outFlag)
	},
}.Build()

var exportPDFCmd = LeafCommand{
	Use:   "pdf",
	Short: "Write a monthly PDF timesheet",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "out", Usage: "output file (worktime-YYYY-MM.pdf when omitted)"},
		{Name: "month", Usage: "month to render (YYYY-MM), defaults to the current month"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		outFlag, _ := cmd.Flags().GetString("out")
		monthFlag, _ := cmd.Flags().GetString("month")
		return runExportPDF(cmd, a, outFlag, monthFlag)
	},
}.Build()

func monthRecords(tracker *session.Tracker, month string) ([]*workday.Record, error) {
	records, err := tracker.Store().ListRecords()
	if err != nil {
		return nil, err
	}
	if month == "" {
		return records, nil
	}
	filtered := records[:0]
	for _, r := range records {
		if strings.HasPrefix(r.Date, month+"-") {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

func writeOutput(cmd *cobra.Command, out string, data []byte) error {
	if out == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", Primary(out))
	return nil
}

func runExportCSV(cmd *cobra.Command, tracker *session.Tracker, out, month string) error {
	records, err := monthRecords(tracker, month)
	if err != nil {
		return err
	}
	csvOut, err := exchange.RecordsCSV(records, tracker.Rules())
	if err != nil {
		return err
	}
	return writeOutput(cmd, out, []byte(csvOut))
}

func runExportJSON(cmd *cobra.Command, tracker *session.Tracker, out string) error {
	records, err := tracker.Store().ListRecords()
	if err != nil {
		return err
	}
	data, err := exchange.EncodeJSON(exchange.BuildExport(records, tracker.Settings(), tracker.Now()))
	if err != nil {
		return err
	}
	return writeOutput(cmd, out, append(data, '\n'))
}

func runExportPDF(cmd *cobra.Command, a *app, out, month string) error {
	if month == "" {
		month = a.tracker.Now().In(tz.Location()).Format(report.MonthLayout)
	}
	rep, err := report.Month(a.store, month, a.tracker.Rules(), report.Options{
		Schedule:           a.cfg.Report.Schedule,
		DailyTargetMinutes: a.cfg.Report.DailyTargetMinutes,
	})
	if err != nil {
		return err
	}
	if out == "" {
		out = fmt.Sprintf("worktime-%s.pdf", month)
	}
	if err := report.SavePDF(rep, out); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", Primary(out))
	return nil
}
