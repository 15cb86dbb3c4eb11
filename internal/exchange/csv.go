// Package exchange implements the export/import wire contracts: CSV and
// JSON export, and validated JSON import.
package exchange

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/tz"
	"github.com/mkarsai/worktime/internal/workday"
)

var csvHeader = []string{"date", "checkIn", "checkOut", "grossMinutes", "deductionMinutes", "netMinutes"}

// RecordsCSV renders records in the CSV wire format. Time-of-day fields are
// HH:MM in the fixed zone; open records emit empty numeric fields. Fields
// containing commas, quotes or newlines are quoted with doubled internal
// quotes (encoding/csv semantics).
func RecordsCSV(records []*workday.Record, rs []rules.Rule) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range records {
		row := []string{r.Date, tz.FormatTimeHM(r.CheckIn), "", "", "", ""}
		if r.CheckOut != nil {
			sum, err := rules.Summarize(r.CheckIn, *r.CheckOut, rs)
			if err != nil {
				return "", err
			}
			row[2] = tz.FormatTimeHM(*r.CheckOut)
			row[3] = strconv.Itoa(sum.GrossMinutes)
			row[4] = strconv.Itoa(sum.DeductionMinutes)
			row[5] = strconv.Itoa(sum.NetMinutes)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return b.String(), w.Error()
}
