package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "timesheet.pdf")

	rep := &MonthReport{
		Month: "2025-06",
		Days: []DayLine{
			{Date: "2025-06-02", CheckIn: "08:00", CheckOut: "16:00", GrossMinutes: 480, DeductionMinutes: 30, NetMinutes: 450, Expected: true},
			{Date: "2025-06-03", CheckIn: "09:00", Open: true, Expected: true},
			{Date: "2025-06-04", Expected: true},
		},
		TotalGrossMinutes:     480,
		TotalDeductionMinutes: 30,
		TotalNetMinutes:       450,
		ExpectedDays:          3,
		ExpectedMinutes:       1440,
		BalanceMinutes:        -990,
	}

	err := SavePDF(rep, outPath)
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestSavePDF_EmptyMonth(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "empty.pdf")

	err := SavePDF(&MonthReport{Month: "2025-01"}, outPath)
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "+07:30", formatBalance(450))
	assert.Equal(t, "-16:30", formatBalance(-990))
	assert.Equal(t, "+00:00", formatBalance(0))
}
