package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/store"
	"github.com/mkarsai/worktime/internal/tz"
	"github.com/mkarsai/worktime/internal/workday"
)

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"every weekday", false},
		{"weekdays", false},
		{"every day", false},
		{"daily", false},
		{"every weekend", false},
		{"every monday", false},
		{"Every Friday", false},
		{"FREQ=WEEKLY;BYDAY=MO,WE", false},
		{"RRULE:FREQ=DAILY", false},
		{"every fortnight", true},
		{"sometimes", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseSchedule(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func putClosed(t *testing.T, st store.Store, day, inHM, outHM string) {
	t.Helper()
	in, err := tz.ResolveLocalTime(day, inHM, nil)
	require.NoError(t, err)
	out, err := tz.ResolveLocalTime(day, outHM, nil)
	require.NoError(t, err)
	require.NoError(t, st.PutRecord(&workday.Record{
		Date: day, CheckIn: in, CheckOut: &out, CreatedAt: in, UpdatedAt: out,
	}))
}

func TestMonthTotalsAndBalance(t *testing.T) {
	st := store.NewMemory()
	putClosed(t, st, "2025-06-02", "08:00", "16:00") // Monday, 480 gross, 450 net
	putClosed(t, st, "2025-06-03", "08:00", "14:00") // Tuesday, 360 gross, 360 net
	putClosed(t, st, "2025-05-30", "08:00", "16:00") // previous month, excluded

	in, err := tz.ResolveLocalTime("2025-06-04", "09:00", nil)
	require.NoError(t, err)
	require.NoError(t, st.PutRecord(&workday.Record{
		Date: "2025-06-04", CheckIn: in, CreatedAt: in, UpdatedAt: in,
	}))

	rep, err := Month(st, "2025-06", rules.Default, Options{
		Schedule:           "every weekday",
		DailyTargetMinutes: 480,
	})
	require.NoError(t, err)

	assert.Equal(t, 840, rep.TotalGrossMinutes)
	assert.Equal(t, 30, rep.TotalDeductionMinutes)
	assert.Equal(t, 810, rep.TotalNetMinutes)

	// June 2025 has 21 weekdays.
	assert.Equal(t, 21, rep.ExpectedDays)
	assert.Equal(t, 21*480, rep.ExpectedMinutes)
	assert.Equal(t, 810-21*480, rep.BalanceMinutes)

	// One row per weekday plus nothing extra: all worked days in June are
	// weekdays, so the overlay adds no duplicates.
	require.Len(t, rep.Days, 21)
	assert.Equal(t, "2025-06-02", rep.Days[0].Date)

	byDate := make(map[string]DayLine)
	for _, d := range rep.Days {
		byDate[d.Date] = d
	}
	openLine := byDate["2025-06-04"]
	assert.True(t, openLine.Open)
	assert.Equal(t, "09:00", openLine.CheckIn)
	assert.Empty(t, openLine.CheckOut)
	assert.Zero(t, openLine.NetMinutes, "open rows stay out of the totals")

	unworked := byDate["2025-06-05"]
	assert.True(t, unworked.Expected)
	assert.Empty(t, unworked.CheckIn)
}

func TestMonthWeekendWorkAddsRow(t *testing.T) {
	st := store.NewMemory()
	putClosed(t, st, "2025-06-07", "10:00", "12:00") // Saturday

	rep, err := Month(st, "2025-06", rules.Default, Options{
		Schedule:           "every weekday",
		DailyTargetMinutes: 480,
	})
	require.NoError(t, err)

	require.Len(t, rep.Days, 22)
	byDate := make(map[string]DayLine)
	for _, d := range rep.Days {
		byDate[d.Date] = d
	}
	sat := byDate["2025-06-07"]
	assert.False(t, sat.Expected)
	assert.Equal(t, 120, sat.NetMinutes)
	assert.Equal(t, 120, rep.TotalNetMinutes)
}

func TestMonthNoSchedule(t *testing.T) {
	st := store.NewMemory()
	putClosed(t, st, "2025-06-02", "08:00", "16:00")

	rep, err := Month(st, "2025-06", rules.Default, Options{})
	require.NoError(t, err)
	assert.Zero(t, rep.ExpectedDays)
	assert.Zero(t, rep.ExpectedMinutes)
	assert.Equal(t, 450, rep.BalanceMinutes)
	require.Len(t, rep.Days, 1)
}

func TestMonthRejectsBadArgument(t *testing.T) {
	st := store.NewMemory()
	for _, month := range []string{"2025", "June 2025", "2025-13", "2025-06-01"} {
		_, err := Month(st, month, rules.Default, Options{})
		assert.Error(t, err, "month %q", month)
	}
}

func TestMonthSingleWeekdaySchedule(t *testing.T) {
	st := store.NewMemory()
	rep, err := Month(st, "2025-06", nil, Options{
		Schedule:           "every monday",
		DailyTargetMinutes: 480,
	})
	require.NoError(t, err)

	// Mondays in June 2025: 2, 9, 16, 23, 30.
	assert.Equal(t, 5, rep.ExpectedDays)
	require.Len(t, rep.Days, 5)
	for i, want := range []string{"2025-06-02", "2025-06-09", "2025-06-16", "2025-06-23", "2025-06-30"} {
		assert.Equal(t, want, rep.Days[i].Date)
		assert.True(t, rep.Days[i].Expected)
	}
}
