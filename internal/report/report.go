// Package report builds monthly summaries over stored work days, with an
// expected-workday overlay driven by a recurrence schedule.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/store"
	"github.com/mkarsai/worktime/internal/tz"
	"github.com/mkarsai/worktime/internal/workday"
)

// MonthLayout is the layout of a month argument, e.g. "2025-06".
const MonthLayout = "2006-01"

// Options configures the expected-workday overlay.
type Options struct {
	// Schedule is a recurrence describing which days are expected work
	// days, e.g. "every weekday" or a raw RRULE.
	Schedule string
	// DailyTargetMinutes is the net target per expected work day.
	DailyTargetMinutes int
}

// DayLine is one row of a monthly report.
type DayLine struct {
	Date             string
	CheckIn          string
	CheckOut         string
	GrossMinutes     int
	DeductionMinutes int
	NetMinutes       int
	// Open marks a day whose record has no check-out yet; its minute
	// columns are zero and excluded from the totals.
	Open bool
	// Expected marks a day the schedule predicts as a work day.
	Expected bool
}

// MonthReport aggregates one calendar month.
type MonthReport struct {
	Month string
	Days  []DayLine

	TotalGrossMinutes     int
	TotalDeductionMinutes int
	TotalNetMinutes       int

	ExpectedDays    int
	ExpectedMinutes int
	// BalanceMinutes is total net minus expected minutes; negative means
	// behind schedule.
	BalanceMinutes int
}

// ParseSchedule parses a natural language or raw RRULE recurrence string.
func ParseSchedule(s string) (*rrule.RRule, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if isRawRRule(s) {
		raw := strings.TrimPrefix(strings.ToUpper(s), "RRULE:")
		r, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RRULE %q: %w", raw, err)
		}
		return r, nil
	}

	switch s {
	case "every day", "daily":
		return rrule.NewRRule(rrule.ROption{
			Freq: rrule.DAILY,
		})

	case "every weekday", "weekdays":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		})

	case "every weekend", "weekends":
		return rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		})
	}

	// "every monday", "every tuesday", etc.
	if dayName, ok := strings.CutPrefix(s, "every "); ok {
		if wd, ok := scheduleWeekdays[dayName]; ok {
			return rrule.NewRRule(rrule.ROption{
				Freq:      rrule.WEEKLY,
				Byweekday: []rrule.Weekday{wd},
			})
		}
	}

	return nil, fmt.Errorf("unrecognized schedule %q", s)
}

var scheduleWeekdays = map[string]rrule.Weekday{
	"sunday":    rrule.SU,
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
}

// isRawRRule returns true if the string looks like a raw RRULE.
func isRawRRule(s string) bool {
	u := strings.ToUpper(s)
	return strings.HasPrefix(u, "RRULE:") || strings.HasPrefix(u, "FREQ=")
}

// Month builds the report for one calendar month. Rows cover every day that
// has a record or that the schedule marks as expected, ascending by date.
// Open records appear as rows but contribute nothing to the totals.
func Month(st store.Store, month string, rs []rules.Rule, opts Options) (*MonthReport, error) {
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return nil, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}

	records, err := st.ListRecords()
	if err != nil {
		return nil, err
	}

	lines := make(map[string]*DayLine)
	rep := &MonthReport{Month: month}

	prefix := month + "-"
	for _, r := range records {
		if !strings.HasPrefix(r.Date, prefix) {
			continue
		}
		line, err := dayLine(r, rs)
		if err != nil {
			return nil, err
		}
		lines[r.Date] = line
		rep.TotalGrossMinutes += line.GrossMinutes
		rep.TotalDeductionMinutes += line.DeductionMinutes
		rep.TotalNetMinutes += line.NetMinutes
	}

	if opts.Schedule != "" {
		if err := overlayExpected(lines, rep, month, opts); err != nil {
			return nil, err
		}
	}

	for _, line := range lines {
		rep.Days = append(rep.Days, *line)
	}
	sort.Slice(rep.Days, func(i, j int) bool { return rep.Days[i].Date < rep.Days[j].Date })

	rep.ExpectedMinutes = rep.ExpectedDays * opts.DailyTargetMinutes
	rep.BalanceMinutes = rep.TotalNetMinutes - rep.ExpectedMinutes
	return rep, nil
}

func dayLine(r *workday.Record, rs []rules.Rule) (*DayLine, error) {
	line := &DayLine{
		Date:    r.Date,
		CheckIn: tz.FormatTimeHM(r.CheckIn),
		Open:    r.Open(),
	}
	if r.CheckOut == nil {
		return line, nil
	}
	sum, err := rules.Summarize(r.CheckIn, *r.CheckOut, rs)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", r.Date, err)
	}
	line.CheckOut = tz.FormatTimeHM(*r.CheckOut)
	line.GrossMinutes = sum.GrossMinutes
	line.DeductionMinutes = sum.DeductionMinutes
	line.NetMinutes = sum.NetMinutes
	return line, nil
}

func overlayExpected(lines map[string]*DayLine, rep *MonthReport, month string, opts Options) error {
	rule, err := ParseSchedule(opts.Schedule)
	if err != nil {
		return err
	}

	loc := tz.Location()
	start, err := time.ParseInLocation(MonthLayout, month, loc)
	if err != nil {
		return err
	}
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	// Unbounded rules need a DTSTART so Between covers the month.
	ropts := rule.OrigOptions
	if ropts.Dtstart.IsZero() {
		ropts.Dtstart = start
	}
	bound, err := rrule.NewRRule(ropts)
	if err != nil {
		return err
	}

	for _, d := range bound.Between(start, end, true) {
		key := d.In(loc).Format(tz.DayKeyLayout)
		line, ok := lines[key]
		if !ok {
			line = &DayLine{Date: key}
			lines[key] = line
		}
		line.Expected = true
		rep.ExpectedDays++
	}
	return nil
}
