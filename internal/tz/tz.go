// Package tz converts between absolute instants and calendar-day/time-of-day
// pairs in the application's fixed timezone. Every record in the dataset is
// keyed and displayed in this zone regardless of where the binary runs.
package tz

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
	_ "time/tzdata"
)

// Zone is the fixed timezone for the whole dataset. It is a constant on
// purpose: mixing zones across records would make day keys ambiguous.
const Zone = "Europe/Budapest"

// DayKeyLayout is the calendar-day identifier format used as the primary key
// for work-day records.
const DayKeyLayout = "2006-01-02"

var (
	// ErrInvalidTime is returned for time-of-day strings that are not strict
	// 24-hour HH:MM, or for malformed day keys.
	ErrInvalidTime = errors.New("invalid time")

	// ErrFutureTime is returned when a resolved instant exceeds the supplied
	// upper bound.
	ErrFutureTime = errors.New("time is in the future")
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

var location = mustLoadLocation()

func mustLoadLocation() *time.Location {
	loc, err := time.LoadLocation(Zone)
	if err != nil {
		// tzdata is linked into the binary, so this only fires on a broken
		// build.
		panic(fmt.Sprintf("tz: cannot load %s: %v", Zone, err))
	}
	return loc
}

// Location returns the fixed timezone's *time.Location.
func Location() *time.Location {
	return location
}

// DayKey formats an instant as a calendar day (YYYY-MM-DD) in the fixed zone.
func DayKey(t time.Time) string {
	return t.In(location).Format(DayKeyLayout)
}

// IsValidTimeOfDay reports whether s is a strict 24-hour HH:MM string.
func IsValidTimeOfDay(s string) bool {
	return hhmmPattern.MatchString(s)
}

// FormatTimeHM formats an instant as HH:MM wall-clock time in the fixed zone.
func FormatTimeHM(t time.Time) string {
	return t.In(location).Format("15:04")
}

// FormatMinutesHHMM renders a minute count as HH:MM (hours unbounded).
func FormatMinutesHHMM(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// MinutesBetween returns the floor of (b - a) in whole minutes. The result
// may be negative; flooring (not truncation) keeps -90s at -2, which the
// rule engine relies on for ordering checks.
func MinutesBetween(a, b time.Time) int {
	ms := b.Sub(a).Milliseconds()
	q := ms / 60000
	if ms%60000 != 0 && ms < 0 {
		q--
	}
	return int(q)
}

func parseDayKey(dayKey string) (year int, month time.Month, day int, err error) {
	t, err := time.Parse(DayKeyLayout, dayKey)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: bad day key %q", ErrInvalidTime, dayKey)
	}
	y, m, d := t.Date()
	return y, m, d, nil
}

// ResolveLocalTime converts a day key plus a 24-hour HH:MM wall-clock time in
// the fixed zone to an absolute instant.
//
// The day+time is first interpreted as if it were UTC, then corrected by the
// zone's actual UTC offset at the current guess, repeating until the guess
// stabilizes (within 1 ms) or the iteration bound is hit. This resolves DST
// transitions without consulting the host's default zone: times inside a
// spring-forward gap converge to a nearby valid instant instead of failing.
//
// When notAfter is non-nil and the resolved instant exceeds it, ErrFutureTime
// is returned.
func ResolveLocalTime(dayKey, timeHM string, notAfter *time.Time) (time.Time, error) {
	if !IsValidTimeOfDay(timeHM) {
		return time.Time{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTime, timeHM)
	}
	y, m, d, err := parseDayKey(dayKey)
	if err != nil {
		return time.Time{}, err
	}
	hh, _ := strconv.Atoi(timeHM[:2])
	mm, _ := strconv.Atoi(timeHM[3:])

	baseUTC := time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
	guess := baseUTC
	for i := 0; i < 3; i++ {
		_, offset := guess.In(location).Zone()
		next := baseUTC.Add(-time.Duration(offset) * time.Second)
		if diff := next.Sub(guess); diff > -time.Millisecond && diff < time.Millisecond {
			guess = next
			break
		}
		guess = next
	}

	if notAfter != nil && guess.After(*notAfter) {
		return time.Time{}, fmt.Errorf("%w: %s %s", ErrFutureTime, dayKey, timeHM)
	}
	return guess, nil
}

// AddDays shifts a day key by n calendar days. The intermediate value is
// anchored at noon, not midnight: midnight does not exist on spring-forward
// days in some zones and would shift the key by one.
func AddDays(dayKey string, n int) (string, error) {
	y, m, d, err := parseDayKey(dayKey)
	if err != nil {
		return "", err
	}
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return DayKey(noon), nil
}
