// Package session is the state machine around work-day records: check-in,
// check-out, manual edit, delete and undo, under the invariant that at most
// one record is open at a time. The open-record pointer in settings is a
// hint only; every read revalidates it against the store and self-heals.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/store"
	"github.com/mkarsai/worktime/internal/tz"
	"github.com/mkarsai/worktime/internal/workday"
)

var (
	// ErrAlreadyOpen means another day is still open; it must be checked out
	// (or edited/deleted) before a new check-in.
	ErrAlreadyOpen = errors.New("another day is still open")

	// ErrAlreadyCheckedIn means today already has a record.
	ErrAlreadyCheckedIn = errors.New("today already has a check-in")

	// ErrNoOpenDay means there is nothing to check out of.
	ErrNoOpenDay = errors.New("no open day")

	// ErrCheckoutBeforeCheckin means the checkout instant precedes the
	// check-in even after overnight inference.
	ErrCheckoutBeforeCheckin = errors.New("checkout before checkin")

	// ErrFutureCheckin means the resolved check-in instant is in the future.
	ErrFutureCheckin = errors.New("checkin cannot be in the future")

	// ErrFutureCheckout means the resolved checkout instant is in the future
	// and future checkouts are disabled.
	ErrFutureCheckout = errors.New("checkout cannot be in the future")
)

// Tracker orchestrates all mutations of the work-day dataset. Operations
// validate fully before the first write; a failed operation leaves stored
// state untouched. The caller issues one operation at a time.
type Tracker struct {
	store    store.Store
	now      func() time.Time
	log      zerolog.Logger
	settings *workday.Settings
}

// NewTracker loads (or defaults) the settings, reconciles the open-record
// pointer against the store and persists the result.
func NewTracker(st store.Store, now func() time.Time, log zerolog.Logger) (*Tracker, error) {
	if now == nil {
		now = time.Now
	}

	settings, err := st.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings == nil {
		settings = workday.DefaultSettings()
		log.Debug().Msg("no stored settings, using defaults")
	} else {
		settings.Backfill()
	}

	t := &Tracker{store: st, now: now, log: log, settings: settings}
	if err := t.Reconcile(); err != nil {
		return nil, err
	}
	return t, nil
}

// Settings returns the live settings aggregate. Callers treat it as
// read-only; mutations go through the Set* methods.
func (t *Tracker) Settings() *workday.Settings {
	return t.settings
}

// Rules returns the current normalized rule set.
func (t *Tracker) Rules() []rules.Rule {
	return t.settings.Rules
}

// Store exposes the underlying store for read-only listing.
func (t *Tracker) Store() store.Store {
	return t.store
}

// Now returns the tracker's current instant.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Reconcile validates the open-record pointer and clears it when the
// referenced record is missing or already closed, then persists settings.
func (t *Tracker) Reconcile() error {
	if _, err := t.openRecord(); err != nil {
		return err
	}
	return t.putSettings()
}

// openRecord returns the record the pointer references, or nil after
// self-healing a stale pointer. The heal is persisted immediately.
func (t *Tracker) openRecord() (*workday.Record, error) {
	key := t.settings.OpenRecordDate
	if key == "" {
		return nil, nil
	}
	rec, err := t.store.GetRecord(key)
	if err != nil {
		return nil, fmt.Errorf("read open record %s: %w", key, err)
	}
	if rec == nil || !rec.Open() {
		t.log.Debug().Str("date", key).Msg("clearing stale open-record pointer")
		t.settings.OpenRecordDate = ""
		if err := t.putSettings(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return rec, nil
}

// Active returns the record the user is working with: the open record when
// the pointer validates, otherwise today's record (which may be nil).
func (t *Tracker) Active() (*workday.Record, error) {
	open, err := t.openRecord()
	if err != nil {
		return nil, err
	}
	if open != nil {
		return open, nil
	}
	return t.store.GetRecord(tz.DayKey(t.now()))
}

// CheckIn opens a record for today. manualHM is an HH:MM wall-clock time in
// the fixed zone, or empty for "now". Returns the created record and an undo
// command that removes it again.
func (t *Tracker) CheckIn(manualHM string) (*workday.Record, *Undo, error) {
	now := t.now()

	open, err := t.openRecord()
	if err != nil {
		return nil, nil, err
	}
	if open != nil {
		return nil, nil, fmt.Errorf("%w (%s)", ErrAlreadyOpen, open.Date)
	}

	day := tz.DayKey(now)
	existing, err := t.store.GetRecord(day)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("%w (%s)", ErrAlreadyCheckedIn, day)
	}

	at := now
	if manualHM != "" {
		at, err = tz.ResolveLocalTime(day, manualHM, &now)
		if errors.Is(err, tz.ErrFutureTime) {
			return nil, nil, ErrFutureCheckin
		}
		if err != nil {
			return nil, nil, err
		}
	}
	if at.After(now) {
		return nil, nil, ErrFutureCheckin
	}

	rec := &workday.Record{Date: day, CheckIn: at, CreatedAt: now, UpdatedAt: now}
	if err := t.store.PutRecord(rec); err != nil {
		return nil, nil, err
	}
	t.settings.OpenRecordDate = day
	if err := t.putSettings(); err != nil {
		return nil, nil, err
	}
	t.log.Debug().Str("date", day).Time("at", at).Msg("checked in")

	undo := &Undo{
		Label: fmt.Sprintf("remove check-in for %s", day),
		apply: func() error {
			if err := t.store.DeleteRecord(day); err != nil {
				return err
			}
			if t.settings.OpenRecordDate == day {
				t.settings.OpenRecordDate = ""
			}
			return t.putSettings()
		},
	}
	return rec.Clone(), undo, nil
}

// CheckOut closes the open record. manualHM is resolved against the record's
// own day first; when the candidate lands before the check-in it is
// re-resolved against the next calendar day (overnight session) before being
// rejected. Returns the updated record and an undo command that reopens it.
func (t *Tracker) CheckOut(manualHM string) (*workday.Record, *Undo, error) {
	now := t.now()

	rec, err := t.Active()
	if err != nil {
		return nil, nil, err
	}
	if rec == nil || !rec.Open() {
		return nil, nil, ErrNoOpenDay
	}

	end := now
	if manualHM != "" {
		var bound *time.Time
		if !t.settings.AllowFutureCheckout {
			bound = &now
		}
		cand, err := tz.ResolveLocalTime(rec.Date, manualHM, bound)
		if err == nil && cand.Before(rec.CheckIn) {
			var nextDay string
			nextDay, err = tz.AddDays(rec.Date, 1)
			if err == nil {
				cand, err = tz.ResolveLocalTime(nextDay, manualHM, bound)
			}
		}
		if errors.Is(err, tz.ErrFutureTime) {
			return nil, nil, ErrFutureCheckout
		}
		if err != nil {
			return nil, nil, err
		}
		end = cand
	}

	if end.Before(rec.CheckIn) {
		return nil, nil, ErrCheckoutBeforeCheckin
	}
	if !t.settings.AllowFutureCheckout && end.After(now) {
		return nil, nil, ErrFutureCheckout
	}

	updated := rec.Clone()
	updated.CheckOut = &end
	updated.UpdatedAt = now
	if err := t.store.PutRecord(updated); err != nil {
		return nil, nil, err
	}
	t.settings.OpenRecordDate = ""
	if err := t.putSettings(); err != nil {
		return nil, nil, err
	}
	t.log.Debug().Str("date", updated.Date).Time("at", end).Msg("checked out")

	undo := &Undo{
		Label: fmt.Sprintf("reopen %s", updated.Date),
		apply: func() error {
			back := updated.Clone()
			back.CheckOut = nil
			back.UpdatedAt = t.now()
			if err := t.store.PutRecord(back); err != nil {
				return err
			}
			t.settings.OpenRecordDate = back.Date
			return t.putSettings()
		},
	}
	return updated.Clone(), undo, nil
}

// Edit rewrites the check-in (and optionally check-out) of an existing
// record. outHM uses the same overnight inference as CheckOut but without
// the future-time restriction. The open-record pointer is reconciled in
// both directions.
func (t *Tracker) Edit(dayKey, inHM, outHM string) (*workday.Record, error) {
	rec, err := t.store.GetRecord(dayKey)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("no record for %s", dayKey)
	}

	in, err := tz.ResolveLocalTime(dayKey, inHM, nil)
	if err != nil {
		return nil, err
	}

	var out *time.Time
	if outHM != "" {
		cand, err := tz.ResolveLocalTime(dayKey, outHM, nil)
		if err != nil {
			return nil, err
		}
		if cand.Before(in) {
			nextDay, err := tz.AddDays(dayKey, 1)
			if err != nil {
				return nil, err
			}
			cand, err = tz.ResolveLocalTime(nextDay, outHM, nil)
			if err != nil {
				return nil, err
			}
		}
		if cand.Before(in) {
			return nil, ErrCheckoutBeforeCheckin
		}
		out = &cand
	}

	updated := rec.Clone()
	updated.CheckIn = in
	updated.CheckOut = out
	updated.UpdatedAt = t.now()
	if err := t.store.PutRecord(updated); err != nil {
		return nil, err
	}

	if updated.Open() {
		t.settings.OpenRecordDate = updated.Date
	} else if t.settings.OpenRecordDate == updated.Date {
		t.settings.OpenRecordDate = ""
	}
	if err := t.putSettings(); err != nil {
		return nil, err
	}
	t.log.Debug().Str("date", dayKey).Msg("record edited")
	return updated.Clone(), nil
}

// Delete removes a record; a pointer referencing it is cleared.
func (t *Tracker) Delete(dayKey string) error {
	rec, err := t.store.GetRecord(dayKey)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no record for %s", dayKey)
	}
	if err := t.store.DeleteRecord(dayKey); err != nil {
		return err
	}
	if t.settings.OpenRecordDate == dayKey {
		t.settings.OpenRecordDate = ""
		if err := t.putSettings(); err != nil {
			return err
		}
	}
	t.log.Debug().Str("date", dayKey).Msg("record deleted")
	return nil
}

// RecomputeOpenPointer rescans all records and points the settings at the
// most recent open one, if any. Used after a bulk import, where the stored
// pointer is meaningless. When several records are open the most recent day
// wins.
func (t *Tracker) RecomputeOpenPointer() error {
	records, err := t.store.ListRecords()
	if err != nil {
		return err
	}
	t.settings.OpenRecordDate = ""
	for _, r := range records {
		if r.Open() {
			t.settings.OpenRecordDate = r.Date
			break
		}
	}
	return t.putSettings()
}

// SetRules validates and saves a new rule set. The input order must already
// be strictly increasing; normalization happens after validation.
func (t *Tracker) SetRules(rs []rules.Rule) error {
	if err := rules.ValidateOrder(rs); err != nil {
		return err
	}
	t.settings.Rules = rules.Normalize(rs)
	return t.putSettings()
}

// ResetRules restores the default rule set.
func (t *Tracker) ResetRules() error {
	t.settings.Rules = rules.Normalize(rules.Default)
	return t.putSettings()
}

// SetAllowFutureCheckout toggles the admin escape hatch for future manual
// checkouts.
func (t *Tracker) SetAllowFutureCheckout(allow bool) error {
	t.settings.AllowFutureCheckout = allow
	return t.putSettings()
}

// ReplaceSettings swaps in a new settings aggregate (used by import) and
// persists it.
func (t *Tracker) ReplaceSettings(s *workday.Settings) error {
	s.Backfill()
	t.settings = s
	return t.putSettings()
}

func (t *Tracker) putSettings() error {
	if err := t.store.PutSettings(t.settings); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
