package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/store"
	"github.com/mkarsai/worktime/internal/workday"
)

var (
	// ErrInvalidJSON means the payload is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON payload")

	// ErrMissingRecords means the payload has no records array.
	ErrMissingRecords = errors.New("export is missing the records array")

	// ErrMissingSettings means the payload has no settings object.
	ErrMissingSettings = errors.New("export is missing the settings object")
)

// ImportResult reports what a JSON import did.
type ImportResult struct {
	// Imported counts the records written.
	Imported int
	// Skipped counts records dropped for lacking a check-in instant.
	Skipped int
	// Settings is the merged settings aggregate as persisted, with the
	// open-record pointer recomputed from the imported data.
	Settings *workday.Settings
}

// Import validates and applies a JSON export to the store. Validation runs
// before any write: a rejected payload leaves stored data untouched.
// Records without a usable check-in instant are skipped silently; numeric
// fields are coerced, with created/updated timestamps defaulted to the
// import time. Existing records under the same day key are overwritten.
// Afterwards the open-record pointer is recomputed by scanning for an open
// record (most recent day wins).
func Import(st store.Store, data []byte, now time.Time) (ImportResult, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return ImportResult{}, ErrInvalidJSON
	}

	recordsRaw, ok := top["records"]
	if !ok {
		return ImportResult{}, ErrMissingRecords
	}
	var items []json.RawMessage
	if err := json.Unmarshal(recordsRaw, &items); err != nil || items == nil {
		return ImportResult{}, ErrMissingRecords
	}

	settingsRaw, ok := top["settings"]
	if !ok {
		return ImportResult{}, ErrMissingSettings
	}
	var settingsFields map[string]json.RawMessage
	if err := json.Unmarshal(settingsRaw, &settingsFields); err != nil || settingsFields == nil {
		return ImportResult{}, ErrMissingSettings
	}

	res := ImportResult{}
	for _, item := range items {
		rec, ok := decodeImportRecord(item, now)
		if !ok {
			res.Skipped++
			continue
		}
		if err := st.PutRecord(rec); err != nil {
			return ImportResult{}, fmt.Errorf("write imported record %s: %w", rec.Date, err)
		}
		res.Imported++
	}

	settings := mergeImportedSettings(settingsFields)

	// The imported pointer is meaningless against the merged dataset;
	// recompute it from what is actually stored now.
	all, err := st.ListRecords()
	if err != nil {
		return ImportResult{}, err
	}
	for _, r := range all {
		if r.Open() {
			settings.OpenRecordDate = r.Date
			break
		}
	}
	if err := st.PutSettings(settings); err != nil {
		return ImportResult{}, fmt.Errorf("write imported settings: %w", err)
	}

	res.Settings = settings
	return res, nil
}

func decodeImportRecord(raw json.RawMessage, now time.Time) (*workday.Record, bool) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, false
	}
	date, _ := fields["date"].(string)
	if date == "" {
		return nil, false
	}
	checkIn, ok := coerceMillis(fields["checkInMs"])
	if !ok || checkIn == 0 {
		return nil, false
	}

	rec := &workday.Record{
		Date:      date,
		CheckIn:   time.UnixMilli(checkIn).UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ms, ok := coerceMillis(fields["checkOutMs"]); ok && ms != 0 {
		out := time.UnixMilli(ms).UTC()
		rec.CheckOut = &out
	}
	if ms, ok := coerceMillis(fields["createdAtMs"]); ok && ms != 0 {
		rec.CreatedAt = time.UnixMilli(ms).UTC()
	}
	if ms, ok := coerceMillis(fields["updatedAtMs"]); ok && ms != 0 {
		rec.UpdatedAt = time.UnixMilli(ms).UTC()
	}
	return rec, true
}

func mergeImportedSettings(fields map[string]json.RawMessage) *workday.Settings {
	s := workday.DefaultSettings()
	if raw, ok := fields["schemaVersion"]; ok {
		var v int
		if json.Unmarshal(raw, &v) == nil && v > 0 {
			s.SchemaVersion = v
		}
	}
	if raw, ok := fields["rules"]; ok {
		var rs []rules.Rule
		if json.Unmarshal(raw, &rs) == nil && rs != nil {
			s.Rules = rules.Normalize(rs)
		}
	}
	if raw, ok := fields["allowFutureCheckout"]; ok {
		var v bool
		if json.Unmarshal(raw, &v) == nil {
			s.AllowFutureCheckout = v
		}
	}
	// The timezone is a fixed constant for the dataset; an imported value
	// is ignored rather than trusted.
	return s
}

func coerceMillis(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return int64(f), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}
