package exchange

import (
	"encoding/json"
	"time"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/workday"
)

// WireRecord is a work-day record in the export schema: instants as epoch
// milliseconds, a nil checkOutMs for open days.
type WireRecord struct {
	Version     int    `json:"version"`
	Date        string `json:"date"`
	CheckInMs   int64  `json:"checkInMs"`
	CheckOutMs  *int64 `json:"checkOutMs"`
	CreatedAtMs int64  `json:"createdAtMs"`
	UpdatedAtMs int64  `json:"updatedAtMs"`
}

// WireSettings is the settings aggregate in the export schema.
type WireSettings struct {
	SchemaVersion       int          `json:"schemaVersion"`
	Timezone            string       `json:"timezone"`
	Rules               []rules.Rule `json:"rules"`
	OpenRecordDate      *string      `json:"openRecordDate"`
	AllowFutureCheckout bool         `json:"allowFutureCheckout"`
}

// Export is the top-level JSON export document.
type Export struct {
	SchemaVersion int          `json:"schemaVersion"`
	ExportedAt    string       `json:"exportedAt"`
	Settings      WireSettings `json:"settings"`
	Records       []WireRecord `json:"records"`
}

func toWireRecord(r *workday.Record) WireRecord {
	w := WireRecord{
		Version:     1,
		Date:        r.Date,
		CheckInMs:   r.CheckIn.UnixMilli(),
		CreatedAtMs: r.CreatedAt.UnixMilli(),
		UpdatedAtMs: r.UpdatedAt.UnixMilli(),
	}
	if r.CheckOut != nil {
		ms := r.CheckOut.UnixMilli()
		w.CheckOutMs = &ms
	}
	return w
}

func toWireSettings(s *workday.Settings) WireSettings {
	w := WireSettings{
		SchemaVersion:       s.SchemaVersion,
		Timezone:            s.Timezone,
		Rules:               s.Rules,
		AllowFutureCheckout: s.AllowFutureCheckout,
	}
	if s.OpenRecordDate != "" {
		date := s.OpenRecordDate
		w.OpenRecordDate = &date
	}
	return w
}

// BuildExport assembles the export document from records and settings.
func BuildExport(records []*workday.Record, s *workday.Settings, now time.Time) Export {
	wireRecords := make([]WireRecord, 0, len(records))
	for _, r := range records {
		wireRecords = append(wireRecords, toWireRecord(r))
	}
	return Export{
		SchemaVersion: s.SchemaVersion,
		ExportedAt:    now.UTC().Format(time.RFC3339),
		Settings:      toWireSettings(s),
		Records:       wireRecords,
	}
}

// EncodeJSON renders the export document with two-space indentation.
func EncodeJSON(e Export) ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
