package workday

import (
	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/tz"
)

// SchemaVersion is the current settings/export schema version.
const SchemaVersion = 1

// Settings is the process-wide singleton. OpenRecordDate is a weak reference
// to the currently open record: it is a hint, never trusted without checking
// that the referenced record still exists and is open.
type Settings struct {
	SchemaVersion       int
	Timezone            string
	Rules               []rules.Rule
	OpenRecordDate      string // day key, "" when no open record
	AllowFutureCheckout bool
}

// DefaultSettings returns the settings used when the store holds none.
func DefaultSettings() *Settings {
	return &Settings{
		SchemaVersion: SchemaVersion,
		Timezone:      tz.Zone,
		Rules:         rules.Normalize(rules.Default),
	}
}

// Backfill fills zero-valued fields added after the settings were first
// persisted and normalizes the rule set. Called once on load.
func (s *Settings) Backfill() {
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SchemaVersion
	}
	if s.Timezone == "" {
		s.Timezone = tz.Zone
	}
	if s.Rules == nil {
		s.Rules = rules.Default
	}
	s.Rules = rules.Normalize(s.Rules)
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	c := *s
	c.Rules = append([]rules.Rule(nil), s.Rules...)
	return &c
}
