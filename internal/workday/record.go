// Package workday defines the persistent data model: one record per calendar
// day plus the singleton settings aggregate.
package workday

import "time"

// Record is one work day, keyed by its day key in the fixed timezone.
// A nil CheckOut means the day is still open.
type Record struct {
	Date      string
	CheckIn   time.Time
	CheckOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the day has a check-in but no check-out yet.
func (r *Record) Open() bool {
	return r.CheckOut == nil
}

// Clone returns a deep copy, so callers can hand records across API
// boundaries without aliasing the stored value.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.CheckOut != nil {
		out := *r.CheckOut
		c.CheckOut = &out
	}
	return &c
}
