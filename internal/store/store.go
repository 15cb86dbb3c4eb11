// Package store provides durable key-value storage for work-day records and
// the singleton settings object. Two backends exist: SQLite for the real
// database and an in-memory map for tests and throwaway calculations.
package store

import "github.com/mkarsai/worktime/internal/workday"

// Store is the persistence contract. GetRecord and GetSettings return
// (nil, nil) when nothing is stored under the key; DeleteRecord of an absent
// key is a no-op. ListRecords orders by day key descending.
type Store interface {
	GetRecord(date string) (*workday.Record, error)
	PutRecord(r *workday.Record) error
	DeleteRecord(date string) error
	ListRecords() ([]*workday.Record, error)

	GetSettings() (*workday.Settings, error)
	PutSettings(s *workday.Settings) error

	Close() error
}
