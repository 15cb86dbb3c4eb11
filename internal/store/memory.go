package store

import (
	"sort"
	"sync"

	"github.com/mkarsai/worktime/internal/workday"
)

// Memory is an in-process Store. Used by tests and by commands that only
// need a scratch dataset.
type Memory struct {
	mu       sync.Mutex
	records  map[string]*workday.Record
	settings *workday.Settings
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*workday.Record)}
}

func (m *Memory) GetRecord(date string) (*workday.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[date].Clone(), nil
}

func (m *Memory) PutRecord(r *workday.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.Date] = r.Clone()
	return nil
}

func (m *Memory) DeleteRecord(date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, date)
	return nil
}

func (m *Memory) ListRecords() ([]*workday.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*workday.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *Memory) GetSettings() (*workday.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Clone(), nil
}

func (m *Memory) PutSettings(s *workday.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s.Clone()
	return nil
}

func (m *Memory) Close() error { return nil }
