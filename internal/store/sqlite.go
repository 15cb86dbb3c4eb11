package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mkarsai/worktime/internal/rules"
	"github.com/mkarsai/worktime/internal/workday"
)

const schema = `
CREATE TABLE IF NOT EXISTS workdays (
	date          TEXT PRIMARY KEY,
	check_in_ms   INTEGER NOT NULL,
	check_out_ms  INTEGER,
	created_at_ms INTEGER NOT NULL,
	updated_at_ms INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	id                    INTEGER PRIMARY KEY CHECK (id = 1),
	schema_version        INTEGER NOT NULL,
	timezone              TEXT NOT NULL,
	rules                 TEXT NOT NULL,
	open_record_date      TEXT NOT NULL DEFAULT '',
	allow_future_checkout INTEGER NOT NULL DEFAULT 0
);
`

// SQLite is the durable Store backend.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path. WAL mode
// keeps reads usable while a write is in flight; the busy timeout papers
// over the occasional second process poking at the same file.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) GetRecord(date string) (*workday.Record, error) {
	row := s.db.QueryRow(
		`SELECT date, check_in_ms, check_out_ms, created_at_ms, updated_at_ms
		 FROM workdays WHERE date = ?`, date)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (s *SQLite) PutRecord(r *workday.Record) error {
	var checkOut sql.NullInt64
	if r.CheckOut != nil {
		checkOut = sql.NullInt64{Int64: r.CheckOut.UnixMilli(), Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO workdays (date, check_in_ms, check_out_ms, created_at_ms, updated_at_ms)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			check_in_ms = excluded.check_in_ms,
			check_out_ms = excluded.check_out_ms,
			created_at_ms = excluded.created_at_ms,
			updated_at_ms = excluded.updated_at_ms`,
		r.Date, r.CheckIn.UnixMilli(), checkOut, r.CreatedAt.UnixMilli(), r.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("put record %s: %w", r.Date, err)
	}
	return nil
}

func (s *SQLite) DeleteRecord(date string) error {
	if _, err := s.db.Exec(`DELETE FROM workdays WHERE date = ?`, date); err != nil {
		return fmt.Errorf("delete record %s: %w", date, err)
	}
	return nil
}

func (s *SQLite) ListRecords() ([]*workday.Record, error) {
	rows, err := s.db.Query(
		`SELECT date, check_in_ms, check_out_ms, created_at_ms, updated_at_ms
		 FROM workdays ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []*workday.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLite) GetSettings() (*workday.Settings, error) {
	var (
		set       workday.Settings
		rulesJSON string
		allow     int
	)
	err := s.db.QueryRow(
		`SELECT schema_version, timezone, rules, open_record_date, allow_future_checkout
		 FROM settings WHERE id = 1`).
		Scan(&set.SchemaVersion, &set.Timezone, &rulesJSON, &set.OpenRecordDate, &allow)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if err := json.Unmarshal([]byte(rulesJSON), &set.Rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	set.AllowFutureCheckout = allow != 0
	return &set, nil
}

func (s *SQLite) PutSettings(set *workday.Settings) error {
	if set.Rules == nil {
		set.Rules = []rules.Rule{}
	}
	rulesJSON, err := json.Marshal(set.Rules)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	allow := 0
	if set.AllowFutureCheckout {
		allow = 1
	}
	_, err = s.db.Exec(
		`INSERT INTO settings (id, schema_version, timezone, rules, open_record_date, allow_future_checkout)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			timezone = excluded.timezone,
			rules = excluded.rules,
			open_record_date = excluded.open_record_date,
			allow_future_checkout = excluded.allow_future_checkout`,
		set.SchemaVersion, set.Timezone, string(rulesJSON), set.OpenRecordDate, allow)
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*workday.Record, error) {
	var (
		rec      workday.Record
		checkIn  int64
		checkOut sql.NullInt64
		created  int64
		updated  int64
	)
	if err := row.Scan(&rec.Date, &checkIn, &checkOut, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}
	rec.CheckIn = time.UnixMilli(checkIn).UTC()
	if checkOut.Valid {
		out := time.UnixMilli(checkOut.Int64).UTC()
		rec.CheckOut = &out
	}
	rec.CreatedAt = time.UnixMilli(created).UTC()
	rec.UpdatedAt = time.UnixMilli(updated).UTC()
	return &rec, nil
}
