package timetrack

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Store persists closed time entries in SQLite. Live sessions never touch
// the store; only the Manager's closed entries and manual entries land
// here.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the entry database at dbPath and runs
// migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store for testing.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS time_entries (
		id           TEXT PRIMARY KEY,
		issue_number INTEGER NOT NULL,
		repository   TEXT NOT NULL,
		user_id      TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		start_time   TEXT NOT NULL,
		end_time     TEXT NOT NULL,
		duration     INTEGER NOT NULL,
		tags         TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_entries_user  ON time_entries(user_id);
	CREATE INDEX IF NOT EXISTS idx_entries_issue ON time_entries(repository, issue_number);
	CREATE INDEX IF NOT EXISTS idx_entries_start ON time_entries(start_time);
	`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

// Append inserts a closed entry.
func (s *Store) Append(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO time_entries (id, issue_number, repository, user_id, description, start_time, end_time, duration, tags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.IssueNumber, e.Repository, e.UserID, e.Description,
		e.StartTime.UTC().Format(time.RFC3339), e.EndTime.UTC().Format(time.RFC3339),
		e.Duration, strings.Join(e.Tags, ","),
	)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// Get returns one entry by id, or nil when absent.
func (s *Store) Get(id string) (*Entry, error) {
	row := s.db.QueryRow(
		`SELECT id, issue_number, repository, user_id, description, start_time, end_time, duration, tags
		 FROM time_entries WHERE id = ?`, id)
	e, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", id, err)
	}
	return e, nil
}

// EntryFilter narrows List results. Zero-valued fields are ignored.
type EntryFilter struct {
	UserID      string
	Repository  string
	IssueNumber int
	From, To    time.Time
	Limit       int
}

// List returns entries matching the filter, oldest first.
func (s *Store) List(f EntryFilter) ([]Entry, error) {
	query := `SELECT id, issue_number, repository, user_id, description, start_time, end_time, duration, tags
	          FROM time_entries WHERE 1=1`
	var args []any

	if f.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, f.UserID)
	}
	if f.Repository != "" {
		query += ` AND repository = ?`
		args = append(args, f.Repository)
	}
	if f.IssueNumber > 0 {
		query += ` AND issue_number = ?`
		args = append(args, f.IssueNumber)
	}
	if !f.From.IsZero() {
		query += ` AND start_time >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		query += ` AND start_time <= ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY start_time`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// EntryUpdate describes an explicit edit to a stored entry. Nil fields are
// left unchanged. When either time changes and no explicit duration is
// given, the duration is recomputed from the new times.
type EntryUpdate struct {
	StartTime   *time.Time
	EndTime     *time.Time
	Duration    *int
	Description *string
	Tags        []string
}

// Update applies an explicit edit and returns the updated entry, or nil
// when the entry does not exist.
func (s *Store) Update(id string, upd EntryUpdate) (*Entry, error) {
	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}

	timesChanged := false
	if upd.StartTime != nil {
		e.StartTime = *upd.StartTime
		timesChanged = true
	}
	if upd.EndTime != nil {
		e.EndTime = *upd.EndTime
		timesChanged = true
	}
	if upd.Duration != nil {
		e.Duration = *upd.Duration
	} else if timesChanged {
		e.Duration = int(e.EndTime.Sub(e.StartTime).Round(time.Minute) / time.Minute)
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Tags != nil {
		e.Tags = upd.Tags
	}

	_, err = s.db.Exec(
		`UPDATE time_entries SET start_time = ?, end_time = ?, duration = ?, description = ?, tags = ? WHERE id = ?`,
		e.StartTime.UTC().Format(time.RFC3339), e.EndTime.UTC().Format(time.RFC3339),
		e.Duration, e.Description, strings.Join(e.Tags, ","), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update entry %s: %w", id, err)
	}
	return e, nil
}

func scanEntry(scan func(dest ...any) error) (*Entry, error) {
	var e Entry
	var start, end, tags string
	if err := scan(&e.ID, &e.IssueNumber, &e.Repository, &e.UserID, &e.Description, &start, &end, &e.Duration, &tags); err != nil {
		return nil, err
	}
	var err error
	if e.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}
	if e.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
		return nil, fmt.Errorf("parse end_time: %w", err)
	}
	if tags != "" {
		e.Tags = strings.Split(tags, ",")
	}
	return &e, nil
}
