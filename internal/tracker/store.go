// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tracker persists the record store, the single source of
// truth for which financial statements have been acquired. Every cycle
// re-derives its view of the world from here; snapshots and in-memory
// state are disposable.
package tracker

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/pdiddy/unifin/pkg/types"
)

// Store manages the tracker SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the tracker database at path, creating the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "creating database directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, eris.Wrap(err, "opening database")
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "creating schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			university TEXT NOT NULL,
			year INTEGER NOT NULL,
			source_url TEXT NOT NULL DEFAULT '',
			pdf_path TEXT NOT NULL DEFAULT '',
			txt_path TEXT NOT NULL DEFAULT '',
			acquired_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_university ON records(university)`,
		`CREATE INDEX IF NOT EXISTS idx_records_university_year ON records(university, year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return eris.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// Upsert writes a record, keeping at most one row per known
// (university, year) pair: an existing row for the pair is updated,
// last writer wins. Unknown-year records are matched by PDF path
// instead, so re-recording the same document stays idempotent without
// collapsing distinct unknown-year documents into one row.
func (s *Store) Upsert(ctx context.Context, rec types.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	var query string
	var args []any
	if rec.Year == types.YearUnknown {
		query = `SELECT id FROM records WHERE university = ? AND year = ? AND pdf_path = ?`
		args = []any{rec.University, rec.Year, rec.PDFPath}
	} else {
		query = `SELECT id FROM records WHERE university = ? AND year = ?`
		args = []any{rec.University, rec.Year}
	}

	var id string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (id, university, year, source_url, pdf_path, txt_path, acquired_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), rec.University, rec.Year,
			rec.SourceURL, rec.PDFPath, rec.TextPath, formatTime(rec.AcquiredAt))
		if err != nil {
			return eris.Wrap(err, "inserting record")
		}
	case err != nil:
		return eris.Wrap(err, "querying record")
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE records SET source_url = ?, pdf_path = ?, txt_path = ?, acquired_at = ?
			 WHERE id = ?`,
			rec.SourceURL, rec.PDFPath, rec.TextPath, formatTime(rec.AcquiredAt), id)
		if err != nil {
			return eris.Wrap(err, "updating record")
		}
	}

	return tx.Commit()
}

// AddPlaceholder records that a (university, year) gap has been
// targeted but not yet filled. A no-op when any row for the pair
// already exists; a placeholder must never clobber an acquired
// document.
func (s *Store) AddPlaceholder(ctx context.Context, university string, year int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM records WHERE university = ? AND year = ?`,
		university, year).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (id, university, year) VALUES (?, ?, ?)`,
			uuid.NewString(), university, year)
		if err != nil {
			return eris.Wrap(err, "inserting placeholder")
		}
	case err != nil:
		return eris.Wrap(err, "querying record")
	default:
		// Row already present, acquired or placeholder alike.
		return nil
	}

	return tx.Commit()
}

// All returns every record ordered by university then year.
func (s *Store) All(ctx context.Context) ([]types.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT university, year, source_url, pdf_path, txt_path, acquired_at
		 FROM records ORDER BY university, year`)
	if err != nil {
		return nil, eris.Wrap(err, "querying records")
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		var rec types.Record
		var acquiredAt string
		if err := rows.Scan(&rec.University, &rec.Year, &rec.SourceURL,
			&rec.PDFPath, &rec.TextPath, &acquiredAt); err != nil {
			return nil, eris.Wrap(err, "scanning record")
		}
		rec.AcquiredAt = parseTime(acquiredAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns the record for a known (university, year) pair.
func (s *Store) Get(ctx context.Context, university string, year int) (types.Record, bool, error) {
	var rec types.Record
	var acquiredAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT university, year, source_url, pdf_path, txt_path, acquired_at
		 FROM records WHERE university = ? AND year = ?`,
		university, year).Scan(&rec.University, &rec.Year, &rec.SourceURL,
		&rec.PDFPath, &rec.TextPath, &acquiredAt)
	if err == sql.ErrNoRows {
		return types.Record{}, false, nil
	}
	if err != nil {
		return types.Record{}, false, eris.Wrap(err, "querying record")
	}
	rec.AcquiredAt = parseTime(acquiredAt)
	return rec, true, nil
}

// Count returns the total number of rows in the store.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, eris.Wrap(err, "counting records")
	}
	return n, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
