// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists the user's saved papers in SQLite and finds
// saved papers by relevance to a query.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-finder/internal/rank"
	"github.com/pdiddy/paper-finder/pkg/types"
)

// ErrNotFound is returned when a saved paper id does not exist.
var ErrNotFound = errors.New("saved paper not found")

// Store manages the saved-paper SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the library database at path and creates the
// schema if it does not exist.
func Open(cfg types.LibraryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = "paper-finder.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS saved_papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			summary TEXT NOT NULL,
			url TEXT NOT NULL,
			source TEXT NOT NULL,
			saved_at TEXT NOT NULL,
			UNIQUE (title, url)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_papers_source ON saved_papers(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores records in canonical form, skipping any already saved with
// the same title and URL. It returns how many were newly added.
func (s *Store) Save(ctx context.Context, records []types.PaperRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO saved_papers (title, authors, summary, url, source, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	added := 0
	for _, r := range records {
		r = r.Canonical()
		res, err := stmt.ExecContext(ctx, r.Title, r.Authors, r.Summary, r.URL, r.Source, savedAt)
		if err != nil {
			return 0, fmt.Errorf("saving %q: %w", r.Title, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("saving %q: %w", r.Title, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return added, nil
}

// List returns every saved paper in the order it was saved.
func (s *Store) List(ctx context.Context) ([]types.SavedPaper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, authors, summary, url, source, saved_at
		 FROM saved_papers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing saved papers: %w", err)
	}
	defer rows.Close()

	papers := []types.SavedPaper{}
	for rows.Next() {
		var p types.SavedPaper
		var savedAt string
		if err := rows.Scan(&p.ID, &p.Title, &p.Authors, &p.Summary, &p.URL, &p.Source, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning saved paper: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, savedAt); err == nil {
			p.SavedAt = t
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// Records returns the saved papers as plain records.
func (s *Store) Records(ctx context.Context) ([]types.PaperRecord, error) {
	saved, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]types.PaperRecord, len(saved))
	for i, p := range saved {
		records[i] = p.PaperRecord
	}
	return records, nil
}

// Remove deletes the saved paper with the given id.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_papers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("removing saved paper %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing saved paper %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("removing saved paper %d: %w", id, ErrNotFound)
	}
	return nil
}

// Clear deletes every saved paper and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_papers`)
	if err != nil {
		return 0, fmt.Errorf("clearing library: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing library: %w", err)
	}
	return int(n), nil
}

// Find ranks the saved papers against query, best first. Saved papers
// with neither title nor summary are left out.
func (s *Store) Find(ctx context.Context, query string) ([]types.SavedPaper, error) {
	saved, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]types.PaperRecord, len(saved))
	for i, p := range saved {
		records[i] = p.PaperRecord
	}

	order := rank.Order(query, records)
	found := make([]types.SavedPaper, len(order))
	for i, idx := range order {
		found[i] = saved[idx]
	}
	return found, nil
}
