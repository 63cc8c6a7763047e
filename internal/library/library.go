// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library keeps a local SQLite catalog of saved scripts so earlier
// generations can be listed and searched by topic or text.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scriptgen/pkg/types"
)

const (
	dbFile            = "library.db"
	defaultMaxResults = 20

	// timeLayout is fixed-width so generated_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Entry is one saved script.
type Entry struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	Variation   int       `json:"variation,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Path        string    `json:"path"`
	TextPath    string    `json:"text_path"`
	FullScript  string    `json:"full_script"`
}

// ListOptions filters List results.
type ListOptions struct {
	// Query matches a case-insensitive substring of the topic or script.
	Query string

	// Limit caps the result count; zero uses the store default.
	Limit int
}

// Store manages the library database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates dir/library.db and its schema.
func Open(cfg types.LibraryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS scripts (
			id TEXT PRIMARY KEY,
			topic TEXT NOT NULL,
			variation INTEGER NOT NULL DEFAULT 0,
			generated_at TEXT NOT NULL,
			path TEXT NOT NULL,
			text_path TEXT NOT NULL,
			full_script TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scripts_generated_at ON scripts(generated_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Add records a saved script and returns the new entry.
func (s *Store) Add(ctx context.Context, rec types.ScriptRecord, path, textPath string) (Entry, error) {
	e := Entry{
		ID:          uuid.NewString(),
		Topic:       rec.Topic,
		Variation:   rec.Variation,
		GeneratedAt: rec.GeneratedAt.UTC(),
		Path:        path,
		TextPath:    textPath,
		FullScript:  rec.FullScript,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scripts (id, topic, variation, generated_at, path, text_path, full_script)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Topic, e.Variation, e.GeneratedAt.Format(timeLayout),
		e.Path, e.TextPath, e.FullScript,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting script %s: %w", e.ID, err)
	}
	return e, nil
}

// List returns entries newest first, optionally filtered by opts.Query.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT id, topic, variation, generated_at, path, text_path, full_script FROM scripts`
	var args []any
	if q := strings.TrimSpace(opts.Query); q != "" {
		query += ` WHERE topic LIKE ? ESCAPE '\' OR full_script LIKE ? ESCAPE '\'`
		pattern := "%" + escapeLike(q) + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY generated_at DESC, variation ASC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying scripts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var generatedAt string
		if err := rows.Scan(&e.ID, &e.Topic, &e.Variation, &generatedAt, &e.Path, &e.TextPath, &e.FullScript); err != nil {
			return nil, fmt.Errorf("scanning script: %w", err)
		}
		e.GeneratedAt, err = time.Parse(timeLayout, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing generated_at for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// escapeLike escapes LIKE wildcards so the query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
