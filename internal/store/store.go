// Package store holds the session's watched list in an in-memory SQLite
// database. Nothing is written to disk; the list dies with the process.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/abelbrown/popcorn/internal/model"
)

// ErrMissingID is returned by Add for an entry without an identifier.
var ErrMissingID = errors.New("store: watched entry has no id")

// Store is the watched list. NOT an interface - concrete type.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates an empty in-memory watched list.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to ":memory:" gets its own database, so the pool must
	// hold exactly one and never recycle it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

// createTables creates the watched table. seq preserves insertion order;
// id is deliberately not unique.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS watched (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		title TEXT NOT NULL,
		poster_url TEXT NOT NULL DEFAULT '',
		external_rating REAL NOT NULL DEFAULT 0,
		user_rating INTEGER NOT NULL DEFAULT 0,
		runtime_minutes INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_watched_id ON watched(id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close releases the database, discarding the list.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Add appends e to the end of the list. Duplicate IDs are allowed.
func (s *Store) Add(e model.WatchedEntry) error {
	if e.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO watched (id, title, poster_url, external_rating, user_rating, runtime_minutes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Title, e.PosterURL, e.ExternalRating, e.UserRating, e.RuntimeMinutes)
	if err != nil {
		return fmt.Errorf("insert watched %s: %w", e.ID, err)
	}
	return nil
}

// Remove deletes every entry with the given id and returns how many went.
// The remaining entries keep their order.
func (s *Store) Remove(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM watched WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete watched %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// Entries returns the whole list in insertion order.
func (s *Store) Entries() ([]model.WatchedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, poster_url, external_rating, user_rating, runtime_minutes
		FROM watched
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("query watched: %w", err)
	}
	defer rows.Close()

	var entries []model.WatchedEntry
	for rows.Next() {
		var e model.WatchedEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.PosterURL, &e.ExternalRating, &e.UserRating, &e.RuntimeMinutes); err != nil {
			return nil, fmt.Errorf("scan watched: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Contains reports whether any entry has the given id.
func (s *Store) Contains(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM watched WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query watched %s: %w", id, err)
	}
	return exists, nil
}

// Len returns the number of entries.
func (s *Store) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM watched`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count watched: %w", err)
	}
	return n, nil
}

// Summary returns the list's means. AVG over no rows is NULL, which COALESCE
// turns into 0, so an empty list never yields NaN.
func (s *Store) Summary() (model.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum model.Summary
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(AVG(external_rating), 0.0),
			COALESCE(AVG(user_rating), 0.0),
			COALESCE(AVG(runtime_minutes), 0.0)
		FROM watched
	`).Scan(&sum.Count, &sum.AvgExternalRating, &sum.AvgUserRating, &sum.AvgRuntimeMinutes)
	if err != nil {
		return model.Summary{}, fmt.Errorf("summarize watched: %w", err)
	}
	return sum, nil
}
