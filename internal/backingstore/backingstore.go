// Package backingstore persists the link cache in SQLite so it survives
// process restarts, per spec.md §4.1's optional "out-of-process sharing."
package backingstore

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a sql.DB connection holding the link_cache table and
// satisfies linkcache.BackingStore.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates (if needed) and migrates the SQLite database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating backing store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening backing store: %w", err)
	}

	// modernc.org/sqlite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging backing store: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	content, err := migrationsFS.ReadFile("migrations/001_link_cache.sql")
	if err != nil {
		return fmt.Errorf("reading migration: %w", err)
	}

	var applied int
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = 1`).Scan(&applied)
	if applied > 0 {
		return nil
	}

	slog.Info("applying backing store migration", "version", 1)
	if _, err := s.db.Exec(string(content)); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

// Get returns the cached link list for key, if present.
func (s *Store) Get(key string) ([]string, bool, error) {
	var linksJSON string
	err := s.db.QueryRow(`SELECT links FROM link_cache WHERE page_url = ?`, key).Scan(&linksJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying link cache: %w", err)
	}

	var links []string
	if err := json.Unmarshal([]byte(linksJSON), &links); err != nil {
		return nil, false, fmt.Errorf("decoding cached links: %w", err)
	}
	return links, true, nil
}

// Put inserts or overwrites key's entry.
func (s *Store) Put(key string, links []string) error {
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("encoding links: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO link_cache (page_url, links, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(page_url) DO UPDATE SET links = excluded.links, fetched_at = excluded.fetched_at`,
		key, string(linksJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing link cache entry: %w", err)
	}
	return nil
}

// Stats reports the backing store's entry count and file size, for the
// cache-stats CLI command.
type Stats struct {
	Entries   int64
	SizeBytes int64
}

func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM link_cache`).Scan(&stats.Entries); err != nil {
		return nil, fmt.Errorf("counting link cache entries: %w", err)
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return nil, fmt.Errorf("getting page count: %w", err)
	}
	if err := s.db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return nil, fmt.Errorf("getting page size: %w", err)
	}
	stats.SizeBytes = pageCount * pageSize

	return stats, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
