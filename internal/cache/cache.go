package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a sqlite-backed TTL cache for serialized endpoint responses.
// Caching lives outside the scraping core on purpose: the core stays
// stateless and the HTTP layer decides what is worth keeping and for how
// long. Expired rows are ignored on read and swept by the janitor.
type Store struct {
	db *sql.DB
}

func Open(sqlitePath string) (*Store, error) {
	dir := filepath.Dir(sqlitePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	db, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set sqlite WAL: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Store{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS response_cache (
		cache_key  TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		expires_at DATETIME NOT NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("create response_cache table: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping() error { return s.db.Ping() }

// Get returns the cached payload for key, or ok=false on a miss or an
// expired row.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM response_cache WHERE cache_key = ? AND expires_at > CURRENT_TIMESTAMP`,
		key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache key %s: %w", key, err)
	}
	return payload, true, nil
}

// Set stores payload under key for ttl. An existing row is replaced.
func (s *Store) Set(key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}
	expiresAt := time.Now().UTC().Add(ttl)
	_, err := s.db.Exec(
		`INSERT INTO response_cache (cache_key, payload, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		key, payload, expiresAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("write cache key %s: %w", key, err)
	}
	return nil
}

// PurgeExpired deletes every expired row and reports how many went.
func (s *Store) PurgeExpired() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM response_cache WHERE expires_at <= CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, fmt.Errorf("purge expired cache rows: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}
