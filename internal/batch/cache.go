package batch

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/BLamy/does-it-throw/internal/analyzer"
)

// Cache is an on-disk cache of per-file analyzer.ParseResult values,
// keyed by (path, content hash), so a project run across CLI
// invocations does not re-analyze files whose content hasn't changed
// (SPEC_FULL.md §10: "caches a project's per-file ParseResult ... a
// caller-side concern explicitly allowed by spec.md §4.6"). Entries are
// gob-encoded rather than JSON: diagnostics.Diagnostic.Kind is tagged
// `json:"-"` for the public wire format, but the cache needs it back.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) a sqlite-backed cache at path.
// An empty path opens an in-memory cache, useful for tests.
func OpenCache(path string) (*Cache, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("batch: opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS parse_results (
			path TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			result_json BLOB NOT NULL,
			PRIMARY KEY (path, content_hash)
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("batch: initializing cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached ParseResult for (path, contentHash), if any.
func (c *Cache) Get(path, contentHash string) (*analyzer.ParseResult, bool) {
	if c == nil {
		return nil, false
	}
	var blob []byte
	err := c.db.QueryRow(
		`SELECT result_json FROM parse_results WHERE path = ? AND content_hash = ?`,
		path, contentHash,
	).Scan(&blob)
	if err != nil {
		return nil, false
	}
	var result analyzer.ParseResult
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&result); err != nil {
		return nil, false
	}
	return &result, true
}

// Put stores result under (path, contentHash), replacing any prior
// entry for that path regardless of hash (a changed file supersedes
// its stale cache row rather than growing it unboundedly).
func (c *Cache) Put(path, contentHash string, result *analyzer.ParseResult) error {
	if c == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(result); err != nil {
		return fmt.Errorf("batch: marshaling cache entry for %s: %w", path, err)
	}
	blob := buf.Bytes()
	if _, err := c.db.Exec(`DELETE FROM parse_results WHERE path = ?`, path); err != nil {
		return fmt.Errorf("batch: evicting stale cache entry for %s: %w", path, err)
	}
	if _, err := c.db.Exec(
		`INSERT INTO parse_results (path, content_hash, result_json) VALUES (?, ?, ?)`,
		path, contentHash, blob,
	); err != nil {
		return fmt.Errorf("batch: writing cache entry for %s: %w", path, err)
	}
	return nil
}
