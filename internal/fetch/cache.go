package fetch

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed store of fetched pages, keyed by URL. It keeps
// repeated harvest runs during debugging from hammering the repository.
type Cache struct {
	db *sql.DB
}

// OpenCache opens or creates a page cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening page cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			url TEXT PRIMARY KEY,
			body BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating page cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached body for a URL, if present.
func (c *Cache) Get(url string) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRow("SELECT body FROM pages WHERE url = ?", url).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading page cache: %w", err)
	}
	return body, true, nil
}

// Put stores a fetched body for a URL, replacing any previous entry.
func (c *Cache) Put(url string, body []byte) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO pages (url, body, fetched_at) VALUES (?, ?, ?)",
		url, body, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing page cache: %w", err)
	}
	return nil
}
