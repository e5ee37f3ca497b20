package crawler

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/btrdirectory/surveyor/pkg/errors"
	"github.com/btrdirectory/surveyor/pkg/logging"
	"github.com/btrdirectory/surveyor/pkg/verify"
)

// Cache stores successful crawl responses in a local SQLite database,
// keyed by URL. Entries older than the max age are treated as misses.
type Cache struct {
	db     *sql.DB
	maxAge time.Duration
}

// OpenCache opens or creates a crawl cache at path.
func OpenCache(path string, maxAge time.Duration) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.WrapIO("mkdir", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewQueryError("pages", "open cache", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		status_code INTEGER NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, errors.NewQueryError("pages", "create cache table", err)
	}

	return &Cache{db: db, maxAge: maxAge}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached page for a URL if present and fresh.
func (c *Cache) Get(ctx context.Context, url string) (page verify.Page, ok bool) {
	var fetchedAt int64
	row := c.db.QueryRowContext(ctx,
		`SELECT status_code, title, content, fetched_at FROM pages WHERE url = ?`, url)
	if err := row.Scan(&page.StatusCode, &page.Title, &page.Content, &fetchedAt); err != nil {
		return verify.Page{}, false
	}

	if c.maxAge > 0 && time.Since(time.Unix(fetchedAt, 0)) > c.maxAge {
		return verify.Page{}, false
	}

	page.URL = url
	page.Success = true
	return page, true
}

// Put stores a successful page, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, page verify.Page) {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pages (url, status_code, title, content, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		page.URL, page.StatusCode, page.Title, page.Content, time.Now().Unix())
	if err != nil {
		logging.Err(err).Str("url", page.URL).Msg("Cache write failed")
	}
}
