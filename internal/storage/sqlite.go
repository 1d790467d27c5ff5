// Package storage provides the SQLite-backed author details cache.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/conetlab/conet/internal/graph"
	_ "modernc.org/sqlite"
)

// DefaultTTL is how long a cached author entry stays fresh. Author metadata
// moves slowly; a week keeps repeated graph expansions cheap without
// serving stale affiliations for long.
const DefaultTTL = 7 * 24 * time.Hour

// DB wraps a SQLite database holding cached author details.
type DB struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenDB opens or creates the cache database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db, ttl: DefaultTTL, now: time.Now}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// SetTTL overrides the freshness window. Zero or negative disables expiry.
func (d *DB) SetTTL(ttl time.Duration) {
	d.ttl = ttl
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS authors (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			institution TEXT,
			works_count INTEGER,
			url TEXT,
			fetched_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached details for an author ID. The second return value
// is false when the entry is missing or expired.
func (d *DB) Get(ctx context.Context, id string) (graph.AuthorDetails, bool, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, label, institution, works_count, url, fetched_at
		FROM authors WHERE id = ?`, id)

	var details graph.AuthorDetails
	var institution, url sql.NullString
	var worksCount sql.NullInt64
	var fetchedAt int64

	err := row.Scan(&details.ID, &details.Label, &institution, &worksCount, &url, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return graph.AuthorDetails{}, false, nil
	}
	if err != nil {
		return graph.AuthorDetails{}, false, fmt.Errorf("reading author %s: %w", id, err)
	}

	if d.ttl > 0 && d.now().Sub(time.Unix(fetchedAt, 0)) > d.ttl {
		return graph.AuthorDetails{}, false, nil
	}

	details.Institution = institution.String
	details.WorksCount = int(worksCount.Int64)
	details.URL = url.String
	return details, true, nil
}

// Put stores or refreshes an author entry.
func (d *DB) Put(ctx context.Context, details graph.AuthorDetails) error {
	if details.ID == "" {
		return fmt.Errorf("author id is required")
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO authors (id, label, institution, works_count, url, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			institution = excluded.institution,
			works_count = excluded.works_count,
			url = excluded.url,
			fetched_at = excluded.fetched_at`,
		details.ID, details.Label, details.Institution, details.WorksCount, details.URL,
		d.now().Unix())
	if err != nil {
		return fmt.Errorf("storing author %s: %w", details.ID, err)
	}
	return nil
}

// Purge removes entries older than the TTL. Returns the number removed.
func (d *DB) Purge(ctx context.Context) (int, error) {
	if d.ttl <= 0 {
		return 0, nil
	}
	cutoff := d.now().Add(-d.ttl).Unix()
	res, err := d.db.ExecContext(ctx, `DELETE FROM authors WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Count returns the number of cached authors.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting authors: %w", err)
	}
	return n, nil
}
