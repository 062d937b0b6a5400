package source

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS items (
	id    INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	body  TEXT NOT NULL DEFAULT '',
	lines INTEGER NOT NULL DEFAULT 1
)`

// maxCachedPages bounds the page cache of a SQLite source.
const maxCachedPages = 64

// SQLite reads rows from an items table, one page of pageSize rows at a time.
type SQLite struct {
	db       *sql.DB
	count    int
	pageSize int
	pages    *PageCache[[]Row]

	mu     sync.Mutex
	closed bool
}

var _ Source = (*SQLite)(nil)

// OpenSQLite opens the database at path read-only and counts its items.
func OpenSQLite(ctx context.Context, path string, pageSize int) (*SQLite, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(4)

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("count items in %s: %w", path, err)
	}

	return &SQLite{
		db:       db,
		count:    count,
		pageSize: max(1, pageSize),
		pages:    NewPageCache[[]Row](maxCachedPages),
	}, nil
}

func (s *SQLite) Len() int { return s.count }

func (s *SQLite) Rows(ctx context.Context, start, stop int) ([]Row, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	start, stop, ok := clampRange(start, stop, s.count)
	if !ok {
		return nil, nil
	}

	rows := make([]Row, 0, stop-start+1)
	for p := start / s.pageSize; p <= stop/s.pageSize; p++ {
		page, err := s.page(ctx, p)
		if err != nil {
			return nil, err
		}
		base := p * s.pageSize
		lo := max(start, base) - base
		hi := min(stop, base+len(page)-1) - base
		if lo <= hi {
			rows = append(rows, page[lo:hi+1]...)
		}
	}
	return rows, nil
}

func (s *SQLite) page(ctx context.Context, p int) ([]Row, error) {
	if rows, ok := s.pages.Get(p); ok {
		return rows, nil
	}

	q, err := s.db.QueryContext(ctx,
		"SELECT id, title, body, lines FROM items ORDER BY id LIMIT ? OFFSET ?",
		s.pageSize, p*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("query page %d: %w", p, err)
	}
	defer q.Close()

	rows := make([]Row, 0, s.pageSize)
	for q.Next() {
		var r Row
		if err := q.Scan(&r.ID, &r.Title, &r.Body, &r.Lines); err != nil {
			return nil, fmt.Errorf("scan page %d: %w", p, err)
		}
		rows = append(rows, r)
	}
	if err := q.Err(); err != nil {
		return nil, fmt.Errorf("read page %d: %w", p, err)
	}

	s.pages.Set(p, rows)
	return rows, nil
}

// CachedPages returns the number of pages held in memory.
func (s *SQLite) CachedPages() int {
	return s.pages.Len()
}

func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.pages.Purge()
	return s.db.Close()
}

// Seed creates path if needed and replaces its items with n synthetic rows.
func Seed(ctx context.Context, path string, n int, seed int64) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO items (id, title, body, lines) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range n {
		r := SyntheticRow(i, seed)
		if _, err := stmt.ExecContext(ctx, r.ID, r.Title, r.Body, r.Lines); err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}
	return tx.Commit()
}
