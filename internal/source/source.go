// Package source provides the items shown by the terminal list. Only the
// rows inside a render range are ever requested.
package source

import (
	"context"
	"errors"
)

// ErrClosed is returned by a source used after Close.
var ErrClosed = errors.New("source closed")

// Row is one list item.
type Row struct {
	ID    int64
	Title string
	Body  string
	// Lines is the height of the item in terminal rows.
	Lines int
}

// Source is an indexed collection of rows.
type Source interface {
	// Len is the number of rows.
	Len() int
	// Rows returns the rows with index in [start, stop], clamped to Len.
	Rows(ctx context.Context, start, stop int) ([]Row, error)
	Close() error
}

// SizeFunc adapts src to a list size function in terminal rows. Rows that
// fail to load fall back to fallback.
func SizeFunc(ctx context.Context, src Source, fallback int) func(int) int {
	return func(i int) int {
		rows, err := src.Rows(ctx, i, i)
		if err != nil || len(rows) == 0 {
			return fallback
		}
		return max(1, rows[0].Lines)
	}
}

func clampRange(start, stop, n int) (int, int, bool) {
	start = max(0, start)
	stop = min(stop, n-1)
	return start, stop, start <= stop
}
