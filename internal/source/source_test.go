package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthetic_RowsClampAndAreDeterministic(t *testing.T) {
	s := NewSynthetic(10, 7)
	ctx := context.Background()

	rows, err := s.Rows(ctx, 8, 20)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Item 8", rows[0].Title)
	assert.Equal(t, int64(10), rows[1].ID)

	again, err := s.Rows(ctx, 8, 9)
	require.NoError(t, err)
	assert.Equal(t, rows, again)

	none, err := s.Rows(ctx, 5, 4)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSyntheticRow_LinesMatchBody(t *testing.T) {
	for i := 0; i < 200; i++ {
		r := SyntheticRow(i, 3)
		require.GreaterOrEqual(t, r.Lines, 1)
		require.LessOrEqual(t, r.Lines, 4)
		assert.Len(t, splitLines(r.Body), r.Lines, "row %d", i)
	}
}

func TestSynthetic_Closed(t *testing.T) {
	s := NewSynthetic(3, 1)
	require.NoError(t, s.Close())
	_, err := s.Rows(context.Background(), 0, 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSizeFunc(t *testing.T) {
	s := NewSynthetic(5, 1)
	size := SizeFunc(context.Background(), s, 9)

	assert.Equal(t, SyntheticRow(2, 1).Lines, size(2))
	assert.Equal(t, 9, size(50), "missing rows use the fallback")
}

func TestPageCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewPageCache[string](2)
	c.Set(0, "a")
	c.Set(1, "b")
	_, _ = c.Get(0)
	c.Set(2, "c")

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok, "page 1 was least recently used")
	v, ok := c.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestSQLite_SeedAndPagedRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.db")
	require.NoError(t, Seed(ctx, path, 25, 5))

	s, err := OpenSQLite(ctx, path, 10)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 25, s.Len())

	rows, err := s.Rows(ctx, 8, 12)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for k, r := range rows {
		want := SyntheticRow(8+k, 5)
		assert.Equal(t, want, r)
	}
	assert.Equal(t, 2, s.CachedPages(), "rows 8-12 span pages 0 and 1")

	tail, err := s.Rows(ctx, 20, 100)
	require.NoError(t, err)
	assert.Len(t, tail, 5)
	assert.Equal(t, 3, s.CachedPages())
}

func TestSQLite_Reseed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.db")
	require.NoError(t, Seed(ctx, path, 40, 1))
	require.NoError(t, Seed(ctx, path, 3, 1))

	s, err := OpenSQLite(ctx, path, 10)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 3, s.Len())
}

func TestSQLite_Closed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "items.db")
	require.NoError(t, Seed(ctx, path, 2, 1))

	s, err := OpenSQLite(ctx, path, 10)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Rows(ctx, 0, 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenSQLite_MissingTable(t *testing.T) {
	ctx := context.Background()
	_, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "absent.db"), 10)
	assert.Error(t, err)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
