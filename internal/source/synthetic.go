package source

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
)

var words = []string{
	"window", "offset", "viewport", "overscan", "index", "measure",
	"scroll", "cache", "render", "extent", "item", "stop", "start",
}

// Synthetic generates n deterministic rows. A row's height is 1 to 4 lines,
// picked from the seed.
type Synthetic struct {
	n      int
	seed   int64
	closed atomic.Bool
}

var _ Source = (*Synthetic)(nil)

// NewSynthetic creates a synthetic source of n rows.
func NewSynthetic(n int, seed int64) *Synthetic {
	return &Synthetic{n: max(0, n), seed: seed}
}

func (s *Synthetic) Len() int { return s.n }

func (s *Synthetic) Rows(_ context.Context, start, stop int) ([]Row, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	start, stop, ok := clampRange(start, stop, s.n)
	if !ok {
		return nil, nil
	}
	rows := make([]Row, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		rows = append(rows, SyntheticRow(i, s.seed))
	}
	return rows, nil
}

func (s *Synthetic) Close() error {
	s.closed.Store(true)
	return nil
}

// SyntheticRow builds row i for seed.
func SyntheticRow(i int, seed int64) Row {
	h := mix(uint64(i) ^ uint64(seed)*0x9e3779b97f4a7c15)
	lines := 1 + int(h%4)

	body := make([]string, lines)
	for l := range body {
		w1 := words[(h>>(8*l))%uint64(len(words))]
		w2 := words[(h>>(8*l+4))%uint64(len(words))]
		body[l] = fmt.Sprintf("%s %s %d.%d", w1, w2, i, l)
	}
	return Row{
		ID:    int64(i + 1),
		Title: fmt.Sprintf("Item %d", i),
		Body:  strings.Join(body, "\n"),
		Lines: lines,
	}
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
