// Package stylecache memoizes per-index item styles for a list.
//
// Entries are keyed by a fingerprint of the inputs that move or resize items.
// When the fingerprint changes every entry is dropped; InvalidateFrom drops
// only the entries at or after an index, for size changes that leave earlier
// items in place.
package stylecache

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/wilbur182/vlist/internal/window"
)

// Inputs are the list inputs that affect item styles.
type Inputs struct {
	Layout    window.Layout
	Direction window.Direction

	// ItemSize is the fixed item size for lists that reset on size change,
	// or zero.
	ItemSize int

	// Epoch is bumped by the owner to force a full reset.
	Epoch uint64
}

// Cache holds computed styles by item index. Not safe for concurrent use;
// each list owns one.
type Cache struct {
	key    uint64
	styles map[int]Style
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{styles: make(map[int]Style)}
}

// Sync drops every entry if in differs from the inputs of the previous call.
// It reports whether the cache was reset.
func (c *Cache) Sync(in Inputs) bool {
	key := fingerprint(in)
	if key == c.key {
		return false
	}
	c.key = key
	c.Reset()
	return true
}

// Get returns the cached style for index, computing it on a miss.
func (c *Cache) Get(index int, compute func(index int) Style) Style {
	if s, ok := c.styles[index]; ok {
		return s
	}
	s := compute(index)
	c.styles[index] = s
	return s
}

// Has reports whether index has a cached style.
func (c *Cache) Has(index int) bool {
	_, ok := c.styles[index]
	return ok
}

// InvalidateFrom drops the styles at or after index.
func (c *Cache) InvalidateFrom(index int) {
	for i := range c.styles {
		if i >= index {
			delete(c.styles, i)
		}
	}
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.styles = make(map[int]Style)
}

// Len returns the number of cached styles.
func (c *Cache) Len() int {
	return len(c.styles)
}

// fingerprint hashes the inputs with a leading marker so the zero Inputs
// never collides with the zero key of a fresh cache.
func fingerprint(in Inputs) uint64 {
	var buf [8]byte
	h := xxhash.New()
	h.WriteString("style")
	for _, v := range []uint64{uint64(in.Layout), uint64(in.Direction), uint64(in.ItemSize), in.Epoch} {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	return h.Sum64()
}
