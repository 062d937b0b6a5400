package sizecache

import "sort"

// Metadata is the measured position of one item along the list axis.
type Metadata struct {
	Offset int // sum of the sizes of all earlier items
	Size   int
}

// End returns the offset just past the item.
func (m Metadata) End() int {
	return m.Offset + m.Size
}

// SizeFunc returns the size of the item at index.
type SizeFunc func(index int) int

// Cache is a prefix-consistent table of item metadata.
//
// Entries [0, LastMeasuredIndex] are valid. Storage past that point is kept
// after an invalidation and overwritten when the prefix grows again.
// A Cache is owned by a single list and is not safe for concurrent use.
type Cache struct {
	size         SizeFunc
	entries      []Metadata
	lastMeasured int
}

// New creates an empty cache that measures items with size.
func New(size SizeFunc) *Cache {
	return &Cache{
		size:         size,
		lastMeasured: -1,
	}
}

// SetSizeFunc replaces the size function. Already measured entries are kept;
// call InvalidateFrom for the indices whose sizes changed.
func (c *Cache) SetSizeFunc(size SizeFunc) {
	c.size = size
}

// LastMeasuredIndex returns the highest valid index, or -1 when empty.
func (c *Cache) LastMeasuredIndex() int {
	return c.lastMeasured
}

// Measured reports whether index has a valid entry.
func (c *Cache) Measured(index int) bool {
	return index >= 0 && index <= c.lastMeasured
}

// ItemMetadata returns the entry for index, measuring every item between the
// current prefix end and index first.
func (c *Cache) ItemMetadata(index int) Metadata {
	if index < 0 {
		return Metadata{}
	}
	if index > c.lastMeasured {
		offset := 0
		if c.lastMeasured >= 0 {
			offset = c.entries[c.lastMeasured].End()
		}
		for i := c.lastMeasured + 1; i <= index; i++ {
			m := Metadata{Offset: offset, Size: c.measure(i)}
			if i < len(c.entries) {
				c.entries[i] = m
			} else {
				c.entries = append(c.entries, m)
			}
			offset = m.End()
		}
		c.lastMeasured = index
	}
	return c.entries[index]
}

// FindNearestIndex returns the index of the item covering offset among count
// items. Offsets inside the measured prefix are binary searched; offsets past
// it extend the prefix one item at a time until covered or count runs out.
func (c *Cache) FindNearestIndex(offset, count int) int {
	if count <= 0 || offset <= 0 {
		return 0
	}

	last := min(c.lastMeasured, count-1)
	if last >= 0 && c.entries[last].Offset >= offset {
		// Greatest index whose offset is <= the target.
		i := sort.Search(last+1, func(i int) bool {
			return c.entries[i].Offset > offset
		})
		return max(i-1, 0)
	}

	i := max(last, 0)
	for i < count-1 {
		if c.ItemMetadata(i).End() > offset {
			return i
		}
		i++
	}
	return count - 1
}

// InvalidateFrom drops the validity of every entry at or after index.
func (c *Cache) InvalidateFrom(index int) {
	if index < 0 {
		index = 0
	}
	c.lastMeasured = min(c.lastMeasured, index-1)
}

// Reset invalidates every entry.
func (c *Cache) Reset() {
	c.InvalidateFrom(0)
}

// EstimatedTotalSize returns the measured extent of the first count items
// plus estimated for each item past the measured prefix.
func (c *Cache) EstimatedTotalSize(count, estimated int) int {
	if count <= 0 {
		return 0
	}
	last := min(c.lastMeasured, count-1)
	total := 0
	if last >= 0 {
		total = c.entries[last].End()
	}
	return total + (count-last-1)*estimated
}

func (c *Cache) measure(index int) int {
	if c.size == nil {
		return 0
	}
	return max(c.size(index), 0)
}
