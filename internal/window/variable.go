package window

import "github.com/wilbur182/vlist/internal/sizecache"

// DefaultEstimatedItemSize is used for unmeasured items when no estimate is given.
const DefaultEstimatedItemSize = 50

// Variable is the strategy for lists with per-item sizes. Sizes are read
// through a size cache that the strategy owns; the zero value is not usable.
type Variable struct {
	cache             *sizecache.Cache
	estimatedItemSize int
}

var _ Strategy = (*Variable)(nil)

// NewVariable returns a strategy measuring items with size. A non-positive
// estimated falls back to DefaultEstimatedItemSize.
func NewVariable(size sizecache.SizeFunc, estimated int) *Variable {
	v := &Variable{cache: sizecache.New(size)}
	v.SetEstimatedItemSize(estimated)
	return v
}

// Cache exposes the underlying offset table.
func (v *Variable) Cache() *sizecache.Cache {
	return v.cache
}

// EstimatedItemSize returns the size assumed for unmeasured items.
func (v *Variable) EstimatedItemSize() int {
	return v.estimatedItemSize
}

// SetEstimatedItemSize changes the size assumed for unmeasured items.
func (v *Variable) SetEstimatedItemSize(n int) {
	if n <= 0 {
		n = DefaultEstimatedItemSize
	}
	v.estimatedItemSize = n
}

// SetSizeFunc swaps the size function and drops every cached size.
func (v *Variable) SetSizeFunc(size sizecache.SizeFunc) {
	v.cache.SetSizeFunc(size)
	v.cache.Reset()
}

// ResetAfterIndex forgets cached sizes at and after index; earlier entries
// stay valid.
func (v *Variable) ResetAfterIndex(index int) {
	v.cache.InvalidateFrom(index)
}

func (v *Variable) ItemOffset(f Frame, index int) int {
	if f.ItemCount <= 0 {
		return 0
	}
	return v.cache.ItemMetadata(v.clampIndex(f, index)).Offset
}

func (v *Variable) ItemSize(f Frame, index int) int {
	if f.ItemCount <= 0 {
		return 0
	}
	return v.cache.ItemMetadata(v.clampIndex(f, index)).Size
}

func (v *Variable) EstimatedTotalSize(f Frame) int {
	return v.cache.EstimatedTotalSize(f.ItemCount, v.estimatedItemSize)
}

func (v *Variable) StartIndexForOffset(f Frame, offset int) int {
	return v.cache.FindNearestIndex(offset, f.ItemCount)
}

// StopIndexForStartIndex walks forward from start until the accumulated
// extent reaches the end of the viewport.
func (v *Variable) StopIndexForStartIndex(f Frame, start, offset int) int {
	if f.ItemCount <= 0 {
		return 0
	}
	start = v.clampIndex(f, start)
	end := offset + f.ViewportSize

	m := v.cache.ItemMetadata(start)
	reached := m.End()
	stop := start
	for stop < f.ItemCount-1 && reached < end {
		stop++
		reached += v.cache.ItemMetadata(stop).Size
	}
	return stop
}

func (v *Variable) OffsetForIndexAndAlignment(f Frame, index int, align Align, current int) int {
	if f.ItemCount <= 0 {
		return 0
	}
	m := v.cache.ItemMetadata(v.clampIndex(f, index))

	// Read the total after measuring the target so it counts toward the extent.
	lastOffset := max(0, v.EstimatedTotalSize(f)-f.ViewportSize)
	maxOffset := max(0, min(lastOffset, m.Offset))
	minOffset := max(0, m.Offset-f.ViewportSize+m.Size)

	return clamp(alignOffset(align, minOffset, maxOffset, current), 0, lastOffset)
}

func (v *Variable) ResetsStyleCacheOnSizeChange() bool {
	return false
}

func (v *Variable) clampIndex(f Frame, index int) int {
	if f.ItemCount <= 0 {
		return 0
	}
	return clamp(index, 0, f.ItemCount-1)
}
