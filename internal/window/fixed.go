package window

// Fixed is the strategy for lists whose items all have the same Size.
type Fixed struct {
	Size int
}

var _ Strategy = Fixed{}

// unit guards the divisions below against a zero or negative size.
func (s Fixed) unit() int {
	return max(s.Size, 1)
}

func (s Fixed) ItemOffset(_ Frame, index int) int {
	return index * s.unit()
}

func (s Fixed) ItemSize(_ Frame, _ int) int {
	return s.unit()
}

func (s Fixed) EstimatedTotalSize(f Frame) int {
	return max(f.ItemCount, 0) * s.unit()
}

func (s Fixed) StartIndexForOffset(f Frame, offset int) int {
	if f.ItemCount <= 0 {
		return 0
	}
	return clamp(offset/s.unit(), 0, f.ItemCount-1)
}

// StopIndexForStartIndex returns the last item at least partially inside
// [offset, offset+viewport).
func (s Fixed) StopIndexForStartIndex(f Frame, start, offset int) int {
	if f.ItemCount <= 0 {
		return 0
	}
	size := s.unit()
	remaining := f.ViewportSize + offset - start*size
	visible := ceilDiv(remaining, size)
	return clamp(start+visible-1, 0, f.ItemCount-1)
}

func (s Fixed) OffsetForIndexAndAlignment(f Frame, index int, align Align, current int) int {
	size := s.unit()
	lastItemOffset := max(0, f.ItemCount*size-f.ViewportSize)
	maxOffset := min(lastItemOffset, index*size)
	minOffset := max(0, index*size-f.ViewportSize+size)

	return clamp(alignOffset(align, minOffset, maxOffset, current), 0, lastItemOffset)
}

func (s Fixed) ResetsStyleCacheOnSizeChange() bool {
	return true
}

// ceilDiv rounds a/b toward positive infinity for b > 0.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return -((-a) / b)
	}
	return (a + b - 1) / b
}
