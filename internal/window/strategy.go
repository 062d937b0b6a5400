package window

import "math"

// Strategy locates items along the list axis. Implementations never fail:
// out-of-range indices are clamped and an empty list yields zero values.
type Strategy interface {
	ItemOffset(f Frame, index int) int
	ItemSize(f Frame, index int) int
	EstimatedTotalSize(f Frame) int
	StartIndexForOffset(f Frame, offset int) int
	StopIndexForStartIndex(f Frame, start, offset int) int
	OffsetForIndexAndAlignment(f Frame, index int, align Align, current int) int

	// ResetsStyleCacheOnSizeChange reports whether cached item styles go
	// stale whenever the item size input changes.
	ResetsStyleCacheOnSizeChange() bool
}

// RangeToRender returns the overscanned index range for the scroll state.
//
// Idle lists overscan max(1, overscan) items on both sides. While scrolling,
// only the side the list is moving toward gets the full overscan; the other
// side keeps a single item so focus can still move across the edge.
func RangeToRender(s Strategy, f Frame, st ScrollState, overscan int) Range {
	if f.ItemCount <= 0 {
		return Range{}
	}

	start := s.StartIndexForOffset(f, st.Offset)
	stop := s.StopIndexForStartIndex(f, start, st.Offset)

	backward, forward := 1, 1
	if !st.IsScrolling || st.Direction == Backward {
		backward = max(1, overscan)
	}
	if !st.IsScrolling || st.Direction == Forward {
		forward = max(1, overscan)
	}

	return Range{
		OverscanStart: max(0, start-backward),
		OverscanStop:  max(0, min(f.ItemCount-1, stop+forward)),
		VisibleStart:  start,
		VisibleStop:   stop,
	}
}

// MaxScrollOffset is the largest offset that still fills the viewport.
func MaxScrollOffset(s Strategy, f Frame) int {
	return max(0, s.EstimatedTotalSize(f)-f.ViewportSize)
}

// ClampOffset limits offset to [0, MaxScrollOffset].
func ClampOffset(s Strategy, f Frame, offset int) int {
	return clamp(offset, 0, MaxScrollOffset(s, f))
}

// alignOffset applies an alignment policy given the two extreme offsets that
// still show the whole item: minOffset puts it flush with the viewport end,
// maxOffset flush with the viewport start.
func alignOffset(align Align, minOffset, maxOffset, current int) int {
	switch align {
	case AlignStart:
		return maxOffset
	case AlignEnd:
		return minOffset
	case AlignCenter:
		return roundHalfUp(float64(minOffset) + float64(maxOffset-minOffset)/2)
	default:
		// Inclusive on both edges: an item flush with the viewport is visible.
		if current >= minOffset && current <= maxOffset {
			return current
		}
		if current < minOffset {
			return minOffset
		}
		return maxOffset
	}
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
