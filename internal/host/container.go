package host

// Container is the scrollable element a List is attached to.
type Container interface {
	// SetScrollOffset scrolls the container. For horizontal RTL lists the
	// value follows the container's RTLOffsetType.
	SetScrollOffset(offset int)
}

// RTLOffsetType is how a container reports horizontal scroll positions when
// its content flows right to left.
type RTLOffsetType int

const (
	// RTLNegative starts at 0 and goes negative as the list scrolls.
	RTLNegative RTLOffsetType = iota
	// RTLPositiveAscending starts at 0 and grows as the list scrolls.
	RTLPositiveAscending
	// RTLPositiveDescending starts at the maximum and shrinks to 0.
	RTLPositiveDescending
)

func (t RTLOffsetType) String() string {
	switch t {
	case RTLPositiveAscending:
		return "positive-ascending"
	case RTLPositiveDescending:
		return "positive-descending"
	default:
		return "negative"
	}
}

// RTLContainer is implemented by containers that know their RTL convention.
// Containers that don't are treated as RTLNegative.
type RTLContainer interface {
	Container
	RTLOffsetType() RTLOffsetType
}

// ScrollEvent is a scroll signal reported by the container.
type ScrollEvent struct {
	// Offset is the raw scroll position along the list axis.
	Offset int
	// ClientSize is the visible extent. ScrollSize is the scrollable extent.
	// When ScrollSize is zero the list's own extents are used.
	ClientSize int
	ScrollSize int
}

func rtlType(c Container) RTLOffsetType {
	if rc, ok := c.(RTLContainer); ok {
		return rc.RTLOffsetType()
	}
	return RTLNegative
}

// toContainer converts a logical offset to the value written to c.
func toContainer(t RTLOffsetType, offset, client, scroll int) int {
	switch t {
	case RTLPositiveAscending:
		return offset
	case RTLPositiveDescending:
		return scroll - client - offset
	default:
		return -offset
	}
}

// fromContainer converts a value reported by c back to a logical offset.
func fromContainer(t RTLOffsetType, raw, client, scroll int) int {
	switch t {
	case RTLPositiveAscending:
		return raw
	case RTLPositiveDescending:
		return scroll - client - raw
	default:
		return -raw
	}
}
