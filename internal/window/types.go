package window

import "strings"

// Layout is the axis items are laid out along.
type Layout int

const (
	Vertical Layout = iota
	Horizontal
)

func (l Layout) String() string {
	if l == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Direction is the text direction of the list container.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ScrollDirection records which way the last offset change moved.
type ScrollDirection int

const (
	Forward ScrollDirection = iota
	Backward
)

func (d ScrollDirection) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Align is the policy for where a scrolled-to item lands in the viewport.
type Align int

const (
	// AlignAuto scrolls the least amount needed to show the item.
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "auto"
	}
}

// ParseAlign maps a policy name to an Align. Empty and unknown names are auto.
func ParseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return AlignStart
	case "center":
		return AlignCenter
	case "end":
		return AlignEnd
	default:
		return AlignAuto
	}
}

// Frame holds the list inputs a strategy reads on every call.
type Frame struct {
	ItemCount    int
	ViewportSize int // height for vertical lists, width for horizontal ones
}

// ScrollState is the host-owned scroll position. Strategies only read it.
type ScrollState struct {
	Offset             int
	Direction          ScrollDirection
	IsScrolling        bool
	UpdateWasRequested bool
}

// Range is the index range a host renders, all bounds inclusive.
type Range struct {
	OverscanStart int
	OverscanStop  int
	VisibleStart  int
	VisibleStop   int
}
