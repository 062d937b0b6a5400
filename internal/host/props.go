package host

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/wilbur182/vlist/internal/sizecache"
	"github.com/wilbur182/vlist/internal/stylecache"
	"github.com/wilbur182/vlist/internal/window"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidLayout    = errors.New("invalid layout")
	ErrInvalidExtent    = errors.New("invalid extent")
	ErrInvalidItemSize  = errors.New("invalid item size")
	ErrInvalidItemCount = errors.New("invalid item count")
)

// DefaultOverscanCount is used when Props.OverscanCount is nil.
const DefaultOverscanCount = 2

// Extent is a height or width input. It is either a number of units or a
// raw CSS length such as "100%".
type Extent struct {
	n   int
	raw string
	set bool
}

// Units returns a numeric extent.
func Units(n int) Extent {
	return Extent{n: n, set: true}
}

// Length returns a non-numeric extent such as "100%".
func Length(s string) Extent {
	return Extent{raw: s, set: true}
}

// ParseExtent converts a decoded config value into an Extent. Numbers become
// numeric extents, strings are kept verbatim, nil and "" mean unset.
func ParseExtent(v any) (Extent, error) {
	switch x := v.(type) {
	case nil:
		return Extent{}, nil
	case Extent:
		return x, nil
	case int:
		return Units(x), nil
	case int64:
		return Units(int(x)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Extent{}, fmt.Errorf("%w: %v", ErrInvalidExtent, x)
		}
		return Units(int(x)), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return Extent{}, nil
		}
		return Length(s), nil
	default:
		return Extent{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidExtent, v)
	}
}

// IsSet reports whether the extent was given.
func (e Extent) IsSet() bool { return e.set }

// Numeric reports whether the extent is a plain number.
func (e Extent) Numeric() bool { return e.set && e.raw == "" }

// Value returns the numeric value, or 0 for non-numeric extents.
func (e Extent) Value() int { return e.n }

// CSS returns the extent as a CSS length.
func (e Extent) CSS() string {
	switch {
	case !e.set:
		return ""
	case e.raw != "":
		return e.raw
	default:
		return stylecache.Px(e.n)
	}
}

func (e Extent) kind() string {
	switch {
	case !e.set:
		return "unset"
	case e.raw != "":
		return fmt.Sprintf("string %q", e.raw)
	default:
		return "number"
	}
}

// Props are the list inputs. A nil ItemSizeFunc selects the fixed-size
// strategy using ItemSize; otherwise sizes come from ItemSizeFunc.
type Props[D any] struct {
	ItemCount int

	ItemSize     int
	ItemSizeFunc sizecache.SizeFunc
	// ItemSizeVersion must change whenever ItemSizeFunc starts returning
	// different sizes. Changing it drops every cached size.
	ItemSizeVersion uint64
	// EstimatedItemSize applies to unmeasured items of variable lists.
	EstimatedItemSize int

	Layout    string // "vertical" (default) or "horizontal"
	Direction string // "ltr" (default) or "rtl"
	Height    Extent
	Width     Extent

	// OverscanCount is the number of extra items rendered past each edge.
	// Nil means DefaultOverscanCount; the effective minimum is 1.
	OverscanCount       *int
	InitialScrollOffset int
	UseIsScrolling      bool

	// OuterElementType and InnerElementType name the container elements.
	// Both default to "div".
	OuterElementType string
	InnerElementType string
	// Deprecated: use OuterElementType and InnerElementType.
	OuterTagName string
	InnerTagName string

	ItemData D
	// ItemKey derives a stable key per item. The index is used when nil.
	ItemKey func(index int, data D) any

	OnItemsRendered func(window.Range)
	OnScroll        func(ScrollInfo)
}

// ScrollInfo is the argument of the OnScroll callback.
type ScrollInfo struct {
	Direction          window.ScrollDirection
	Offset             int
	UpdateWasRequested bool
}

// resolved is the validated form of the layout inputs.
type resolved struct {
	layout          window.Layout
	direction       window.Direction
	legacyDirection bool
	legacyTagName   bool
	outerElement    string
	innerElement    string
}

const defaultElementType = "div"

func elementType(modern, legacy string) string {
	switch {
	case modern != "":
		return modern
	case legacy != "":
		return legacy
	}
	return defaultElementType
}

// validate checks the inputs that must be right before any windowing runs.
func validate[D any](p Props[D]) (resolved, error) {
	var r resolved

	horizontal := false
	switch strings.ToLower(p.Direction) {
	case "", "ltr":
	case "rtl":
		r.direction = window.RTL
	case "vertical":
		r.legacyDirection = true
	case "horizontal":
		r.legacyDirection = true
		horizontal = true
	default:
		return r, fmt.Errorf(`%w: value should be either "ltr" or "rtl", %q was specified`,
			ErrInvalidDirection, p.Direction)
	}

	switch strings.ToLower(p.Layout) {
	case "", "vertical":
	case "horizontal":
		horizontal = true
	default:
		return r, fmt.Errorf(`%w: value should be either "horizontal" or "vertical", %q was specified`,
			ErrInvalidLayout, p.Layout)
	}
	if horizontal {
		r.layout = window.Horizontal
	}

	if r.layout == window.Horizontal && !p.Width.Numeric() {
		return r, fmt.Errorf("%w: horizontal lists must specify a number for width, %s was specified",
			ErrInvalidExtent, p.Width.kind())
	}
	if r.layout == window.Vertical && !p.Height.Numeric() {
		return r, fmt.Errorf("%w: vertical lists must specify a number for height, %s was specified",
			ErrInvalidExtent, p.Height.kind())
	}

	r.legacyTagName = p.OuterTagName != "" || p.InnerTagName != ""
	r.outerElement = elementType(p.OuterElementType, p.OuterTagName)
	r.innerElement = elementType(p.InnerElementType, p.InnerTagName)

	if p.ItemSizeFunc == nil && p.ItemSize <= 0 {
		return r, fmt.Errorf("%w: fixed lists need a positive item size, got %d", ErrInvalidItemSize, p.ItemSize)
	}
	if p.ItemCount < 0 {
		return r, fmt.Errorf("%w: %d", ErrInvalidItemCount, p.ItemCount)
	}
	return r, nil
}

// Overscan returns n for Props.OverscanCount.
func Overscan(n int) *int {
	return &n
}

func (p Props[D]) overscan() int {
	if p.OverscanCount == nil {
		return DefaultOverscanCount
	}
	return *p.OverscanCount
}
