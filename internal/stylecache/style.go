package stylecache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wilbur182/vlist/internal/window"
)

// Style absolutely positions one item inside the list's inner element.
type Style struct {
	Layout    window.Layout
	Direction window.Direction
	Offset    int // along the list axis
	Size      int // along the list axis
}

// Properties returns the style as an inline style object.
//
// Vertical items span the full width and are anchored to the left edge, or
// the right edge for RTL. Horizontal items span the full height and are
// offset from the left, or from the right for RTL.
func (s Style) Properties() map[string]string {
	props := map[string]string{"position": "absolute"}
	edge := "left"
	if s.Direction == window.RTL {
		edge = "right"
	}

	if s.Layout == window.Horizontal {
		props[edge] = px(s.Offset)
		props["top"] = "0"
		props["height"] = "100%"
		props["width"] = px(s.Size)
		return props
	}

	props[edge] = "0"
	props["top"] = px(s.Offset)
	props["height"] = px(s.Size)
	props["width"] = "100%"
	return props
}

// CSS serializes the style as a declaration list, properties sorted by name.
func (s Style) CSS() string {
	return FormatCSS(s.Properties())
}

// FormatCSS serializes props as "name: value;" pairs sorted by name.
// Empty values are skipped.
func FormatCSS(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k, v := range props {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", k, props[k])
	}
	return b.String()
}

// Px formats n as a pixel length.
func Px(n int) string {
	return px(n)
}

func px(n int) string {
	return fmt.Sprintf("%dpx", n)
}
