package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/vlist/internal/styles"
)

// ScrollbarParams configures a vertical scrollbar. Extents are in list
// units, so variable-size lists get a thumb proportional to their measured
// and estimated size rather than their item count.
type ScrollbarParams struct {
	TotalSize    int // Estimated total extent of the list
	ScrollOffset int // Offset of the viewport start
	ViewportSize int // Extent of the viewport
	TrackHeight  int // Height of the track in terminal rows
}

// Thumb returns the first row and the row count of the scrollbar thumb.
// ok is false when everything fits and no thumb is drawn.
func (p ScrollbarParams) Thumb() (pos, size int, ok bool) {
	if p.TrackHeight < 1 || p.TotalSize <= p.ViewportSize {
		return 0, 0, false
	}

	size = max(1, min(p.ViewportSize*p.TrackHeight/p.TotalSize, p.TrackHeight))
	maxOffset := max(1, p.TotalSize-p.ViewportSize)
	pos = p.ScrollOffset * (p.TrackHeight - size) / maxOffset
	pos = max(0, min(pos, p.TrackHeight-size))
	return pos, size, true
}

// RenderScrollbar returns a one-column, TrackHeight-line string. When the
// whole list fits, the column is blank so the layout does not shift.
func RenderScrollbar(p ScrollbarParams) string {
	if p.TrackHeight < 1 {
		return ""
	}

	lines := make([]string, p.TrackHeight)
	pos, size, ok := p.Thumb()
	if !ok {
		for i := range lines {
			lines[i] = " "
		}
		return strings.Join(lines, "\n")
	}

	track := lipgloss.NewStyle().Foreground(styles.ScrollbarTrackColor).Render("│")
	thumb := lipgloss.NewStyle().Foreground(styles.ScrollbarThumbColor).Render("┃")
	for i := range lines {
		if i >= pos && i < pos+size {
			lines[i] = thumb
		} else {
			lines[i] = track
		}
	}
	return strings.Join(lines, "\n")
}
