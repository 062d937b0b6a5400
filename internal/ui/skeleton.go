package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/vlist/internal/styles"
)

// placeholderWidths is the width pattern of placeholder rows, in percent of
// the available width. It cycles by row index so adjacent rows differ.
var placeholderWidths = []int{85, 60, 75, 55, 80, 65, 70, 50}

// RenderPlaceholder returns a muted bar standing in for an item row while the
// list is scrolling. The result is exactly width cells wide.
func RenderPlaceholder(index, width int) string {
	if width <= 0 {
		return ""
	}
	if index < 0 {
		index = -index
	}
	n := max(1, width*placeholderWidths[index%len(placeholderWidths)]/100)
	bar := lipgloss.NewStyle().Foreground(styles.TextMuted).Render(strings.Repeat("░", n))
	return bar + strings.Repeat(" ", width-n)
}
