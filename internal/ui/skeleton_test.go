package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderPlaceholderWidth(t *testing.T) {
	for _, width := range []int{1, 7, 40} {
		for index := 0; index < 10; index++ {
			if got := lipgloss.Width(RenderPlaceholder(index, width)); got != width {
				t.Errorf("RenderPlaceholder(%d, %d) width = %d", index, width, got)
			}
		}
	}
}

func TestRenderPlaceholderEmpty(t *testing.T) {
	if got := RenderPlaceholder(3, 0); got != "" {
		t.Errorf("RenderPlaceholder(3, 0) = %q, want empty", got)
	}
}
