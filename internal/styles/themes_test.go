package styles

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#7C3AED", true},
		{"#00000080", true},
		{"7C3AED", false},
		{"#7C3AE", false},
		{"#GGGGGG", false},
	}
	for _, tt := range tests {
		if got := IsValidHexColor(tt.in); got != tt.want {
			t.Errorf("IsValidHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestListThemes(t *testing.T) {
	want := []string{"default", "light"}
	if got := ListThemes(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListThemes() = %v, want %v", got, want)
	}
	if GetTheme("missing").Name != "default" {
		t.Error("unknown theme should fall back to default")
	}
}

func TestApplyThemeWithOverrides(t *testing.T) {
	t.Cleanup(func() { ApplyThemeColors(DefaultTheme) })

	ApplyThemeWithOverrides("light", map[string]string{
		"scrollbarThumb": "#123456",
		"scrollbarTrack": "not-a-color",
		"markdownTheme":  "notty",
	})

	if GetCurrentThemeName() != "light" {
		t.Errorf("current theme = %q, want light", GetCurrentThemeName())
	}
	if ScrollbarThumbColor != lipgloss.Color("#123456") {
		t.Errorf("thumb = %q, want override", ScrollbarThumbColor)
	}
	if ScrollbarTrackColor != lipgloss.Color(LightTheme.Colors.ScrollbarTrack) {
		t.Errorf("invalid override should be ignored, track = %q", ScrollbarTrackColor)
	}
	if GetMarkdownTheme() != "notty" {
		t.Errorf("markdown theme = %q, want notty", GetMarkdownTheme())
	}
}
