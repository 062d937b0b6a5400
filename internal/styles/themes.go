package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects themeRegistry and currentTheme
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds the colors used by the list view
type ColorPalette struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
	Error   string `json:"error"`

	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextMuted     string `json:"textMuted"`
	TextSelection string `json:"textSelection"` // Text on the cursor row

	BgPrimary   string `json:"bgPrimary"`
	BgSecondary string `json:"bgSecondary"`
	BgSelection string `json:"bgSelection"`

	ScrollbarThumb string `json:"scrollbarThumb"`
	ScrollbarTrack string `json:"scrollbarTrack"`

	MarkdownTheme string `json:"markdownTheme"` // Glamour standard style name
}

// Theme is a named palette
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary: "#7C3AED", // Purple
			Accent:  "#F59E0B", // Amber
			Error:   "#EF4444", // Red

			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
			TextMuted:     "#6B7280",
			TextSelection: "#F9FAFB",

			BgPrimary:   "#111827",
			BgSecondary: "#1F2937",
			BgSelection: "#374151",

			ScrollbarThumb: "#9CA3AF",
			ScrollbarTrack: "#374151",

			MarkdownTheme: "dark",
		},
	}

	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary: "#6D28D9",
			Accent:  "#B45309",
			Error:   "#B91C1C",

			TextPrimary:   "#111827",
			TextSecondary: "#374151",
			TextMuted:     "#6B7280",
			TextSelection: "#111827",

			BgPrimary:   "#F9FAFB",
			BgSecondary: "#E5E7EB",
			BgSelection: "#D1D5DB",

			ScrollbarThumb: "#4B5563",
			ScrollbarTrack: "#D1D5DB",

			MarkdownTheme: "light",
		},
	}
)

var themeRegistry = map[string]Theme{
	"default": DefaultTheme,
	"light":   LightTheme,
}

var currentTheme = "default"

// Colors derived from the active theme
var (
	Primary             lipgloss.Color
	Accent              lipgloss.Color
	ErrorColor          lipgloss.Color
	TextPrimary         lipgloss.Color
	TextSecondary       lipgloss.Color
	TextMuted           lipgloss.Color
	TextSelectionColor  lipgloss.Color
	BgPrimary           lipgloss.Color
	BgSecondary         lipgloss.Color
	BgSelection         lipgloss.Color
	ScrollbarThumbColor lipgloss.Color
	ScrollbarTrackColor lipgloss.Color

	CurrentMarkdownTheme string
)

// Styles derived from the active theme
var (
	Title       lipgloss.Style
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	Muted       lipgloss.Style
	StatusBar   lipgloss.Style
	ErrorText   lipgloss.Style
)

func init() {
	ApplyThemeColors(DefaultTheme)
}

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyThemeWithOverrides applies a theme with color overrides from config.
// Overrides that are not valid hex colors are ignored.
func ApplyThemeWithOverrides(name string, overrides map[string]string) {
	theme := GetTheme(name)
	for key, value := range overrides {
		applySingleOverride(&theme.Colors, key, value)
	}

	ApplyThemeColors(theme)
	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
}

func applySingleOverride(p *ColorPalette, key, value string) {
	if key == "markdownTheme" {
		p.MarkdownTheme = value
		return
	}
	if !IsValidHexColor(value) {
		return
	}
	switch key {
	case "primary":
		p.Primary = value
	case "accent":
		p.Accent = value
	case "error":
		p.Error = value
	case "textPrimary":
		p.TextPrimary = value
	case "textSecondary":
		p.TextSecondary = value
	case "textMuted":
		p.TextMuted = value
	case "textSelection":
		p.TextSelection = value
	case "bgPrimary":
		p.BgPrimary = value
	case "bgSecondary":
		p.BgSecondary = value
	case "bgSelection":
		p.BgSelection = value
	case "scrollbarThumb":
		p.ScrollbarThumb = value
	case "scrollbarTrack":
		p.ScrollbarTrack = value
	}
}

// ApplyThemeColors updates the package variables from a theme.
// Call it before the TUI starts; the variables are read without locking.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors

	Primary = lipgloss.Color(c.Primary)
	Accent = lipgloss.Color(c.Accent)
	ErrorColor = lipgloss.Color(c.Error)
	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)
	if c.TextSelection != "" {
		TextSelectionColor = lipgloss.Color(c.TextSelection)
	} else {
		TextSelectionColor = lipgloss.Color(c.TextPrimary)
	}
	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgSelection = lipgloss.Color(c.BgSelection)
	ScrollbarThumbColor = lipgloss.Color(c.ScrollbarThumb)
	ScrollbarTrackColor = lipgloss.Color(c.ScrollbarTrack)

	CurrentMarkdownTheme = c.MarkdownTheme
	if CurrentMarkdownTheme == "" {
		CurrentMarkdownTheme = "dark"
	}

	rebuildStyles()
}

func rebuildStyles() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Row = lipgloss.NewStyle().Foreground(TextPrimary)
	RowSelected = lipgloss.NewStyle().
		Foreground(TextSelectionColor).
		Background(BgSelection).
		Bold(true)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgSecondary).
		Padding(0, 1)
	ErrorText = lipgloss.NewStyle().Foreground(ErrorColor)
}

// GetMarkdownTheme returns the glamour style of the active theme
func GetMarkdownTheme() string {
	return CurrentMarkdownTheme
}
