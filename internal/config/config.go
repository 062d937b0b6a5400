package config

import (
	"fmt"
	"strings"

	"github.com/wilbur182/vlist/internal/host"
)

// Config is the root configuration structure.
type Config struct {
	List   ListConfig   `json:"list" toml:"list"`
	Source SourceConfig `json:"source" toml:"source"`
	Keymap KeymapConfig `json:"keymap" toml:"keymap"`
	UI     UIConfig     `json:"ui" toml:"ui"`
}

// ListConfig holds the list inputs.
type ListConfig struct {
	Layout    string `json:"layout" toml:"layout"`       // "vertical" or "horizontal"
	Direction string `json:"direction" toml:"direction"` // "ltr" or "rtl"
	// Height and Width are a number of rows/columns or a CSS length such
	// as "100%". Unset means the terminal size.
	Height any `json:"height,omitempty" toml:"height,omitempty"`
	Width  any `json:"width,omitempty" toml:"width,omitempty"`

	ItemCount           int  `json:"itemCount" toml:"itemCount"`
	ItemSize            int  `json:"itemSize" toml:"itemSize"`
	Variable            bool `json:"variable" toml:"variable"` // per-item sizes from the source
	EstimatedItemSize   int  `json:"estimatedItemSize" toml:"estimatedItemSize"`
	OverscanCount       int  `json:"overscanCount" toml:"overscanCount"`
	InitialScrollOffset int  `json:"initialScrollOffset" toml:"initialScrollOffset"`
	UseIsScrolling      bool `json:"useIsScrolling" toml:"useIsScrolling"`
}

// SourceConfig selects where items come from.
type SourceConfig struct {
	Kind     string `json:"kind" toml:"kind"` // "synthetic" or "sqlite"
	Path     string `json:"path" toml:"path"` // database file for sqlite
	Seed     int64  `json:"seed" toml:"seed"` // synthetic size seed
	PageSize int    `json:"pageSize" toml:"pageSize"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides,omitempty" toml:"overrides,omitempty"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowScrollbar bool        `json:"showScrollbar" toml:"showScrollbar"`
	ShowFooter    bool        `json:"showFooter" toml:"showFooter"`
	Markdown      bool        `json:"markdown" toml:"markdown"` // render item bodies with glamour
	Theme         ThemeConfig `json:"theme" toml:"theme"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string            `json:"name" toml:"name"`
	Overrides map[string]string `json:"overrides,omitempty" toml:"overrides,omitempty"`
}

const (
	SourceSynthetic = "synthetic"
	SourceSQLite    = "sqlite"

	defaultItemCount = 10000
	defaultItemSize  = 1
	defaultPageSize  = 256
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		List: ListConfig{
			Layout:        "vertical",
			Direction:     "ltr",
			ItemCount:     defaultItemCount,
			ItemSize:      defaultItemSize,
			OverscanCount: host.DefaultOverscanCount,
		},
		Source: SourceConfig{
			Kind:     SourceSynthetic,
			Seed:     1,
			PageSize: defaultPageSize,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowScrollbar: true,
			ShowFooter:    true,
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]string),
			},
		},
	}
}

// Validate fills in defaults for out-of-range values and rejects values
// that have no sensible default.
func (c *Config) Validate() error {
	if c.List.ItemCount < 0 {
		c.List.ItemCount = 0
	}
	if c.List.ItemSize <= 0 {
		c.List.ItemSize = defaultItemSize
	}
	if c.List.InitialScrollOffset < 0 {
		c.List.InitialScrollOffset = 0
	}
	if c.Source.PageSize <= 0 {
		c.Source.PageSize = defaultPageSize
	}
	if c.Keymap.Overrides == nil {
		c.Keymap.Overrides = make(map[string]string)
	}
	if c.UI.Theme.Name == "" {
		c.UI.Theme.Name = "default"
	}

	switch strings.ToLower(c.Source.Kind) {
	case "", SourceSynthetic:
		c.Source.Kind = SourceSynthetic
	case SourceSQLite:
		c.Source.Kind = SourceSQLite
		if c.Source.Path == "" {
			return fmt.Errorf("source: sqlite needs a path")
		}
	default:
		return fmt.Errorf("source: unknown kind %q", c.Source.Kind)
	}

	if _, _, err := c.List.Extents(); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return nil
}

// Extents converts the configured height and width to host extents.
func (l ListConfig) Extents() (height, width host.Extent, err error) {
	if height, err = host.ParseExtent(l.Height); err != nil {
		return host.Extent{}, host.Extent{}, fmt.Errorf("height: %w", err)
	}
	if width, err = host.ParseExtent(l.Width); err != nil {
		return host.Extent{}, host.Extent{}, fmt.Errorf("width: %w", err)
	}
	return height, width, nil
}
