package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wilbur182/vlist/internal/host"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.List.OverscanCount != host.DefaultOverscanCount {
		t.Errorf("overscan = %d, want %d", cfg.List.OverscanCount, host.DefaultOverscanCount)
	}
	if cfg.Source.Kind != SourceSynthetic {
		t.Errorf("source kind = %q", cfg.Source.Kind)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:   "negative values reset",
			mutate: func(c *Config) { c.List.ItemCount = -3; c.List.ItemSize = 0; c.Source.PageSize = -1 },
			check: func(t *testing.T, c *Config) {
				if c.List.ItemCount != 0 || c.List.ItemSize != defaultItemSize || c.Source.PageSize != defaultPageSize {
					t.Errorf("got %+v %+v", c.List, c.Source)
				}
			},
		},
		{name: "sqlite without path", mutate: func(c *Config) { c.Source.Kind = "sqlite" }, wantErr: true},
		{name: "unknown source", mutate: func(c *Config) { c.Source.Kind = "redis" }, wantErr: true},
		{name: "bad height type", mutate: func(c *Config) { c.List.Height = []any{1} }, wantErr: true},
		{name: "percent width", mutate: func(c *Config) { c.List.Width = "100%" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadFrom_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{
		"list": {"layout": "horizontal", "width": 120, "height": "100%", "itemCount": 500, "variable": true},
		"keymap": {"overrides": {"x": "quit"}}
	}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.List.Layout != "horizontal" || cfg.List.ItemCount != 500 || !cfg.List.Variable {
		t.Errorf("list = %+v", cfg.List)
	}
	if cfg.List.ItemSize != defaultItemSize {
		t.Errorf("unset fields keep defaults, itemSize = %d", cfg.List.ItemSize)
	}
	h, w, err := cfg.List.Extents()
	if err != nil {
		t.Fatal(err)
	}
	if h.Numeric() || h.CSS() != "100%" {
		t.Errorf("height = %q, want 100%%", h.CSS())
	}
	if !w.Numeric() || w.Value() != 120 {
		t.Errorf("width = %+v, want 120", w)
	}
	if cfg.Keymap.Overrides["x"] != "quit" {
		t.Errorf("overrides = %v", cfg.Keymap.Overrides)
	}
}

func TestLoadFrom_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vlist.toml")
	writeFile(t, path, `
[list]
height = 30
itemSize = 2
overscanCount = 4

[source]
kind = "sqlite"
path = "items.db"

[ui.theme]
name = "light"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	h, _, err := cfg.List.Extents()
	if err != nil {
		t.Fatal(err)
	}
	if h.Value() != 30 || cfg.List.ItemSize != 2 || cfg.List.OverscanCount != 4 {
		t.Errorf("list = %+v", cfg.List)
	}
	if cfg.Source.Kind != SourceSQLite || cfg.Source.Path != "items.db" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.UI.Theme.Name != "light" || !cfg.UI.ShowScrollbar {
		t.Errorf("ui = %+v", cfg.UI)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(dir, "missing.json"))
	if err != nil || cfg == nil {
		t.Fatalf("missing file should give defaults, got %v", err)
	}

	yaml := filepath.Join(dir, "config.yaml")
	writeFile(t, yaml, "list: {}")
	if _, err := LoadFrom(yaml); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("yaml: got %v, want ErrUnknownFormat", err)
	}

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, "{")
	if _, err := LoadFrom(bad); err == nil {
		t.Error("expected a decode error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.List.ItemCount = 42
			cfg.List.Height = 25
			cfg.UI.Theme.Overrides["primary"] = "#000000"

			if err := SaveTo(path, cfg); err != nil {
				t.Fatal(err)
			}
			got, err := LoadFrom(path)
			if err != nil {
				t.Fatal(err)
			}
			if got.List.ItemCount != 42 {
				t.Errorf("itemCount = %d", got.List.ItemCount)
			}
			h, _, _ := got.List.Extents()
			if h.Value() != 25 {
				t.Errorf("height = %d", h.Value())
			}
			if got.UI.Theme.Overrides["primary"] != "#000000" {
				t.Errorf("overrides = %v", got.UI.Theme.Overrides)
			}
		})
	}
}

func TestSaveTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := SaveTheme(path, "light"); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme.Name != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme.Name)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got, want := ConfigPath(), filepath.Join("/tmp/xdg", "vlist", "config.json"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"list": {"itemCount": 1}}`)

	w, err := Watch(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFile(t, path, `{"list": {"itemCount": 2}}`)

	select {
	case u := <-w.Updates():
		if u.Err != nil {
			t.Fatal(u.Err)
		}
		if u.Config.List.ItemCount != 2 {
			t.Errorf("itemCount = %d, want 2", u.Config.List.ItemCount)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{}`)

	w, err := Watch(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "other.json"), `{}`)

	select {
	case u := <-w.Updates():
		t.Fatalf("unexpected update %+v", u)
	case <-time.After(300 * time.Millisecond):
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	for range w.Updates() {
	}
}
