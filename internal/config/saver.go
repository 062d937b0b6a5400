package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Save writes the config to ConfigPath.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config as JSON or TOML, chosen by the extension of path.
func SaveTo(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch format(path) {
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveTheme updates only the theme name in the config at path and saves it.
func SaveTheme(path, themeName string) error {
	cfg, err := LoadFrom(path)
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	cfg.UI.Theme.Overrides = make(map[string]string)
	return SaveTo(path, cfg)
}
