package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnknownFormat is returned for config files that are neither JSON nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

const (
	appDir         = "vlist"
	configFileName = "config.json"
)

// ConfigPath returns the default config location,
// $XDG_CONFIG_HOME/vlist/config.json or ~/.config/vlist/config.json.
func ConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir, configFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", configFileName)
	}
	return filepath.Join(home, ".config", appDir, configFileName)
}

// Load reads the config at the default location.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a JSON or TOML config, chosen by extension, over the
// defaults. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch format(path) {
	case "json":
		return json.Unmarshal(data, cfg)
	case "toml":
		return toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
