package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/wilbur182/vlist/internal/config"
	"github.com/wilbur182/vlist/internal/version"
)

// Version is set at build time via ldflags
var Version = ""

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "vlist: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "vlist",
		Usage:                  "Windowed list viewer and range calculator",
		Version:                version.Resolve(Version),
		UseShortOptionHandling: true,
		DefaultCommand:         "run",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.json or .toml)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file instead of the default sink",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			rangeCommand(),
			seedCommand(),
			themeCommand(),
			keysCommand(),
		},
	}
}

// newLogger builds the logger for a command. Without --log-file logs go to
// fallback. The returned func closes the log file.
func newLogger(c *cli.Context, fallback io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}

	w, closeFn := fallback, func() {}
	if path := c.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

// loadConfig reads --config, or the default config file when unset.
func loadConfig(c *cli.Context) (*config.Config, string, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.LoadFrom(path)
		return cfg, path, err
	}
	cfg, err := config.Load()
	return cfg, config.ConfigPath(), err
}
