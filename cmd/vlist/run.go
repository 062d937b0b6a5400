package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"github.com/wilbur182/vlist/internal/config"
	"github.com/wilbur182/vlist/internal/keymap"
	"github.com/wilbur182/vlist/internal/tealist"
	"github.com/wilbur182/vlist/internal/version"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Browse a list of items in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Read items from this SQLite database (see seed)",
			},
			&cli.BoolFlag{
				Name:  "variable",
				Usage: "Size each item by its line count",
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Do not reload the config file when it changes",
			},
		},
		Action: runTUI,
	}
}

func runTUI(c *cli.Context) error {
	// stderr belongs to the terminal while the program runs.
	logger, closeLog, err := newLogger(c, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, path, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if db := c.String("db"); db != "" {
		cfg.Source.Kind, cfg.Source.Path = config.SourceSQLite, db
	}
	if c.Bool("variable") {
		cfg.List.Variable = true
	}

	var watcher *config.Watcher
	if !c.Bool("no-watch") {
		if watcher, err = config.Watch(path, logger); err != nil {
			logger.Warn("config watch disabled", "path", path, "err", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	v := version.Resolve(Version)
	logger.Info("starting", "version", v, "development", version.IsDevelopment(v),
		"source", cfg.Source.Kind, "layout", cfg.List.Layout)

	model, err := tealist.New(c.Context, tealist.Options{
		Config:     cfg,
		Keymap:     keymap.Default(),
		Watcher:    watcher,
		ConfigPath: path,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(c.Context))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
