package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/wilbur182/vlist/internal/source"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "Create or replace a SQLite item database",
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of items",
				Value:   10000,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Seed for item line counts",
				Value: 1,
			},
		},
		Action: seedDatabase,
	}
}

func seedDatabase(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return cli.Exit("seed: missing database path", 2)
	}
	logger, closeLog, err := newLogger(c, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	n := c.Int("count")
	if n < 0 {
		return fmt.Errorf("seed: count must not be negative, got %d", n)
	}
	if err := source.Seed(c.Context, path, n, c.Int64("seed")); err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	logger.Debug("seeded", "path", path, "count", n)
	fmt.Fprintf(c.App.Writer, "seeded %d items into %s\n", n, path)
	return nil
}
