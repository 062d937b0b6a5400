package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/wilbur182/vlist/internal/config"
	"github.com/wilbur182/vlist/internal/keymap"
	"github.com/wilbur182/vlist/internal/styles"
)

func themeCommand() *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "List color themes, or save NAME as the configured theme",
		ArgsUsage: "[NAME]",
		Action: func(c *cli.Context) error {
			cfg, path, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			name := c.Args().First()
			if name == "" {
				for _, t := range styles.ListThemes() {
					marker := " "
					if t == cfg.UI.Theme.Name {
						marker = "*"
					}
					fmt.Fprintf(c.App.Writer, "%s %s\n", marker, t)
				}
				return nil
			}

			if !styles.IsValidTheme(name) {
				return fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(styles.ListThemes(), ", "))
			}
			if err := config.SaveTheme(path, name); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			fmt.Fprintf(c.App.Writer, "theme %s saved to %s\n", name, path)
			return nil
		},
	}
}

func keysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "Print the key bindings, including config overrides",
		Action: func(c *cli.Context) error {
			cfg, _, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			km := keymap.Default()
			km.ApplyOverrides(cfg.Keymap.Overrides)

			for _, cmd := range km.Commands() {
				keys := km.KeysFor(cmd.ID)
				if len(keys) == 0 {
					continue
				}
				fmt.Fprintf(c.App.Writer, "%-16s %-22s %s\n", cmd.ID, cmd.Name, strings.Join(keys, ", "))
			}
			return nil
		},
	}
}
