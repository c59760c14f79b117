package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/knadh/koanf/maps"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/domainmap/internal/cli/output"
	"github.com/yndnr/domainmap/internal/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "sources",
						Usage: "List each setting with the source that set it",
					},
				},
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file in use",
				Action: configPath,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "[FILE]",
				Action:    configValidate,
			},
			{
				Name:      "init",
				Usage:     "Write the default configuration to a file",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	if c.Bool("sources") {
		rows, err := settingRows(env)
		if err != nil {
			return err
		}
		return env.Formatter.Format(env.Out, rows)
	}

	// Nested sections do not fit a two-column table.
	f := env.Formatter
	if env.Format == output.FormatTable {
		f = output.NewFormatter(output.FormatYAML)
	}
	return f.Format(env.Out, env.Config)
}

type settingRow struct {
	Key    string `json:"key"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}

// settingRows flattens the effective configuration to dotted keys, the
// form the loader tracks origins in.
func settingRows(env *Env) ([]settingRow, error) {
	data, err := yaml.Marshal(env.Config)
	if err != nil {
		return nil, err
	}
	var nested map[string]any
	if err := yaml.Unmarshal(data, &nested); err != nil {
		return nil, err
	}
	flat, _ := maps.Flatten(nested, nil, ".")

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]settingRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, settingRow{Key: k, Value: flat[k], Source: string(env.Loader.Origin(k))})
	}
	return rows, nil
}

func configPath(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	path := env.Loader.FilePath()
	if path == "" {
		fmt.Fprintf(env.Out, "(none, defaults and environment only; looked for %s)\n", config.DefaultConfigPath())
		return nil
	}
	fmt.Fprintln(env.Out, path)
	return nil
}

func configValidate(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		path = env.Loader.FilePath()
	}
	if path == "" {
		return fmt.Errorf("configuration file path required")
	}

	if _, _, err := config.Load(path, nil); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintf(env.Out, "Configuration file is valid: %s\n", path)
	return nil
}

func configInit(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(env.Out, "Wrote %s\n", path)
	return nil
}
