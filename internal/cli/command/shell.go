package command

import (
	"context"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/domainmap/internal/cli/repl"
	"github.com/yndnr/domainmap/internal/config"
	"github.com/yndnr/domainmap/internal/infra/confloader"
	"github.com/yndnr/domainmap/internal/telemetry/logger"
	"github.com/yndnr/domainmap/internal/telemetry/metric"
)

// reloadDebounce coalesces the several events an editor save produces.
const reloadDebounce = 100 * time.Millisecond

// ShellCommand returns the shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive shell over a string map",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Keep command history in memory only",
			},
		},
		Action: runShell,
	}
}

func runShell(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}
	cfg := env.Config

	m, err := newMap[string, string](env)
	if err != nil {
		return err
	}

	reg := metric.NewRegistry(cfg.Metrics.Namespace)
	if err := reg.Register(m); err != nil {
		return err
	}

	historyFile := cfg.Shell.HistoryFile
	if historyFile == "" {
		historyFile = config.DefaultHistoryPath()
	}
	if c.Bool("no-history") {
		historyFile = ""
	}

	in := c.App.Reader
	if in == nil {
		in = os.Stdin
	}
	history := repl.NewHistory(historyFile, repl.DefaultHistorySize)
	env.Shutdown.OnShutdown(func(context.Context) error {
		return history.Save()
	})

	r := repl.New(m,
		repl.WithIO(in, env.Out),
		repl.WithPrompt(cfg.Shell.Prompt),
		repl.WithHistory(history),
		repl.WithFormatter(env.Formatter),
		repl.WithMetrics(reg),
		repl.WithLogger(env.Logger),
	)

	if cfg.Shell.WatchConfig && env.Loader.FilePath() != "" {
		stop, err := watchConfig(env)
		if err != nil {
			env.Logger.Warn("config watch disabled", "error", err)
		} else {
			defer stop()
			env.Shutdown.OnShutdown(func(context.Context) error {
				stop()
				return nil
			})
		}
	}

	return r.Run(c.Context)
}

// watchConfig reloads the configuration when its file changes and applies
// the new log level. Table settings only take effect in the next session.
func watchConfig(env *Env) (func(), error) {
	w, err := confloader.NewWatcher(
		confloader.WithWatcherLogger(env.Logger),
		confloader.WithDebounce(reloadDebounce),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(env.Loader.FilePath()); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(path string) {
		cfg, err := config.Reload(env.Loader)
		if err != nil {
			env.Logger.Warn("config reload rejected", "file", path, "error", err)
			return
		}
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			env.Logger.Warn("log level not applied", "level", cfg.Log.Level, "error", err)
			return
		}
		env.Logger.Info("config reloaded", "file", path, "log_level", cfg.Log.Level)
	})
	w.StartAsync()

	return func() { _ = w.Stop() }, nil
}
