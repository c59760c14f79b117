package command

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/domainmap/internal/cli/output"
	"github.com/yndnr/domainmap/internal/config"
	"github.com/yndnr/domainmap/internal/infra/buildinfo"
	"github.com/yndnr/domainmap/internal/infra/confloader"
	"github.com/yndnr/domainmap/internal/infra/shutdown"
	"github.com/yndnr/domainmap/internal/telemetry/logger"
	"github.com/yndnr/domainmap/pkg/domainmap"
)

const (
	envKey      = "env"
	shutdownKey = "shutdown"
	// shutdownTimeout bounds the cleanup hooks of a handler created when
	// none was installed with SetShutdown.
	shutdownTimeout = 5 * time.Second
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "domainmap",
		Usage:   "Explore a fixed-domain map keyed by 128-bit hashes",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			DemoCommand(),
			HashCommand(),
			StatsCommand(),
			ShellCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: setup,
	}
}

// globalFlags returns the flags available to all commands.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default ~/.domainmap/config.yaml when present)",
			EnvVars: []string{"DOMAINMAP_CONFIG"},
		},
		&cli.IntFlag{
			Name:    "domains",
			Aliases: []string{"n"},
			Usage:   "Number of domains",
		},
		&cli.StringFlag{
			Name:  "hasher",
			Usage: "Hash policy: murmur3, spread32, xxh3",
		},
		&cli.StringFlag{
			Name:  "router",
			Usage: "Routing policy: fields, words",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:  "no-headers",
			Usage: "Omit the header row of table output",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
	}
}

// flagKeys maps global flags to configuration keys.
var flagKeys = map[string]string{
	"domains":   "table.domains",
	"hasher":    "table.hasher",
	"router":    "table.router",
	"log-level": "log.level",
}

// overrides collects the explicitly set global flags as config overrides.
func overrides(c *cli.Context) map[string]any {
	values := make(map[string]any)
	for flag, key := range flagKeys {
		if !c.IsSet(flag) {
			continue
		}
		if flag == "domains" {
			values[key] = c.Int(flag)
		} else {
			values[key] = c.String(flag)
		}
	}
	return values
}

// Env is what every command gets from the global flags.
type Env struct {
	Config    *config.Config
	Loader    *confloader.Loader
	Logger    logger.Logger
	Format    output.Format
	Formatter output.Formatter
	Out       io.Writer
	Err       io.Writer

	// Shutdown collects cleanup hooks run when the process is interrupted.
	Shutdown *shutdown.Handler
}

// SetShutdown makes the commands of app register their cleanup hooks with h.
// Call it before app.Run.
func SetShutdown(app *cli.App, h *shutdown.Handler) {
	if app.Metadata == nil {
		app.Metadata = make(map[string]any)
	}
	app.Metadata[shutdownKey] = h
}

func setup(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	cfg, loader, err := config.Load(c.String("config"), overrides(c))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	errOut := c.App.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	lc := cfg.Log.LoggerConfig()
	lc.Output = errOut
	log, err := logger.New(lc)
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}

	formatter := output.NewFormatter(format)
	if format == output.FormatTable && c.Bool("no-headers") {
		formatter = &output.TableFormatter{NoHeaders: true}
	}

	h, ok := c.App.Metadata[shutdownKey].(*shutdown.Handler)
	if !ok {
		h = shutdown.NewHandler(shutdownTimeout)
	}

	c.App.Metadata[envKey] = &Env{
		Config:    cfg,
		Loader:    loader,
		Logger:    log,
		Format:    format,
		Formatter: formatter,
		Out:       out,
		Err:       errOut,
		Shutdown:  h,
	}
	log.Debug("configuration loaded",
		"file", loader.FilePath(),
		"domains", cfg.Table.Domains,
		"hasher", cfg.Table.Hasher,
		"router", cfg.Table.Router)
	return nil
}

// GetEnv returns the Env built by the Before hook.
func GetEnv(c *cli.Context) (*Env, error) {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env, nil
	}
	return nil, fmt.Errorf("command environment not initialized")
}

// mapOptions returns the options for a map built from the table section.
func (e *Env) mapOptions() ([]domainmap.Option, error) {
	opts, err := e.Config.Table.MapOptions()
	if err != nil {
		return nil, err
	}
	return append(opts, domainmap.WithLogger(e.Logger)), nil
}

func newMap[K comparable, V any](e *Env) (*domainmap.Map[K, V], error) {
	opts, err := e.mapOptions()
	if err != nil {
		return nil, err
	}
	return domainmap.NewChecked[K, V](opts...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
