package command

import (
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/domainmap/internal/cli/output"
	"github.com/yndnr/domainmap/internal/telemetry/metric"
	"github.com/yndnr/domainmap/pkg/domainmap"
)

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Fill a map with generated keys and report how they spread over domains",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "keys",
				Aliases: []string{"k"},
				Usage:   "Number of keys to insert",
				Value:   10000,
			},
			&cli.IntFlag{
				Name:  "remove",
				Usage: "Number of keys to remove after loading",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Key prefix",
				Value: "key",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Also print the metrics in Prometheus text format",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Do not draw a progress bar while loading",
			},
		},
		Action: runStats,
	}
}

// StatsReport summarizes a loaded map.
type StatsReport struct {
	Hasher       string                  `json:"hasher" yaml:"hasher"`
	Router       string                  `json:"router" yaml:"router"`
	Domains      int                     `json:"domains" yaml:"domains"`
	Live         int                     `json:"live" yaml:"live"`
	Slots        int                     `json:"slots" yaml:"slots"`
	Tombstones   int                     `json:"tombstones" yaml:"tombstones"`
	MinLive      int                     `json:"min_live" yaml:"min_live"`
	MaxLive      int                     `json:"max_live" yaml:"max_live"`
	Distribution []domainmap.DomainStats `json:"distribution" yaml:"distribution"`
}

func runStats(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	keys, remove := c.Int("keys"), c.Int("remove")
	if keys < 0 || remove < 0 {
		return fmt.Errorf("--keys and --remove must not be negative")
	}
	if remove > keys {
		return fmt.Errorf("--remove %d exceeds --keys %d", remove, keys)
	}

	m, err := newMap[string, int](env)
	if err != nil {
		return err
	}

	prefix := c.String("prefix")
	var progress io.Writer = io.Discard
	if !c.Bool("no-progress") {
		progress = env.Err
	}
	bar := output.NewProgressBar(progress, "Loading", keys)
	for i := 0; i < keys; i++ {
		m.Set(prefix+strconv.Itoa(i), i)
		bar.Increment(1)
	}
	bar.Finish()

	for i := 0; i < remove; i++ {
		m.Remove(prefix + strconv.Itoa(i))
	}
	env.Logger.Debug("stats map loaded", "keys", keys, "removed", remove, "live", m.Len())

	report := buildReport(env, m)
	if env.Format == output.FormatTable {
		if err := env.Formatter.Format(env.Out, report.Distribution); err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "\n%s/%s, %d domains: %d live, %d slots, %d tombstones, live per domain %d..%d\n",
			report.Hasher, report.Router, report.Domains,
			report.Live, report.Slots, report.Tombstones, report.MinLive, report.MaxLive)
	} else if err := env.Formatter.Format(env.Out, report); err != nil {
		return err
	}

	if c.Bool("metrics") {
		reg := metric.NewRegistry(env.Config.Metrics.Namespace)
		if err := reg.Register(m); err != nil {
			return err
		}
		fmt.Fprintln(env.Out)
		return reg.WriteText(env.Out)
	}
	return nil
}

func buildReport[K comparable, V any](env *Env, m *domainmap.Map[K, V]) StatsReport {
	dist := m.Stats()
	r := StatsReport{
		Hasher:       env.Config.Table.Hasher,
		Router:       env.Config.Table.Router,
		Domains:      m.Domains(),
		Live:         m.Len(),
		Slots:        m.TotalSize(),
		Tombstones:   m.Tombstones(),
		Distribution: dist,
	}
	for i, d := range dist {
		if i == 0 || d.Live < r.MinLive {
			r.MinLive = d.Live
		}
		if d.Live > r.MaxLive {
			r.MaxLive = d.Live
		}
	}
	return r
}
