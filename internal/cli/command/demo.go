package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

// DemoCommand returns the demo command: two maps, one keyed by integers and
// one by strings, filled with the same values and read back.
func DemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Fill an int-keyed and a string-keyed map, then read and iterate them",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "keys",
				Usage: "Number of keys to insert",
				Value: 1000,
			},
			&cli.IntFlag{
				Name:  "show",
				Usage: "Number of keys to read back",
				Value: 100,
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Print only the summary lines",
			},
		},
		Action: runDemo,
	}
}

func runDemo(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}

	keys, show := c.Int("keys"), c.Int("show")
	if keys < 0 || show < 0 {
		return fmt.Errorf("--keys and --show must not be negative")
	}
	show = min(show, keys)
	quiet := c.Bool("quiet")

	byInt, err := newMap[int, string](env)
	if err != nil {
		return err
	}
	byString, err := newMap[string, string](env)
	if err != nil {
		return err
	}

	for i := 0; i < keys; i++ {
		value := "Value" + strconv.Itoa(i)
		byInt.Set(i, value)
		byString.Set("Key"+strconv.Itoa(i), value)
	}

	out := env.Out
	for i := 0; i < show; i++ {
		v, err := byInt.Get(i)
		if err != nil {
			return fmt.Errorf("read back %d: %w", i, err)
		}
		key := "Key" + strconv.Itoa(i)
		sv, err := byString.Get(key)
		if err != nil {
			return fmt.Errorf("read back %s: %w", key, err)
		}
		if !quiet {
			fmt.Fprintf(out, "Value for key %d: %s\n", i, v)
			fmt.Fprintf(out, "Value for key %s: %s\n", key, sv)
		}
	}

	count := 0
	for it := byInt.Begin(); !it.Done(); it.Next() {
		e := it.Entry()
		if !quiet {
			fmt.Fprintf(out, "Value for key %d: %s\n", e.Key(), e.Value())
		}
		count++
	}

	fmt.Fprintf(out, "iter count = %d\n", count)
	fmt.Fprintf(out, "Total size = %d\n", byInt.TotalSize())
	return nil
}
