package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/domainmap/pkg/widehash"
)

// HashCommand returns the hash command.
func HashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "Print the 128-bit hash and target domain of keys",
		ArgsUsage: "KEY...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "int",
				Usage: "Hash the keys as 64-bit integers instead of strings",
			},
		},
		Action: runHash,
	}
}

// HashRow is one line of hash output.
type HashRow struct {
	Key    string    `json:"key" yaml:"key"`
	Hash   string    `json:"hash" yaml:"hash"`
	Fields [4]uint32 `json:"fields" yaml:"fields"`
	Domain int       `json:"domain" yaml:"domain"`
}

func runHash(c *cli.Context) error {
	env, err := GetEnv(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return fmt.Errorf("at least one key required")
	}

	var rows []HashRow
	if c.Bool("int") {
		rows, err = hashInts(env, c.Args().Slice())
	} else {
		rows, err = hashStrings(env, c.Args().Slice())
	}
	if err != nil {
		return err
	}
	return env.Formatter.Format(env.Out, rows)
}

func hashStrings(env *Env, keys []string) ([]HashRow, error) {
	m, err := newMap[string, struct{}](env)
	if err != nil {
		return nil, err
	}
	rows := make([]HashRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, hashRow(k, m.HashOf(k), m.DomainOf(k)))
	}
	return rows, nil
}

func hashInts(env *Env, keys []string) ([]HashRow, error) {
	m, err := newMap[int64, struct{}](env)
	if err != nil {
		return nil, err
	}
	rows := make([]HashRow, 0, len(keys))
	for _, k := range keys {
		n, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer key %q", k)
		}
		rows = append(rows, hashRow(k, m.HashOf(n), m.DomainOf(n)))
	}
	return rows, nil
}

func hashRow(key string, h widehash.Hash, domain int) HashRow {
	return HashRow{Key: key, Hash: h.String(), Fields: h.Fields(), Domain: domain}
}
