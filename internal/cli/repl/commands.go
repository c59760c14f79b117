package repl

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yndnr/domainmap/internal/cli/output"
)

// defaultIterLimit caps iter output when no limit is given.
const defaultIterLimit = 50

type command struct {
	usage   string
	help    string
	minArgs int
	maxArgs int // -1: unbounded
	run     func(r *REPL, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"set":     {"set <key> <value...>", "Store a value, replacing any existing one", 2, -1, cmdSet},
		"get":     {"get <key>", "Print the value stored under a key", 1, 1, cmdGet},
		"del":     {"del <key>", "Remove a key, leaving a tombstone", 1, 1, cmdDel},
		"has":     {"has <key>", "Report whether a key is present", 1, 1, cmdHas},
		"find":    {"find <key>", "Print the (domain, index) position of a key", 1, 1, cmdFind},
		"size":    {"size [domain]", "Slot count of one domain or of all domains", 0, 1, cmdSize},
		"domain":  {"domain <key>", "Print the domain a key routes to", 1, 1, cmdDomain},
		"len":     {"len", "Number of live entries", 0, 0, cmdLen},
		"iter":    {"iter [limit]", "List live entries in iteration order", 0, 1, cmdIter},
		"free":    {"free", "List tombstoned slots, most recent first", 0, 0, cmdFree},
		"stats":   {"stats", "Per-domain slot distribution", 0, 0, cmdStats},
		"metrics": {"metrics", "Print metrics in Prometheus text format", 0, 0, cmdMetrics},
		"hash":    {"hash <key>", "Print the 128-bit hash of a key", 1, 1, cmdHash},
		"clear":   {"clear", "Remove every entry", 0, 0, cmdClear},
		"history": {"history [n]", "Show recent commands", 0, 1, cmdHistory},
		"help":    {"help [command]", "Show help", 0, 1, cmdHelp},
		"exit":    {"exit", "Leave the shell", 0, 0, cmdExit},
		"quit":    {"quit", "Leave the shell", 0, 0, cmdExit},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cmdSet(r *REPL, args []string) error {
	r.m.Set(args[0], strings.Join(args[1:], " "))
	r.printf("OK\n")
	return nil
}

func cmdGet(r *REPL, args []string) error {
	v, err := r.m.Get(args[0])
	if err != nil {
		return err
	}
	r.printf("%s\n", v)
	return nil
}

func cmdDel(r *REPL, args []string) error {
	if r.m.Remove(args[0]) {
		r.printf("(removed)\n")
	} else {
		r.printf("(not found)\n")
	}
	return nil
}

func cmdHas(r *REPL, args []string) error {
	r.printf("%t\n", r.m.Contains(args[0]))
	return nil
}

func cmdFind(r *REPL, args []string) error {
	it := r.m.Find(args[0])
	if it.Done() {
		r.printf("(end)\n")
		return nil
	}
	d, i := it.Position()
	r.printf("domain %d index %d\n", d, i)
	return nil
}

func cmdSize(r *REPL, args []string) error {
	if len(args) == 0 {
		r.printf("%d\n", r.m.TotalSize())
		return nil
	}
	d, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid domain %q", args[0])
	}
	n, err := r.m.DomainSize(d)
	if err != nil {
		return err
	}
	r.printf("%d\n", n)
	return nil
}

func cmdDomain(r *REPL, args []string) error {
	r.printf("%d\n", r.m.DomainOf(args[0]))
	return nil
}

func cmdLen(r *REPL, _ []string) error {
	r.printf("%d\n", r.m.Len())
	return nil
}

type iterRow struct {
	Domain int    `json:"domain"`
	Index  int    `json:"index"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func cmdIter(r *REPL, args []string) error {
	limit := defaultIterLimit
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = n
	}

	var rows []iterRow
	for it := r.m.Begin(); !it.Done() && len(rows) < limit; it.Next() {
		e := it.Entry()
		d, i := it.Position()
		rows = append(rows, iterRow{Domain: d, Index: i, Key: e.Key(), Value: e.Value()})
	}
	if len(rows) == 0 {
		r.printf("(empty)\n")
		return nil
	}
	if err := r.format(rows); err != nil {
		return err
	}
	if rest := r.m.Len() - len(rows); rest > 0 {
		r.printf("... %d more\n", rest)
	}
	return nil
}

func cmdFree(r *REPL, _ []string) error {
	slots := r.m.FreeSlots()
	if len(slots) == 0 {
		r.printf("(none)\n")
		return nil
	}
	return r.format(slots)
}

func cmdStats(r *REPL, _ []string) error {
	return r.format(r.m.Stats())
}

func cmdMetrics(r *REPL, _ []string) error {
	if r.metrics == nil {
		return errors.New("metrics are not enabled")
	}
	return r.metrics.WriteText(r.output)
}

type hashInfo struct {
	Key    string    `json:"key"`
	Hash   string    `json:"hash"`
	Fields [4]uint32 `json:"fields"`
	Domain int       `json:"domain"`
}

func cmdHash(r *REPL, args []string) error {
	h := r.m.HashOf(args[0])
	return r.format(hashInfo{
		Key:    args[0],
		Hash:   h.String(),
		Fields: h.Fields(),
		Domain: r.m.DomainOf(args[0]),
	})
}

func cmdClear(r *REPL, _ []string) error {
	r.m.Clear()
	r.printf("OK\n")
	return nil
}

func cmdHistory(r *REPL, args []string) error {
	n := r.history.Len()
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		n = min(v, n)
	}
	entries := r.history.Entries()
	for i := len(entries) - n; i < len(entries); i++ {
		r.printf("%5d  %s\n", i+1, entries[i])
	}
	return nil
}

func cmdHelp(r *REPL, args []string) error {
	if len(args) == 1 {
		cmd, ok := commands[strings.ToLower(args[0])]
		if !ok {
			return fmt.Errorf("unknown command %q", args[0])
		}
		r.printf("%s\n  %s\n", cmd.usage, cmd.help)
		return nil
	}

	table := output.NewTable("COMMAND", "DESCRIPTION")
	for _, name := range commandNames() {
		if name == "quit" {
			continue
		}
		cmd := commands[name]
		table.AddRow(cmd.usage, cmd.help)
	}
	return table.Render(r.output)
}

func cmdExit(_ *REPL, _ []string) error {
	return errExit
}

