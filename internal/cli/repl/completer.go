package repl

import (
	"sort"
	"strings"
)

// Completer suggests command names for a typed prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the given command names.
func NewCompleter(commands []string) *Completer {
	sorted := append([]string(nil), commands...)
	sort.Strings(sorted)
	return &Completer{commands: sorted}
}

// Complete returns the commands starting with prefix, in sorted order.
// An empty prefix matches nothing.
func (c *Completer) Complete(prefix string) []string {
	if prefix == "" {
		return nil
	}
	prefix = strings.ToLower(prefix)

	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
