// Package repl implements the interactive shell of the domainmap command.
//
// The shell owns one Map[string, string] and reads one command per line:
//
//   - repl.go: the read loop, dispatch and command logging
//   - commands.go: the command table (set, get, del, iter, stats, ...)
//   - completer.go: prefix suggestions for mistyped commands
//   - history.go: history kept in memory and persisted to a file
//
// Every session gets a ULID that tags its log lines.
package repl
