package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/domainmap/internal/cli/output"
	"github.com/yndnr/domainmap/internal/telemetry/logger"
	"github.com/yndnr/domainmap/internal/telemetry/metric"
	"github.com/yndnr/domainmap/pkg/domainmap"
)

// DefaultPrompt is printed before each line when no prompt is configured.
const DefaultPrompt = "domainmap> "

// errExit ends the loop without reporting an error.
var errExit = errors.New("exit")

// REPL is a read-eval-print loop over one string map.
type REPL struct {
	m         *domainmap.Map[string, string]
	input     io.Reader
	output    io.Writer
	prompt    string
	completer *Completer
	history   *History
	formatter output.Formatter
	metrics   *metric.Registry
	logger    logger.Logger
	sessionID string
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithPrompt sets the prompt string.
func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// WithHistory sets the history store. Without it history is kept in
// memory only.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithFormatter sets how tabular results are printed.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) {
		r.formatter = f
	}
}

// WithMetrics counts executed commands in reg and lets the metrics
// command print it. The map must already be registered with reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(r *REPL) {
		r.metrics = reg
	}
}

// WithLogger sets the logger for command events.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) {
		r.logger = l
	}
}

// New creates a shell over m.
func New(m *domainmap.Map[string, string], opts ...Option) *REPL {
	r := &REPL{
		m:         m,
		input:     os.Stdin,
		output:    os.Stdout,
		prompt:    DefaultPrompt,
		completer: NewCompleter(commandNames()),
		history:   NewHistory("", DefaultHistorySize),
		formatter: &output.TableFormatter{},
		logger:    logger.Default(),
		sessionID: ulid.Make().String(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionID returns the ULID identifying this shell session in logs.
func (r *REPL) SessionID() string {
	return r.sessionID
}

// Run reads commands until EOF, exit or ctx is cancelled. History is
// loaded before the first prompt and saved on return.
func (r *REPL) Run(ctx context.Context) error {
	ctx = logger.WithLogger(ctx, r.logger)
	ctx = logger.WithSessionID(ctx, r.sessionID)
	ctx = logger.WithCommand(ctx, "shell")
	log := logger.L(ctx)

	if err := r.history.Load(); err != nil {
		log.Warn("failed to load history", "error", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			log.Warn("failed to save history", "error", err)
		}
	}()

	log.Debug("shell started", "domains", r.m.Domains())

	scanner := bufio.NewScanner(r.input)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.output, r.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.output)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.history.Add(line)

		err := r.Execute(ctx, line)
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

// Execute runs one command line.
func (r *REPL) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	cmd, ok := commands[name]
	if !ok {
		if s := r.completer.Complete(name); len(s) > 0 {
			return fmt.Errorf("unknown command %q, did you mean: %s", name, strings.Join(s, ", "))
		}
		return fmt.Errorf("unknown command %q, type help for a list", name)
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return fmt.Errorf("usage: %s", cmd.usage)
	}

	err := cmd.run(r, args)
	if r.metrics != nil && !errors.Is(err, errExit) {
		r.metrics.ObserveCommand(name, err)
	}
	r.logCommand(ctx, name, args, err)
	return err
}

func (r *REPL) logCommand(ctx context.Context, name string, args []string, err error) {
	if errors.Is(err, errExit) {
		return
	}
	attrs := []any{"op", name}
	if len(args) > 0 {
		attrs = append(attrs, "key", args[0])
	}
	if name == "set" && len(args) > 1 {
		value := strings.Join(args[1:], " ")
		if logger.IsSensitiveKey(args[0]) {
			value = logger.Mask(value)
		}
		attrs = append(attrs, "value", value)
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	ctx = logger.WithSessionID(logger.WithLogger(ctx, r.logger), r.sessionID)
	logger.L(ctx).Debug("shell command", attrs...)
}

func (r *REPL) printf(format string, args ...any) {
	fmt.Fprintf(r.output, format, args...)
}

func (r *REPL) format(data any) error {
	return r.formatter.Format(r.output, data)
}
