package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/yndnr/domainmap/pkg/maperr"
)

// Logger is the logging interface used across domainmap. It satisfies
// domainmap.Logger, so any Logger can be handed to domainmap.WithLogger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
}

// Config selects level, encoding and destination.
type Config struct {
	Level     string    // debug, info, warn or error
	Format    string    // text or json
	Output    io.Writer // nil means os.Stderr
	AddSource bool
}

// DefaultConfig is what the command line starts from before reading the
// log section of its configuration.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "text", Output: os.Stderr}
}

// levels maps accepted names to slog levels. The first name listed for a
// level is the canonical one returned by GetLevel.
var levels = []struct {
	names []string
	level slog.Level
}{
	{[]string{"debug"}, slog.LevelDebug},
	{[]string{"info", ""}, slog.LevelInfo},
	{[]string{"warn", "warning"}, slog.LevelWarn},
	{[]string{"error"}, slog.LevelError},
}

// handlers builds a slog handler per accepted format name.
var handlers = map[string]func(io.Writer, *slog.HandlerOptions) slog.Handler{
	"":        func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
	"text":    func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
	"console": func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewTextHandler(w, o) },
	"json":    func(w io.Writer, o *slog.HandlerOptions) slog.Handler { return slog.NewJSONHandler(w, o) },
}

// level is shared by every logger built with New, which is what lets a
// config reload retune all of them.
var level = new(slog.LevelVar)

// ParseLevel converts a level name to a slog.Level. The empty string
// means info.
func ParseLevel(name string) (slog.Level, error) {
	name = strings.ToLower(name)
	for _, l := range levels {
		for _, n := range l.names {
			if n == name {
				return l.level, nil
			}
		}
	}
	return slog.LevelInfo, maperr.ErrInvalidArgument.WithDetailsf("log level %q", name)
}

// SetLevel changes the level of every logger built with New. On error
// the level is left unchanged.
func SetLevel(name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.Set(l)
	return nil
}

// GetLevel returns the canonical name of the current level.
func GetLevel() string {
	cur := level.Level()
	for _, l := range levels {
		if l.level == cur {
			return l.names[0]
		}
	}
	return cur.String()
}

// New builds a logger from cfg and applies cfg.Level globally.
func New(cfg Config) (Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	build, ok := handlers[strings.ToLower(cfg.Format)]
	if !ok {
		return nil, maperr.ErrInvalidArgument.WithDetailsf("log format %q", cfg.Format)
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level.Set(lvl)

	h := build(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return redactSensitive(a)
		},
	})
	return wrap(slog.New(h)), nil
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return wrap(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type slogLogger struct {
	s   *slog.Logger
	ctx context.Context
}

func wrap(s *slog.Logger) *slogLogger {
	return &slogLogger{s: s, ctx: context.Background()}
}

func (l *slogLogger) Debug(msg string, args ...any) { l.s.DebugContext(l.ctx, msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.s.InfoContext(l.ctx, msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.s.WarnContext(l.ctx, msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.s.ErrorContext(l.ctx, msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{s: l.s.With(args...), ctx: l.ctx}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	return &slogLogger{s: l.s, ctx: ctx}
}

var std atomic.Pointer[slogLogger]

func init() {
	l, _ := New(DefaultConfig())
	std.Store(l.(*slogLogger))
}

// SetDefault replaces the process-wide logger returned by Default and
// used by L when a context carries none. Loggers not built by this
// package are ignored.
func SetDefault(l Logger) {
	if sl, ok := l.(*slogLogger); ok {
		std.Store(sl)
	}
}

// Default returns the process-wide logger.
func Default() Logger {
	return std.Load()
}
