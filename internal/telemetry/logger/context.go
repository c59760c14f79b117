package logger

import "context"

type contextKey string

const (
	loggerKey    contextKey = "domainmap.logger"
	sessionIDKey contextKey = "domainmap.session_id"
	commandKey   contextKey = "domainmap.command"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithSessionID tags the context with a shell session ID.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the shell session ID from context.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithCommand tags the context with the name of the running command.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// CommandFromContext extracts the command name from context.
func CommandFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// L returns the context's logger enriched with the session ID and command
// name carried by ctx.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)

	if id := SessionIDFromContext(ctx); id != "" {
		l = l.With("session_id", id)
	}
	if name := CommandFromContext(ctx); name != "" {
		l = l.With("command", name)
	}

	return l.WithContext(ctx)
}
