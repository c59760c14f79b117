package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Attribute keys containing one of these are redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
	"auth",
	"bearer",
	"apikey",
	"api_key",
}

const redactedValue = "***REDACTED***"

// MaxValueLen bounds the length of string attributes. Longer values are
// cut and annotated with their original size.
const MaxValueLen = 256

// redactSensitive redacts string attributes with sensitive key names and
// truncates oversized ones. Groups are walked recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if s != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if len(s) > MaxValueLen {
			return slog.String(a.Key, Truncate(s, MaxValueLen))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// Truncate cuts s to at most n bytes of content followed by a size note.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s...(%d bytes)", s[:n], len(s))
}

// Mask hides the middle of a value, keeping three characters at each end.
// Short values are hidden entirely.
func Mask(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}

// IsSensitiveKey reports whether a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
