// Package logger provides structured logging for domainmap tools.
//
// Files:
//
//   - logger.go: slog-backed Logger, level handling and the default logger
//   - context.go: context propagation of the logger, session ID and command
//   - redact.go: redaction of sensitive attributes and oversized values
//
// Attributes whose key looks like a credential are replaced before they
// reach the handler. The shell applies the same test to map keys and logs
// Mask(value) for keys such as "db_password".
package logger
