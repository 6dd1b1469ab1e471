// Package logger provides structured logging for articlepipe commands.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gaurav-prasanna/articlepipe/core"
)

// Logger provides structured logging functionality.
type Logger struct {
	internal *slog.Logger
	level    *slog.LevelVar
}

// NewLogger creates a logger writing text records to stderr.
func NewLogger(level string) *Logger {
	return New(os.Stderr, level)
}

// New creates a logger writing text records to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLevel(level))

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{
		internal: slog.New(handler),
		level:    lvl,
	}
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level string) {
	l.level.Set(ParseLevel(level))
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

// With creates a child logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		internal: l.internal.With(args...),
		level:    l.level,
	}
}

// Diagnostic logs a recovered render diagnostic. Rejected links are routine
// and go to debug; unknown types and missing fields are warnings.
func (l *Logger) Diagnostic(d core.Diagnostic) {
	args := []any{"kind", d.Kind.String(), "block", d.Block, "type", d.Type, "detail", d.Detail}
	if d.Kind == core.KindLinkRejected {
		l.Debug("render diagnostic", args...)
		return
	}
	l.Warn("render diagnostic", args...)
}

// HookError logs a failed post-render hook.
func (l *Logger) HookError(err error) {
	l.Warn("post-render hook failed", "error", err)
}
