// Package logging builds the process logger for gnnlimit.
//
// Libraries in this module never log on their own: they accept a
// *slog.Logger through a WithLogger option and default to Discard().
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps "debug", "info", "warn", "error" (case-insensitive) to a
// slog.Level. Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a leveled logger writing to w. format "json" selects the JSON
// handler; anything else selects text.
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
