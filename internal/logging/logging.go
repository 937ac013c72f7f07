// ABOUTME: Structured logging setup on log/slog for the CLI and MCP server.
// ABOUTME: Builds a text or JSON handler at the configured level and installs it as default.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultLevel keeps routine CLI runs quiet.
const DefaultLevel = slog.LevelWarn

// ParseLevel maps debug|info|warn|error to a slog level. Empty selects
// DefaultLevel; anything unrecognized selects info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLevel
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

// New returns a logger writing to w. format is "json" or anything else for text.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Setup builds a logger from string settings and installs it as the slog default.
func Setup(level, format string, w io.Writer) *slog.Logger {
	logger := New(w, ParseLevel(level), format)
	slog.SetDefault(logger)
	return logger
}
