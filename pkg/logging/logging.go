// Package logging configures structured logging for the process.
//
// Two output formats are supported: "pretty" uses tint for colored
// terminal output during development, "json" emits machine-parseable
// records for production.
//
// Usage:
//
//	logging.Setup("info", "pretty")
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog logger with the given level and format.
// Unknown values fall back to info / pretty.
func Setup(level, format string) {
	l := parseLevel(level)

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      l,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
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
