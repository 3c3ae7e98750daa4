// Package logging builds the slog.Logger the analytics engine expects, from
// the logging settings in pkg/config.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/daniilmars/pm-reliability-engine/pkg/config"
)

// NewLogger returns a slog.Logger configured for the desired verbosity and
// format. The engine logs batch loads at info and per-query diagnostics at
// debug, so hosts embedding the library usually want "info" here.
func NewLogger(level string, json bool) *slog.Logger {
	handlerLevel := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		handlerLevel = slog.LevelDebug
	case "warn":
		handlerLevel = slog.LevelWarn
	case "error":
		handlerLevel = slog.LevelError
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: handlerLevel})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: handlerLevel})
	}

	return slog.New(handler).With(slog.String("component", "reliability-engine"))
}

// FromConfig builds a logger straight from the loaded logging settings.
func FromConfig(cfg config.LoggingConfig) *slog.Logger {
	return NewLogger(cfg.Level, cfg.JSON)
}
