package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Format "json" writes one JSON object per
// line; anything else uses the human readable console writer.
func New(level, format string, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLogLevel(level))

	w := out
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()
}

// parseLogLevel falls back to info for empty or unknown levels.
func parseLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
