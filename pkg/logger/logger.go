// Package logger builds the structured loggers used by the command line
// tools.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", ...). Output to a terminal is rendered for humans, anything else
// as JSON lines.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Warnf adapts a zerolog logger to a printf-style warn callback.
func Warnf(logger zerolog.Logger) func(format string, args ...any) {
	return func(format string, args ...any) {
		logger.Warn().Msgf(format, args...)
	}
}
