// Package logging configures the zerolog diagnostic channel. Silent
// background failures land here instead of in front of the user.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a logger writing human-readable lines to w. Debug raises
// the level from warn to debug.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() zerolog.Logger {
	return zerolog.New(io.Discard)
}
