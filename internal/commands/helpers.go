package commands

import (
	"io"

	"github.com/rs/zerolog"

	"performate/internal/config"
	"performate/internal/logging"
)

// newLogger builds the diagnostic logger for a command run.
func newLogger(cfg *config.Config, errOut io.Writer) zerolog.Logger {
	return logging.New(errOut, cfg.Debug)
}
