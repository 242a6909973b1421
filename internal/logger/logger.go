// Package logger configures the application-wide zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stdout. In dev the console writer is
// used for readability; elsewhere plain JSON lines are emitted for log
// shippers.
func New(env string) zerolog.Logger {
	if env == "dev" {
		cw := zerolog.ConsoleWriter{Out: os.Stdout}
		return zerolog.New(cw).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
