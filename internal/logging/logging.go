// Package logging sets up the structured logger shared by the command
// line tools.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console logger at the given level. Unknown levels fall
// back to info.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
