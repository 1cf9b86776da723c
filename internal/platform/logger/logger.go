package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns the root structured logger. Set SCHOLARHUB_LOG_LEVEL to tune
// verbosity; anything unparseable falls back to info.
func New() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("SCHOLARHUB_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}
