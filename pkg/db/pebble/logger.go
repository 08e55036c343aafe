package pebble

import (
	"github.com/rs/zerolog"

	"github.com/eigerco/ldb/pkg/log"
)

// logger routes pebble's internal log lines to the engine logger.
type logger struct {
	zerolog.Logger
}

func newLogger(path string) logger {
	return logger{log.Engine.With().Str("engine", "pebble").Str("path", path).Logger()}
}

func (l logger) Infof(format string, args ...interface{}) {
	l.Debug().Msgf(format, args...)
}

func (l logger) Errorf(format string, args ...interface{}) {
	l.Error().Msgf(format, args...)
}

func (l logger) Fatalf(format string, args ...interface{}) {
	l.Fatal().Msgf(format, args...)
}
