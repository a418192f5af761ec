// Package logger configures the zerolog diagnostics of crsconv. Diagnostics
// go to stderr so that stdout carries nothing but the conversion result.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger holds the logging options of the command line.
type Logger struct {
	Verbose bool
	Debug   bool
}

// Level returns the level selected by the options: warn by default, info
// when verbose and debug when debugging.
func (l Logger) Level() zerolog.Level {
	switch {
	case l.Debug:
		return zerolog.DebugLevel
	case l.Verbose:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

// Setup replaces the global logger with a console logger writing to w.
func (l Logger) Setup(w io.Writer) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}).
		Level(l.Level()).
		With().
		Timestamp().
		Logger()
}
