package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, Logger{}.Level())
	assert.Equal(t, zerolog.InfoLevel, Logger{Verbose: true}.Level())
	assert.Equal(t, zerolog.DebugLevel, Logger{Debug: true}.Level())
	assert.Equal(t, zerolog.DebugLevel, Logger{Verbose: true, Debug: true}.Level())
}

func TestSetup(t *testing.T) {
	previous := log.Logger
	defer func() { log.Logger = previous }()

	var buf bytes.Buffer
	Logger{Verbose: true}.Setup(&buf)

	log.Debug().Msg("hidden")
	log.Info().Str("src", "epsg:2178").Msg("Resolved CRS")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Resolved CRS")
	assert.Contains(t, out, "src=epsg:2178")
}
