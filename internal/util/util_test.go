package util

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestValueOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ValueOrDefault(Pointer(7), 3))
	assert.Equal(t, 3, ValueOrDefault[int](nil, 3))
	assert.Equal(t, "", ValueOrDefault(Pointer(""), "fallback"), "must keep explicit zero values")
}

func TestToZerolog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lvl  LogLevel
		exp  zerolog.Level
	}{
		{"trace", TraceLevel, zerolog.TraceLevel},
		{"debug", DebugLevel, zerolog.DebugLevel},
		{"info", InfoLevel, zerolog.InfoLevel},
		{"warn", WarnLevel, zerolog.WarnLevel},
		{"error", ErrorLevel, zerolog.ErrorLevel},
		{"unknown_defaults_info", 42, zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.exp, toZerolog(tt.lvl))
		})
	}
}

func TestZerologWriter_StripsStdlogPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := zerologWriter{logger: zerolog.New(&buf), level: zerolog.InfoLevel}

	n, err := w.Write([]byte("2024/01/01 00:00:00 fuse: mounted\n"))

	assert.NoError(t, err)
	assert.Equal(t, len("2024/01/01 00:00:00 fuse: mounted\n"), n)
	assert.Contains(t, buf.String(), `"message":"mounted"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
}

// Not parallel: swaps the global logger.
func TestInitializeLogger(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	InitializeLogger(&buf, WarnLevel)
	logger := GetLogger("Test.Component")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "Test.Component")
}
