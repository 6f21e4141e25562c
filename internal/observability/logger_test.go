package observability

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]string{
		"trace":   "TRACE",
		"debug":   "DEBUG",
		"info":    "INFO",
		"warn":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
		"":        "INFO",
	}

	for input, expected := range cases {
		require.Equal(t, expected, parseLogLevel(input), "level %q", input)
	}
}

func TestNewComponentLogger(t *testing.T) {
	logger := NewComponentLogger("debug")
	require.NotNil(t, logger)
	require.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger = NewComponentLogger("error")
	require.False(t, logger.Core().Enabled(zap.InfoLevel))

	// Unknown levels fall back to info.
	logger = NewComponentLogger("bogus")
	require.True(t, logger.Core().Enabled(zap.InfoLevel))
	require.False(t, logger.Core().Enabled(zap.DebugLevel))
}
