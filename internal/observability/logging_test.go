package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/circlemud/internal/config"
)

func TestNewLogging_JSON(t *testing.T) {
	l, err := NewLogging(config.LoggingConfig{Level: "info", Format: "json"}, "TestMUD")
	require.NoError(t, err)
	assert.NotNil(t, l.Logger)
	assert.Equal(t, zapcore.InfoLevel, l.Level.Level())
}

func TestNewLogger_Console(t *testing.T) {
	logger, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"})
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	l, err := NewLogging(config.LoggingConfig{Level: "info", Format: "json"}, "TestMUD")
	require.NoError(t, err)

	require.NoError(t, l.SetLevel("debug"))
	assert.True(t, l.Logger.Core().Enabled(zapcore.DebugLevel))

	assert.Error(t, l.SetLevel("loud"))
	assert.Equal(t, zapcore.DebugLevel, l.Level.Level())
}
