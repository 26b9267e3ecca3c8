package log

import (
	"testing"

	"github.com/kataras/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGologLogger(t *testing.T) {
	logger := NewGologLogger(LogLevelDebug)
	require.NotNil(t, logger)

	// Logging at every level should not panic.
	logger.Debug("debug: %s", "value")
	logger.Info("info: %d", 42)
	logger.Warn("warn: %v", map[string]string{"key": "value"})
	logger.Error("error: %f", 3.14)
}

func TestGologLogger_SetLevel(t *testing.T) {
	logger := NewGologLogger(LogLevelError)

	// Filtered levels must not panic either.
	logger.Debug("filtered")
	logger.Info("filtered")

	logger.SetLevel(LogLevelNone)
	logger.Error("filtered too")
}

func TestWrapGolog(t *testing.T) {
	glogger := golog.New()
	glogger.SetLevel("error")
	glogger.SetPrefix("[custom] ")

	logger := WrapGolog(glogger)
	require.NotNil(t, logger)
	logger.Info("suppressed by the wrapped logger level")
	logger.Error("visible")
}

func TestStdLogger_LevelFiltering(t *testing.T) {
	logger := NewStdLogger(LogLevelWarn)
	require.NotNil(t, logger)

	logger.Debug("filtered")
	logger.Info("filtered")
	logger.Warn("logged")
	logger.Error("logged")

	logger.SetLevel(LogLevelDebug)
	logger.Debug("now logged")
}

func TestNoOpLogger(t *testing.T) {
	var logger Logger = NoOpLogger{}
	logger.Debug("ignored")
	logger.Info("ignored")
	logger.Warn("ignored")
	logger.Error("ignored")
}

func TestDefaultLogger(t *testing.T) {
	original := DefaultLogger()
	defer SetDefaultLogger(original)

	SetDefaultLogger(NoOpLogger{})
	assert.Equal(t, NoOpLogger{}, DefaultLogger())

	// Package-level functions route to the configured logger.
	Debug("ignored")
	Info("ignored")
	Warn("ignored")
	Error("ignored")

	// A nil logger must not replace the current one.
	SetDefaultLogger(nil)
	assert.Equal(t, NoOpLogger{}, DefaultLogger())
}
