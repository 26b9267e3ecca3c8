package log

import (
	"github.com/kataras/golog"
)

// GologLogger is a Logger backed by kataras/golog.
type GologLogger struct {
	logger *golog.Logger
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger creates a golog-backed logger at the given level.
func NewGologLogger(level LogLevel) *GologLogger {
	logger := golog.New()
	logger.SetPrefix("[agenttools] ")
	l := &GologLogger{logger: logger}
	l.SetLevel(level)
	return l
}

// WrapGolog wraps an existing golog.Logger. The caller keeps control of its
// level and output.
func WrapGolog(logger *golog.Logger) *GologLogger {
	return &GologLogger{logger: logger}
}

// Debug logs a debug message.
func (l *GologLogger) Debug(format string, v ...any) {
	l.logger.Debugf(format, v...)
}

// Info logs an informational message.
func (l *GologLogger) Info(format string, v ...any) {
	l.logger.Infof(format, v...)
}

// Warn logs a warning message.
func (l *GologLogger) Warn(format string, v ...any) {
	l.logger.Warnf(format, v...)
}

// Error logs an error message.
func (l *GologLogger) Error(format string, v ...any) {
	l.logger.Errorf(format, v...)
}

// SetLevel sets the underlying golog level.
func (l *GologLogger) SetLevel(level LogLevel) {
	switch level {
	case LogLevelDebug:
		l.logger.SetLevel("debug")
	case LogLevelInfo:
		l.logger.SetLevel("info")
	case LogLevelWarn:
		l.logger.SetLevel("warn")
	case LogLevelError:
		l.logger.SetLevel("error")
	case LogLevelNone:
		l.logger.SetLevel("disable")
	}
}
