package log

import (
	stdlog "log"
	"os"
)

// LogLevel controls which messages a logger emits.
type LogLevel int

const (
	// LogLevelDebug emits everything.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo emits info, warnings and errors.
	LogLevelInfo
	// LogLevelWarn emits warnings and errors.
	LogLevelWarn
	// LogLevelError emits errors only.
	LogLevelError
	// LogLevelNone disables logging.
	LogLevelNone
)

// Logger is the minimal leveled logging interface the library writes to.
// All methods take Printf-style format strings.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// StdLogger is a Logger backed by the standard library log package.
type StdLogger struct {
	logger *stdlog.Logger
	level  LogLevel
}

var _ Logger = (*StdLogger)(nil)

// NewStdLogger creates a stderr logger at the given level.
func NewStdLogger(level LogLevel) *StdLogger {
	return &StdLogger{
		logger: stdlog.New(os.Stderr, "[agenttools] ", stdlog.LstdFlags),
		level:  level,
	}
}

// Debug logs a debug message.
func (l *StdLogger) Debug(format string, v ...any) {
	if l.level <= LogLevelDebug {
		l.logger.Printf("DEBUG "+format, v...)
	}
}

// Info logs an informational message.
func (l *StdLogger) Info(format string, v ...any) {
	if l.level <= LogLevelInfo {
		l.logger.Printf("INFO "+format, v...)
	}
}

// Warn logs a warning message.
func (l *StdLogger) Warn(format string, v ...any) {
	if l.level <= LogLevelWarn {
		l.logger.Printf("WARN "+format, v...)
	}
}

// Error logs an error message.
func (l *StdLogger) Error(format string, v ...any) {
	if l.level <= LogLevelError {
		l.logger.Printf("ERROR "+format, v...)
	}
}

// SetLevel sets the logger level.
func (l *StdLogger) SetLevel(level LogLevel) {
	l.level = level
}

// NoOpLogger discards all messages.
type NoOpLogger struct{}

var _ Logger = (*NoOpLogger)(nil)

// Debug does nothing.
func (NoOpLogger) Debug(format string, v ...any) {}

// Info does nothing.
func (NoOpLogger) Info(format string, v ...any) {}

// Warn does nothing.
func (NoOpLogger) Warn(format string, v ...any) {}

// Error does nothing.
func (NoOpLogger) Error(format string, v ...any) {}

var defaultLogger Logger = NewGologLogger(LogLevelWarn)

// SetDefaultLogger replaces the logger used by the package-level functions.
func SetDefaultLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

// DefaultLogger returns the logger used by the package-level functions.
func DefaultLogger() Logger {
	return defaultLogger
}

// Debug logs a debug message to the default logger.
func Debug(format string, v ...any) {
	defaultLogger.Debug(format, v...)
}

// Info logs an informational message to the default logger.
func Info(format string, v ...any) {
	defaultLogger.Info(format, v...)
}

// Warn logs a warning message to the default logger.
func Warn(format string, v ...any) {
	defaultLogger.Warn(format, v...)
}

// Error logs an error message to the default logger.
func Error(format string, v ...any) {
	defaultLogger.Error(format, v...)
}
