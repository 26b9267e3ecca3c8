// Package log provides the leveled logging used across the agenttools library.
//
// Library code logs sparingly and only through this package, so applications
// stay in control of the output: silence it, route it into an existing logger
// by implementing the Logger interface, or keep the golog-backed default.
//
// # Log Levels
//
// Five levels, in order of increasing severity:
//
//   - LogLevelDebug: detailed information for development
//   - LogLevelInfo: normal operation messages
//   - LogLevelWarn: situations worth attention that do not stop execution
//   - LogLevelError: failures
//   - LogLevelNone: disables all output
//
// # Example Usage
//
// ## Default Logger
//
// The package-level functions write to a golog-backed logger at warn level:
//
//	log.Warn("sheet %s is empty", name)
//
// Raise or lower the default verbosity by swapping the logger:
//
//	log.SetDefaultLogger(log.NewGologLogger(log.LogLevelDebug))
//
// ## Silencing the Library
//
//	log.SetDefaultLogger(log.NoOpLogger{})
//
// ## Reusing an Application golog
//
//	glogger := golog.New()
//	glogger.SetPrefix("[myapp] ")
//	log.SetDefaultLogger(log.WrapGolog(glogger))
//
// ## Standard Library Output
//
// NewStdLogger writes plain standard-library log lines to stderr for
// environments where golog formatting is unwanted:
//
//	log.SetDefaultLogger(log.NewStdLogger(log.LogLevelInfo))
//
// # Custom Loggers
//
// Implement the four-method Logger interface to route messages anywhere:
//
//	type slogAdapter struct{ l *slog.Logger }
//
//	func (a slogAdapter) Debug(format string, v ...any) {
//		a.l.Debug(fmt.Sprintf(format, v...))
//	}
//
// # Thread Safety
//
// The provided implementations are safe for concurrent use. Swapping the
// default logger is intended for program startup, not for concurrent
// reconfiguration.
package log
