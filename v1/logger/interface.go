package logger

import "go.uber.org/zap/zapcore"

// Logger provides a high-level interface for structured logging.
//
// This interface is implemented by the concrete *LoggerClient type.
type Logger interface {
	// Debug logs a debug-level message, useful for development and troubleshooting.
	Debug(msg string, err error, fields ...map[string]interface{})

	// Info logs an informational message about general application progress.
	Info(msg string, err error, fields ...map[string]interface{})

	// Warn logs a warning message, indicating potential issues.
	Warn(msg string, err error, fields ...map[string]interface{})

	// Error logs an error message with details of the error.
	Error(msg string, err error, fields ...map[string]interface{})

	// Fatal logs a critical error message and terminates the application.
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Sink is a Logger whose output destinations can be flushed individually.
type Sink interface {
	Logger

	// Handlers returns the write syncers entries are written to.
	Handlers() []zapcore.WriteSyncer
}
