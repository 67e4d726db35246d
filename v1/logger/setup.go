package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger.
// It provides a simplified interface to the underlying Zap logger and keeps
// track of every output it writes to, so callers can flush them one by one.
//
// LoggerClient implements the Logger and Sink interfaces.
type LoggerClient struct {
	// Zap is the underlying zap.Logger instance
	// This is exposed to allow direct access to Zap-specific functionality
	// when needed, but most logging should go through the wrapper methods.
	Zap *zap.Logger

	// handlers are the destinations behind Zap, one per output path.
	handlers []zapcore.WriteSyncer

	// closers release file handles opened for the output paths.
	closers []func()
}

// NewLoggerClient initializes and returns a new instance of the logger based on configuration.
// This function creates a configured Zap logger with appropriate encoding, log levels,
// and output destinations.
//
// Parameters:
//   - cfg: Configuration for the logger, including log level and output paths
//
// Returns:
//   - *LoggerClient: A configured logger instance ready for use
//
// The logger is configured with:
//   - JSON encoding for structured logging
//   - ISO8601 timestamp format
//   - Capital letter level encoding (e.g., "INFO", "ERROR") without color codes
//   - Process ID and service name as default fields
//   - Caller information (file and line) included in log entries
//   - One core per output path, each exposed as a handler
//
// If an output path cannot be opened, the function will call log.Fatal to terminate the application.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "my-service",
//	    OutputPaths: []string{"stderr", "/var/log/my-service/trek.log"},
//	})
//	log.Info("Application started", nil, nil)
func NewLoggerClient(cfg Config) *LoggerClient {
	paths := cfg.OutputPaths
	if len(paths) == 0 {
		paths = []string{DefaultOutputPath}
	}

	handlers := make([]zapcore.WriteSyncer, 0, len(paths))
	closers := make([]func(), 0, len(paths))
	for _, path := range paths {
		ws, closeFn, err := zap.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		if path == "stderr" || path == "stdout" {
			ws = consoleSyncer{ws}
		}
		handlers = append(handlers, ws)
		closers = append(closers, closeFn)
	}

	client := NewLoggerClientWithHandlers(cfg, handlers...)
	client.closers = closers
	return client
}

// NewLoggerClientWithHandlers builds a logger that writes every entry to each
// of the given handlers. It is useful for tests and for embedding the logger
// behind custom destinations.
func NewLoggerClientWithHandlers(cfg Config, handlers ...zapcore.WriteSyncer) *LoggerClient {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.FullCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := make([]zapcore.Core, 0, len(handlers))
	for _, h := range handlers {
		cores = append(cores, zapcore.NewCore(encoder.Clone(), h, level))
	}

	// Default to 1 if not set, which works for direct usage of this package
	callerSkip := cfg.CallerSkip
	if callerSkip <= 0 {
		callerSkip = 1
	}

	zapLogger := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddCallerSkip(callerSkip),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.Int("pid", os.Getpid()),
			zap.String("service", cfg.ServiceName),
		),
	)

	return &LoggerClient{
		Zap:      zapLogger,
		handlers: handlers,
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
