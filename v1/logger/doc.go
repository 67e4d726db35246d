// Package logger provides structured logging for trek components and acts as
// the log sink that span records are written to.
//
// The package wraps Uber's zap with the simplified call shape used across
// this module:
//
//	log.Info("exporter started", nil, map[string]interface{}{"topic": "spans"})
//	log.Warn("export could not be started", err, nil)
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: the logging contract consumed by other packages
//   - Sink interface: a Logger whose outputs can be flushed one by one
//   - LoggerClient struct: concrete implementation of both
//   - FX module: provides *LoggerClient, Logger and Sink
//
// # Handlers
//
// Every entry of Config.OutputPaths is opened with zap.Open and becomes its own
// zap core. The resulting write syncers are the logger's handlers; Handlers
// returns them so a caller such as the logging span exporter can flush each
// one and report individual failures:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "search-store",
//		OutputPaths: []string{"stderr", "/var/log/search-store/trek.log"},
//	})
//	for _, h := range log.Handlers() {
//		if err := h.Sync(); err != nil {
//			// handle
//		}
//	}
//
// Tests can capture output by passing their own write syncers to
// NewLoggerClientWithHandlers.
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info, ServiceName: "my-service"}
//		}),
//	)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug                 # Log level (debug, info, warning, error)
//	LOGGER_SERVICE_NAME=search-store       # "service" field on every entry
//	LOGGER_OUTPUT_PATHS=stderr,/tmp/a.log  # One handler per destination
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
