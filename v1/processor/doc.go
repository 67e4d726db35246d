// Package processor implements the span lifecycle processor: an
// OpenTelemetry sdktrace.SpanProcessor that writes a correlatable begin record
// when a span starts and exports every finished span on its own, without
// waiting for the export to complete.
//
// # Lifecycle of a span
//
//	STARTED ──OnEnd──▶ filtered out (unsampled, or processor shut down)
//	   │
//	   └──OnEnd──▶ EXPORTING ──Export returns──▶ TRACKED ──result completes──▶ COMPLETED
//
// There is no retry: a failed export is logged at debug level and the span is
// lost. An exporter that panics while starting an export is logged at warn
// level and nothing is tracked.
//
// # Exporters
//
// Exporter is an asynchronous contract: Export, Flush and Shutdown return a
// *result.Result instead of blocking. Backends in this module (logexporter,
// kafka, rabbit, minio, postgres) implement it directly; any synchronous
// OpenTelemetry exporter can be adapted with FromSpanExporter, and several
// exporters can be combined with Tee.
//
// # Basic Usage
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info})
//	proc, err := processor.NewProcessor(processor.Config{}, logexporter.NewExporter(log), log)
//	if err != nil {
//		return err
//	}
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(proc))
//	defer tp.Shutdown(ctx) // flushes pending exports, then shuts the exporter down
//
// # Flush and Shutdown
//
// ForceFlush waits for the exports that were pending when it was called.
// Shutdown runs exactly once: it stops admitting exports, flushes, shuts the
// exporter down and fails if either step failed. Concurrent and later calls
// return success immediately.
//
// # Thread Safety
//
// All methods are safe for concurrent use. OnStart and OnEnd never block on
// export completion and take no locks.
package processor
