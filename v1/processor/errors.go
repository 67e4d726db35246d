package processor

import "errors"

var (
	// ErrNilExporter is returned when a processor is created without an exporter.
	ErrNilExporter = errors.New("processor: exporter is nil")

	// ErrNilLogger is returned when a processor is created without a logger.
	ErrNilLogger = errors.New("processor: logger is nil")

	// ErrExportPanic wraps a panic raised by an exporter while starting an export.
	ErrExportPanic = errors.New("processor: exporter panicked")

	// ErrNilResult is reported when an exporter returns no result handle.
	ErrNilResult = errors.New("processor: exporter returned nil result")
)
