package tracer

import "errors"

var (
	// ErrUnknownExporter is returned for an unsupported Config.Exporter.
	ErrUnknownExporter = errors.New("tracer: unknown exporter")

	// ErrNilProcessor is returned when NewClient gets no processor.
	ErrNilProcessor = errors.New("tracer: processor is required")
)
