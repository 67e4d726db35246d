package logexporter

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/processor"
	"github.com/Aleph-Alpha/trek/v1/result"
	"github.com/Aleph-Alpha/trek/v1/spanformat"
)

// Exporter logs end records to a logger.Sink.
type Exporter struct {
	sink logger.Sink
}

var _ processor.Exporter = (*Exporter)(nil)

// NewExporter creates an Exporter writing to sink.
func NewExporter(sink logger.Sink) *Exporter {
	return &Exporter{sink: sink}
}

// Export logs the end record of every span at Info and reports success. It
// keeps logging after Shutdown.
func (e *Exporter) Export(spans []sdktrace.ReadOnlySpan) *result.Result {
	for _, s := range spans {
		e.sink.Info(spanformat.FormatEnd(s), nil)
	}
	return result.Success()
}

// Flush syncs every handler of the sink. A failing handler does not stop the
// remaining ones from being synced; the result fails with all collected errors.
func (e *Exporter) Flush() *result.Result {
	var errs error
	for i, h := range e.sink.Handlers() {
		if err := syncHandler(h); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("handler %d: %w", i, err))
		}
	}
	if errs != nil {
		return result.Failure(errs)
	}
	return result.Success()
}

// Shutdown flushes the sink. The sink itself stays open; its owner closes it.
func (e *Exporter) Shutdown() *result.Result {
	return e.Flush()
}

func syncHandler(h zapcore.WriteSyncer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return h.Sync()
}
