package processor

import (
	"context"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/trek/v1/result"
)

// DefaultExportTimeout bounds each call into a wrapped sdktrace.SpanExporter.
const DefaultExportTimeout = 30 * time.Second

// spanExporterAdapter runs a synchronous sdktrace.SpanExporter on background
// goroutines. Calls into the wrapped exporter are serialised because the
// OpenTelemetry contract does not require exporters to be safe for
// concurrent use.
type spanExporterAdapter struct {
	exporter sdktrace.SpanExporter
	timeout  time.Duration

	mu       sync.Mutex
	inflight result.Tracker
}

// FromSpanExporter adapts an OpenTelemetry SpanExporter, such as the OTLP or
// stdout exporters, to the Exporter interface. Each call gets its own context
// with the given timeout; a non-positive timeout selects DefaultExportTimeout.
func FromSpanExporter(exporter sdktrace.SpanExporter, timeout time.Duration) Exporter {
	if timeout <= 0 {
		timeout = DefaultExportTimeout
	}
	return &spanExporterAdapter{exporter: exporter, timeout: timeout}
}

func (a *spanExporterAdapter) Export(spans []sdktrace.ReadOnlySpan) *result.Result {
	return a.inflight.Track(result.Go(func() error {
		return a.call(func(ctx context.Context) error {
			return a.exporter.ExportSpans(ctx, spans)
		})
	}))
}

// Flush completes once the exports already handed to the wrapped exporter
// have returned.
func (a *spanExporterAdapter) Flush() *result.Result {
	return a.inflight.Settled()
}

func (a *spanExporterAdapter) Shutdown() *result.Result {
	return result.Then(a.Flush(), func() *result.Result {
		return result.Go(func() error { return a.call(a.exporter.Shutdown) })
	})
}

func (a *spanExporterAdapter) call(fn func(ctx context.Context) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	return fn(ctx)
}
