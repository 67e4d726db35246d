package processor

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/trek/v1/result"
)

// Exporter delivers finished spans to a backend without blocking the caller.
//
// Every method returns a *result.Result that completes when the backend has
// finished the operation. Implementations may do the synchronous part of the
// work (encoding, enqueueing) on the calling goroutine but must not wait for
// network round trips there.
//
//go:generate mockgen -source=exporter.go -destination=mock_exporter.go -package=processor
type Exporter interface {
	// Export hands a batch of finished spans to the backend.
	Export(spans []sdktrace.ReadOnlySpan) *result.Result

	// Flush completes once all work the backend has buffered is delivered.
	Flush() *result.Result

	// Shutdown flushes and releases the backend. Behaviour of Export after
	// Shutdown is defined by the implementation.
	Shutdown() *result.Result
}
