package processor

import (
	"context"
	"fmt"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/multierr"

	"github.com/Aleph-Alpha/trek/v1/result"
	"github.com/Aleph-Alpha/trek/v1/spanformat"
)

// OnStart writes the begin record of s. It never fails and never panics.
func (p *Processor) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	contain(func() { p.logger.Info(spanformat.FormatBegin(s), nil) })
}

// StartRequired reports that OnStart must be invoked for every span.
func (p *Processor) StartRequired() bool {
	return true
}

// EndRequired reports that OnEnd must be invoked for every span.
func (p *Processor) EndRequired() bool {
	return true
}

// OnEnd exports s as a single-span batch unless the processor is shut down or
// s is unsampled and the sampling filter is enabled.
func (p *Processor) OnEnd(s sdktrace.ReadOnlySpan) {
	if p.isShutdown.Load() {
		return
	}
	if !p.exportUnsampled && !s.SpanContext().IsSampled() {
		return
	}

	start := time.Now()
	res, err := p.startExport(s)
	if err != nil {
		contain(func() { p.logger.Warn("exporter failed to start export", err, spanFields(s)) })
		contain(func() { p.observeExport(s, time.Since(start), err) })
		return
	}

	// Track removes res before the continuation below runs.
	p.pending.Track(res).WhenComplete(func() {
		err := res.Err()
		if err != nil {
			contain(func() { p.logger.Debug("exporter failed", err, spanFields(s)) })
		}
		contain(func() { p.observeExport(s, time.Since(start), err) })
	})
}

// contain runs fn and discards any panic, so that a broken log sink or
// observer never reaches the code that starts or ends spans.
func contain(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func (p *Processor) startExport(s sdktrace.ReadOnlySpan) (res *result.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrExportPanic, r)
		}
	}()

	res = p.exporter.Export([]sdktrace.ReadOnlySpan{s})
	if res == nil {
		return nil, ErrNilResult
	}
	return res, nil
}

// PendingExports returns the number of exports that have not completed yet.
func (p *Processor) PendingExports() int {
	return p.pending.Len()
}

// ForceFlushAsync returns a result that completes when every export pending
// at the time of the call has completed. Exports started afterwards are not
// waited for. It fails if any of those exports failed.
func (p *Processor) ForceFlushAsync() *result.Result {
	return result.All(p.pending.Snapshot()...)
}

// ForceFlush waits for ForceFlushAsync or for ctx to end.
func (p *Processor) ForceFlush(ctx context.Context) error {
	return p.ForceFlushAsync().Wait(ctx)
}

// ShutdownAsync stops admitting exports, waits for pending exports and then
// shuts the exporter down. Only the first call does this work; every later
// call returns an already successful result.
//
// Spans ending concurrently with the first call may be exported after the
// flush snapshot was taken; those are not waited for.
func (p *Processor) ShutdownAsync() *result.Result {
	if !p.isShutdown.CompareAndSwap(false, true) {
		return result.Success()
	}

	out := result.New()
	flushed := p.ForceFlushAsync()
	flushed.WhenComplete(func() {
		stopped := p.shutdownExporter()
		stopped.WhenComplete(func() {
			if err := multierr.Combine(flushed.Err(), stopped.Err()); err != nil {
				out.Fail(err)
				return
			}
			out.Succeed()
		})
	})
	return out
}

// Shutdown waits for ShutdownAsync or for ctx to end.
func (p *Processor) Shutdown(ctx context.Context) error {
	return p.ShutdownAsync().Wait(ctx)
}

func (p *Processor) shutdownExporter() (res *result.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = result.Failure(fmt.Errorf("%w: %v", ErrExportPanic, r))
		}
	}()

	res = p.exporter.Shutdown()
	if res == nil {
		return result.Failure(ErrNilResult)
	}
	return res
}

func spanFields(s sdktrace.ReadOnlySpan) map[string]interface{} {
	sc := s.SpanContext()
	return map[string]interface{}{
		"span_name": s.Name(),
		"trace_id":  sc.TraceID().String(),
		"span_id":   sc.SpanID().String(),
	}
}
