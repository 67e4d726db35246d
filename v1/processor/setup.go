package processor

import (
	"fmt"
	"sync/atomic"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/result"
)

// Logger defines the logging operations the processor needs. Begin records
// are written at Info, failed exports at Debug and exporters that could not
// start an export at Warn.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Processor is an sdktrace.SpanProcessor that logs a begin record for every
// started span and hands every finished, sampled span to its Exporter, one
// span per export.
//
// Exports are tracked until their result completes so that ForceFlush and
// Shutdown can wait for them. Nothing the exporter does, synchronously or
// asynchronously, is propagated to the code that ends spans.
//
// Processor is safe for concurrent use. OnEnd takes no locks: the pending set
// is a result.Tracker over a sync.Map and the shutdown flag an atomic.Bool.
type Processor struct {
	exporter        Exporter
	logger          Logger
	observer        observability.Observer
	exportUnsampled bool

	// pending holds the results of exports that have not completed.
	pending result.Tracker

	isShutdown atomic.Bool
}

var _ sdktrace.SpanProcessor = (*Processor)(nil)

// NewProcessor creates a Processor exporting through exporter and logging
// through logger.
//
// Example:
//
//	exp := logexporter.NewExporter(log)
//	proc, err := processor.NewProcessor(processor.Config{}, exp, log)
//	if err != nil {
//	    return err
//	}
//	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(proc))
func NewProcessor(cfg Config, exporter Exporter, logger Logger) (*Processor, error) {
	if exporter == nil {
		return nil, ErrNilExporter
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	return &Processor{
		exporter:        exporter,
		logger:          logger,
		exportUnsampled: cfg.ExportUnsampled,
	}, nil
}

// WithObserver attaches an observer that is notified once per export.
// It returns the processor for chaining and must be called before the
// processor is registered with a tracer provider.
func (p *Processor) WithObserver(observer observability.Observer) *Processor {
	p.observer = observer
	return p
}

// String describes the processor and its exporter.
func (p *Processor) String() string {
	return fmt.Sprintf("Processor{exporter=%T, exportUnsampled=%t}", p.exporter, p.exportUnsampled)
}
