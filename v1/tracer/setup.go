package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	traceapi "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/trek/v1/processor"
)

// Tracer owns a TracerProvider whose only span processor is the trek
// processor, so every span that ends is exported through it.
type Tracer struct {
	tracer     *trace.TracerProvider
	propagator propagation.TextMapPropagator
	name       string
}

// NewClient builds the provider around proc, installs it as the global
// tracer provider and sets the W3C trace context and baggage propagators.
// opts are applied after the trek defaults, e.g. trace.WithSampler.
func NewClient(cfg Config, proc *processor.Processor, opts ...trace.TracerProviderOption) (*Tracer, error) {
	if proc == nil {
		return nil, ErrNilProcessor
	}

	options := []trace.TracerProviderOption{
		trace.WithSpanProcessor(proc),
		trace.WithResource(newResource(cfg)),
	}
	options = append(options, opts...)
	tp := trace.NewTracerProvider(options...)

	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	return &Tracer{tracer: tp, propagator: propagator, name: cfg.ServiceName}, nil
}

func newResource(cfg Config) *resource.Resource {
	attrs := []attribute.KeyValue{semconv.ServiceName(cfg.ServiceName)}
	if cfg.AppEnv != "" {
		attrs = append(attrs,
			semconv.DeploymentEnvironment(cfg.AppEnv),
			attribute.String("environment", cfg.AppEnv),
		)
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// Provider returns the underlying TracerProvider.
func (t *Tracer) Provider() traceapi.TracerProvider {
	return t.tracer
}

// ForceFlush flushes the trek processor.
func (t *Tracer) ForceFlush(ctx context.Context) error {
	return t.tracer.ForceFlush(ctx)
}

// Shutdown shuts the provider and with it the trek processor down.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if err := t.tracer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return nil
}
