package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceapi "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/trek/v1/spanformat"
)

// StartSpan starts a span and marks the start of the timed region with a
// BEGIN event, from which the exporters compute the elapsed time.
func (t *Tracer) StartSpan(ctx context.Context, name string, opts ...traceapi.SpanStartOption) (context.Context, traceapi.Span) {
	ctx, span := t.tracer.Tracer(t.name).Start(ctx, name, opts...)
	MarkBegin(span)
	return ctx, span
}

// MarkBegin adds a BEGIN event to span at the current time. Only the first
// BEGIN event of a span is used.
func MarkBegin(span traceapi.Span) {
	span.AddEvent(spanformat.BeginEventName)
}

// RecordErrorOnSpan records err on span and sets the span status to Error.
func (t *Tracer) RecordErrorOnSpan(span traceapi.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes converts attrs to OTel attributes. Unsupported value types are
// stored with their fmt.Sprint form.
func (t *Tracer) SetAttributes(span traceapi.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}
	span.SetAttributes(attributes...)
}

// GetCarrier injects the span context of ctx into a map, for example to
// pass it in message headers.
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	t.propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext extracts a span context injected by GetCarrier.
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return t.propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
