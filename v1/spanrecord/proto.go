package spanrecord

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
)

// ToTracesData wraps s in an OTLP TracesData message with its resource and
// instrumentation scope.
func ToTracesData(s sdktrace.ReadOnlySpan) *tracepb.TracesData {
	rs := &tracepb.ResourceSpans{
		ScopeSpans: []*tracepb.ScopeSpans{{
			Scope: &commonpb.InstrumentationScope{
				Name:    s.InstrumentationScope().Name,
				Version: s.InstrumentationScope().Version,
			},
			SchemaUrl: s.InstrumentationScope().SchemaURL,
			Spans:     []*tracepb.Span{ToProto(s)},
		}},
	}
	if res := s.Resource(); res != nil {
		rs.Resource = &resourcepb.Resource{Attributes: keyValues(res.Attributes())}
		rs.SchemaUrl = res.SchemaURL()
	}
	return &tracepb.TracesData{ResourceSpans: []*tracepb.ResourceSpans{rs}}
}

// ToProto converts s into an OTLP span.
func ToProto(s sdktrace.ReadOnlySpan) *tracepb.Span {
	sc := s.SpanContext()
	traceID := sc.TraceID()
	spanID := sc.SpanID()

	ps := &tracepb.Span{
		TraceId:                traceID[:],
		SpanId:                 spanID[:],
		TraceState:             sc.TraceState().String(),
		Flags:                  uint32(sc.TraceFlags()),
		Name:                   s.Name(),
		Kind:                   spanKind(s.SpanKind()),
		StartTimeUnixNano:      unixNano(s.StartTime().UnixNano()),
		Attributes:             keyValues(s.Attributes()),
		DroppedAttributesCount: uint32(s.DroppedAttributes()),
		DroppedEventsCount:     uint32(s.DroppedEvents()),
		DroppedLinksCount:      uint32(s.DroppedLinks()),
		Status: &tracepb.Status{
			Code:    statusCode(s.Status().Code),
			Message: s.Status().Description,
		},
	}
	if end := s.EndTime(); !end.IsZero() {
		ps.EndTimeUnixNano = unixNano(end.UnixNano())
	}
	if parent := s.Parent(); parent.HasSpanID() {
		parentID := parent.SpanID()
		ps.ParentSpanId = parentID[:]
	}
	for _, ev := range s.Events() {
		ps.Events = append(ps.Events, &tracepb.Span_Event{
			Name:                   ev.Name,
			TimeUnixNano:           unixNano(ev.Time.UnixNano()),
			Attributes:             keyValues(ev.Attributes),
			DroppedAttributesCount: uint32(ev.DroppedAttributeCount),
		})
	}
	for _, l := range s.Links() {
		linkTrace := l.SpanContext.TraceID()
		linkSpan := l.SpanContext.SpanID()
		ps.Links = append(ps.Links, &tracepb.Span_Link{
			TraceId:                linkTrace[:],
			SpanId:                 linkSpan[:],
			TraceState:             l.SpanContext.TraceState().String(),
			Attributes:             keyValues(l.Attributes),
			DroppedAttributesCount: uint32(l.DroppedAttributeCount),
		})
	}
	return ps
}

func unixNano(ns int64) uint64 {
	if ns < 0 {
		return 0
	}
	return uint64(ns)
}

func spanKind(k trace.SpanKind) tracepb.Span_SpanKind {
	switch k {
	case trace.SpanKindInternal:
		return tracepb.Span_SPAN_KIND_INTERNAL
	case trace.SpanKindServer:
		return tracepb.Span_SPAN_KIND_SERVER
	case trace.SpanKindClient:
		return tracepb.Span_SPAN_KIND_CLIENT
	case trace.SpanKindProducer:
		return tracepb.Span_SPAN_KIND_PRODUCER
	case trace.SpanKindConsumer:
		return tracepb.Span_SPAN_KIND_CONSUMER
	default:
		return tracepb.Span_SPAN_KIND_UNSPECIFIED
	}
}

func statusCode(c codes.Code) tracepb.Status_StatusCode {
	switch c {
	case codes.Ok:
		return tracepb.Status_STATUS_CODE_OK
	case codes.Error:
		return tracepb.Status_STATUS_CODE_ERROR
	default:
		return tracepb.Status_STATUS_CODE_UNSET
	}
}

func keyValues(attrs []attribute.KeyValue) []*commonpb.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]*commonpb.KeyValue, 0, len(attrs))
	for _, kv := range attrs {
		out = append(out, &commonpb.KeyValue{Key: string(kv.Key), Value: anyValue(kv.Value)})
	}
	return out
}

func anyValue(v attribute.Value) *commonpb.AnyValue {
	switch v.Type() {
	case attribute.BOOL:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_BoolValue{BoolValue: v.AsBool()}}
	case attribute.INT64:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: v.AsInt64()}}
	case attribute.FLOAT64:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_DoubleValue{DoubleValue: v.AsFloat64()}}
	case attribute.STRING:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: v.AsString()}}
	case attribute.BOOLSLICE:
		values := make([]*commonpb.AnyValue, 0)
		for _, b := range v.AsBoolSlice() {
			values = append(values, anyValue(attribute.BoolValue(b)))
		}
		return arrayValue(values)
	case attribute.INT64SLICE:
		values := make([]*commonpb.AnyValue, 0)
		for _, i := range v.AsInt64Slice() {
			values = append(values, anyValue(attribute.Int64Value(i)))
		}
		return arrayValue(values)
	case attribute.FLOAT64SLICE:
		values := make([]*commonpb.AnyValue, 0)
		for _, f := range v.AsFloat64Slice() {
			values = append(values, anyValue(attribute.Float64Value(f)))
		}
		return arrayValue(values)
	case attribute.STRINGSLICE:
		values := make([]*commonpb.AnyValue, 0)
		for _, s := range v.AsStringSlice() {
			values = append(values, anyValue(attribute.StringValue(s)))
		}
		return arrayValue(values)
	default:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: v.Emit()}}
	}
}

func arrayValue(values []*commonpb.AnyValue) *commonpb.AnyValue {
	return &commonpb.AnyValue{Value: &commonpb.AnyValue_ArrayValue{
		ArrayValue: &commonpb.ArrayValue{Values: values},
	}}
}
