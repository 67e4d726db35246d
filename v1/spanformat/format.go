// Package spanformat renders spans as single-line, correlatable log records.
//
// Begin records are written when a span starts, end records when it is
// exported. Both carry the span name ("tmark"), trace id and span id so the
// two lines of one span can be joined in any log search tool. End records add
// timing derived from the span's "BEGIN" event:
//
//	TREK_BEGIN( tmark=fetch, traceid=4bf9..., spanid=00f0..., {region=us})
//	TREK_END( tmark=fetch, traceid=4bf9..., spanid=00f0..., begin=1000, end=1500, elapsed=500, {region=us})
package spanformat

import (
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	// BeginEventName is the event that marks when the traced work began.
	// Elapsed time is measured from it rather than from the span start time.
	BeginEventName = "BEGIN"

	// BeginTag prefixes records written when a span starts.
	BeginTag = "TREK_BEGIN("

	// EndTag prefixes records written when a span is exported.
	EndTag = "TREK_END("

	// Unknown is printed for timings that cannot be determined.
	Unknown = "unknown"
)

// FormatBegin returns the begin record for span.
func FormatBegin(span sdktrace.ReadOnlySpan) string {
	var sb strings.Builder
	sb.WriteString(BeginTag)
	writeIdentity(&sb, span)
	writeAttributes(&sb, span.Attributes())
	sb.WriteByte(')')
	return sb.String()
}

// FormatEnd returns the end record for span.
func FormatEnd(span sdktrace.ReadOnlySpan) string {
	var sb strings.Builder
	sb.WriteString(EndTag)
	writeIdentity(&sb, span)

	begin, hasBegin := BeginEvent(span)
	end := span.EndTime()

	sb.WriteString(" begin=")
	if hasBegin {
		sb.WriteString(strconv.FormatInt(begin.Time.UnixNano(), 10))
	} else {
		sb.WriteString(Unknown)
	}

	sb.WriteString(", end=")
	if end.IsZero() {
		sb.WriteString(Unknown)
	} else {
		sb.WriteString(strconv.FormatInt(end.UnixNano(), 10))
	}

	sb.WriteString(", elapsed=")
	if elapsed, ok := Elapsed(span); ok {
		sb.WriteString(strconv.FormatInt(elapsed.Nanoseconds(), 10))
	} else {
		sb.WriteString(Unknown)
	}
	sb.WriteByte(',')

	writeAttributes(&sb, span.Attributes())
	sb.WriteByte(')')
	return sb.String()
}

// BeginEvent returns the first event named BeginEventName.
func BeginEvent(span sdktrace.ReadOnlySpan) (sdktrace.Event, bool) {
	for _, ev := range span.Events() {
		if ev.Name == BeginEventName {
			return ev, true
		}
	}
	return sdktrace.Event{}, false
}

// Elapsed returns the time between the BEGIN event and the end of the span.
// It reports false when the span has no BEGIN event or has not ended.
func Elapsed(span sdktrace.ReadOnlySpan) (time.Duration, bool) {
	begin, ok := BeginEvent(span)
	if !ok {
		return 0, false
	}
	end := span.EndTime()
	if end.IsZero() {
		return 0, false
	}
	return time.Duration(end.UnixNano() - begin.Time.UnixNano()), true
}

func writeIdentity(sb *strings.Builder, span sdktrace.ReadOnlySpan) {
	sc := span.SpanContext()
	sb.WriteString(" tmark=")
	sb.WriteString(span.Name())
	sb.WriteString(", traceid=")
	sb.WriteString(sc.TraceID().String())
	sb.WriteString(", spanid=")
	sb.WriteString(sc.SpanID().String())
	sb.WriteByte(',')
}

// writeAttributes renders attrs as " {k1=v1, k2=v2}" sorted by key.
func writeAttributes(sb *strings.Builder, attrs []attribute.KeyValue) {
	set := attribute.NewSet(attrs...)
	sb.WriteString(" {")
	iter := set.Iter()
	for i := 0; iter.Next(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		kv := iter.Attribute()
		sb.WriteString(string(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(kv.Value.Emit())
	}
	sb.WriteByte('}')
}
