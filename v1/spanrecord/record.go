package spanrecord

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/Aleph-Alpha/trek/v1/spanformat"
)

// Record is the flat form of a finished span. It is used as the JSON wire
// document and as the database row of the postgres exporter.
type Record struct {
	TraceID      string `json:"trace_id" gorm:"primaryKey;size:32"`
	SpanID       string `json:"span_id" gorm:"primaryKey;size:16"`
	ParentSpanID string `json:"parent_span_id,omitempty" gorm:"size:16"`

	Name    string `json:"name" gorm:"index"`
	Kind    string `json:"kind"`
	Sampled bool   `json:"sampled"`

	StartUnixNano int64 `json:"start_unix_nano"`
	EndUnixNano   int64 `json:"end_unix_nano"`

	// BeginUnixNano and ElapsedNanos are nil when the span carries no BEGIN event.
	BeginUnixNano *int64 `json:"begin_unix_nano,omitempty"`
	ElapsedNanos  *int64 `json:"elapsed_nanos,omitempty"`

	StatusCode    string `json:"status_code"`
	StatusMessage string `json:"status_message,omitempty"`

	ServiceName  string `json:"service_name,omitempty" gorm:"index"`
	ScopeName    string `json:"scope_name,omitempty"`
	ScopeVersion string `json:"scope_version,omitempty"`

	Attributes map[string]string `json:"attributes,omitempty" gorm:"serializer:json"`
	Events     []Event           `json:"events,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
}

// Event is a span event inside a Record.
type Event struct {
	Name         string            `json:"name"`
	TimeUnixNano int64             `json:"time_unix_nano"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// TableName names the table the postgres exporter writes to.
func (Record) TableName() string {
	return "trek_spans"
}

// FromSpan flattens s into a Record.
func FromSpan(s sdktrace.ReadOnlySpan) Record {
	sc := s.SpanContext()
	r := Record{
		TraceID:       sc.TraceID().String(),
		SpanID:        sc.SpanID().String(),
		Name:          s.Name(),
		Kind:          s.SpanKind().String(),
		Sampled:       sc.IsSampled(),
		StartUnixNano: s.StartTime().UnixNano(),
		StatusCode:    s.Status().Code.String(),
		StatusMessage: s.Status().Description,
		ScopeName:     s.InstrumentationScope().Name,
		ScopeVersion:  s.InstrumentationScope().Version,
		Attributes:    attributeMap(s.Attributes()),
	}
	if parent := s.Parent(); parent.HasSpanID() {
		r.ParentSpanID = parent.SpanID().String()
	}
	if end := s.EndTime(); !end.IsZero() {
		r.EndUnixNano = end.UnixNano()
	}
	if res := s.Resource(); res != nil {
		if v, ok := res.Set().Value(semconv.ServiceNameKey); ok {
			r.ServiceName = v.Emit()
		}
	}
	if begin, ok := spanformat.BeginEvent(s); ok {
		ns := begin.Time.UnixNano()
		r.BeginUnixNano = &ns
	}
	if elapsed, ok := spanformat.Elapsed(s); ok {
		ns := elapsed.Nanoseconds()
		r.ElapsedNanos = &ns
	}
	for _, ev := range s.Events() {
		r.Events = append(r.Events, Event{
			Name:         ev.Name,
			TimeUnixNano: ev.Time.UnixNano(),
			Attributes:   attributeMap(ev.Attributes),
		})
	}
	return r
}

func attributeMap(attrs []attribute.KeyValue) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}
