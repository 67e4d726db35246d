package processor

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/trek/v1/result"
)

type tee []Exporter

// Tee returns an Exporter that forwards every call to each of exporters and
// completes once all of them have. It fails if any of them failed.
func Tee(exporters ...Exporter) Exporter {
	return tee(exporters)
}

func (t tee) Export(spans []sdktrace.ReadOnlySpan) *result.Result {
	return t.each(func(e Exporter) *result.Result { return e.Export(spans) })
}

func (t tee) Flush() *result.Result {
	return t.each(Exporter.Flush)
}

func (t tee) Shutdown() *result.Result {
	return t.each(Exporter.Shutdown)
}

func (t tee) each(fn func(Exporter) *result.Result) *result.Result {
	results := make([]*result.Result, 0, len(t))
	for _, e := range t {
		res := fn(e)
		if res == nil {
			res = result.Failure(ErrNilResult)
		}
		results = append(results, res)
	}
	return result.All(results...)
}
