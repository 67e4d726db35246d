// Package metrics exposes span export activity as Prometheus metrics.
//
// *Metrics implements observability.Observer. Attach it to the processor and
// to any exporter with WithObserver, or let FXModule inject it, and every
// completed operation is recorded as:
//
//	trek_span_operations_total{component, operation, status}
//	trek_span_operation_duration_seconds{component, operation}
//	trek_span_operation_size_total{component, operation}
//
// TrackPending adds trek_span_exports_pending, read from the processor on
// every scrape.
//
// Each Metrics instance owns its registry, served on /metrics by Server:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "checkout"})
//	proc, err := processor.NewProcessor(processor.Config{}, exp, log)
//	if err != nil {
//		return err
//	}
//	proc.WithObserver(m)
//	_ = m.TrackPending(proc)
//	go m.Server.ListenAndServe()
//
// When ServiceName is set, every metric carries a constant service label.
// EnableDefaultCollectors adds the Go runtime, process and build info
// collectors.
package metrics
