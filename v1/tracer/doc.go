// Package tracer wires the trek span processor into an OpenTelemetry
// TracerProvider and provides the OTel-native export backends.
//
// NewClient registers the processor as the provider's span processor, sets
// the service resource and installs the provider and the W3C propagators
// globally. StartSpan starts a span and adds the BEGIN event that marks the
// start of the timed region:
//
//	exp, err := tracer.NewStdoutExporter(os.Stdout, tracer.Config{})
//	if err != nil {
//		return err
//	}
//	proc, err := processor.NewProcessor(processor.Config{}, exp, log)
//	if err != nil {
//		return err
//	}
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "checkout"}, proc)
//	if err != nil {
//		return err
//	}
//	defer t.Shutdown(context.Background())
//
//	ctx, span := t.StartSpan(ctx, "load-cart")
//	defer span.End()
//
// Spans that do not call StartSpan can be marked later with MarkBegin.
//
// NewOTLPExporter and NewStdoutExporter adapt the synchronous OTel exporters
// to processor.Exporter with processor.FromSpanExporter, so they run off the
// goroutine that ends the span.
package tracer
