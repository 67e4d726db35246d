package tracer

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/Aleph-Alpha/trek/v1/processor"
)

// NewExporter builds the backend named by cfg.Exporter.
func NewExporter(ctx context.Context, cfg Config) (processor.Exporter, error) {
	cfg = cfg.withDefaults()
	switch cfg.Exporter {
	case ExporterOTLP:
		return NewOTLPExporter(ctx, cfg)
	case ExporterStdout:
		return NewStdoutExporter(os.Stdout, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.Exporter)
	}
}

// NewOTLPExporter sends spans to an OTLP/HTTP collector. The client does not
// connect until the first export.
func NewOTLPExporter(ctx context.Context, cfg Config) (processor.Exporter, error) {
	cfg = cfg.withDefaults()
	client := otlptracehttp.NewClient(otlpOptions(cfg.OTLP)...)
	exp, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("cannot initiate OTLP exporter: %w", err)
	}
	return processor.FromSpanExporter(exp, cfg.ExportTimeout), nil
}

func otlpOptions(cfg OTLPConfig) []otlptracehttp.Option {
	var opts []otlptracehttp.Option
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.URLPath != "" {
		opts = append(opts, otlptracehttp.WithURLPath(cfg.URLPath))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	if cfg.Gzip {
		opts = append(opts, otlptracehttp.WithCompression(otlptracehttp.GzipCompression))
	}
	return opts
}

// NewStdoutExporter writes spans as JSON to w.
func NewStdoutExporter(w io.Writer, cfg Config) (processor.Exporter, error) {
	cfg = cfg.withDefaults()
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if cfg.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exp, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot initiate stdout exporter: %w", err)
	}
	return processor.FromSpanExporter(exp, cfg.ExportTimeout), nil
}
