package minio

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
	"github.com/Aleph-Alpha/trek/v1/processor"
)

// FXModule provides the MinIO span exporter as the processor.Exporter.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    minio.FXModule,
//	    processor.FXModule,
//	    fx.Provide(func() minio.Config { return loadMinioConfig() }),
//	)
var FXModule = fx.Module("minio",
	fx.Provide(
		NewExporterWithDI,
		func(e *Exporter) processor.Exporter { return e },
	),
	fx.Invoke(RegisterMinioLifecycle),
)

// MinioParams groups the dependencies needed to create the exporter.
type MinioParams struct {
	fx.In

	Config   Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewExporterWithDI creates the exporter and injects the optional logger and observer.
func NewExporterWithDI(params MinioParams) (*Exporter, error) {
	e, err := NewExporter(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		e.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		e.WithObserver(params.Observer)
	}
	return e, nil
}

// RegisterMinioLifecycle waits for running uploads when the application stops.
func RegisterMinioLifecycle(lc fx.Lifecycle, e *Exporter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return e.Shutdown().Wait(ctx)
		},
	})
}
