package processor

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/trek/v1/logger"
	"github.com/Aleph-Alpha/trek/v1/observability"
)

// FXModule provides the span lifecycle processor.
//
// Dependencies required by this module:
//   - a processor.Config
//   - a processor.Exporter (for example from logexporter.FXModule or kafka.FXModule)
//   - a logger.Logger (from logger.FXModule)
//   - optionally an observability.Observer (for example from metrics.FXModule)
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    logexporter.FXModule,
//	    processor.FXModule,
//	    fx.Provide(func() processor.Config { return processor.Config{} }),
//	)
var FXModule = fx.Module("processor",
	fx.Provide(NewProcessorWithDI),
	fx.Invoke(RegisterProcessorLifecycle),
)

// ProcessorParams groups the dependencies needed to create a Processor via
// dependency injection.
type ProcessorParams struct {
	fx.In

	Config   Config
	Exporter Exporter
	Logger   logger.Logger
	Observer observability.Observer `optional:"true"`
}

// NewProcessorWithDI creates a Processor from injected dependencies and
// attaches the observer when one is available.
func NewProcessorWithDI(params ProcessorParams) (*Processor, error) {
	p, err := NewProcessor(params.Config, params.Exporter, params.Logger)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		p.WithObserver(params.Observer)
	}
	return p, nil
}

// RegisterProcessorLifecycle shuts the processor down when the application
// stops. Shutdown is idempotent, so this is harmless when a tracer provider
// already shut the processor down.
func RegisterProcessorLifecycle(lc fx.Lifecycle, p *Processor, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down span processor...", nil, map[string]interface{}{
				"pending_exports": p.PendingExports(),
			})
			return p.Shutdown(ctx)
		},
	})
}
