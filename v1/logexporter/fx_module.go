package logexporter

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/trek/v1/processor"
)

// FXModule provides the logging exporter as the processor.Exporter.
//
// Dependencies required by this module:
//   - a logger.Sink (from logger.FXModule)
var FXModule = fx.Module("logexporter",
	fx.Provide(
		fx.Annotate(NewExporter, fx.As(new(processor.Exporter))),
	),
)
