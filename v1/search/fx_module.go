package search

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qbe/v1/metrics"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

// FXModule provides the qbe.Builder and the *Service.
// It requires a *metadata.Registry, a Finder, a search.Logger, a
// metrics.Collector and a search.Tracer in the container.
var FXModule = fx.Module("search",
	fx.Provide(
		qbe.NewBuilder,
		NewServiceWithDI,
	),
)

// ServiceParams groups the dependencies of NewServiceWithDI.
type ServiceParams struct {
	fx.In

	Builder *qbe.Builder
	Finder  Finder
	Logger  Logger
	Metrics metrics.Collector
	Tracer  Tracer
}

// NewServiceWithDI is the fx constructor of *Service.
func NewServiceWithDI(params ServiceParams) *Service {
	return NewService(params.Builder, params.Finder, params.Logger, params.Metrics, params.Tracer)
}
