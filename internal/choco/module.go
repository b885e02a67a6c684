package choco

import (
	"rahmet_export/internal/config"
	"rahmet_export/internal/observability"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Factory builds clients once the bearer token is known from the command line.
type Factory struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *observability.Metrics
}

func NewFactory(cfg config.Config, logger *zap.Logger, metrics *observability.Metrics) *Factory {
	return &Factory{cfg: cfg, logger: logger, metrics: metrics}
}

func (f *Factory) New(token string) (*Client, error) {
	return NewClient(f.cfg, token, f.logger, f.metrics)
}

func Module() fx.Option {
	return fx.Module(
		"choco",
		fx.Provide(NewFactory),
	)
}
