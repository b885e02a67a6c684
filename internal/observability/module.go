package observability

import (
	"context"

	"rahmet_export/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"observability",
		fx.Provide(NewMetrics),
		fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, metrics *Metrics, logger *zap.Logger) error {
			shutdown, err := InitTracer(context.Background(), cfg.OTLPEndpoint, ServiceName)
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
						logger.Warn("metrics textfile not written", zap.Error(err))
					}
					return shutdown(ctx)
				},
			})
			return nil
		}),
	)
}
