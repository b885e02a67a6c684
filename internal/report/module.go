package report

import (
	"rahmet_export/internal/config"
	"rahmet_export/internal/llm"
	"rahmet_export/internal/observability"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"report",
		fx.Provide(func(cfg config.Config, llmClient *llm.Client, metrics *observability.Metrics, logger *zap.Logger) *Exporter {
			return NewExporter(cfg.StorageDir, llmClient, metrics, logger)
		}),
	)
}
