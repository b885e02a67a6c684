package internal

import (
	"context"

	"rahmet_export/internal/choco"
	"rahmet_export/internal/cli"
	"rahmet_export/internal/config"
	"rahmet_export/internal/llm"
	"rahmet_export/internal/logging"
	"rahmet_export/internal/observability"
	"rahmet_export/internal/report"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *cli.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		observability.Module(),
		choco.Module(),
		llm.Module(),
		report.Module(),
		cli.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}
