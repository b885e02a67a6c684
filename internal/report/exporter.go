package report

import (
	"context"
	"time"

	"rahmet_export/internal/observability"

	"go.uber.org/zap"
)

// Summarizer writes a short narrative for a table. The LLM client is the
// production implementation.
type Summarizer interface {
	Enabled() bool
	Summarize(ctx context.Context, title string, headers []string, rows [][]any) (string, error)
}

// Exporter builds a report and stores it under storageDir.
type Exporter struct {
	storageDir string
	summarizer Summarizer
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewExporter(storageDir string, summarizer Summarizer, metrics *observability.Metrics, logger *zap.Logger) *Exporter {
	return &Exporter{
		storageDir: storageDir,
		summarizer: summarizer,
		metrics:    metrics,
		logger:     logger.Named("report"),
		now:        time.Now,
	}
}

// Export runs builder and saves its table. Nothing is written when the
// build fails. The returned path is the saved file.
func (e *Exporter) Export(ctx context.Context, builder Builder) (string, error) {
	startedAt := e.now()

	table, err := builder.Build(ctx)
	if err != nil {
		e.logger.Error("report build failed", zap.String("report", builder.Name()), zap.Error(err))
		return "", err
	}

	if e.summarizer != nil && e.summarizer.Enabled() && len(table.Rows) > 0 {
		headers, rows := table.Public()
		summary, err := e.summarizer.Summarize(ctx, table.Sheet, headers, rows)
		if err != nil {
			e.logger.Warn("report summary skipped", zap.String("report", table.Report), zap.Error(err))
		} else {
			table.Summary = summary
		}
	}

	path := OutputPath(e.storageDir, table.Report, startedAt)
	if err := Save(table, path); err != nil {
		return "", err
	}

	e.metrics.RecordReport(table.Report, len(table.Rows), e.now())
	e.logger.Info("report saved",
		zap.String("report", table.Report),
		zap.String("path", path),
		zap.Int("rows", len(table.Rows)),
		zap.Bool("summary", table.Summary != ""),
	)
	return path, nil
}
