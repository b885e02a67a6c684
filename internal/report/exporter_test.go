package report_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rahmet_export/internal/observability"
	"rahmet_export/internal/report"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type stubSummarizer struct {
	text    string
	err     error
	calls   int
	rows    int
	headers []string
	values  [][]any
}

func (s *stubSummarizer) Enabled() bool { return true }

func (s *stubSummarizer) Summarize(_ context.Context, _ string, headers []string, rows [][]any) (string, error) {
	s.calls++
	s.rows = len(rows)
	s.headers = headers
	s.values = rows
	return s.text, s.err
}

type stubBuilder struct {
	table report.Table
}

func (b stubBuilder) Name() string { return b.table.Report }

func (b stubBuilder) Build(context.Context) (report.Table, error) { return b.table, nil }

func sampleTable() report.Table {
	return report.Table{
		Report:  "main",
		Sheet:   "Филиалы",
		Headers: report.BranchHeaders,
		Rows: [][]any{
			{"Abay 10", 100.5, "1%", 3, "0%", 10, "0%", int64(1), int64(1), int64(0), int64(0), 5, int64(2)},
		},
	}
}

func TestExportAddsSummarySheet(t *testing.T) {
	dir := t.TempDir()
	summarizer := &stubSummarizer{text: "Оборот вырос."}
	metrics := observability.NewMetrics()
	exporter := report.NewExporter(dir, summarizer, metrics, zap.NewNop())

	path, err := exporter.Export(context.Background(), stubBuilder{table: sampleTable()})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(path, filepath.Join(dir, "main")+string(filepath.Separator)) || !strings.HasSuffix(path, ".xlsx") {
		t.Fatalf("path=%q", path)
	}
	if summarizer.calls != 1 || summarizer.rows != 1 {
		t.Fatalf("summarizer calls=%d rows=%d", summarizer.calls, summarizer.rows)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer wb.Close()
	got, err := wb.GetCellValue("Сводка", "A1")
	if err != nil || got != "Оборот вырос." {
		t.Fatalf("summary=%q err=%v", got, err)
	}
	widths := []struct {
		sheet, col string
		want       float64
	}{
		{"Филиалы", "A", 25},
		{"Филиалы", "M", 18},
		{"Сводка", "A", 120},
	}
	for _, w := range widths {
		if got, err := wb.GetColWidth(w.sheet, w.col); err != nil || got != w.want {
			t.Fatalf("%s!%s width=%v err=%v, want %v", w.sheet, w.col, got, err, w.want)
		}
	}
	if rows := testutil.ToFloat64(metrics.RowsWritten("main")); rows != 1 {
		t.Fatalf("rows metric=%v, want 1", rows)
	}
}

func TestExportSurvivesSummaryFailure(t *testing.T) {
	dir := t.TempDir()
	summarizer := &stubSummarizer{err: errors.New("llm down")}
	exporter := report.NewExporter(dir, summarizer, nil, zap.NewNop())

	path, err := exporter.Export(context.Background(), stubBuilder{table: sampleTable()})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Stat: %v", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer wb.Close()
	if sheets := wb.GetSheetList(); len(sheets) != 1 {
		t.Fatalf("sheets=%v, want only the data sheet", sheets)
	}
}

func TestExportKeepsPersonalDataOutOfSummary(t *testing.T) {
	client, _ := newFixtureClient(t)
	summarizer := &stubSummarizer{text: "ok"}
	exporter := report.NewExporter(t.TempDir(), summarizer, nil, zap.NewNop())

	path, err := exporter.Export(context.Background(), report.NewCustomersBuilder(client))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if len(summarizer.headers) != len(report.CustomerHeaders)-2 {
		t.Fatalf("headers=%v", summarizer.headers)
	}
	for _, h := range summarizer.headers {
		if h == "Имя" || h == "телефон" {
			t.Fatalf("summary received column %q", h)
		}
	}
	for _, row := range summarizer.values {
		for _, v := range row {
			if s, ok := v.(string); ok && (strings.HasPrefix(s, "Customer ") || strings.HasPrefix(s, "+7707")) {
				t.Fatalf("summary received personal value %q", s)
			}
		}
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer wb.Close()
	if got, _ := wb.GetCellValue("Клиенты", "C2"); got != "+77070001001" {
		t.Fatalf("sheet phone=%q", got)
	}
}
