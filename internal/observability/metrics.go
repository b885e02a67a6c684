package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for one export run.
type Metrics struct {
	// Registry owns every collector below. A private registry lets tests
	// create as many Metrics as they need.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	fetchErrors     *prometheus.CounterVec
	rowsWritten     *prometheus.CounterVec
	lastSuccess     *prometheus.GaugeVec
}

// NewMetrics creates a dedicated registry and registers all collectors in it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rahmet_export_request_duration_seconds",
				Help:    "Duration of upstream API requests by endpoint.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		fetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rahmet_export_fetch_errors_total",
				Help: "Total failed upstream API requests by endpoint.",
			},
			[]string{"endpoint"},
		),
		rowsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rahmet_export_rows_written_total",
				Help: "Total data rows written to spreadsheets by report.",
			},
			[]string{"report"},
		),
		lastSuccess: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rahmet_export_last_success_timestamp_seconds",
				Help: "Unix time of the last successfully saved report.",
			},
			[]string{"report"},
		),
	}
}

// ObserveRequest records the duration of an upstream call and counts it as a
// failure when err is non-nil. Safe on a nil receiver.
func (m *Metrics) ObserveRequest(endpoint string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	if err != nil {
		m.fetchErrors.WithLabelValues(endpoint).Inc()
	}
}

// RecordReport counts written rows and stamps the success gauge.
func (m *Metrics) RecordReport(report string, rows int, at time.Time) {
	if m == nil {
		return
	}
	m.rowsWritten.WithLabelValues(report).Add(float64(rows))
	m.lastSuccess.WithLabelValues(report).Set(float64(at.Unix()))
}

// FetchErrors returns the error counter for an endpoint, for tests and logs.
func (m *Metrics) FetchErrors(endpoint string) prometheus.Counter {
	return m.fetchErrors.WithLabelValues(endpoint)
}

// RowsWritten returns the rows counter for a report.
func (m *Metrics) RowsWritten(report string) prometheus.Counter {
	return m.rowsWritten.WithLabelValues(report)
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node_exporter textfile collector. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics dir: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
