package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics lives on its own registry so a run exports only job series.
type Metrics struct {
	Registry *prometheus.Registry

	RowsRead    *prometheus.CounterVec
	RowsWritten *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	LastSuccess prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brickset",
			Name:      "rows_read_total",
			Help:      "Rows loaded from each source table.",
		}, []string{"table"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brickset",
			Name:      "rows_written_total",
			Help:      "Rows committed per table and sink driver.",
		}, []string{"table", "sink"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brickset",
			Name:      "failures_total",
			Help:      "Aborted runs by error kind.",
		}, []string{"kind"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "brickset",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that committed every output.",
		}),
	}
	m.Registry.MustRegister(m.RowsRead, m.RowsWritten, m.Failures, m.LastSuccess)
	return m
}

// WriteTextfile exports the registry in the text format read by the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
