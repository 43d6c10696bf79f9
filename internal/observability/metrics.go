package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for report runs.
type Metrics struct {
	RowsRead        prometheus.Counter
	RowsDropped     prometheus.Counter
	EventsKept      prometheus.Counter
	MonthlyGroups   prometheus.Gauge
	RunDuration     prometheus.Histogram
	LastSuccessTime prometheus.Gauge

	// Sink metrics.
	LoadErrors       *prometheus.CounterVec // labels: sink={files,kafka}
	MessagesProduced prometheus.Counter
}

// NewMetrics creates and registers all report metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsDropped,
		m.EventsKept,
		m.MonthlyGroups,
		m.RunDuration,
		m.LastSuccessTime,
		m.LoadErrors,
		m.MessagesProduced,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_report",
			Name:      "rows_read_total",
			Help:      "Total catalogue rows read from the source.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_report",
			Name:      "rows_dropped_total",
			Help:      "Rows discarded because their timestamp could not be parsed.",
		}),
		EventsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_report",
			Name:      "events_kept_total",
			Help:      "Normalized events remaining after the location filter.",
		}),
		MonthlyGroups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_report",
			Name:      "monthly_groups",
			Help:      "Number of year-month groups in the latest summary.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_report",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-summarize-write run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastSuccessTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_report",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run whose summary reached every sink.",
		}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_report",
			Name:      "load_errors_total",
			Help:      "Failed attempts to hand a summary to a sink.",
		}, []string{"sink"}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_report",
			Name:      "messages_produced_total",
			Help:      "Total messages written to the Kafka sink topic.",
		}),
	}
}
