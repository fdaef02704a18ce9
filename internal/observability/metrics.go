package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the bot.
type Metrics struct {
	DialogueTurns  *prometheus.CounterVec // labels: phase
	Reports        *prometheus.CounterVec // labels: kind={daily,best_window,best_day}
	ReportFailures *prometheus.CounterVec // labels: kind, reason={fetch,no_data}

	// Upstream Open-Meteo metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: api={marine,forecast,daylight}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: api

	AdjustmentUpdates prometheus.Counter

	// Chat bridge metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	BridgeRunning    prometheus.Gauge
}

// NewMetrics creates and registers all bot metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DialogueTurns,
		m.Reports,
		m.ReportFailures,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.AdjustmentUpdates,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.BridgeRunning,
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
		DialogueTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf_bot",
			Name:      "dialogue_turns_total",
			Help:      "Dialogue turns processed, by the phase the turn started in.",
		}, []string{"phase"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf_bot",
			Name:      "reports_total",
			Help:      "Forecast reports rendered, by kind.",
		}, []string{"kind"}),
		ReportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf_bot",
			Name:      "report_failures_total",
			Help:      "Reports that degraded to a failure message, by kind and reason.",
		}, []string{"kind", "reason"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surf_bot",
			Name:      "upstream_requests_total",
			Help:      "Open-Meteo API requests by api and outcome.",
		}, []string{"api", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "surf_bot",
			Name:      "upstream_request_duration_seconds",
			Help:      "Open-Meteo API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"api"}),
		AdjustmentUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surf_bot",
			Name:      "adjustment_updates_total",
			Help:      "Calibration parameters written through the admin command.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surf_bot",
			Name:      "messages_consumed_total",
			Help:      "Chat messages read from the inbound topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surf_bot",
			Name:      "messages_produced_total",
			Help:      "Responses written to the outbound topic.",
		}),
		BridgeRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "surf_bot",
			Name:      "bridge_running",
			Help:      "1 when the chat bridge is active, 0 when shut down.",
		}),
	}
}
