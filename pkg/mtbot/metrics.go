package mtbot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "mtbot"

const (
	statusSuccess   = "success"
	statusError     = "error"
	statusUnchanged = "unchanged"
)

// Peer resolution sources.
const (
	peerSourceCache    = "cache"
	peerSourceStore    = "store"
	peerSourceRPC      = "rpc"
	peerSourceUsername = "username"
)

type metrics struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	peerResolutions *prometheus.CounterVec
	pendingUpdates  prometheus.Gauge
	droppedUpdates  prometheus.Counter
}

// newMetrics registers collectors on registerer. A nil registerer creates
// unregistered collectors.
func newMetrics(registerer prometheus.Registerer) *metrics {
	factory := promauto.With(registerer)

	return &metrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Duration of forwarded Bot API calls in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 30, 35},
			},
			[]string{"method", "status"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of forwarded Bot API calls",
			},
			[]string{"method", "status"},
		),
		peerResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "peers",
				Name:      "resolutions_total",
				Help:      "Total number of chat id resolutions by source",
			},
			[]string{"source"},
		),
		pendingUpdates: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "updates",
				Name:      "pending",
				Help:      "Number of updates waiting for GetUpdates",
			},
		),
		droppedUpdates: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "updates",
				Name:      "dropped_total",
				Help:      "Total number of updates dropped because the queue was full",
			},
		),
	}
}

func (m *metrics) recordRequest(method string, status string, durationSeconds float64) {
	m.requestDuration.WithLabelValues(method, status).Observe(durationSeconds)
	m.requestsTotal.WithLabelValues(method, status).Inc()
}

func (m *metrics) recordPeerResolution(source string) {
	m.peerResolutions.WithLabelValues(source).Inc()
}
