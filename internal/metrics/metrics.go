package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "envmonitor_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "envmonitor_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Poll cycle metrics
	PollCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "envmonitor_poll_cycles_total",
			Help: "Total number of poll cycles by outcome",
		},
		[]string{"result"}, // result: ok, error, cancelled
	)

	PollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "envmonitor_poll_duration_seconds",
			Help:    "Time taken to fetch the latest sample and history",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	ConnectionUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "envmonitor_feed_connection_up",
			Help: "1 when the last poll cycle succeeded, 0 otherwise",
		},
	)

	LastSyncTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "envmonitor_last_sync_timestamp_seconds",
			Help: "Unix time of the last successful poll cycle",
		},
	)

	// Detection metrics
	ActiveBreaches = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "envmonitor_active_breaches",
			Help: "Number of boundary conditions currently in violation",
		},
	)

	IncidentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "envmonitor_incidents_total",
			Help: "Total number of incidents raised",
		},
		[]string{"key"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "envmonitor_notifications_total",
			Help: "Notification dispatch attempts by channel and result",
		},
		[]string{"channel", "result"}, // result: sent, failed, skipped, dropped
	)
)
