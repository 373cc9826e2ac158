package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Notification intake metrics
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loggifly_sink_notifications_total",
			Help: "Total number of webhook notifications received",
		},
		[]string{"status"},
	)

	NotificationBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loggifly_sink_notification_bytes_total",
			Help: "Total bytes of notification payload data received",
		},
	)

	// Sink metrics
	RotationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loggifly_sink_rotations_total",
			Help: "Total number of log file rotations performed",
		},
	)

	SinkWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loggifly_sink_write_errors_total",
			Help: "Total number of failed log file writes",
		},
	)

	SinkSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "loggifly_sink_file_size_bytes",
			Help: "Current size of the active log file",
		},
	)
)
