package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "ogw_inventory"

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Ledger metrics
	ReleasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_releases_total",
			Help: "Total number of item releases recorded",
		},
	)

	ReturnsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_returns_total",
			Help: "Total number of item returns recorded",
		},
	)

	StockConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_stock_conflicts_total",
			Help: "Total number of rejected stock operations",
		},
		[]string{"reason"},
	)

	// Notification metrics
	EmailsQueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_emails_queued_total",
			Help: "Total number of notification emails queued",
		},
	)

	EmailSendErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_email_send_errors_total",
			Help: "Total number of notification emails that failed to send",
		},
	)
)

// RecordStockConflict increments the rejected-operation counter.
// reason is "insufficient_stock" or "over_return".
func RecordStockConflict(reason string) {
	StockConflictsTotal.WithLabelValues(reason).Inc()
}
