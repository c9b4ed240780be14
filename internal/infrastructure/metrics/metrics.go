package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransferDuration   prometheus.Histogram
	TransferErrors     *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// Notification metrics
	NotificationsSent prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_transfers_completed_total",
			Help: "Total number of completed transfers",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_notifications_sent_total",
			Help: "Total number of transfer notifications handed to the notifier",
		}),
	}
}
