package metrics

import "github.com/prometheus/client_golang/prometheus"

// Counters for the order lifecycle and location pipeline.
var (
	QRScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qr_scans_total",
			Help: "Total number of QR code scans by outcome",
		},
		[]string{"outcome"},
	)

	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created successfully",
		},
	)

	OrderCreationRollbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_creation_rollbacks_total",
			Help: "Total number of order creation pipelines rolled back, by failed step",
		},
		[]string{"step"},
	)

	LoadActivationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "load_activations_total",
			Help: "Total number of successful load activations",
		},
	)

	LocationUpdatesAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "location_updates_accepted_total",
			Help: "Total number of location samples persisted",
		},
	)

	LocationUpdatesThrottledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "location_updates_throttled_total",
			Help: "Total number of location samples dropped by throttling",
		},
	)
)

// Register registers all metrics with the default registry.
func Register() {
	prometheus.MustRegister(QRScansTotal)
	prometheus.MustRegister(OrdersCreatedTotal)
	prometheus.MustRegister(OrderCreationRollbacksTotal)
	prometheus.MustRegister(LoadActivationsTotal)
	prometheus.MustRegister(LocationUpdatesAcceptedTotal)
	prometheus.MustRegister(LocationUpdatesThrottledTotal)
}
