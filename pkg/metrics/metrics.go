package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"cache", "op"}, // hit|miss|expired|invalidated|swept
	)
	CacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
		[]string{"cache"},
	)
	IdempotencyReplays = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "idempotency_replays_total",
			Help: "Number of requests answered from the idempotency cache",
		},
	)
)

var (
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_published_total",
			Help: "Order lifecycle events published on the bus",
		},
		[]string{"kind"},
	)
	EventSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_event_subscribers",
			Help: "Live event bus subscribers",
		},
	)
	EventSubscribersDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_event_subscribers_dropped_total",
			Help: "Subscribers removed after a delivery failure",
		},
	)
)

var (
	BatchOrdersProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "batch_orders_processed_total",
			Help: "Orders inserted by the batch pipeline",
		},
	)
	BatchOrdersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "batch_orders_failed_total",
			Help: "Orders rejected by the batch pipeline",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		HTTPRequests, HTTPDuration,
		CacheOps, CacheSize, IdempotencyReplays,
		EventsPublished, EventSubscribers, EventSubscribersDropped,
		BatchOrdersProcessed, BatchOrdersFailed,
	)
}
