package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics.
// It covers HTTP traffic, database query latency and idempotent replays.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
	IdempotentReplays   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employee_records_http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employee_records_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employee_records_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'create', 'get_by_id', 'find_page', ...
		IdempotentReplays: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "employee_records_idempotent_replays_total",
			Help: "Total create requests answered from a stored idempotency key.",
		}),
	}
}

// ObserveQuery starts a timer for a database query; call the returned func when it completes.
// It is safe on a nil *Metrics.
func (m *Metrics) ObserveQuery(queryType string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
	}
}

// RecordReplay counts a create answered from a stored idempotency key. It is safe on a nil *Metrics.
func (m *Metrics) RecordReplay() {
	if m == nil {
		return
	}
	m.IdempotentReplays.Inc()
}
