package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Booking outcomes
const (
	OutcomeBooked          = "booked"
	OutcomeSlotUnavailable = "slot_unavailable"
	OutcomeValidation      = "validation"
	OutcomeFailed          = "failed"
	OutcomeInconsistent    = "inconsistent"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	bookingOutcomes    *prometheus.CounterVec
	inconsistentCommit prometheus.Counter
	cacheLookups       *prometheus.CounterVec
	dbQueryDuration    *prometheus.HistogramVec
	dbOpenConns        prometheus.Gauge
	dbInUseConns       prometheus.Gauge
	dbWaitCount        prometheus.Gauge
}

// New создает и регистрирует метрики в reg
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		bookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_outcomes_total",
			Help:        "Order placement outcomes",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		inconsistentCommit: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "inconsistent_commits_total",
			Help:        "Slot increments committed without a matching order; require manual reconciliation",
			ConstLabels: constLabels,
		}),

		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "settings_cache_lookups_total",
			Help:        "Settings cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),

		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),

		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.bookingOutcomes,
		m.inconsistentCommit,
		m.cacheLookups,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbWaitCount,
	)

	return m
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordBookingOutcome увеличивает счетчик исхода бронирования
func (m *Metrics) RecordBookingOutcome(outcome string) {
	m.bookingOutcomes.WithLabelValues(outcome).Inc()
	if outcome == OutcomeInconsistent {
		m.inconsistentCommit.Inc()
	}
}

// RecordCacheLookup увеличивает счетчик обращений к кэшу (hit/miss/error)
func (m *Metrics) RecordCacheLookup(result string) {
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// ObserveDBPool обновляет метрики connection pool
func (m *Metrics) ObserveDBPool(stats sql.DBStats) {
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}
