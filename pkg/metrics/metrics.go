package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы создания бронирования для счётчика reservation_outcomes_total
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeBusy     = "busy"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	reservationOutcomes *prometheus.CounterVec
	lockWaitDuration    *prometheus.HistogramVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном registerer (удобно для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database queries finished with error",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		reservationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_outcomes_total",
			Help:        "Reservation creation attempts by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		lockWaitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "reservation_lock_wait_seconds",
			Help:        "Time spent waiting for the per-office reservation lock",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2, 3, 5},
		}, []string{"acquired"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.reservationOutcomes,
		m.lockWaitDuration,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery реализует dbmetrics.Recorder
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats реализует dbmetrics.Recorder
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbIdleConns.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// RecordReservationOutcome увеличивает счётчик исходов создания бронирования
func (m *Metrics) RecordReservationOutcome(outcome string) {
	m.reservationOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveLockWait фиксирует время ожидания блокировки офиса
func (m *Metrics) ObserveLockWait(duration time.Duration, acquired bool) {
	m.lockWaitDuration.WithLabelValues(strconv.FormatBool(acquired)).Observe(duration.Seconds())
}
