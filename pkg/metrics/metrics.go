package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus коллекторов сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBTransactions   *prometheus.CounterVec
	DBOpenConns      *prometheus.GaugeVec
	DBInUseConns     *prometheus.GaugeVec
	DBIdleConns      *prometheus.GaugeVec
	DBWaitCount      *prometheus.GaugeVec
	DBWaitDurationMs *prometheus.GaugeVec

	// Бизнес-метрики
	BookingsCreated    *prometheus.CounterVec
	BookingTransitions *prometheus.CounterVec
	UsersDeleted       *prometheus.CounterVec
	CascadeRowsDeleted *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
// Используется в тестах с prometheus.NewRegistry()
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: labels,
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: labels,
		}, []string{"operation"}),
		DBTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transactions_total",
			Help:        "Total number of database transactions by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		DBOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}, []string{}),
		DBInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}, []string{}),
		DBIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}, []string{}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}, []string{}),
		DBWaitDurationMs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_duration_milliseconds",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: labels,
		}, []string{}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: labels,
		}, []string{}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_transitions_total",
			Help:        "Booking status transition attempts by target status and result",
			ConstLabels: labels,
		}, []string{"target", "result"}),
		UsersDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "users_deleted_total",
			Help:        "Total number of users removed with their dependent records",
			ConstLabels: labels,
		}, []string{}),
		CascadeRowsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cascade_rows_deleted_total",
			Help:        "Rows removed by cascading deletion, by table",
			ConstLabels: labels,
		}, []string{"table"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBTransactions,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCount,
		m.DBWaitDurationMs,
		m.BookingsCreated,
		m.BookingTransitions,
		m.UsersDeleted,
		m.CascadeRowsDeleted,
	)

	return m
}

// Recorder бизнес-метрики, которые пишут use cases
// Реализация с nil *Metrics ничего не делает, поэтому метрики можно выключить
type Recorder struct {
	m *Metrics
}

// NewRecorder создает Recorder; m может быть nil
func NewRecorder(m *Metrics) *Recorder {
	return &Recorder{m: m}
}

// BookingCreated увеличивает счетчик созданных бронирований
func (r *Recorder) BookingCreated() {
	if r == nil || r.m == nil {
		return
	}
	r.m.BookingsCreated.WithLabelValues().Inc()
}

// BookingTransition фиксирует попытку смены статуса
func (r *Recorder) BookingTransition(target, result string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.BookingTransitions.WithLabelValues(target, result).Inc()
}

// UserDeleted фиксирует каскадное удаление пользователя
func (r *Recorder) UserDeleted(rowsByTable map[string]int64) {
	if r == nil || r.m == nil {
		return
	}
	r.m.UsersDeleted.WithLabelValues().Inc()
	for table, n := range rowsByTable {
		r.m.CascadeRowsDeleted.WithLabelValues(table).Add(float64(n))
	}
}
