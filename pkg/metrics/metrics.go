// Package metrics Prometheus-метрики сервиса
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы вызовов и распределений, используемые как значения label'ов
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"

	AllocationSucceeded          = "succeeded"
	AllocationFailed             = "failed"
	AllocationStatusUpdateFailed = "status_update_failed"
	AllocationJournalFailed      = "journal_failed"
)

// Metrics набор коллекторов сервиса
// Все методы безопасны для nil-получателя, что позволяет отключать метрики конфигурацией
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	backendCallsTotal   *prometheus.CounterVec
	backendCallDuration *prometheus.HistogramVec
	allocationsTotal    *prometheus.CounterVec
	activeSessions      prometheus.Gauge
}

// New создает и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		backendCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_backend_calls_total",
			Help:        "Total number of calls to the appointment backend",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),

		backendCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "appointment_backend_call_duration_seconds",
			Help:        "Appointment backend call duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		allocationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_allocations_total",
			Help:        "Allocation workflow outcomes",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "allocation_sessions_active",
			Help:        "Number of open allocation sessions",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.backendCallsTotal,
		m.backendCallDuration,
		m.allocationsTotal,
		m.activeSessions,
	)

	return m
}

// ObserveHTTPRequest учитывает входящий HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveBackendCall учитывает вызов бэкенда записей
func (m *Metrics) ObserveBackendCall(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.backendCallsTotal.WithLabelValues(operation, outcome).Inc()
	m.backendCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncAllocation учитывает исход распределения записи
func (m *Metrics) IncAllocation(outcome string) {
	if m == nil {
		return
	}
	m.allocationsTotal.WithLabelValues(outcome).Inc()
}

// SetActiveSessions выставляет количество открытых сессий
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
