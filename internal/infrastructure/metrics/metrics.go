package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for netly-server
type Metrics struct {
	// HTTP surface
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Application user auth
	AuthRequestsTotal *prometheus.CounterVec

	// Telegram channel operations
	TelegramOperationsTotal   *prometheus.CounterVec
	TelegramOperationErrors   *prometheus.CounterVec
	TelegramOperationDuration *prometheus.HistogramVec
	ModerationSteps           *prometheus.CounterVec

	// Kafka metrics
	KafkaMessagesProduced prometheus.Counter
	KafkaProduceErrors    *prometheus.CounterVec
	KafkaProduceDuration  prometheus.Histogram
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

// NewMetrics registers all collectors with the default registry.
// It must be called once per process; use GetDefaultMetrics.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netly_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netly_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"method", "route"},
		),

		AuthRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netly_auth_requests_total",
				Help: "Total number of signup and signin requests by result",
			},
			[]string{"operation", "result"},
		),

		TelegramOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netly_telegram_operations_total",
				Help: "Total number of successful Telegram operations",
			},
			[]string{"operation"},
		),
		TelegramOperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netly_telegram_operation_errors_total",
				Help: "Total number of failed Telegram operations",
			},
			[]string{"operation", "error_type"},
		),
		TelegramOperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netly_telegram_operation_duration_seconds",
				Help:    "Duration of Telegram operations in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
		ModerationSteps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netly_moderation_steps_total",
				Help: "Ban and unban strategy steps by outcome",
			},
			[]string{"action", "step", "outcome"},
		),

		KafkaMessagesProduced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "netly_kafka_messages_produced_total",
			Help: "Total number of channel events produced to Kafka",
		}),
		KafkaProduceErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netly_kafka_produce_errors_total",
				Help: "Total number of Kafka produce errors",
			},
			[]string{"error_type"},
		),
		KafkaProduceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "netly_kafka_produce_duration_seconds",
			Help:    "Duration of Kafka produce operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// RecordAuth records a signup or signin attempt
func (m *Metrics) RecordAuth(operation string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.AuthRequestsTotal.WithLabelValues(operation, result).Inc()
}

// RecordTelegramOperation records a successful Telegram operation
func (m *Metrics) RecordTelegramOperation(operation string, duration float64) {
	m.TelegramOperationsTotal.WithLabelValues(operation).Inc()
	m.TelegramOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordTelegramError records a failed Telegram operation with error type
func (m *Metrics) RecordTelegramError(operation, errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.TelegramOperationErrors.WithLabelValues(operation, errorType).Inc()
}

// RecordModerationStep records the outcome of one ban/unban strategy step
func (m *Metrics) RecordModerationStep(action, step, outcome string) {
	m.ModerationSteps.WithLabelValues(action, step, outcome).Inc()
}

// RecordKafkaMessage records a Kafka message production with duration
func (m *Metrics) RecordKafkaMessage(duration float64) {
	m.KafkaMessagesProduced.Inc()
	m.KafkaProduceDuration.Observe(duration)
}

// RecordKafkaError records a Kafka production error with error type
func (m *Metrics) RecordKafkaError(errorType string) {
	if errorType == "" {
		errorType = "unknown"
	}
	m.KafkaProduceErrors.WithLabelValues(errorType).Inc()
}

// RecordHTTPRequest records a served request. Route is the matched pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}
