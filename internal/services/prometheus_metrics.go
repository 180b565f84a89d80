package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric names accepted by PrometheusMetrics.
const (
	MetricTransactionMutation = "transaction_mutation"
	MetricOwnershipDenied     = "ownership_denied"
	MetricReportGenerated     = "report_generated"
	MetricReportDuration      = "report_duration"
	MetricReportTransactions  = "report_transactions"
	MetricEventPublished      = "event_published"
)

type PrometheusMetrics struct {
	transactionMutations *prometheus.CounterVec
	ownershipDenied      *prometheus.CounterVec
	reportsGenerated     *prometheus.CounterVec
	reportDuration       prometheus.Histogram
	reportTransactions   prometheus.Histogram
	eventsPublished      *prometheus.CounterVec
}

// NewPrometheusMetrics registers collectors with registerer. A nil
// registerer uses the default registry.
func NewPrometheusMetrics(registerer prometheus.Registerer) MetricsRecorderInterface {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		transactionMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_transaction_mutations_total",
				Help: "Total number of transaction create/update/delete attempts",
			},
			[]string{"operation", "status"},
		),
		ownershipDenied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_ownership_denied_total",
				Help: "Total number of update/delete attempts rejected by the ownership guard",
			},
			[]string{"operation", "reason"},
		),
		reportsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_reports_generated_total",
				Help: "Total number of monthly reports requested",
			},
			[]string{"status"},
		),
		reportDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finance_report_duration_milliseconds",
				Help:    "Monthly report generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		reportTransactions: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finance_report_transactions",
				Help:    "Number of transactions included in a monthly report",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		eventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_events_published_total",
				Help: "Total number of transaction events handed to the publisher",
			},
			[]string{"event", "status"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricTransactionMutation:
		m.transactionMutations.WithLabelValues(tags["operation"], tags["status"]).Inc()
	case MetricOwnershipDenied:
		m.ownershipDenied.WithLabelValues(tags["operation"], tags["reason"]).Inc()
	case MetricReportGenerated:
		m.reportsGenerated.WithLabelValues(tags["status"]).Inc()
	case MetricEventPublished:
		m.eventsPublished.WithLabelValues(tags["event"], tags["status"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case MetricReportDuration:
		m.reportDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricReportTransactions:
		m.reportTransactions.Observe(value)
	}
}

// NoopMetrics discards every measurement.
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(string, map[string]string) {}
func (NoopMetrics) RecordProcessingTime(string, time.Duration) {}
func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
