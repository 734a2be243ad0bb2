package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "mailsort_"

	resultSuccess = "success"
	resultError   = "error"
	resultEmpty   = "empty"
)

var (
	registerOnce sync.Once

	sourceQueryTotal   *prometheus.CounterVec
	sourceQueryLatency *prometheus.HistogramVec

	productivityTotal   *prometheus.CounterVec
	productivityLatency *prometheus.HistogramVec
	productivityEvents  prometheus.Counter
	droppedEvents       prometheus.Counter

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers dashboard metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		sourceQueryTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "source_query_total",
				Help: "Total data source queries by section and result",
			},
			[]string{"section", "result"},
		)
		sourceQueryLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "source_query_latency_seconds",
				Help:    "Data source query latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"section", "result"},
		)

		productivityTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "productivity_report_total",
				Help: "Total productivity reports by result",
			},
			[]string{"result"},
		)
		productivityLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "productivity_report_latency_seconds",
				Help:    "Productivity report latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		productivityEvents = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "productivity_events_total",
				Help: "Total events bucketed into productivity reports",
			},
		)
		droppedEvents = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "productivity_dropped_events_total",
				Help: "Total events dropped because of an invalid timestamp",
			},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total exports by report, format and result",
			},
			[]string{"report", "format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report", "format", "result"},
		)

		prometheus.MustRegister(
			sourceQueryTotal,
			sourceQueryLatency,
			productivityTotal,
			productivityLatency,
			productivityEvents,
			droppedEvents,
			exportTotal,
			exportLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveSourceQuery records a section query duration and result.
func ObserveSourceQuery(section, result string, duration time.Duration) {
	if section == "" {
		section = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if sourceQueryTotal != nil {
		sourceQueryTotal.WithLabelValues(section, result).Inc()
	}
	if sourceQueryLatency != nil {
		sourceQueryLatency.WithLabelValues(section, result).Observe(duration.Seconds())
	}
}

// ObserveProductivity records productivity report latency and result.
func ObserveProductivity(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if productivityTotal != nil {
		productivityTotal.WithLabelValues(result).Inc()
	}
	if productivityLatency != nil {
		productivityLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// AddProductivityEvents counts accepted and dropped events of one report.
func AddProductivityEvents(accepted, dropped int) {
	if accepted > 0 && productivityEvents != nil {
		productivityEvents.Add(float64(accepted))
	}
	if dropped > 0 && droppedEvents != nil {
		droppedEvents.Add(float64(dropped))
	}
}

// ObserveExport records export latency and result.
func ObserveExport(report, format, result string, duration time.Duration) {
	if report == "" {
		report = "unknown"
	}
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(report, format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(report, format, result).Observe(duration.Seconds())
	}
}

// ResultOf maps an error to a result label.
func ResultOf(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
	ResultEmpty   = resultEmpty
)
