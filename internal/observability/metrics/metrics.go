package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "lineboard_"

	resultSuccess = "success"
	resultError   = "error"

	recordKindProduction = "production"
	recordKindDowntime   = "downtime"
)

var (
	registerOnce sync.Once

	workbooksTotal  *prometheus.CounterVec
	workbookLatency *prometheus.HistogramVec

	sheetsTotal   prometheus.Counter
	recordsTotal  *prometheus.CounterVec
	warningsTotal prometheus.Counter

	aggregationTotal   *prometheus.CounterVec
	aggregationLatency *prometheus.HistogramVec
)

// Init registers observability metrics.
func Init() {
	registerOnce.Do(func() {
		workbooksTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "workbooks_total",
				Help: "Total workbook extractions by result",
			},
			[]string{"result"},
		)
		workbookLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "workbook_latency_seconds",
				Help:    "Workbook extraction latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		sheetsTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "sheets_total",
				Help: "Total sheets extracted",
			},
		)
		recordsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "records_total",
				Help: "Total extracted records by kind",
			},
			[]string{"kind"},
		)
		warningsTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "extraction_warnings_total",
				Help: "Total non-fatal extraction warnings",
			},
		)

		aggregationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "aggregation_total",
				Help: "Total metric aggregations by result",
			},
			[]string{"result"},
		)
		aggregationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "aggregation_latency_seconds",
				Help:    "Metric aggregation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			workbooksTotal,
			workbookLatency,
			sheetsTotal,
			recordsTotal,
			warningsTotal,
			aggregationTotal,
			aggregationLatency,
		)
	})
}

// ObserveWorkbook records one workbook extraction.
func ObserveWorkbook(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if workbooksTotal != nil {
		workbooksTotal.WithLabelValues(result).Inc()
	}
	if workbookLatency != nil {
		workbookLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// AddSheets increments the extracted sheet counter.
func AddSheets(count int) {
	if count <= 0 {
		return
	}
	if sheetsTotal != nil {
		sheetsTotal.Add(float64(count))
	}
}

// AddProductionRecords increments the production record counter.
func AddProductionRecords(count int) {
	addRecords(recordKindProduction, count)
}

// AddDowntimeEvents increments the downtime event counter.
func AddDowntimeEvents(count int) {
	addRecords(recordKindDowntime, count)
}

func addRecords(kind string, count int) {
	if count <= 0 {
		return
	}
	if recordsTotal != nil {
		recordsTotal.WithLabelValues(kind).Add(float64(count))
	}
}

// AddWarnings increments the warning counter.
func AddWarnings(count int) {
	if count <= 0 {
		return
	}
	if warningsTotal != nil {
		warningsTotal.Add(float64(count))
	}
}

// ObserveAggregation records one metrics aggregation.
func ObserveAggregation(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if aggregationTotal != nil {
		aggregationTotal.WithLabelValues(result).Inc()
	}
	if aggregationLatency != nil {
		aggregationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
