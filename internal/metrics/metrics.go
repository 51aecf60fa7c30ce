// Package metrics exposes Prometheus instruments for report generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "roomledger_"

	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds the instruments recorded while building and exporting
// reports. A nil *Metrics is valid and records nothing.
type Metrics struct {
	reportsTotal      *prometheus.CounterVec
	reportDuration    prometheus.Histogram
	transfers         prometheus.Histogram
	precisionWarnings prometheus.Counter
	exportsTotal      *prometheus.CounterVec
}

// New creates the instruments and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reports_total",
				Help: "Total report builds by result",
			},
			[]string{"result"},
		),
		reportDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_duration_seconds",
				Help:    "Report build latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		transfers: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "settlement_transfers",
				Help:    "Number of settlement transfers per report",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
		),
		precisionWarnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "precision_warnings_total",
				Help: "Reports whose rounded balances drifted from zero",
			},
		),
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total report exports by format",
			},
			[]string{"format"},
		),
	}

	reg.MustRegister(
		m.reportsTotal,
		m.reportDuration,
		m.transfers,
		m.precisionWarnings,
		m.exportsTotal,
	)
	return m
}

// ObserveReport records one report build.
func (m *Metrics) ObserveReport(err error, duration time.Duration) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.reportsTotal.WithLabelValues(result).Inc()
	m.reportDuration.Observe(duration.Seconds())
}

// ObserveSettlements records how many transfers a report proposed.
func (m *Metrics) ObserveSettlements(n int) {
	if m == nil {
		return
	}
	m.transfers.Observe(float64(n))
}

// IncPrecisionWarning counts a report that raised a precision warning.
func (m *Metrics) IncPrecisionWarning() {
	if m == nil {
		return
	}
	m.precisionWarnings.Inc()
}

// IncExport counts a rendered export document.
func (m *Metrics) IncExport(format string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(format).Inc()
}
