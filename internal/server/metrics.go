package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rgehrsitz/iltax/internal/domain"
)

// Metrics holds the Prometheus collectors exported on /metrics
type Metrics struct {
	Calculations *prometheus.CounterVec
	Errors       *prometheus.CounterVec
	Duration     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iltax_calculations_total",
			Help: "Completed tax calculations by tax year and employment type.",
		}, []string{"year", "employment_type"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iltax_calculation_errors_total",
			Help: "Rejected or failed calculation requests by reason.",
		}, []string{"reason"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "iltax_calculation_duration_seconds",
			Help:    "Time spent computing a calculation request.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	reg.MustRegister(m.Calculations, m.Errors, m.Duration)
	return m
}

func (m *Metrics) observeCalculation(profile domain.TaxpayerProfile, seconds float64) {
	m.Calculations.WithLabelValues(strconv.Itoa(profile.TaxYear), string(profile.EmploymentType)).Inc()
	m.Duration.Observe(seconds)
}

func (m *Metrics) observeError(reason string) {
	m.Errors.WithLabelValues(reason).Inc()
}
