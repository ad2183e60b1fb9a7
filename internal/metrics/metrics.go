// Package metrics exposes Prometheus collectors for job execution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the job collectors. Use New with a dedicated registry in tests.
type Metrics struct {
	JobsTotal     *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
	RowsProcessed *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		JobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wrangler_jobs_total",
			Help: "Jobs finished, by operation and final status.",
		}, []string{"operation", "status"}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wrangler_job_duration_seconds",
			Help:    "Wall-clock duration of finished jobs.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"operation"}),
		RowsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wrangler_rows_processed_total",
			Help: "Rows written by successful jobs.",
		}, []string{"operation"}),
	}

	if reg != nil {
		reg.MustRegister(m.JobsTotal, m.JobDuration, m.RowsProcessed)
	}
	return m
}

// ObserveJob records one finished job.
func (m *Metrics) ObserveJob(operation, status string, seconds float64, rows int) {
	if m == nil {
		return
	}
	m.JobsTotal.WithLabelValues(operation, status).Inc()
	m.JobDuration.WithLabelValues(operation).Observe(seconds)
	if rows > 0 {
		m.RowsProcessed.WithLabelValues(operation).Add(float64(rows))
	}
}
