package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	ruleEvaluations    *prometheus.CounterVec
	versionValidations *prometheus.CounterVec
	duration           *prometheus.HistogramVec
}

// newMetrics registers the engine metrics on reg. A nil reg leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		ruleEvaluations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "setcheck_rule_evaluations_total",
			Help: "Number of rule evaluations, by version and outcome.",
		}, []string{"version", "outcome"}),
		versionValidations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "setcheck_version_validations_total",
			Help: "Number of version validation runs, by version and final status.",
		}, []string{"version", "status"}),
		duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "setcheck_version_validation_duration_seconds",
			Help:    "Time spent validating one version document.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"version"}),
	}
}

func (m *metrics) observe(r VersionReport) {
	passed, failed := r.Results.Count()
	m.ruleEvaluations.WithLabelValues(r.Version, "passed").Add(float64(passed))
	m.ruleEvaluations.WithLabelValues(r.Version, "failed").Add(float64(failed))
	m.versionValidations.WithLabelValues(r.Version, string(r.Status)).Inc()
	m.duration.WithLabelValues(r.Version).Observe(r.Duration.Seconds())
}
