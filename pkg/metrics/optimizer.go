package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OptimizerMetrics records duration and outcome counters for optimization runs.
type OptimizerMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	excluded *prometheus.CounterVec
}

// NewOptimizerMetrics registers the optimizer metrics on the provided registerer.
func NewOptimizerMetrics(reg prometheus.Registerer) *OptimizerMetrics {
	if reg == nil {
		return &OptimizerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "optimization_duration_seconds",
		Help:    "Duration of shopping list optimization runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"focus", "strategy"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optimization_success",
		Help: "Successful optimization runs.",
	}, []string{"focus", "strategy"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optimization_failure",
		Help: "Failed optimization runs.",
	}, []string{"focus", "strategy"})
	excluded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "optimization_items_excluded",
		Help: "Shopping list items dropped during budget fitting.",
	}, []string{"focus"})
	reg.MustRegister(duration, success, failure, excluded)
	return &OptimizerMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		excluded: excluded,
	}
}

// ObserveDuration records the duration for a run with the given focus/strategy.
func (m *OptimizerMetrics) ObserveDuration(focus, strategy string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(focus), normalizeLabel(strategy)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter.
func (m *OptimizerMetrics) IncSuccess(focus, strategy string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(focus), normalizeLabel(strategy)).Inc()
}

// IncFailure increments the failure counter.
func (m *OptimizerMetrics) IncFailure(focus, strategy string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(focus), normalizeLabel(strategy)).Inc()
}

// AddExcluded adds the number of items dropped during budget fitting.
func (m *OptimizerMetrics) AddExcluded(focus string, count int) {
	if m == nil || m.excluded == nil || count <= 0 {
		return
	}
	m.excluded.WithLabelValues(normalizeLabel(focus)).Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
