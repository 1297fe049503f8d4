package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/algoviz/pkg/domain"
)

const namespace = "algoviz"

// Metrics holds the collectors fed by the lifecycle hooks.
type Metrics struct {
	Loads     *prometheus.CounterVec
	Submits   *prometheus.CounterVec
	Drops     *prometheus.CounterVec
	Resets    *prometheus.CounterVec
	Durations *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_loads_total",
			Help:      "Engines loaded into a page, by algorithm and fallback.",
		}, []string{"algorithm", "fallback"}),
		Submits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Operations that reached the engine, by outcome.",
		}, []string{"algorithm", "kind", "result"}),
		Drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_dropped_total",
			Help:      "Submissions ignored before reaching the engine.",
		}, []string{"algorithm", "kind", "reason"}),
		Resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Clear requests that ran, by outcome.",
		}, []string{"algorithm", "result"}),
		Durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of operations including their animation.",
			Buckets:   []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		}, []string{"algorithm", "kind"}),
	}
	reg.MustRegister(m.Loads, m.Submits, m.Drops, m.Resets, m.Durations)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEngineLoad: func(ctx context.Context, e *domain.LoadEvent) {
			m.Loads.WithLabelValues(e.Algorithm, strconv.FormatBool(e.Fallback)).Inc()
		},
		OnSubmit: func(ctx context.Context, e *domain.OperationEvent) {
			m.Submits.WithLabelValues(e.Algorithm, string(e.Kind), result(e.Err)).Inc()
			m.Durations.WithLabelValues(e.Algorithm, string(e.Kind)).Observe(e.Duration.Seconds())
		},
		OnDrop: func(ctx context.Context, e *domain.OperationEvent) {
			m.Drops.WithLabelValues(e.Algorithm, string(e.Kind), e.Reason).Inc()
		},
		OnReset: func(ctx context.Context, e *domain.OperationEvent) {
			m.Resets.WithLabelValues(e.Algorithm, result(e.Err)).Inc()
		},
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
