// Released under an MIT license. See LICENSE.

// Package metrics records what the engine does.
//
// Metrics:
//   - modal_engine_evaluations_total: top-level evaluations by outcome
//   - modal_engine_steps: steps taken per top-level evaluation
//   - modal_engine_evaluation_duration_seconds: time per top-level evaluation
//   - modal_engine_rewrites_total: rule applications by rule
//   - modal_engine_memo_hits_total: evaluations answered from the memo table
//   - modal_engine_cycles_total: evaluations cut short by the cycle guard
//
// A nil *T is valid and records nothing.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	namespace = "modal"
	subsystem = "engine"
)

// T (metrics) holds the engine's collectors and the registry they live in.
type T struct {
	registry *prometheus.Registry

	cycles      prometheus.Counter
	duration    prometheus.Histogram
	evaluations *prometheus.CounterVec
	memoHits    prometheus.Counter
	rewrites    *prometheus.CounterVec
	steps       prometheus.Histogram
}

// New creates and registers the engine metrics. If registry is nil a
// new registry is created.
func New(registry *prometheus.Registry) *T {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &T{
		registry: registry,

		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycles_total",
			Help:      "Evaluations cut short by the cycle guard",
		}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of top-level evaluations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to 2.6s
		}),

		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "evaluations_total",
			Help:      "Top-level evaluations by outcome",
		}, []string{"outcome"}),

		memoHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "memo_hits_total",
			Help:      "Evaluations answered from the memo table",
		}),

		rewrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rewrites_total",
			Help:      "Rule applications by rule",
		}, []string{"rule"}),

		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "steps",
			Help:      "Steps taken per top-level evaluation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		}),
	}

	registry.MustRegister(
		m.cycles,
		m.duration,
		m.evaluations,
		m.memoHits,
		m.rewrites,
		m.steps,
	)

	return m
}

// Registry returns the registry the metrics are registered with.
func (m *T) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// CycleDetected counts a cycle guard short-circuit.
func (m *T) CycleDetected() {
	if m != nil {
		m.cycles.Inc()
	}
}

// Evaluated records a completed top-level evaluation.
func (m *T) Evaluated(outcome string, steps int, d time.Duration) {
	if m == nil {
		return
	}

	m.evaluations.WithLabelValues(outcome).Inc()
	m.steps.Observe(float64(steps))
	m.duration.Observe(d.Seconds())
}

// MemoHit counts an evaluation answered from the memo table.
func (m *T) MemoHit() {
	if m != nil {
		m.memoHits.Inc()
	}
}

// Rewrote counts an application of the rule named name.
func (m *T) Rewrote(name string) {
	if m != nil {
		m.rewrites.WithLabelValues(name).Inc()
	}
}

// Summary returns one line for each metric sample, sorted.
func (m *T) Summary() ([]string, error) {
	if m == nil {
		return nil, nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string

	for _, f := range families {
		for _, s := range f.GetMetric() {
			lines = append(lines, sample(f.GetName(), s))
		}
	}

	sort.Strings(lines)

	return lines, nil
}

func sample(name string, s *dto.Metric) string {
	var labels []string
	for _, l := range s.GetLabel() {
		labels = append(labels, l.GetName()+"="+l.GetValue())
	}

	if len(labels) > 0 {
		name += "{" + strings.Join(labels, ",") + "}"
	}

	switch {
	case s.Counter != nil:
		return fmt.Sprintf("%s %g", name, s.GetCounter().GetValue())
	case s.Gauge != nil:
		return fmt.Sprintf("%s %g", name, s.GetGauge().GetValue())
	case s.Histogram != nil:
		h := s.GetHistogram()

		mean := 0.0
		if h.GetSampleCount() > 0 {
			mean = h.GetSampleSum() / float64(h.GetSampleCount())
		}

		return fmt.Sprintf("%s count=%d mean=%g", name, h.GetSampleCount(), mean)
	}

	return name
}
