// Package metrics records what a seqcalc run did: evaluations per operation,
// their durations, the number of terms produced, and runtime memory usage.
// Metrics live on a private Prometheus registry so that several recorders
// (one per run, one per test) never collide.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "seqcalc"

// Evaluation outcomes used as the "status" label.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// Recorder collects the metrics of one run.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	terms       *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry. Memory gauges are
// read from mc at gather time.
func NewRecorder(mc *MemoryCollector) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of evaluated operations",
			},
			[]string{"operation", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of an evaluation in seconds",
				Buckets:   []float64{.0001, .001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"operation"},
		),
		terms: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "terms_produced_total",
				Help:      "Number of sequence terms returned to the caller",
			},
			[]string{"operation"},
		),
	}
	r.registry.MustRegister(r.evaluations, r.duration, r.terms)

	if mc == nil {
		mc = NewMemoryCollector()
	}
	r.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Bytes of allocated heap objects",
		}, func() float64 { return float64(mc.Snapshot().HeapAlloc) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "Number of completed GC cycles",
		}, func() float64 { return float64(mc.Snapshot().NumGC) }),
	)
	return r
}

// ObserveEvaluation records one finished evaluation.
func (r *Recorder) ObserveEvaluation(operation, status string, d time.Duration, terms int) {
	r.evaluations.WithLabelValues(operation, status).Inc()
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
	if terms > 0 {
		r.terms.WithLabelValues(operation).Add(float64(terms))
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format, sorted by name.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
