// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors for runs and structure
// mutations. Collectors are registered on a caller-supplied registry so
// tests and the CLI each get their own.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/stepwise/fault"
)

// Run outcomes, used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeParse        = "parse"
	OutcomePrecondition = "precondition"
	OutcomeEmpty        = "empty"
	OutcomeDefect       = "defect"
	OutcomeCanceled     = "canceled"
	OutcomeUnknown      = "unknown"
)

// Recorder groups the collectors. A nil *Recorder records nothing.
type Recorder struct {
	runs      *prometheus.CounterVec
	snapshots *prometheus.HistogramVec
	duration  *prometheus.HistogramVec
	mutations *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)

	return &Recorder{
		runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_runs_total",
				Help: "Algorithm runs by outcome",
			},
			[]string{"algorithm", "outcome"},
		),
		snapshots: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stepwise_trace_snapshots",
				Help:    "Snapshots per successful trace",
				Buckets: prometheus.ExponentialBuckets(4, 2, 10),
			},
			[]string{"algorithm"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stepwise_run_duration_seconds",
				Help:    "Wall time spent generating a trace",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"algorithm"},
		),
		mutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_structure_mutations_total",
				Help: "Structure mutations by operation",
			},
			[]string{"op"},
		),
	}
}

// Outcome classifies a run error for the outcome label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return OutcomeCanceled
	}
	switch fault.Category(err) {
	case fault.ErrInputParse:
		return OutcomeParse
	case fault.ErrStructuralPrecondition:
		return OutcomePrecondition
	case fault.ErrEmptyStructure:
		return OutcomeEmpty
	case fault.ErrEngineDefect:
		return OutcomeDefect
	}

	return OutcomeUnknown
}

// ObserveRun records one run. snapshots is ignored for failed runs.
func (r *Recorder) ObserveRun(algorithm string, err error, snapshots int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(algorithm, Outcome(err)).Inc()
	r.duration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	if err == nil {
		r.snapshots.WithLabelValues(algorithm).Observe(float64(snapshots))
	}
}

// Mutation records one structure mutation.
func (r *Recorder) Mutation(op string) {
	if r == nil {
		return
	}
	r.mutations.WithLabelValues(op).Inc()
}
