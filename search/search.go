// SPDX-License-Identifier: MIT
//
// Package search records linear and binary search over a float64 array.
//
// Every probe is a snapshot showing the live window [Lo, Hi]. Binary search
// requires non-decreasing input and reports ErrUnsorted otherwise; it
// returns the first index it happens to probe that matches, not necessarily
// the leftmost occurrence.
package search

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// Algorithm names recorded on traces.
const (
	AlgorithmLinear = "linear-search"
	AlgorithmBinary = "binary-search"
)

// Sentinel errors.
var (
	// ErrUnsorted is returned by Binary for input that is not non-decreasing.
	ErrUnsorted = fault.Define(fault.ErrStructuralPrecondition, "search: input is not sorted")

	// ErrBadValue is returned for NaN or infinite values or target.
	ErrBadValue = fault.Define(fault.ErrStructuralPrecondition, "search: values must be finite")
)

// Result holds the located index (trace.None when absent), the number of
// probes and the trace.
type Result struct {
	Index  int
	Probes int
	Trace  *trace.Trace
}

// Found reports whether the target was located.
func (r *Result) Found() bool { return r.Index != trace.None }

type prober struct {
	values []float64
	target float64
	rec    *trace.Recorder
	probes int
}

func newProber(name string, values []float64, target float64) (*prober, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return nil, fmt.Errorf("%w: target %v", ErrBadValue, target)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: values[%d] = %v", ErrBadValue, i, v)
		}
	}

	return &prober{values: values, target: target, rec: trace.NewRecorder(name, len(values))}, nil
}

func (p *prober) emit(kind trace.Kind, lo, hi, probe, found int, format string, args ...any) {
	p.rec.Emit(kind, trace.SearchState{
		Values: p.values,
		Target: p.target,
		Lo:     lo,
		Hi:     hi,
		Probe:  probe,
		Found:  found,
	}, format, args...)
}

func (p *prober) finish(lo, hi, found int) (*Result, error) {
	if found == trace.None {
		p.emit(trace.KindDone, lo, hi, trace.None, found, "done: %g not found after %d probes", p.target, p.probes)
	} else {
		p.emit(trace.KindDone, found, found, trace.None, found, "done: %g at index %d after %d probes", p.target, found, p.probes)
	}
	tr, err := p.rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{Index: found, Probes: p.probes, Trace: tr}, nil
}

// Linear probes each index from the left until target is found.
func Linear(values []float64, target float64) (*Result, error) {
	p, err := newProber(AlgorithmLinear, values, target)
	if err != nil {
		return nil, err
	}
	hi := len(values) - 1
	p.emit(trace.KindStart, 0, hi, trace.None, trace.None, "search %g in %d values", target, len(values))

	for i, v := range values {
		p.probes++
		p.emit(trace.KindProbe, i, hi, i, trace.None, "probe index %d: %g", i, v)
		if v == target {
			p.emit(trace.KindFound, i, i, i, i, "found %g at index %d", target, i)
			return p.finish(i, i, i)
		}
	}

	return p.finish(len(values), hi, trace.None)
}

// Binary halves the window [lo, hi] around the midpoint until target is
// found or the window is empty.
func Binary(values []float64, target float64) (*Result, error) {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return nil, fmt.Errorf("%w: values[%d] = %g < values[%d] = %g", ErrUnsorted, i, values[i], i-1, values[i-1])
		}
	}
	p, err := newProber(AlgorithmBinary, values, target)
	if err != nil {
		return nil, err
	}

	lo, hi := 0, len(values)-1
	p.emit(trace.KindStart, lo, hi, trace.None, trace.None, "search %g in %d sorted values", target, len(values))
	for lo <= hi {
		mid := lo + (hi-lo)/2
		p.probes++
		p.emit(trace.KindProbe, lo, hi, mid, trace.None, "probe index %d in [%d,%d]: %g", mid, lo, hi, values[mid])
		switch {
		case values[mid] == target:
			p.emit(trace.KindFound, mid, mid, mid, mid, "found %g at index %d", target, mid)
			return p.finish(mid, mid, mid)
		case values[mid] < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}

	return p.finish(lo, hi, trace.None)
}
