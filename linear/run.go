// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// Sentinel errors.
var (
	// ErrEmpty is returned when an op removes or reads from an empty structure.
	ErrEmpty = fault.Define(fault.ErrEmptyStructure, "linear: operation on empty structure")

	// ErrWrongMode is returned for a stack op in queue mode or vice versa.
	ErrWrongMode = fault.Define(fault.ErrStructuralPrecondition, "linear: operation does not fit mode")

	// ErrBadValue is returned for NaN or infinite values.
	ErrBadValue = fault.Define(fault.ErrStructuralPrecondition, "linear: values must be finite")
)

// Result holds the final contents, every value read by pop/peek/dequeue/
// front in order, and the trace.
type Result struct {
	Items   []float64
	Outputs []float64
	Trace   *trace.Trace
}

// Validate dry-runs ops against a structure holding size elements.
func Validate(mode Mode, size int, ops []Op) error {
	for i, op := range ops {
		if op.Kind.mode() != mode {
			return fmt.Errorf("%w: op %d (%s) in %s mode", ErrWrongMode, i+1, op, mode)
		}
		switch {
		case op.Kind.adds():
			if math.IsNaN(op.Value) || math.IsInf(op.Value, 0) {
				return fmt.Errorf("%w: op %d (%s)", ErrBadValue, i+1, op)
			}
			size++
		case size == 0:
			return fmt.Errorf("%w: op %d (%s) on empty %s", ErrEmpty, i+1, op, mode)
		case op.Kind.removes():
			size--
		}
	}

	return nil
}

// Run applies ops to a copy of initial and records one snapshot per op.
// Items are ordered bottom→top for stacks and front→back for queues.
func Run(mode Mode, initial []float64, ops []Op) (*Result, error) {
	for i, v := range initial {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: initial[%d] = %v", ErrBadValue, i, v)
		}
	}
	if err := Validate(mode, len(initial), ops); err != nil {
		return nil, err
	}

	items := slices.Clone(initial)
	outputs := make([]float64, 0, len(ops))
	rec := trace.NewRecorder(mode.String(), len(initial)+len(ops))
	rec.Emit(trace.KindStart, trace.ListState{Mode: mode.String(), Items: items},
		"%s with %d items, %d operations", mode, len(items), len(ops))

	for _, op := range ops {
		st := trace.ListState{Mode: mode.String(), Op: string(op.Kind)}
		var kind trace.Kind
		switch op.Kind {
		case OpPush, OpEnqueue:
			items = append(items, op.Value)
			st.Operand = op.Value
			kind = trace.KindPush
		case OpPop:
			st.Result = items[len(items)-1]
			items = items[:len(items)-1]
			kind = trace.KindPop
		case OpDequeue:
			st.Result = items[0]
			items = items[1:]
			kind = trace.KindPop
		case OpPeek:
			st.Result = items[len(items)-1]
			kind = trace.KindPeek
		case OpFront:
			st.Result = items[0]
			kind = trace.KindPeek
		}
		st.Items = items
		if kind == trace.KindPush {
			rec.Emit(kind, st, "%s: size %d", op, len(items))
			continue
		}
		st.HasResult = true
		outputs = append(outputs, st.Result)
		rec.Emit(kind, st, "%s -> %g: size %d", op, st.Result, len(items))
	}
	rec.Emit(trace.KindDone, trace.ListState{Mode: mode.String(), Items: items}, "done: %d items", len(items))

	tr, err := rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{Items: items, Outputs: outputs, Trace: tr}, nil
}
