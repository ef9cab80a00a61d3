// SPDX-License-Identifier: MIT
//
// File: recorder.go
// Role: append-only snapshot collection used by engines while they run.

package trace

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/stepwise/fault"
)

// ErrEmptyTrace reports an engine that finished without emitting anything.
var ErrEmptyTrace = fault.Define(fault.ErrEngineDefect, "trace: engine emitted no snapshots")

// Recorder accumulates snapshots for one engine run. It is not safe for
// concurrent use; an engine owns its recorder exclusively.
type Recorder struct {
	algorithm string
	elements  int
	snapshots []*Snapshot
}

// NewRecorder starts a recorder for algorithm over a structure of
// elementCount elements.
func NewRecorder(algorithm string, elementCount int) *Recorder {
	return &Recorder{algorithm: algorithm, elements: elementCount}
}

// Emit appends a snapshot holding a deep copy of st. The message is built
// with fmt.Sprintf(format, args...).
func (r *Recorder) Emit(kind Kind, st State, format string, args ...any) {
	r.snapshots = append(r.snapshots, &Snapshot{
		Index:   len(r.snapshots),
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		State:   st.clone(),
	})
}

// Len returns the number of snapshots emitted so far.
func (r *Recorder) Len() int { return len(r.snapshots) }

// Finish seals the recorder into a Trace. The recorder must not be used
// afterwards.
func (r *Recorder) Finish() (*Trace, error) {
	if len(r.snapshots) == 0 {
		return nil, fmt.Errorf("%s: %w", r.algorithm, ErrEmptyTrace)
	}
	t := &Trace{
		ID:           uuid.New(),
		Algorithm:    r.algorithm,
		ElementCount: r.elements,
		snapshots:    r.snapshots,
	}
	r.snapshots = nil

	return t, nil
}
