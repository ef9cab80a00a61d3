// SPDX-License-Identifier: MIT
//
// File: trace.go
// Role: Snapshot and Trace, the immutable products of one engine run.

package trace

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrIndexOutOfRange is returned by Trace.At for an index outside [0, Len).
var ErrIndexOutOfRange = errors.New("trace: snapshot index out of range")

// Snapshot is one frozen step of a run. Snapshots are shared by every
// reader of a trace: State and the slices and maps inside it are read only.
// Callers that need a state they can modify use CloneState.
type Snapshot struct {
	Index   int    // position in the owning trace
	Kind    Kind   // transition recorded
	Message string // human-readable description of the step
	State   State  // deep copy of the engine state after the step
}

// CloneState returns a deep copy of the snapshot state that shares no
// memory with the trace.
func (s *Snapshot) CloneState() State {
	if s.State == nil {
		return nil
	}

	return s.State.clone()
}

// Trace is the ordered snapshot sequence produced by one engine invocation.
// A Trace returned by Recorder.Finish always holds at least one snapshot.
type Trace struct {
	ID           uuid.UUID
	Algorithm    string
	ElementCount int // size of the structure the engine ran over
	snapshots    []*Snapshot
}

// Len returns the number of snapshots.
func (t *Trace) Len() int { return len(t.snapshots) }

// At returns the snapshot at index i.
func (t *Trace) At(i int) (*Snapshot, error) {
	if i < 0 || i >= len(t.snapshots) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(t.snapshots))
	}

	return t.snapshots[i], nil
}

// First returns the initial snapshot.
func (t *Trace) First() *Snapshot { return t.snapshots[0] }

// Last returns the terminal snapshot.
func (t *Trace) Last() *Snapshot { return t.snapshots[len(t.snapshots)-1] }

// Snapshots returns the snapshots in order. The slice is fresh; the
// snapshots are shared and must not be modified.
func (t *Trace) Snapshots() []*Snapshot {
	out := make([]*Snapshot, len(t.snapshots))
	copy(out, t.snapshots)

	return out
}

// Kinds returns the kind of every snapshot in order.
func (t *Trace) Kinds() []Kind {
	out := make([]Kind, len(t.snapshots))
	for i, s := range t.snapshots {
		out[i] = s.Kind
	}

	return out
}

// String implements fmt.Stringer.
func (t *Trace) String() string {
	return fmt.Sprintf("%s trace %s (%d snapshots, %d elements)",
		t.Algorithm, t.ID, len(t.snapshots), t.ElementCount)
}
