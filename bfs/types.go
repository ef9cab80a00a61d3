// SPDX-License-Identifier: MIT
//
// Package bfs provides tunable options, the result type and error
// definitions for breadth-first search over a core.Graph.

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// Algorithm is the name recorded on every BFS trace.
const Algorithm = "bfs"

// Sentinel errors for BFS execution.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = fault.Define(fault.ErrStructuralPrecondition, "bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = fault.Define(fault.ErrStructuralPrecondition, "bfs: invalid option supplied")

	// ErrNoPath is returned by PathTo for a node the search never reached.
	ErrNoPath = errors.New("bfs: no path")
)

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when BFS
// is invoked.
type Option func(*Options)

// Options holds parameters to customize BFS execution.
type Options struct {
	// Ctx allows cancellation; checked once per dequeue.
	Ctx context.Context

	// MaxDepth, if > 0, stops discovering beyond this depth.
	MaxDepth int

	err error
}

// DefaultOptions returns background context and no depth limit.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a BFS traversal:
//   - Order: nodes visited, in visit sequence.
//   - Distance: hop count from the start for every reached node.
//   - Parent: predecessor in the BFS tree (absent for the start).
//   - Trace: the recorded snapshots.
type Result struct {
	Start    core.NodeID
	Order    []core.NodeID
	Distance map[core.NodeID]int
	Parent   map[core.NodeID]core.NodeID
	Trace    *trace.Trace
}

// PathTo reconstructs the fewest-hop path from the start to dest.
func (r *Result) PathTo(dest core.NodeID) ([]core.NodeID, error) {
	if _, ok := r.Distance[dest]; !ok {
		return nil, fmt.Errorf("%w to %d", ErrNoPath, dest)
	}
	path := []core.NodeID{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
