// SPDX-License-Identifier: MIT
//
// Package dijkstra defines configuration options, the result type and
// sentinel errors for the shortest-path engine.

package dijkstra

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// Algorithm is the name recorded on every Dijkstra trace.
const Algorithm = "dijkstra"

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrGraphNil indicates that a nil *core.Graph was passed to Dijkstra.
	ErrGraphNil = fault.Define(fault.ErrStructuralPrecondition, "dijkstra: graph is nil")

	// ErrUnweightedGraph indicates that the graph was not marked as weighted.
	ErrUnweightedGraph = fault.Define(fault.ErrStructuralPrecondition, "dijkstra: graph must be weighted")

	// ErrNegativeWeight indicates that a negative edge weight was detected.
	ErrNegativeWeight = fault.Define(fault.ErrStructuralPrecondition, "dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrUnreachable is returned by PathTo for a node with infinite distance.
	ErrUnreachable = errors.New("dijkstra: target unreachable")
)

// Options configures the behavior of the Dijkstra algorithm.
//
// Source      – starting node id (must be present in the graph).
// Target      – optional node whose path is highlighted on the trace.
// MaxDistance – nodes whose distance exceeds this value are not visited.
type Options struct {
	Ctx         context.Context
	Source      core.NodeID
	Target      core.NodeID
	MaxDistance float64
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// DefaultOptions returns Options for the given source: no target, no
// distance cap, background context.
func DefaultOptions(source core.NodeID) Options {
	return Options{
		Ctx:         context.Background(),
		Source:      source,
		Target:      core.NoNode,
		MaxDistance: math.Inf(1),
	}
}

// Source sets the starting node.
func Source(id core.NodeID) Option {
	return func(o *Options) { o.Source = id }
}

// WithTarget adds a path snapshot for target before the terminal snapshot.
func WithTarget(id core.NodeID) Option {
	return func(o *Options) { o.Target = id }
}

// WithContext sets the context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDistance stops selection once the closest unvisited node is
// farther than max. Panics on a negative or NaN value.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}

	return func(o *Options) { o.MaxDistance = max }
}

// Result holds final distances and parents.
type Result struct {
	Source core.NodeID

	// Distance holds an entry for every node; +Inf when unreachable.
	Distance map[core.NodeID]float64

	// Parent links each reached non-source node to its predecessor.
	Parent map[core.NodeID]core.NodeID

	// Order lists nodes in the order they were finalized.
	Order []core.NodeID

	Trace *trace.Trace
}

// PathTo follows parent links from target back to the source and returns
// the path source-first along with its total weight.
func (r *Result) PathTo(target core.NodeID) ([]core.NodeID, float64, error) {
	d, ok := r.Distance[target]
	if !ok || math.IsInf(d, 1) {
		return nil, math.Inf(1), fmt.Errorf("%w: node %d", ErrUnreachable, target)
	}

	return pathTo(r.Parent, r.Source, target), d, nil
}

// pathTo assumes target is reachable.
func pathTo(parent map[core.NodeID]core.NodeID, source, target core.NodeID) []core.NodeID {
	path := []core.NodeID{target}
	for cur := target; cur != source; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
