// SPDX-License-Identifier: MIT

package mst

import (
	"context"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// Names recorded on the traces.
const (
	AlgorithmPrim    = "prim"
	AlgorithmKruskal = "kruskal"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned for a nil graph pointer.
	ErrGraphNil = fault.Define(fault.ErrStructuralPrecondition, "mst: graph is nil")

	// ErrInvalidGraph indicates a directed or unweighted graph.
	ErrInvalidGraph = fault.Define(fault.ErrStructuralPrecondition, "mst: graph must be undirected and weighted")

	// ErrEmptyGraph indicates a graph without nodes.
	ErrEmptyGraph = fault.Define(fault.ErrEmptyStructure, "mst: graph has no nodes")

	// ErrDisconnected indicates that no single tree spans every node.
	ErrDisconnected = fault.Define(fault.ErrStructuralPrecondition, "mst: graph is disconnected")
)

// Options configures a run.
type Options struct {
	Ctx context.Context
}

// Option configures Options.
type Option func(*Options)

// WithContext sets the context checked before each candidate edge.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

func options(opts []Option) Options {
	o := Options{Ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Result holds the chosen edges in acceptance order, their total weight
// and the recorded trace.
type Result struct {
	Edges  []core.EdgeID
	Weight float64
	Trace  *trace.Trace
}

// validate checks every precondition shared by Prim and Kruskal.
func validate(g *core.Graph) error {
	switch {
	case g == nil:
		return ErrGraphNil
	case g.Directed() || !g.Weighted():
		return ErrInvalidGraph
	case g.NodeCount() == 0:
		return ErrEmptyGraph
	}
	f := newForest(g.NodeIDs())
	joined := 0
	for _, e := range g.Edges() {
		if f.union(e.From, e.To) {
			joined++
		}
	}
	if joined != g.NodeCount()-1 {
		return ErrDisconnected
	}

	return nil
}

// forest is a disjoint-set over node ids with path halving and union by
// rank.
type forest struct {
	parent map[core.NodeID]core.NodeID
	rank   map[core.NodeID]int
}

func newForest(ids []core.NodeID) *forest {
	f := &forest{
		parent: make(map[core.NodeID]core.NodeID, len(ids)),
		rank:   make(map[core.NodeID]int, len(ids)),
	}
	for _, id := range ids {
		f.parent[id] = id
	}

	return f
}

func (f *forest) find(u core.NodeID) core.NodeID {
	for f.parent[u] != u {
		f.parent[u] = f.parent[f.parent[u]]
		u = f.parent[u]
	}

	return u
}

// union merges the sets of u and v and reports whether they were apart.
func (f *forest) union(u, v core.NodeID) bool {
	ru, rv := f.find(u), f.find(v)
	if ru == rv {
		return false
	}
	if f.rank[ru] < f.rank[rv] {
		ru, rv = rv, ru
	}
	f.parent[rv] = ru
	if f.rank[ru] == f.rank[rv] {
		f.rank[ru]++
	}

	return true
}

// byWeight orders edges by weight, then id.
func byWeight(a, b core.Edge) bool {
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}

	return a.ID < b.ID
}
