// SPDX-License-Identifier: MIT

package mst

import (
	"slices"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/trace"
)

// Kruskal builds a minimum spanning tree by scanning edges in ascending
// weight order and keeping each one that joins two components. The scan
// stops as soon as the tree spans every node.
func Kruskal(g *core.Graph, opts ...Option) (*Result, error) {
	if err := validate(g); err != nil {
		return nil, err
	}
	o := options(opts)

	n := g.NodeCount()
	edges := g.Edges()
	slices.SortStableFunc(edges, func(a, b core.Edge) int {
		switch {
		case byWeight(a, b):
			return -1
		case byWeight(b, a):
			return 1
		}
		return 0
	})

	var (
		rec     = trace.NewRecorder(AlgorithmKruskal, n)
		f       = newForest(g.NodeIDs())
		touched = make([]core.NodeID, 0, n)
		chosen  []core.EdgeID
		weight  float64
	)
	emit := func(kind trace.Kind, edge core.EdgeID, format string, args ...any) {
		rec.Emit(kind, trace.GraphState{
			Current:    core.NoNode,
			ActiveEdge: edge,
			Visited:    touched,
			TreeEdges:  chosen,
		}, format, args...)
	}
	touch := func(id core.NodeID) {
		if !slices.Contains(touched, id) {
			touched = append(touched, id)
		}
	}

	emit(trace.KindStart, core.NoEdge, "%d edges sorted by weight", len(edges))
	if n == 1 {
		touch(g.NodeIDs()[0])
	}
	for _, e := range edges {
		if len(chosen) == n-1 {
			break
		}
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		emit(trace.KindExamine, e.ID, "examine edge %d (%d-%d, weight %g)", e.ID, e.From, e.To, e.Weight)
		if !f.union(e.From, e.To) {
			emit(trace.KindReject, e.ID, "reject edge %d: %d and %d already connected", e.ID, e.From, e.To)
			continue
		}
		touch(e.From)
		touch(e.To)
		chosen = append(chosen, e.ID)
		weight += e.Weight
		emit(trace.KindAccept, e.ID, "accept edge %d, total %g", e.ID, weight)
	}
	emit(trace.KindDone, core.NoEdge, "done: %d edges, total weight %g", len(chosen), weight)

	tr, err := rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{Edges: chosen, Weight: weight, Trace: tr}, nil
}
