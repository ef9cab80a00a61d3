// SPDX-License-Identifier: MIT

package dijkstra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/trace"
)

// runner encapsulates mutable state during one run.
type runner struct {
	g    *core.Graph
	opts Options
	rec  *trace.Recorder

	ids        []core.NodeID
	dist       map[core.NodeID]float64
	parent     map[core.NodeID]core.NodeID
	parentEdge map[core.NodeID]core.EdgeID
	visited    map[core.NodeID]bool
	order      []core.NodeID
	frontier   []core.NodeID // unvisited nodes with finite distance, id order
}

// Dijkstra computes shortest paths from the Source option over g.
//
// Example:
//
//	res, err := dijkstra.Dijkstra(g, dijkstra.Source(a), dijkstra.WithTarget(b))
//	path, cost, err := res.PathTo(b)
func Dijkstra(g *core.Graph, opts ...Option) (*Result, error) {
	o := DefaultOptions(core.NoNode)
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate(g, o); err != nil {
		return nil, err
	}

	r := newRunner(g, o)
	r.emit(trace.KindStart, o.Source, core.NoEdge, nil, "start at node %d", o.Source)
	if err := r.loop(); err != nil {
		return nil, err
	}

	var path []core.NodeID
	if o.Target != core.NoNode {
		if math.IsInf(r.dist[o.Target], 1) {
			r.emit(trace.KindDone, core.NoNode, core.NoEdge, nil,
				"done: node %d unreachable", o.Target)
		} else {
			path = pathTo(r.parent, o.Source, o.Target)
			r.emit(trace.KindPath, o.Target, core.NoEdge, path,
				"path to node %d costs %g over %d edges", o.Target, r.dist[o.Target], len(path)-1)
			r.emit(trace.KindDone, core.NoNode, core.NoEdge, path, "done: %d nodes finalized", len(r.order))
		}
	} else {
		r.emit(trace.KindDone, core.NoNode, core.NoEdge, nil, "done: %d nodes finalized", len(r.order))
	}

	tr, err := r.rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{
		Source:   o.Source,
		Distance: r.dist,
		Parent:   r.parent,
		Order:    r.order,
		Trace:    tr,
	}, nil
}

// validate checks preconditions in their documented order.
func validate(g *core.Graph, o Options) error {
	if g == nil {
		return ErrGraphNil
	}
	if !g.HasNode(o.Source) {
		return fmt.Errorf("dijkstra: source %d: %w", o.Source, core.ErrNodeNotFound)
	}
	if o.Target != core.NoNode && !g.HasNode(o.Target) {
		return fmt.Errorf("dijkstra: target %d: %w", o.Target, core.ErrNodeNotFound)
	}
	if !g.Weighted() {
		return ErrUnweightedGraph
	}
	for _, e := range g.Edges() {
		if e.Weight < 0 {
			return fmt.Errorf("%w: edge %d (%d-%d) has weight %g", ErrNegativeWeight, e.ID, e.From, e.To, e.Weight)
		}
	}

	return nil
}

func newRunner(g *core.Graph, o Options) *runner {
	ids := g.NodeIDs()
	r := &runner{
		g:          g,
		opts:       o,
		rec:        trace.NewRecorder(Algorithm, len(ids)),
		ids:        ids,
		dist:       make(map[core.NodeID]float64, len(ids)),
		parent:     make(map[core.NodeID]core.NodeID, len(ids)),
		parentEdge: make(map[core.NodeID]core.EdgeID, len(ids)),
		visited:    make(map[core.NodeID]bool, len(ids)),
		order:      make([]core.NodeID, 0, len(ids)),
	}
	for _, id := range ids {
		r.dist[id] = math.Inf(1)
	}
	r.dist[o.Source] = 0
	r.frontier = []core.NodeID{o.Source}

	return r
}

// loop selects and relaxes until no reachable unvisited node remains.
func (r *runner) loop() error {
	for {
		select {
		case <-r.opts.Ctx.Done():
			return r.opts.Ctx.Err()
		default:
		}

		u, ok := r.selectMin()
		if !ok || r.dist[u] > r.opts.MaxDistance {
			return nil
		}
		r.visited[u] = true
		r.order = append(r.order, u)
		r.refreshFrontier()
		r.emit(trace.KindVisit, u, core.NoEdge, nil, "visit node %d at distance %g", u, r.dist[u])

		arcs, err := r.g.Outgoing(u)
		if err != nil {
			return fmt.Errorf("dijkstra: Outgoing(%d): %w", u, err)
		}
		for _, a := range arcs {
			nd := r.dist[u] + a.Edge.Weight
			if nd >= r.dist[a.To] {
				continue
			}
			old := r.dist[a.To]
			r.dist[a.To] = nd
			r.parent[a.To] = u
			r.parentEdge[a.To] = a.Edge.ID
			r.refreshFrontier()
			r.emit(trace.KindRelax, u, a.Edge.ID, nil, "relax node %d via %d: %g -> %g", a.To, u, old, nd)
		}
	}
}

// selectMin scans unvisited nodes in id order. The first strictly smaller
// distance wins, so ties resolve to the lowest id.
func (r *runner) selectMin() (core.NodeID, bool) {
	best, bestDist := core.NoNode, math.Inf(1)
	for _, id := range r.ids {
		if r.visited[id] {
			continue
		}
		if d := r.dist[id]; d < bestDist {
			best, bestDist = id, d
		}
	}

	return best, best != core.NoNode
}

func (r *runner) refreshFrontier() {
	r.frontier = r.frontier[:0]
	for _, id := range r.ids {
		if !r.visited[id] && !math.IsInf(r.dist[id], 1) {
			r.frontier = append(r.frontier, id)
		}
	}
}

// treeEdges lists the parent edge of every reached node in id order.
func (r *runner) treeEdges() []core.EdgeID {
	out := make([]core.EdgeID, 0, len(r.parentEdge))
	for _, id := range r.ids {
		if e, ok := r.parentEdge[id]; ok {
			out = append(out, e)
		}
	}

	return out
}

func (r *runner) emit(kind trace.Kind, cur core.NodeID, edge core.EdgeID, path []core.NodeID, format string, args ...any) {
	r.rec.Emit(kind, trace.GraphState{
		Current:    cur,
		ActiveEdge: edge,
		Visited:    r.order,
		Frontier:   r.frontier,
		Distance:   r.dist,
		Parent:     r.parent,
		TreeEdges:  r.treeEdges(),
		Path:       path,
	}, format, args...)
}
