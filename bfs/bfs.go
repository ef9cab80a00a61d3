// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/trace"
)

// walker encapsulates mutable BFS state. Only the recorder copies it.
type walker struct {
	graph *core.Graph
	opts  Options
	rec   *trace.Recorder

	queue     []core.NodeID
	depth     map[core.NodeID]int
	dist      map[core.NodeID]float64 // depth mirrored for snapshots
	parent    map[core.NodeID]core.NodeID
	order     []core.NodeID
	treeEdges []core.EdgeID
}

// BFS runs breadth-first search on g from start, applying any number of
// functional Options. All preconditions are checked before the first
// snapshot is recorded.
func BFS(g *core.Graph, start core.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("bfs: start %d: %w", start, core.ErrNodeNotFound)
	}

	n := g.NodeCount()
	w := &walker{
		graph:  g,
		opts:   o,
		rec:    trace.NewRecorder(Algorithm, n),
		queue:  make([]core.NodeID, 0, n),
		depth:  make(map[core.NodeID]int, n),
		dist:   make(map[core.NodeID]float64, n),
		parent: make(map[core.NodeID]core.NodeID, n),
		order:  make([]core.NodeID, 0, n),
	}
	w.enqueue(start, 0)
	w.emit(trace.KindStart, start, core.NoEdge, "start at node %d", start)

	if err := w.loop(); err != nil {
		return nil, err
	}
	w.emit(trace.KindDone, core.NoNode, core.NoEdge, "done: %d of %d nodes reached", len(w.order), n)

	tr, err := w.rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{
		Start:    start,
		Order:    w.order,
		Distance: w.depth,
		Parent:   w.parent,
		Trace:    tr,
	}, nil
}

// enqueue marks id discovered at depth d and appends it to the frontier.
func (w *walker) enqueue(id core.NodeID, d int) {
	w.depth[id] = d
	w.dist[id] = float64(d)
	w.queue = append(w.queue, id)
}

// loop processes the queue until empty or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		u := w.queue[0]
		w.queue = w.queue[1:]
		w.order = append(w.order, u)
		w.emit(trace.KindVisit, u, core.NoEdge, "visit node %d at distance %d", u, w.depth[u])

		if err := w.discover(u); err != nil {
			return err
		}
	}

	return nil
}

// discover walks u's arcs in insertion order and enqueues unseen neighbours.
func (w *walker) discover(u core.NodeID) error {
	next := w.depth[u] + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	arcs, err := w.graph.Outgoing(u)
	if err != nil {
		return fmt.Errorf("bfs: neighbours of %d: %w", u, err)
	}
	for _, a := range arcs {
		if _, seen := w.depth[a.To]; seen {
			continue
		}
		w.parent[a.To] = u
		w.treeEdges = append(w.treeEdges, a.Edge.ID)
		w.enqueue(a.To, next)
		w.emit(trace.KindDiscover, u, a.Edge.ID, "discover node %d from %d at distance %d", a.To, u, next)
	}

	return nil
}

func (w *walker) emit(kind trace.Kind, cur core.NodeID, edge core.EdgeID, format string, args ...any) {
	w.rec.Emit(kind, trace.GraphState{
		Current:    cur,
		ActiveEdge: edge,
		Visited:    w.order,
		Frontier:   w.queue,
		Distance:   w.dist,
		Parent:     w.parent,
		TreeEdges:  w.treeEdges,
	}, format, args...)
}

