// SPDX-License-Identifier: MIT

package dfs

import (
	"fmt"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/trace"
)

// frame is one entry of the explicit work-stack: a node and the index of
// the next arc to examine.
type frame struct {
	node core.NodeID
	arcs []core.Arc
	next int
}

// walker encapsulates state during DFS.
type walker struct {
	graph *core.Graph
	opts  Options
	rec   *trace.Recorder
	res   *Result

	stack     []frame
	visited   map[core.NodeID]bool
	order     []core.NodeID // visit order mirrored for snapshots
	frontier  []core.NodeID // frame nodes mirrored for snapshots
	depth     map[core.NodeID]float64
	treeEdges []core.EdgeID
}

// DFS performs depth-first search on g from start. With WithFullTraversal
// the remaining components are explored afterwards in id order.
func DFS(g *core.Graph, start core.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("dfs: start %d: %w", start, core.ErrNodeNotFound)
	}

	n := g.NodeCount()
	w := &walker{
		graph: g,
		opts:  o,
		rec:   trace.NewRecorder(Algorithm, n),
		res: &Result{
			Order:     make([]core.NodeID, 0, n),
			PostOrder: make([]core.NodeID, 0, n),
			Depth:     make(map[core.NodeID]int, n),
			Parent:    make(map[core.NodeID]core.NodeID, n),
		},
		visited: make(map[core.NodeID]bool, n),
		depth:   make(map[core.NodeID]float64, n),
	}
	w.emit(trace.KindStart, core.NoNode, core.NoEdge, "start at node %d", start)

	roots := []core.NodeID{start}
	if o.FullTraversal {
		roots = append(roots, g.NodeIDs()...)
	}
	for _, root := range roots {
		if w.visited[root] {
			continue
		}
		if err := w.traverse(root); err != nil {
			return nil, err
		}
	}
	w.emit(trace.KindDone, core.NoNode, core.NoEdge, "done: %d nodes visited", len(w.res.Order))

	tr, err := w.rec.Finish()
	if err != nil {
		return nil, err
	}
	w.res.Trace = tr

	return w.res, nil
}

// traverse explores the tree rooted at root.
func (w *walker) traverse(root core.NodeID) error {
	if err := w.enter(root, core.NoNode, 0); err != nil {
		return err
	}

	for len(w.stack) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		top := &w.stack[len(w.stack)-1]
		if top.next == len(top.arcs) {
			w.leave()
			continue
		}
		a := top.arcs[top.next]
		top.next++
		u := top.node
		w.emit(trace.KindExamine, u, a.Edge.ID, "examine edge %d: %d -> %d", a.Edge.ID, u, a.To)

		if w.visited[a.To] {
			continue
		}
		w.treeEdges = append(w.treeEdges, a.Edge.ID)
		if err := w.enter(a.To, u, w.res.Depth[u]+1); err != nil {
			return err
		}
	}

	return nil
}

// enter marks id visited, pushes its frame and records the visit.
func (w *walker) enter(id, parent core.NodeID, d int) error {
	arcs, err := w.graph.Outgoing(id)
	if err != nil {
		return fmt.Errorf("dfs: Outgoing(%d): %w", id, err)
	}
	w.visited[id] = true
	w.res.Order = append(w.res.Order, id)
	w.res.Depth[id] = d
	w.depth[id] = float64(d)
	if parent != core.NoNode {
		w.res.Parent[id] = parent
	}
	w.stack = append(w.stack, frame{node: id, arcs: arcs})
	w.frontier = append(w.frontier, id)
	w.emit(trace.KindVisit, id, core.NoEdge, "visit node %d at depth %d", id, d)

	return nil
}

// leave pops the top frame and records the node as finished.
func (w *walker) leave() {
	id := w.stack[len(w.stack)-1].node
	w.stack = w.stack[:len(w.stack)-1]
	w.frontier = w.frontier[:len(w.frontier)-1]
	w.res.PostOrder = append(w.res.PostOrder, id)
	w.emit(trace.KindFinish, id, core.NoEdge, "finish node %d", id)
}

func (w *walker) emit(kind trace.Kind, cur core.NodeID, edge core.EdgeID, format string, args ...any) {
	w.rec.Emit(kind, trace.GraphState{
		Current:    cur,
		ActiveEdge: edge,
		Visited:    w.res.Order,
		Frontier:   w.frontier,
		Distance:   w.depth,
		Parent:     w.res.Parent,
		TreeEdges:  w.treeEdges,
	}, format, args...)
}
