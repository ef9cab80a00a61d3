// SPDX-License-Identifier: MIT

package mst

import (
	"fmt"
	"slices"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/trace"
)

// candidate is an edge leaving the tree toward node to.
type candidate struct {
	edge core.Edge
	to   core.NodeID
}

// grower holds mutable Prim state. Candidate edges wait in a B-tree ordered
// by weight then id, so PopMin yields the deterministic cheapest edge.
type grower struct {
	g    *core.Graph
	opts Options
	rec  *trace.Recorder

	queue  *btree.BTreeG[candidate]
	inTree map[core.NodeID]bool
	order  []core.NodeID
	parent map[core.NodeID]core.NodeID
	edges  []core.EdgeID
	weight float64
}

// Prim grows a minimum spanning tree from root.
func Prim(g *core.Graph, root core.NodeID, opts ...Option) (*Result, error) {
	if err := validate(g); err != nil {
		return nil, err
	}
	if !g.HasNode(root) {
		return nil, fmt.Errorf("mst: root %d: %w", root, core.ErrNodeNotFound)
	}

	n := g.NodeCount()
	p := &grower{
		g:      g,
		opts:   options(opts),
		rec:    trace.NewRecorder(AlgorithmPrim, n),
		queue:  btree.NewBTreeG(func(a, b candidate) bool { return byWeight(a.edge, b.edge) }),
		inTree: make(map[core.NodeID]bool, n),
		parent: make(map[core.NodeID]core.NodeID, n),
	}
	if err := p.add(root); err != nil {
		return nil, err
	}
	p.emit(trace.KindStart, root, core.NoEdge, "start at node %d", root)

	for len(p.order) < n {
		if err := p.opts.Ctx.Err(); err != nil {
			return nil, err
		}
		c, ok := p.queue.PopMin()
		if !ok {
			return nil, fmt.Errorf("mst: candidates exhausted with %d of %d nodes: %w", len(p.order), n, ErrDisconnected)
		}
		from := c.edge.Other(c.to)
		p.emit(trace.KindExamine, from, c.edge.ID, "examine edge %d (%d-%d, weight %g)", c.edge.ID, from, c.to, c.edge.Weight)
		if p.inTree[c.to] {
			p.emit(trace.KindReject, from, c.edge.ID, "reject edge %d: node %d already in tree", c.edge.ID, c.to)
			continue
		}
		p.parent[c.to] = from
		p.edges = append(p.edges, c.edge.ID)
		p.weight += c.edge.Weight
		if err := p.add(c.to); err != nil {
			return nil, err
		}
		p.emit(trace.KindAccept, c.to, c.edge.ID, "accept edge %d: add node %d, total %g", c.edge.ID, c.to, p.weight)
	}
	p.emit(trace.KindDone, core.NoNode, core.NoEdge, "done: %d edges, total weight %g", len(p.edges), p.weight)

	tr, err := p.rec.Finish()
	if err != nil {
		return nil, err
	}

	return &Result{Edges: p.edges, Weight: p.weight, Trace: tr}, nil
}

// add puts id into the tree and queues its edges to nodes outside it.
func (p *grower) add(id core.NodeID) error {
	p.inTree[id] = true
	p.order = append(p.order, id)
	arcs, err := p.g.Outgoing(id)
	if err != nil {
		return fmt.Errorf("mst: Outgoing(%d): %w", id, err)
	}
	for _, a := range arcs {
		if !p.inTree[a.To] {
			p.queue.Set(candidate{edge: a.Edge, to: a.To})
		}
	}

	return nil
}

// frontier lists the nodes outside the tree that a queued edge reaches.
func (p *grower) frontier() []core.NodeID {
	var out []core.NodeID
	p.queue.Scan(func(c candidate) bool {
		if !p.inTree[c.to] && !slices.Contains(out, c.to) {
			out = append(out, c.to)
		}
		return true
	})
	slices.Sort(out)

	return out
}

func (p *grower) emit(kind trace.Kind, cur core.NodeID, edge core.EdgeID, format string, args ...any) {
	p.rec.Emit(kind, trace.GraphState{
		Current:    cur,
		ActiveEdge: edge,
		Visited:    p.order,
		Frontier:   p.frontier(),
		Parent:     p.parent,
		TreeEdges:  p.edges,
	}, format, args...)
}
