// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle and adjacency queries.
// Determinism:
//   - Edges() returns edges in id order.
//   - Outgoing(id) returns arcs in edge insertion order.
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import (
	"fmt"
	"math"
)

// AddEdge connects the nodes carrying fromValue and toValue and returns the
// new edge id.
//
// Validation order (first failure wins, graph untouched on failure):
//  1. Both values resolve to nodes (ErrEndpointNotFound).
//  2. fromValue != toValue (ErrSelfLoop).
//  3. Weight policy: weighted graphs need WithWeight (ErrWeightRequired);
//     unweighted graphs reject it (ErrBadWeight); NaN/±Inf are ErrBadWeight.
//  4. No equivalent edge exists (ErrDuplicateEdge); (a,b) and (b,a) are
//     equivalent unless the graph is directed.
//
// Complexity: O(log V) for value lookup, O(1) for insertion.
func (g *Graph) AddEdge(fromValue, toValue int, opts ...EdgeOption) (EdgeID, error) {
	var cfg edgeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 1) Endpoints
	from, ok := g.byValue.Get(fromValue)
	if !ok {
		return NoEdge, fmt.Errorf("AddEdge(%d,%d): from: %w", fromValue, toValue, ErrEndpointNotFound)
	}
	to, ok := g.byValue.Get(toValue)
	if !ok {
		return NoEdge, fmt.Errorf("AddEdge(%d,%d): to: %w", fromValue, toValue, ErrEndpointNotFound)
	}

	// 2) Loops
	if from == to {
		return NoEdge, fmt.Errorf("AddEdge(%d,%d): %w", fromValue, toValue, ErrSelfLoop)
	}

	// 3) Weight policy
	weight := DefaultWeight
	switch {
	case g.weighted && !cfg.hasWeight:
		return NoEdge, fmt.Errorf("AddEdge(%d,%d): %w", fromValue, toValue, ErrWeightRequired)
	case !g.weighted && cfg.hasWeight:
		return NoEdge, fmt.Errorf("AddEdge(%d,%d): weight on unweighted graph: %w", fromValue, toValue, ErrBadWeight)
	case cfg.hasWeight:
		if math.IsNaN(cfg.weight) || math.IsInf(cfg.weight, 0) {
			return NoEdge, fmt.Errorf("AddEdge(%d,%d): weight %v: %w", fromValue, toValue, cfg.weight, ErrBadWeight)
		}
		weight = cfg.weight
	}

	// 4) Duplicates
	key := g.pair(from, to)
	if _, dup := g.pairs[key]; dup {
		return NoEdge, fmt.Errorf("AddEdge(%d,%d): %w", fromValue, toValue, ErrDuplicateEdge)
	}

	// 5) Store and link adjacency
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{ID: id, From: from, To: to, Weight: weight, Directed: g.directed})
	g.pairs[key] = id
	g.adj[from] = append(g.adj[from], id)
	if !g.directed {
		g.adj[to] = append(g.adj[to], id)
	}

	return id, nil
}

// pair builds the duplicate-detection key for from→to.
func (g *Graph) pair(from, to NodeID) pairKey {
	if !g.directed && from > to {
		from, to = to, from
	}

	return pairKey{a: from, b: to}
}

// HasEdge reports whether an edge between the nodes carrying fromValue and
// toValue exists, honoring direction on directed graphs.
// Complexity: O(log V).
func (g *Graph) HasEdge(fromValue, toValue int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	from, ok := g.byValue.Get(fromValue)
	if !ok {
		return false
	}
	to, ok := g.byValue.Get(toValue)
	if !ok {
		return false
	}
	_, exists := g.pairs[g.pair(from, to)]

	return exists
}

// Edge returns a copy of the edge with the given id.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if id < 0 || int(id) >= len(g.edges) {
		return Edge{}, false
	}

	return g.edges[id], true
}

// Edges returns a copy of all edges in id order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Outgoing returns the arcs leaving id in edge insertion order. For
// undirected graphs every incident edge is traversable from both ends.
// Complexity: O(deg(id)).
func (g *Graph) Outgoing(id NodeID) ([]Arc, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasNode(id) {
		return nil, fmt.Errorf("Outgoing(%d): %w", id, ErrNodeNotFound)
	}
	list := g.adj[id]
	out := make([]Arc, 0, len(list))
	for _, eid := range list {
		e := g.edges[eid]
		out = append(out, Arc{Edge: e, To: e.Other(id)})
	}

	return out, nil
}
