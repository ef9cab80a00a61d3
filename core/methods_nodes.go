// SPDX-License-Identifier: MIT
//
// File: methods_nodes.go
// Role: Node lifecycle, lookups, layout and whole-graph maintenance.
// Determinism:
//   - Nodes() returns nodes in id order; Values() in ascending value order.
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import (
	"fmt"
	"math"

	"github.com/tidwall/btree"
)

// minLayoutSlots keeps small graphs from collapsing onto a line.
const minLayoutSlots = 3

// AddNode inserts a node carrying value and returns its id.
//
// Steps:
//  1. Reject a value already present (ErrDuplicateValue).
//  2. Allocate the next arena id.
//  3. Re-space every node on the layout circle.
//
// Complexity: O(V) because of the layout pass, O(log V) for the value index.
func (g *Graph) AddNode(value int) (NodeID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.byValue.Get(value); exists {
		return NoNode, fmt.Errorf("AddNode(%d): %w", value, ErrDuplicateValue)
	}

	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Value: value})
	g.adj = append(g.adj, nil)
	g.byValue.Set(value, id)
	g.relayout()

	return id, nil
}

// relayout spaces all nodes evenly on the layout circle, starting at the top
// and going clockwise. Caller must hold the write lock.
func (g *Graph) relayout() {
	slots := len(g.nodes)
	if slots < minLayoutSlots {
		slots = minLayoutSlots
	}
	step := 2 * math.Pi / float64(slots)
	for i := range g.nodes {
		angle := float64(i)*step - math.Pi/2
		g.nodes[i].Position = Point{
			X: g.layout.Center.X + g.layout.Radius*math.Cos(angle),
			Y: g.layout.Center.Y + g.layout.Radius*math.Sin(angle),
		}
	}
}

// HasNode reports whether id belongs to the graph.
// Complexity: O(1).
func (g *Graph) HasNode(id NodeID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasNode(id)
}

func (g *Graph) hasNode(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns a copy of the node with the given id.
// Complexity: O(1).
func (g *Graph) Node(id NodeID) (Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasNode(id) {
		return Node{}, fmt.Errorf("Node(%d): %w", id, ErrNodeNotFound)
	}

	return g.nodes[id], nil
}

// NodeByValue resolves a user-facing value to its node.
// Complexity: O(log V).
func (g *Graph) NodeByValue(value int) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	id, ok := g.byValue.Get(value)
	if !ok {
		return Node{}, false
	}

	return g.nodes[id], true
}

// Nodes returns a copy of all nodes in id order.
// Complexity: O(V).
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)

	return out
}

// NodeIDs returns all node ids in ascending order.
// Complexity: O(V).
func (g *Graph) NodeIDs() []NodeID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]NodeID, len(g.nodes))
	for i := range g.nodes {
		out[i] = NodeID(i)
	}

	return out
}

// Values returns every node value in ascending order.
// Complexity: O(V).
func (g *Graph) Values() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]int, 0, g.byValue.Len())
	g.byValue.Scan(func(v int, _ NodeID) bool {
		out = append(out, v)
		return true
	})

	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.directed
}

// Weighted reports whether edges carry explicit weights.
func (g *Graph) Weighted() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.weighted
}

// SetDirected changes the direction flag. Only an empty graph may be
// reconfigured; otherwise ErrNotEmpty.
func (g *Graph) SetDirected(directed bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.nodes) > 0 {
		return fmt.Errorf("SetDirected: %w", ErrNotEmpty)
	}
	g.directed = directed

	return nil
}

// SetWeighted changes the weight flag. Only an empty graph may be
// reconfigured; otherwise ErrNotEmpty.
func (g *Graph) SetWeighted(weighted bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.nodes) > 0 {
		return fmt.Errorf("SetWeighted: %w", ErrNotEmpty)
	}
	g.weighted = weighted

	return nil
}

// Clear removes every node and edge and resets the id arena.
// Directed/weighted flags and the layout are preserved.
// Complexity: O(1) amortized.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes = nil
	g.edges = nil
	g.adj = nil
	g.pairs = make(map[pairKey]EdgeID)
	g.byValue = btree.Map[int, NodeID]{}
}

// Clone returns a deep, independent copy of the graph.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := &Graph{
		directed: g.directed,
		weighted: g.weighted,
		layout:   g.layout,
		nodes:    make([]Node, len(g.nodes)),
		edges:    make([]Edge, len(g.edges)),
		adj:      make([][]EdgeID, len(g.adj)),
		pairs:    make(map[pairKey]EdgeID, len(g.pairs)),
	}
	copy(c.nodes, g.nodes)
	copy(c.edges, g.edges)
	for i, list := range g.adj {
		c.adj[i] = append([]EdgeID(nil), list...)
	}
	for k, v := range g.pairs {
		c.pairs[k] = v
	}
	for _, n := range g.nodes {
		c.byValue.Set(n.Value, n.ID)
	}

	return c
}
