// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Node, Edge, Graph, options and sentinel errors.

package core

import (
	"sync"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/stepwise/fault"
)

// Sentinel errors for graph mutation and lookup.
var (
	// ErrDuplicateValue indicates a node with the same value already exists.
	ErrDuplicateValue = fault.Define(fault.ErrStructuralPrecondition, "core: duplicate node value")

	// ErrEndpointNotFound indicates an edge endpoint value has no node.
	ErrEndpointNotFound = fault.Define(fault.ErrStructuralPrecondition, "core: edge endpoint not found")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = fault.Define(fault.ErrStructuralPrecondition, "core: self-loop not allowed")

	// ErrDuplicateEdge indicates an equivalent edge already exists.
	ErrDuplicateEdge = fault.Define(fault.ErrStructuralPrecondition, "core: duplicate edge")

	// ErrWeightRequired indicates a weighted graph received an edge without weight.
	ErrWeightRequired = fault.Define(fault.ErrStructuralPrecondition, "core: weight required on weighted graph")

	// ErrBadWeight indicates a weight on an unweighted graph, or a non-finite weight.
	ErrBadWeight = fault.Define(fault.ErrStructuralPrecondition, "core: bad edge weight")

	// ErrNodeNotFound indicates an id that does not belong to the graph.
	ErrNodeNotFound = fault.Define(fault.ErrStructuralPrecondition, "core: node not found")

	// ErrNotEmpty indicates a flag change on a graph that still has nodes.
	ErrNotEmpty = fault.Define(fault.ErrStructuralPrecondition, "core: graph is not empty")
)

// NodeID identifies a node within its Graph.
type NodeID int

// EdgeID identifies an edge within its Graph.
type EdgeID int

// Sentinel ids meaning "none".
const (
	NoNode NodeID = -1
	NoEdge EdgeID = -1
)

// DefaultWeight is the weight carried by edges of an unweighted graph.
const DefaultWeight = 1.0

// Point is a layout position in abstract canvas units.
type Point struct {
	X, Y float64
}

// Node is a graph vertex as seen by callers (a value copy).
type Node struct {
	ID       NodeID
	Value    int
	Position Point
}

// Edge is a connection between two nodes (a value copy).
type Edge struct {
	ID       EdgeID
	From     NodeID
	To       NodeID
	Weight   float64
	Directed bool
}

// Other returns the endpoint of e opposite to id.
func (e Edge) Other(id NodeID) NodeID {
	if e.From == id {
		return e.To
	}

	return e.From
}

// Arc is one traversable step out of a node: the edge and the node it leads to.
type Arc struct {
	Edge Edge
	To   NodeID
}

// Layout places nodes evenly on a circle.
type Layout struct {
	Center Point
	Radius float64
}

// DefaultLayout is used unless WithLayout overrides it.
var DefaultLayout = Layout{Center: Point{X: 300, Y: 300}, Radius: 200}

// GraphOption configures a Graph at construction.
type GraphOption func(g *Graph)

// WithDirected makes every edge one-way (From→To).
func WithDirected() GraphOption {
	return func(g *Graph) { g.directed = true }
}

// WithWeighted requires an explicit weight on every edge.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// WithLayout overrides the circular layout used for node positions.
func WithLayout(l Layout) GraphOption {
	return func(g *Graph) { g.layout = l }
}

// EdgeOption configures a single AddEdge call.
type EdgeOption func(*edgeConfig)

type edgeConfig struct {
	weight    float64
	hasWeight bool
}

// WithWeight supplies the edge weight. Required on weighted graphs,
// rejected on unweighted ones.
func WithWeight(w float64) EdgeOption {
	return func(c *edgeConfig) {
		c.weight = w
		c.hasWeight = true
	}
}

// pairKey identifies an endpoint pair for duplicate detection.
// Undirected graphs normalize the pair so (a,b) and (b,a) collide.
type pairKey struct {
	a, b NodeID
}

// Graph is the mutable graph structure model.
//
// nodes and edges are arenas indexed by id; adj[id] lists the ids of edges
// traversable out of node id, in insertion order.
type Graph struct {
	mu sync.RWMutex

	// Configuration flags
	directed bool
	weighted bool
	layout   Layout

	// Storage
	nodes   []Node
	edges   []Edge
	adj     [][]EdgeID
	pairs   map[pairKey]EdgeID
	byValue btree.Map[int, NodeID]
}

// NewGraph creates an empty Graph. By default it is undirected and unweighted.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		layout: DefaultLayout,
		pairs:  make(map[pairKey]EdgeID),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
