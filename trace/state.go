// SPDX-License-Identifier: MIT
//
// File: state.go
// Role: the closed set of snapshot states and their deep-copy rules.

package trace

import (
	"maps"
	"slices"

	"github.com/katalvlaran/stepwise/core"
)

// None marks an unset index in array, list, tree and search states.
const None = -1

// State is the algorithm-visible state captured by one Snapshot.
// The set of implementations is closed to this package.
type State interface {
	// clone returns a deep copy sharing no memory with the receiver.
	clone() State
}

// GraphState is captured by the traversal and shortest-path engines.
type GraphState struct {
	Current    core.NodeID                 // node being processed, core.NoNode if none
	ActiveEdge core.EdgeID                 // edge under examination, core.NoEdge if none
	Visited    []core.NodeID               // visited nodes in visit order
	Frontier   []core.NodeID               // queue (BFS), work stack (DFS), candidates (Dijkstra)
	Distance   map[core.NodeID]float64     // hop count or tentative distance; +Inf when unreached
	Parent     map[core.NodeID]core.NodeID // predecessor links
	TreeEdges  []core.EdgeID               // edges of the search tree found so far
	Path       []core.NodeID               // highlighted path, start first
}

func (s GraphState) clone() State {
	s.Visited = slices.Clone(s.Visited)
	s.Frontier = slices.Clone(s.Frontier)
	s.Distance = maps.Clone(s.Distance)
	s.Parent = maps.Clone(s.Parent)
	s.TreeEdges = slices.Clone(s.TreeEdges)
	s.Path = slices.Clone(s.Path)

	return s
}

// IsVisited reports whether id is in the visited list.
func (s GraphState) IsVisited(id core.NodeID) bool {
	return slices.Contains(s.Visited, id)
}

// ArrayState is captured by the monotonic-stack scan engine.
type ArrayState struct {
	Values   []float64 // scanned input
	Current  int       // index being scanned, None before/after the pass
	Stack    []int     // indices, bottom first
	Answers  []float64 // per-index answer, sentinel until resolved
	Resolved []bool    // Answers[i] was written by a pop
	Popped   int       // index popped by this step, None otherwise
}

func (s ArrayState) clone() State {
	s.Values = slices.Clone(s.Values)
	s.Stack = slices.Clone(s.Stack)
	s.Answers = slices.Clone(s.Answers)
	s.Resolved = slices.Clone(s.Resolved)

	return s
}

// SearchState is captured by the search engines.
type SearchState struct {
	Values []float64 // searched input
	Target float64   // value searched for
	Lo, Hi int       // live window [Lo, Hi]; Lo > Hi once exhausted
	Probe  int       // index inspected by this step, None otherwise
	Found  int       // index of the target once located, None otherwise
}

func (s SearchState) clone() State {
	s.Values = slices.Clone(s.Values)

	return s
}

// ListState is captured by the stack/queue operations engine.
type ListState struct {
	Mode      string    // "stack" or "queue"
	Items     []float64 // bottom→top for stacks, front→back for queues
	Op        string    // operation applied by this step, empty for start/done
	Operand   float64   // pushed value, when Op pushes
	Result    float64   // popped or peeked value
	HasResult bool      // Result is meaningful
}

func (s ListState) clone() State {
	s.Items = slices.Clone(s.Items)

	return s
}

// TreeNode is one node of a TreeState arena. Left and Right are arena
// indices or None.
type TreeNode struct {
	Value  float64
	Left   int
	Right  int
	Height int
}

// TreeState is captured by the balanced-insertion engine.
type TreeState struct {
	Nodes    []TreeNode // arena indexed by node id
	Root     int        // root id, None for an empty tree
	Current  int        // node being compared / rebalanced, None if none
	Path     []int      // root→current search path
	Inserted int        // id of the inserted node, None until placed
	Rotation string     // "LL", "RR", "LR", "RL" on rotate steps
}

func (s TreeState) clone() State {
	s.Nodes = slices.Clone(s.Nodes)
	s.Path = slices.Clone(s.Path)

	return s
}

// Cell addresses one matrix element.
type Cell struct {
	Row, Col int
}

// MatrixState is captured by the matrix engines. Labels and Queue are only
// set by flood fills.
type MatrixState struct {
	Cells  [][]float64 // row-major values
	Layer  int         // ring being rotated, None outside the loop
	Active []Cell      // cells touched by this step
	Labels [][]int     // region number per cell, 0 while unlabeled
	Queue  []Cell      // cells waiting to be labeled
}

func (s MatrixState) clone() State {
	cells := make([][]float64, len(s.Cells))
	for i, row := range s.Cells {
		cells[i] = slices.Clone(row)
	}
	s.Cells = cells
	if s.Labels != nil {
		labels := make([][]int, len(s.Labels))
		for i, row := range s.Labels {
			labels[i] = slices.Clone(row)
		}
		s.Labels = labels
	}
	s.Active = slices.Clone(s.Active)
	s.Queue = slices.Clone(s.Queue)

	return s
}
