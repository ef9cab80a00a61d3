// SPDX-License-Identifier: MIT
//
// Package bfs implements breadth-first search over a core.Graph and records
// every step as a trace.
//
// What
//
// Starting from one node, BFS keeps a FIFO frontier and visits nodes in
// non-decreasing hop distance. Neighbours are discovered in edge-insertion
// order, which fixes the tie-break between nodes at equal distance.
//
// Snapshots
//
//	start     the start node sits alone in the frontier at distance 0
//	visit     a node is dequeued and appended to Visited
//	discover  a neighbour is reached for the first time (distance = parent+1)
//	done      complete distance and parent maps
//
// Visited only ever grows from one snapshot to the next.
//
// Complexity: O(V + E) time, O(V) memory plus the trace itself.
//
// Errors
//
//	ErrGraphNil            nil graph
//	core.ErrNodeNotFound   start id not in the graph
//	ErrOptionViolation     invalid option (e.g. negative depth)
//
// Weighted graphs are accepted; weights are ignored and each edge counts as
// one hop.
package bfs
