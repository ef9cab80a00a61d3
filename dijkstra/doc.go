// SPDX-License-Identifier: MIT
//
// Package dijkstra computes single-source shortest paths on weighted graphs
// with non-negative edge weights and records every step as a trace.
//
// Overview:
//
//   - Distances start at 0 for the source and +Inf for every other node.
//   - Each round selects the unvisited node with the smallest tentative
//     distance by a linear scan in node id order; ties go to the node met
//     first. Selection stops once the minimum is +Inf.
//   - Every outgoing edge of the selected node is relaxed. Distance and
//     parent change only on strict improvement.
//
// The selection scan is deliberately O(V) per round, O(V²) overall. A heap
// would change which of several equal-distance nodes is visited first, and
// the visiting order is part of the observable trace.
//
// Snapshots:
//
//	start  source at distance 0, everything else +Inf
//	visit  a node is selected and finalized
//	relax  a tentative distance strictly improved
//	path   the reconstructed path to the target (WithTarget only)
//	done   final distances and parents
//
// Preconditions, checked in this order before the first snapshot:
//
//   - ErrGraphNil           nil graph
//   - core.ErrNodeNotFound  source (or target) not in the graph
//   - ErrUnweightedGraph    graph not created with core.WithWeighted()
//   - ErrNegativeWeight     any edge weight < 0 (O(E) pre-scan)
//
// Complexity: O(V² + E) time, O(V) memory plus the trace.
package dijkstra
