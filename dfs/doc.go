// SPDX-License-Identifier: MIT
//
// Package dfs implements depth-first search on core.Graph and records every
// step as a trace.
//
// The traversal reproduces recursive pre-order exactly but runs on an
// explicit stack of frames, so native stack depth stays constant no matter
// how deep the graph is. A frame remembers which of its node's arcs it will
// examine next; arcs are examined in adjacency-list (edge insertion) order.
// A visited set guards against revisiting on cyclic graphs.
//
// Snapshots:
//
//	start    nothing visited yet
//	visit    a node is entered (pre-order)
//	examine  an edge out of the current node is inspected
//	finish   every arc of a node has been examined (post-order)
//	done     terminal state
//
// Frontier holds the frame stack, bottom first. Distance holds depth in the
// DFS tree.
//
// Complexity:
//
//   - Time:   O(V + E).
//   - Memory: O(V) for the frame stack and metadata maps.
//
// Options:
//
//   - WithContext(ctx)     allows cancellation via context.Context.
//   - WithFullTraversal()  after the start tree, visits every unreached node
//     in id order, producing a DFS forest.
//
// Errors:
//
//   - ErrGraphNil           if g is nil.
//   - core.ErrNodeNotFound  if start is missing.
//   - context.Canceled      if ctx is done.
package dfs
