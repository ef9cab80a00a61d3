// SPDX-License-Identifier: MIT
//
// Package core provides the interactive Graph structure model: nodes carrying
// unique integer values and layout positions, and edges carrying an optional
// weight.
//
// The Graph is built by user-facing actions (AddNode, AddEdge, Clear, random
// generation in package builder) and is read-only to every algorithm engine.
// It outlives any single trace.
//
// Invariants
//
//   - No self-loops: AddEdge(v, v) → ErrSelfLoop.
//   - No duplicate edges: a second edge between the same endpoints →
//     ErrDuplicateEdge. The check is symmetric for undirected graphs and
//     direction-aware for directed ones.
//   - Node values are unique: AddNode(v) twice → ErrDuplicateValue.
//   - Weight is required iff the graph is weighted (ErrWeightRequired);
//     unweighted edges carry weight 1 and reject explicit weights
//     (ErrBadWeight).
//
// Identity
//
// Node and edge ids come from an arena owned by the Graph. They are dense,
// start at 0, grow monotonically and are reset only by Clear. An id is the
// index of the element in the arena, so lookups are O(1) and no id logic
// depends on any counter outside the Graph.
//
// Determinism
//
//   - Nodes() and Edges() return elements in id (insertion) order.
//   - Outgoing(id) returns incident arcs in edge insertion order; traversal
//     engines rely on this for their tie-breaking.
//   - Values() returns node values in ascending order (ordered btree index).
//
// Concurrency
//
// A single sync.RWMutex guards the graph. Queries take the read lock and
// return copies, so a caller never holds a live reference into the graph.
//
// Errors
//
// Every sentinel matches fault.ErrStructuralPrecondition under errors.Is.
package core
