// SPDX-License-Identifier: MIT
//
// Package mst builds minimum spanning trees of undirected weighted graphs
// and records every edge decision as a trace.
//
// What
//
// Prim grows one tree outward from a root, always taking the cheapest edge
// that leaves the tree. Kruskal considers every edge once in ascending
// weight order and keeps those that join two different components. Both
// break weight ties by the lower edge id, so a graph always yields the same
// tree and the same trace.
//
// Snapshots
//
//	start    the root alone in the tree (Prim) or no edges chosen (Kruskal)
//	examine  the next cheapest candidate edge is inspected
//	accept   the edge joins the tree; its new endpoint becomes Visited
//	reject   both endpoints are already connected
//	done     the finished tree and its total weight
//
// TreeEdges only ever grows from one snapshot to the next.
//
// Errors
//
//	ErrGraphNil       nil graph
//	ErrInvalidGraph   directed or unweighted graph
//	ErrEmptyGraph     no nodes
//	ErrDisconnected   no spanning tree exists
//	core.ErrNodeNotFound  Prim root not in the graph
//
// All of them are reported before the first snapshot.
//
// Complexity: Prim O(E log E), Kruskal O(E log E + E·α(V)).
package mst
