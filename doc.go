// SPDX-License-Identifier: MIT

// Package stepwise records classical algorithms one meaningful state change
// at a time and replays the recording.
//
// 🚀 What is stepwise?
//
//	An engine runs once over a small structure and emits an immutable trace:
//		• Graphs: BFS, DFS, Dijkstra, Prim, Kruskal over core.Graph
//		• Trees: AVL insertion with rotations
//		• Arrays: monotonic-stack scans, linear and binary search
//		• Lists: stack and queue operation replay
//		• Matrices: in-place 90 degree rotation, island flood fill
//
// ✨ How the pieces fit
//
//   - Recording and replay are separate. Engines never know about playback;
//     the playback controller never knows which engine produced a trace.
//   - Every snapshot is a deep copy. Stepping backwards is just an index.
//   - Failing runs never produce a partial trace.
//
// Packages:
//
//	core/       - node/edge graph keyed by unique integer values
//	builder/    - seeded random graph generation
//	input/      - numeric text parsing with positioned errors
//	matrix/     - row-major dense matrix
//	trace/      - snapshot kinds, states and the Recorder
//	bfs/ dfs/ dijkstra/ mst/ avl/ monostack/ search/ linear/ rotation/ islands/ - engines
//	engine/     - name → engine registry with parameter decoding
//	playback/   - Idle/Ready/Playing/Paused/Complete controller
//	render/     - snapshot → element decorations
//	session/    - editable structures plus the single controller
//	cmd/stepwise - the terminal front end
//
// Quick example, BFS over a path:
//
//	1───2───3
//
//	start at node 0
//	visit node 0 at distance 0
//	discover node 1 from 0 at distance 1
//	visit node 1 at distance 1
//	...
//
//	go install github.com/katalvlaran/stepwise/cmd/stepwise@latest
package stepwise
