// SPDX-License-Identifier: MIT

package trace

// Kind names the state transition a Snapshot records.
type Kind string

// Snapshot kinds emitted by the engines.
const (
	KindStart     Kind = "start"     // initial state before the first step
	KindVisit     Kind = "visit"     // a node is visited / finalized
	KindDiscover  Kind = "discover"  // a node is reached for the first time
	KindExamine   Kind = "examine"   // an edge is examined
	KindFinish    Kind = "finish"    // all descendants of a node are explored
	KindRelax     Kind = "relax"     // a tentative distance improved
	KindPath      Kind = "path"      // a reconstructed path is highlighted
	KindCompare   Kind = "compare"   // two values are compared
	KindInsert    Kind = "insert"    // a value is placed into a structure
	KindDuplicate Kind = "duplicate" // an insert found the value already present
	KindRebalance Kind = "rebalance" // an out-of-balance node is detected
	KindRotate    Kind = "rotate"    // a tree rotation was applied
	KindPush      Kind = "push"      // a stack/queue receives an element
	KindPop       Kind = "pop"       // a stack/queue releases an element
	KindPeek      Kind = "peek"      // a stack/queue top/front is read
	KindProbe     Kind = "probe"     // a search inspects an index
	KindFound     Kind = "found"     // a search located its target
	KindSwap      Kind = "swap"      // matrix cells exchanged
	KindAccept    Kind = "accept"    // an edge joins a spanning tree
	KindReject    Kind = "reject"    // an edge would close a cycle
	KindDone      Kind = "done"      // terminal state
)
