// SPDX-License-Identifier: MIT
//
// Package avl provides a self-balancing binary search tree of float64
// values whose insertions can be recorded as traces.
//
// Nodes live in an arena owned by the Tree and are addressed by stable int
// ids; None (-1) marks a missing child. An insert descends iteratively,
// remembering the ancestor path, then walks that path back towards the root
// recomputing heights. Wherever |height(left) - height(right)| > 1 exactly
// one of four rotations is applied:
//
//	LL  inserted value < left child's value    rotate right
//	LR  inserted value > left child's value    rotate left, then right
//	RR  inserted value > right child's value   rotate left
//	RL  inserted value < right child's value   rotate right, then left
//
// Inserting a value already present is a no-op that returns the existing
// node.
//
// Tree.Insert mutates in place and records nothing. The package-level
// Insert and InsertAll clone the tree first and return a trace of the
// clone's insertion along with the resulting tree:
//
//	compare    a node on the descent path is compared with the value
//	insert     the new node is attached
//	duplicate  the value was already present
//	rebalance  an ancestor is out of balance
//	rotate     a rotation was applied
//	done       terminal state
package avl
