// SPDX-License-Identifier: MIT

package avl

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/stepwise/trace"
)

// None marks a missing node.
const None = trace.None

// ErrNodeNotFound is returned by Node for an id outside the arena.
var ErrNodeNotFound = errors.New("avl: node not found")

type node struct {
	value       float64
	left, right int
	height      int
}

// Node is a read-only view of one tree node.
type Node struct {
	ID     int
	Value  float64
	Left   int
	Right  int
	Height int
}

// Tree is an AVL tree. The zero value is not usable; call New.
type Tree struct {
	nodes []node
	root  int
}

// New returns an empty tree.
func New() *Tree { return &Tree{root: None} }

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root id, None when empty.
func (t *Tree) Root() int { return t.root }

// Height returns the height of the whole tree; 0 when empty.
func (t *Tree) Height() int { return t.height(t.root) }

// Node returns the node with the given id.
func (t *Tree) Node(id int) (Node, error) {
	if id < 0 || id >= len(t.nodes) {
		return Node{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	n := t.nodes[id]

	return Node{ID: id, Value: n.value, Left: n.left, Right: n.right, Height: n.height}, nil
}

// Clear removes every node and resets the arena.
func (t *Tree) Clear() {
	t.nodes = nil
	t.root = None
}

// Clone returns an independent copy sharing no memory with t.
func (t *Tree) Clone() *Tree {
	c := &Tree{nodes: make([]node, len(t.nodes)), root: t.root}
	copy(c.nodes, t.nodes)

	return c
}

// InOrder returns every value in ascending order.
func (t *Tree) InOrder() []float64 {
	out := make([]float64, 0, len(t.nodes))
	var stack []int
	for cur := t.root; cur != None || len(stack) > 0; {
		for cur != None {
			stack = append(stack, cur)
			cur = t.nodes[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, t.nodes[cur].value)
		cur = t.nodes[cur].right
	}

	return out
}

// Balanced reports whether every node satisfies the AVL balance rule and
// carries a correct cached height.
func (t *Tree) Balanced() bool {
	for _, n := range t.nodes {
		hl, hr := t.height(n.left), t.height(n.right)
		if hl-hr > 1 || hr-hl > 1 {
			return false
		}
		if n.height != 1+max(hl, hr) {
			return false
		}
	}

	return true
}

// Insert adds v and returns its node id. For an existing value it returns
// that node's id and false.
func (t *Tree) Insert(v float64) (int, bool) {
	return t.insert(v, nil)
}

func (t *Tree) height(id int) int {
	if id == None {
		return 0
	}

	return t.nodes[id].height
}

func (t *Tree) balance(id int) int {
	n := t.nodes[id]

	return t.height(n.left) - t.height(n.right)
}

func (t *Tree) fix(id int) {
	n := &t.nodes[id]
	n.height = 1 + max(t.height(n.left), t.height(n.right))
}

// rotateRight lifts y's left child into y's place and returns it.
func (t *Tree) rotateRight(y int) int {
	x := t.nodes[y].left
	t.nodes[y].left = t.nodes[x].right
	t.nodes[x].right = y
	t.fix(y)
	t.fix(x)

	return x
}

// rotateLeft lifts x's right child into x's place and returns it.
func (t *Tree) rotateLeft(x int) int {
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	t.nodes[y].left = x
	t.fix(x)
	t.fix(y)

	return y
}

// state renders the arena for a snapshot.
func (t *Tree) state(cur, inserted int, path []int, rotation string) trace.TreeState {
	nodes := make([]trace.TreeNode, len(t.nodes))
	for i, n := range t.nodes {
		nodes[i] = trace.TreeNode{Value: n.value, Left: n.left, Right: n.right, Height: n.height}
	}

	return trace.TreeState{
		Nodes:    nodes,
		Root:     t.root,
		Current:  cur,
		Path:     path,
		Inserted: inserted,
		Rotation: rotation,
	}
}
