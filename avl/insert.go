// SPDX-License-Identifier: MIT

package avl

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// Algorithm is the name recorded on every insertion trace.
const Algorithm = "avl"

// Sentinel errors for traced insertion.
var (
	// ErrTreeNil is returned when a nil tree is passed.
	ErrTreeNil = fault.Define(fault.ErrStructuralPrecondition, "avl: tree is nil")

	// ErrBadValue is returned for NaN or infinite values.
	ErrBadValue = fault.Define(fault.ErrStructuralPrecondition, "avl: value must be finite")
)

// Rotation case names.
const (
	CaseLL = "LL"
	CaseRR = "RR"
	CaseLR = "LR"
	CaseRL = "RL"
)

// Insert clones t, inserts v into the clone and returns the trace together
// with the new tree. t itself is never modified.
func Insert(t *Tree, v float64) (*trace.Trace, *Tree, error) {
	return InsertAll(t, []float64{v})
}

// InsertAll clones t and inserts values in order, recording one trace for
// the whole sequence.
func InsertAll(t *Tree, values []float64) (*trace.Trace, *Tree, error) {
	if t == nil {
		return nil, nil, ErrTreeNil
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, fmt.Errorf("%w: values[%d] = %v", ErrBadValue, i, v)
		}
	}

	c := t.Clone()
	rec := trace.NewRecorder(Algorithm, c.Len()+len(values))
	rec.Emit(trace.KindStart, c.state(None, None, nil, ""), "insert %v into a tree of %d nodes", values, c.Len())
	for _, v := range values {
		c.insert(v, rec)
	}
	rec.Emit(trace.KindDone, c.state(None, None, nil, ""), "done: %d nodes, height %d", c.Len(), c.Height())

	tr, err := rec.Finish()
	if err != nil {
		return nil, nil, err
	}

	return tr, c, nil
}

// insert places v and rebalances. rec may be nil.
func (t *Tree) insert(v float64, rec *trace.Recorder) (int, bool) {
	emit := func(kind trace.Kind, cur, inserted int, path []int, rotation, format string, args ...any) {
		if rec != nil {
			rec.Emit(kind, t.state(cur, inserted, path, rotation), format, args...)
		}
	}

	id := len(t.nodes)
	if t.root == None {
		t.nodes = append(t.nodes, node{value: v, left: None, right: None, height: 1})
		t.root = id
		emit(trace.KindInsert, id, id, []int{id}, "", "insert %g as root", v)

		return id, true
	}

	// Descend, remembering the ancestor path.
	var path []int
	for cur := t.root; ; {
		path = append(path, cur)
		n := t.nodes[cur]
		emit(trace.KindCompare, cur, None, path, "", "compare %g with %g", v, n.value)
		switch {
		case v == n.value:
			emit(trace.KindDuplicate, cur, None, path, "", "%g already present", v)
			return cur, false
		case v < n.value && n.left != None:
			cur = n.left
			continue
		case v > n.value && n.right != None:
			cur = n.right
			continue
		}

		t.nodes = append(t.nodes, node{value: v, left: None, right: None, height: 1})
		if v < n.value {
			t.nodes[cur].left = id
		} else {
			t.nodes[cur].right = id
		}
		break
	}
	emit(trace.KindInsert, id, id, append(slices.Clone(path), id), "", "insert %g under %g", v, t.nodes[path[len(path)-1]].value)

	// Walk back up: recompute heights, rotate where out of balance.
	for i := len(path) - 1; i >= 0; i-- {
		a := path[i]
		t.fix(a)
		bf := t.balance(a)
		if bf >= -1 && bf <= 1 {
			continue
		}
		emit(trace.KindRebalance, a, id, path[:i+1], "", "node %g out of balance (%d)", t.nodes[a].value, bf)

		sub, kind := t.rotate(a, bf, v)
		if i == 0 {
			t.root = sub
		} else if p := path[i-1]; t.nodes[p].left == a {
			t.nodes[p].left = sub
		} else {
			t.nodes[p].right = sub
		}
		emit(trace.KindRotate, sub, id, path[:i], kind, "%s rotation lifts %g", kind, t.nodes[sub].value)
	}

	return id, true
}

// rotate restores balance at a and returns the new subtree root and the
// case applied. The case is chosen by comparing v with a's heavy child.
func (t *Tree) rotate(a, bf int, v float64) (int, string) {
	if bf > 1 {
		child := t.nodes[a].left
		if v < t.nodes[child].value {
			return t.rotateRight(a), CaseLL
		}
		t.nodes[a].left = t.rotateLeft(child)

		return t.rotateRight(a), CaseLR
	}

	child := t.nodes[a].right
	if v > t.nodes[child].value {
		return t.rotateLeft(a), CaseRR
	}
	t.nodes[a].right = t.rotateRight(child)

	return t.rotateLeft(a), CaseRL
}
