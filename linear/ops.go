// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/stepwise/input"
)

// Mode selects LIFO or FIFO behavior.
type Mode int

const (
	// Stack is last-in first-out.
	Stack Mode = iota
	// Queue is first-in first-out.
	Queue
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == Queue {
		return "queue"
	}

	return "stack"
}

// OpKind names an operation.
type OpKind string

// Supported operations.
const (
	OpPush    OpKind = "push"
	OpPop     OpKind = "pop"
	OpPeek    OpKind = "peek"
	OpEnqueue OpKind = "enqueue"
	OpDequeue OpKind = "dequeue"
	OpFront   OpKind = "front"
)

// Op is one operation; Value is used by push and enqueue only.
type Op struct {
	Kind  OpKind
	Value float64
}

// String renders the op the way ParseOps reads it.
func (o Op) String() string {
	if o.Kind.adds() {
		return fmt.Sprintf("%s %g", o.Kind, o.Value)
	}

	return string(o.Kind)
}

func (k OpKind) adds() bool { return k == OpPush || k == OpEnqueue }

func (k OpKind) removes() bool { return k == OpPop || k == OpDequeue }

func (k OpKind) mode() Mode {
	switch k {
	case OpEnqueue, OpDequeue, OpFront:
		return Queue
	default:
		return Stack
	}
}

func isOpSep(r rune) bool { return r == ',' || r == ';' || r == '\n' }

// ParseOps parses operations separated by commas, semicolons or newlines.
// Errors are *input.ParseError values and match input.ErrParse.
func ParseOps(text string) ([]Op, error) {
	var ops []Op
	for i, raw := range strings.FieldsFunc(text, isOpSep) {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		kind := OpKind(strings.ToLower(fields[0]))
		switch kind {
		case OpPush, OpEnqueue:
			if len(fields) != 2 {
				return nil, &input.ParseError{Line: 1, Pos: i + 1, Token: raw, Reason: "want one value"}
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, &input.ParseError{Line: 1, Pos: i + 1, Token: fields[1], Reason: "not a number"}
			}
			ops = append(ops, Op{Kind: kind, Value: v})
		case OpPop, OpPeek, OpDequeue, OpFront:
			if len(fields) != 1 {
				return nil, &input.ParseError{Line: 1, Pos: i + 1, Token: raw, Reason: "takes no value"}
			}
			ops = append(ops, Op{Kind: kind})
		default:
			return nil, &input.ParseError{Line: 1, Pos: i + 1, Token: fields[0], Reason: "unknown operation"}
		}
	}

	return ops, nil
}
