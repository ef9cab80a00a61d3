package trace_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

func TestEmit_CopiesState(t *testing.T) {
	visited := []core.NodeID{0}
	dist := map[core.NodeID]float64{0: 0}

	rec := trace.NewRecorder("demo", 3)
	rec.Emit(trace.KindStart, trace.GraphState{Visited: visited, Distance: dist}, "start at %d", 0)

	// Engine keeps mutating its working state.
	visited[0] = 99
	visited = append(visited, 1)
	dist[0] = 42
	dist[1] = 1
	rec.Emit(trace.KindVisit, trace.GraphState{Visited: visited, Distance: dist}, "visit")

	tr, err := rec.Finish()
	require.NoError(t, err)
	require.Equal(t, 2, tr.Len())

	first := tr.First().State.(trace.GraphState)
	assert.Equal(t, []core.NodeID{0}, first.Visited)
	assert.Equal(t, map[core.NodeID]float64{0: 0}, first.Distance)
	assert.Equal(t, "start at 0", tr.First().Message)

	last := tr.Last().State.(trace.GraphState)
	assert.Equal(t, []core.NodeID{99, 1}, last.Visited)
	assert.True(t, last.IsVisited(1))
	assert.False(t, last.IsVisited(0))
}

func TestCloneState_DoesNotTouchTrace(t *testing.T) {
	rec := trace.NewRecorder("demo", 2)
	rec.Emit(trace.KindStart, trace.GraphState{
		Visited:  []core.NodeID{0},
		Distance: map[core.NodeID]float64{0: 0},
		Parent:   map[core.NodeID]core.NodeID{},
	}, "start")
	rec.Emit(trace.KindDone, trace.MatrixState{
		Cells:  [][]float64{{1, 0}},
		Labels: [][]int{{1, 0}},
		Layer:  trace.None,
	}, "done")
	tr, err := rec.Finish()
	require.NoError(t, err)

	g := tr.First().CloneState().(trace.GraphState)
	g.Visited[0] = 7
	g.Distance[0] = 9
	g.Parent[1] = 0
	m := tr.Last().CloneState().(trace.MatrixState)
	m.Cells[0][1] = 5
	m.Labels[0][1] = 2

	first := tr.First().State.(trace.GraphState)
	assert.Equal(t, []core.NodeID{0}, first.Visited)
	assert.Equal(t, map[core.NodeID]float64{0: 0}, first.Distance)
	assert.Empty(t, first.Parent)
	last := tr.Last().State.(trace.MatrixState)
	assert.Equal(t, [][]float64{{1, 0}}, last.Cells)
	assert.Equal(t, [][]int{{1, 0}}, last.Labels)

	assert.Nil(t, (&trace.Snapshot{}).CloneState())
}

func TestEmit_MatrixRowsAreIndependent(t *testing.T) {
	cells := [][]float64{{1, 2}, {3, 4}}
	rec := trace.NewRecorder("rotate", 4)
	rec.Emit(trace.KindStart, trace.MatrixState{Cells: cells, Layer: trace.None}, "start")
	cells[0][0] = 7

	tr, err := rec.Finish()
	require.NoError(t, err)
	assert.Equal(t, 1.0, tr.First().State.(trace.MatrixState).Cells[0][0])
}

func TestTrace_Accessors(t *testing.T) {
	rec := trace.NewRecorder("demo", 2)
	for i, k := range []trace.Kind{trace.KindStart, trace.KindPush, trace.KindDone} {
		rec.Emit(k, trace.ListState{Mode: "stack"}, "step %d", i)
	}
	tr, err := rec.Finish()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, tr.ID)
	assert.Equal(t, "demo", tr.Algorithm)
	assert.Equal(t, 2, tr.ElementCount)
	assert.Equal(t, []trace.Kind{trace.KindStart, trace.KindPush, trace.KindDone}, tr.Kinds())

	for i, s := range tr.Snapshots() {
		assert.Equal(t, i, s.Index)
		got, err := tr.At(i)
		require.NoError(t, err)
		assert.Same(t, s, got)
	}

	_, err = tr.At(3)
	require.ErrorIs(t, err, trace.ErrIndexOutOfRange)
	_, err = tr.At(-1)
	require.ErrorIs(t, err, trace.ErrIndexOutOfRange)
}

func TestFinish_Empty(t *testing.T) {
	_, err := trace.NewRecorder("demo", 0).Finish()
	require.ErrorIs(t, err, trace.ErrEmptyTrace)
	require.ErrorIs(t, err, fault.ErrEngineDefect)
}

func oneSnapshot(string, int) (*trace.Trace, error) {
	rec := trace.NewRecorder("ok", 1)
	rec.Emit(trace.KindDone, trace.ArrayState{Current: trace.None, Popped: trace.None}, "done")

	return rec.Finish()
}

func TestGenerate_Classification(t *testing.T) {
	errStructural := fault.Define(fault.ErrStructuralPrecondition, "demo: no start")
	errEmpty := fault.Define(fault.ErrEmptyStructure, "demo: empty")

	cases := []struct {
		name   string
		engine trace.Engine[string, int]
		target error
		defect bool
	}{
		{"structural passes through", func(string, int) (*trace.Trace, error) { return nil, errStructural }, errStructural, false},
		{"empty passes through", func(string, int) (*trace.Trace, error) { return nil, fmt.Errorf("pop: %w", errEmpty) }, errEmpty, false},
		{"cancellation passes through", func(string, int) (*trace.Trace, error) { return nil, context.Canceled }, context.Canceled, false},
		{"plain error is a defect", func(string, int) (*trace.Trace, error) { return nil, errors.New("boom") }, fault.ErrEngineDefect, true},
		{"nil trace is a defect", func(string, int) (*trace.Trace, error) { return nil, nil }, trace.ErrEmptyTrace, true},
		{"panic is a defect", func(string, int) (*trace.Trace, error) { panic("index out of range") }, fault.ErrEngineDefect, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := trace.Generate("demo", tc.engine, "s", 1)
			require.Error(t, err)
			assert.Nil(t, tr)
			require.ErrorIs(t, err, tc.target)
			assert.Equal(t, tc.defect, errors.Is(err, fault.ErrEngineDefect))
		})
	}

	tr, err := trace.Generate("ok", oneSnapshot, "s", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Len())
}
