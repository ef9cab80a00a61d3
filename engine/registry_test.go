package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/avl"
	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/dijkstra"
	"github.com/katalvlaran/stepwise/engine"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/islands"
	"github.com/katalvlaran/stepwise/linear"
	"github.com/katalvlaran/stepwise/matrix"
	"github.com/katalvlaran/stepwise/mst"
	"github.com/katalvlaran/stepwise/rotation"
	"github.com/katalvlaran/stepwise/search"
	"github.com/katalvlaran/stepwise/trace"
)

func lineGraph(t *testing.T, opts ...core.GraphOption) *core.Graph {
	t.Helper()
	g := core.NewGraph(opts...)
	for _, v := range []int{10, 20, 30} {
		_, err := g.AddNode(v)
		require.NoError(t, err)
	}
	var eopts []core.EdgeOption
	if g.Weighted() {
		eopts = append(eopts, core.WithWeight(2))
	}
	_, err := g.AddEdge(10, 20, eopts...)
	require.NoError(t, err)
	_, err = g.AddEdge(20, 30, eopts...)
	require.NoError(t, err)

	return g
}

func TestBuiltin_Names(t *testing.T) {
	reg := engine.Builtin()
	assert.Equal(t, []string{
		"avl", "bfs", "binary-search", "daily-temperatures", "dfs", "dijkstra",
		"islands", "kruskal", "linear-search", "next-greater", "next-smaller", "prim",
		"queue", "rotate", "stack",
	}, reg.Names())

	ds := reg.Descriptors()
	require.Len(t, ds, 15)
	for _, d := range ds {
		assert.NotEmpty(t, d.Summary, d.Name)
		assert.NotNil(t, d.Run, d.Name)
	}
	d, err := reg.Lookup("dijkstra")
	require.NoError(t, err)
	assert.Equal(t, engine.FamilyGraph, d.Family)
	assert.Equal(t, "start", d.Params[0])
}

func TestRegistry_Errors(t *testing.T) {
	reg := engine.Builtin()

	_, err := reg.Run("quicksort", engine.Input{}, nil)
	require.ErrorIs(t, err, engine.ErrUnknownEngine)
	assert.True(t, fault.IsPrecondition(err))

	err = reg.Register(engine.Descriptor{Name: "bfs"})
	assert.ErrorIs(t, err, engine.ErrDuplicateEngine)
}

func TestRun_GraphEngines(t *testing.T) {
	reg := engine.Builtin()
	g := lineGraph(t)

	// Values arrive as text from flags; weak typing turns "10" into 10.
	out, err := reg.Run("bfs", engine.Input{Graph: g}, map[string]any{"start": "10"})
	require.NoError(t, err)
	assert.Equal(t, "bfs", out.Trace.Algorithm)
	assert.Equal(t, trace.KindDone, out.Trace.Last().Kind)
	assert.Nil(t, out.Tree)

	out, err = reg.Run("dfs", engine.Input{Graph: g}, map[string]any{"start": 30, "full": "true"})
	require.NoError(t, err)
	st := out.Trace.Last().State.(trace.GraphState)
	assert.Len(t, st.Visited, 3)

	wg := lineGraph(t, core.WithWeighted())
	out, err = reg.Run("dijkstra", engine.Input{Graph: wg}, map[string]any{"start": 10, "target": 30})
	require.NoError(t, err)
	kinds := out.Trace.Kinds()
	assert.Equal(t, trace.KindPath, kinds[len(kinds)-2])
	final := out.Trace.Last().State.(trace.GraphState)
	assert.Equal(t, 4.0, final.Distance[2])

	out, err = reg.Run("prim", engine.Input{Graph: wg}, map[string]any{"start": 20})
	require.NoError(t, err)
	assert.Len(t, out.Trace.Last().State.(trace.GraphState).TreeEdges, 2)

	out, err = reg.Run("kruskal", engine.Input{Graph: wg}, nil)
	require.NoError(t, err)
	assert.Equal(t, []core.EdgeID{0, 1}, out.Trace.Last().State.(trace.GraphState).TreeEdges)
}

func TestRun_GraphPreconditions(t *testing.T) {
	reg := engine.Builtin()
	g := lineGraph(t)

	cases := []struct {
		name   string
		algo   string
		in     engine.Input
		params map[string]any
		want   error
	}{
		{"missing start", "bfs", engine.Input{Graph: g}, map[string]any{}, engine.ErrBadParams},
		{"unknown key", "bfs", engine.Input{Graph: g}, map[string]any{"start": 10, "depth": 2}, engine.ErrBadParams},
		{"bad type", "dfs", engine.Input{Graph: g}, map[string]any{"start": "ten"}, engine.ErrBadParams},
		{"no graph", "dfs", engine.Input{}, map[string]any{"start": 10}, engine.ErrNoStructure},
		{"absent start", "bfs", engine.Input{Graph: g}, map[string]any{"start": 99}, core.ErrNodeNotFound},
		{"unweighted spanning tree", "kruskal", engine.Input{Graph: g}, nil, mst.ErrInvalidGraph},
		{"prim without start", "prim", engine.Input{Graph: g}, nil, engine.ErrBadParams},
		{"absent target", "dijkstra", engine.Input{Graph: g}, map[string]any{"start": 10, "target": 99}, core.ErrNodeNotFound},
		{"unweighted", "dijkstra", engine.Input{Graph: g}, map[string]any{"start": 10}, dijkstra.ErrUnweightedGraph},
		{"negative cap", "dijkstra", engine.Input{Graph: g}, map[string]any{"start": 10, "max_distance": -1}, engine.ErrBadParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := reg.Run(tc.algo, tc.in, tc.params)
			require.ErrorIs(t, err, tc.want)
			assert.True(t, fault.IsPrecondition(err))
			assert.Nil(t, out)
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Builtin().Run("bfs", engine.Input{Ctx: ctx, Graph: lineGraph(t)}, map[string]any{"start": 10})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, fault.ErrEngineDefect)
}

func TestRun_AVL(t *testing.T) {
	reg := engine.Builtin()
	tree := avl.New()
	tree.Insert(5)

	out, err := reg.Run("avl", engine.Input{Tree: tree}, map[string]any{"values": "3, 8 1"})
	require.NoError(t, err)
	require.NotNil(t, out.Tree)
	assert.Equal(t, []float64{1, 3, 5, 8}, out.Tree.InOrder())
	assert.Equal(t, []float64{5}, tree.InOrder())

	// A single scalar lifts into a one-element list; a nil tree starts empty.
	out, err = reg.Run("avl", engine.Input{}, map[string]any{"values": 7})
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, out.Tree.InOrder())

	_, err = reg.Run("avl", engine.Input{}, map[string]any{"values": "3 x"})
	assert.ErrorIs(t, err, engine.ErrBadParams)
}

func TestRun_ArrayEngines(t *testing.T) {
	reg := engine.Builtin()
	temps := []float64{73, 74, 75, 71, 69, 72, 76, 73}

	out, err := reg.Run("daily-temperatures", engine.Input{Array: temps}, nil)
	require.NoError(t, err)
	st := out.Trace.Last().State.(trace.ArrayState)
	assert.Equal(t, []float64{1, 1, 4, 2, 1, 1, 0, 0}, st.Answers)

	_, err = reg.Run("next-greater", engine.Input{Array: temps}, map[string]any{"target": 1})
	assert.ErrorIs(t, err, engine.ErrBadParams)

	out, err = reg.Run("binary-search", engine.Input{Array: []float64{1, 3, 5, 7}}, map[string]any{"target": "7"})
	require.NoError(t, err)
	found, err := out.Trace.At(out.Trace.Len() - 2)
	require.NoError(t, err)
	assert.Equal(t, trace.KindFound, found.Kind)

	_, err = reg.Run("binary-search", engine.Input{Array: temps}, map[string]any{"target": 75})
	assert.ErrorIs(t, err, search.ErrUnsorted)

	out, err = reg.Run("linear-search", engine.Input{Array: temps}, map[string]any{"target": 100})
	require.NoError(t, err)
	assert.Equal(t, "linear-search", out.Trace.Algorithm)
}

func TestRun_Linear(t *testing.T) {
	reg := engine.Builtin()

	out, err := reg.Run("stack", engine.Input{Array: []float64{1}}, map[string]any{"ops": "push 2, peek, pop"})
	require.NoError(t, err)
	assert.Equal(t, []trace.Kind{trace.KindStart, trace.KindPush, trace.KindPeek, trace.KindPop, trace.KindDone}, out.Trace.Kinds())

	_, err = reg.Run("queue", engine.Input{}, map[string]any{"ops": "dequeue"})
	require.ErrorIs(t, err, linear.ErrEmpty)
	assert.ErrorIs(t, err, fault.ErrEmptyStructure)

	_, err = reg.Run("queue", engine.Input{}, map[string]any{"ops": "push 1"})
	assert.ErrorIs(t, err, linear.ErrWrongMode)

	_, err = reg.Run("stack", engine.Input{}, map[string]any{"ops": "jump"})
	assert.ErrorIs(t, err, fault.ErrInputParse)
}

func TestRun_Rotate(t *testing.T) {
	reg := engine.Builtin()
	m, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	out, err := reg.Run("rotate", engine.Input{Matrix: m}, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 1}, {4, 2}}, out.Matrix.ToRows())
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m.ToRows())

	_, err = reg.Run("rotate", engine.Input{}, nil)
	assert.ErrorIs(t, err, rotation.ErrMatrixNil)

	wide, err := matrix.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	_, err = reg.Run("rotate", engine.Input{Matrix: wide}, nil)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestRun_Islands(t *testing.T) {
	reg := engine.Builtin()
	m, err := matrix.FromRows([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	out, err := reg.Run("islands", engine.Input{Matrix: m}, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 0}, {0, 2}}, out.Trace.Last().State.(trace.MatrixState).Labels)
	assert.Nil(t, out.Matrix)

	out, err = reg.Run("islands", engine.Input{Matrix: m}, map[string]any{"diagonal": "true", "threshold": "1"})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 0}, {0, 1}}, out.Trace.Last().State.(trace.MatrixState).Labels)

	_, err = reg.Run("islands", engine.Input{}, nil)
	assert.ErrorIs(t, err, islands.ErrMatrixNil)
}
