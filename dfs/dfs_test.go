package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/builder"
	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/dfs"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

func buildGraph(t *testing.T, values []int, edges [][2]int) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, v := range values {
		_, err := g.AddNode(v)
		require.NoError(t, err)
	}
	for _, e := range edges {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}

	return g
}

// recursiveOrder is the textbook recursive pre-order used as reference.
func recursiveOrder(t *testing.T, g *core.Graph, start core.NodeID) []core.NodeID {
	t.Helper()
	seen := map[core.NodeID]bool{}
	var out []core.NodeID
	var visit func(core.NodeID)
	visit = func(u core.NodeID) {
		seen[u] = true
		out = append(out, u)
		arcs, err := g.Outgoing(u)
		require.NoError(t, err)
		for _, a := range arcs {
			if !seen[a.To] {
				visit(a.To)
			}
		}
	}
	visit(start)

	return out
}

func TestDFS_SnapshotSequence(t *testing.T) {
	g := buildGraph(t, []int{1, 2, 3, 4}, [][2]int{{1, 2}, {2, 3}, {1, 4}})
	res, err := dfs.DFS(g, 0)
	require.NoError(t, err)

	assert.Equal(t, []core.NodeID{0, 1, 2, 3}, res.Order)
	assert.Equal(t, []core.NodeID{2, 1, 3, 0}, res.PostOrder)
	assert.Equal(t, map[core.NodeID]int{0: 0, 1: 1, 2: 2, 3: 1}, res.Depth)
	assert.Equal(t, map[core.NodeID]core.NodeID{1: 0, 2: 1, 3: 0}, res.Parent)

	want := []trace.Kind{
		trace.KindStart,
		trace.KindVisit,   // 0
		trace.KindExamine, // 0-1
		trace.KindVisit,   // 1
		trace.KindExamine, // 1-0, already visited
		trace.KindExamine, // 1-2
		trace.KindVisit,   // 2
		trace.KindExamine, // 2-1
		trace.KindFinish,  // 2
		trace.KindFinish,  // 1
		trace.KindExamine, // 0-3
		trace.KindVisit,   // 3
		trace.KindExamine, // 3-0
		trace.KindFinish,  // 3
		trace.KindFinish,  // 0
		trace.KindDone,
	}
	assert.Equal(t, want, res.Trace.Kinds())

	// The frame stack is visible while node 2 is being entered.
	st := res.Trace.Snapshots()[6].State.(trace.GraphState)
	assert.Equal(t, []core.NodeID{0, 1, 2}, st.Frontier)
	assert.Equal(t, core.NodeID(2), st.Current)
}

func TestDFS_MatchesRecursiveReference(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		g := core.NewGraph()
		_, err := builder.GenerateRandom(g, builder.WithSeed(seed))
		require.NoError(t, err)

		res, err := dfs.DFS(g, 0)
		require.NoError(t, err)
		assert.Equal(t, recursiveOrder(t, g, 0), res.Order, "seed %d", seed)
		assert.ElementsMatch(t, res.Order, res.PostOrder, "seed %d", seed)
	}
}

func TestDFS_VisitedGrowsMonotonically(t *testing.T) {
	g := core.NewGraph()
	_, err := builder.GenerateRandom(g, builder.WithSeed(3))
	require.NoError(t, err)

	res, err := dfs.DFS(g, 0, dfs.WithFullTraversal())
	require.NoError(t, err)
	snaps := res.Trace.Snapshots()
	for i := 1; i < len(snaps); i++ {
		prev := snaps[i-1].State.(trace.GraphState).Visited
		cur := snaps[i].State.(trace.GraphState).Visited
		require.GreaterOrEqual(t, len(cur), len(prev))
		assert.Equal(t, prev, cur[:len(prev)])
	}
	assert.Len(t, res.Order, g.NodeCount())
}

func TestDFS_CycleTerminates(t *testing.T) {
	g := buildGraph(t, []int{1, 2, 3}, [][2]int{{1, 2}, {2, 3}, {3, 1}})
	res, err := dfs.DFS(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{0, 1, 2}, res.Order)
}

func TestDFS_FullTraversal(t *testing.T) {
	g := buildGraph(t, []int{1, 2, 3, 4}, [][2]int{{3, 4}})

	res, err := dfs.DFS(g, 2)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{2, 3}, res.Order)

	res, err = dfs.DFS(g, 2, dfs.WithFullTraversal())
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{2, 3, 0, 1}, res.Order)
	assert.Equal(t, 0, res.Depth[0])
}

func TestDFS_Errors(t *testing.T) {
	_, err := dfs.DFS(nil, 0)
	require.ErrorIs(t, err, dfs.ErrGraphNil)

	g := buildGraph(t, []int{1}, nil)
	_, err = dfs.DFS(g, 1)
	require.ErrorIs(t, err, core.ErrNodeNotFound)
	require.True(t, fault.IsPrecondition(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dfs.DFS(g, 0, dfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
