package bfs_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/stepwise/bfs"
	"github.com/katalvlaran/stepwise/builder"
	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// buildGraph adds nodes by value and undirected edges between value pairs.
func buildGraph(t *testing.T, values []int, edges [][2]int, opts ...core.GraphOption) *core.Graph {
	t.Helper()
	g := core.NewGraph(opts...)
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

func valueOf(t *testing.T, g *core.Graph, id core.NodeID) int {
	t.Helper()
	n, err := g.Node(id)
	require.NoError(t, err)

	return n.Value
}

func idOf(t *testing.T, g *core.Graph, value int) core.NodeID {
	t.Helper()
	n, ok := g.NodeByValue(value)
	require.True(t, ok, "value %d", value)

	return n.ID
}

func TestBFS_Scenario(t *testing.T) {
	g := buildGraph(t, []int{1, 2, 3, 4}, [][2]int{{1, 2}, {2, 3}, {1, 4}})

	res, err := bfs.BFS(g, idOf(t, g, 1))
	require.NoError(t, err)

	order := make([]int, len(res.Order))
	for i, id := range res.Order {
		order[i] = valueOf(t, g, id)
	}
	assert.Equal(t, []int{1, 2, 4, 3}, order)

	dist := map[int]int{}
	for id, d := range res.Distance {
		dist[valueOf(t, g, id)] = d
	}
	assert.Equal(t, map[int]int{1: 0, 2: 1, 4: 1, 3: 2}, dist)

	path, err := res.PathTo(idOf(t, g, 3))
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{idOf(t, g, 1), idOf(t, g, 2), idOf(t, g, 3)}, path)
}

func TestBFS_SnapshotSequence(t *testing.T) {
	g := buildGraph(t, []int{1, 2, 3, 4}, [][2]int{{1, 2}, {2, 3}, {1, 4}})
	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)

	want := []trace.Kind{
		trace.KindStart,
		trace.KindVisit, trace.KindDiscover, trace.KindDiscover, // 1 finds 2, 4
		trace.KindVisit, trace.KindDiscover,                     // 2 finds 3
		trace.KindVisit,                                         // 4
		trace.KindVisit,                                         // 3
		trace.KindDone,
	}
	assert.Equal(t, want, res.Trace.Kinds())
	assert.Equal(t, bfs.Algorithm, res.Trace.Algorithm)
	assert.Equal(t, 4, res.Trace.ElementCount)

	start := res.Trace.First().State.(trace.GraphState)
	assert.Empty(t, start.Visited)
	assert.Equal(t, []core.NodeID{0}, start.Frontier)

	done := res.Trace.Last().State.(trace.GraphState)
	assert.Len(t, done.Distance, 4)
	assert.Len(t, done.Parent, 3)
	assert.Len(t, done.TreeEdges, 3)
	assert.Empty(t, done.Frontier)
}

func TestBFS_VisitedGrowsMonotonically(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := core.NewGraph()
		_, err := builder.GenerateRandom(g, builder.WithSeed(seed))
		require.NoError(t, err)

		res, err := bfs.BFS(g, 0)
		require.NoError(t, err)

		snaps := res.Trace.Snapshots()
		for i := 1; i < len(snaps); i++ {
			prev := snaps[i-1].State.(trace.GraphState)
			cur := snaps[i].State.(trace.GraphState)
			require.GreaterOrEqual(t, len(cur.Visited), len(prev.Visited))
			assert.Equal(t, prev.Visited, cur.Visited[:len(prev.Visited)], "seed %d step %d", seed, i)
		}
	}
}

// TestBFS_MatchesReferenceHopCounts compares against gonum's Floyd–Warshall
// with unit weights.
func TestBFS_MatchesReferenceHopCounts(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		g := core.NewGraph()
		_, err := builder.GenerateRandom(g, builder.WithSeed(seed), builder.WithEdgeFactor(1.0))
		require.NoError(t, err)

		ref := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
		for _, id := range g.NodeIDs() {
			ref.AddNode(simple.Node(id))
		}
		for _, e := range g.Edges() {
			ref.SetWeightedEdge(ref.NewWeightedEdge(simple.Node(e.From), simple.Node(e.To), 1))
		}
		all, ok := path.FloydWarshall(ref)
		require.True(t, ok)

		res, err := bfs.BFS(g, 0)
		require.NoError(t, err)
		for _, id := range g.NodeIDs() {
			want := all.Weight(0, int64(id))
			got, reached := res.Distance[id]
			if math.IsInf(want, 1) {
				assert.False(t, reached, "seed %d node %d", seed, id)
				continue
			}
			require.True(t, reached, "seed %d node %d", seed, id)
			assert.Equal(t, want, float64(got), "seed %d node %d", seed, id)
		}
	}
}

func TestBFS_TraceSurvivesGraphMutation(t *testing.T) {
	g := buildGraph(t, []int{1, 2, 3}, [][2]int{{1, 2}})
	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	before := res.Trace.Last().State.(trace.GraphState)

	_, err = g.AddEdge(2, 3)
	require.NoError(t, err)
	g.Clear()

	after := res.Trace.Last().State.(trace.GraphState)
	assert.Equal(t, before, after)
	assert.Len(t, after.Distance, 2)
}

func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, 0)
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	g := buildGraph(t, []int{1}, nil)
	_, err = bfs.BFS(g, 5)
	require.ErrorIs(t, err, core.ErrNodeNotFound)
	require.ErrorIs(t, err, fault.ErrStructuralPrecondition)

	_, err = bfs.BFS(g, 0, bfs.WithMaxDepth(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)

	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	_, err = res.PathTo(3)
	require.ErrorIs(t, err, bfs.ErrNoPath)
}

func TestBFS_MaxDepth(t *testing.T) {
	g := buildGraph(t, []int{1, 2, 3, 4}, [][2]int{{1, 2}, {2, 3}, {3, 4}})
	res, err := bfs.BFS(g, 0, bfs.WithMaxDepth(2))
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{0, 1, 2}, res.Order)
	assert.NotContains(t, res.Distance, core.NodeID(3))
}

func TestBFS_Cancelled(t *testing.T) {
	g := buildGraph(t, []int{1, 2}, [][2]int{{1, 2}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bfs.BFS(g, 0, bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBFS_DirectedFollowsArrows(t *testing.T) {
	g := core.NewGraph(core.WithDirected())
	for _, v := range []int{1, 2, 3} {
		_, err := g.AddNode(v)
		require.NoError(t, err)
	}
	_, err := g.AddEdge(2, 1)
	require.NoError(t, err)
	_, err = g.AddEdge(1, 3)
	require.NoError(t, err)

	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.NodeID{0, 2}, res.Order)
}
