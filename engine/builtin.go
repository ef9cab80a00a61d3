// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stepwise/avl"
	"github.com/katalvlaran/stepwise/bfs"
	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/dfs"
	"github.com/katalvlaran/stepwise/dijkstra"
	"github.com/katalvlaran/stepwise/islands"
	"github.com/katalvlaran/stepwise/linear"
	"github.com/katalvlaran/stepwise/matrix"
	"github.com/katalvlaran/stepwise/monostack"
	"github.com/katalvlaran/stepwise/mst"
	"github.com/katalvlaran/stepwise/rotation"
	"github.com/katalvlaran/stepwise/search"
	"github.com/katalvlaran/stepwise/trace"
)

// Builtin returns a registry holding every stepwise engine.
func Builtin() *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{
		{
			Name:    bfs.Algorithm,
			Family:  FamilyGraph,
			Summary: "Breadth-first traversal with hop distances.",
			Params:  []string{"start", "max_depth"},
			Run:     runBFS,
		},
		{
			Name:    dfs.Algorithm,
			Family:  FamilyGraph,
			Summary: "Depth-first traversal in recursive pre-order.",
			Params:  []string{"start", "full"},
			Run:     runDFS,
		},
		{
			Name:    dijkstra.Algorithm,
			Family:  FamilyGraph,
			Summary: "Single-source shortest paths on a non-negatively weighted graph.",
			Params:  []string{"start", "target", "max_distance"},
			Run:     runDijkstra,
		},
		{
			Name:    mst.AlgorithmPrim,
			Family:  FamilyGraph,
			Summary: "Minimum spanning tree grown from a start node.",
			Params:  []string{"start"},
			Run:     runPrim,
		},
		{
			Name:    mst.AlgorithmKruskal,
			Family:  FamilyGraph,
			Summary: "Minimum spanning tree from edges in weight order.",
			Run:     runKruskal,
		},
		{
			Name:    avl.Algorithm,
			Family:  FamilyTree,
			Summary: "AVL insertion with rotations.",
			Params:  []string{"values"},
			Run:     runAVL,
		},
		scanDescriptor(monostack.NextGreater, "Next greater element to the right."),
		scanDescriptor(monostack.NextSmaller, "Next smaller element to the right."),
		scanDescriptor(monostack.DaysUntilWarmer, "Days until a warmer temperature."),
		{
			Name:    search.AlgorithmLinear,
			Family:  FamilyArray,
			Summary: "Left-to-right probe for a target value.",
			Params:  []string{"target"},
			Run:     runSearch(search.AlgorithmLinear, search.Linear),
		},
		{
			Name:    search.AlgorithmBinary,
			Family:  FamilyArray,
			Summary: "Halving search over a sorted array.",
			Params:  []string{"target"},
			Run:     runSearch(search.AlgorithmBinary, search.Binary),
		},
		linearDescriptor(linear.Stack, "Push, pop and peek on a stack."),
		linearDescriptor(linear.Queue, "Enqueue, dequeue and front on a queue."),
		{
			Name:    rotation.Algorithm,
			Family:  FamilyMatrix,
			Summary: "Rotate a square matrix 90 degrees clockwise in place.",
			Run:     runRotate,
		},
		{
			Name:    islands.Algorithm,
			Family:  FamilyMatrix,
			Summary: "Label connected land regions with a flood fill.",
			Params:  []string{"threshold", "diagonal"},
			Run:     runIslands,
		},
	} {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}

	return r
}

func graphOf(name string, in Input) (*core.Graph, error) {
	if in.Graph == nil {
		return nil, fmt.Errorf("%s: %w: no graph", name, ErrNoStructure)
	}

	return in.Graph, nil
}

func runBFS(in Input, raw map[string]any) (*Output, error) {
	p, err := decode[bfsParams](bfs.Algorithm, raw, "start")
	if err != nil {
		return nil, err
	}
	g, err := graphOf(bfs.Algorithm, in)
	if err != nil {
		return nil, err
	}
	start, err := resolve(g, p.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: start: %w", bfs.Algorithm, err)
	}

	tr, err := trace.Generate(bfs.Algorithm, func(g *core.Graph, p bfsParams) (*trace.Trace, error) {
		res, err := bfs.BFS(g, start, bfs.WithContext(in.context()), bfs.WithMaxDepth(p.MaxDepth))
		if err != nil {
			return nil, err
		}
		return res.Trace, nil
	}, g, p)
	if err != nil {
		return nil, err
	}

	return &Output{Trace: tr}, nil
}

func runDFS(in Input, raw map[string]any) (*Output, error) {
	p, err := decode[dfsParams](dfs.Algorithm, raw, "start")
	if err != nil {
		return nil, err
	}
	g, err := graphOf(dfs.Algorithm, in)
	if err != nil {
		return nil, err
	}
	start, err := resolve(g, p.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: start: %w", dfs.Algorithm, err)
	}

	tr, err := trace.Generate(dfs.Algorithm, func(g *core.Graph, p dfsParams) (*trace.Trace, error) {
		opts := []dfs.Option{dfs.WithContext(in.context())}
		if p.Full {
			opts = append(opts, dfs.WithFullTraversal())
		}
		res, err := dfs.DFS(g, start, opts...)
		if err != nil {
			return nil, err
		}
		return res.Trace, nil
	}, g, p)
	if err != nil {
		return nil, err
	}

	return &Output{Trace: tr}, nil
}

func runDijkstra(in Input, raw map[string]any) (*Output, error) {
	p, err := decode[dijkstraParams](dijkstra.Algorithm, raw, "start")
	if err != nil {
		return nil, err
	}
	g, err := graphOf(dijkstra.Algorithm, in)
	if err != nil {
		return nil, err
	}
	start, err := resolve(g, p.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: start: %w", dijkstra.Algorithm, err)
	}
	opts := []dijkstra.Option{dijkstra.Source(start), dijkstra.WithContext(in.context())}
	if p.Target != nil {
		target, err := resolve(g, *p.Target)
		if err != nil {
			return nil, fmt.Errorf("%s: target: %w", dijkstra.Algorithm, err)
		}
		opts = append(opts, dijkstra.WithTarget(target))
	}
	if p.MaxDistance != nil {
		if *p.MaxDistance < 0 || math.IsNaN(*p.MaxDistance) {
			return nil, fmt.Errorf("%s: %w: max_distance %v", dijkstra.Algorithm, ErrBadParams, *p.MaxDistance)
		}
		opts = append(opts, dijkstra.WithMaxDistance(*p.MaxDistance))
	}

	tr, err := trace.Generate(dijkstra.Algorithm, func(g *core.Graph, opts []dijkstra.Option) (*trace.Trace, error) {
		res, err := dijkstra.Dijkstra(g, opts...)
		if err != nil {
			return nil, err
		}
		return res.Trace, nil
	}, g, opts)
	if err != nil {
		return nil, err
	}

	return &Output{Trace: tr}, nil
}

func runPrim(in Input, raw map[string]any) (*Output, error) {
	p, err := decode[primParams](mst.AlgorithmPrim, raw, "start")
	if err != nil {
		return nil, err
	}
	g, err := graphOf(mst.AlgorithmPrim, in)
	if err != nil {
		return nil, err
	}
	root, err := resolve(g, p.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: start: %w", mst.AlgorithmPrim, err)
	}

	tr, err := trace.Generate(mst.AlgorithmPrim, func(g *core.Graph, root core.NodeID) (*trace.Trace, error) {
		res, err := mst.Prim(g, root, mst.WithContext(in.context()))
		if err != nil {
			return nil, err
		}
		return res.Trace, nil
	}, g, root)
	if err != nil {
		return nil, err
	}

	return &Output{Trace: tr}, nil
}

func runKruskal(in Input, raw map[string]any) (*Output, error) {
	if _, err := decode[noParams](mst.AlgorithmKruskal, raw); err != nil {
		return nil, err
	}
	g, err := graphOf(mst.AlgorithmKruskal, in)
	if err != nil {
		return nil, err
	}

	tr, err := trace.Generate(mst.AlgorithmKruskal, func(g *core.Graph, _ noParams) (*trace.Trace, error) {
		res, err := mst.Kruskal(g, mst.WithContext(in.context()))
		if err != nil {
			return nil, err
		}
		return res.Trace, nil
	}, g, noParams{})
	if err != nil {
		return nil, err
	}

	return &Output{Trace: tr}, nil
}

func runAVL(in Input, raw map[string]any) (*Output, error) {
	p, err := decode[avlParams](avl.Algorithm, raw, "values")
	if err != nil {
		return nil, err
	}
	tree := in.Tree
	if tree == nil {
		tree = avl.New()
	}

	var next *avl.Tree
	tr, err := trace.Generate(avl.Algorithm, func(t *avl.Tree, values []float64) (*trace.Trace, error) {
		tr, out, err := avl.InsertAll(t, values)
		next = out
		return tr, err
	}, tree, p.Values)
	if err != nil {
		return nil, err
	}

	return &Output{Trace: tr, Tree: next}, nil
}

func scanDescriptor(cfg monostack.Config, summary string) Descriptor {
	return Descriptor{
		Name:    cfg.Name,
		Family:  FamilyArray,
		Summary: summary,
		Run: func(in Input, raw map[string]any) (*Output, error) {
			if _, err := decode[noParams](cfg.Name, raw); err != nil {
				return nil, err
			}
			tr, err := trace.Generate(cfg.Name, func(values []float64, cfg monostack.Config) (*trace.Trace, error) {
				res, err := monostack.Scan(values, cfg)
				if err != nil {
					return nil, err
				}
				return res.Trace, nil
			}, in.Array, cfg)
			if err != nil {
				return nil, err
			}

			return &Output{Trace: tr}, nil
		},
	}
}

func runSearch(name string, fn func([]float64, float64) (*search.Result, error)) RunFunc {
	return func(in Input, raw map[string]any) (*Output, error) {
		p, err := decode[searchParams](name, raw, "target")
		if err != nil {
			return nil, err
		}
		tr, err := trace.Generate(name, func(values []float64, target float64) (*trace.Trace, error) {
			res, err := fn(values, target)
			if err != nil {
				return nil, err
			}
			return res.Trace, nil
		}, in.Array, p.Target)
		if err != nil {
			return nil, err
		}

		return &Output{Trace: tr}, nil
	}
}

func linearDescriptor(mode linear.Mode, summary string) Descriptor {
	name := mode.String()
	return Descriptor{
		Name:    name,
		Family:  FamilyList,
		Summary: summary,
		Params:  []string{"ops"},
		Run: func(in Input, raw map[string]any) (*Output, error) {
			p, err := decode[linearParams](name, raw)
			if err != nil {
				return nil, err
			}
			ops, err := linear.ParseOps(p.Ops)
			if err != nil {
				return nil, fmt.Errorf("%s: ops: %w", name, err)
			}
			tr, err := trace.Generate(name, func(initial []float64, ops []linear.Op) (*trace.Trace, error) {
				res, err := linear.Run(mode, initial, ops)
				if err != nil {
					return nil, err
				}
				return res.Trace, nil
			}, in.Array, ops)
			if err != nil {
				return nil, err
			}

			return &Output{Trace: tr}, nil
		},
	}
}

func runRotate(in Input, raw map[string]any) (*Output, error) {
	if _, err := decode[noParams](rotation.Algorithm, raw); err != nil {
		return nil, err
	}

	var rotated *matrix.Dense
	tr, err := trace.Generate(rotation.Algorithm, func(m *matrix.Dense, _ noParams) (*trace.Trace, error) {
		res, err := rotation.Rotate(m)
		if err != nil {
			return nil, err
		}
		rotated = res.Matrix
		return res.Trace, nil
	}, in.Matrix, noParams{})
	if err != nil {
		return nil, err
	}

	return &Output{Trace: tr, Matrix: rotated}, nil
}

func runIslands(in Input, raw map[string]any) (*Output, error) {
	p, err := decode[islandsParams](islands.Algorithm, raw)
	if err != nil {
		return nil, err
	}
	opts := []islands.Option{islands.WithContext(in.context())}
	if p.Threshold != nil {
		opts = append(opts, islands.WithThreshold(*p.Threshold))
	}
	if p.Diagonal {
		opts = append(opts, islands.WithDiagonals())
	}

	tr, err := trace.Generate(islands.Algorithm, func(m *matrix.Dense, opts []islands.Option) (*trace.Trace, error) {
		res, err := islands.Fill(m, opts...)
		if err != nil {
			return nil, err
		}
		return res.Trace, nil
	}, in.Matrix, opts)
	if err != nil {
		return nil, err
	}

	return &Output{Trace: tr}, nil
}
