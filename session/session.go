// SPDX-License-Identifier: MIT
//
// Package session owns the structures a learner edits and the single
// playback controller replaying the last run.
//
// Every successful mutation discards the loaded trace, so playback never
// shows a run over a structure that no longer exists. A failed run leaves
// both the structures and the loaded trace exactly as they were.
package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/katalvlaran/stepwise/avl"
	"github.com/katalvlaran/stepwise/builder"
	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/engine"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/input"
	"github.com/katalvlaran/stepwise/internal/logging"
	"github.com/katalvlaran/stepwise/internal/metrics"
	"github.com/katalvlaran/stepwise/matrix"
	"github.com/katalvlaran/stepwise/playback"
	"github.com/katalvlaran/stepwise/trace"
)

// Mutation names, used as the metrics "op" label and in logs.
const (
	OpAddNode   = "add_node"
	OpAddEdge   = "add_edge"
	OpRandom    = "random_graph"
	OpSetGraph  = "set_graph"
	OpClear     = "clear_graph"
	OpSetArray  = "set_array"
	OpSetMatrix = "set_matrix"
	OpSetTree   = "set_tree"
	OpClearTree = "clear_tree"
	OpRunTree   = "avl_run"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metrics recorder. The default records nothing.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Session) { s.metrics = m }
}

// WithRegistry replaces the builtin engine registry.
func WithRegistry(r *engine.Registry) Option {
	return func(s *Session) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithPlayback passes options to the playback controller.
func WithPlayback(opts ...playback.Option) Option {
	return func(s *Session) { s.playOpts = append(s.playOpts, opts...) }
}

// WithGraph starts the session on g instead of an empty undirected graph.
func WithGraph(g *core.Graph) Option {
	return func(s *Session) {
		if g != nil {
			s.graph = g
		}
	}
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	log      *slog.Logger
	metrics  *metrics.Recorder
	registry *engine.Registry
	playOpts []playback.Option
	player   *playback.Controller

	graph  *core.Graph
	tree   *avl.Tree
	array  []float64
	matrix *matrix.Dense
}

// New returns a session with empty structures and an Idle controller.
func New(opts ...Option) *Session {
	s := &Session{
		log:      logging.NewNop(),
		registry: engine.Builtin(),
		graph:    core.NewGraph(),
		tree:     avl.New(),
		array:    []float64{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.player = playback.New(s.playOpts...)

	return s
}

// Player returns the playback controller.
func (s *Session) Player() *playback.Controller { return s.player }

// Registry returns the engine registry runs resolve names against.
func (s *Session) Registry() *engine.Registry { return s.registry }

// Close stops playback. The session must not be used afterwards.
func (s *Session) Close() { s.player.Close() }

// Graph returns the live graph. Mutate it through the session so the
// loaded trace is discarded.
func (s *Session) Graph() *core.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.graph
}

// Tree returns a copy of the current tree.
func (s *Session) Tree() *avl.Tree {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tree.Clone()
}

// Array returns a copy of the current array.
func (s *Session) Array() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.array)
}

// Matrix returns a copy of the current matrix, or nil when none is set.
func (s *Session) Matrix() *matrix.Dense {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matrix == nil {
		return nil
	}

	return s.matrix.Clone()
}

// mutate runs fn under the lock. On success the trace is discarded and the
// mutation is recorded.
func (s *Session) mutate(op string, fn func() error) error {
	s.mu.Lock()
	err := fn()
	s.mu.Unlock()
	if err != nil {
		s.log.Debug("mutation rejected", "op", op, "error", err)
		return err
	}
	s.player.Unload()
	s.metrics.Mutation(op)
	s.log.Debug("structure changed", "op", op)

	return nil
}

// AddNode adds a graph node carrying value.
func (s *Session) AddNode(value int) (core.NodeID, error) {
	id := core.NoNode
	err := s.mutate(OpAddNode, func() (err error) {
		id, err = s.graph.AddNode(value)
		return err
	})

	return id, err
}

// AddEdge connects the nodes carrying from and to.
func (s *Session) AddEdge(from, to int, opts ...core.EdgeOption) (core.EdgeID, error) {
	id := core.NoEdge
	err := s.mutate(OpAddEdge, func() (err error) {
		id, err = s.graph.AddEdge(from, to, opts...)
		return err
	})

	return id, err
}

// GenerateGraph replaces the graph contents with a random graph.
func (s *Session) GenerateGraph(opts ...builder.Option) (builder.Stats, error) {
	var stats builder.Stats
	err := s.mutate(OpRandom, func() (err error) {
		stats, err = builder.GenerateRandom(s.graph, opts...)
		return err
	})
	if err == nil {
		s.log.Info("random graph", "nodes", stats.Nodes, "edges", stats.Edges, "rejected", stats.Rejected)
	}

	return stats, err
}

// SetGraph replaces the graph.
func (s *Session) SetGraph(g *core.Graph) error {
	return s.mutate(OpSetGraph, func() error {
		if g == nil {
			return builder.ErrGraphNil
		}
		s.graph = g
		return nil
	})
}

// ClearGraph removes every node and edge, keeping the graph flags.
func (s *Session) ClearGraph() {
	_ = s.mutate(OpClear, func() error {
		s.graph.Clear()
		return nil
	})
}

// SetArray stores a copy of values.
func (s *Session) SetArray(values []float64) {
	_ = s.mutate(OpSetArray, func() error {
		s.array = slices.Clone(values)
		return nil
	})
}

// ParseArray parses text and stores the result. Malformed text leaves the
// array untouched.
func (s *Session) ParseArray(text string) error {
	values, err := input.ParseArray(text)
	if err != nil {
		return err
	}
	s.SetArray(values)

	return nil
}

// SetMatrix stores a copy of m.
func (s *Session) SetMatrix(m *matrix.Dense) {
	_ = s.mutate(OpSetMatrix, func() error {
		s.matrix = nil
		if m != nil {
			s.matrix = m.Clone()
		}
		return nil
	})
}

// ParseMatrix parses text and stores the result. Malformed text leaves the
// matrix untouched.
func (s *Session) ParseMatrix(text string) error {
	m, err := input.ParseMatrix(text)
	if err != nil {
		return err
	}
	s.SetMatrix(m)

	return nil
}

// SetTree stores a copy of t; nil resets to an empty tree.
func (s *Session) SetTree(t *avl.Tree) {
	_ = s.mutate(OpSetTree, func() error {
		s.tree = avl.New()
		if t != nil {
			s.tree = t.Clone()
		}
		return nil
	})
}

// ClearTree empties the tree.
func (s *Session) ClearTree() {
	_ = s.mutate(OpClearTree, func() error {
		s.tree.Clear()
		return nil
	})
}

// Run generates a trace with the named engine over the current structures
// and loads it into the player. On failure the error is returned and the
// previously loaded trace keeps playing from where it was.
//
// A tree-producing engine replaces the session tree with its result.
func (s *Session) Run(ctx context.Context, name string, params map[string]any) (*trace.Trace, error) {
	s.mu.Lock()
	in := engine.Input{
		Ctx:    ctx,
		Graph:  s.graph,
		Tree:   s.tree,
		Array:  s.array,
		Matrix: s.matrix,
	}
	begin := time.Now()
	out, err := s.registry.Run(name, in, params)
	elapsed := time.Since(begin)
	if err == nil && out.Tree != nil {
		s.tree = out.Tree
	}
	s.mu.Unlock()

	if err != nil {
		s.metrics.ObserveRun(name, err, 0, elapsed)
		s.logFailure(name, err)
		return nil, err
	}
	s.metrics.ObserveRun(name, nil, out.Trace.Len(), elapsed)
	if out.Tree != nil {
		s.metrics.Mutation(OpRunTree)
	}
	if err := s.player.Load(out.Trace); err != nil {
		return nil, err
	}
	s.log.Info("run complete",
		"algorithm", name,
		"trace_id", out.Trace.ID,
		"snapshots", out.Trace.Len(),
		"elements", out.Trace.ElementCount,
		"elapsed", elapsed,
	)

	return out.Trace, nil
}

// logFailure logs user-caused failures at warn and engine defects at
// error, which always indicate a bug.
func (s *Session) logFailure(name string, err error) {
	switch {
	case errors.Is(err, fault.ErrEngineDefect):
		s.log.Error("engine defect", "algorithm", name, "error", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.log.Info("run canceled", "algorithm", name, "error", err)
	default:
		s.log.Warn("run rejected", "algorithm", name, "outcome", metrics.Outcome(err), "error", err)
	}
}
