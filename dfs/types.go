// SPDX-License-Identifier: MIT

package dfs

import (
	"context"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/fault"
	"github.com/katalvlaran/stepwise/trace"
)

// Algorithm is the name recorded on every DFS trace.
const Algorithm = "dfs"

// ErrGraphNil is returned when a nil *core.Graph is passed to DFS.
var ErrGraphNil = fault.Define(fault.ErrStructuralPrecondition, "dfs: graph is nil")

// Option configures optional behavior of DFS traversal.
type Option func(*Options)

// Options holds configurable parameters for DFS traversal.
type Options struct {
	// Ctx allows cancellation; checked once per loop iteration.
	Ctx context.Context

	// FullTraversal continues from every unvisited node after the start
	// tree is exhausted.
	FullTraversal bool
}

// DefaultOptions returns the default DFS configuration.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithFullTraversal enables forest mode.
func WithFullTraversal() Option {
	return func(o *Options) { o.FullTraversal = true }
}

// Result holds the outcome of a DFS traversal.
type Result struct {
	// Order lists nodes in pre-order (entry) sequence.
	Order []core.NodeID

	// PostOrder lists nodes in the order they finished.
	PostOrder []core.NodeID

	// Depth maps each visited node to its depth in the DFS tree.
	Depth map[core.NodeID]int

	// Parent maps each non-root node to its DFS tree parent.
	Parent map[core.NodeID]core.NodeID

	// Trace holds the recorded snapshots.
	Trace *trace.Trace
}
