// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/stepwise/core"
	"github.com/katalvlaran/stepwise/fault"
)

// ErrGraphNil is returned when GenerateRandom receives a nil graph.
var ErrGraphNil = fault.Define(fault.ErrStructuralPrecondition, "builder: graph is nil")

// Stats summarizes one GenerateRandom call.
type Stats struct {
	Nodes     int  // nodes created
	Target    int  // edges wanted, round(n·factor)
	Edges     int  // edges created
	Rejected  int  // candidates skipped as self-loop or duplicate
	Exhausted bool // attempt budget ran out before Target was reached
}

// GenerateRandom replaces the contents of g with a random graph. The
// directed/weighted flags of g are preserved.
//
// Complexity: O(n + k) where k = attemptFactor·target candidate draws.
func GenerateRandom(g *core.Graph, opts ...Option) (Stats, error) {
	if g == nil {
		return Stats{}, ErrGraphNil
	}
	cfg := newConfig(opts...)
	rng := cfg.rng

	// 1) Fresh structure, flags kept
	g.Clear()

	// 2) Nodes with distinct values
	n := MinNodes + rng.Intn(MaxNodes-MinNodes+1)
	perm := rng.Perm(MaxValue - MinValue + 1)
	values := make([]int, n)
	for i := 0; i < n; i++ {
		values[i] = MinValue + perm[i]
		if _, err := g.AddNode(values[i]); err != nil {
			return Stats{}, fmt.Errorf("GenerateRandom: %w", err)
		}
	}

	// 3) Candidate edges; skip anything core rejects as a structural violation
	st := Stats{Nodes: n, Target: int(math.Round(float64(n) * cfg.edgeFactor))}
	weighted := g.Weighted()
	for attempts := 0; st.Edges < st.Target; attempts++ {
		if attempts >= st.Target*attemptFactor {
			st.Exhausted = true
			break
		}
		u, v := values[rng.Intn(n)], values[rng.Intn(n)]
		var eopts []core.EdgeOption
		if weighted {
			eopts = append(eopts, core.WithWeight(float64(MinWeight+rng.Intn(MaxWeight-MinWeight+1))))
		}
		_, err := g.AddEdge(u, v, eopts...)
		switch {
		case err == nil:
			st.Edges++
		case errors.Is(err, core.ErrSelfLoop), errors.Is(err, core.ErrDuplicateEdge):
			st.Rejected++
		default:
			return st, fmt.Errorf("GenerateRandom: %w", err)
		}
	}

	return st, nil
}
