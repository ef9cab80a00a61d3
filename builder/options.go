// SPDX-License-Identifier: MIT
//
// options.go - functional options for the builder package.
//
// Option constructors validate and panic on meaningless inputs; the
// generator itself never panics.

package builder

import (
	"math/rand"
	"time"
)

// Defaults for random generation.
const (
	MinNodes      = 6
	MaxNodes      = 9
	EdgeFactor    = 1.5
	MinValue      = 1
	MaxValue      = 99
	MinWeight     = 1
	MaxWeight     = 10
	attemptFactor = 10 // candidate draws per wanted edge before giving up
)

// Option customizes GenerateRandom.
type Option func(*config)

// config aggregates all knobs; passed by value to the generator.
type config struct {
	rng        *rand.Rand
	edgeFactor float64
}

// newConfig applies options in order over the defaults. Without WithSeed or
// WithRand the RNG is seeded from the wall clock.
func newConfig(opts ...Option) config {
	cfg := config{edgeFactor: EdgeFactor}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return cfg
}

// WithSeed seeds a fresh RNG for reproducible output.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *config) { c.rng = r }
}

// WithEdgeFactor overrides the edges-per-node ratio. Panics when f <= 0.
func WithEdgeFactor(f float64) Option {
	if f <= 0 {
		panic("builder: WithEdgeFactor must be positive")
	}

	return func(c *config) { c.edgeFactor = f }
}
