// SPDX-License-Identifier: MIT
//
// Package builder populates a core.Graph with a random, reproducible
// topology for quick experiments.
//
// GenerateRandom clears the target graph, then:
//
//   - draws a node count n uniformly in [MinNodes, MaxNodes] (6..9),
//   - assigns n distinct values from [MinValue, MaxValue],
//   - samples ≈1.5·n candidate edges from random node pairs, skipping any
//     candidate that core would reject (self-loop, duplicate), so the final
//     edge count can fall short of the target on very dense draws,
//   - draws integer weights in [MinWeight, MaxWeight] when the graph is weighted.
//
// Node positions come from core's circular layout.
//
// Determinism: every draw goes through the configured *rand.Rand. Use
// WithSeed in tests and examples to lock outcomes.
package builder
