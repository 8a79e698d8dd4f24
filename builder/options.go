// SPDX-License-Identifier: MIT
// Package: gnnlimit/builder
//
// options.go — functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Generators themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import "math/rand"

// BuilderOption customizes a Generator by mutating a builderConfig before use.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG. The Generator takes the stream over:
// sharing r with other consumers interleaves their draws.
// Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithFeatureFn overrides the per-entry feature sampler. The function must
// consume randomness only from the RNG it receives. Panics on nil.
func WithFeatureFn(fn func(*rand.Rand) float64) BuilderOption {
	if fn == nil {
		panic("builder: WithFeatureFn(nil)")
	}
	return func(c *builderConfig) {
		c.featureFn = fn
	}
}
