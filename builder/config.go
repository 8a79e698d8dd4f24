// SPDX-License-Identifier: MIT
// Package: gnnlimit/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults (no surprises):
//   • rng       = nil                (no randomness unless seeded)
//   • featureFn = (*rand.Rand).Float64 (U[0,1))

package builder

import "math/rand"

// builderConfig aggregates all knobs used by the generator.
// It is held by VALUE inside Generator (immutable after NewGenerator).
type builderConfig struct {
	// RNG for edges and features; nil means "no randomness".
	rng *rand.Rand
	// Per-entry feature sampler.
	featureFn func(*rand.Rand) float64
}

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		rng:       nil,
		featureFn: uniformFeature,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// uniformFeature draws one feature entry from U[0,1).
func uniformFeature(r *rand.Rand) float64 { return r.Float64() }
