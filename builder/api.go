// SPDX-License-Identifier: MIT
// Package: gnnlimit/builder
//
// api.go - public entry points.
//
// Design contract:
//   - Generator resolves options once; every Generate call draws from the same
//     RNG stream (dataset-wide determinism from one seed).
//   - Package-level Generate/GenerateInverse are one-shot conveniences that
//     resolve a fresh Generator per call.
//   - Never panic; return sentinel errors wrapping core.ErrInvalidArgument.

package builder

import (
	"fmt"

	"github.com/katalvlaran/gnnlimit/core"
)

const (
	methodGenerate        = "Generate"
	methodGenerateInverse = "GenerateInverse"
)

// Generator samples G(n,p) graphs from a resolved builderConfig.
// A Generator is not safe for concurrent use (it owns a *rand.Rand).
type Generator struct {
	cfg builderConfig
}

// NewGenerator resolves opts into a reusable Generator.
// Complexity: O(len(opts)).
func NewGenerator(opts ...BuilderOption) *Generator {
	return &Generator{cfg: newBuilderConfig(opts...)}
}

// Generate samples an undirected G(n,p) graph on n vertices with featureDim
// uniform features per vertex.
//
// Errors: ErrTooFewVertices, ErrBadFeatureDim, ErrInvalidProbability,
// ErrNeedRandSource (all wrap core.ErrInvalidArgument).
//
// Complexity: O(n·featureDim + |E|) time and space.
func (gen *Generator) Generate(n int, p float64, featureDim int) (*core.Graph, error) {
	g, err := sampleErdosRenyi(n, p, featureDim, gen.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodGenerate, err)
	}
	return g, nil
}

// GenerateInverse samples G(n, 1/n): the expected average degree (n-1)/n
// stays close to 1 for every n, which keeps the degree statistic on the same
// scale across a size sweep.
func (gen *Generator) GenerateInverse(n int, featureDim int) (*core.Graph, error) {
	if n < minVertices {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodGenerateInverse, n, minVertices, ErrTooFewVertices)
	}
	g, err := sampleErdosRenyi(n, InverseProb(n), featureDim, gen.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodGenerateInverse, err)
	}
	return g, nil
}

// Generate is the one-shot form of (*Generator).Generate.
// Use a shared Generator when sampling more than one graph from one seed.
func Generate(n int, p float64, featureDim int, opts ...BuilderOption) (*core.Graph, error) {
	return NewGenerator(opts...).Generate(n, p, featureDim)
}

// GenerateInverse is the one-shot form of (*Generator).GenerateInverse.
func GenerateInverse(n int, featureDim int, opts ...BuilderOption) (*core.Graph, error) {
	return NewGenerator(opts...).GenerateInverse(n, featureDim)
}

// InverseProb returns 1/n, the edge probability of the inverse-size policy.
// n must be positive.
func InverseProb(n int) float64 { return 1.0 / float64(n) }
