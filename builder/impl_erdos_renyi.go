// SPDX-License-Identifier: MIT
// Package: gnnlimit/builder
//
// impl_erdos_renyi.go - G(n,p) sampler.
//
// Canonical model:
//   - Undirected, simple: unordered pairs {i,j} with i<j, each independently
//     present with probability p.
//   - Pairs are enumerated row by row: (0,1),(0,2),…,(0,n-1),(1,2),…
//   - Instead of one Bernoulli trial per pair, the number of absent pairs
//     before the next edge is drawn from Geometric(p) (Batagelj–Brandes).
//     The resulting edge set has exactly the G(n,p) distribution.
//
// Contract:
//   - n ≥ 1, featureDim ≥ 1, 0 ≤ p ≤ 1 (NaN rejected).
//   - cfg.rng must be non-nil; features always consume randomness.
//   - Edge list is canonical, so core.NewGraph accepts it unchanged.
//
// Complexity:
//   - Time: O(n·featureDim) features + O(|E|) geometric draws.
//   - Space: O(n·featureDim + |E|).
//
// Determinism:
//   - Features are drawn first (row-major), then edges in pair order.

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlimit/core"
)

const (
	methodErdosRenyi = "ErdosRenyi"
	minVertices      = 1
	minFeatureDim    = 1
	probMin          = 0.0
	probMax          = 1.0
)

// sampleErdosRenyi validates parameters, then draws features and edges.
func sampleErdosRenyi(n int, p float64, featureDim int, cfg builderConfig) (*core.Graph, error) {
	// 1) Validate parameters early (fail fast, no RNG consumed on invalid input).
	if n < minVertices {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodErdosRenyi, n, minVertices, ErrTooFewVertices)
	}
	if featureDim < minFeatureDim {
		return nil, fmt.Errorf("%s: featureDim=%d < min=%d: %w", methodErdosRenyi, featureDim, minFeatureDim, ErrBadFeatureDim)
	}
	if math.IsNaN(p) || p < probMin || p > probMax {
		return nil, fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", methodErdosRenyi, p, probMin, probMax, ErrInvalidProbability)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodErdosRenyi, ErrNeedRandSource)
	}

	// 2) Features: n×d, row-major draws.
	data := make([]float64, n*featureDim)
	for i := range data {
		data[i] = cfg.featureFn(cfg.rng)
	}
	x := mat.NewDense(n, featureDim, data)

	// 3) Edges.
	edges := sampleEdges(n, p, cfg)

	// 4) Assemble; core re-checks the canonical-order invariant.
	g, err := core.NewGraph(n, p, edges, x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodErdosRenyi, err)
	}
	return g, nil
}

// sampleEdges returns the canonical edge list of one G(n,p) draw.
func sampleEdges(n int, p float64, cfg builderConfig) []core.Edge {
	total := core.MaxEdges(n)
	if total == 0 || p == probMin {
		return nil
	}

	// p == 1: every pair, no randomness needed.
	if p == probMax {
		edges := make([]core.Edge, 0, total)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				edges = append(edges, core.Edge{U: i, V: j})
			}
		}
		return edges
	}

	// Expected |E| plus slack as the initial capacity.
	expect := float64(total) * p
	edges := make([]core.Edge, 0, int(expect+3*math.Sqrt(expect))+1)

	logQ := math.Log1p(-p) // log(1-p) < 0
	var (
		i = 0 // current row
		j = 0 // last visited column in row i; the next candidate is j+1
	)
	for {
		// Number of absent pairs before the next present one: floor(log(U)/log(1-p)).
		skip := math.Floor(math.Log1p(-cfg.rng.Float64()) / logQ)
		if skip >= float64(total) {
			break // jumps past every remaining pair
		}
		j += int(skip) + 1

		// Carry overflow into the following rows; row i spans columns i+1..n-1.
		for j >= n && i < n-1 {
			j = j - n + i + 2
			i++
		}
		if i >= n-1 {
			break
		}
		edges = append(edges, core.Edge{U: i, V: j})
	}

	return edges
}
