// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: constructors and canonicalization helpers.
// Policy:
//   - Constructors validate everything up front and never panic.
//   - Inputs are taken by ownership: callers must not mutate edges/features
//     after handing them to NewGraph.

package core

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	methodNewGraph = "NewGraph"
	minVertices    = 1
)

// NewGraph validates and assembles a Graph from its parts.
//
// Implementation:
//   - Stage 1: validate n, p and the feature matrix shape.
//   - Stage 2: single pass over edges checking range, loops and strict
//     canonical ordering (which also rules out duplicates in O(|E|)).
//   - Stage 3: derive DegreeSum.
//
// Inputs:
//   - n: vertex count (≥ 1).
//   - p: edge probability used to sample the graph, in [0,1].
//   - edges: canonical edge list; nil means no edges.
//   - features: n×d matrix, d ≥ 1.
//
// Errors: ErrTooFewVertices, ErrBadProbability, ErrBadEdge, ErrBadFeatures
// (all wrap ErrInvalidArgument).
//
// Complexity: O(|E|) time, O(1) extra space.
func NewGraph(n int, p float64, edges []Edge, features *mat.Dense) (*Graph, error) {
	if n < minVertices {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodNewGraph, n, minVertices, ErrTooFewVertices)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("%s: p=%g not in [0,1]: %w", methodNewGraph, p, ErrBadProbability)
	}
	if features == nil {
		return nil, fmt.Errorf("%s: nil features: %w", methodNewGraph, ErrBadFeatures)
	}
	if r, c := features.Dims(); r != n || c < 1 {
		return nil, fmt.Errorf("%s: features %dx%d, want %dx(d>=1): %w", methodNewGraph, r, c, n, ErrBadFeatures)
	}

	var prev Edge
	for i, e := range edges {
		if e.U < 0 || e.V >= n {
			return nil, fmt.Errorf("%s: edge %d {%d,%d} out of range [0,%d): %w", methodNewGraph, i, e.U, e.V, n, ErrBadEdge)
		}
		if e.U >= e.V {
			// U == V is a loop; U > V is a non-canonical orientation.
			return nil, fmt.Errorf("%s: edge %d {%d,%d} requires U<V: %w", methodNewGraph, i, e.U, e.V, ErrBadEdge)
		}
		if i > 0 && !edgeLess(prev, e) {
			return nil, fmt.Errorf("%s: edge %d {%d,%d} duplicate or out of order: %w", methodNewGraph, i, e.U, e.V, ErrBadEdge)
		}
		prev = e
	}

	return &Graph{
		n:         n,
		prob:      p,
		edges:     edges,
		features:  features,
		degreeSum: 2 * len(edges),
	}, nil
}

// Canonicalize returns a copy of edges with each pair oriented U<V and the
// list sorted by (U,V). Self-loops and duplicates are kept so that NewGraph
// can still reject them.
// Complexity: O(|E| log |E|).
func Canonicalize(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		if e.U > e.V {
			e.U, e.V = e.V, e.U
		}
		out[i] = e
	}
	sort.Slice(out, func(i, j int) bool { return edgeLess(out[i], out[j]) })

	return out
}

// MaxEdges returns n(n-1)/2, the number of unordered vertex pairs.
func MaxEdges(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

func edgeLess(a, b Edge) bool {
	if a.U != b.U {
		return a.U < b.U
	}
	return a.V < b.V
}
