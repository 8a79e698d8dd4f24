// SPDX-License-Identifier: MIT
// Package: gnnlimit/core
//
// types.go - Graph, Edge and sentinel errors.
//
// Invariants (enforced by NewGraph):
//   - n ≥ 1, 0 ≤ p ≤ 1.
//   - edges strictly increasing in (U,V) order with 0 ≤ U < V < n.
//   - features is n×d with d ≥ 1.
//   - degreeSum == 2*len(edges).

package core

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidArgument is the umbrella sentinel for every validation failure in
// the module. All other validation sentinels wrap it, so callers may test
// either the specific cause or the class:
//
//	if errors.Is(err, core.ErrInvalidArgument) { /* config error, fix input */ }
var ErrInvalidArgument = errors.New("invalid argument")

// Sentinel errors for graph construction and labeling.
var (
	// ErrTooFewVertices indicates n < 1.
	ErrTooFewVertices = wrapInvalid("core: too few vertices")

	// ErrBadProbability indicates an edge probability outside [0,1] (or NaN).
	ErrBadProbability = wrapInvalid("core: probability out of range")

	// ErrBadEdge indicates an out-of-range endpoint, self-loop, duplicate edge,
	// or an edge list that is not in canonical order.
	ErrBadEdge = wrapInvalid("core: bad edge")

	// ErrBadFeatures indicates a nil feature matrix, a row count different from n,
	// or zero feature columns.
	ErrBadFeatures = wrapInvalid("core: bad feature matrix")

	// ErrBadLabel indicates a negative class index.
	ErrBadLabel = wrapInvalid("core: bad label")

	// ErrAlreadyLabeled indicates SetLabel was called on a labeled graph.
	ErrAlreadyLabeled = errors.New("core: graph already labeled")
)

// validationError keeps a distinct message while unwrapping to ErrInvalidArgument.
type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return ErrInvalidArgument }

func wrapInvalid(msg string) error { return &validationError{msg: msg} }

// NewInvalid returns a new sentinel that unwraps to ErrInvalidArgument.
// Other packages declare their validation sentinels with it so that a single
// errors.Is(err, ErrInvalidArgument) check covers the whole module.
func NewInvalid(msg string) error { return wrapInvalid(msg) }

// Edge is an undirected edge between vertex indices U and V, with U < V.
type Edge struct {
	U int
	V int
}

// Graph is an immutable G(n,p) sample with node features and a one-shot label.
type Graph struct {
	n     int     // vertex count
	prob  float64 // edge probability the sample was drawn with
	edges []Edge  // canonical (U asc, V asc)

	features *mat.Dense // n × d

	degreeSum int // 2 * len(edges)

	label   int
	labeled bool
}
