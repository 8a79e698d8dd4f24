// Package core: read-only accessors and the one-shot label setter.
//
// Slices and matrices returned here alias the Graph's storage; they are
// documented read-only so that multi-thousand-node graphs are never copied on
// the inference path.

package core

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// N returns the vertex count.
func (g *Graph) N() int { return g.n }

// Prob returns the edge probability the graph was sampled with.
func (g *Graph) Prob() float64 { return g.prob }

// Edges returns the canonical edge list. Callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Features returns the n×d feature matrix. Callers must not modify it.
func (g *Graph) Features() *mat.Dense { return g.features }

// FeatureDim returns d, the number of feature columns.
func (g *Graph) FeatureDim() int {
	_, c := g.features.Dims()
	return c
}

// FeatureRow returns vertex i's feature vector as a view into the matrix.
func (g *Graph) FeatureRow(i int) []float64 { return g.features.RawRowView(i) }

// DegreeSum returns Σ deg(v) = 2|E|.
func (g *Graph) DegreeSum() int { return g.degreeSum }

// AverageDegree returns DegreeSum / n.
func (g *Graph) AverageDegree() float64 { return float64(g.degreeSum) / float64(g.n) }

// Degrees returns a freshly allocated per-vertex degree vector.
// Complexity: O(n + |E|).
func (g *Graph) Degrees() []int {
	deg := make([]int, g.n)
	for _, e := range g.edges {
		deg[e.U]++
		deg[e.V]++
	}
	return deg
}

// Label returns the assigned class and whether one has been assigned.
func (g *Graph) Label() (int, bool) { return g.label, g.labeled }

// SetLabel assigns the class label. It succeeds at most once.
func (g *Graph) SetLabel(label int) error {
	if label < 0 {
		return fmt.Errorf("SetLabel: label=%d: %w", label, ErrBadLabel)
	}
	if g.labeled {
		return fmt.Errorf("SetLabel: has %d, got %d: %w", g.label, label, ErrAlreadyLabeled)
	}
	g.label, g.labeled = label, true

	return nil
}

// Stats is a lightweight summary used for logging and diagnostics.
type Stats struct {
	N             int
	Edges         int
	FeatureDim    int
	Prob          float64
	AverageDegree float64
	Label         int
	Labeled       bool
}

// Stats returns a snapshot of the graph's scalar attributes. O(1).
func (g *Graph) Stats() Stats {
	return Stats{
		N:             g.n,
		Edges:         len(g.edges),
		FeatureDim:    g.FeatureDim(),
		Prob:          g.prob,
		AverageDegree: g.AverageDegree(),
		Label:         g.label,
		Labeled:       g.labeled,
	}
}
