// SPDX-License-Identifier: MIT
// Package: gnnlimit/classifier
//
// batch.go - stacking graphs into one inference/training batch.
//
// Layout:
//   - X:          (Σ n_g) × d, graph g occupies rows [Offsets[g], Offsets[g+1]).
//   - Edges:      undirected edges with global node indices.
//   - GraphIndex: node → graph.
//   - Labels:     per-graph label, -1 when unlabeled.

package classifier

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlimit/core"
)

const (
	methodNewBatch = "NewBatch"
	// Unlabeled marks a graph without a label in Batch.Labels.
	Unlabeled = -1
)

// Batch is a set of graphs laid out for a single forward pass.
type Batch struct {
	X          *mat.Dense
	Edges      []core.Edge
	GraphIndex []int
	Offsets    []int
	Labels     []int
}

// NewBatch stacks graphs. All graphs must share one feature dimension.
// Complexity: O(Σ n_g·d + Σ |E_g|).
func NewBatch(graphs []*core.Graph) (*Batch, error) {
	if len(graphs) == 0 {
		return nil, fmt.Errorf("%s: %w", methodNewBatch, ErrEmptyBatch)
	}

	d := -1
	nodes, edges := 0, 0
	for i, g := range graphs {
		if g == nil {
			return nil, fmt.Errorf("%s: graph %d is nil: %w", methodNewBatch, i, core.ErrInvalidArgument)
		}
		if d < 0 {
			d = g.FeatureDim()
		} else if g.FeatureDim() != d {
			return nil, fmt.Errorf("%s: graph %d has d=%d, want %d: %w", methodNewBatch, i, g.FeatureDim(), d, ErrFeatureDimMismatch)
		}
		nodes += g.N()
		edges += g.EdgeCount()
	}

	b := &Batch{
		X:          mat.NewDense(nodes, d, nil),
		Edges:      make([]core.Edge, 0, edges),
		GraphIndex: make([]int, nodes),
		Offsets:    make([]int, len(graphs)+1),
		Labels:     make([]int, len(graphs)),
	}

	off := 0
	for gi, g := range graphs {
		b.Offsets[gi] = off
		for v := 0; v < g.N(); v++ {
			copy(b.X.RawRowView(off+v), g.FeatureRow(v))
			b.GraphIndex[off+v] = gi
		}
		for _, e := range g.Edges() {
			b.Edges = append(b.Edges, core.Edge{U: off + e.U, V: off + e.V})
		}
		if lbl, ok := g.Label(); ok {
			b.Labels[gi] = lbl
		} else {
			b.Labels[gi] = Unlabeled
		}
		off += g.N()
	}
	b.Offsets[len(graphs)] = off

	return b, nil
}

// NumGraphs returns the number of graphs in the batch.
func (b *Batch) NumGraphs() int { return len(b.Offsets) - 1 }

// NumNodes returns the total number of stacked nodes.
func (b *Batch) NumNodes() int { return len(b.GraphIndex) }

// FeatureDim returns d.
func (b *Batch) FeatureDim() int {
	_, c := b.X.Dims()
	return c
}
