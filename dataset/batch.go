// Package dataset: delivery helpers. None of these change which graphs exist,
// only the order and grouping in which a consumer sees them.

package dataset

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/gnnlimit/core"
)

// Batches partitions graphs into consecutive chunks of at most size graphs.
// The last chunk may be shorter. Chunks alias the input slice.
func Batches(graphs []*core.Graph, size int) ([][]*core.Graph, error) {
	if size < 1 {
		return nil, fmt.Errorf("Batches: size=%d: %w", size, ErrBadBatchSize)
	}
	out := make([][]*core.Graph, 0, (len(graphs)+size-1)/size)
	for lo := 0; lo < len(graphs); lo += size {
		hi := lo + size
		if hi > len(graphs) {
			hi = len(graphs)
		}
		out = append(out, graphs[lo:hi:hi])
	}
	return out, nil
}

// Shuffle returns a shuffled copy of graphs (Fisher–Yates on rng).
func Shuffle(graphs []*core.Graph, rng *rand.Rand) []*core.Graph {
	out := make([]*core.Graph, len(graphs))
	copy(out, graphs)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// TrainTestSplit shuffles graphs and holds out round(len·testFraction) of them.
func TrainTestSplit(graphs []*core.Graph, testFraction float64, rng *rand.Rand) (train, test []*core.Graph, err error) {
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("TrainTestSplit: fraction=%g: %w", testFraction, ErrBadFraction)
	}
	shuffled := Shuffle(graphs, rng)
	nTest := int(float64(len(shuffled))*testFraction + 0.5)

	return shuffled[nTest:], shuffled[:nTest], nil
}

// ClassCounts tallies labels; unlabeled graphs are counted under -1.
func ClassCounts(graphs []*core.Graph) map[int]int {
	counts := make(map[int]int)
	for _, g := range graphs {
		lbl, ok := g.Label()
		if !ok {
			lbl = -1
		}
		counts[lbl]++
	}
	return counts
}

// SizeCounts tallies graphs per vertex count.
func SizeCounts(graphs []*core.Graph) map[int]int {
	counts := make(map[int]int)
	for _, g := range graphs {
		counts[g.N()]++
	}
	return counts
}
