// SPDX-License-Identifier: MIT
// Package: gnnlimit/bfs
//
// bfs.go - breadth-first search and component labeling.

package bfs

import (
	"fmt"

	"github.com/katalvlaran/gnnlimit/core"
)

// Unreached marks vertices BFS did not visit in Result.Depth and
// Result.Parent (the root's parent is Unreached as well).
const Unreached = -1

// ErrStartVertex is returned when the start vertex is outside [0, n).
var ErrStartVertex = core.NewInvalid("bfs: start vertex out of range")

// Result is the outcome of one BFS.
type Result struct {
	Order  []int // visit sequence
	Depth  []int // hop distance from start, Unreached if not visited
	Parent []int // BFS-tree predecessor, Unreached for root and unvisited
}

// adjacency is a CSR neighbor index: neighbors of v are
// nbrs[offsets[v]:offsets[v+1]], ascending.
type adjacency struct {
	offsets []int
	nbrs    []int
}

func newAdjacency(g *core.Graph) adjacency {
	n := g.N()
	deg := g.Degrees()
	a := adjacency{offsets: make([]int, n+1), nbrs: make([]int, 2*g.EdgeCount())}
	for v := 0; v < n; v++ {
		a.offsets[v+1] = a.offsets[v] + deg[v]
	}
	fill := append([]int(nil), a.offsets[:n]...)
	// Edges are sorted by (U,V); writing U's and V's neighbors in that order
	// keeps every neighbor list ascending.
	for _, e := range g.Edges() {
		a.nbrs[fill[e.V]] = e.U
		fill[e.V]++
	}
	for _, e := range g.Edges() {
		a.nbrs[fill[e.U]] = e.V
		fill[e.U]++
	}
	return a
}

func (a adjacency) neighbors(v int) []int { return a.nbrs[a.offsets[v]:a.offsets[v+1]] }

// queueItem pairs a vertex with its BFS depth and its parent.
type queueItem struct {
	v, depth, parent int
}

// walker holds BFS state. depth doubles as the visited set, so one walker
// can run several searches that together cover the graph once.
type walker struct {
	adj   adjacency
	depth []int
	queue []queueItem
}

func newWalker(g *core.Graph) *walker {
	return &walker{adj: newAdjacency(g), depth: filled(g.N(), Unreached)}
}

// run visits every not-yet-seen vertex reachable from start, in BFS order.
func (w *walker) run(start int, visit func(it queueItem)) {
	w.depth[start] = 0
	w.queue = append(w.queue[:0], queueItem{v: start, parent: Unreached})
	for len(w.queue) > 0 {
		it := w.queue[0]
		w.queue = w.queue[1:]
		visit(it)
		for _, nbr := range w.adj.neighbors(it.v) {
			if w.depth[nbr] == Unreached {
				w.depth[nbr] = it.depth + 1
				w.queue = append(w.queue, queueItem{v: nbr, depth: it.depth + 1, parent: it.v})
			}
		}
	}
}

// BFS runs breadth-first search on g from start.
func BFS(g *core.Graph, start int) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("BFS: nil graph: %w", core.ErrInvalidArgument)
	}
	n := g.N()
	if start < 0 || start >= n {
		return nil, fmt.Errorf("BFS: start=%d, n=%d: %w", start, n, ErrStartVertex)
	}

	res := &Result{Order: make([]int, 0, n), Parent: filled(n, Unreached)}
	w := newWalker(g)
	w.run(start, func(it queueItem) {
		res.Order = append(res.Order, it.v)
		res.Parent[it.v] = it.parent
	})
	res.Depth = w.depth

	return res, nil
}

// Components labels each vertex with its component index and returns the
// labels and the size of every component. Components are numbered in order
// of their smallest vertex.
func Components(g *core.Graph) (labels []int, sizes []int) {
	n := g.N()
	labels = make([]int, n)
	w := newWalker(g)
	for v := 0; v < n; v++ {
		if w.depth[v] != Unreached {
			continue
		}
		id := len(sizes)
		sizes = append(sizes, 0)
		w.run(v, func(it queueItem) {
			labels[it.v] = id
			sizes[id]++
		})
	}
	return labels, sizes
}

// LargestComponent returns the number of vertices in g's largest component.
func LargestComponent(g *core.Graph) int {
	_, sizes := Components(g)
	best := 0
	for _, s := range sizes {
		if s > best {
			best = s
		}
	}
	return best
}

func filled(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}
