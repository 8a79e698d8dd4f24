// SPDX-License-Identifier: MIT
// Package: gnnlimit/probe
//
// cache.go - ordered size → graphs index.
//
// Contract:
//   - Entries are keyed by graph size; Put replaces an existing entry.
//   - Take(n, k) returns the first k graphs stored for n, never fewer.
//   - Iteration (Sizes, Scan) is ascending by size.

package probe

import (
	"fmt"

	"github.com/tidwall/btree"

	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/dataset"
)

type cacheEntry struct {
	n      int
	graphs []*core.Graph
}

func cacheEntryLess(a, b cacheEntry) bool { return a.n < b.n }

// Cache stores pre-sampled graphs per size. The zero value is not usable;
// call NewCache. Not safe for concurrent use.
type Cache struct {
	tree *btree.BTreeG[cacheEntry]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{tree: btree.NewBTreeGOptions(cacheEntryLess, btree.Options{NoLocks: true})}
}

// Put stores graphs under size n. Every graph must have exactly n vertices.
func (c *Cache) Put(n int, graphs []*core.Graph) error {
	for i, g := range graphs {
		if g == nil || g.N() != n {
			return fmt.Errorf("Cache.Put: n=%d: graph %d has wrong size: %w", n, i, core.ErrInvalidArgument)
		}
	}
	c.tree.Set(cacheEntry{n: n, graphs: append([]*core.Graph(nil), graphs...)})
	return nil
}

// Get returns the graphs stored for n.
func (c *Cache) Get(n int) ([]*core.Graph, bool) {
	e, ok := c.tree.Get(cacheEntry{n: n})
	return e.graphs, ok
}

// Take returns the first k graphs for n, or ErrMissingCacheEntry.
func (c *Cache) Take(n, k int) ([]*core.Graph, error) {
	graphs, ok := c.Get(n)
	if !ok {
		return nil, fmt.Errorf("n=%d: %w", n, ErrMissingCacheEntry)
	}
	if len(graphs) < k {
		return nil, fmt.Errorf("n=%d: have %d graphs, need %d: %w", n, len(graphs), k, ErrMissingCacheEntry)
	}
	return graphs[:k:k], nil
}

// Len returns the number of cached sizes.
func (c *Cache) Len() int { return c.tree.Len() }

// Sizes returns the cached sizes in ascending order.
func (c *Cache) Sizes() []int {
	out := make([]int, 0, c.tree.Len())
	c.tree.Scan(func(e cacheEntry) bool {
		out = append(out, e.n)
		return true
	})
	return out
}

// Scan calls fn for each size in ascending order until fn returns false.
func (c *Cache) Scan(fn func(n int, graphs []*core.Graph) bool) {
	c.tree.Scan(func(e cacheEntry) bool { return fn(e.n, e.graphs) })
}

// Precompute samples count graphs per size (sizes deduplicated) with the
// given policy and feature dimension and stores them in a new Cache.
// Sizes are sampled in ascending order so the cache content depends only on
// the RNG and the set of sizes.
func Precompute(sizes []int, count, featureDim int, pol dataset.Policy, opts ...builder.BuilderOption) (*Cache, error) {
	spec := SweepSpec{Sizes: sizes, SamplesPerSize: count, FeatureDim: featureDim, Prob: pol}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("Precompute: %w", err)
	}

	uniq := btree.NewBTreeGOptions(func(a, b int) bool { return a < b }, btree.Options{NoLocks: true})
	for _, n := range sizes {
		uniq.Set(n)
	}

	gen := builder.NewGenerator(opts...)
	cache := NewCache()
	var err error
	uniq.Scan(func(n int) bool {
		graphs := make([]*core.Graph, count)
		for i := range graphs {
			if graphs[i], err = gen.Generate(n, pol.Prob(n), featureDim); err != nil {
				err = fmt.Errorf("Precompute: n=%d: %w", n, err)
				return false
			}
		}
		err = cache.Put(n, graphs)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	return cache, nil
}
