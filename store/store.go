// SPDX-License-Identifier: MIT
// Package: gnnlimit/store
//
// store.go - typed Save/Load over a Backend.

package store

import (
	"fmt"

	"github.com/katalvlaran/gnnlimit/classifier"
	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/probe"
)

// Store saves and loads typed artifacts.
type Store struct {
	b Backend
}

// New wraps a Backend. Panics on nil.
func New(b Backend) *Store {
	if b == nil {
		panic("store: New(nil)")
	}
	return &Store{b: b}
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend { return s.b }

// Keys lists stored keys with the given prefix, ascending.
func (s *Store) Keys(prefix string) ([]string, error) { return s.b.Keys(prefix) }

// Close closes the backend.
func (s *Store) Close() error { return s.b.Close() }

func (s *Store) put(key, kind string, v any) error {
	data, err := encode(kind, v)
	if err != nil {
		return err
	}
	return s.b.Put(key, data)
}

func (s *Store) get(key, kind string, v any) error {
	data, err := s.b.Get(key)
	if err != nil {
		return err
	}
	if err = decode(data, kind, v); err != nil {
		return fmt.Errorf("%q: %w", key, err)
	}
	return nil
}

// SaveGraph stores one graph.
func (s *Store) SaveGraph(key string, g *core.Graph) error {
	if g == nil {
		return fmt.Errorf("SaveGraph: nil graph: %w", core.ErrInvalidArgument)
	}
	return s.put(key, KindGraph, toRecord(g))
}

// LoadGraph reads a graph saved by SaveGraph.
func (s *Store) LoadGraph(key string) (*core.Graph, error) {
	var rec graphRecord
	if err := s.get(key, KindGraph, &rec); err != nil {
		return nil, fmt.Errorf("LoadGraph: %w", err)
	}
	g, err := rec.graph()
	if err != nil {
		return nil, fmt.Errorf("LoadGraph: %q: %w", key, err)
	}
	return g, nil
}

// SaveGraphs stores an ordered list of graphs (a dataset).
func (s *Store) SaveGraphs(key string, graphs []*core.Graph) error {
	recs := make([]graphRecord, len(graphs))
	for i, g := range graphs {
		if g == nil {
			return fmt.Errorf("SaveGraphs: graph %d is nil: %w", i, core.ErrInvalidArgument)
		}
		recs[i] = toRecord(g)
	}
	return s.put(key, KindGraphs, recs)
}

// LoadGraphs reads graphs saved by SaveGraphs, in saved order.
func (s *Store) LoadGraphs(key string) ([]*core.Graph, error) {
	var recs []graphRecord
	if err := s.get(key, KindGraphs, &recs); err != nil {
		return nil, fmt.Errorf("LoadGraphs: %w", err)
	}
	return recordsToGraphs(key, recs)
}

func recordsToGraphs(key string, recs []graphRecord) ([]*core.Graph, error) {
	out := make([]*core.Graph, len(recs))
	for i, rec := range recs {
		g, err := rec.graph()
		if err != nil {
			return nil, fmt.Errorf("%q: graph %d: %w", key, i, err)
		}
		out[i] = g
	}
	return out, nil
}

// SaveSweep stores a sweep result.
func (s *Store) SaveSweep(key string, res *probe.SizeSweepResult) error {
	if res == nil {
		return fmt.Errorf("SaveSweep: nil result: %w", core.ErrInvalidArgument)
	}
	return s.put(key, KindSweep, res)
}

// LoadSweep reads a sweep result.
func (s *Store) LoadSweep(key string) (*probe.SizeSweepResult, error) {
	res := new(probe.SizeSweepResult)
	if err := s.get(key, KindSweep, res); err != nil {
		return nil, fmt.Errorf("LoadSweep: %w", err)
	}
	return res, nil
}

// SaveModel stores MeanPool parameters.
func (s *Store) SaveModel(key string, p classifier.Params) error {
	return s.put(key, KindModel, p)
}

// LoadModel reads parameters saved by SaveModel. Use classifier.FromParams
// to rebuild the model.
func (s *Store) LoadModel(key string) (classifier.Params, error) {
	var p classifier.Params
	if err := s.get(key, KindModel, &p); err != nil {
		return classifier.Params{}, fmt.Errorf("LoadModel: %w", err)
	}
	return p, nil
}

// SaveCache stores every size of a probe cache.
func (s *Store) SaveCache(key string, c *probe.Cache) error {
	if c == nil {
		return fmt.Errorf("SaveCache: nil cache: %w", core.ErrInvalidArgument)
	}
	recs := make([]cacheRecord, 0, c.Len())
	c.Scan(func(n int, graphs []*core.Graph) bool {
		rec := cacheRecord{N: n, Graphs: make([]graphRecord, len(graphs))}
		for i, g := range graphs {
			rec.Graphs[i] = toRecord(g)
		}
		recs = append(recs, rec)
		return true
	})
	return s.put(key, KindCache, recs)
}

// LoadCache reads a cache saved by SaveCache.
func (s *Store) LoadCache(key string) (*probe.Cache, error) {
	var recs []cacheRecord
	if err := s.get(key, KindCache, &recs); err != nil {
		return nil, fmt.Errorf("LoadCache: %w", err)
	}
	c := probe.NewCache()
	for _, rec := range recs {
		graphs, err := recordsToGraphs(key, rec.Graphs)
		if err != nil {
			return nil, fmt.Errorf("LoadCache: %w", err)
		}
		if err = c.Put(rec.N, graphs); err != nil {
			return nil, fmt.Errorf("LoadCache: %w", err)
		}
	}
	return c, nil
}
