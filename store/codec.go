// SPDX-License-Identifier: MIT
// Package: gnnlimit/store
//
// codec.go - versioned msgpack envelope and wire records.

package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlimit/core"
)

// Artifact kinds.
const (
	KindGraph  = "graph"
	KindGraphs = "graphs"
	KindSweep  = "sweep"
	KindModel  = "model"
	KindCache  = "cache"
)

// envelopeVersion is bumped whenever a payload layout changes.
const envelopeVersion = 1

type envelope struct {
	Kind    string             `msgpack:"kind"`
	Version int                `msgpack:"version"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

func encode(kind string, v any) ([]byte, error) {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	return msgpack.Marshal(envelope{Kind: kind, Version: envelopeVersion, Payload: payload})
}

func decode(data []byte, kind string, v any) error {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	if env.Kind != kind || env.Version != envelopeVersion {
		return fmt.Errorf("stored %s/v%d, want %s/v%d: %w", env.Kind, env.Version, kind, envelopeVersion, ErrSchemaMismatch)
	}
	if err := msgpack.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	return nil
}

// graphRecord is the wire form of a core.Graph. Edges are flattened as
// u0,v0,u1,v1,... and features row-major.
type graphRecord struct {
	N          int       `msgpack:"n"`
	Prob       float64   `msgpack:"p"`
	Edges      []int     `msgpack:"edges"`
	FeatureDim int       `msgpack:"d"`
	Features   []float64 `msgpack:"x"`
	Labeled    bool      `msgpack:"labeled"`
	Label      int       `msgpack:"label"`
}

func toRecord(g *core.Graph) graphRecord {
	rec := graphRecord{
		N:          g.N(),
		Prob:       g.Prob(),
		Edges:      make([]int, 0, 2*g.EdgeCount()),
		FeatureDim: g.FeatureDim(),
		Features:   make([]float64, 0, g.N()*g.FeatureDim()),
	}
	for _, e := range g.Edges() {
		rec.Edges = append(rec.Edges, e.U, e.V)
	}
	for i := 0; i < g.N(); i++ {
		rec.Features = append(rec.Features, g.FeatureRow(i)...)
	}
	rec.Label, rec.Labeled = g.Label()
	return rec
}

func (rec graphRecord) graph() (*core.Graph, error) {
	if len(rec.Edges)%2 != 0 || rec.FeatureDim < 1 || len(rec.Features) != rec.N*rec.FeatureDim {
		return nil, fmt.Errorf("graph record n=%d d=%d |x|=%d |edges|=%d: %w",
			rec.N, rec.FeatureDim, len(rec.Features), len(rec.Edges), ErrSchemaMismatch)
	}
	edges := make([]core.Edge, len(rec.Edges)/2)
	for i := range edges {
		edges[i] = core.Edge{U: rec.Edges[2*i], V: rec.Edges[2*i+1]}
	}

	g, err := core.NewGraph(rec.N, rec.Prob, edges, mat.NewDense(rec.N, rec.FeatureDim, rec.Features))
	if err != nil {
		return nil, err
	}
	if rec.Labeled {
		if err = g.SetLabel(rec.Label); err != nil {
			return nil, err
		}
	}
	return g, nil
}

type cacheRecord struct {
	N      int           `msgpack:"n"`
	Graphs []graphRecord `msgpack:"graphs"`
}
