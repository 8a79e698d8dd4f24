package store_test

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/classifier"
	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/dataset"
	"github.com/katalvlaran/gnnlimit/label"
	"github.com/katalvlaran/gnnlimit/probe"
	"github.com/katalvlaran/gnnlimit/store"
)

type backendCase struct {
	name string
	open func(t *testing.T) store.Backend
}

func backends() []backendCase {
	return []backendCase{
		{"memory", func(t *testing.T) store.Backend { return store.NewMemory() }},
		{"sqlite", func(t *testing.T) store.Backend {
			b, err := store.OpenSQLite(filepath.Join(t.TempDir(), "artifacts.db"))
			require.NoError(t, err)
			return b
		}},
		{"badger", func(t *testing.T) store.Backend {
			b, err := store.OpenBadger("")
			require.NoError(t, err)
			return b
		}},
	}
}

// requireSameGraph compares every persisted attribute of two graphs.
func requireSameGraph(t *testing.T, want, got *core.Graph) {
	t.Helper()
	require.Equal(t, want.N(), got.N())
	require.Equal(t, want.Prob(), got.Prob())
	require.Equal(t, want.Edges(), got.Edges())
	require.Equal(t, want.Features().RawMatrix().Data, got.Features().RawMatrix().Data)
	wl, wok := want.Label()
	gl, gok := got.Label()
	require.Equal(t, wok, gok)
	require.Equal(t, wl, gl)
}

func sampleGraphs(t *testing.T) []*core.Graph {
	t.Helper()
	graphs, err := dataset.Build(dataset.Spec{
		Sizes:         dataset.Range{Min: 10, Max: 12},
		GraphsPerSize: 2,
		FeatureDim:    3,
		Mode:          label.ModeParity,
		Prob:          dataset.Fixed(0.5),
	}, dataset.WithBuilderOptions(builder.WithSeed(7)))
	require.NoError(t, err)
	return graphs
}

func TestKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exp/sweep/trained", store.Key("exp", "sweep", "trained"))
	assert.Equal(t, "exp", store.Key("exp"))
	assert.Equal(t, "dataset", store.Key("", "dataset"))
}

func TestBackend_Contract(t *testing.T) {
	t.Parallel()

	for _, tc := range backends() {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.open(t)
			defer b.Close()

			_, err := b.Get("missing")
			assert.ErrorIs(t, err, store.ErrNotFound)
			assert.ErrorIs(t, b.Put("", []byte("x")), store.ErrBadKey)

			for _, k := range []string{"b/2", "a/1", "b/1", "c"} {
				require.NoError(t, b.Put(k, []byte(k)))
			}
			require.NoError(t, b.Put("b/1", []byte("new")))

			v, err := b.Get("b/1")
			require.NoError(t, err)
			assert.Equal(t, []byte("new"), v)

			keys, err := b.Keys("b/")
			require.NoError(t, err)
			assert.Equal(t, []string{"b/1", "b/2"}, keys)

			keys, err = b.Keys("")
			require.NoError(t, err)
			assert.Equal(t, []string{"a/1", "b/1", "b/2", "c"}, keys)

			keys, err = b.Keys("zzz")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestStore_RoundTrips(t *testing.T) {
	t.Parallel()

	graphs := sampleGraphs(t)

	model, err := classifier.NewMeanPool(3, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	sweep, err := probe.Sweep(model, probe.SweepSpec{
		Sizes:          []int{8, 4, 16},
		SamplesPerSize: 3,
		FeatureDim:     3,
		Prob:           dataset.Inverse(),
		Mode:           label.ModeParity,
	}, probe.WithSeed(2))
	require.NoError(t, err)
	cache, err := probe.Precompute([]int{6, 9}, 2, 3, dataset.Fixed(0.4), builder.WithSeed(3))
	require.NoError(t, err)

	for _, tc := range backends() {
		t.Run(tc.name, func(t *testing.T) {
			s := store.New(tc.open(t))
			defer s.Close()

			require.NoError(t, s.SaveGraph("exp/graph", graphs[0]))
			g, err := s.LoadGraph("exp/graph")
			require.NoError(t, err)
			requireSameGraph(t, graphs[0], g)

			require.NoError(t, s.SaveGraphs("exp/dataset", graphs))
			loaded, err := s.LoadGraphs("exp/dataset")
			require.NoError(t, err)
			require.Len(t, loaded, len(graphs))
			for i := range graphs {
				requireSameGraph(t, graphs[i], loaded[i])
			}

			require.NoError(t, s.SaveSweep("exp/sweep/untrained", sweep))
			gotSweep, err := s.LoadSweep("exp/sweep/untrained")
			require.NoError(t, err)
			assert.Equal(t, sweep, gotSweep)

			require.NoError(t, s.SaveModel("exp/model", model.Params()))
			params, err := s.LoadModel("exp/model")
			require.NoError(t, err)
			assert.Equal(t, model.Params(), params)

			require.NoError(t, s.SaveCache("exp/cache", cache))
			gotCache, err := s.LoadCache("exp/cache")
			require.NoError(t, err)
			assert.Equal(t, cache.Sizes(), gotCache.Sizes())
			for _, n := range cache.Sizes() {
				want, _ := cache.Get(n)
				got, ok := gotCache.Get(n)
				require.True(t, ok)
				require.Len(t, got, len(want))
				for i := range want {
					requireSameGraph(t, want[i], got[i])
				}
			}

			keys, err := s.Keys("exp/sweep/")
			require.NoError(t, err)
			assert.Equal(t, []string{"exp/sweep/untrained"}, keys)
		})
	}
}

func TestStore_Errors(t *testing.T) {
	t.Parallel()

	s := store.New(store.NewMemory())
	defer s.Close()

	_, err := s.LoadGraph("nope")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.SaveGraphs("exp/dataset", sampleGraphs(t)))
	_, err = s.LoadSweep("exp/dataset")
	assert.ErrorIs(t, err, store.ErrSchemaMismatch)
	_, err = s.LoadGraph("exp/dataset")
	assert.ErrorIs(t, err, store.ErrSchemaMismatch)

	require.NoError(t, s.Backend().Put("garbage", []byte{0xc1}))
	_, err = s.LoadModel("garbage")
	assert.Error(t, err)

	assert.ErrorIs(t, s.SaveGraph("k", nil), core.ErrInvalidArgument)
	assert.ErrorIs(t, s.SaveSweep("k", nil), core.ErrInvalidArgument)
	assert.Panics(t, func() { store.New(nil) })
}

func TestSQLite_Persists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "gnn.db")
	b, err := store.OpenSQLite(path)
	require.NoError(t, err)
	g := sampleGraphs(t)[0]
	require.NoError(t, store.New(b).SaveGraph("exp/graph", g))
	require.NoError(t, b.Close())

	b, err = store.OpenSQLite(path)
	require.NoError(t, err)
	s := store.New(b)
	defer s.Close()
	got, err := s.LoadGraph("exp/graph")
	require.NoError(t, err)
	requireSameGraph(t, g, got)
}

func TestBadger_Persists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b, err := store.OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, b.Put("exp/k", []byte("v")))
	require.NoError(t, b.Close())

	b, err = store.OpenBadger(dir)
	require.NoError(t, err)
	defer b.Close()
	v, err := b.Get("exp/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}
