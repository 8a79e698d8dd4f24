package probe_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/classifier"
	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/dataset"
	"github.com/katalvlaran/gnnlimit/label"
	"github.com/katalvlaran/gnnlimit/probe"
)

// fixedClassifier returns the same vector for every graph and counts calls.
type fixedClassifier struct {
	out   []float64
	calls int
}

func (f *fixedClassifier) NumClasses() int { return len(f.out) }

func (f *fixedClassifier) Predict(b *classifier.Batch) ([][]float64, error) {
	f.calls++
	res := make([][]float64, b.NumGraphs())
	for i := range res {
		res[i] = append([]float64(nil), f.out...)
	}
	return res, nil
}

// densityClassifier outputs [1-x, x] with x the graph's edge density.
type densityClassifier struct{}

func (densityClassifier) NumClasses() int { return 2 }

func (densityClassifier) Predict(b *classifier.Batch) ([][]float64, error) {
	res := make([][]float64, b.NumGraphs())
	edges := make([]int, b.NumGraphs())
	for _, e := range b.Edges {
		edges[b.GraphIndex[e.U]]++
	}
	for g := range res {
		n := b.Offsets[g+1] - b.Offsets[g]
		x := 0.0
		if n > 1 {
			x = float64(edges[g]) / float64(core.MaxEdges(n))
		}
		res[g] = []float64{1 - x, x}
	}
	return res, nil
}

func baseSpec() probe.SweepSpec {
	return probe.SweepSpec{
		Sizes:          []int{12, 5, 30, 5},
		SamplesPerSize: 6,
		FeatureDim:     3,
		Prob:           dataset.Fixed(0.3),
	}
}

func TestSweep_OrderAndMeans(t *testing.T) {
	t.Parallel()

	clf := &fixedClassifier{out: []float64{0.2, 0.5, 0.3}}
	res, err := probe.Sweep(clf, baseSpec(), probe.WithSeed(3))
	require.NoError(t, err)

	assert.Equal(t, 3, res.NumClasses)
	assert.Equal(t, []int{12, 5, 30, 5}, res.Sizes())
	require.Len(t, res.Means(), 4)
	for _, pt := range res.Points {
		require.Len(t, pt.Samples, 6)
		assert.InDelta(t, 1.0, floats.Sum(pt.Mean), 1e-6)
		assert.InDeltaSlice(t, []float64{0.2, 0.5, 0.3}, pt.Mean, 1e-12)
		assert.InDeltaSlice(t, []float64{0, 0, 0}, pt.Std, 1e-12)
		assert.Equal(t, 0.3, pt.Prob)
		assert.Nil(t, pt.LabelFreq)
	}
	assert.Equal(t, 4*6, clf.calls, "default batch size is one graph per call")
}

func TestSweep_SpreadAndConvergence(t *testing.T) {
	t.Parallel()

	spec := baseSpec()
	spec.Sizes = []int{10, 400}
	spec.SamplesPerSize = 20
	res, err := probe.Sweep(densityClassifier{}, spec, probe.WithSeed(8), probe.WithBatchSize(7))
	require.NoError(t, err)

	small, large := res.Points[0], res.Points[1]
	assert.InDelta(t, 0.3, small.Mean[1], 0.1)
	assert.InDelta(t, 0.3, large.Mean[1], 0.01)
	assert.Greater(t, small.Std[1], large.Std[1], "density concentrates as n grows")
	assert.InDelta(t, small.Std[0], small.Std[1], 1e-12)
	assert.InDelta(t, 1.0, large.GiantFraction, 1e-12, "G(400, 0.3) is connected")
	assert.Greater(t, small.GiantFraction, 0.0)
}

func TestSweep_DoesNotMutateModel(t *testing.T) {
	t.Parallel()

	model, err := classifier.NewMeanPool(3, 2, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	before := model.Params()

	res, err := probe.Sweep(model, baseSpec(), probe.WithSeed(1), probe.WithBatchSize(4))
	require.NoError(t, err)
	for _, pt := range res.Points {
		assert.InDelta(t, 1.0, floats.Sum(pt.Mean), 1e-6)
	}
	assert.Equal(t, before, model.Params())
}

func TestSweep_BatchSizeDoesNotChangeResult(t *testing.T) {
	t.Parallel()

	model, err := classifier.NewMeanPool(3, 2, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	one, err := probe.Sweep(model, baseSpec(), probe.WithSeed(2))
	require.NoError(t, err)
	many, err := probe.Sweep(model, baseSpec(), probe.WithSeed(2), probe.WithBatchSize(5))
	require.NoError(t, err)

	if diff := cmp.Diff(one, many, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("batched sweep differs (-one +many):\n%s", diff)
	}
}

func TestSweep_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := probe.Sweep(densityClassifier{}, baseSpec(), probe.WithSeed(11))
	require.NoError(t, err)
	b, err := probe.Sweep(densityClassifier{}, baseSpec(), probe.WithSeed(11))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSweep_LabelFrequencies(t *testing.T) {
	t.Parallel()

	spec := baseSpec()
	spec.Sizes = []int{4, 5}
	spec.Mode = label.ModeParity
	res, err := probe.Sweep(&fixedClassifier{out: []float64{0.5, 0.5}}, spec)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1}, res.Points[0].LabelFreq)
	assert.Equal(t, []float64{1, 0}, res.Points[1].LabelFreq)
}

func TestSweep_Errors(t *testing.T) {
	t.Parallel()

	clf := &fixedClassifier{out: []float64{0.5, 0.5}}

	_, err := probe.Sweep(nil, baseSpec())
	assert.ErrorIs(t, err, probe.ErrNilModel)

	spec := baseSpec()
	spec.Sizes = nil
	_, err = probe.Sweep(clf, spec)
	assert.ErrorIs(t, err, probe.ErrBadSizes)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	spec = baseSpec()
	spec.Sizes = []int{3, 0}
	_, err = probe.Sweep(clf, spec)
	assert.ErrorIs(t, err, probe.ErrBadSizes)

	spec = baseSpec()
	spec.SamplesPerSize = 0
	_, err = probe.Sweep(clf, spec)
	assert.ErrorIs(t, err, probe.ErrBadSamples)

	spec = baseSpec()
	spec.Prob = dataset.Policy{}
	_, err = probe.Sweep(clf, spec)
	assert.ErrorIs(t, err, dataset.ErrBadPolicy)

	spec = baseSpec()
	spec.Mode = label.ModeAverageDegree
	spec.Split = &label.Split{Q1: 0.3, Q2: 0.7}
	_, err = probe.Sweep(clf, spec)
	assert.ErrorIs(t, err, probe.ErrClassCount)

	_, err = probe.Sweep(&fixedClassifier{out: []float64{0.5, 0.6}}, baseSpec())
	assert.ErrorIs(t, err, probe.ErrBadDistribution)

	_, err = probe.Sweep(&fixedClassifier{out: []float64{-0.5, 1.5}}, baseSpec())
	assert.ErrorIs(t, err, probe.ErrBadDistribution)

	assert.Panics(t, func() { probe.WithBatchSize(0) })
	assert.Panics(t, func() { probe.WithCache(nil) })
}

func TestSweep_Cache(t *testing.T) {
	t.Parallel()

	spec := baseSpec()
	cache, err := probe.Precompute(spec.Sizes, spec.SamplesPerSize, spec.FeatureDim, spec.Prob, builder.WithSeed(5))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 12, 30}, cache.Sizes())

	// Different sweep seeds must not matter when the graphs come from the cache.
	a, err := probe.Sweep(densityClassifier{}, spec, probe.WithCache(cache), probe.WithSeed(1))
	require.NoError(t, err)
	b, err := probe.Sweep(densityClassifier{}, spec, probe.WithCache(cache), probe.WithSeed(2))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	// Duplicate sizes read the same cached graphs.
	assert.Equal(t, a.Points[1].Samples, a.Points[3].Samples)

	missing := baseSpec()
	missing.Sizes = []int{5, 7}
	_, err = probe.Sweep(densityClassifier{}, missing, probe.WithCache(cache))
	assert.ErrorIs(t, err, probe.ErrMissingCacheEntry)

	tooMany := baseSpec()
	tooMany.SamplesPerSize = 7
	_, err = probe.Sweep(densityClassifier{}, tooMany, probe.WithCache(cache))
	assert.ErrorIs(t, err, probe.ErrMissingCacheEntry)
}

func TestCache_PutGetScan(t *testing.T) {
	t.Parallel()

	gen := builder.NewGenerator(builder.WithSeed(1))
	g4, err := gen.Generate(4, 0.5, 1)
	require.NoError(t, err)
	g9, err := gen.Generate(9, 0.5, 1)
	require.NoError(t, err)

	c := probe.NewCache()
	require.NoError(t, c.Put(9, []*core.Graph{g9}))
	require.NoError(t, c.Put(4, []*core.Graph{g4, g4}))
	assert.ErrorIs(t, c.Put(4, []*core.Graph{g9}), core.ErrInvalidArgument)

	assert.Equal(t, 2, c.Len())
	got, ok := c.Get(4)
	require.True(t, ok)
	assert.Len(t, got, 2)
	_, ok = c.Get(5)
	assert.False(t, ok)

	var seen []int
	c.Scan(func(n int, graphs []*core.Graph) bool {
		seen = append(seen, n)
		return false
	})
	assert.Equal(t, []int{4}, seen, "scan stops when fn returns false")

	taken, err := c.Take(4, 1)
	require.NoError(t, err)
	assert.Same(t, g4, taken[0])
}
