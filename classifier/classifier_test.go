package classifier_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/classifier"
	"github.com/katalvlaran/gnnlimit/core"
	"github.com/katalvlaran/gnnlimit/dataset"
)

// sparseDense returns a labeled training set where dense graphs (p=0.6) are
// class 1 and sparse graphs (p=0.1) class 0.
func sparseDense(t *testing.T, perClass int, seed int64) []*core.Graph {
	t.Helper()
	gen := builder.NewGenerator(builder.WithSeed(seed))
	out := make([]*core.Graph, 0, 2*perClass)
	for i := 0; i < perClass; i++ {
		for cls, p := range []float64{0.1, 0.6} {
			g, err := gen.Generate(20, p, 2)
			require.NoError(t, err)
			require.NoError(t, g.SetLabel(cls))
			out = append(out, g)
		}
	}
	return out
}

func TestNewBatch_Layout(t *testing.T) {
	t.Parallel()

	g1, err := core.NewGraph(2, 1, []core.Edge{{U: 0, V: 1}}, mat.NewDense(2, 1, []float64{1, 2}))
	require.NoError(t, err)
	g2, err := core.NewGraph(3, 1, []core.Edge{{U: 0, V: 2}, {U: 1, V: 2}}, mat.NewDense(3, 1, []float64{3, 4, 5}))
	require.NoError(t, err)
	require.NoError(t, g2.SetLabel(1))

	b, err := classifier.NewBatch([]*core.Graph{g1, g2})
	require.NoError(t, err)

	assert.Equal(t, 2, b.NumGraphs())
	assert.Equal(t, 5, b.NumNodes())
	assert.Equal(t, []int{0, 2, 5}, b.Offsets)
	assert.Equal(t, []int{0, 0, 1, 1, 1}, b.GraphIndex)
	assert.Equal(t, []core.Edge{{U: 0, V: 1}, {U: 2, V: 4}, {U: 3, V: 4}}, b.Edges)
	assert.Equal(t, []int{classifier.Unlabeled, 1}, b.Labels)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, b.X.RawMatrix().Data)
}

func TestNewBatch_Errors(t *testing.T) {
	t.Parallel()

	_, err := classifier.NewBatch(nil)
	assert.ErrorIs(t, err, classifier.ErrEmptyBatch)

	a, err := builder.Generate(3, 0.5, 2, builder.WithSeed(1))
	require.NoError(t, err)
	b, err := builder.Generate(3, 0.5, 3, builder.WithSeed(1))
	require.NoError(t, err)
	_, err = classifier.NewBatch([]*core.Graph{a, b})
	assert.ErrorIs(t, err, classifier.ErrFeatureDimMismatch)
}

func TestMeanPool_PredictIsDistributionAndReadOnly(t *testing.T) {
	t.Parallel()

	model, err := classifier.NewMeanPool(2, 3, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	before := model.Params()

	graphs := sparseDense(t, 4, 9)
	b, err := classifier.NewBatch(graphs)
	require.NoError(t, err)

	probs, err := model.Predict(b)
	require.NoError(t, err)
	require.Len(t, probs, len(graphs))
	for _, p := range probs {
		require.Len(t, p, 3)
		for _, v := range p {
			assert.GreaterOrEqual(t, v, 0.0)
		}
		assert.InDelta(t, 1.0, floats.Sum(p), 1e-12)
	}

	assert.Equal(t, before, model.Params(), "Predict must not change parameters")
}

func TestMeanPool_Validation(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	_, err := classifier.NewMeanPool(0, 2, rng)
	assert.ErrorIs(t, err, classifier.ErrBadHyperparameter)
	_, err = classifier.NewMeanPool(2, 1, rng)
	assert.ErrorIs(t, err, classifier.ErrBadHyperparameter)
	_, err = classifier.NewMeanPool(2, 2, nil)
	assert.ErrorIs(t, err, classifier.ErrBadHyperparameter)

	model, err := classifier.NewMeanPool(3, 2, rng)
	require.NoError(t, err)
	b, err := classifier.NewBatch(sparseDense(t, 1, 1)) // d=2
	require.NoError(t, err)
	_, err = model.Predict(b)
	assert.ErrorIs(t, err, classifier.ErrFeatureDimMismatch)

	model2, err := classifier.NewMeanPool(2, 2, rng)
	require.NoError(t, err)
	_, err = model2.Step(b, 0)
	assert.ErrorIs(t, err, classifier.ErrBadHyperparameter)

	unlabeled, err := builder.Generate(5, 0.5, 2, builder.WithSeed(2))
	require.NoError(t, err)
	ub, err := classifier.NewBatch([]*core.Graph{unlabeled})
	require.NoError(t, err)
	_, err = model2.Step(ub, 0.1)
	assert.ErrorIs(t, err, classifier.ErrUnlabeled)
}

func TestParamsRoundTrip(t *testing.T) {
	t.Parallel()

	model, err := classifier.NewMeanPool(4, 3, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	clone, err := classifier.FromParams(model.Params())
	require.NoError(t, err)
	assert.Equal(t, model.Params(), clone.Params())

	p := model.Params()
	p.B = p.B[:1]
	_, err = classifier.FromParams(p)
	assert.ErrorIs(t, err, classifier.ErrBadParams)
}

// TestTrainer_LearnsDegreeSignal trains on sparse vs dense graphs; the sum
// channel separates them, so accuracy must become high.
func TestTrainer_LearnsDegreeSignal(t *testing.T) {
	t.Parallel()

	train := sparseDense(t, 40, 21)
	test := sparseDense(t, 20, 22)

	model, err := classifier.NewMeanPool(2, 2, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	trainer, err := classifier.NewTrainer(classifier.Hyperparameters{
		LearningRate: 0.05,
		Epochs:       40,
		BatchSize:    8,
	}, classifier.WithSeed(6))
	require.NoError(t, err)

	history, err := trainer.Fit(model, train)
	require.NoError(t, err)
	require.Len(t, history, 40)
	assert.Less(t, history[len(history)-1].Loss, history[0].Loss, "loss decreases")

	acc, err := classifier.Evaluate(model, test, 16)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, acc, 0.9)
}

func TestTrainer_Validation(t *testing.T) {
	t.Parallel()

	bad := []classifier.Hyperparameters{
		{LearningRate: 0, Epochs: 1, BatchSize: 1},
		{LearningRate: 0.1, Epochs: 0, BatchSize: 1},
		{LearningRate: 0.1, Epochs: 1, BatchSize: 0},
	}
	for _, hp := range bad {
		_, err := classifier.NewTrainer(hp)
		assert.ErrorIs(t, err, classifier.ErrBadHyperparameter)
	}

	trainer, err := classifier.NewTrainer(classifier.Hyperparameters{LearningRate: 0.1, Epochs: 1, BatchSize: 2})
	require.NoError(t, err)
	model, err := classifier.NewMeanPool(2, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	_, err = trainer.Fit(model, nil)
	assert.ErrorIs(t, err, classifier.ErrEmptyBatch)

	_, err = classifier.Evaluate(model, sparseDense(t, 2, 1), 0)
	assert.ErrorIs(t, err, dataset.ErrBadBatchSize)
}
