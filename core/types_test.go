package core_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlimit/core"
)

func features(n, d int) *mat.Dense {
	return mat.NewDense(n, d, nil)
}

func TestNewGraph_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		n     int
		p     float64
		edges []core.Edge
		x     *mat.Dense
		want  error
	}{
		{"zero vertices", 0, 0.5, nil, mat.NewDense(1, 1, nil), core.ErrTooFewVertices},
		{"negative p", 3, -0.1, nil, features(3, 2), core.ErrBadProbability},
		{"p above one", 3, 1.1, nil, features(3, 2), core.ErrBadProbability},
		{"NaN p", 3, math.NaN(), nil, features(3, 2), core.ErrBadProbability},
		{"nil features", 3, 0.5, nil, nil, core.ErrBadFeatures},
		{"wrong rows", 3, 0.5, nil, features(2, 2), core.ErrBadFeatures},
		{"self loop", 3, 0.5, []core.Edge{{1, 1}}, features(3, 2), core.ErrBadEdge},
		{"reversed", 3, 0.5, []core.Edge{{2, 1}}, features(3, 2), core.ErrBadEdge},
		{"out of range", 3, 0.5, []core.Edge{{0, 3}}, features(3, 2), core.ErrBadEdge},
		{"duplicate", 3, 0.5, []core.Edge{{0, 1}, {0, 1}}, features(3, 2), core.ErrBadEdge},
		{"unsorted", 3, 0.5, []core.Edge{{1, 2}, {0, 1}}, features(3, 2), core.ErrBadEdge},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g, err := core.NewGraph(tc.n, tc.p, tc.edges, tc.x)
			require.Nil(t, g)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, core.ErrInvalidArgument, "every validation error is an invalid argument")
		})
	}
}

func TestNewGraph_DerivedStatistics(t *testing.T) {
	t.Parallel()

	edges := []core.Edge{{0, 1}, {0, 2}, {1, 2}, {2, 3}}
	g, err := core.NewGraph(4, 0.5, edges, features(4, 3))
	require.NoError(t, err)

	assert.Equal(t, 4, g.N())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, 3, g.FeatureDim())
	assert.Equal(t, 8, g.DegreeSum())
	assert.InDelta(t, 2.0, g.AverageDegree(), 0)
	assert.Equal(t, []int{2, 2, 3, 1}, g.Degrees())

	_, labeled := g.Label()
	assert.False(t, labeled)
}

func TestSetLabel_Once(t *testing.T) {
	t.Parallel()

	g, err := core.NewGraph(2, 1, []core.Edge{{0, 1}}, features(2, 1))
	require.NoError(t, err)

	require.ErrorIs(t, g.SetLabel(-1), core.ErrBadLabel)
	require.NoError(t, g.SetLabel(1))

	err = g.SetLabel(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrAlreadyLabeled))
	assert.False(t, errors.Is(err, core.ErrInvalidArgument))

	label, ok := g.Label()
	assert.True(t, ok)
	assert.Equal(t, 1, label, "first label wins")
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	in := []core.Edge{{3, 1}, {0, 2}, {1, 0}}
	out := core.Canonicalize(in)

	assert.Equal(t, []core.Edge{{0, 1}, {0, 2}, {1, 3}}, out)
	assert.Equal(t, core.Edge{3, 1}, in[0], "input must not be mutated")

	_, err := core.NewGraph(4, 0.5, out, features(4, 1))
	assert.NoError(t, err)
}

func TestMaxEdges(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, core.MaxEdges(0))
	assert.Equal(t, 0, core.MaxEdges(1))
	assert.Equal(t, 1, core.MaxEdges(2))
	assert.Equal(t, 45, core.MaxEdges(10))
}
