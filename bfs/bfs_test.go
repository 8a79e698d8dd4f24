package bfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gnnlimit/bfs"
	"github.com/katalvlaran/gnnlimit/builder"
	"github.com/katalvlaran/gnnlimit/core"
)

func graphOf(t *testing.T, n int, edges ...core.Edge) *core.Graph {
	t.Helper()
	g, err := core.NewGraph(n, 0.5, core.Canonicalize(edges), mat.NewDense(n, 1, nil))
	require.NoError(t, err)
	return g
}

func TestBFS_DepthsAndParents(t *testing.T) {
	t.Parallel()

	// 0-1, 0-2, 1-3, 2-3, 3-4; vertex 5 isolated.
	g := graphOf(t, 6,
		core.Edge{U: 0, V: 1}, core.Edge{U: 0, V: 2}, core.Edge{U: 1, V: 3},
		core.Edge{U: 2, V: 3}, core.Edge{U: 3, V: 4})

	res, err := bfs.BFS(g, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Order)
	assert.Equal(t, []int{0, 1, 1, 2, 3, bfs.Unreached}, res.Depth)
	assert.Equal(t, []int{bfs.Unreached, 0, 0, 1, 3, bfs.Unreached}, res.Parent)

	res, err = bfs.BFS(g, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 1, 2, 0}, res.Order, "neighbors in ascending order")
}

func TestBFS_Errors(t *testing.T) {
	t.Parallel()

	_, err := bfs.BFS(nil, 0)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	g := graphOf(t, 3)
	_, err = bfs.BFS(g, 3)
	assert.ErrorIs(t, err, bfs.ErrStartVertex)
	_, err = bfs.BFS(g, -1)
	assert.ErrorIs(t, err, bfs.ErrStartVertex)
}

func TestComponents(t *testing.T) {
	t.Parallel()

	g := graphOf(t, 7,
		core.Edge{U: 0, V: 4}, core.Edge{U: 4, V: 6},
		core.Edge{U: 1, V: 2})

	labels, sizes := bfs.Components(g)
	assert.Equal(t, []int{0, 1, 1, 2, 0, 3, 0}, labels)
	assert.Equal(t, []int{3, 2, 1, 1}, sizes)
	assert.Equal(t, 3, bfs.LargestComponent(g))
}

func TestLargestComponent_Extremes(t *testing.T) {
	t.Parallel()

	empty, err := builder.Generate(40, 0, 1, builder.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 1, bfs.LargestComponent(empty))

	full, err := builder.Generate(40, 1, 1, builder.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 40, bfs.LargestComponent(full))
}

// TestLargestComponent_GiantRegime checks the G(n,p) phase transition:
// np = 3 has a giant component, np = 0.3 does not.
func TestLargestComponent_GiantRegime(t *testing.T) {
	t.Parallel()

	const n = 2000
	gen := builder.NewGenerator(builder.WithSeed(9))

	super, err := gen.Generate(n, 3.0/n, 1)
	require.NoError(t, err)
	assert.Greater(t, bfs.LargestComponent(super), n/2)

	sub, err := gen.Generate(n, 0.3/n, 1)
	require.NoError(t, err)
	assert.Less(t, bfs.LargestComponent(sub), 50)
}
