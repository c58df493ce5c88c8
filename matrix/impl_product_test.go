// SPDX-License-Identifier: MIT

package matrix_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lazymat/matrix"
	"github.com/katalvlaran/lazymat/memo"
)

// chainABCD returns A 4x9, B 9x7, C 7x8, D 8x2 with linear fills.
func chainABCD(t *testing.T) (a, b, c, d *matrix.Dense[int64]) {
	t.Helper()
	return fill(t, 4, 9, 12, 5), fill(t, 9, 7, 7, 13), fill(t, 7, 8, 3, 8), fill(t, 8, 2, 2, 4)
}

var wantABCD = [][]int64{
	{282992640, 406640640},
	{428586144, 615980064},
	{574179648, 825319488},
	{719773152, 1034658912},
}

func TestMul_Errors(t *testing.T) {
	a, b, c, _ := chainABCD(t)
	_, err := matrix.Mul[int64](a, c)
	require.ErrorIs(t, err, matrix.ErrIncompatibleDimensions)
	_, err = matrix.Mul[int64](nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.Chain([]matrix.View[int64]{a})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.Chain([]matrix.View[int64]{a, b, a})
	require.ErrorIs(t, err, matrix.ErrIncompatibleDimensions)
}

func TestMul_Direct(t *testing.T) {
	e := newEngine(t, matrix.WithWorkers(2))
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{5}, {6}})

	p, err := matrix.Mul[float64](matrix.Transpose[float64](a), b, matrix.WithEngine(e))
	require.NoError(t, err)
	v, err := p.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 34.0, v)

	require.ErrorIs(t, p.Set(0, 0, 1), matrix.ErrUnsupported)

	st := e.Stats()
	assert.Equal(t, int64(1), st.DirectProducts)
	assert.Equal(t, int64(1), st.Optimizations)
	assert.Zero(t, st.ChainReductions)
}

// The same four operands grouped three ways all reduce to one flattened chain.
func TestChain_Associations(t *testing.T) {
	a, b, c, d := chainABCD(t)
	want := mustRows(t, wantABCD)

	build := map[string]func(e *matrix.Engine) (*matrix.Product[int64], error){
		"(ABC)D": func(e *matrix.Engine) (*matrix.Product[int64], error) {
			ab, _ := matrix.Mul[int64](a, b, matrix.WithEngine(e))
			abc, _ := matrix.Mul[int64](ab, c)
			return matrix.Mul[int64](abc, d)
		},
		"A(BCD)": func(e *matrix.Engine) (*matrix.Product[int64], error) {
			bc, _ := matrix.Mul[int64](b, c, matrix.WithEngine(e))
			bcd, _ := matrix.Mul[int64](bc, d)
			return matrix.Mul[int64](a, bcd)
		},
		"Chain": func(e *matrix.Engine) (*matrix.Product[int64], error) {
			return matrix.Chain([]matrix.View[int64]{a, b, c, d}, matrix.WithEngine(e))
		},
	}
	for name, mk := range build {
		t.Run(name, func(t *testing.T) {
			e := newEngine(t, matrix.WithWorkers(3))
			p, err := mk(e)
			require.NoError(t, err)
			require.Equal(t, 4, p.Rows())
			require.Equal(t, 2, p.Cols())

			v, err := p.At(3, 1)
			require.NoError(t, err)
			assert.Equal(t, int64(1034658912), v)
			requireSameView[int64](t, want, p)

			st := e.Stats()
			assert.Equal(t, int64(1), st.ChainReductions)
			assert.Equal(t, int64(3), st.DirectProducts, "three pairwise merges, none tiled")
			assert.Equal(t, int64(4), st.Optimizations, "one chain + three derived nodes")
			assert.Zero(t, st.BlockDecompositions)
			assert.Zero(t, st.Failures)
		})
	}
}

func TestChain_MatchesReference(t *testing.T) {
	a, b, c, d := chainABCD(t)
	p, err := matrix.Chain([]matrix.View[int64]{a, b, c, d}, matrix.WithEngine(newEngine(t)))
	require.NoError(t, err)

	ref := naiveMul[int64](t, naiveMul[int64](t, naiveMul[int64](t, a, b), c), d)
	requireSameView[int64](t, ref, p)

	ab := naiveMul[int64](t, a, b)
	v, _ := ab.At(0, 0)
	assert.Equal(t, int64(7140), v)
	abc := naiveMul[int64](t, ab, c)
	v, _ = abc.At(3, 7)
	assert.Equal(t, int64(16870308), v)
}

// A product that was already started is kept as a single operand: its value
// is reused rather than recomputed.
func TestChain_StartedChildIsOpaque(t *testing.T) {
	e := newEngine(t, matrix.WithWorkers(2))
	a, b, c, d := chainABCD(t)

	bc, err := matrix.Mul[int64](b, c, matrix.WithEngine(e))
	require.NoError(t, err)
	require.NoError(t, bc.Wait(context.Background()))
	require.Equal(t, memo.Done, bc.State())
	before := e.Stats()

	abc, err := matrix.Mul[int64](a, bc)
	require.NoError(t, err)
	p, err := matrix.Mul[int64](abc, d)
	require.NoError(t, err)
	requireSameView[int64](t, mustRows(t, wantABCD), p)

	after := e.Stats()
	assert.Equal(t, int64(1), after.ChainReductions-before.ChainReductions)
	assert.Equal(t, int64(2), after.DirectProducts-before.DirectProducts, "A·(BC) and ·D only")
	assert.Equal(t, memo.Unstarted, abc.State(), "flattened into its parent")
}

func TestProduct_SharedAcrossParents(t *testing.T) {
	e := newEngine(t, matrix.WithWorkers(4))
	a, b, c, d := chainABCD(t)

	ab, err := matrix.Mul[int64](a, b, matrix.WithEngine(e))
	require.NoError(t, err)
	left, err := matrix.Mul[int64](ab, c)
	require.NoError(t, err)
	cd, err := matrix.Mul[int64](c, d)
	require.NoError(t, err)
	right, err := matrix.Mul[int64](ab, cd)
	require.NoError(t, err)

	require.NoError(t, matrix.Warm[int64](context.Background(), left, right, ab))

	requireSameView[int64](t, naiveMul[int64](t, naiveMul[int64](t, a, b), c), left)
	requireSameView[int64](t, mustRows(t, wantABCD), right)
	requireSameView[int64](t, naiveMul[int64](t, a, b), ab)
}

func TestProduct_Clone(t *testing.T) {
	e := newEngine(t)
	a := mustRows(t, [][]int{{1, 2}})
	b := mustRows(t, [][]int{{3}, {4}})

	p, err := matrix.Mul[int](a, b, matrix.WithEngine(e))
	require.NoError(t, err)
	cl := p.Clone()
	require.NoError(t, a.Set(0, 0, 10))

	v, _ := p.At(0, 0)
	assert.Equal(t, 38, v, "unstarted product reads operands at realization")
	v, _ = cl.At(0, 0)
	assert.Equal(t, 11, v, "clone owns copies of the operands")

	// after realization the clone is a plain copy of the value
	done := p.Clone()
	_, isDense := done.(*matrix.Dense[int])
	assert.True(t, isDense)
	requireSameView[int](t, p, done)
}

func TestProduct_InheritsEngine(t *testing.T) {
	e := newEngine(t, matrix.WithWorkers(1))
	a, b, c, _ := chainABCD(t)

	ab, err := matrix.Mul[int64](a, b, matrix.WithEngine(e))
	require.NoError(t, err)
	abc, err := matrix.Mul[int64](ab, c)
	require.NoError(t, err)
	_, err = abc.At(0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), e.Stats().ChainReductions)
}
