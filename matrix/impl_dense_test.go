// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lazymat/matrix"
)

func TestNewDense_Errors(t *testing.T) {
	_, err := matrix.NewDense[float64](0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense[float64](2, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom(2, 2, []int{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)

	_, err = matrix.NewDenseFromRows([][]int{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
	_, err = matrix.NewDenseFromRows([][]int{})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_AtSet(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	// Row-major layout
	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	require.NoError(t, m.Set(0, 2, 30))
	v, _ = m.At(0, 2)
	assert.Equal(t, 30, v)

	for _, ij := range [][2]int{{-1, 0}, {2, 0}, {0, 3}, {0, -1}} {
		_, err = m.At(ij[0], ij[1])
		require.ErrorIs(t, err, matrix.ErrOutOfRange)
		require.ErrorIs(t, m.Set(ij[0], ij[1], 0), matrix.ErrIndexOutOfBounds)
	}
}

func TestNewDenseFrom_CopiesInput(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	m, err := matrix.NewDenseFrom(2, 2, data)
	require.NoError(t, err)
	data[0] = 99
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
}

func TestDense_Materialize(t *testing.T) {
	m := fill(t, 4, 5, 10, 1) // cell = 10i + j

	sub, err := m.Materialize(1, 2, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "[12, 13, 14]\n[22, 23, 24]\n", sub.String())

	// Snapshot: later writes do not leak in
	require.NoError(t, m.Set(1, 2, -1))
	v, _ := sub.At(0, 0)
	assert.Equal(t, int64(12), v)

	// Zero-area regions at an in-range origin are legal
	empty, err := m.Materialize(4, 5, 0, 0)
	require.NoError(t, err)
	r, c := empty.Shape()
	assert.Equal(t, [2]int{0, 0}, [2]int{r, c})

	_, err = m.Materialize(3, 0, 2, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Materialize(-1, 0, 1, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_CopyBreaksAliasing(t *testing.T) {
	m := fill(t, 2, 2, 2, 1)
	cp := m.Copy()
	cl := m.Clone()

	require.NoError(t, m.Set(0, 0, 100))
	v, _ := cp.At(0, 0)
	assert.Equal(t, int64(0), v)
	v, _ = cl.At(0, 0)
	assert.Equal(t, int64(0), v)
}

func TestDense_AliasedViewsSeeWrites(t *testing.T) {
	m := fill(t, 3, 3, 3, 1)
	tr := matrix.Transpose[int64](m)
	sub, err := matrix.Submatrix[int64](m, 1, 1, 2, 2)
	require.NoError(t, err)

	require.NoError(t, tr.Set(2, 1, 77)) // writes m(1,2)
	v, _ := m.At(1, 2)
	assert.Equal(t, int64(77), v)
	v, _ = sub.At(0, 1)
	assert.Equal(t, int64(77), v)
}

func TestDense_DoApplyString(t *testing.T) {
	m := mustRows(t, [][]int{{1, 2}, {3, 4}})

	sum := 0
	m.Do(func(_, _ int, v int) bool { sum += v; return true })
	assert.Equal(t, 10, sum)

	visited := 0
	m.Do(func(_, _ int, _ int) bool { visited++; return visited < 3 })
	assert.Equal(t, 3, visited, "early stop")

	m.Apply(func(i, j, v int) int { return v * 10 })
	assert.Equal(t, "[10, 20]\n[30, 40]\n", m.String())
	assert.Equal(t, "Dense 2x2", m.Describe())
	assert.Nil(t, m.Inputs())
}

func TestNewIdentityAndZeros(t *testing.T) {
	id, err := matrix.NewIdentity[float32](3)
	require.NoError(t, err)
	assert.Equal(t, "[1, 0, 0]\n[0, 1, 0]\n[0, 0, 1]\n", id.String())

	z, err := matrix.NewZeros[uint8](1, 2)
	require.NoError(t, err)
	assert.Equal(t, "[0, 0]\n", z.String())

	_, err = matrix.NewIdentity[int](0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
