// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Deterministic fixtures (linear fills, seeded random fills).
//   • A reference product computed through At only.
//   • Misbehaving views for error-propagation tests.

package matrix_test

import (
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lazymat/matrix"
)

// hide wraps any View to hide its concrete type (and its Describer methods),
// the way a View implemented outside the package would look.
type hide[T matrix.Number] struct{ matrix.View[T] }

// fill builds rows×cols with cell(i,j) = i*rowMul + j*colMul.
func fill(t testing.TB, rows, cols int, rowMul, colMul int64) *matrix.Dense[int64] {
	t.Helper()
	d, err := matrix.NewDense[int64](rows, cols)
	require.NoError(t, err)
	d.Apply(func(i, j int, _ int64) int64 { return int64(i)*rowMul + int64(j)*colMul })

	return d
}

// randDense builds rows×cols with small seeded integers in [-5, 5].
func randDense(t testing.TB, rng *rand.Rand, rows, cols int) *matrix.Dense[int64] {
	t.Helper()
	d, err := matrix.NewDense[int64](rows, cols)
	require.NoError(t, err)
	d.Apply(func(int, int, int64) int64 { return int64(rng.Intn(11) - 5) })

	return d
}

// mustRows builds a Dense from literal rows or fails the test.
func mustRows[T matrix.Number](t testing.TB, rows [][]T) *matrix.Dense[T] {
	t.Helper()
	d, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return d
}

// naiveMul is the reference triple loop over At.
func naiveMul[T matrix.Number](t testing.TB, a, b matrix.View[T]) *matrix.Dense[T] {
	t.Helper()
	require.Equal(t, a.Cols(), b.Rows())
	out, err := matrix.NewDense[T](a.Rows(), b.Cols())
	require.NoError(t, err)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < b.Cols(); j++ {
			var acc T
			for k := 0; k < a.Cols(); k++ {
				x, err := a.At(i, k)
				require.NoError(t, err)
				y, err := b.At(k, j)
				require.NoError(t, err)
				acc += x * y
			}
			require.NoError(t, out.Set(i, j, acc))
		}
	}

	return out
}

// requireSameView asserts equal shape and equal cells, reading got through At.
func requireSameView[T matrix.Number](t testing.TB, want, got matrix.View[T]) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			w, err := want.At(i, j)
			require.NoError(t, err)
			g, err := got.At(i, j)
			require.NoError(t, err)
			require.Equalf(t, w, g, "cell (%d,%d)", i, j)
		}
	}
}

// newEngine returns a private engine closed at test end.
func newEngine(t testing.TB, opts ...matrix.EngineOption) *matrix.Engine {
	t.Helper()
	e := matrix.NewEngine(opts...)
	t.Cleanup(e.Close)

	return e
}

var errBroken = errors.New("broken storage")

// failing is a rows×cols view whose reads all fail with errBroken.
type failing struct{ rows, cols int }

func (f failing) Rows() int                       { return f.rows }
func (f failing) Cols() int                       { return f.cols }
func (f failing) At(int, int) (int64, error)      { return 0, errBroken }
func (f failing) Set(int, int, int64) error       { return errBroken }
func (f failing) Clone() matrix.View[int64]       { return f }
func (f failing) Materialize(int, int, int, int) (*matrix.Dense[int64], error) {
	return nil, errBroken
}

// panicking is a view whose Materialize panics.
type panicking struct{ failing }

func (p panicking) Materialize(int, int, int, int) (*matrix.Dense[int64], error) {
	panic("corrupted buffer")
}

// shifty reports a different column count once armed, to corrupt a chain
// after its products were validated.
type shifty struct {
	*matrix.Dense[int64]
	armed *atomic.Bool
}

func (s shifty) Cols() int {
	if s.armed.Load() {
		return s.Dense.Cols() + 1
	}

	return s.Dense.Cols()
}
