// Package matrix is a lazily evaluated matrix algebra over any Go numeric type.
//
// The matrix package provides:
//
//   - Dense, the only node that owns memory: a row-major buffer shared by
//     reference, so every view built on it observes writes made through any alias.
//   - No-copy views: Transpose, Diagonal, DiagonalMatrix, Submatrix, Resize
//     (zero padding), Concat (block grids) and Cast (element type conversion).
//   - Lazy algebra: Add and Mul build nodes that compute nothing until read.
//     The first read (or Optimize/Warm) runs the computation exactly once on the
//     node's Engine; every later read is served from the cached result.
//   - A chain optimizer: nested products are flattened and reduced greedily
//     (largest shared dimension first), and large pairwise products are split
//     into zero-padded tiles multiplied in parallel on the worker pool.
//
// Errors are package sentinels (ErrOutOfRange, ErrShapeMismatch, ...) matched
// with errors.Is. A failure during background optimization is cached and
// returned to every reader of the failed node.
//
// Quick example:
//
//	a, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
//	b, _ := matrix.NewDenseFromRows([][]float64{{5}, {6}})
//	p, _ := matrix.Mul[float64](matrix.Transpose[float64](a), b)
//	v, _ := p.At(1, 0) // 2*5 + 4*6 = 34
//
// See example_test.go for more.
package matrix
