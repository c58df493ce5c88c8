// SPDX-License-Identifier: MIT

// Package matrix - diagonal extract and diagonal construct views.
//
//   - Diagonal(M):       square n×n -> column n×1, element (i,0) is M(i,i).
//   - DiagonalMatrix(v): column n×1 -> square n×n, v on the diagonal, zero elsewhere.
//
// Both are no-copy; writes forward to the child where a child cell exists.

package matrix

import "fmt"

// Diag is the n×1 column of a square child's main diagonal.
type Diag[T Number] struct {
	m View[T]
}

var _ View[float64] = (*Diag[float64])(nil)

// Diagonal extracts the main diagonal of a square view.
// Errors: ErrNilMatrix, ErrShapeMismatch when v is not square.
func Diagonal[T Number](v View[T]) (*Diag[T], error) {
	if err := ValidateNotNil(v); err != nil {
		return nil, fmt.Errorf("Diagonal: %w", err)
	}
	if err := ValidateSquare(v); err != nil {
		return nil, fmt.Errorf("Diagonal: %w", err)
	}

	return &Diag[T]{m: v}, nil
}

// Rows returns n.
func (d *Diag[T]) Rows() int { return d.m.Rows() }

// Cols returns 1.
func (d *Diag[T]) Cols() int { return 1 }

// At returns child (i, i).
func (d *Diag[T]) At(i, j int) (T, error) {
	if err := checkIndex("Diagonal.At", i, j, d.Rows(), 1); err != nil {
		var zero T
		return zero, err
	}

	return d.m.At(i, i)
}

// Set writes child (i, i).
func (d *Diag[T]) Set(i, j int, v T) error {
	if err := checkIndex("Diagonal.Set", i, j, d.Rows(), 1); err != nil {
		return err
	}

	return d.m.Set(i, i, v)
}

// Materialize reads the requested diagonal cells one by one.
func (d *Diag[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	return materializeByAt[T]("Diagonal.Materialize", d, r0, c0, rows, cols)
}

// Clone deep-clones the child.
func (d *Diag[T]) Clone() View[T] { return &Diag[T]{m: d.m.Clone()} }

// Describe implements Describer.
func (d *Diag[T]) Describe() string { return fmt.Sprintf("Diagonal %dx1", d.Rows()) }

// Inputs implements Describer.
func (d *Diag[T]) Inputs() []Describer { return []Describer{describerOf(d.m)} }

// DiagMatrix is the n×n square view with a column child on its diagonal.
type DiagMatrix[T Number] struct {
	v View[T]
}

var _ View[float64] = (*DiagMatrix[float64])(nil)

// DiagonalMatrix builds a square view from a column vector.
// Errors: ErrNilMatrix, ErrShapeMismatch when v has more than one column.
func DiagonalMatrix[T Number](v View[T]) (*DiagMatrix[T], error) {
	if err := ValidateNotNil(v); err != nil {
		return nil, fmt.Errorf("DiagonalMatrix: %w", err)
	}
	if err := ValidateColumnVector(v); err != nil {
		return nil, fmt.Errorf("DiagonalMatrix: %w", err)
	}

	return &DiagMatrix[T]{v: v}, nil
}

// Rows returns n.
func (d *DiagMatrix[T]) Rows() int { return d.v.Rows() }

// Cols returns n.
func (d *DiagMatrix[T]) Cols() int { return d.v.Rows() }

// At returns v(i,0) on the diagonal and zero elsewhere.
func (d *DiagMatrix[T]) At(i, j int) (T, error) {
	var zero T
	if err := checkIndex("DiagonalMatrix.At", i, j, d.Rows(), d.Cols()); err != nil {
		return zero, err
	}
	if i != j {
		return zero, nil
	}

	return d.v.At(i, 0)
}

// Set forwards diagonal writes to the vector; off-diagonal cells are not backed
// by any storage and return ErrUnsupported.
func (d *DiagMatrix[T]) Set(i, j int, x T) error {
	if err := checkIndex("DiagonalMatrix.Set", i, j, d.Rows(), d.Cols()); err != nil {
		return err
	}
	if i != j {
		return fmt.Errorf("DiagonalMatrix.Set(%d,%d): off-diagonal: %w", i, j, ErrUnsupported)
	}

	return d.v.Set(i, 0, x)
}

// Materialize zero-fills the region and copies the slice of v that crosses it.
func (d *DiagMatrix[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion("DiagonalMatrix.Materialize", r0, c0, rows, cols, d.Rows(), d.Cols()); err != nil {
		return nil, err
	}
	out := newDense[T](rows, cols)
	lo, hi := max(r0, c0), min(r0+rows, c0+cols)
	if lo >= hi {
		return out, nil
	}
	vals, err := d.v.Materialize(lo, 0, hi-lo, 1)
	if err != nil {
		return nil, err
	}
	for k := lo; k < hi; k++ {
		out.data[(k-r0)*cols+(k-c0)] = vals.data[k-lo]
	}

	return out, nil
}

// Clone deep-clones the vector.
func (d *DiagMatrix[T]) Clone() View[T] { return &DiagMatrix[T]{v: d.v.Clone()} }

// Describe implements Describer.
func (d *DiagMatrix[T]) Describe() string {
	return fmt.Sprintf("DiagonalMatrix %dx%d", d.Rows(), d.Cols())
}

// Inputs implements Describer.
func (d *DiagMatrix[T]) Inputs() []Describer { return []Describer{describerOf(d.v)} }
