// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Sub is a no-copy rectangular window onto a child view.
// Element (i,j) is child (r0+i, c0+j); writes forward to the child.
type Sub[T Number] struct {
	m          View[T]
	r0, c0     int
	rows, cols int
}

var _ View[float64] = (*Sub[float64])(nil)

// Submatrix returns the rows×cols window of v starting at (r0, c0).
// MAIN DESCRIPTION:
//   - O(1) window; nothing is copied.
//
// Errors:
//   - ErrNilMatrix for nil v.
//   - ErrOutOfRange unless 0 <= r0, r0+rows <= v.Rows() and likewise for columns.
//     Zero-extent windows are legal.
func Submatrix[T Number](v View[T], r0, c0, rows, cols int) (*Sub[T], error) {
	if err := ValidateNotNil(v); err != nil {
		return nil, fmt.Errorf("Submatrix: %w", err)
	}
	if err := checkRegion("Submatrix", r0, c0, rows, cols, v.Rows(), v.Cols()); err != nil {
		return nil, err
	}

	return &Sub[T]{m: v, r0: r0, c0: c0, rows: rows, cols: cols}, nil
}

// Rows returns the window height.
func (s *Sub[T]) Rows() int { return s.rows }

// Cols returns the window width.
func (s *Sub[T]) Cols() int { return s.cols }

// At returns child (r0+i, c0+j).
func (s *Sub[T]) At(i, j int) (T, error) {
	if err := checkIndex("Sub.At", i, j, s.rows, s.cols); err != nil {
		var zero T
		return zero, err
	}

	return s.m.At(s.r0+i, s.c0+j)
}

// Set writes child (r0+i, c0+j).
func (s *Sub[T]) Set(i, j int, v T) error {
	if err := checkIndex("Sub.Set", i, j, s.rows, s.cols); err != nil {
		return err
	}

	return s.m.Set(s.r0+i, s.c0+j, v)
}

// Materialize delegates the offset region to the child in one call.
func (s *Sub[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion("Sub.Materialize", r0, c0, rows, cols, s.rows, s.cols); err != nil {
		return nil, err
	}

	return s.m.Materialize(s.r0+r0, s.c0+c0, rows, cols)
}

// Clone deep-clones the child and keeps the window.
func (s *Sub[T]) Clone() View[T] {
	return &Sub[T]{m: s.m.Clone(), r0: s.r0, c0: s.c0, rows: s.rows, cols: s.cols}
}

// Describe implements Describer.
func (s *Sub[T]) Describe() string {
	return fmt.Sprintf("Submatrix %dx%d @(%d,%d)", s.rows, s.cols, s.r0, s.c0)
}

// Inputs implements Describer.
func (s *Sub[T]) Inputs() []Describer { return []Describer{describerOf(s.m)} }
