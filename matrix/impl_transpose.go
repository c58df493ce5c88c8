// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Transposed is the no-copy transpose of a child view: element (i,j) is child (j,i).
// Writes forward to the child.
type Transposed[T Number] struct {
	m View[T]
}

var _ View[float64] = (*Transposed[float64])(nil)

// Transpose wraps v; v is shared, not copied. Complexity: O(1).
func Transpose[T Number](v View[T]) *Transposed[T] {
	return &Transposed[T]{m: v}
}

// Rows returns the child's column count.
func (t *Transposed[T]) Rows() int { return t.m.Cols() }

// Cols returns the child's row count.
func (t *Transposed[T]) Cols() int { return t.m.Rows() }

// At returns child (j, i).
func (t *Transposed[T]) At(i, j int) (T, error) {
	if err := checkIndex("Transposed.At", i, j, t.Rows(), t.Cols()); err != nil {
		var zero T
		return zero, err
	}

	return t.m.At(j, i)
}

// Set writes child (j, i).
func (t *Transposed[T]) Set(i, j int, v T) error {
	if err := checkIndex("Transposed.Set", i, j, t.Rows(), t.Cols()); err != nil {
		return err
	}

	return t.m.Set(j, i, v)
}

// Materialize fetches the mirrored child region in one call and transposes it.
func (t *Transposed[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion("Transposed.Materialize", r0, c0, rows, cols, t.Rows(), t.Cols()); err != nil {
		return nil, err
	}
	src, err := t.m.Materialize(c0, r0, cols, rows)
	if err != nil {
		return nil, err
	}

	return transposeDense(src), nil
}

// Clone deep-clones the child.
func (t *Transposed[T]) Clone() View[T] { return Transpose(t.m.Clone()) }

// Describe implements Describer.
func (t *Transposed[T]) Describe() string { return fmt.Sprintf("Transpose %dx%d", t.Rows(), t.Cols()) }

// Inputs implements Describer.
func (t *Transposed[T]) Inputs() []Describer { return []Describer{describerOf(t.m)} }
