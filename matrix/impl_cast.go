// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Converted reads a View[T] as a View[U] using Go numeric conversion.
// Writes convert back to T and forward to the child.
type Converted[T, U Number] struct {
	m View[T]
}

var _ View[float64] = (*Converted[int, float64])(nil)

// Cast wraps v so its elements read as U. T is inferred:
//
//	f := matrix.Cast[float64](ints)
func Cast[U, T Number](v View[T]) *Converted[T, U] {
	return &Converted[T, U]{m: v}
}

// Rows returns the child's row count.
func (c *Converted[T, U]) Rows() int { return c.m.Rows() }

// Cols returns the child's column count.
func (c *Converted[T, U]) Cols() int { return c.m.Cols() }

// At returns U(child(i,j)).
func (c *Converted[T, U]) At(i, j int) (U, error) {
	if err := checkIndex("Converted.At", i, j, c.Rows(), c.Cols()); err != nil {
		return 0, err
	}
	x, err := c.m.At(i, j)
	if err != nil {
		return 0, err
	}

	return U(x), nil
}

// Set stores T(v) into the child.
func (c *Converted[T, U]) Set(i, j int, v U) error {
	if err := checkIndex("Converted.Set", i, j, c.Rows(), c.Cols()); err != nil {
		return err
	}

	return c.m.Set(i, j, T(v))
}

// Materialize converts the child's materialized region element by element.
func (c *Converted[T, U]) Materialize(r0, c0, rows, cols int) (*Dense[U], error) {
	if err := checkRegion("Converted.Materialize", r0, c0, rows, cols, c.Rows(), c.Cols()); err != nil {
		return nil, err
	}
	src, err := c.m.Materialize(r0, c0, rows, cols)
	if err != nil {
		return nil, err
	}
	out := newDense[U](rows, cols)
	for k, x := range src.data {
		out.data[k] = U(x)
	}

	return out, nil
}

// Clone deep-clones the child.
func (c *Converted[T, U]) Clone() View[U] { return &Converted[T, U]{m: c.m.Clone()} }

// Describe implements Describer.
func (c *Converted[T, U]) Describe() string {
	var (
		from T
		to   U
	)

	return fmt.Sprintf("Cast %T->%T %dx%d", from, to, c.Rows(), c.Cols())
}

// Inputs implements Describer.
func (c *Converted[T, U]) Inputs() []Describer { return []Describer{describerOf(c.m)} }
