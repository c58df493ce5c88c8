// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Resized presents a child view at a different extent anchored at (0,0).
// Cells inside the child read through; cells outside read as zero and are not writable.
type Resized[T Number] struct {
	m          View[T]
	rows, cols int
}

var _ View[float64] = (*Resized[float64])(nil)

// Resize wraps v at rows×cols. Growing zero-pads at the trailing edges,
// shrinking crops. Errors: ErrNilMatrix, ErrInvalidDimensions for negative extents.
func Resize[T Number](v View[T], rows, cols int) (*Resized[T], error) {
	if err := ValidateNotNil(v); err != nil {
		return nil, fmt.Errorf("Resize: %w", err)
	}
	if err := checkExtent("Resize", rows, cols); err != nil {
		return nil, err
	}

	return &Resized[T]{m: v, rows: rows, cols: cols}, nil
}

// Rows returns the resized height.
func (r *Resized[T]) Rows() int { return r.rows }

// Cols returns the resized width.
func (r *Resized[T]) Cols() int { return r.cols }

func (r *Resized[T]) inside(i, j int) bool { return i < r.m.Rows() && j < r.m.Cols() }

// At returns the child cell, or zero in the padding.
func (r *Resized[T]) At(i, j int) (T, error) {
	var zero T
	if err := checkIndex("Resized.At", i, j, r.rows, r.cols); err != nil {
		return zero, err
	}
	if !r.inside(i, j) {
		return zero, nil
	}

	return r.m.At(i, j)
}

// Set forwards inside the child; the padding returns ErrUnsupported.
func (r *Resized[T]) Set(i, j int, v T) error {
	if err := checkIndex("Resized.Set", i, j, r.rows, r.cols); err != nil {
		return err
	}
	if !r.inside(i, j) {
		return fmt.Errorf("Resized.Set(%d,%d): padding: %w", i, j, ErrUnsupported)
	}

	return r.m.Set(i, j, v)
}

// Materialize zero-fills the region and copies the part that overlaps the child.
func (r *Resized[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion("Resized.Materialize", r0, c0, rows, cols, r.rows, r.cols); err != nil {
		return nil, err
	}
	out := newDense[T](rows, cols)
	h := min(r0+rows, r.m.Rows()) - r0
	w := min(c0+cols, r.m.Cols()) - c0
	if h <= 0 || w <= 0 {
		return out, nil
	}
	src, err := r.m.Materialize(r0, c0, h, w)
	if err != nil {
		return nil, err
	}
	for i := 0; i < h; i++ {
		copy(out.data[i*cols:i*cols+w], src.data[i*w:(i+1)*w])
	}

	return out, nil
}

// Clone deep-clones the child.
func (r *Resized[T]) Clone() View[T] { return &Resized[T]{m: r.m.Clone(), rows: r.rows, cols: r.cols} }

// Describe implements Describer.
func (r *Resized[T]) Describe() string { return fmt.Sprintf("Resize %dx%d", r.rows, r.cols) }

// Inputs implements Describer.
func (r *Resized[T]) Inputs() []Describer { return []Describer{describerOf(r.m)} }
