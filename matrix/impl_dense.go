// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide the only node kind that owns memory: a flat row-major buffer with offset i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Share by reference: every view built over a *Dense observes writes made through any alias.
//   - Break aliasing only on request (Clone/Copy).
//
// AI-Hints:
//   - Kernels (kernels.go) operate on the flat data slice directly; views go through At.
//   - Materialize copies whole row segments with copy(), never cell by cell.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Copy: O(r*c); Materialize: O(h*w).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt          = "At"
	ctxSet         = "Set"
	ctxMaterialize = "Materialize"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w". The sentinel is preserved for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix over T.
type Dense[T Number] struct {
	r, c int // row and column counts (zero allowed only for internal constructors)
	data []T // contiguous row-major storage (len == r*c)
}

// Compile-time assertions.
var (
	_ View[float64] = (*Dense[float64])(nil)
	_ Describer     = (*Dense[int])(nil)
	_ fmt.Stringer  = (*Dense[int])(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Allocate a zeroed buffer of rows*cols elements.
//
// Implementation:
//   - Stage 1: reject rows<=0 or cols<=0 with ErrInvalidDimensions.
//   - Stage 2: make() zero-fills; wrap in *Dense.
//
// Errors:
//   - ErrInvalidDimensions for non-positive shapes.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense[T Number](rows, cols int) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}

	return newDense[T](rows, cols), nil
}

// newDense is the internal constructor that allows rows==0 or cols==0.
// Callers guarantee non-negative dimensions.
func newDense[T Number](rows, cols int) *Dense[T] {
	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}
}

// NewDenseFrom creates a rows×cols matrix from row-major data (copied).
// MAIN DESCRIPTION:
//   - Build a Dense whose element (i,j) is data[i*cols+j].
//
// Implementation:
//   - Stage 1: validate shape as in NewDense.
//   - Stage 2: require len(data) == rows*cols (ErrShapeMismatch otherwise).
//   - Stage 3: copy data into a fresh buffer; the caller keeps ownership of data.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom[T Number](rows, cols int, data []T) (*Dense[T], error) {
	m, err := NewDense[T](rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseFrom(%d,%d): got %d values: %w", rows, cols, len(data), ErrShapeMismatch)
	}
	copy(m.data, data)

	return m, nil
}

// NewDenseFromRows creates a matrix from a non-empty rectangular [][]T (copied).
// Ragged input returns ErrShapeMismatch; empty input returns ErrInvalidDimensions.
func NewDenseFromRows[T Number](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("NewDenseFromRows: %w", ErrInvalidDimensions)
	}
	c := len(rows[0])
	m := newDense[T](len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("NewDenseFromRows: row %d has %d values, want %d: %w", i, len(row), c, ErrShapeMismatch)
		}
		copy(m.data[i*c:(i+1)*c], row)
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense[T]) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense[T]) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense[T]) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
func (m *Dense[T]) At(row, col int) (T, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		var zero T
		return zero, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col). The write is visible through every view aliasing m.
func (m *Dense[T]) Set(row, col int, v T) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Materialize copies the region [r0,r0+rows)×[c0,c0+cols) into a new Dense.
// MAIN DESCRIPTION:
//   - Snapshot a rectangle; later writes to m do not affect the result.
//
// Implementation:
//   - Stage 1: validate the region (zero-area allowed at any in-range origin).
//   - Stage 2: copy one contiguous row segment per output row.
//
// Complexity:
//   - Time O(rows*cols), Space O(rows*cols).
func (m *Dense[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion("Dense."+ctxMaterialize, r0, c0, rows, cols, m.r, m.c); err != nil {
		return nil, err
	}
	out := newDense[T](rows, cols)
	for i := 0; i < rows; i++ {
		src := (r0+i)*m.c + c0
		copy(out.data[i*cols:(i+1)*cols], m.data[src:src+cols])
	}

	return out, nil
}

// Clone returns a deep copy as a View.
func (m *Dense[T]) Clone() View[T] { return m.Copy() }

// Copy returns a deep copy (new buffer, same values).
func (m *Dense[T]) Copy() *Dense[T] {
	cp := make([]T, len(m.data))
	copy(cp, m.data)

	return &Dense[T]{r: m.r, c: m.c, data: cp}
}

// Do visits every element in row-major order; returning false stops the walk.
func (m *Dense[T]) Do(fn func(i, j int, v T) bool) {
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			if !fn(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces every element with fn(i, j, v) in place.
func (m *Dense[T]) Apply(fn func(i, j int, v T) T) {
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			m.data[base+j] = fn(i, j, m.data[base+j])
		}
	}
}

// String implements fmt.Stringer: one bracketed row per line.
func (m *Dense[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%v", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// Describe implements Describer.
func (m *Dense[T]) Describe() string { return fmt.Sprintf("Dense %dx%d", m.r, m.c) }

// Inputs implements Describer; a Dense is always a leaf.
func (m *Dense[T]) Inputs() []Describer { return nil }
