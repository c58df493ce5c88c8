// SPDX-License-Identifier: MIT

// Package matrix - block concatenation.
//
// A Concatenation lays out gridRows×gridCols equally shaped blocks in row-major
// block order: block k sits at grid position (k / gridCols, k % gridCols).
// Element (i,j) lives in block (i/blockRows, j/blockCols) at (i%blockRows, j%blockCols).

package matrix

import "fmt"

// Concatenation is a read/write view over a grid of equally shaped blocks.
type Concatenation[T Number] struct {
	blocks             []View[T]
	gridRows, gridCols int
	br, bc             int // block shape
}

var _ View[float64] = (*Concatenation[float64])(nil)

// Concat arranges blocks (row-major block order) into a gridRows×gridCols grid.
// MAIN DESCRIPTION:
//   - The result is (gridRows*blockRows)×(gridCols*blockCols); blocks are shared, not copied.
//
// Errors:
//   - ErrInvalidDimensions when gridRows or gridCols is not positive.
//   - ErrShapeMismatch when len(blocks) != gridRows*gridCols or block shapes differ.
//   - ErrNilMatrix for a nil block.
func Concat[T Number](blocks []View[T], gridRows, gridCols int) (*Concatenation[T], error) {
	if gridRows <= 0 || gridCols <= 0 {
		return nil, fmt.Errorf("Concat: grid %dx%d: %w", gridRows, gridCols, ErrInvalidDimensions)
	}
	if len(blocks) != gridRows*gridCols {
		return nil, fmt.Errorf("Concat: %d blocks for a %dx%d grid: %w", len(blocks), gridRows, gridCols, ErrShapeMismatch)
	}
	if err := ValidateNotNil(blocks...); err != nil {
		return nil, fmt.Errorf("Concat: %w", err)
	}
	for k := 1; k < len(blocks); k++ {
		if err := ValidateSameShape(blocks[0], blocks[k]); err != nil {
			return nil, fmt.Errorf("Concat: block %d: %w", k, err)
		}
	}

	return &Concatenation[T]{
		blocks:   append([]View[T](nil), blocks...),
		gridRows: gridRows,
		gridCols: gridCols,
		br:       blocks[0].Rows(),
		bc:       blocks[0].Cols(),
	}, nil
}

// Rows returns gridRows * blockRows.
func (c *Concatenation[T]) Rows() int { return c.gridRows * c.br }

// Cols returns gridCols * blockCols.
func (c *Concatenation[T]) Cols() int { return c.gridCols * c.bc }

// Grid returns the grid shape.
func (c *Concatenation[T]) Grid() (gridRows, gridCols int) { return c.gridRows, c.gridCols }

func (c *Concatenation[T]) block(bi, bj int) View[T] { return c.blocks[bi*c.gridCols+bj] }

// At reads from the owning block.
func (c *Concatenation[T]) At(i, j int) (T, error) {
	if err := checkIndex("Concatenation.At", i, j, c.Rows(), c.Cols()); err != nil {
		var zero T
		return zero, err
	}

	return c.block(i/c.br, j/c.bc).At(i%c.br, j%c.bc)
}

// Set writes to the owning block.
func (c *Concatenation[T]) Set(i, j int, v T) error {
	if err := checkIndex("Concatenation.Set", i, j, c.Rows(), c.Cols()); err != nil {
		return err
	}

	return c.block(i/c.br, j/c.bc).Set(i%c.br, j%c.bc, v)
}

// Materialize asks each overlapping block for its share of the region.
// Complexity: O(rows*cols) plus one Materialize call per overlapping block.
func (c *Concatenation[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion("Concatenation.Materialize", r0, c0, rows, cols, c.Rows(), c.Cols()); err != nil {
		return nil, err
	}
	out := newDense[T](rows, cols)
	if rows == 0 || cols == 0 {
		return out, nil
	}

	for bi := r0 / c.br; bi <= (r0+rows-1)/c.br; bi++ {
		top := bi * c.br
		rs, re := max(r0, top)-top, min(r0+rows, top+c.br)-top
		for bj := c0 / c.bc; bj <= (c0+cols-1)/c.bc; bj++ {
			left := bj * c.bc
			cs, ce := max(c0, left)-left, min(c0+cols, left+c.bc)-left

			part, err := c.block(bi, bj).Materialize(rs, cs, re-rs, ce-cs)
			if err != nil {
				return nil, err
			}
			w := ce - cs
			for i := 0; i < re-rs; i++ {
				dst := (top+rs+i-r0)*cols + (left + cs - c0)
				copy(out.data[dst:dst+w], part.data[i*w:(i+1)*w])
			}
		}
	}

	return out, nil
}

// Clone deep-clones every block.
func (c *Concatenation[T]) Clone() View[T] {
	blocks := make([]View[T], len(c.blocks))
	for k, b := range c.blocks {
		blocks[k] = b.Clone()
	}

	return &Concatenation[T]{blocks: blocks, gridRows: c.gridRows, gridCols: c.gridCols, br: c.br, bc: c.bc}
}

// Describe implements Describer.
func (c *Concatenation[T]) Describe() string {
	return fmt.Sprintf("Concat %dx%d (grid %dx%d)", c.Rows(), c.Cols(), c.gridRows, c.gridCols)
}

// Inputs implements Describer.
func (c *Concatenation[T]) Inputs() []Describer {
	out := make([]Describer, len(c.blocks))
	for k, b := range c.blocks {
		out[k] = describerOf(b)
	}

	return out
}
