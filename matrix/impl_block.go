// SPDX-License-Identifier: MIT

// Package matrix - block decomposition of a pairwise product.
//
// For A (R×K) times B (K×C) with tile edge s = floor(sqrt(budget/sizeof(T))):
//   - Stage 1 (plan): gridRows = ceil(R/s), tileRows = ceil(R/gridRows);
//     gridInner = ceil(K/s), tileInner = ceil(K/gridInner);
//     gridCols = ceil(C/s), tileCols = ceil(C/gridCols).
//     B's row tiling is A's column tiling.
//   - Stage 2 (tiles): every tile is a memoized node holding a zero-padded copy,
//     so all tiles of one grid share a shape even at the ragged edge.
//   - Stage 3 (products): output tile (i,j) = MultiSum_k tile(A,i,k)·tile(B,k,j);
//     each tile product is a direct product and is never decomposed again.
//   - Stage 4 (assemble): Concat the output tiles into the padded grid, crop to R×C
//     with Submatrix, materialize.
//
// Every tile materialization and every tile product is an independent task on the pool.

package matrix

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// tiling is the grid geometry of one decomposed product.
type tiling struct {
	gridRows, tileRows   int // A rows
	gridInner, tileInner int // A cols == B rows
	gridCols, tileCols   int // B cols
}

// planTiling derives the grid for an R×K by K×C product with tile edge s.
func planTiling(r, k, c, s int) tiling {
	t := tiling{
		gridRows:  ceilDiv(r, s),
		gridInner: ceilDiv(k, s),
		gridCols:  ceilDiv(c, s),
	}
	if t.gridRows > 0 {
		t.tileRows = ceilDiv(r, t.gridRows)
	}
	if t.gridInner > 0 {
		t.tileInner = ceilDiv(k, t.gridInner)
	}
	if t.gridCols > 0 {
		t.tileCols = ceilDiv(c, t.gridCols)
	}

	return t
}

// trivial reports whether tiling cannot help: one tile, or a zero extent.
func (t tiling) trivial() bool {
	if t.gridRows == 0 || t.gridInner == 0 || t.gridCols == 0 {
		return true
	}

	return t.gridRows == 1 && t.gridInner == 1 && t.gridCols == 1
}

// blockProduct is a pairwise product derived by the optimizer.
// When tiled is false it always takes the direct path (tile products).
type blockProduct[T Number] struct {
	lazy[T]
	tiled bool
}

func newBlockProduct[T Number](e *Engine, a, b View[T], tiled bool) *blockProduct[T] {
	p := &blockProduct[T]{tiled: tiled}
	p.init(e, "BlockProduct", kindBlock, a.Rows(), b.Cols(), []View[T]{a, b}, p.compute)

	return p
}

func (p *blockProduct[T]) compute(ctx context.Context, in []View[T]) (*Dense[T], error) {
	a, b := in[0], in[1]
	Optimize(a)
	Optimize(b)
	if !p.tiled {
		return directProduct(ctx, p.engine, a, b)
	}

	t := planTiling(a.Rows(), a.Cols(), b.Cols(), p.engine.tileEdge(sizeOf[T]()))
	if t.trivial() {
		return directProduct(ctx, p.engine, a, b)
	}
	p.engine.stats.blockDecompositions.Add(1)

	return decompose(ctx, p.engine, a, b, t)
}

// Clone rebuilds the node over cloned operands.
func (p *blockProduct[T]) Clone() View[T] {
	return p.cloneWith(func(in []View[T]) View[T] { return newBlockProduct(p.engine, in[0], in[1], p.tiled) })
}

// decompose runs Stages 2-4 for a non-trivial tiling.
func decompose[T Number](ctx context.Context, e *Engine, a, b View[T], t tiling) (*Dense[T], error) {
	_, span := e.tracer.Start(ctx, "lazymat.decompose")
	defer span.End()

	left := make([]*tile[T], t.gridRows*t.gridInner)
	for i := 0; i < t.gridRows; i++ {
		for k := 0; k < t.gridInner; k++ {
			left[i*t.gridInner+k] = newTile(e, a, i*t.tileRows, k*t.tileInner, t.tileRows, t.tileInner)
		}
	}
	right := make([]*tile[T], t.gridInner*t.gridCols)
	for k := 0; k < t.gridInner; k++ {
		for j := 0; j < t.gridCols; j++ {
			right[k*t.gridCols+j] = newTile(e, b, k*t.tileInner, j*t.tileCols, t.tileInner, t.tileCols)
		}
	}
	for _, tl := range left {
		tl.Optimize()
	}
	for _, tl := range right {
		tl.Optimize()
	}

	blocks := make([]View[T], t.gridRows*t.gridCols)
	products := make([]*blockProduct[T], 0, len(blocks)*t.gridInner)
	for i := 0; i < t.gridRows; i++ {
		for j := 0; j < t.gridCols; j++ {
			terms := make([]View[T], t.gridInner)
			for k := 0; k < t.gridInner; k++ {
				tp := newBlockProduct[T](e, left[i*t.gridInner+k], right[k*t.gridCols+j], false)
				tp.Optimize()
				terms[k] = tp
				products = append(products, tp)
			}
			sum, err := AddN(terms...)
			if err != nil {
				return nil, fmt.Errorf("decompose: tile (%d,%d): %w: %w", i, j, ErrIllegalState, err)
			}
			blocks[i*t.gridCols+j] = sum
		}
	}

	if err := waitAll(e, products); err != nil {
		return nil, err
	}

	grid, err := Concat(blocks, t.gridRows, t.gridCols)
	if err != nil {
		return nil, fmt.Errorf("decompose: %w: %w", ErrIllegalState, err)
	}
	cropped, err := Submatrix[T](grid, 0, 0, a.Rows(), b.Cols())
	if err != nil {
		return nil, fmt.Errorf("decompose: crop: %w: %w", ErrIllegalState, err)
	}

	return cropped.Materialize(0, 0, a.Rows(), b.Cols())
}

// waitAll waits for every tile product, at most one waiter per worker,
// and returns the first failure.
func waitAll[T Number](e *Engine, nodes []*blockProduct[T]) error {
	var g errgroup.Group
	g.SetLimit(e.Workers())
	for _, n := range nodes {
		g.Go(func() error { return n.Wait(context.Background()) })
	}

	return g.Wait()
}

// tile is a memoized, zero-padded rows×cols copy of src starting at (r0, c0).
type tile[T Number] struct {
	lazy[T]
	r0, c0 int
}

func newTile[T Number](e *Engine, src View[T], r0, c0, rows, cols int) *tile[T] {
	t := &tile[T]{r0: r0, c0: c0}
	t.init(e, "Tile", kindTile, rows, cols, []View[T]{src}, t.compute)

	return t
}

func (t *tile[T]) compute(_ context.Context, in []View[T]) (*Dense[T], error) {
	t.engine.stats.tiles.Add(1)
	src := in[0]
	h := min(t.rows, src.Rows()-t.r0)
	w := min(t.cols, src.Cols()-t.c0)

	region, err := src.Materialize(t.r0, t.c0, h, w)
	if err != nil {
		return nil, err
	}
	if h == t.rows && w == t.cols {
		return region, nil
	}
	padded, err := Resize[T](region, t.rows, t.cols)
	if err != nil {
		return nil, err
	}

	return padded.Materialize(0, 0, t.rows, t.cols)
}

// Clone rebuilds the tile over a cloned source.
func (t *tile[T]) Clone() View[T] {
	return t.cloneWith(func(in []View[T]) View[T] { return newTile(t.engine, in[0], t.r0, t.c0, t.rows, t.cols) })
}

// Describe implements Describer.
func (t *tile[T]) Describe() string {
	return fmt.Sprintf("%s @(%d,%d)", t.lazy.Describe(), t.r0, t.c0)
}
