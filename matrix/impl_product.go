// SPDX-License-Identifier: MIT

// Package matrix - lazy products and the chain optimizer.
//
// Algorithm (runs once per Product, on first demand):
//   - Stage 1 (flatten): collect the ordered operands of the associative chain,
//     descending into Product inputs only while those nodes are still Unstarted.
//     A Product somebody already started is an opaque operand whose result is reused.
//   - Stage 2 (base case): exactly two operands -> direct triple loop.
//   - Stage 3 (greedy): repeatedly merge the adjacent pair whose LEFT operand has
//     the most columns (first such pair on ties) into a derived block product.
//   - Stage 4: wait for the last derived node and install its value.
//
// Complexity:
//   - Flatten O(n); greedy reduction O(n²) comparisons for n operands.
//   - The greedy order is a heuristic, not the optimal chain order.

package matrix

import (
	"context"
	"fmt"
)

// Product is the lazily realized matrix product a·b.
type Product[T Number] struct {
	lazy[T]
}

var (
	_ View[float64] = (*Product[float64])(nil)
	_ Optimizable   = (*Product[float64])(nil)
)

// Mul returns the lazy product a·b.
// Errors: ErrNilMatrix, ErrIncompatibleDimensions when a.Cols != b.Rows.
func Mul[T Number](a, b View[T], opts ...Option) (*Product[T], error) {
	if err := ValidateNotNil(a, b); err != nil {
		return nil, fmt.Errorf("Mul: %w", err)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, fmt.Errorf("Mul: %w", err)
	}

	return newProduct(resolveEngine(opts, a, b), a, b), nil
}

// Chain returns the left-nested product ((v0·v1)·v2)·... of two or more views.
// The optimizer flattens it back into one chain on first demand.
func Chain[T Number](vs []View[T], opts ...Option) (*Product[T], error) {
	if len(vs) < 2 {
		return nil, fmt.Errorf("Chain: %d operands: %w", len(vs), ErrInvalidDimensions)
	}
	if err := ValidateNotNil(vs...); err != nil {
		return nil, fmt.Errorf("Chain: %w", err)
	}
	e := resolveEngine(opts, vs...)
	p, err := Mul(vs[0], vs[1], WithEngine(e))
	if err != nil {
		return nil, fmt.Errorf("Chain: operand 1: %w", err)
	}
	for k := 2; k < len(vs); k++ {
		if p, err = Mul[T](p, vs[k], WithEngine(e)); err != nil {
			return nil, fmt.Errorf("Chain: operand %d: %w", k, err)
		}
	}

	return p, nil
}

func newProduct[T Number](e *Engine, a, b View[T]) *Product[T] {
	p := &Product[T]{}
	p.init(e, "Product", kindChain, a.Rows(), b.Cols(), []View[T]{a, b}, p.compute)

	return p
}

func (p *Product[T]) compute(ctx context.Context, in []View[T]) (*Dense[T], error) {
	chain, err := flattenChain(in)
	if err != nil {
		return nil, err
	}
	if len(chain) == 2 {
		return directProduct(ctx, p.engine, chain[0], chain[1])
	}

	p.engine.stats.chainReductions.Add(1)
	for _, v := range chain {
		Optimize(v)
	}
	root, err := reduceChain(p.engine, chain)
	if err != nil {
		return nil, err
	}

	return root.result()
}

// Clone rebuilds the product over cloned operands on the same engine,
// or copies the result once the operands are released.
func (p *Product[T]) Clone() View[T] {
	return p.cloneWith(func(in []View[T]) View[T] { return newProduct(p.engine, in[0], in[1]) })
}

// flattenChain expands unstarted Product inputs into one ordered operand list
// and re-checks adjacent shapes.
func flattenChain[T Number](in []View[T]) ([]View[T], error) {
	chain := make([]View[T], 0, len(in))
	var walk func(v View[T])
	walk = func(v View[T]) {
		if p, ok := v.(*Product[T]); ok {
			if kids := p.unstartedInputs(); kids != nil {
				for _, k := range kids {
					walk(k)
				}
				return
			}
		}
		chain = append(chain, v)
	}
	for _, v := range in {
		walk(v)
	}

	for k := 0; k+1 < len(chain); k++ {
		if chain[k].Cols() != chain[k+1].Rows() {
			return nil, fmt.Errorf("flatten: operand %d is %dx%d, operand %d is %dx%d: %w",
				k, chain[k].Rows(), chain[k].Cols(), k+1, chain[k+1].Rows(), chain[k+1].Cols(), ErrIllegalState)
		}
	}

	return chain, nil
}

// greedyPick returns the index i of the adjacent pair (i, i+1) whose left
// operand has the largest column count; the first one wins on ties.
func greedyPick[T Number](ops []View[T]) int {
	best := 0
	for i := 1; i+1 < len(ops); i++ {
		if ops[i].Cols() > ops[best].Cols() {
			best = i
		}
	}

	return best
}

// reduceChain merges the chain into derived block products, scheduling each
// as soon as it exists, and returns the final one.
func reduceChain[T Number](e *Engine, chain []View[T]) (*blockProduct[T], error) {
	ops := append([]View[T](nil), chain...)
	var last *blockProduct[T]
	for len(ops) > 1 {
		i := greedyPick(ops)
		left, right := ops[i], ops[i+1]
		if left.Cols() != right.Rows() {
			return nil, fmt.Errorf("reduce: %dx%d * %dx%d: %w",
				left.Rows(), left.Cols(), right.Rows(), right.Cols(), ErrIllegalState)
		}
		last = newBlockProduct(e, left, right, true)
		last.Optimize()

		ops[i] = last
		ops = append(ops[:i+1], ops[i+2:]...)
	}

	return last, nil
}

// directProduct materializes both operands and runs the triple-loop kernel.
func directProduct[T Number](ctx context.Context, e *Engine, a, b View[T]) (*Dense[T], error) {
	_, span := e.tracer.Start(ctx, "lazymat."+kindDirect)
	defer span.End()

	e.stats.directProducts.Add(1)
	optimizationsTotal.WithLabelValues(kindDirect).Inc()

	da, err := a.Materialize(0, 0, a.Rows(), a.Cols())
	if err != nil {
		return nil, err
	}
	db, err := b.Materialize(0, 0, b.Rows(), b.Cols())
	if err != nil {
		return nil, err
	}

	return mulDense(da, db), nil
}
