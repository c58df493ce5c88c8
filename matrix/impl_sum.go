// SPDX-License-Identifier: MIT

// Package matrix - element-wise sums.
//
//   - Sum:      lazy a+b, realized once on the engine; read-only.
//   - MultiSum: Σ of N same-shaped terms evaluated on demand; read-only.
//     Block decomposition uses it for Σ_k tile(A,i,k)·tile(B,k,j).

package matrix

import (
	"context"
	"fmt"
)

// Sum is the lazily realized element-wise sum of two same-shaped views.
type Sum[T Number] struct {
	lazy[T]
}

var (
	_ View[float64] = (*Sum[float64])(nil)
	_ Optimizable   = (*Sum[float64])(nil)
)

// Add returns the lazy sum a+b.
// Errors: ErrNilMatrix, ErrShapeMismatch.
func Add[T Number](a, b View[T], opts ...Option) (*Sum[T], error) {
	if err := ValidateNotNil(a, b); err != nil {
		return nil, fmt.Errorf("Add: %w", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, fmt.Errorf("Add: %w", err)
	}

	return newSum(resolveEngine(opts, a, b), a, b), nil
}

func newSum[T Number](e *Engine, a, b View[T]) *Sum[T] {
	s := &Sum[T]{}
	s.init(e, "Sum", kindSum, a.Rows(), a.Cols(), []View[T]{a, b}, s.compute)

	return s
}

// compute starts both operands, then adds their materialized values.
func (s *Sum[T]) compute(_ context.Context, in []View[T]) (*Dense[T], error) {
	s.engine.stats.sums.Add(1)
	for _, v := range in {
		Optimize(v)
	}

	acc, err := in[0].Materialize(0, 0, s.rows, s.cols)
	if err != nil {
		return nil, err
	}
	for _, v := range in[1:] {
		d, err := v.Materialize(0, 0, s.rows, s.cols)
		if err != nil {
			return nil, err
		}
		addInto(acc, d)
	}

	return acc, nil
}

// Clone rebuilds the sum over cloned operands on the same engine,
// or copies the result once the operands are released.
func (s *Sum[T]) Clone() View[T] {
	return s.cloneWith(func(in []View[T]) View[T] { return newSum(s.engine, in[0], in[1]) })
}

// MultiSum is the read-only element-wise sum of one or more same-shaped views.
type MultiSum[T Number] struct {
	terms      []View[T]
	rows, cols int
}

var _ View[float64] = (*MultiSum[float64])(nil)

// AddN returns Σ terms.
// Errors: ErrInvalidDimensions for no terms, ErrNilMatrix, ErrShapeMismatch.
func AddN[T Number](terms ...View[T]) (*MultiSum[T], error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("AddN: no terms: %w", ErrInvalidDimensions)
	}
	if err := ValidateNotNil(terms...); err != nil {
		return nil, fmt.Errorf("AddN: %w", err)
	}
	for k := 1; k < len(terms); k++ {
		if err := ValidateSameShape(terms[0], terms[k]); err != nil {
			return nil, fmt.Errorf("AddN: term %d: %w", k, err)
		}
	}

	return &MultiSum[T]{
		terms: append([]View[T](nil), terms...),
		rows:  terms[0].Rows(),
		cols:  terms[0].Cols(),
	}, nil
}

// Rows returns the common row count.
func (m *MultiSum[T]) Rows() int { return m.rows }

// Cols returns the common column count.
func (m *MultiSum[T]) Cols() int { return m.cols }

// Len returns the number of terms.
func (m *MultiSum[T]) Len() int { return len(m.terms) }

// At returns Σ term(i,j).
func (m *MultiSum[T]) At(i, j int) (T, error) {
	var acc T
	if err := checkIndex("MultiSum.At", i, j, m.rows, m.cols); err != nil {
		return acc, err
	}
	for _, t := range m.terms {
		x, err := t.At(i, j)
		if err != nil {
			var zero T
			return zero, err
		}
		acc += x
	}

	return acc, nil
}

// Set always fails: MultiSum is read-only.
func (m *MultiSum[T]) Set(i, j int, _ T) error {
	if err := checkIndex("MultiSum.Set", i, j, m.rows, m.cols); err != nil {
		return err
	}

	return fmt.Errorf("MultiSum.Set(%d,%d): %w", i, j, ErrUnsupported)
}

// Materialize sums the materialized region of every term.
func (m *MultiSum[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion("MultiSum.Materialize", r0, c0, rows, cols, m.rows, m.cols); err != nil {
		return nil, err
	}
	acc, err := m.terms[0].Materialize(r0, c0, rows, cols)
	if err != nil {
		return nil, err
	}
	for _, t := range m.terms[1:] {
		d, err := t.Materialize(r0, c0, rows, cols)
		if err != nil {
			return nil, err
		}
		addInto(acc, d)
	}

	return acc, nil
}

// Clone deep-clones every term.
func (m *MultiSum[T]) Clone() View[T] {
	terms := make([]View[T], len(m.terms))
	for k, t := range m.terms {
		terms[k] = t.Clone()
	}

	return &MultiSum[T]{terms: terms, rows: m.rows, cols: m.cols}
}

// Describe implements Describer.
func (m *MultiSum[T]) Describe() string {
	return fmt.Sprintf("MultiSum %dx%d (%d terms)", m.rows, m.cols, len(m.terms))
}

// Inputs implements Describer.
func (m *MultiSum[T]) Inputs() []Describer {
	out := make([]Describer, len(m.terms))
	for k, t := range m.terms {
		out[k] = describerOf(t)
	}

	return out
}
