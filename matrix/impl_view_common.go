// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// materializeByAt is the default Materialize for coordinate transforms:
// one At call per cell of the requested region.
// Complexity: O(rows*cols) At calls.
func materializeByAt[T Number](tag string, v View[T], r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion(tag, r0, c0, rows, cols, v.Rows(), v.Cols()); err != nil {
		return nil, err
	}
	out := newDense[T](rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x, err := v.At(r0+i, c0+j)
			if err != nil {
				return nil, err
			}
			out.data[i*cols+j] = x
		}
	}

	return out, nil
}

// opaque labels a View implemented outside this package.
type opaque struct{ label string }

func (o opaque) Describe() string    { return o.label }
func (o opaque) Inputs() []Describer { return nil }

// describerOf returns v's own Describer, or an opaque label with its type and shape.
func describerOf[T Number](v View[T]) Describer {
	if d, ok := v.(Describer); ok {
		return d
	}

	return opaque{label: fmt.Sprintf("%T %dx%d", v, v.Rows(), v.Cols())}
}
