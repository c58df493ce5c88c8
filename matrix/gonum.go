// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromGonum copies any gonum matrix into a new *Dense[float64].
// Errors: ErrNilMatrix, ErrInvalidDimensions for an empty matrix.
func FromGonum(m mat.Matrix) (*Dense[float64], error) {
	if m == nil {
		return nil, fmt.Errorf("FromGonum: %w", ErrNilMatrix)
	}
	r, c := m.Dims()
	out, err := NewDense[float64](r, c)
	if err != nil {
		return nil, fmt.Errorf("FromGonum: %w", err)
	}
	if raw, ok := m.(mat.RawMatrixer); ok {
		blas := raw.RawMatrix()
		for i := 0; i < r; i++ {
			copy(out.data[i*c:(i+1)*c], blas.Data[i*blas.Stride:i*blas.Stride+c])
		}
		return out, nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[i*c+j] = m.At(i, j)
		}
	}

	return out, nil
}

// ToGonum materializes v into a new *mat.Dense.
// Errors: ErrNilMatrix, ErrInvalidDimensions for zero-extent views
// (gonum has no empty dense matrix), plus any error from materializing v.
func ToGonum(v View[float64]) (*mat.Dense, error) {
	if err := ValidateNotNil(v); err != nil {
		return nil, fmt.Errorf("ToGonum: %w", err)
	}
	if v.Rows() == 0 || v.Cols() == 0 {
		return nil, fmt.Errorf("ToGonum: %dx%d: %w", v.Rows(), v.Cols(), ErrInvalidDimensions)
	}
	d, err := Realize(v)
	if err != nil {
		return nil, err
	}

	// d is a fresh snapshot, so its buffer can back the gonum matrix directly.
	return mat.NewDense(d.r, d.c, d.data), nil
}
