// SPDX-License-Identifier: MIT
// Package matrix: flat-buffer kernels on *Dense.
//
// Purpose:
//   - The only code that walks Dense.data directly for arithmetic.
//   - Callers validate shapes; kernels assume compatible operands.
//
// Determinism:
//   - Fixed loop orders; results are bitwise reproducible for a given input.

package matrix

// mulDense returns a×b with the i-k-j loop order: the innermost loop streams
// one row of b and one row of the output, both contiguous.
// Complexity: O(n*k*m) time, O(n*m) space.
func mulDense[T Number](a, b *Dense[T]) *Dense[T] {
	n, inner, m := a.r, a.c, b.c
	out := newDense[T](n, m)
	for i := 0; i < n; i++ {
		row := out.data[i*m : (i+1)*m]
		for p := 0; p < inner; p++ {
			av := a.data[i*inner+p]
			brow := b.data[p*m : (p+1)*m]
			for j, bv := range brow {
				row[j] += av * bv
			}
		}
	}

	return out
}

// addInto accumulates src into dst element-wise. Shapes must match.
func addInto[T Number](dst, src *Dense[T]) {
	for k, v := range src.data {
		dst.data[k] += v
	}
}

// transposeDense returns a new c×r Dense holding mᵀ.
func transposeDense[T Number](m *Dense[T]) *Dense[T] {
	out := newDense[T](m.c, m.r)
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[base+j]
		}
	}

	return out
}
