// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// ValidateVecLen checks that x has length n.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return fmt.Errorf("%w: vector length %d, want %d", ErrDimensionMismatch, len(x), n)
	}
	return nil
}

// ValidateSquare checks that m is non-nil and square.
func ValidateSquare(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.r != m.c {
		return fmt.Errorf("%w: %dx%d", ErrNonSquare, m.r, m.c)
	}
	return nil
}

// MatVec computes y = m·x into a fresh slice.
// Contract: len(x) == m.Cols().
// Complexity: O(r*c) time, O(r) space.
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opMatVec, ErrNilMatrix)
	}
	y := make([]float64, m.r)
	if err := MatVecInto(y, m, x); err != nil {
		return nil, err
	}
	return y, nil
}

// MatVecInto computes dst = m·x without allocating.
// Contract: len(dst) == m.Rows(), len(x) == m.Cols().
// Determinism: fixed i→j loop order.
func MatVecInto(dst []float64, m *Dense, x []float64) error {
	if m == nil {
		return matrixErrorf(opMatVec, ErrNilMatrix)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(dst, m.r); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	var acc, xv float64
	for i := 0; i < m.r; i++ {
		acc = 0
		base := i * m.c
		for j := 0; j < m.c; j++ {
			xv = x[j]
			if xv != 0 {
				acc += m.data[base+j] * xv
			}
		}
		dst[i] = acc
	}
	return nil
}

// MulAdd computes dst = m·x + n·u. Both products must have m.Rows() rows.
// Either operand may have zero columns.
func MulAdd(dst []float64, m *Dense, x []float64, n *Dense, u []float64) error {
	if m == nil || n == nil {
		return matrixErrorf(opMulAdd, ErrNilMatrix)
	}
	if m.r != n.r {
		return matrixErrorf(opMulAdd, fmt.Errorf("%w: rows %d vs %d", ErrDimensionMismatch, m.r, n.r))
	}
	if err := MatVecInto(dst, m, x); err != nil {
		return matrixErrorf(opMulAdd, err)
	}
	if err := ValidateVecLen(u, n.c); err != nil {
		return matrixErrorf(opMulAdd, err)
	}
	for i := 0; i < n.r; i++ {
		base := i * n.c
		for j := 0; j < n.c; j++ {
			dst[i] += n.data[base+j] * u[j]
		}
	}
	return nil
}

// MaxAbsRowSum returns max_i Σ_j |m(i,j)| (the infinity norm).
// It bounds the spectral radius from above; 0 for an empty matrix.
// Complexity: O(r*c).
func MaxAbsRowSum(m *Dense) (float64, error) {
	if m == nil {
		return 0, matrixErrorf(opRowSum, ErrNilMatrix)
	}
	best := 0.0
	for i := 0; i < m.r; i++ {
		sum := 0.0
		base := i * m.c
		for j := 0; j < m.c; j++ {
			sum += math.Abs(m.data[base+j])
		}
		if sum > best {
			best = sum
		}
	}
	return best, nil
}

// Finite reports whether every component of v is finite. It returns the
// index of the first offending component, or -1.
func Finite(v []float64) (bool, int) {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false, i
		}
	}
	return true, -1
}
