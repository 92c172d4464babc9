// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/statevar/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatVec(t *testing.T) {
	m, _ := matrix.FromRows([][]float64{{1, 2}, {-3, 0.5}})
	y, err := matrix.MatVec(m, []float64{2, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, -4}, y)

	_, err = matrix.MatVec(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(nil, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	// 0×0 times the empty vector is the empty vector.
	z, _ := matrix.NewDense(0, 0)
	y, err = matrix.MatVec(z, nil)
	require.NoError(t, err)
	assert.Empty(t, y)
}

func TestMulAdd(t *testing.T) {
	a, _ := matrix.FromRows([][]float64{{-1000}})
	b, _ := matrix.FromRows([][]float64{{1000}})
	dst := make([]float64, 1)
	require.NoError(t, matrix.MulAdd(dst, a, []float64{2}, b, []float64{5}))
	assert.Equal(t, []float64{3000}, dst)

	// B may have zero columns (no inputs).
	b0, _ := matrix.NewDense(1, 0)
	require.NoError(t, matrix.MulAdd(dst, a, []float64{2}, b0, nil))
	assert.Equal(t, []float64{-2000}, dst)

	bad, _ := matrix.NewDense(2, 1)
	require.ErrorIs(t, matrix.MulAdd(dst, a, []float64{2}, bad, []float64{1}), matrix.ErrDimensionMismatch)
}

func TestMaxAbsRowSum(t *testing.T) {
	m, _ := matrix.FromRows([][]float64{{0, 1e6}, {-10, -1000}})
	n, err := matrix.MaxAbsRowSum(m)
	require.NoError(t, err)
	assert.Equal(t, 1e6, n)

	z, _ := matrix.NewDense(0, 0)
	n, err = matrix.MaxAbsRowSum(z)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestValidateSquareAndFinite(t *testing.T) {
	m, _ := matrix.NewDense(2, 3)
	require.ErrorIs(t, matrix.ValidateSquare(m), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)

	ok, idx := matrix.Finite([]float64{1, 2})
	assert.True(t, ok)
	assert.Equal(t, -1, idx)
	ok, idx = matrix.Finite([]float64{1, math.Inf(1), math.NaN()})
	assert.False(t, ok)
	assert.Equal(t, 1, idx)
}
