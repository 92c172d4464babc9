// SPDX-License-Identifier: MIT

package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/statespace"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoConvergence is returned when the eigen decomposition fails.
	ErrNoConvergence = errors.New("analysis: eigen decomposition did not converge")

	// ErrSingular is returned when A·x = −B·u has no unique solution.
	ErrSingular = errors.New("analysis: state matrix is singular")
)

// toGonum copies a non-empty Dense into a gonum matrix.
func toGonum(m *matrix.Dense) *mat.Dense {
	r, c := m.Shape()
	data := make([]float64, 0, r*c)
	for _, row := range m.RawRows() {
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data)
}

// Eigenvalues returns the eigenvalues of the square matrix A.
func Eigenvalues(A *matrix.Dense) ([]complex128, error) {
	if err := matrix.ValidateSquare(A); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	if A.Empty() {
		return nil, nil
	}
	var eig mat.Eigen
	if ok := eig.Factorize(toGonum(A), mat.EigenNone); !ok {
		return nil, ErrNoConvergence
	}
	return eig.Values(nil), nil
}

// SpectralRadius returns max |λ| over the eigenvalues of A.
func SpectralRadius(A *matrix.Dense) (float64, error) {
	vals, err := Eigenvalues(A)
	if err != nil {
		return 0, err
	}
	rho := 0.0
	for _, v := range vals {
		if a := cmplx.Abs(v); a > rho {
			rho = a
		}
	}
	return rho, nil
}

// IsStable reports whether every eigenvalue of A has a negative real part.
// A system without states is trivially stable.
func IsStable(A *matrix.Dense) (bool, error) {
	vals, err := Eigenvalues(A)
	if err != nil {
		return false, err
	}
	for _, v := range vals {
		if real(v) >= 0 {
			return false, nil
		}
	}
	return true, nil
}

// SteadyState solves A·x = −B·u, the DC operating point of the states.
func SteadyState(sys *statespace.System) ([]float64, error) {
	if sys == nil {
		return nil, errors.New("analysis: nil system")
	}
	n := sys.N()
	if n == 0 {
		return []float64{}, nil
	}
	rhs := make([]float64, n)
	if sys.M() > 0 {
		if err := matrix.MatVecInto(rhs, sys.B, sys.U); err != nil {
			return nil, fmt.Errorf("analysis: %w", err)
		}
	}
	for i := range rhs {
		rhs[i] = -rhs[i]
	}

	var x mat.VecDense
	if err := x.SolveVec(toGonum(sys.A), mat.NewVecDense(n, rhs)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: condition number %g", ErrSingular, float64(cond))
		}
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}
