// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major matrix used for the loop matrix
// and the state-space matrices A, B, C and D.
//
// What & Why:
//
//	Dense stores r×c float64 values in one flat slice with index i*c + j.
//	Zero-sized shapes (0×n, n×0, 0×0) are legal: a purely resistive network
//	has no state variables and its A and B matrices have zero rows, and the
//	integrator must treat them as ordinary, empty operands.
//
// Safety:
//
//	At and Set return errors instead of panicking. Set rejects NaN and ±Inf
//	so a non-finite coefficient can never enter a system silently.
//
// Kernels:
//
//	MatVec / MatVecInto  - y = M·x, the latter without allocation (hot loop).
//	MulAdd               - y = M·x + N·u into a caller buffer.
//	MaxAbsRowSum         - infinity norm, the integrator's spectral-radius proxy.
//
// Complexity quicksheet:
//
//	NewDense O(r*c); At/Set O(1); Clone O(r*c); MatVec O(r*c); MaxAbsRowSum O(r*c).
package matrix
