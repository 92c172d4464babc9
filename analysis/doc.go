// SPDX-License-Identifier: MIT

// Package analysis offers diagnostics around an assembled circuit: a coarse
// circuit type with recommended simulation windows, exact eigenvalues of A,
// and the DC operating point.
//
// Recommended windows (total, step):
//
//	RLC        T = 2π√(L·C)      (5T, T/100)
//	LC         T = 2π√(L·C)      (3T, T/200)
//	RC         τ = C·min(R)      (5τ, τ/100)
//	RL         τ = L/min(R)      (5τ, τ/100)
//	otherwise                    (0.01, 1e-4)
//
// L and C are the first inductor and capacitor in input order.
package analysis
