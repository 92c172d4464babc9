// SPDX-License-Identifier: MIT

// Package integrate advances an assembled state-space model in time with
// forward Euler:
//
//	x_{k+1} = x_k + h·(A·x_k + B·u)
//	y_k     = C·x_k + D·u
//
// Step control:
//
//	ρ = max_i Σ_j |A_ij|  (an upper bound of the spectral radius)
//	h = requested                     if ρ == 0
//	h = min(requested, safety/ρ)      otherwise (safety defaults to 0.1)
//
// WithFixedStep disables the bound and uses the requested step verbatim.
//
// The number of steps is floor(T/h + 1e-9) and sample k sits at t = k·h.
// A NaN or Inf state ends the run with Status Diverged and an
// *InstabilityError (errors.Is(err, ErrUnstable)); the trace keeps every
// finite sample. A cancelled context ends the run with Status Canceled.
package integrate
