// SPDX-License-Identifier: MIT

// Package simulator runs the whole state-variable pipeline on an element
// list:
//
//	validate → topology → spanning check → loop matrix → state space → Euler
//
// Every stage fails fast; the first error stops the run and is returned
// wrapped with the stage name. A diverging integration is the exception:
// the partial Result comes back together with an error matching
// integrate.ErrUnstable, so callers can still inspect the trace.
//
// A non-positive simulation window is filled in by analysis.Recommend from
// the circuit's time constant or natural period.
package simulator
