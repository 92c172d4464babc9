// SPDX-License-Identifier: MIT

// Package classify expresses a resistor's voltage or current as a linear
// form over state variables (capacitor voltages, inductor currents) and
// input sources, so that KVL/KCL relations can be turned into explicit
// state equations.
//
// Variables:
//
//	Variables fixes the indexing shared by the classifier and the assembler:
//	states are all capacitors then all inductors, inputs are all current
//	sources then all voltage sources, each group in input order.
//
// Decision list (first match wins) for resistor R:
//
//  1. SeriesInductor: R is a tree branch linked by M to an inductor chord
//     L and they share a node incident to exactly R and L:
//     i_R = M[L,R]·i_L, v_R = R·i_R.
//  2. CurrentCutset: R is a tree branch whose linked chords are all
//     inductors or current sources, at least one source:
//     i_R = Σ M[c,R]·i_c.
//  3. ParallelCapacitor: R is a chord with the identical node pair of a
//     linked tree capacitor C: v_R = −M[R,C]·u_C, i_R = v_R / R.
//  4. VoltageLoop: R is a chord whose loop holds a voltage source and
//     only capacitors or voltage sources otherwise: v_R = −Σ M[R,k]·v_k.
//  5. Adjacency: any element sharing a node with R, an inductor at a
//     degree-2 node (series) or a capacitor on the same node pair
//     (parallel), signs from local orientation.
//  6. Elimination: exact elimination of the resistive sub-network
//     (dense solve); disabled by WithoutElimination.
//  7. Unresolved: empty form (coefficient 0), logged as a warning and
//     recorded in Unresolved().
//
// The relatedSign argument of Classify multiplies every coefficient.
//
// Errors:
//
//	ErrNotResistor, ErrGraphMismatch, ErrUnknownMode.
package classify
