// SPDX-License-Identifier: MIT

// Package statevar simulates linear RLC circuits with the state-variable
// method: the network graph is split into a spanning tree and chords, the
// fundamental-loop matrix ties chord voltages to tree voltages, resistor
// quantities are rewritten in terms of capacitor voltages, inductor
// currents and sources, and the resulting x' = A·x + B·u, y = C·x + D·u is
// integrated with forward Euler under a spectral-radius step bound.
//
// The pipeline is split into subpackages, one per stage:
//
//	element/     R, C, L, V, J value objects and validation
//	network/     undirected node/branch multigraph
//	bfs/         breadth-first search with context cancellation
//	topology/    spanning tree and chords (priority V, C, R, L)
//	matrix/      small dense matrices with checked access
//	loopmatrix/  fundamental loops and the signed chord × tree matrix
//	classify/    resistor substitution rules and variable indexing
//	statespace/  A, B, C, D, x0 with output and initial-condition policies
//	integrate/   forward Euler with divergence detection
//	analysis/    circuit type, recommended window, eigenvalues (gonum)
//	netlist/     text netlist reader
//	report/      Kirchhoff equations, matrices and result tables
//	render/      PNG, SVG and HTML waveform plots
//	presets/     demonstration circuits
//	simulator/   the whole pipeline behind one call
//
// The statevar command (cmd/statevar) exposes simulate, inspect and demo.
//
// Quick start:
//
//	res, err := simulator.Simulate(presets.RC())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Summary())
package statevar
