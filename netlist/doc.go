// SPDX-License-Identifier: MIT

// Package netlist reads circuits from a line-oriented text format:
//
//	# name  type  value  nodeA  nodeB
//	R1      R     1k     1      2
//	C1      C     1u     2      0
//	V1      V     5      1      0
//
// Blank lines and lines starting with "//", "#" or "*" are skipped. Fields
// after the fifth are ignored. Type aliases are case-insensitive:
//
//	resistor        r, resistor
//	capacitor       c, capacitor
//	inductor        l, inductor
//	voltage source  v, vs, voltagesource
//	current source  i, j, cs, currentsource
//
// Values accept a decimal comma, an exponent and one engineering suffix
// (f p n u m k meg g t, case-insensitive); trailing unit letters such as
// "1kOhm" or "10mH" are ignored. As in SPICE, "f" is femto: "1F" reads as
// 1e-15. A capacitor written with a bare "F" suffix is logged as a warning;
// "1fF" states the femtofarad intent and "1" is one farad.
//
// Errors carry the line number as *ParseError and wrap ErrTooFewFields,
// ErrUnknownKind, ErrBadValue or ErrBadNode. With WithLenient, short lines
// are logged and skipped instead.
package netlist
