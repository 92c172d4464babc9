// SPDX-License-Identifier: MIT

package analysis

import (
	"math"

	"github.com/katalvlaran/statevar/element"
)

// CircuitType is a coarse label from the passive kinds present.
type CircuitType int

// Circuit types, named after the passive kinds present.
const (
	// Resistive has no capacitor and no inductor.
	Resistive CircuitType = iota
	// RC has resistors and capacitors.
	RC
	// RL has resistors and inductors.
	RL
	// LC has capacitors and inductors but no resistor.
	LC
	// RLC has all three passive kinds.
	RLC
	// C has capacitors only.
	C
	// L has inductors only.
	L
)

var typeNames = [...]string{"Resistive", "RC", "RL", "LC", "RLC", "C", "L"}

// String returns the label used in reports, or "Unknown".
func (t CircuitType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Classify labels elems by which of R, L and C occur.
func Classify(elems []element.Element) CircuitType {
	r := element.Count(elems, element.Resistor) > 0
	l := element.Count(elems, element.Inductor) > 0
	c := element.Count(elems, element.Capacitor) > 0
	switch {
	case r && l && c:
		return RLC
	case r && c:
		return RC
	case r && l:
		return RL
	case l && c:
		return LC
	case c:
		return C
	case l:
		return L
	}
	return Resistive
}

// Default window for circuits without a natural time scale.
const (
	DefaultTotal = 0.01
	DefaultStep  = 1e-4
)

// Recommend returns a simulation window sized to the circuit's natural
// period or time constant.
func Recommend(elems []element.Element) (total, step float64) {
	first := func(k element.Kind) float64 {
		if f := element.Filter(elems, k); len(f) > 0 {
			return f[0].Value()
		}
		return 0
	}
	minR := math.Inf(1)
	for _, r := range element.Filter(elems, element.Resistor) {
		minR = math.Min(minR, r.Value())
	}

	switch Classify(elems) {
	case RLC:
		period := 2 * math.Pi * math.Sqrt(first(element.Inductor)*first(element.Capacitor))
		return 5 * period, period / 100
	case LC:
		period := 2 * math.Pi * math.Sqrt(first(element.Inductor)*first(element.Capacitor))
		return 3 * period, period / 200
	case RC:
		tau := first(element.Capacitor) * minR
		return 5 * tau, tau / 100
	case RL:
		tau := first(element.Inductor) / minR
		return 5 * tau, tau / 100
	}
	return DefaultTotal, DefaultStep
}
