// SPDX-License-Identifier: MIT

package element

import (
	"fmt"
	"math"
	"sort"
)

// Element is an immutable two-terminal circuit element directed nodeA → nodeB.
type Element struct {
	id    string
	kind  Kind
	value float64
	nodeA int
	nodeB int
}

// New returns an element. It performs no validation; see Validate.
func New(id string, kind Kind, value float64, nodeA, nodeB int) Element {
	return Element{id: id, kind: kind, value: value, nodeA: nodeA, nodeB: nodeB}
}

// NewResistor returns a resistor of ohms between a and b.
func NewResistor(id string, ohms float64, a, b int) Element {
	return New(id, Resistor, ohms, a, b)
}

// NewCapacitor returns a capacitor of farads between a and b.
func NewCapacitor(id string, farads float64, a, b int) Element {
	return New(id, Capacitor, farads, a, b)
}

// NewInductor returns an inductor of henries between a and b.
func NewInductor(id string, henries float64, a, b int) Element {
	return New(id, Inductor, henries, a, b)
}

// NewVoltageSource returns a DC source with V(a) − V(b) = volts.
func NewVoltageSource(id string, volts float64, a, b int) Element {
	return New(id, VoltageSource, volts, a, b)
}

// NewCurrentSource returns a DC source driving amps through itself from a to b.
func NewCurrentSource(id string, amps float64, a, b int) Element {
	return New(id, CurrentSource, amps, a, b)
}

// ID returns the element identifier.
func (e Element) ID() string { return e.id }

// Kind returns the element kind.
func (e Element) Kind() Kind { return e.kind }

// Value returns resistance, capacitance, inductance or source magnitude.
func (e Element) Value() float64 { return e.value }

// NodeA returns the node the element exits.
func (e Element) NodeA() int { return e.nodeA }

// NodeB returns the node the element enters.
func (e Element) NodeB() int { return e.nodeB }

// Nodes returns (nodeA, nodeB).
func (e Element) Nodes() (int, int) { return e.nodeA, e.nodeB }

// Touches reports whether node is one of the element terminals.
func (e Element) Touches(node int) bool { return e.nodeA == node || e.nodeB == node }

// Other returns the terminal opposite to node. ok is false when node is not
// a terminal of e.
func (e Element) Other(node int) (other int, ok bool) {
	switch node {
	case e.nodeA:
		return e.nodeB, true
	case e.nodeB:
		return e.nodeA, true
	}
	return 0, false
}

// SameNodes reports whether e and o connect the identical node pair,
// irrespective of orientation.
func (e Element) SameNodes(o Element) bool {
	return (e.nodeA == o.nodeA && e.nodeB == o.nodeB) ||
		(e.nodeA == o.nodeB && e.nodeB == o.nodeA)
}

// Exits reports whether the element leaves node (node == nodeA).
func (e Element) Exits(node int) bool { return e.nodeA == node }

// Enters reports whether the element arrives at node (node == nodeB).
func (e Element) Enters(node int) bool { return e.nodeB == node }

// String renders the element as "R1(R=1000Ω, 1→2)".
func (e Element) String() string {
	return fmt.Sprintf("%s(%s=%g%s, %d→%d)",
		e.id, e.kind.Symbol(), e.value, e.kind.Unit(), e.nodeA, e.nodeB)
}

// Validate checks a whole element list and returns the first violation,
// wrapped with the offending element identifier.
// Complexity: O(n).
func Validate(elems []Element) error {
	if len(elems) == 0 {
		return ErrNoElements
	}
	seen := make(map[string]struct{}, len(elems))
	for i, e := range elems {
		if e.id == "" {
			return fmt.Errorf("element #%d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[e.id]; dup {
			return fmt.Errorf("element %q: %w", e.id, ErrDuplicateID)
		}
		seen[e.id] = struct{}{}
		if err := e.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks a single element.
func (e Element) Validate() error {
	if e.id == "" {
		return ErrEmptyID
	}
	if !e.kind.Valid() {
		return fmt.Errorf("element %q: %w (%d)", e.id, ErrUnknownKind, int(e.kind))
	}
	if e.nodeA == e.nodeB {
		return fmt.Errorf("element %q: %w (%d)", e.id, ErrSameNodes, e.nodeA)
	}
	if math.IsNaN(e.value) || math.IsInf(e.value, 0) {
		return fmt.Errorf("element %q: %w", e.id, ErrNonFinite)
	}
	if e.kind.IsPassive() && e.value <= 0 {
		return fmt.Errorf("element %q: %w (%g)", e.id, ErrNonPositive, e.value)
	}

	return nil
}

// Nodes returns the distinct node identifiers of elems in ascending order.
func Nodes(elems []Element) []int {
	set := make(map[int]struct{}, 2*len(elems))
	for _, e := range elems {
		set[e.nodeA] = struct{}{}
		set[e.nodeB] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)

	return out
}

// Filter returns the elements of the given kind, preserving input order.
func Filter(elems []Element, kind Kind) []Element {
	var out []Element
	for _, e := range elems {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many elements have the given kind.
func Count(elems []Element, kind Kind) int {
	n := 0
	for _, e := range elems {
		if e.kind == kind {
			n++
		}
	}
	return n
}
