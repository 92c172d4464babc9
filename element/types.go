// SPDX-License-Identifier: MIT

package element

import (
	"errors"
	"fmt"
)

// Sentinel errors for element validation.
var (
	// ErrNoElements indicates an empty element list.
	ErrNoElements = errors.New("element: no elements")

	// ErrEmptyID indicates an element without identifier.
	ErrEmptyID = errors.New("element: empty id")

	// ErrDuplicateID indicates two elements with the same identifier.
	ErrDuplicateID = errors.New("element: duplicate id")

	// ErrUnknownKind indicates a kind outside the enumeration.
	ErrUnknownKind = errors.New("element: unknown kind")

	// ErrSameNodes indicates an element whose terminals coincide.
	ErrSameNodes = errors.New("element: nodeA equals nodeB")

	// ErrNonFinite indicates a NaN or ±Inf value.
	ErrNonFinite = errors.New("element: value is NaN or Inf")

	// ErrNonPositive indicates a passive element with value ≤ 0.
	ErrNonPositive = errors.New("element: passive value must be > 0")
)

// Kind is the closed enumeration of supported two-terminal elements.
type Kind int

// Element kinds. The zero value is invalid on purpose so that an
// uninitialised Element never validates.
const (
	Invalid Kind = iota
	Resistor
	Capacitor
	Inductor
	VoltageSource
	CurrentSource
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	Resistor:      "Resistor",
	Capacitor:     "Capacitor",
	Inductor:      "Inductor",
	VoltageSource: "VoltageSource",
	CurrentSource: "CurrentSource",
}

var kindSymbols = [...]string{
	Invalid:       "?",
	Resistor:      "R",
	Capacitor:     "C",
	Inductor:      "L",
	VoltageSource: "V",
	CurrentSource: "J",
}

var kindUnits = [...]string{
	Invalid:       "",
	Resistor:      "Ω",
	Capacitor:     "F",
	Inductor:      "H",
	VoltageSource: "V",
	CurrentSource: "A",
}

// Valid reports whether k is one of the five element kinds.
func (k Kind) Valid() bool { return k >= Resistor && k <= CurrentSource }

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Symbol returns the one-letter schematic symbol (R, C, L, V, J).
func (k Kind) Symbol() string {
	if k < 0 || int(k) >= len(kindSymbols) {
		return "?"
	}
	return kindSymbols[k]
}

// Unit returns the SI unit of the element value.
func (k Kind) Unit() string {
	if k < 0 || int(k) >= len(kindUnits) {
		return ""
	}
	return kindUnits[k]
}

// IsReactive reports whether the kind stores energy (capacitor or inductor).
func (k Kind) IsReactive() bool { return k == Capacitor || k == Inductor }

// IsSource reports whether the kind is an independent source.
func (k Kind) IsSource() bool { return k == VoltageSource || k == CurrentSource }

// IsPassive reports whether the kind is R, L or C.
func (k Kind) IsPassive() bool { return k == Resistor || k == Capacitor || k == Inductor }
