// SPDX-License-Identifier: MIT

// Package element defines the immutable two-terminal circuit element used by
// every stage of the state-variable pipeline.
//
// What & Why:
//
//	An Element is a value object: kind, numeric value and the two nodes it
//	connects. Fields are unexported and the type is passed by value, so a
//	stage can never mutate an element owned by an earlier stage.
//
// Orientation:
//
//	Every element is directed nodeA → nodeB. It "exits" nodeA and "enters"
//	nodeB. Branch voltage is V(nodeA) − V(nodeB); branch current flows through
//	the element from nodeA to nodeB.
//
//	  - VoltageSource of value E imposes V(nodeA) − V(nodeB) = E.
//	  - CurrentSource of value J drives J through itself from nodeA to nodeB,
//	    i.e. it injects J into nodeB (SPICE "I n+ n-" convention).
//
// Errors:
//
//	ErrNoElements  - empty element list.
//	ErrEmptyID     - element without identifier.
//	ErrDuplicateID - two elements share an identifier.
//	ErrUnknownKind - kind outside the closed enumeration.
//	ErrSameNodes   - nodeA == nodeB.
//	ErrNonFinite   - NaN or ±Inf value.
//	ErrNonPositive - R, L or C value ≤ 0.
package element
