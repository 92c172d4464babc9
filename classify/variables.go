// SPDX-License-Identifier: MIT

package classify

import (
	"fmt"

	"github.com/katalvlaran/statevar/element"
)

// Variables indexes state variables and inputs.
type Variables struct {
	states   []element.Element
	inputs   []element.Element
	stateIdx map[string]int
	inputIdx map[string]int
}

// NewVariables scans elems once: states are capacitors then inductors,
// inputs are current sources then voltage sources, input order kept.
func NewVariables(elems []element.Element) *Variables {
	v := &Variables{
		stateIdx: make(map[string]int),
		inputIdx: make(map[string]int),
	}
	for _, k := range []element.Kind{element.Capacitor, element.Inductor} {
		for _, e := range element.Filter(elems, k) {
			v.stateIdx[e.ID()] = len(v.states)
			v.states = append(v.states, e)
		}
	}
	for _, k := range []element.Kind{element.CurrentSource, element.VoltageSource} {
		for _, e := range element.Filter(elems, k) {
			v.inputIdx[e.ID()] = len(v.inputs)
			v.inputs = append(v.inputs, e)
		}
	}
	return v
}

// NumStates returns n.
func (v *Variables) NumStates() int { return len(v.states) }

// NumInputs returns m.
func (v *Variables) NumInputs() int { return len(v.inputs) }

// States returns the state elements in index order.
func (v *Variables) States() []element.Element { return append([]element.Element(nil), v.states...) }

// Inputs returns the input elements in index order.
func (v *Variables) Inputs() []element.Element { return append([]element.Element(nil), v.inputs...) }

// State returns state element i.
func (v *Variables) State(i int) element.Element { return v.states[i] }

// Input returns input element i.
func (v *Variables) Input(i int) element.Element { return v.inputs[i] }

// StateIndex returns the state index of element id.
func (v *Variables) StateIndex(id string) (int, bool) {
	i, ok := v.stateIdx[id]
	return i, ok
}

// InputIndex returns the input index of element id.
func (v *Variables) InputIndex(id string) (int, bool) {
	i, ok := v.inputIdx[id]
	return i, ok
}

// Values returns the DC input vector u.
func (v *Variables) Values() []float64 {
	u := make([]float64, len(v.inputs))
	for i, e := range v.inputs {
		u[i] = e.Value()
	}
	return u
}

// Name renders a reference: u_C1 and i_L1 for states, the source id for inputs.
func (v *Variables) Name(r Ref) string {
	switch r.Space {
	case State:
		if r.Index >= 0 && r.Index < len(v.states) {
			return StateName(v.states[r.Index])
		}
	case Input:
		if r.Index >= 0 && r.Index < len(v.inputs) {
			return v.inputs[r.Index].ID()
		}
	}
	return fmt.Sprintf("?%d", r.Index)
}

// StateName returns "u_<id>" for a capacitor and "i_<id>" for an inductor.
func StateName(e element.Element) string {
	if e.Kind() == element.Capacitor {
		return "u_" + e.ID()
	}
	return "i_" + e.ID()
}

// stateForm returns the single-term form for the state of element id.
func (v *Variables) stateForm(id string) (Form, bool) {
	i, ok := v.stateIdx[id]
	if !ok {
		return nil, false
	}
	return Form{{Ref: StateRef(i), Coef: 1}}, true
}

// inputForm returns the single-term form for source id.
func (v *Variables) inputForm(id string) (Form, bool) {
	i, ok := v.inputIdx[id]
	if !ok {
		return nil, false
	}
	return Form{{Ref: InputRef(i), Coef: 1}}, true
}

// StateForm is the exported variant of stateForm for callers assembling equations.
func (v *Variables) StateForm(id string) (Form, bool) { return v.stateForm(id) }

// InputForm is the exported variant of inputForm.
func (v *Variables) InputForm(id string) (Form, bool) { return v.inputForm(id) }
