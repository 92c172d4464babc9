// SPDX-License-Identifier: MIT

package statespace

import (
	"fmt"

	"github.com/katalvlaran/statevar/classify"
	"github.com/katalvlaran/statevar/element"
)

// OutputRow is one output with its form y_k = Σ c·x + Σ d·u.
type OutputRow struct {
	Output
	Form classify.Form
}

// OutputPolicy chooses the rows of C and D.
type OutputPolicy interface {
	Rows(s *Scope) ([]OutputRow, error)
}

// OutputFunc adapts a function to OutputPolicy.
type OutputFunc func(s *Scope) ([]OutputRow, error)

// Rows calls f.
func (f OutputFunc) Rows(s *Scope) ([]OutputRow, error) { return f(s) }

// StateOutputs observes every state: C = I, D = 0.
func StateOutputs() OutputPolicy {
	return OutputFunc(func(s *Scope) ([]OutputRow, error) {
		n := s.vars.NumStates()
		out := make([]OutputRow, n)
		for k := 0; k < n; k++ {
			e := s.vars.State(k)
			out[k] = OutputRow{
				Output: Output{Name: classify.StateName(e), Unit: stateUnit(e)},
				Form:   classify.Form{{Ref: classify.StateRef(k), Coef: 1}},
			}
		}
		return out, nil
	})
}

func stateUnit(e element.Element) string {
	if e.Kind() == element.Capacitor {
		return "V"
	}
	return "A"
}

// Quantity is a named linear observable of the circuit.
type Quantity interface {
	// Name labels the output row.
	Name() string
	// Unit is "A" or "V".
	Unit() string
	// Form evaluates the quantity over s.
	Form(s *Scope) (classify.Form, error)
}

// Quantities observes the given quantities in order.
func Quantities(qs ...Quantity) OutputPolicy {
	return OutputFunc(func(s *Scope) ([]OutputRow, error) {
		out := make([]OutputRow, 0, len(qs))
		for _, q := range qs {
			f, err := q.Form(s)
			if err != nil {
				return nil, fmt.Errorf("statespace: output %q: %w", q.Name(), err)
			}
			out = append(out, OutputRow{Output: Output{Name: q.Name(), Unit: q.Unit()}, Form: f})
		}
		return out, nil
	})
}

// Branch is the current through or voltage across one element.
type Branch struct {
	id      string
	name    string
	voltage bool
}

// Current observes the current through element id (nodeA→nodeB).
func Current(id string) Branch { return Branch{id: id, name: "i_" + id} }

// Voltage observes V(nodeA) − V(nodeB) of element id.
func Voltage(id string) Branch { return Branch{id: id, name: "v_" + id, voltage: true} }

// Named returns a copy labelled name.
func (b Branch) Named(name string) Branch {
	b.name = name
	return b
}

// Name implements Quantity.
func (b Branch) Name() string { return b.name }

// Unit implements Quantity.
func (b Branch) Unit() string {
	if b.voltage {
		return "V"
	}
	return "A"
}

// Form implements Quantity.
func (b Branch) Form(s *Scope) (classify.Form, error) {
	if b.voltage {
		return s.Voltage(b.id)
	}
	return s.Current(b.id)
}

// Weighted scales a quantity inside a Combination.
type Weighted struct {
	Quantity Quantity
	Weight   float64
}

// Sum is a weighted sum of quantities, e.g. a source current minus the
// branch currents leaving its node.
type Sum struct {
	name  string
	parts []Weighted
}

// Combination returns the quantity Σ w·q.
func Combination(name string, parts ...Weighted) Sum {
	return Sum{name: name, parts: append([]Weighted(nil), parts...)}
}

// Name implements Quantity.
func (c Sum) Name() string { return c.name }

// Unit implements Quantity; it is the unit of the first part.
func (c Sum) Unit() string {
	if len(c.parts) == 0 {
		return ""
	}
	return c.parts[0].Quantity.Unit()
}

// Form implements Quantity.
func (c Sum) Form(s *Scope) (classify.Form, error) {
	var f classify.Form
	for _, p := range c.parts {
		g, err := p.Quantity.Form(s)
		if err != nil {
			return nil, err
		}
		f = f.Plus(g, p.Weight)
	}
	return f, nil
}
