// SPDX-License-Identifier: MIT

package statespace

import (
	"fmt"

	"github.com/katalvlaran/statevar/classify"
	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/topology"
)

// Scope exposes the derived branch quantities of one assembly to output
// and initial-condition policies. Every quantity is a linear form over
// states and inputs.
type Scope struct {
	graph *topology.Graph
	loops *loopmatrix.LoopMatrix
	vars  *classify.Variables
	cls   *classify.Classifier

	// rows maps a state id to its dx/dt form once assembled.
	rows map[string]classify.Form

	warnings []string
	warned   map[string]bool
}

func newScope(g *topology.Graph, lm *loopmatrix.LoopMatrix, vars *classify.Variables, cls *classify.Classifier) *Scope {
	return &Scope{
		graph:  g,
		loops:  lm,
		vars:   vars,
		cls:    cls,
		rows:   make(map[string]classify.Form),
		warned: make(map[string]bool),
	}
}

// Graph returns the tree/chord partition.
func (s *Scope) Graph() *topology.Graph { return s.graph }

// Variables returns the state/input indexing.
func (s *Scope) Variables() *classify.Variables { return s.vars }

// Derivative returns the dx/dt form of the state held by element id.
func (s *Scope) Derivative(id string) (classify.Form, bool) {
	f, ok := s.rows[id]
	return f, ok
}

// Current returns the current through element id, oriented nodeA→nodeB.
func (s *Scope) Current(id string) (classify.Form, error) {
	e, ok := s.graph.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuantity, id)
	}
	switch e.Kind() {
	case element.Resistor:
		return s.resistor(e, 1, classify.Current)
	case element.Inductor:
		f, _ := s.vars.StateForm(id)
		return f, nil
	case element.CurrentSource:
		f, _ := s.vars.InputForm(id)
		return f, nil
	case element.Capacitor:
		return s.rows[id].Scale(e.Value()), nil
	}
	if j, ok := s.graph.TreeIndex(id); ok {
		f, _, err := s.treeCurrent(j)
		return f, err
	}
	s.warn(fmt.Sprintf("current of %s is not determined by the state", id))
	return nil, nil
}

// Voltage returns V(nodeA) − V(nodeB) of element id.
func (s *Scope) Voltage(id string) (classify.Form, error) {
	e, ok := s.graph.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuantity, id)
	}
	switch e.Kind() {
	case element.Resistor:
		return s.resistor(e, 1, classify.Voltage)
	case element.Capacitor:
		f, _ := s.vars.StateForm(id)
		return f, nil
	case element.VoltageSource:
		f, _ := s.vars.InputForm(id)
		return f, nil
	case element.Inductor:
		return s.rows[id].Scale(e.Value()), nil
	}
	if i, ok := s.graph.ChordIndex(id); ok {
		return s.chordVoltage(i)
	}
	s.warn(fmt.Sprintf("voltage of %s is not determined by the state", id))
	return nil, nil
}

func (s *Scope) resistor(r element.Element, sign float64, mode classify.Mode) (classify.Form, error) {
	res, err := s.cls.Classify(r, sign, mode)
	if err != nil {
		return nil, err
	}
	return res.Form, nil
}

// treeCurrent is the cutset sum Σ_i M[i,j]·i_chord(i). It also returns the
// ids of the chord resistors whose current the sum resolved.
func (s *Scope) treeCurrent(j int) (classify.Form, []string, error) {
	var (
		f        classify.Form
		consumed []string
	)
	for _, i := range s.loops.LinkedChords(j) {
		ch := s.graph.ChordAt(i)
		m := s.loops.Sign(i, j)
		switch ch.Kind() {
		case element.Resistor:
			res, err := s.cls.Classify(ch, m, classify.Current)
			if err != nil {
				return nil, nil, err
			}
			if res.Resolved() {
				consumed = append(consumed, ch.ID())
			}
			f = f.Plus(res.Form, 1)
		case element.Inductor:
			x, _ := s.vars.StateForm(ch.ID())
			f = f.Plus(x, m)
		case element.CurrentSource:
			u, _ := s.vars.InputForm(ch.ID())
			f = f.Plus(u, m)
		default:
			s.warn(fmt.Sprintf("current of chord %s in cutset of %s treated as 0", ch.ID(), s.graph.TreeAt(j).ID()))
		}
	}
	return f, consumed, nil
}

// chordVoltage is the loop sum −Σ_j M[i,j]·v_tree(j).
func (s *Scope) chordVoltage(i int) (classify.Form, error) {
	var f classify.Form
	for _, j := range s.loops.LinkedTree(i) {
		tb := s.graph.TreeAt(j)
		m := s.loops.Sign(i, j)
		switch tb.Kind() {
		case element.Resistor:
			res, err := s.cls.Classify(tb, -m, classify.Voltage)
			if err != nil {
				return nil, err
			}
			f = f.Plus(res.Form, 1)
		case element.Capacitor:
			x, _ := s.vars.StateForm(tb.ID())
			f = f.Plus(x, -m)
		case element.VoltageSource:
			u, _ := s.vars.InputForm(tb.ID())
			f = f.Plus(u, -m)
		default:
			s.warn(fmt.Sprintf("voltage of tree branch %s in loop of %s treated as 0", tb.ID(), s.graph.ChordAt(i).ID()))
		}
	}
	return f, nil
}

func (s *Scope) warn(msg string) {
	if s.warned[msg] {
		return
	}
	s.warned[msg] = true
	s.warnings = append(s.warnings, msg)
}
