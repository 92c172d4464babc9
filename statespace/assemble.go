// SPDX-License-Identifier: MIT

package statespace

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/statevar/classify"
	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/topology"
)

// Assembler builds Systems with a fixed set of options.
type Assembler struct {
	opts Options
}

// NewAssembler returns an Assembler configured by opts.
func NewAssembler(opts ...Option) *Assembler {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Assembler{opts: o}
}

// Assemble is shorthand for NewAssembler(opts...).Assemble.
func Assemble(elems []element.Element, g *topology.Graph, lm *loopmatrix.LoopMatrix, opts ...Option) (*System, error) {
	return NewAssembler(opts...).Assemble(elems, g, lm)
}

// Assemble derives A, B, C, D and x0 for elems, partitioned by g with loop
// matrix lm.
func (a *Assembler) Assemble(elems []element.Element, g *topology.Graph, lm *loopmatrix.LoopMatrix) (*System, error) {
	if g == nil || lm == nil {
		return nil, ErrNilInput
	}
	if err := checkConsistent(elems, g, lm); err != nil {
		return nil, err
	}
	log := a.opts.Logger

	vars := classify.NewVariables(elems)
	clsOpts := append([]classify.Option{classify.WithLogger(log)}, a.opts.Classifier...)
	cls, err := classify.New(g, lm, vars, clsOpts...)
	if err != nil {
		return nil, fmt.Errorf("statespace: %w", err)
	}
	sc := newScope(g, lm, vars, cls)
	n, m := vars.NumStates(), vars.NumInputs()

	// Tree capacitors: C·du/dt = cutset current.
	for j, tb := range g.Tree() {
		if tb.Kind() != element.Capacitor {
			continue
		}
		f, consumed, err := sc.treeCurrent(j)
		if err != nil {
			return nil, fmt.Errorf("statespace: %s: %w", tb.ID(), err)
		}
		if a.opts.ParallelDamping {
			f = a.damp(f, tb, elems, consumed, vars, log)
		}
		sc.rows[tb.ID()] = f.Scale(1 / tb.Value())
	}

	// Chord inductors: L·di/dt = loop voltage.
	for i, ch := range g.Chords() {
		if ch.Kind() != element.Inductor {
			continue
		}
		f, err := sc.chordVoltage(i)
		if err != nil {
			return nil, fmt.Errorf("statespace: %s: %w", ch.ID(), err)
		}
		sc.rows[ch.ID()] = f.Scale(1 / ch.Value())
	}

	// Capacitors closing a loop and inductors spanning a cutset inherit
	// their derivative from the rows above.
	for i, ch := range g.Chords() {
		if ch.Kind() != element.Capacitor {
			continue
		}
		var f classify.Form
		for _, j := range lm.LinkedTree(i) {
			tb := g.TreeAt(j)
			switch tb.Kind() {
			case element.Capacitor:
				f = f.Plus(sc.rows[tb.ID()], -lm.Sign(i, j))
			case element.VoltageSource:
			default:
				sc.warn(fmt.Sprintf("capacitor %s shares a loop with %s; its derivative ignores that branch", ch.ID(), tb.ID()))
			}
		}
		sc.rows[ch.ID()] = f
	}
	for j, tb := range g.Tree() {
		if tb.Kind() != element.Inductor {
			continue
		}
		var f classify.Form
		for _, i := range lm.LinkedChords(j) {
			ch := g.ChordAt(i)
			switch ch.Kind() {
			case element.Inductor:
				f = f.Plus(sc.rows[ch.ID()], lm.Sign(i, j))
			case element.CurrentSource:
			default:
				sc.warn(fmt.Sprintf("inductor %s shares a cutset with %s; its derivative ignores that branch", tb.ID(), ch.ID()))
			}
		}
		sc.rows[tb.ID()] = f
	}

	sys := &System{
		States: vars.States(),
		Inputs: vars.Inputs(),
		U:      vars.Values(),
		vars:   vars,
	}
	if sys.A, err = matrix.NewDense(n, n); err != nil {
		return nil, err
	}
	if sys.B, err = matrix.NewDense(n, m); err != nil {
		return nil, err
	}
	for k, e := range sys.States {
		f := sc.rows[e.ID()]
		if err := fill(sys.A, sys.B, k, f); err != nil {
			return nil, fmt.Errorf("statespace: row %s: %w", e.ID(), err)
		}
		sys.Equations = append(sys.Equations, Equation{Element: e, Form: f})
	}

	rows, err := a.opts.Outputs.Rows(sc)
	if err != nil {
		return nil, err
	}
	if sys.C, err = matrix.NewDense(len(rows), n); err != nil {
		return nil, err
	}
	if sys.D, err = matrix.NewDense(len(rows), m); err != nil {
		return nil, err
	}
	for k, r := range rows {
		if err := fill(sys.C, sys.D, k, r.Form); err != nil {
			return nil, fmt.Errorf("statespace: output %s: %w", r.Name, err)
		}
		sys.Outputs = append(sys.Outputs, r.Output)
	}

	x0, err := a.opts.Initial(sc)
	if err != nil {
		return nil, err
	}
	if len(x0) != n {
		return nil, fmt.Errorf("%w: %d, want %d", ErrInitialLength, len(x0), n)
	}
	consistentInitial(x0, g, lm, vars)
	sys.X0 = x0

	for _, u := range cls.Unresolved() {
		sc.warn(fmt.Sprintf("resistor %s %s not expressible; coefficient 0", u.ID, u.Mode))
	}
	sys.Warnings = append(sys.Warnings, sc.warnings...)
	for _, w := range sys.Warnings {
		log.Warn("assembly", slog.String("warning", w))
	}
	log.Debug("assembled", slog.Int("states", n), slog.Int("inputs", m), slog.Int("outputs", len(rows)))
	return sys, nil
}

// damp adds −u_C/R for every resistor on the capacitor's node pair whose
// current the cutset sum has not already included.
func (a *Assembler) damp(f classify.Form, c element.Element, elems []element.Element, consumed []string, vars *classify.Variables, log *slog.Logger) classify.Form {
	done := make(map[string]bool, len(consumed))
	for _, id := range consumed {
		done[id] = true
	}
	u, _ := vars.StateForm(c.ID())
	for _, r := range element.Filter(elems, element.Resistor) {
		if !r.SameNodes(c) || done[r.ID()] {
			continue
		}
		log.Debug("parallel damping", slog.String("capacitor", c.ID()), slog.String("resistor", r.ID()))
		f = f.Plus(u, -1/r.Value())
	}
	return f
}

// fill writes form f into row k of x (states) and u (inputs).
func fill(x, u *matrix.Dense, k int, f classify.Form) error {
	for _, t := range f {
		var err error
		if t.Ref.Space == classify.State {
			err = x.Add(k, t.Ref.Index, t.Coef)
		} else {
			err = u.Add(k, t.Ref.Index, t.Coef)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// consistentInitial overwrites the initial value of loop capacitors and
// cutset inductors whose constraint involves only states and sources.
func consistentInitial(x0 []float64, g *topology.Graph, lm *loopmatrix.LoopMatrix, vars *classify.Variables) {
	value := func(e element.Element, state, source element.Kind) (float64, bool) {
		switch e.Kind() {
		case state:
			k, _ := vars.StateIndex(e.ID())
			return x0[k], true
		case source:
			return e.Value(), true
		}
		return 0, false
	}
	for i, ch := range g.Chords() {
		if ch.Kind() != element.Capacitor {
			continue
		}
		sum, ok := 0.0, true
		for _, j := range lm.LinkedTree(i) {
			v, known := value(g.TreeAt(j), element.Capacitor, element.VoltageSource)
			if !known {
				ok = false
				break
			}
			sum -= lm.Sign(i, j) * v
		}
		if ok {
			k, _ := vars.StateIndex(ch.ID())
			x0[k] = sum
		}
	}
	for j, tb := range g.Tree() {
		if tb.Kind() != element.Inductor {
			continue
		}
		sum, ok := 0.0, true
		for _, i := range lm.LinkedChords(j) {
			v, known := value(g.ChordAt(i), element.Inductor, element.CurrentSource)
			if !known {
				ok = false
				break
			}
			sum += lm.Sign(i, j) * v
		}
		if ok {
			k, _ := vars.StateIndex(tb.ID())
			x0[k] = sum
		}
	}
}

func checkConsistent(elems []element.Element, g *topology.Graph, lm *loopmatrix.LoopMatrix) error {
	if lm.Graph() != g {
		return fmt.Errorf("%w: loop matrix built from another graph", ErrMismatch)
	}
	if len(elems) != g.TreeLen()+g.ChordLen() {
		return fmt.Errorf("%w: %d elements, graph holds %d", ErrMismatch, len(elems), g.TreeLen()+g.ChordLen())
	}
	for _, e := range elems {
		ge, ok := g.Find(e.ID())
		if !ok || ge != e {
			return fmt.Errorf("%w: %s", ErrMismatch, e.ID())
		}
	}
	return nil
}
