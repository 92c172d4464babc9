// SPDX-License-Identifier: MIT

package classify

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/topology"
)

// Classifier resolves resistor voltages and currents over one partition.
// It is safe for concurrent use.
type Classifier struct {
	g    *topology.Graph
	lm   *loopmatrix.LoopMatrix
	vars *Variables
	opts Options

	elimOnce sync.Once
	elim     *elimination

	mu         sync.Mutex
	unresolved []Unresolved
	seen       map[Unresolved]bool
}

// New returns a Classifier for g and its loop matrix lm.
func New(g *topology.Graph, lm *loopmatrix.LoopMatrix, vars *Variables, opts ...Option) (*Classifier, error) {
	if g == nil || lm == nil || lm.Graph() != g {
		return nil, ErrGraphMismatch
	}
	if vars == nil {
		vars = NewVariables(g.Elements())
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Classifier{
		g:    g,
		lm:   lm,
		vars: vars,
		opts: o,
		seen: make(map[Unresolved]bool),
	}, nil
}

// Variables returns the state/input indexing in use.
func (c *Classifier) Variables() *Variables { return c.vars }

// Unresolved returns every (resistor, mode) pair no rule could express, in
// first-seen order.
func (c *Classifier) Unresolved() []Unresolved {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Unresolved(nil), c.unresolved...)
}

// Classify expresses the voltage (mode Voltage) or current (mode Current) of
// resistor r as a linear form, multiplied by relatedSign.
func (c *Classifier) Classify(r element.Element, relatedSign float64, mode Mode) (Result, error) {
	if r.Kind() != element.Resistor {
		return Result{}, fmt.Errorf("%w: %s", ErrNotResistor, r)
	}
	if mode != Voltage && mode != Current {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if _, ok := c.g.Find(r.ID()); !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownElement, r.ID())
	}

	res, current, ok := c.local(r)
	if !ok && c.opts.Elimination {
		res, current, ok = c.eliminated(r)
	}
	if !ok {
		c.record(r, mode)
		return Result{Rule: RuleUnresolved}, nil
	}

	// Convert between i_R and v_R through Ohm's law.
	k := relatedSign
	switch {
	case current && mode == Voltage:
		k *= r.Value()
	case !current && mode == Current:
		k /= r.Value()
	}
	res.Form = res.Form.Scale(k)
	return res, nil
}

// local applies rules 1 to 5. The boolean current reports whether the
// returned form is i_R (true) or v_R (false).
func (c *Classifier) local(r element.Element) (res Result, current, ok bool) {
	if j, isTree := c.g.TreeIndex(r.ID()); isTree {
		if res, ok = c.seriesInductor(r, j); ok {
			return res, true, true
		}
		if res, ok = c.currentCutset(j); ok {
			return res, true, true
		}
	} else if i, isChord := c.g.ChordIndex(r.ID()); isChord {
		if res, ok = c.parallelCapacitor(r, i); ok {
			return res, false, true
		}
		if res, ok = c.voltageLoop(i); ok {
			return res, false, true
		}
	}
	return c.adjacency(r)
}

// seriesInductor: tree R and chord L linked by M, joined at a node that
// only they touch.
func (c *Classifier) seriesInductor(r element.Element, j int) (Result, bool) {
	for _, i := range c.lm.LinkedChords(j) {
		l := c.g.ChordAt(i)
		if l.Kind() != element.Inductor || !c.seriesAt(r, l) {
			continue
		}
		f, _ := c.vars.stateForm(l.ID())
		return Result{
			Rule:    RuleSeriesInductor,
			Form:    f.Scale(c.lm.Sign(i, j)),
			Related: []string{l.ID()},
		}, true
	}
	return Result{}, false
}

// seriesAt reports whether a and b share a node of degree 2.
func (c *Classifier) seriesAt(a, b element.Element) bool {
	if a.SameNodes(b) {
		return false
	}
	n, ok := loopmatrix.CommonNode(a.NodeA(), a.NodeB(), b.NodeA(), b.NodeB())
	return ok && c.g.Degree(n) == 2
}

// currentCutset: every chord linked to tree R is an inductor or a current
// source and at least one is a source.
func (c *Classifier) currentCutset(j int) (Result, bool) {
	linked := c.lm.LinkedChords(j)
	var (
		f       Form
		related []string
		sources int
	)
	for _, i := range linked {
		ch := c.g.ChordAt(i)
		var part Form
		switch ch.Kind() {
		case element.Inductor:
			part, _ = c.vars.stateForm(ch.ID())
		case element.CurrentSource:
			part, _ = c.vars.inputForm(ch.ID())
			sources++
		default:
			return Result{}, false
		}
		f = f.Plus(part, c.lm.Sign(i, j))
		related = append(related, ch.ID())
	}
	if sources == 0 {
		return Result{}, false
	}
	return Result{Rule: RuleCurrentCutset, Form: f, Related: related}, true
}

// parallelCapacitor: chord R spans exactly the node pair of a linked tree
// capacitor.
func (c *Classifier) parallelCapacitor(r element.Element, i int) (Result, bool) {
	for _, j := range c.lm.LinkedTree(i) {
		tc := c.g.TreeAt(j)
		if tc.Kind() != element.Capacitor || !tc.SameNodes(r) {
			continue
		}
		f, _ := c.vars.stateForm(tc.ID())
		return Result{
			Rule:    RuleParallelCapacitor,
			Form:    f.Scale(-c.lm.Sign(i, j)),
			Related: []string{tc.ID()},
		}, true
	}
	return Result{}, false
}

// voltageLoop: the loop of chord R closes only through capacitors and
// voltage sources, with at least one source.
func (c *Classifier) voltageLoop(i int) (Result, bool) {
	var (
		f       Form
		related []string
		sources int
	)
	for _, j := range c.lm.LinkedTree(i) {
		tb := c.g.TreeAt(j)
		var part Form
		switch tb.Kind() {
		case element.Capacitor:
			part, _ = c.vars.stateForm(tb.ID())
		case element.VoltageSource:
			part, _ = c.vars.inputForm(tb.ID())
			sources++
		default:
			return Result{}, false
		}
		f = f.Plus(part, -c.lm.Sign(i, j))
		related = append(related, tb.ID())
	}
	if sources == 0 {
		return Result{}, false
	}
	return Result{Rule: RuleVoltageLoop, Form: f, Related: related}, true
}

// adjacency scans the elements incident to R's nodes for a series inductor
// or a parallel capacitor and reads the sign off the local orientation.
func (c *Classifier) adjacency(r element.Element) (Result, bool, bool) {
	for _, node := range []int{r.NodeA(), r.NodeB()} {
		for _, e := range c.g.Incident(node) {
			if e.ID() == r.ID() {
				continue
			}
			switch e.Kind() {
			case element.Inductor:
				if !c.seriesAt(r, e) {
					continue
				}
				f, _ := c.vars.stateForm(e.ID())
				s := loopmatrix.MeetSign(node, r.NodeA(), r.NodeB(), e.NodeA(), e.NodeB())
				return Result{Rule: RuleAdjacency, Form: f.Scale(s), Related: []string{e.ID()}}, true, true
			case element.Capacitor:
				if !e.SameNodes(r) {
					continue
				}
				f, _ := c.vars.stateForm(e.ID())
				s := 1.0
				if e.NodeA() != r.NodeA() {
					s = -1
				}
				return Result{Rule: RuleAdjacency, Form: f.Scale(s), Related: []string{e.ID()}}, false, true
			}
		}
	}
	return Result{}, false, false
}

func (c *Classifier) eliminated(r element.Element) (Result, bool, bool) {
	c.elimOnce.Do(func() {
		c.elim = solveResistive(c.g, c.lm, c.vars)
		if c.elim.err != nil {
			c.opts.Logger.Warn("resistive elimination unavailable", slog.String("reason", c.elim.err.Error()))
		}
	})
	if c.elim.err != nil {
		return Result{}, false, false
	}
	f, current, ok := c.elim.form(r.ID())
	if !ok {
		return Result{}, false, false
	}
	return Result{Rule: RuleElimination, Form: f}, current, true
}

func (c *Classifier) record(r element.Element, mode Mode) {
	u := Unresolved{ID: r.ID(), Mode: mode, Reason: "no rule matched"}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen[u] {
		return
	}
	c.seen[u] = true
	c.unresolved = append(c.unresolved, u)
	c.opts.Logger.Warn("resistor not expressible in state variables",
		slog.String("id", r.ID()), slog.String("mode", mode.String()))
}
