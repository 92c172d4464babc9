// SPDX-License-Identifier: MIT

package classify

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/topology"
	"gonum.org/v1/gonum/mat"
)

var errDegenerateLink = errors.New("classify: resistor linked to a degenerate reactive branch")

// elimination holds the solved resistive sub-network: every tree resistor
// current and every chord resistor voltage as a form over states and inputs.
type elimination struct {
	forms   map[string]Form
	current map[string]bool
	err     error
}

func (e *elimination) form(id string) (Form, bool, bool) {
	f, ok := e.forms[id]
	return f, e.current[id], ok
}

// solveResistive writes the cutset equations of the tree resistors and the
// loop equations of the chord resistors,
//
//	i_t − Σ_c M[c,t]·v_c/R_c = Σ_k M[k,t]·i_k      (k: inductor or current-source chords)
//	v_c + Σ_t M[c,t]·R_t·i_t = −Σ_k M[c,k]·v_k     (k: capacitor or voltage-source tree branches)
//
// and solves K·X = F for all state and input columns at once.
func solveResistive(g *topology.Graph, lm *loopmatrix.LoopMatrix, vars *Variables) *elimination {
	out := &elimination{forms: map[string]Form{}, current: map[string]bool{}}

	var treeR, chordR []int
	for j, e := range g.Tree() {
		if e.Kind() == element.Resistor {
			treeR = append(treeR, j)
		}
	}
	for i, e := range g.Chords() {
		if e.Kind() == element.Resistor {
			chordR = append(chordR, i)
		}
	}
	a, b := len(treeR), len(chordR)
	size := a + b
	if size == 0 {
		return out
	}
	n, m := vars.NumStates(), vars.NumInputs()
	cols := n + m

	refCol := func(r Ref) int {
		if r.Space == State {
			return r.Index
		}
		return n + r.Index
	}

	K := mat.NewDense(size, size, nil)
	var F *mat.Dense
	if cols > 0 {
		F = mat.NewDense(size, cols, nil)
	}

	for p, j := range treeR {
		K.Set(p, p, 1)
		for q, i := range chordR {
			if s := lm.Sign(i, j); s != 0 {
				K.Set(p, a+q, -s/g.ChordAt(i).Value())
			}
		}
		for _, i := range lm.LinkedChords(j) {
			ch := g.ChordAt(i)
			var ref Ref
			switch ch.Kind() {
			case element.Resistor:
				continue
			case element.Inductor:
				k, _ := vars.StateIndex(ch.ID())
				ref = StateRef(k)
			case element.CurrentSource:
				k, _ := vars.InputIndex(ch.ID())
				ref = InputRef(k)
			default:
				out.err = fmt.Errorf("%w: %s in cutset of %s", errDegenerateLink, ch.ID(), g.TreeAt(j).ID())
				return out
			}
			F.Set(p, refCol(ref), F.At(p, refCol(ref))+lm.Sign(i, j))
		}
	}

	for q, i := range chordR {
		row := a + q
		K.Set(row, row, 1)
		for p, j := range treeR {
			if s := lm.Sign(i, j); s != 0 {
				K.Set(row, p, s*g.TreeAt(j).Value())
			}
		}
		for _, j := range lm.LinkedTree(i) {
			tb := g.TreeAt(j)
			var ref Ref
			switch tb.Kind() {
			case element.Resistor:
				continue
			case element.Capacitor:
				k, _ := vars.StateIndex(tb.ID())
				ref = StateRef(k)
			case element.VoltageSource:
				k, _ := vars.InputIndex(tb.ID())
				ref = InputRef(k)
			default:
				out.err = fmt.Errorf("%w: %s in loop of %s", errDegenerateLink, tb.ID(), g.ChordAt(i).ID())
				return out
			}
			F.Set(row, refCol(ref), F.At(row, refCol(ref))-lm.Sign(i, j))
		}
	}

	var X mat.Dense
	if cols > 0 {
		if err := X.Solve(K, F); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				out.err = fmt.Errorf("classify: resistive solve: %w", err)
				return out
			}
		}
	}

	rowForm := func(row int) Form {
		var f Form
		for col := 0; col < cols; col++ {
			v := X.At(row, col)
			if v == 0 {
				continue
			}
			ref := StateRef(col)
			if col >= n {
				ref = InputRef(col - n)
			}
			f = append(f, Term{Ref: ref, Coef: v})
		}
		return f.canonical()
	}
	for p, j := range treeR {
		id := g.TreeAt(j).ID()
		out.forms[id] = rowForm(p)
		out.current[id] = true
	}
	for q, i := range chordR {
		id := g.ChordAt(i).ID()
		out.forms[id] = rowForm(a + q)
		out.current[id] = false
	}
	return out
}
