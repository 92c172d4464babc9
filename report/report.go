// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/statespace"
)

// DefaultRows is the number of evenly spaced samples Results prints.
const DefaultRows = 11

// ErrNilInput is returned when a writer receives a nil model.
var ErrNilInput = errors.New("report: nil input")

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// table writes tab-separated rows aligned by a tabwriter.
func (p *printer) table(header []string, rows [][]string) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if header != nil {
		fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	}
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t")+"\t")
	}
	p.err = tw.Flush()
}

// GraphInfo prints the tree branches, the chords and the loop matrix.
func GraphInfo(w io.Writer, lm *loopmatrix.LoopMatrix) error {
	if lm == nil {
		return ErrNilInput
	}
	g := lm.Graph()
	p := &printer{w: w}
	p.printf("Nodes: %d\n", g.NodeCount())
	p.printf("Tree branches (%d):\n", g.TreeLen())
	for _, e := range g.Tree() {
		p.branch(e)
	}
	p.printf("Chords (%d):\n", g.ChordLen())
	for _, e := range g.Chords() {
		p.branch(e)
	}
	if lm.Rows() == 0 || lm.Cols() == 0 {
		p.printf("Loop matrix: empty (%d×%d)\n", lm.Rows(), lm.Cols())
		return p.err
	}

	p.printf("Loop matrix M (chords × tree):\n")
	header := []string{""}
	for _, e := range g.Tree() {
		header = append(header, e.ID())
	}
	rows := make([][]string, lm.Rows())
	for i := range rows {
		rows[i] = append(rows[i], g.ChordAt(i).ID())
		for j := 0; j < lm.Cols(); j++ {
			rows[i] = append(rows[i], signCell(lm.Sign(i, j)))
		}
	}
	p.table(header, rows)
	return p.err
}

func (p *printer) branch(e element.Element) {
	p.printf("  %-4s %-10s %d→%d\n", e.ID(), FormatValue(e), e.NodeA(), e.NodeB())
}

func signCell(s float64) string {
	switch {
	case s > 0:
		return "+1"
	case s < 0:
		return "-1"
	}
	return "0"
}

// signed is one term of a Kirchhoff sum.
type signed struct {
	sign float64
	text string
}

func joinSigned(terms []signed) string {
	if len(terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range terms {
		switch {
		case i == 0 && t.sign < 0:
			sb.WriteString("-")
		case i > 0 && t.sign < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}

// voltageOf is the branch voltage with the element law substituted.
func voltageOf(e element.Element) string {
	switch e.Kind() {
	case element.Resistor:
		return FormatValue(e) + "·i_" + e.ID()
	case element.Capacitor:
		return "u_" + e.ID()
	case element.Inductor:
		return FormatValue(e) + "·di_" + e.ID() + "/dt"
	case element.VoltageSource:
		return FormatValue(e)
	default:
		return "v_" + e.ID()
	}
}

// currentOf is the branch current with the element law substituted.
func currentOf(e element.Element) string {
	switch e.Kind() {
	case element.Resistor:
		return "v_" + e.ID() + "/" + FormatValue(e)
	case element.Capacitor:
		return FormatValue(e) + "·du_" + e.ID() + "/dt"
	case element.CurrentSource:
		return FormatValue(e)
	default:
		return "i_" + e.ID()
	}
}

// KVL returns the voltage law of chord i's fundamental loop, symbolic
// ("v_R1 + v_C1 - v_V1 = 0") and with element laws substituted.
func KVL(lm *loopmatrix.LoopMatrix, i int) (symbolic, substituted string) {
	g := lm.Graph()
	chord := g.ChordAt(i)
	sym := []signed{{1, "v_" + chord.ID()}}
	sub := []signed{{1, voltageOf(chord)}}
	for _, j := range lm.LinkedTree(i) {
		t := g.TreeAt(j)
		s := lm.Sign(i, j)
		sym = append(sym, signed{s, "v_" + t.ID()})
		sub = append(sub, signed{s, voltageOf(t)})
	}
	return joinSigned(sym) + " = 0", joinSigned(sub) + " = 0"
}

// KCL returns the cutset current law of tree branch j, symbolic
// ("i_C1 = i_R1") and with element laws substituted.
func KCL(lm *loopmatrix.LoopMatrix, j int) (symbolic, substituted string) {
	g := lm.Graph()
	branch := g.TreeAt(j)
	var sym, sub []signed
	for _, i := range lm.LinkedChords(j) {
		c := g.ChordAt(i)
		s := lm.Sign(i, j)
		sym = append(sym, signed{s, "i_" + c.ID()})
		sub = append(sub, signed{s, currentOf(c)})
	}
	return "i_" + branch.ID() + " = " + joinSigned(sym),
		currentOf(branch) + " = " + joinSigned(sub)
}

// Kirchhoff prints one KVL per chord and one KCL per tree branch.
func Kirchhoff(w io.Writer, lm *loopmatrix.LoopMatrix) error {
	if lm == nil {
		return ErrNilInput
	}
	g := lm.Graph()
	p := &printer{w: w}
	p.printf("KVL (one per chord):\n")
	for i := 0; i < g.ChordLen(); i++ {
		sym, sub := KVL(lm, i)
		p.printf("  %-6s %s\n         %s\n", g.ChordAt(i).ID()+":", sym, sub)
	}
	p.printf("KCL (one per tree branch):\n")
	for j := 0; j < g.TreeLen(); j++ {
		sym, sub := KCL(lm, j)
		p.printf("  %-6s %s\n         %s\n", g.TreeAt(j).ID()+":", sym, sub)
	}
	return p.err
}

// Equations prints the state equations and any assembly warnings.
func Equations(w io.Writer, sys *statespace.System) error {
	if sys == nil {
		return ErrNilInput
	}
	p := &printer{w: w}
	p.printf("State equations:\n")
	if len(sys.Equations) == 0 {
		p.printf("  (none: resistive network)\n")
	}
	for _, eq := range sys.Equations {
		p.printf("  %s\n", eq.Format(sys.Variables()))
	}
	for _, msg := range sys.Warnings {
		p.printf("warning: %s\n", msg)
	}
	return p.err
}

func (p *printer) matrix(name string, m *matrix.Dense, rowNames, colNames []string) {
	r, c := m.Shape()
	if r == 0 || c == 0 {
		p.printf("%s: empty (%d×%d)\n", name, r, c)
		return
	}
	p.printf("%s =\n", name)
	rows := m.RawRows()
	out := make([][]string, r)
	for i, row := range rows {
		out[i] = append(out[i], rowNames[i])
		for _, v := range row {
			out[i] = append(out[i], formatNumber(v))
		}
	}
	p.table(append([]string{""}, colNames...), out)
}

// Matrices prints A, B, C, D and x0 with state, input and output labels.
func Matrices(w io.Writer, sys *statespace.System) error {
	if sys == nil {
		return ErrNilInput
	}
	states := sys.StateNames()
	inputs := make([]string, sys.M())
	for i, e := range sys.Inputs {
		inputs[i] = e.ID()
	}
	outputs := make([]string, sys.P())
	for i, o := range sys.Outputs {
		outputs[i] = o.Name
	}

	p := &printer{w: w}
	p.printf("n=%d states, m=%d inputs, p=%d outputs\n", sys.N(), sys.M(), sys.P())
	p.matrix("A", sys.A, states, states)
	p.matrix("B", sys.B, states, inputs)
	p.matrix("C", sys.C, outputs, states)
	p.matrix("D", sys.D, outputs, inputs)
	if sys.M() > 0 {
		u := make([]string, sys.M())
		for i, e := range sys.Inputs {
			u[i] = fmt.Sprintf("%s=%s", e.ID(), FormatValue(e))
		}
		p.printf("u = [%s]\n", strings.Join(u, ", "))
	}
	x0 := make([]string, sys.N())
	for i, v := range sys.X0 {
		x0[i] = fmt.Sprintf("%s=%s", states[i], formatNumber(v))
	}
	p.printf("x0 = [%s]\n", strings.Join(x0, ", "))
	return p.err
}

// SampleIndices returns rows evenly spaced indices into a series of length
// n, always including the first and last sample.
func SampleIndices(n, rows int) []int {
	if n <= 0 || rows <= 0 {
		return nil
	}
	if rows == 1 || n == 1 {
		return []int{n - 1}
	}
	out := make([]int, 0, rows)
	last := -1
	for i := 0; i < rows; i++ {
		k := (i*(n-1) + (rows-1)/2) / (rows - 1)
		if k != last {
			out = append(out, k)
			last = k
		}
	}
	return out
}

// Results prints rows evenly spaced samples of the trace: time, states,
// then outputs. rows <= 0 selects DefaultRows.
func Results(w io.Writer, tr *integrate.Trace, sys *statespace.System, rows int) error {
	if tr == nil || sys == nil {
		return ErrNilInput
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	p := &printer{w: w}
	p.printf("Simulation: %d steps of %s (requested %s), status %s\n",
		tr.Steps, FormatSI(tr.Step, "s"), FormatSI(tr.Requested, "s"), tr.Status)
	if tr.Len() == 0 {
		p.printf("  (no samples)\n")
		return p.err
	}

	header := append([]string{"t"}, sys.StateNames()...)
	for _, o := range sys.Outputs {
		header = append(header, o.Name)
	}
	var out [][]string
	for _, k := range SampleIndices(tr.Len(), rows) {
		t, x, y, _ := tr.Sample(k)
		row := []string{FormatSI(t, "s")}
		for _, v := range x {
			row = append(row, formatNumber(v))
		}
		for _, v := range y {
			row = append(row, formatNumber(v))
		}
		out = append(out, row)
	}
	p.table(header, out)
	return p.err
}
