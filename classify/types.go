// SPDX-License-Identifier: MIT

package classify

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Sentinel errors for classification.
var (
	// ErrNotResistor is returned when Classify receives a non-resistor.
	ErrNotResistor = errors.New("classify: element is not a resistor")

	// ErrGraphMismatch is returned when the loop matrix was not built from the graph.
	ErrGraphMismatch = errors.New("classify: loop matrix does not belong to graph")

	// ErrUnknownElement is returned for an element id absent from the graph.
	ErrUnknownElement = errors.New("classify: element not in graph")

	// ErrUnknownMode is returned for a Mode outside Voltage/Current.
	ErrUnknownMode = errors.New("classify: unknown mode")
)

// Space selects the vector a Ref points into.
type Space int

const (
	// State addresses the state vector x.
	State Space = iota
	// Input addresses the input vector u.
	Input
)

// Ref addresses one state variable or one input.
type Ref struct {
	Space Space
	Index int
}

// StateRef returns a reference to state i.
func StateRef(i int) Ref { return Ref{Space: State, Index: i} }

// InputRef returns a reference to input i.
func InputRef(i int) Ref { return Ref{Space: Input, Index: i} }

// Term is one coefficient of a linear form.
type Term struct {
	Ref  Ref
	Coef float64
}

// Form is a linear combination of states and inputs. The zero value is 0.
// Forms returned by this package are canonical: one term per Ref, no zero
// coefficients, states before inputs, ascending index.
type Form []Term

// Coefficient returns the coefficient on r.
func (f Form) Coefficient(r Ref) float64 {
	sum := 0.0
	for _, t := range f {
		if t.Ref == r {
			sum += t.Coef
		}
	}
	return sum
}

// Scale returns k·f.
func (f Form) Scale(k float64) Form {
	out := make(Form, 0, len(f))
	for _, t := range f {
		out = append(out, Term{Ref: t.Ref, Coef: k * t.Coef})
	}
	return out.canonical()
}

// Plus returns f + k·g.
func (f Form) Plus(g Form, k float64) Form {
	out := make(Form, 0, len(f)+len(g))
	out = append(out, f...)
	for _, t := range g {
		out = append(out, Term{Ref: t.Ref, Coef: k * t.Coef})
	}
	return out.canonical()
}

// IsZero reports whether the form has no terms.
func (f Form) IsZero() bool { return len(f.canonical()) == 0 }

func (f Form) canonical() Form {
	acc := make(map[Ref]float64, len(f))
	for _, t := range f {
		acc[t.Ref] += t.Coef
	}
	out := make(Form, 0, len(acc))
	for r, c := range acc {
		if c != 0 {
			out = append(out, Term{Ref: r, Coef: c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ref.Space != out[j].Ref.Space {
			return out[i].Ref.Space < out[j].Ref.Space
		}
		return out[i].Ref.Index < out[j].Ref.Index
	})
	return out
}

// Format renders the form with variable names from vars, e.g.
// "-1000·u_C1 + 1000·V1", coefficients to six significant digits. The zero
// form renders as "0".
func (f Form) Format(vars *Variables) string {
	f = f.canonical()
	if len(f) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range f {
		c := t.Coef
		switch {
		case i == 0 && c < 0:
			sb.WriteString("-")
			c = -c
		case i > 0 && c < 0:
			sb.WriteString(" - ")
			c = -c
		case i > 0:
			sb.WriteString(" + ")
		}
		if c != 1 {
			fmt.Fprintf(&sb, "%.6g·", c)
		}
		sb.WriteString(vars.Name(t.Ref))
	}
	return sb.String()
}

// Mode selects which resistor quantity Classify expresses.
type Mode int

const (
	// Voltage asks for v_R (KVL contribution).
	Voltage Mode = iota
	// Current asks for i_R (KCL contribution).
	Current
)

func (m Mode) String() string {
	switch m {
	case Voltage:
		return "voltage"
	case Current:
		return "current"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Rule names the decision that produced a Result.
type Rule int

const (
	RuleSeriesInductor Rule = iota + 1
	RuleCurrentCutset
	RuleParallelCapacitor
	RuleVoltageLoop
	RuleAdjacency
	RuleElimination
	RuleUnresolved
)

var ruleNames = map[Rule]string{
	RuleSeriesInductor:    "series-inductor",
	RuleCurrentCutset:     "current-cutset",
	RuleParallelCapacitor: "parallel-capacitor",
	RuleVoltageLoop:       "voltage-loop",
	RuleAdjacency:         "adjacency",
	RuleElimination:       "elimination",
	RuleUnresolved:        "unresolved",
}

func (r Rule) String() string {
	if s, ok := ruleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// Result is the outcome of one classification.
type Result struct {
	Rule Rule
	Form Form

	// Related lists the ids of the elements the rule relied on.
	Related []string
}

// Coefficient returns the coefficient of res on ref; 0 when unresolved.
func Coefficient(res Result, ref Ref) float64 { return res.Form.Coefficient(ref) }

// Resolved reports whether a rule other than Unresolved matched.
func (r Result) Resolved() bool { return r.Rule != RuleUnresolved }

// Unresolved records a resistor no rule could express.
type Unresolved struct {
	ID     string
	Mode   Mode
	Reason string
}

// Option configures a Classifier.
type Option func(*Options)

// Options holds Classifier parameters.
type Options struct {
	Logger      *slog.Logger
	Elimination bool
}

// DefaultOptions enables elimination and logs with component=classify.
func DefaultOptions() Options {
	return Options{
		Logger:      slog.Default().With(slog.String("component", "classify")),
		Elimination: true,
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithoutElimination restricts the classifier to local rules 1 to 5.
func WithoutElimination() Option {
	return func(o *Options) { o.Elimination = false }
}
