// SPDX-License-Identifier: MIT

package statespace

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/statevar/classify"
	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/matrix"
)

// Sentinel errors for assembly.
var (
	// ErrNilInput is returned when the graph or loop matrix is nil.
	ErrNilInput = errors.New("statespace: nil graph or loop matrix")

	// ErrMismatch is returned when elements, graph and loop matrix disagree.
	ErrMismatch = errors.New("statespace: elements do not match graph")

	// ErrUnknownQuantity is returned for an output naming an absent element.
	ErrUnknownQuantity = errors.New("statespace: unknown element in output")

	// ErrUnknownState is returned by FixedInitial for an id that is not a state.
	ErrUnknownState = errors.New("statespace: unknown state variable")

	// ErrInitialLength is returned when an initial-condition policy yields
	// a vector of the wrong length.
	ErrInitialLength = errors.New("statespace: initial state has wrong length")
)

// Output describes one row of y.
type Output struct {
	Name string
	Unit string
}

// Equation is one assembled state equation: d(state)/dt = Form.
type Equation struct {
	Element element.Element
	Form    classify.Form
}

// Format renders the equation, e.g. "du_C1/dt = -1000·u_C1 + 1000·V1".
func (e Equation) Format(vars *classify.Variables) string {
	return fmt.Sprintf("d%s/dt = %s", classify.StateName(e.Element), e.Form.Format(vars))
}

// System is an assembled state-space model. All matrices are owned by the
// System; treat them as read-only.
type System struct {
	A, B, C, D *matrix.Dense
	X0         []float64

	States  []element.Element
	Inputs  []element.Element
	U       []float64
	Outputs []Output

	Equations []Equation
	Warnings  []string

	vars *classify.Variables
}

// N returns the number of states.
func (s *System) N() int { return len(s.States) }

// M returns the number of inputs.
func (s *System) M() int { return len(s.Inputs) }

// P returns the number of outputs.
func (s *System) P() int { return len(s.Outputs) }

// Variables returns the state/input indexing the system was built with.
func (s *System) Variables() *classify.Variables { return s.vars }

// InputVector returns a copy of u.
func (s *System) InputVector() []float64 { return append([]float64(nil), s.U...) }

// InitialState returns a copy of x0.
func (s *System) InitialState() []float64 { return append([]float64(nil), s.X0...) }

// Outputs0 evaluates y = C·x0 + D·u. For a purely resistive network (n == 0)
// this is the whole solution.
func (s *System) Outputs0() ([]float64, error) {
	y := make([]float64, s.P())
	if err := matrix.MulAdd(y, s.C, s.X0, s.D, s.U); err != nil {
		return nil, fmt.Errorf("statespace: outputs: %w", err)
	}
	return y, nil
}

// StateNames returns u_<id>/i_<id> for every state.
func (s *System) StateNames() []string {
	out := make([]string, len(s.States))
	for i, e := range s.States {
		out[i] = classify.StateName(e)
	}
	return out
}

// Option configures an Assembler.
type Option func(*Options)

// Options holds Assembler parameters.
type Options struct {
	Logger          *slog.Logger
	Outputs         OutputPolicy
	Initial         InitialConditionPolicy
	ParallelDamping bool
	Classifier      []classify.Option
}

// DefaultOptions returns y = x, ExciteSourceless(1) and parallel damping on.
func DefaultOptions() Options {
	return Options{
		Logger:          slog.Default().With(slog.String("component", "statespace")),
		Outputs:         StateOutputs(),
		Initial:         ExciteSourceless(1.0),
		ParallelDamping: true,
	}
}

// WithLogger sets the logger, also passed on to the classifier.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOutputs selects the output policy. nil keeps the default.
func WithOutputs(p OutputPolicy) Option {
	return func(o *Options) {
		if p != nil {
			o.Outputs = p
		}
	}
}

// WithInitial selects the initial-condition policy. nil keeps the default.
func WithInitial(p InitialConditionPolicy) Option {
	return func(o *Options) {
		if p != nil {
			o.Initial = p
		}
	}
}

// WithParallelDamping toggles the −1/(R·C) term for parallel resistors not
// covered by the cutset sum.
func WithParallelDamping(on bool) Option {
	return func(o *Options) { o.ParallelDamping = on }
}

// WithClassifierOptions forwards options to the resistor classifier.
func WithClassifierOptions(opts ...classify.Option) Option {
	return func(o *Options) { o.Classifier = append(o.Classifier, opts...) }
}
