// SPDX-License-Identifier: MIT

package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/statevar/analysis"
	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/statespace"
	"github.com/katalvlaran/statevar/topology"
)

// Stage names used when wrapping errors.
const (
	StageValidate  = "validate"
	StageTopology  = "topology"
	StageSpanning  = "spanning"
	StageLoops     = "loopmatrix"
	StageAssemble  = "statespace"
	StageIntegrate = "integrate"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return "simulator: " + e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// Result bundles every intermediate product of a run.
type Result struct {
	Elements []element.Element
	Graph    *topology.Graph
	Loops    *loopmatrix.LoopMatrix
	System   *statespace.System
	Trace    *integrate.Trace

	Type  analysis.CircuitType
	Total float64
	Step  float64
}

// Option configures Simulate.
type Option func(*Options)

// Options holds simulator parameters.
type Options struct {
	Ctx    context.Context
	Logger *slog.Logger

	// Total and Step; values <= 0 are recommended from the circuit.
	Total, Step float64

	AllowDisconnected bool

	Assembler  []statespace.Option
	Integrator []integrate.Option
}

// DefaultOptions returns a background context and a recommended window.
func DefaultOptions() Options {
	return Options{
		Ctx:    context.Background(),
		Logger: slog.Default().With(slog.String("component", "simulator")),
	}
}

// WithContext sets the context shared by every stage.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger sets the logger; each stage adds a stage attribute.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithWindow sets the simulated time and the requested step.
func WithWindow(total, step float64) Option {
	return func(o *Options) { o.Total, o.Step = total, step }
}

// WithOutputs selects the output policy.
func WithOutputs(p statespace.OutputPolicy) Option {
	return func(o *Options) { o.Assembler = append(o.Assembler, statespace.WithOutputs(p)) }
}

// WithInitialConditions selects the initial-condition policy.
func WithInitialConditions(p statespace.InitialConditionPolicy) Option {
	return func(o *Options) { o.Assembler = append(o.Assembler, statespace.WithInitial(p)) }
}

// WithAssembler forwards options to the state-space assembler.
func WithAssembler(opts ...statespace.Option) Option {
	return func(o *Options) { o.Assembler = append(o.Assembler, opts...) }
}

// WithIntegrator forwards options to the integrator.
func WithIntegrator(opts ...integrate.Option) Option {
	return func(o *Options) { o.Integrator = append(o.Integrator, opts...) }
}

// WithAllowDisconnected skips the spanning-tree check; loops without a tree
// path are then left as zero rows.
func WithAllowDisconnected() Option {
	return func(o *Options) { o.AllowDisconnected = true }
}

func (o Options) stage(name string) *slog.Logger {
	return o.Logger.With(slog.String("stage", name))
}

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Prepare runs every stage up to and including assembly.
func Prepare(elems []element.Element, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return prepare(elems, o)
}

func prepare(elems []element.Element, o Options) (*Result, error) {
	if err := element.Validate(elems); err != nil {
		return nil, stageErr(StageValidate, err)
	}
	res := &Result{
		Elements: append([]element.Element(nil), elems...),
		Type:     analysis.Classify(elems),
	}

	g, err := topology.Build(elems, topology.WithContext(o.Ctx), topology.WithLogger(o.stage(StageTopology)))
	if err != nil {
		return nil, stageErr(StageTopology, err)
	}
	res.Graph = g
	if !o.AllowDisconnected {
		if err := g.CheckSpanning(); err != nil {
			return res, stageErr(StageSpanning, err)
		}
	}

	lm, err := loopmatrix.Build(g, loopmatrix.WithContext(o.Ctx), loopmatrix.WithLogger(o.stage(StageLoops)))
	if err != nil {
		return res, stageErr(StageLoops, err)
	}
	res.Loops = lm

	asm := append([]statespace.Option{statespace.WithLogger(o.stage(StageAssemble))}, o.Assembler...)
	sys, err := statespace.Assemble(elems, g, lm, asm...)
	if err != nil {
		return res, stageErr(StageAssemble, err)
	}
	res.System = sys
	for _, w := range sys.Warnings {
		o.Logger.Warn("assembly", slog.String("warning", w))
	}
	return res, nil
}

// Simulate runs the full pipeline.
func Simulate(elems []element.Element, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	res, err := prepare(elems, o)
	if err != nil {
		return res, err
	}

	res.Total, res.Step = o.Total, o.Step
	if res.Total <= 0 || res.Step <= 0 {
		total, step := analysis.Recommend(elems)
		if res.Total <= 0 {
			res.Total = total
		}
		if res.Step <= 0 {
			res.Step = step
		}
		o.Logger.Debug("recommended window", slog.String("type", res.Type.String()),
			slog.Float64("total", res.Total), slog.Float64("step", res.Step))
	}

	integ := append([]integrate.Option{integrate.WithContext(o.Ctx), integrate.WithLogger(o.stage(StageIntegrate))}, o.Integrator...)
	tr, err := integrate.Integrate(res.System, res.Total, res.Step, integ...)
	res.Trace = tr
	if err != nil {
		var unstable *integrate.InstabilityError
		if errors.As(err, &unstable) {
			o.Logger.Warn("simulation diverged", slog.Int("step", unstable.Step), slog.Float64("time", unstable.Time))
		}
		return res, stageErr(StageIntegrate, err)
	}

	o.Logger.Info("simulation complete",
		slog.String("type", res.Type.String()),
		slog.Int("states", res.System.N()),
		slog.Int("inputs", res.System.M()),
		slog.Int("outputs", res.System.P()),
		slog.Int("steps", tr.Steps),
		slog.Float64("step", tr.Step))
	return res, nil
}

// Summary is a one-line description of a result.
func (r *Result) Summary() string {
	if r == nil || r.System == nil {
		return "simulator: no system"
	}
	s := fmt.Sprintf("%s circuit: %d states, %d inputs, %d outputs", r.Type, r.System.N(), r.System.M(), r.System.P())
	if r.Trace != nil {
		s += fmt.Sprintf("; %d steps of %g s over %g s (%s)", r.Trace.Steps, r.Trace.Step, r.Total, r.Trace.Status)
	}
	return s
}
