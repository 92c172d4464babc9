// SPDX-License-Identifier: MIT

package integrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Sentinel errors for integration.
var (
	// ErrNilSystem is returned for a nil system.
	ErrNilSystem = errors.New("integrate: system is nil")

	// ErrBadTime is returned for a non-positive or non-finite total time.
	ErrBadTime = errors.New("integrate: total time must be positive and finite")

	// ErrBadStep is returned for a non-positive or non-finite step.
	ErrBadStep = errors.New("integrate: step must be positive and finite")

	// ErrBadSafety is returned for a non-positive or non-finite safety factor.
	ErrBadSafety = errors.New("integrate: safety factor must be positive and finite")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("integrate: invalid option supplied")

	// ErrTooManySteps is returned when total/step exceeds the step limit.
	ErrTooManySteps = errors.New("integrate: too many steps")

	// ErrUnstable is matched by every *InstabilityError.
	ErrUnstable = errors.New("integrate: numerical instability")
)

// DefaultSafety is the factor applied to 1/ρ when bounding the step.
const DefaultSafety = 0.1

// DefaultMaxSteps bounds the number of Euler steps of one run.
const DefaultMaxSteps = 10_000_000

// preallocSamples caps the capacity reserved for the trace up front.
const preallocSamples = 1 << 16

// stepEpsilon absorbs floating error in T/h before flooring.
const stepEpsilon = 1e-9

// InstabilityError reports the first non-finite state component.
type InstabilityError struct {
	Step  int
	Time  float64
	Index int
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("integrate: numerical instability: state %d not finite at step %d (t=%g)", e.Index, e.Step, e.Time)
}

// Unwrap makes errors.Is(err, ErrUnstable) hold.
func (e *InstabilityError) Unwrap() error { return ErrUnstable }

// Status tells how a run ended.
type Status int

const (
	// Completed means every planned step ran.
	Completed Status = iota
	// Diverged means a state left the finite range.
	Diverged
	// Canceled means the context was done before the last step.
	Canceled
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Diverged:
		return "diverged"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ProgressFunc observes the run every few steps. x must not be retained.
type ProgressFunc func(step int, t float64, x []float64)

// Option configures Integrate.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds integration parameters.
type Options struct {
	Ctx    context.Context
	Logger *slog.Logger

	// Safety multiplies 1/ρ in the step bound.
	Safety float64

	// Fixed uses the requested step without the stability bound.
	Fixed bool

	// MaxSteps rejects runs planning more Euler steps.
	MaxSteps int

	ProgressEvery int
	Progress      ProgressFunc

	err error
}

// DefaultOptions returns a background context, DefaultSafety,
// DefaultMaxSteps and no progress.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Logger:   slog.Default().With(slog.String("component", "integrate")),
		Safety:   DefaultSafety,
		MaxSteps: DefaultMaxSteps,
	}
}

// WithContext sets a context checked before every step.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
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

// WithSafetyFactor replaces DefaultSafety.
func WithSafetyFactor(f float64) Option {
	return func(o *Options) {
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			o.err = fmt.Errorf("%w: %w (%g)", ErrOptionViolation, ErrBadSafety, f)
			return
		}
		o.Safety = f
	}
}

// WithFixedStep integrates with the requested step as given.
func WithFixedStep() Option {
	return func(o *Options) { o.Fixed = true }
}

// WithMaxSteps replaces DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: step limit must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithProgress calls fn after every `every` steps.
func WithProgress(every int, fn ProgressFunc) Option {
	return func(o *Options) {
		if every <= 0 {
			o.err = fmt.Errorf("%w: progress interval must be positive (%d)", ErrOptionViolation, every)
			return
		}
		o.ProgressEvery = every
		o.Progress = fn
	}
}

// Trace is the sampled solution. Row k of States and Outputs belongs to
// Time[k].
type Trace struct {
	Time    []float64
	States  [][]float64
	Outputs [][]float64

	// Step is the step actually used; Requested is the caller's.
	Step      float64
	Requested float64

	// Steps is the number of planned Euler steps.
	Steps int

	Status Status
}

// Len returns the number of samples.
func (tr *Trace) Len() int { return len(tr.Time) }

// State returns the time series of state i.
func (tr *Trace) State(i int) []float64 { return column(tr.States, i) }

// Output returns the time series of output i.
func (tr *Trace) Output(i int) []float64 { return column(tr.Outputs, i) }

// Final returns a copy of the last state sample, or nil for an empty trace.
func (tr *Trace) Final() []float64 {
	if len(tr.States) == 0 {
		return nil
	}
	return append([]float64(nil), tr.States[len(tr.States)-1]...)
}

// Sample returns time, state and output of sample k.
func (tr *Trace) Sample(k int) (t float64, x, y []float64, ok bool) {
	if k < 0 || k >= len(tr.Time) {
		return 0, nil, nil, false
	}
	return tr.Time[k], tr.States[k], tr.Outputs[k], true
}

func column(rows [][]float64, i int) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if i < 0 || i >= len(r) {
			return nil
		}
		out = append(out, r[i])
	}
	return out
}
