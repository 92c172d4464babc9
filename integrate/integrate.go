// SPDX-License-Identifier: MIT

package integrate

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/statespace"
)

// SpectralRadiusEstimate returns the infinity norm of A, an upper bound of
// its spectral radius.
func SpectralRadiusEstimate(A *matrix.Dense) (float64, error) {
	if err := matrix.ValidateSquare(A); err != nil {
		return 0, fmt.Errorf("integrate: %w", err)
	}
	return matrix.MaxAbsRowSum(A)
}

// StableStep bounds requested by safety/ρ. With ρ == 0 there is nothing to
// bound and requested is returned.
func StableStep(A *matrix.Dense, requested, safety float64) (float64, error) {
	if !positive(requested) {
		return 0, fmt.Errorf("%w: %g", ErrBadStep, requested)
	}
	if !positive(safety) {
		return 0, fmt.Errorf("%w: %g", ErrBadSafety, safety)
	}
	rho, err := SpectralRadiusEstimate(A)
	if err != nil {
		return 0, err
	}
	if rho == 0 {
		return requested, nil
	}
	return math.Min(requested, safety/rho), nil
}

// Integrate runs forward Euler over [0, total] and samples every step.
// A run planning more than MaxSteps steps is rejected with ErrTooManySteps.
//
// On divergence the trace holds all finite samples, its Status is Diverged
// and the error is an *InstabilityError. On cancellation the trace is kept
// with Status Canceled and the context error is wrapped.
func Integrate(sys *statespace.System, total, requested float64, opts ...Option) (*Trace, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if sys == nil {
		return nil, ErrNilSystem
	}
	if !positive(total) {
		return nil, fmt.Errorf("%w: %g", ErrBadTime, total)
	}
	if !positive(requested) {
		return nil, fmt.Errorf("%w: %g", ErrBadStep, requested)
	}

	h := requested
	if !o.Fixed {
		var err error
		if h, err = StableStep(sys.A, requested, o.Safety); err != nil {
			return nil, err
		}
		if h < requested {
			o.Logger.Debug("step reduced for stability", slog.Float64("requested", requested), slog.Float64("step", h))
		}
	}
	planned := math.Floor(total/h + stepEpsilon)
	if planned > float64(o.MaxSteps) {
		return nil, fmt.Errorf("%w: %g steps of %g over %g (limit %d)", ErrTooManySteps, planned, h, total, o.MaxSteps)
	}
	steps := int(planned)
	capacity := min(steps, preallocSamples) + 1

	n, p := sys.N(), sys.P()
	x := sys.InitialState()
	u := sys.InputVector()
	dx := make([]float64, n)

	tr := &Trace{
		Time:      make([]float64, 0, capacity),
		States:    make([][]float64, 0, capacity),
		Outputs:   make([][]float64, 0, capacity),
		Step:      h,
		Requested: requested,
		Steps:     steps,
	}
	record := func(k int) error {
		y := make([]float64, p)
		if err := matrix.MulAdd(y, sys.C, x, sys.D, u); err != nil {
			return fmt.Errorf("integrate: outputs: %w", err)
		}
		tr.Time = append(tr.Time, float64(k)*h)
		tr.States = append(tr.States, append([]float64(nil), x...))
		tr.Outputs = append(tr.Outputs, y)
		return nil
	}
	if err := record(0); err != nil {
		return nil, err
	}

	for k := 1; k <= steps; k++ {
		if err := o.Ctx.Err(); err != nil {
			tr.Status = Canceled
			o.Logger.Warn("integration canceled", slog.Int("step", k), slog.Int("of", steps))
			return tr, fmt.Errorf("integrate: canceled at step %d: %w", k, err)
		}
		if err := matrix.MulAdd(dx, sys.A, x, sys.B, u); err != nil {
			return nil, fmt.Errorf("integrate: derivative: %w", err)
		}
		for i := range x {
			x[i] += h * dx[i]
		}
		if ok, idx := matrix.Finite(x); !ok {
			tr.Status = Diverged
			ierr := &InstabilityError{Step: k, Time: float64(k) * h, Index: idx}
			o.Logger.Warn("integration diverged", slog.Int("step", k), slog.Int("state", idx), slog.Float64("step_size", h))
			return tr, ierr
		}
		if err := record(k); err != nil {
			return nil, err
		}
		if o.Progress != nil && k%o.ProgressEvery == 0 {
			o.Progress(k, float64(k)*h, x)
		}
	}

	tr.Status = Completed
	o.Logger.Debug("integration done", slog.Int("steps", steps), slog.Float64("step", h))
	return tr, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
