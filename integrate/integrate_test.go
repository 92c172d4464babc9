// SPDX-License-Identifier: MIT

package integrate_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/presets"
	"github.com/katalvlaran/statevar/statespace"
	"github.com/katalvlaran/statevar/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func system(t testing.TB, elems []element.Element, opts ...statespace.Option) *statespace.System {
	t.Helper()
	g, err := topology.Build(elems)
	require.NoError(t, err)
	lm, err := loopmatrix.Build(g)
	require.NoError(t, err)
	sys, err := statespace.Assemble(elems, g, lm, opts...)
	require.NoError(t, err)
	return sys
}

// relClose checks got against want within rel, skipping t = 0 where the
// analytic value is 0.
func relClose(t *testing.T, tr *integrate.Trace, series []float64, want func(float64) float64, rel float64) {
	t.Helper()
	for k := 1; k < len(series); k++ {
		w := want(tr.Time[k])
		require.InEpsilon(t, w, series[k], rel, "t=%g", tr.Time[k])
	}
}

func TestRCMatchesAnalytic(t *testing.T) {
	const tau = 1e-3
	sys := system(t, presets.RC())
	tr, err := integrate.Integrate(sys, 5*tau, tau/200)
	require.NoError(t, err)
	assert.Equal(t, integrate.Completed, tr.Status)
	assert.Equal(t, 1000, tr.Steps)
	relClose(t, tr, tr.State(0), func(x float64) float64 { return 5 * (1 - math.Exp(-x/tau)) }, 0.01)
}

func TestRLMatchesAnalytic(t *testing.T) {
	const tau = 1e-4
	sys := system(t, presets.RL())
	tr, err := integrate.Integrate(sys, 5*tau, tau/200)
	require.NoError(t, err)
	relClose(t, tr, tr.State(0), func(x float64) float64 { return 0.001 * (1 - math.Exp(-x/tau)) }, 0.01)
}

func TestStableStep(t *testing.T) {
	sys := system(t, presets.SeriesRLC())
	rho, err := integrate.SpectralRadiusEstimate(sys.A)
	require.NoError(t, err)
	assert.InDelta(t, 2000, rho, 1e-9)

	h, err := integrate.StableStep(sys.A, 1, integrate.DefaultSafety)
	require.NoError(t, err)
	assert.InDelta(t, 5e-5, h, 1e-15)

	h, err = integrate.StableStep(sys.A, 1e-6, integrate.DefaultSafety)
	require.NoError(t, err)
	assert.Equal(t, 1e-6, h)

	zero, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	h, err = integrate.StableStep(zero, 0.25, integrate.DefaultSafety)
	require.NoError(t, err)
	assert.Equal(t, 0.25, h)

	_, err = integrate.StableStep(sys.A, 0, integrate.DefaultSafety)
	require.ErrorIs(t, err, integrate.ErrBadStep)
	_, err = integrate.StableStep(sys.A, 1, -1)
	require.ErrorIs(t, err, integrate.ErrBadSafety)
	nonSquare, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	_, err = integrate.StableStep(nonSquare, 1, 0.1)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestAutoStepStaysBounded(t *testing.T) {
	sys := system(t, presets.SeriesRLC())
	tr, err := integrate.Integrate(sys, 0.05, 1)
	require.NoError(t, err)
	assert.InDelta(t, 5e-5, tr.Step, 1e-15)
	assert.Equal(t, 1.0, tr.Requested)
	for _, x := range tr.Final() {
		assert.False(t, math.IsNaN(x) || math.IsInf(x, 0))
	}
	// Settles toward u_C = 10 V.
	assert.InDelta(t, 10, tr.Final()[0], 0.5)
}

func TestFixedLargeStepDiverges(t *testing.T) {
	sys := system(t, presets.SeriesRLC())
	stable, err := integrate.StableStep(sys.A, 1, integrate.DefaultSafety)
	require.NoError(t, err)

	h := 1000 * stable
	tr, err := integrate.Integrate(sys, 500*h, h, integrate.WithFixedStep())
	require.Error(t, err)
	require.ErrorIs(t, err, integrate.ErrUnstable)

	var ie *integrate.InstabilityError
	require.True(t, errors.As(err, &ie))
	assert.Greater(t, ie.Step, 1)
	assert.Less(t, ie.Step, 500)
	assert.Equal(t, integrate.Diverged, tr.Status)
	assert.Equal(t, ie.Step, tr.Len())
	for _, row := range tr.States {
		ok, _ := matrix.Finite(row)
		assert.True(t, ok)
	}
}

func TestCanceled(t *testing.T) {
	sys := system(t, presets.RC())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr, err := integrate.Integrate(sys, 1e-3, 1e-5, integrate.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, tr)
	assert.Equal(t, integrate.Canceled, tr.Status)
	assert.Equal(t, 1, tr.Len())
}

func TestShapesAndSampling(t *testing.T) {
	sys := system(t, presets.Task(), statespace.WithOutputs(presets.TaskOutputs()))
	tr, err := integrate.Integrate(sys, 1e-3, 1e-6)
	require.NoError(t, err)

	require.Equal(t, tr.Steps+1, tr.Len())
	assert.Len(t, tr.States, tr.Len())
	assert.Len(t, tr.Outputs, tr.Len())
	for k, ti := range tr.Time {
		assert.Equal(t, float64(k)*tr.Step, ti)
		assert.Len(t, tr.States[k], sys.N())
		assert.Len(t, tr.Outputs[k], sys.P())
	}
	ts, x, y, ok := tr.Sample(tr.Len() - 1)
	require.True(t, ok)
	assert.Equal(t, tr.Time[tr.Len()-1], ts)
	assert.Equal(t, tr.Final(), x)
	assert.Len(t, y, 2)
	_, _, _, ok = tr.Sample(-1)
	assert.False(t, ok)
	assert.Nil(t, tr.State(7))
}

func TestStepCountAbsorbsRounding(t *testing.T) {
	sys := system(t, presets.RC())
	// T/h lands just off an integer in floating point.
	tr, err := integrate.Integrate(sys, 0.3e-3, 0.1e-3, integrate.WithFixedStep())
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Steps)
}

func TestProgress(t *testing.T) {
	sys := system(t, presets.RC())
	var calls []int
	_, err := integrate.Integrate(sys, 1e-3, 1e-5, integrate.WithProgress(25, func(step int, _ float64, _ []float64) {
		calls = append(calls, step)
	}))
	require.NoError(t, err)
	assert.Equal(t, []int{25, 50, 75, 100}, calls)
}

func TestIntegrateErrors(t *testing.T) {
	sys := system(t, presets.RC())
	_, err := integrate.Integrate(nil, 1, 1)
	require.ErrorIs(t, err, integrate.ErrNilSystem)
	_, err = integrate.Integrate(sys, 0, 1)
	require.ErrorIs(t, err, integrate.ErrBadTime)
	_, err = integrate.Integrate(sys, math.Inf(1), 1)
	require.ErrorIs(t, err, integrate.ErrBadTime)
	_, err = integrate.Integrate(sys, 1, math.NaN())
	require.ErrorIs(t, err, integrate.ErrBadStep)
	_, err = integrate.Integrate(sys, 1, 1, integrate.WithSafetyFactor(0))
	require.ErrorIs(t, err, integrate.ErrOptionViolation)
	require.ErrorIs(t, err, integrate.ErrBadSafety)
	_, err = integrate.Integrate(sys, 1, 1, integrate.WithProgress(0, nil))
	require.ErrorIs(t, err, integrate.ErrOptionViolation)
}

func TestStepLimit(t *testing.T) {
	sys := system(t, presets.RC())

	tr, err := integrate.Integrate(sys, 1, 1e-300, integrate.WithFixedStep())
	require.ErrorIs(t, err, integrate.ErrTooManySteps)
	assert.Nil(t, tr)

	_, err = integrate.Integrate(sys, math.MaxFloat64, 1e-3)
	require.ErrorIs(t, err, integrate.ErrTooManySteps)

	_, err = integrate.Integrate(sys, 1e-3, 1e-5, integrate.WithMaxSteps(99))
	require.ErrorIs(t, err, integrate.ErrTooManySteps)

	tr, err = integrate.Integrate(sys, 1e-3, 1e-5, integrate.WithMaxSteps(100))
	require.NoError(t, err)
	assert.Equal(t, 100, tr.Steps)
	assert.Equal(t, 101, tr.Len())

	_, err = integrate.Integrate(sys, 1, 1, integrate.WithMaxSteps(0))
	require.ErrorIs(t, err, integrate.ErrOptionViolation)
}

func TestResistiveNetworkHasNoStates(t *testing.T) {
	elems := []element.Element{
		element.NewVoltageSource("V1", 10, 1, 0),
		element.NewResistor("R1", 1000, 1, 0),
	}
	sys := system(t, elems, statespace.WithOutputs(statespace.Quantities(statespace.Current("R1"))))
	tr, err := integrate.Integrate(sys, 1e-3, 1e-4)
	require.NoError(t, err)
	assert.Equal(t, 10, tr.Steps)
	for _, y := range tr.Output(0) {
		assert.InDelta(t, 0.01, y, 1e-15)
	}
}
