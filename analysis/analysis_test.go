// SPDX-License-Identifier: MIT

package analysis_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/statevar/analysis"
	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/presets"
	"github.com/katalvlaran/statevar/statespace"
	"github.com/katalvlaran/statevar/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func system(t *testing.T, elems []element.Element) *statespace.System {
	t.Helper()
	g, err := topology.Build(elems)
	require.NoError(t, err)
	lm, err := loopmatrix.Build(g)
	require.NoError(t, err)
	sys, err := statespace.Assemble(elems, g, lm)
	require.NoError(t, err)
	return sys
}

func TestClassify(t *testing.T) {
	cases := []struct {
		elems []element.Element
		want  analysis.CircuitType
	}{
		{presets.RC(), analysis.RC},
		{presets.RL(), analysis.RL},
		{presets.SeriesRLC(), analysis.RLC},
		{presets.LC(), analysis.LC},
		{presets.Task(), analysis.RLC},
		{[]element.Element{element.NewResistor("R1", 1, 1, 0)}, analysis.Resistive},
		{[]element.Element{element.NewCapacitor("C1", 1, 1, 0)}, analysis.C},
		{[]element.Element{element.NewInductor("L1", 1, 1, 0)}, analysis.L},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, analysis.Classify(tc.elems), tc.want.String())
	}
	assert.Equal(t, "Unknown", analysis.CircuitType(42).String())
}

func TestRecommend(t *testing.T) {
	total, step := analysis.Recommend(presets.RC())
	assert.InDelta(t, 5e-3, total, 1e-15)
	assert.InDelta(t, 1e-5, step, 1e-18)

	total, step = analysis.Recommend(presets.RL())
	assert.InDelta(t, 5e-4, total, 1e-15)
	assert.InDelta(t, 1e-6, step, 1e-18)

	period := 2 * math.Pi * math.Sqrt(1e-3*1e-3)
	total, step = analysis.Recommend(presets.SeriesRLC())
	assert.InDelta(t, 5*period, total, 1e-12)
	assert.InDelta(t, period/100, step, 1e-12)

	period = 2 * math.Pi * math.Sqrt(0.1*1e-6)
	total, step = analysis.Recommend(presets.LC())
	assert.InDelta(t, 3*period, total, 1e-12)
	assert.InDelta(t, period/200, step, 1e-12)

	total, step = analysis.Recommend([]element.Element{element.NewResistor("R1", 1, 1, 0)})
	assert.Equal(t, analysis.DefaultTotal, total)
	assert.Equal(t, analysis.DefaultStep, step)
}

func TestEigenvaluesSeriesRLC(t *testing.T) {
	sys := system(t, presets.SeriesRLC())
	vals, err := analysis.Eigenvalues(sys.A)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	for _, v := range vals {
		assert.InDelta(t, -500, real(v), 1e-6)
		assert.InDelta(t, 500*math.Sqrt(3), math.Abs(imag(v)), 1e-6)
	}

	rho, err := analysis.SpectralRadius(sys.A)
	require.NoError(t, err)
	assert.InDelta(t, 1000, rho, 1e-6)

	stable, err := analysis.IsStable(sys.A)
	require.NoError(t, err)
	assert.True(t, stable)
}

func TestIsStableRejectsGrowth(t *testing.T) {
	a, err := matrix.FromRows([][]float64{{1, 0}, {0, -1}})
	require.NoError(t, err)
	stable, err := analysis.IsStable(a)
	require.NoError(t, err)
	assert.False(t, stable)

	empty, err := matrix.NewDense(0, 0)
	require.NoError(t, err)
	stable, err = analysis.IsStable(empty)
	require.NoError(t, err)
	assert.True(t, stable)

	rect, err := matrix.NewDense(1, 2)
	require.NoError(t, err)
	_, err = analysis.Eigenvalues(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestSteadyState(t *testing.T) {
	x, err := analysis.SteadyState(system(t, presets.RC()))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5}, x, 1e-9)

	// Inductor shorts node 1 to ground; J1 draws 1 mA through R1 ∥ R2.
	x, err = analysis.SteadyState(system(t, presets.Task()))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-2.0 / 3, -2.0 / 3000}, x, 1e-9)

	degenerate := []element.Element{
		element.NewVoltageSource("V1", 5, 1, 0),
		element.NewCapacitor("C1", 1e-6, 1, 0),
	}
	_, err = analysis.SteadyState(system(t, degenerate))
	require.ErrorIs(t, err, analysis.ErrSingular)
}
