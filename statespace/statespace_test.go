// SPDX-License-Identifier: MIT

package statespace_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/statevar/classify"
	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/matrix"
	"github.com/katalvlaran/statevar/presets"
	"github.com/katalvlaran/statevar/statespace"
	"github.com/katalvlaran/statevar/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, elems []element.Element, opts ...statespace.Option) *statespace.System {
	t.Helper()
	g, err := topology.Build(elems)
	require.NoError(t, err)
	lm, err := loopmatrix.Build(g)
	require.NoError(t, err)
	sys, err := statespace.Assemble(elems, g, lm, opts...)
	require.NoError(t, err)
	return sys
}

func requireMatrix(t *testing.T, want [][]float64, got *matrix.Dense, tol float64) {
	t.Helper()
	w, err := matrix.FromRows(want)
	require.NoError(t, err)
	if len(want) == 0 {
		assert.Equal(t, 0, got.Rows())
		return
	}
	assert.True(t, w.Equal(got, tol), "want\n%v\ngot\n%v", w, got)
}

func TestRCSystem(t *testing.T) {
	sys := assemble(t, presets.RC())
	require.Equal(t, 1, sys.N())
	require.Equal(t, 1, sys.M())
	requireMatrix(t, [][]float64{{-1000}}, sys.A, 1e-9)
	requireMatrix(t, [][]float64{{1000}}, sys.B, 1e-9)
	requireMatrix(t, [][]float64{{1}}, sys.C, 0)
	requireMatrix(t, [][]float64{{0}}, sys.D, 0)
	assert.Equal(t, []float64{0}, sys.X0)
	assert.Equal(t, []float64{5}, sys.InputVector())
	assert.Equal(t, []string{"u_C1"}, sys.StateNames())
	assert.Equal(t, []statespace.Output{{Name: "u_C1", Unit: "V"}}, sys.Outputs)
	assert.Empty(t, sys.Warnings)
	require.Len(t, sys.Equations, 1)
	assert.Equal(t, "du_C1/dt = -1000·u_C1 + 1000·V1", sys.Equations[0].Format(sys.Variables()))
}

func TestRLSystem(t *testing.T) {
	sys := assemble(t, presets.RL())
	requireMatrix(t, [][]float64{{-10000}}, sys.A, 1e-6)
	requireMatrix(t, [][]float64{{10000}}, sys.B, 1e-6)
	assert.Equal(t, "L1", sys.States[0].ID())
	assert.Equal(t, "J1", sys.Inputs[0].ID())
}

func TestSeriesRLCSystem(t *testing.T) {
	sys := assemble(t, presets.SeriesRLC())
	requireMatrix(t, [][]float64{{0, 1000}, {-1000, -1000}}, sys.A, 1e-9)
	requireMatrix(t, [][]float64{{0}, {1000}}, sys.B, 1e-9)
	rho, err := matrix.MaxAbsRowSum(sys.A)
	require.NoError(t, err)
	assert.InDelta(t, 2000, rho, 1e-9)
}

func TestLCExcitation(t *testing.T) {
	sys := assemble(t, presets.LC())
	requireMatrix(t, [][]float64{{0, -1e6}, {10, 0}}, sys.A, 1e-6)
	assert.Equal(t, 0, sys.M())
	assert.Equal(t, []float64{1, 0}, sys.X0)

	sys = assemble(t, presets.LC(), statespace.WithInitial(statespace.ZeroInitial()))
	assert.Equal(t, []float64{0, 0}, sys.X0)
}

func TestTaskSystemAndOutputs(t *testing.T) {
	sys := assemble(t, presets.Task(), statespace.WithOutputs(presets.TaskOutputs()))
	// x = [u_C1, i_L1], u = [J1]
	requireMatrix(t, [][]float64{{-500, -1e6}, {10, -10000}}, sys.A, 1e-6)
	requireMatrix(t, [][]float64{{-1e6}, {0}}, sys.B, 1e-6)
	require.Equal(t, 2, sys.P())
	assert.Equal(t, "i2", sys.Outputs[0].Name)
	assert.Equal(t, "i3", sys.Outputs[1].Name)
	assert.Equal(t, "A", sys.Outputs[1].Unit)
	requireMatrix(t, [][]float64{{1.0 / 2000, 0}, {-1.0 / 2000, -1}}, sys.C, 1e-12)
	requireMatrix(t, [][]float64{{0}, {1}}, sys.D, 1e-12)

	y0, err := sys.Outputs0()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.001}, y0, 1e-15)
}

func TestParallelDampingNeverDoubleCounts(t *testing.T) {
	on := assemble(t, presets.Task())
	off := assemble(t, presets.Task(), statespace.WithParallelDamping(false))
	assert.True(t, on.A.Equal(off.A, 0))
}

func TestComplexUsesElimination(t *testing.T) {
	sys := assemble(t, presets.Complex())
	// x = [u_C1, i_L1], u = [I1, V1]
	requireMatrix(t, [][]float64{
		{-1000.0 / 3, -1e6 / 3},
		{10.0 / 3, -20000.0 / 3},
	}, sys.A, 1e-6)
	requireMatrix(t, [][]float64{
		{-1e6, 1000.0 / 3},
		{0, 20.0 / 3},
	}, sys.B, 1e-6)
	assert.Empty(t, sys.Warnings)

	local := assemble(t, presets.Complex(),
		statespace.WithClassifierOptions(classify.WithoutElimination()))
	assert.NotEmpty(t, local.Warnings)
}

func TestResistiveDivider(t *testing.T) {
	elems := []element.Element{
		element.NewVoltageSource("V1", 10, 1, 0),
		element.NewResistor("R1", 1000, 1, 2),
		element.NewResistor("R2", 1000, 2, 0),
	}
	sys := assemble(t, elems, statespace.WithOutputs(statespace.Quantities(
		statespace.Current("R1"),
		statespace.Voltage("R2"),
		statespace.Current("V1").Named("iV"),
	)))
	assert.Equal(t, 0, sys.N())
	assert.Equal(t, 0, sys.A.Rows())
	assert.Equal(t, 1, sys.B.Cols())
	y, err := sys.Outputs0()
	require.NoError(t, err)
	// V1 current runs 1→0 inside the source, against the loop current.
	assert.InDeltaSlice(t, []float64{0.005, 5, -0.005}, y, 1e-12)
	assert.Equal(t, "i_R1", sys.Outputs[0].Name)
	assert.Equal(t, "V", sys.Outputs[1].Unit)
}

func TestDegenerateCapacitorLoop(t *testing.T) {
	elems := []element.Element{
		element.NewVoltageSource("V1", 5, 1, 0),
		element.NewCapacitor("C1", 1e-6, 1, 0),
		element.NewResistor("R1", 100, 1, 0),
	}
	sys := assemble(t, elems)
	require.Equal(t, 1, sys.N())
	requireMatrix(t, [][]float64{{0}}, sys.A, 0)
	assert.Equal(t, []float64{5}, sys.X0)
}

func TestDegenerateInductorCutset(t *testing.T) {
	elems := []element.Element{
		element.NewCurrentSource("J1", 1, 0, 1),
		element.NewInductor("L1", 1, 1, 0),
	}
	sys := assemble(t, elems)
	require.Equal(t, 1, sys.N())
	requireMatrix(t, [][]float64{{0}}, sys.A, 0)
	assert.Equal(t, []float64{1}, sys.X0)
}

func TestFixedInitial(t *testing.T) {
	sys := assemble(t, presets.SeriesRLC(), statespace.WithInitial(
		statespace.FixedInitial(map[string]float64{"C1": 2, "L1": -0.5})))
	assert.Equal(t, []float64{2, -0.5}, sys.X0)

	g, _ := topology.Build(presets.SeriesRLC())
	lm, _ := loopmatrix.Build(g)
	_, err := statespace.Assemble(presets.SeriesRLC(), g, lm, statespace.WithInitial(
		statespace.FixedInitial(map[string]float64{"R1": 1})))
	require.ErrorIs(t, err, statespace.ErrUnknownState)

	bad := func(*statespace.Scope) ([]float64, error) { return []float64{1}, nil }
	_, err = statespace.Assemble(presets.SeriesRLC(), g, lm, statespace.WithInitial(bad))
	require.ErrorIs(t, err, statespace.ErrInitialLength)
}

func TestAssembleErrors(t *testing.T) {
	g, err := topology.Build(presets.RC())
	require.NoError(t, err)
	lm, err := loopmatrix.Build(g)
	require.NoError(t, err)

	_, err = statespace.Assemble(presets.RC(), nil, lm)
	require.ErrorIs(t, err, statespace.ErrNilInput)

	_, err = statespace.Assemble(presets.RL(), g, lm)
	require.ErrorIs(t, err, statespace.ErrMismatch)

	_, err = statespace.Assemble(presets.RC(), g, lm, statespace.WithOutputs(
		statespace.Quantities(statespace.Current("nope"))))
	require.ErrorIs(t, err, statespace.ErrUnknownQuantity)

	boom := errors.New("boom")
	_, err = statespace.Assemble(presets.RC(), g, lm, statespace.WithOutputs(
		statespace.OutputFunc(func(*statespace.Scope) ([]statespace.OutputRow, error) { return nil, boom })))
	require.ErrorIs(t, err, boom)
}

func TestDerivedQuantities(t *testing.T) {
	sys := assemble(t, presets.SeriesRLC(), statespace.WithOutputs(statespace.Quantities(
		statespace.Current("C1"),
		statespace.Voltage("L1"),
		statespace.Combination("kvl",
			statespace.Weighted{Quantity: statespace.Voltage("R1"), Weight: 1},
			statespace.Weighted{Quantity: statespace.Voltage("L1"), Weight: 1},
			statespace.Weighted{Quantity: statespace.Voltage("C1"), Weight: 1},
			statespace.Weighted{Quantity: statespace.Voltage("V1"), Weight: -1},
		),
	)))
	// i_C = i_L; v_L = V − u_C − R·i_L; the loop sums to zero.
	requireMatrix(t, [][]float64{{0, 1}, {-1, -1}, {0, 0}}, sys.C, 1e-12)
	requireMatrix(t, [][]float64{{0}, {1}, {0}}, sys.D, 1e-12)
}
