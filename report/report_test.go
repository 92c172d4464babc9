// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/integrate"
	"github.com/katalvlaran/statevar/loopmatrix"
	"github.com/katalvlaran/statevar/presets"
	"github.com/katalvlaran/statevar/report"
	"github.com/katalvlaran/statevar/statespace"
	"github.com/katalvlaran/statevar/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func build(t *testing.T, elems []element.Element, opts ...statespace.Option) (*loopmatrix.LoopMatrix, *statespace.System) {
	t.Helper()
	g, err := topology.Build(elems)
	require.NoError(t, err)
	lm, err := loopmatrix.Build(g)
	require.NoError(t, err)
	sys, err := statespace.Assemble(elems, g, lm, opts...)
	require.NoError(t, err)
	return lm, sys
}

func TestFormatSI(t *testing.T) {
	assert.Equal(t, "4.7 kΩ", report.FormatSI(4700.0, "Ω"))
	assert.Equal(t, "1 µF", report.FormatSI(1e-6, "F"))
	assert.Equal(t, "100 mH", report.FormatSI(float32(0.1), "H"))
	assert.Equal(t, "-2 mA", report.FormatSI(-0.002, "A"))
	assert.Equal(t, "2 MΩ", report.FormatSI(2e6, "Ω"))
	assert.Equal(t, "0 V", report.FormatSI(0.0, "V"))
	assert.Equal(t, "5", report.FormatSI(5.0, ""))
	assert.Equal(t, "0.002 fF", report.FormatSI(2e-18, "F"))
	assert.Equal(t, "1.235 s", report.FormatSI(1.23456, "s"))
	assert.Equal(t, "1 kΩ", report.FormatValue(element.NewResistor("R1", 1000, 1, 0)))
}

func TestKirchhoffRC(t *testing.T) {
	lm, _ := build(t, presets.RC())

	sym, sub := report.KVL(lm, 0)
	assert.Equal(t, "v_R1 - v_V1 + v_C1 = 0", sym)
	assert.Equal(t, "1 kΩ·i_R1 - 5 V + u_C1 = 0", sub)

	sym, sub = report.KCL(lm, 0)
	assert.Equal(t, "i_V1 = -i_R1", sym)
	assert.Equal(t, "i_V1 = -v_R1/1 kΩ", sub)

	sym, sub = report.KCL(lm, 1)
	assert.Equal(t, "i_C1 = i_R1", sym)
	assert.Equal(t, "1 µF·du_C1/dt = v_R1/1 kΩ", sub)

	var buf bytes.Buffer
	require.NoError(t, report.Kirchhoff(&buf, lm))
	assert.Contains(t, buf.String(), "KVL (one per chord):")
	assert.Contains(t, buf.String(), "v_R1 - v_V1 + v_C1 = 0")
	assert.Contains(t, buf.String(), "KCL (one per tree branch):")
}

func TestGraphInfo(t *testing.T) {
	lm, _ := build(t, presets.Task())
	var buf bytes.Buffer
	require.NoError(t, report.GraphInfo(&buf, lm))
	out := buf.String()
	assert.Contains(t, out, "Nodes: 3")
	assert.Contains(t, out, "Tree branches (2):")
	assert.Contains(t, out, "Chords (3):")
	assert.Contains(t, out, "Loop matrix M (chords × tree):")
	for _, id := range []string{"R1", "R2", "C1", "L1", "J1"} {
		assert.Contains(t, out, id)
	}
}

func TestMatricesAndEquations(t *testing.T) {
	_, sys := build(t, presets.RC())
	var buf bytes.Buffer
	require.NoError(t, report.Matrices(&buf, sys))
	out := buf.String()
	assert.Contains(t, out, "n=1 states, m=1 inputs, p=1 outputs")
	assert.Contains(t, out, "A =")
	assert.Contains(t, out, "-1000")
	assert.Contains(t, out, "u = [V1=5 V]")
	assert.Contains(t, out, "x0 = [u_C1=0]")

	buf.Reset()
	require.NoError(t, report.Equations(&buf, sys))
	assert.Contains(t, buf.String(), "du_C1/dt = -1000·u_C1 + 1000·V1")

	_, resistive := build(t, []element.Element{
		element.NewVoltageSource("V1", 10, 1, 0),
		element.NewResistor("R1", 1000, 1, 2),
		element.NewResistor("R2", 1000, 2, 0),
	})
	buf.Reset()
	require.NoError(t, report.Matrices(&buf, resistive))
	assert.Contains(t, buf.String(), "A: empty (0×0)")
	buf.Reset()
	require.NoError(t, report.Equations(&buf, resistive))
	assert.Contains(t, buf.String(), "(none: resistive network)")
}

func TestSampleIndices(t *testing.T) {
	assert.Equal(t, []int{0, 50, 100, 150, 200, 250, 300, 350, 400, 450, 500}, report.SampleIndices(501, 11))
	assert.Equal(t, []int{0, 1, 2}, report.SampleIndices(3, 11))
	assert.Equal(t, []int{4}, report.SampleIndices(5, 1))
	assert.Nil(t, report.SampleIndices(0, 11))
}

func TestResults(t *testing.T) {
	_, sys := build(t, presets.RC())
	tr, err := integrate.Integrate(sys, 5e-3, 1e-5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Results(&buf, tr, sys, 0))
	out := buf.String()
	assert.Contains(t, out, "Simulation: 500 steps of 10 µs (requested 10 µs), status completed")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1+1+report.DefaultRows)
	assert.Contains(t, lines[1], "u_C1")
}

func TestNilInputs(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, report.GraphInfo(&buf, nil), report.ErrNilInput)
	assert.ErrorIs(t, report.Kirchhoff(&buf, nil), report.ErrNilInput)
	assert.ErrorIs(t, report.Matrices(&buf, nil), report.ErrNilInput)
	assert.ErrorIs(t, report.Equations(&buf, nil), report.ErrNilInput)
	assert.ErrorIs(t, report.Results(&buf, nil, nil, 0), report.ErrNilInput)
	_, err := report.NewDocument(nil, nil)
	assert.ErrorIs(t, err, report.ErrNilInput)
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteErrorsSurface(t *testing.T) {
	lm, sys := build(t, presets.RC())
	assert.ErrorIs(t, report.GraphInfo(failingWriter{}, lm), errWrite)
	assert.ErrorIs(t, report.Matrices(failingWriter{}, sys), errWrite)
}

func TestYAMLDocument(t *testing.T) {
	_, sys := build(t, presets.Task(), statespace.WithOutputs(presets.TaskOutputs()))
	tr, err := integrate.Integrate(sys, 1e-3, 1e-5)
	require.NoError(t, err)

	doc, err := report.NewDocument(sys, tr)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf, doc))
	assert.Contains(t, buf.String(), "states:")
	assert.Contains(t, buf.String(), "status: completed")

	var back report.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, []string{"u_C1", "i_L1"}, back.States)
	assert.Equal(t, []string{"i2", "i3"}, back.Outputs)
	assert.Equal(t, []report.Source{{Name: "J1", Value: 0.001}}, back.Inputs)
	assert.Equal(t, doc.A, back.A)
	require.NotNil(t, back.Run)
	assert.Equal(t, tr.Steps, back.Run.Steps)
}
