// SPDX-License-Identifier: MIT

package netlist_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/statevar/element"
	"github.com/katalvlaran/statevar/netlist"
	"github.com/katalvlaran/statevar/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taskNetlist = `
// reference circuit
# name type value a b
R1 R 1k 1 2
R2 resistor 2000 2 0
* capacitor across R2
C1 Capacitor 1u 2 0
L1 l 0,1 1 0
J1 CS 1m 2 0
`

func TestParseTask(t *testing.T) {
	elems, err := netlist.Parse(strings.NewReader(taskNetlist))
	require.NoError(t, err)
	require.Len(t, elems, 5)
	want := presets.Task()
	for i, e := range elems {
		assert.Equal(t, want[i].ID(), e.ID())
		assert.Equal(t, want[i].Kind(), e.Kind())
		assert.InEpsilon(t, want[i].Value(), e.Value(), 1e-12)
		assert.Equal(t, want[i].NodeA(), e.NodeA())
		assert.Equal(t, want[i].NodeB(), e.NodeB())
	}
}

func TestParseValue(t *testing.T) {
	cases := map[string]float64{
		"5":      5,
		"0,001":  0.001,
		"4.7k":   4700,
		"4,7K":   4700,
		"2meg":   2e6,
		"2MEG":   2e6,
		"10mH":   0.01,
		"1uF":    1e-6,
		"100n":   1e-7,
		"3p":     3e-12,
		"1e-6":   1e-6,
		"1.5E3":  1500,
		"-12":    -12,
		".5":     0.5,
		"1kOhm":  1000,
		"2G":     2e9,
		"1t":     1e12,
		"7f":     7e-15,
		" 10  ":  10,
		"+3":     3,
		"2.2meg": 2.2e6,
	}
	for in, want := range cases {
		got, err := netlist.ParseValue(in)
		require.NoError(t, err, in)
		assert.InEpsilon(t, want, got, 1e-12, in)
	}
	for _, micro := range []string{"1\u00b5", "1\u03bcF"} {
		got, err := netlist.ParseValue(micro)
		require.NoError(t, err, micro)
		assert.InEpsilon(t, 1e-6, got, 1e-12, micro)
	}
	for _, bad := range []string{"", "k", "1..2", "abc", "1k2", "--1", "1 k"} {
		_, err := netlist.ParseValue(bad)
		assert.ErrorIs(t, err, netlist.ErrBadValue, bad)
	}
}

func TestParseKindAliases(t *testing.T) {
	for alias, want := range map[string]element.Kind{
		"R": element.Resistor, "Resistor": element.Resistor,
		"c": element.Capacitor, "L": element.Inductor, "INDUCTOR": element.Inductor,
		"v": element.VoltageSource, "VS": element.VoltageSource, "VoltageSource": element.VoltageSource,
		"I": element.CurrentSource, "j": element.CurrentSource, "cs": element.CurrentSource, "CurrentSource": element.CurrentSource,
	} {
		got, err := netlist.ParseKind(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}
	_, err := netlist.ParseKind("D")
	require.ErrorIs(t, err, netlist.ErrUnknownKind)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		line int
		want error
	}{
		{"short", "R1 R 1k 1 2\nR2 R 1k\n", 2, netlist.ErrTooFewFields},
		{"kind", "D1 D 1 1 0\n", 1, netlist.ErrUnknownKind},
		{"value", "R1 R one 1 0\n", 1, netlist.ErrBadValue},
		{"node", "R1 R 1 a 0\n", 1, netlist.ErrBadNode},
		{"negative node", "R1 R 1 -1 0\n", 1, netlist.ErrBadNode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := netlist.Parse(strings.NewReader(tc.src))
			require.ErrorIs(t, err, tc.want)
			var pe *netlist.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.line, pe.Line)
			assert.Contains(t, err.Error(), "line")
		})
	}
}

func TestParseValidates(t *testing.T) {
	_, err := netlist.Parse(strings.NewReader("R1 R 1 1 0\nR1 R 2 1 0\n"))
	require.ErrorIs(t, err, element.ErrDuplicateID)

	_, err = netlist.Parse(strings.NewReader("# nothing\n"))
	require.ErrorIs(t, err, element.ErrNoElements)

	_, err = netlist.Parse(strings.NewReader("R1 R 0 1 0\n"))
	require.ErrorIs(t, err, element.ErrNonPositive)
}

func TestLenientSkipsShortLines(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	elems, err := netlist.Parse(strings.NewReader("R1 R 1k 1 0\nbroken line\nV1 V 5 1 0\n"),
		netlist.WithLenient(), netlist.WithLogger(log))
	require.NoError(t, err)
	assert.Len(t, elems, 2)
	assert.Contains(t, buf.String(), "line=2")
}

func TestBareFaradSuffixWarns(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	elems, err := netlist.Parse(strings.NewReader("V1 V 5 1 0\nR1 R 1k 1 2\nC1 C 1F 2 0\n"), netlist.WithLogger(log))
	require.NoError(t, err)
	assert.InEpsilon(t, 1e-15, elems[2].Value(), 1e-12)
	assert.Contains(t, buf.String(), "femtofarads")
	assert.Contains(t, buf.String(), "line=3")
	assert.Contains(t, buf.String(), "id=C1")

	for _, ok := range []string{"1fF", "10uF", "1", "3p"} {
		buf.Reset()
		_, err := netlist.Parse(strings.NewReader("V1 V 5 1 0\nR1 R 1k 1 2\nC1 C "+ok+" 2 0\n"), netlist.WithLogger(log))
		require.NoError(t, err, ok)
		assert.NotContains(t, buf.String(), "femtofarads", ok)
	}

	buf.Reset()
	_, err = netlist.Parse(strings.NewReader("V1 V 5 1 0\nR1 R 7f 1 0\n"), netlist.WithLogger(log))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "femtofarads")
}

func TestReadFileAndWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, netlist.Write(&buf, presets.Complex()))

	path := filepath.Join(t.TempDir(), "complex.net")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	elems, err := netlist.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, presets.Complex(), elems)

	_, err = netlist.ReadFile(filepath.Join(t.TempDir(), "missing.net"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
