// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/statevar/presets"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

const rcNetlist = `# RC charging
R1 R 1k 1 2
C1 C 1u 2 0
V1 V 5 1 0
`

func writeNetlist(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rc.net")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDemoTask(t *testing.T) {
	out, _, err := execute(t, "demo", "task", "--time", "1m", "--step", "10u")
	require.NoError(t, err)
	assert.Contains(t, out, "task: ")
	assert.Contains(t, out, "KVL (one per chord):")
	assert.Contains(t, out, "State equations:")
	assert.Contains(t, out, "i3")
	assert.Contains(t, out, "RLC circuit: 2 states, 1 inputs, 2 outputs")
}

func TestDemoUnknownPreset(t *testing.T) {
	_, _, err := execute(t, "demo", "nope")
	require.ErrorIs(t, err, presets.ErrUnknownPreset)
}

func TestSimulateNetlistWithPlots(t *testing.T) {
	path := writeNetlist(t, rcNetlist)
	dir := filepath.Join(t.TempDir(), "out")
	out, _, err := execute(t, "simulate", path, "--plot-format", "html", "--plot-dir", dir, "--equations=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "KVL (one per chord):")
	assert.Contains(t, out, "status completed")
	assert.Contains(t, out, "wrote "+dir)

	files, err := filepath.Glob(filepath.Join(dir, "rc_*.html"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestInspectYAML(t *testing.T) {
	path := writeNetlist(t, rcNetlist)
	out, _, err := execute(t, "inspect", path, "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "states:")
	assert.Contains(t, out, "- u_C1")
	assert.NotContains(t, out, "run:")

	out, _, err = execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Loop matrix M (chords × tree):")
	assert.Contains(t, out, "du_C1/dt = -1000·u_C1 + 1000·V1")
}

func TestEnvironmentAndConfigFile(t *testing.T) {
	path := writeNetlist(t, rcNetlist)

	t.Setenv("STATEVAR_TIME", "bogus")
	_, _, err := execute(t, "simulate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--time")

	t.Setenv("STATEVAR_TIME", "")
	cfg := filepath.Join(t.TempDir(), "statevar.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("time: 2m\nstep: 10u\nreport:\n  rows: 3\n"), 0o644))
	out, _, err := execute(t, "simulate", path, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "200 steps")
}

func TestDivergedRunStillReports(t *testing.T) {
	path := writeNetlist(t, rcNetlist)
	out, _, err := execute(t, "simulate", path, "--time", "10", "--step", "10m", "--fixed-step")
	require.Error(t, err)
	assert.Contains(t, out, "status diverged")
}

func TestOverlongWindow(t *testing.T) {
	path := writeNetlist(t, rcNetlist)
	_, _, err := execute(t, "simulate", path, "--time", "1e16", "--step", "1m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many steps")
}

func TestBadNetlist(t *testing.T) {
	path := writeNetlist(t, "R1 R 1k 1\n")
	_, _, err := execute(t, "simulate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
