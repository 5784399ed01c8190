package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trilat.klederson.com/internal/config"
	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/signal"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDistanceCommand(t *testing.T) {
	rssi := signal.SynthesizeRSSI(-59, 3, 2.5)
	out, _, err := execute(t, "distance", "--rssi="+formatFloat(rssi))
	require.NoError(t, err)
	assert.Equal(t, "3.0000 m\n", out)

	_, _, err = execute(t, "distance", "--rssi=-60", "--exp", "0")
	assert.ErrorIs(t, err, signal.ErrInvalidParameter)
}

func TestIntersectCommand(t *testing.T) {
	out, _, err := execute(t, "intersect", "--a", "0,0", "--ra", "5", "--b", "6,0", "--rb", "5")
	require.NoError(t, err)
	assert.Equal(t, "(3.00, 4.00)\n(3.00, -4.00)\n", out)

	out, _, err = execute(t, "intersect", "--a", "0,0", "--ra", "1", "--b", "10,0", "--rb", "1")
	require.NoError(t, err)
	assert.Equal(t, "no intersection\n", out)

	_, _, err = execute(t, "intersect", "--a", "0", "--ra", "1", "--b", "10,0", "--rb", "1")
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	out, _, err := execute(t, "simulate", "--plain", "--steps", "20")
	require.NoError(t, err)

	assert.Equal(t, 20, strings.Count(out, "[LOG]"))
	assert.Contains(t, out, "NO SIGNALS DETECTED")
	assert.Contains(t, out, "[FIX]")
}

func TestSimulateCommand_Scenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	scenario := `
steps: 3
beacons:
  - id: lone
    position: {x: 0, y: 3}
detectors:
  - id: a
    start: {x: -1, y: 0}
    step: {x: 1, y: 0}
  - id: b
    start: {x: 2, y: -1}
    step: {x: 0, y: 1}
`
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	out, _, err := execute(t, "simulate", "--plain", "--scenario", path, "-v")
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(out, "[LOG]"))
	assert.Contains(t, out, "[lone]")
	assert.Contains(t, out, "b@")
}

func TestSimulateCommand_ZeroSteps(t *testing.T) {
	out, _, err := execute(t, "simulate", "--plain", "--steps", "0")
	require.NoError(t, err)
	assert.Zero(t, strings.Count(out, "[LOG]"))
	assert.Contains(t, out, "0 estimates")
}

func TestSimulateCommand_Invalid(t *testing.T) {
	_, errOut, err := execute(t, "simulate", "--steps", "-2")
	assert.ErrorIs(t, err, config.ErrInvalidScenario)
	assert.Equal(t, 1, strings.Count(errOut, "steps must be >= 0"), "error is reported once")

	_, _, err = execute(t, "simulate", "--scenario", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 1.5, -2 ")
	require.NoError(t, err)
	assert.Equal(t, geometry.XY(1.5, -2), p)

	for _, given := range []string{"", "1", "1,2,3", "a,1", "1,b"} {
		_, err := parsePoint(given)
		assert.Error(t, err, given)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
