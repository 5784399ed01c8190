package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trilat.klederson.com/internal/config"
	"trilat.klederson.com/internal/detector"
	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/signal"
	"trilat.klederson.com/internal/sim"
)

func TestWriter_Snapshot(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Plain())

	s := detector.NewSnapshot("backpack", geometry.XY(-2, 3), time.Date(2016, 1, 1, 12, 30, 0, 0, time.UTC))
	s.LogSignal("tango", -59, signal.SynthesizeRSSI(-59, 4, 2.5), 2.5)

	require.NoError(t, w.Snapshot(s))
	out := buf.String()

	assert.Contains(t, out, "[LOG]")
	assert.Contains(t, out, "12:30:00.000")
	assert.Contains(t, out, "(-2.00, 3.00)")
	assert.Contains(t, out, `detector "backpack" received 1 signals`)
	assert.Contains(t, out, "[tango]")
	assert.Contains(t, out, "-28.90 dBm")
	assert.Contains(t, out, "4.00 m")
	assert.NotContains(t, out, "\x1b[", "plain output has no escape codes")
}

func TestWriter_SnapshotEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Plain())

	require.NoError(t, w.Snapshot(detector.NewSnapshot("d", geometry.XY(0, 0), time.Time{})))
	assert.Contains(t, buf.String(), "NO SIGNALS DETECTED")
}

func TestWriter_SnapshotBadExponent(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Plain())

	s := detector.NewSnapshot("d", geometry.XY(0, 0), time.Time{})
	s.LogSignal("x", -59, -60, 0)
	require.NoError(t, w.Snapshot(s))
	assert.Contains(t, buf.String(), "invalid parameter")
}

func TestWriter_Result(t *testing.T) {
	runner, err := sim.New(config.DefaultScenario())
	require.NoError(t, err)
	result, err := runner.Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, Plain()).Result(result))
	out := buf.String()

	assert.Equal(t, config.DefaultSteps, bytes.Count(buf.Bytes(), []byte("[LOG]")))
	assert.Contains(t, out, "estimates")
	assert.Contains(t, out, "[FIX]")
	assert.Contains(t, out, " or ")
}

func TestWriter_EstimateWithoutPoints(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Plain())

	from := detector.NewSnapshot("a", geometry.XY(0, 0), time.Time{})
	to := detector.NewSnapshot("b", geometry.XY(10, 0), time.Time{})
	require.NoError(t, w.Estimate(sim.Estimate{Step: 2, BeaconID: "x", From: from, To: to}))

	assert.Contains(t, buf.String(), "step 2")
	assert.Contains(t, buf.String(), "no intersection")
}
