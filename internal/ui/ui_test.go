package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"trilat.klederson.com/internal/detector"
	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/sim"
	"trilat.klederson.com/internal/signal"
)

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		given    []float64
		width    int
		expected string
	}{
		{given: nil, width: 10, expected: ""},
		{given: []float64{1, 2, 3, 4, 5}, width: 10, expected: "_.-~^"},
		{given: []float64{5, 4, 3, 2, 1}, width: 3, expected: "-._"},
		{given: []float64{2, 2, 2}, width: 10, expected: "___"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, RenderSparkline(test.given, test.width))
	}
}

func TestRenderSignalList(t *testing.T) {
	snap := detector.NewSnapshot("d", geometry.XY(0, 0), time.Time{})
	snap.LogSignal("tango", -59, signal.SynthesizeRSSI(-59, 3, 2.5), 2.5)
	snap.LogSignal("foxtrot", -59, signal.SynthesizeRSSI(-59, 4, 2.5), 2.5)

	out := RenderSignalList(snap, 30, 12, 1)
	assert.Contains(t, out, "SIGNALS [2]")
	assert.Contains(t, out, "foxtrot")
	assert.Contains(t, out, ">> tango")
	assert.Contains(t, out, "~4.00m")
	assert.Len(t, strings.Split(out, "\n"), 12)

	empty := RenderSignalList(nil, 30, 8, 0)
	assert.Contains(t, empty, "No signals")
}

func TestRenderFixPanel(t *testing.T) {
	from := detector.NewSnapshot("d", geometry.XY(0, 0), time.Time{})
	to := detector.NewSnapshot("d", geometry.XY(6, 0), time.Time{})
	from.LogSignal("a", -59, signal.SynthesizeRSSI(-59, 5, 2), 2)
	to.LogSignal("a", -59, signal.SynthesizeRSSI(-59, 5, 2), 2)

	estimates := []sim.Estimate{{
		Step: 1, BeaconID: "a", Kind: sim.PairConsecutive, From: from, To: to,
		Points: []geometry.Point{geometry.XY(3, 4), geometry.XY(3, -4)},
	}}

	out := RenderFixPanel(to, "a", estimates, []float64{6, 5}, 50, 30)
	assert.Contains(t, out, "5.00 m")
	assert.Contains(t, out, "X (3.00, 4.00)")
	assert.Contains(t, out, "X (3.00, -4.00)")
	assert.Contains(t, out, "spread 8.00m")
	assert.Contains(t, out, "consecutive")

	other := RenderFixPanel(to, "b", estimates, nil, 50, 30)
	assert.Contains(t, other, "none at this step")

	assert.Contains(t, RenderFixPanel(nil, "", nil, nil, 50, 10), "No snapshot")
}

func TestRenderBars(t *testing.T) {
	menu := RenderMenuBar(100, "backpack", true)
	assert.Contains(t, menu, "PLAYING")
	assert.Contains(t, menu, "backpack")
	assert.Equal(t, 100, lipgloss.Width(menu))

	status := RenderStatusBar(100, false, 4, 30, 2, 1, 1, 2.5)
	assert.Contains(t, status, "PAUSED")
	assert.Contains(t, status, "Step: 5/30")
}
