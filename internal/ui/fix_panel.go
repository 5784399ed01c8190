package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"trilat.klederson.com/internal/detector"
	"trilat.klederson.com/internal/sim"
	"trilat.klederson.com/internal/trilat"
)

type field struct{ label, value string }

// RenderFixPanel renders details of the selected beacon in the current
// snapshot: its reading, the recent distance trend, and the candidate
// positions found at this step.
func RenderFixPanel(snap *detector.Snapshot, beaconID string, estimates []sim.Estimate, distances []float64, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	lines := []string{
		StylePanelTitle.Render("FIX"),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}

	if snap == nil {
		lines = append(lines, StyleHelp.Render(" No snapshot"))
		return finishPanel(lines, width, height)
	}

	fields := []field{
		{"Detector", snap.DetectorID},
		{"Position", snap.Position.String()},
		{"Time", formatTime(snap.Timestamp)},
	}
	if r, ok := snap.Signal(beaconID); ok {
		fields = append(fields,
			field{"Beacon", r.BeaconID},
			field{"RSSI", fmt.Sprintf("%.2f dBm", r.RSSI)},
		)
		if d, err := r.Distance(); err == nil {
			fields = append(fields, field{"Distance", fmt.Sprintf("%.2f m", d)})
		} else {
			fields = append(fields, field{"Distance", StyleError.Render(err.Error())})
		}
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf(" %-9s", f.label))+StyleValue.Render(f.value))
	}

	if len(distances) > 0 {
		lines = append(lines, "", StyleLabel.Render(" Distance trend:"))
		lines = append(lines, " "+lipgloss.NewStyle().Foreground(ColorGreen).Render(RenderSparkline(distances, innerW-2)))
	}

	lines = append(lines, "", StyleLabel.Render(" Candidates:"))
	found := false
	for _, e := range estimates {
		if e.BeaconID != beaconID || (e.From != snap && e.To != snap) {
			continue
		}
		found = true
		other := e.From
		if other == snap {
			other = e.To
		}
		lines = append(lines, StyleHelp.Render(fmt.Sprintf("  vs %s@%s (%s)", other.DetectorID, other.Position, e.Kind)))
		if len(e.Points) == 0 {
			lines = append(lines, StyleHelp.Render("    no intersection"))
			continue
		}
		for _, p := range e.Points {
			lines = append(lines, "    "+StyleFix.Render("X "+p.String()))
		}
		if spread, err := trilat.Spread(e.Points); err == nil {
			lines = append(lines, StyleHelp.Render(fmt.Sprintf("    spread %.2fm", spread)))
		}
	}
	if !found {
		lines = append(lines, StyleHelp.Render("  none at this step"))
	}

	return finishPanel(lines, width, height)
}

func finishPanel(lines []string, width, height int) string {
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}
	return StylePanelActive.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}

// RenderSparkline draws values as a one-line trend, scaled between their
// minimum and maximum. Only the last width values are shown.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = min(minV, v)
		maxV = max(maxV, v)
	}

	rng := maxV - minV
	if rng == 0 {
		rng = 1
	}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var sb strings.Builder
	for _, v := range values[start:] {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("15:04:05.000")
}
