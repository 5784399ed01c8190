package ui

import (
	"fmt"
	"strings"

	"trilat.klederson.com/internal/detector"
)

// RenderSignalList renders the signals of one snapshot, one entry per beacon,
// with the cursor entry highlighted.
func RenderSignalList(snap *detector.Snapshot, width, height, cursor int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}
	innerH := height - 2
	if innerH < 3 {
		innerH = 3
	}

	count := 0
	if snap != nil {
		count = snap.Len()
	}
	lines := []string{
		StylePanelTitle.Render(fmt.Sprintf("SIGNALS [%d]", count)),
		StyleSeparator.Render(strings.Repeat("-", innerW)),
	}

	if count == 0 {
		lines = append(lines, "", StyleHelp.Render(" No signals..."), StyleHelp.Render(" Out of range"))
	} else {
		for i, r := range snap.Signals() {
			dist := "?"
			if d, err := r.Distance(); err == nil {
				dist = fmt.Sprintf("~%.2fm", d)
			}
			rssi := fmt.Sprintf("%.1fdBm", r.RSSI)

			if i == cursor {
				raw1 := truncRaw(fmt.Sprintf(">> %s", r.BeaconID), innerW)
				raw2 := truncRaw(fmt.Sprintf("   %s  %s", rssi, dist), innerW)
				lines = append(lines, StyleCursorRow.Render(raw1), StyleCursorRow.Render(raw2))
				continue
			}
			lines = append(lines,
				"   "+StyleBeaconID.Render(truncRaw(r.BeaconID, innerW-3)),
				"   "+StyleSignalRSSI.Render(rssi)+"  "+StyleSignalDist.Render(dist),
			)
		}
	}

	// lipgloss Height() only sets a minimum, clamp overflow ourselves
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	return StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if w < 0 {
		w = 0
	}
	if len(s) > w {
		return s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}
