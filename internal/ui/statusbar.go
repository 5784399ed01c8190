package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, playing bool, step, steps, beacons, heard, fixes int, pathLossExp float64) string {
	status := StyleStatusPaused.Render("[PAUSED]")
	if playing {
		status = StyleStatusPlaying.Render("[PLAYING]")
	}

	info := fmt.Sprintf(" Step: %d/%d  Beacons: %d  Heard: %d  Fixes: %d  N: %.1f",
		step+1, steps, beacons, heard, fixes, pathLossExp)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - StyleStatusBar.GetHorizontalFrameSize() - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
