package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trilat.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, detectorID string, playing bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"<>", "step"},
		{"Tab", "detector"},
		{"Space", "play"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := StyleStatusPaused.Render("PAUSED")
	if playing {
		status = StyleStatusPlaying.Render("PLAYING")
	}

	detectorInfo := StyleMenuLabel.Render(fmt.Sprintf("Detector: %s", detectorID))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + detectorInfo + " "

	gap := width - StyleMenuBar.GetHorizontalFrameSize() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
