package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the plot panel and the side panels horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, plotPanel, side, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, plotPanel, side)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}

// RenderPlotPanel wraps plot content with a styled border.
// The plot itself is rendered by the caller to avoid import cycles.
func RenderPlotPanel(width, height int, plotContent, legend string) string {
	content := plotContent + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// StackPanels places bottom under top.
func StackPanels(top, bottom string) string {
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}
