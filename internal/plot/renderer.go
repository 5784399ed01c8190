// Package plot draws the simulated plane: beacons, the detector track, the
// distance circles of the selected snapshots and the candidate positions.
package plot

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/signal"
)

var (
	colorBright    = lipgloss.Color("#00FF41")
	colorMid       = lipgloss.Color("#008F11")
	colorDim       = lipgloss.Color("#004A0A")
	colorBeacon    = lipgloss.Color("#00FFAA")
	colorCandidate = lipgloss.Color("#FFCC00")
	colorRing      = lipgloss.Color("#00AA22")

	styleDetector  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleTrack     = lipgloss.NewStyle().Foreground(colorMid)
	styleAxis      = lipgloss.NewStyle().Foreground(colorDim)
	styleBeacon    = lipgloss.NewStyle().Foreground(colorBeacon).Bold(true)
	styleLabel     = lipgloss.NewStyle().Foreground(colorBeacon)
	styleCandidate = lipgloss.NewStyle().Foreground(colorCandidate).Bold(true)
	styleRing      = lipgloss.NewStyle().Foreground(colorRing)
)

const maxLabelLen = 8

// Circle is a distance circle around a detector position.
type Circle struct {
	Center geometry.Point
	Radius float64
}

// Scene is everything a plot can show. Any field may be empty.
type Scene struct {
	Beacons    []signal.Beacon
	Track      []geometry.Point // detector positions, oldest first
	Detectors  []geometry.Point // current detector positions
	Circles    []Circle
	Candidates []geometry.Point
}

func (s Scene) points() []geometry.Point {
	var pts []geometry.Point
	for _, b := range s.Beacons {
		pts = append(pts, b.Position)
	}
	pts = append(pts, s.Track...)
	pts = append(pts, s.Detectors...)
	pts = append(pts, s.Candidates...)
	return pts
}

type cell struct {
	ch    rune
	style lipgloss.Style
}

// Render produces the plot as a styled string of exactly height lines.
func Render(width, height int, scene Scene) string {
	if width < 10 || height < 5 {
		return ""
	}

	vp := Fit(width, height, scene.points())

	grid := make([][]cell, height)
	for row := range grid {
		grid[row] = make([]cell, width)
		for col := range grid[row] {
			grid[row][col] = backgroundCell(vp, col, row)
		}
	}
	set := func(p geometry.Point, ch rune, style lipgloss.Style) (int, int, bool) {
		col, row, ok := vp.Cell(p)
		if ok {
			grid[row][col] = cell{ch, style}
		}
		return col, row, ok
	}

	// lowest priority first, later layers overwrite
	for _, c := range scene.Circles {
		drawCircle(grid, vp, c)
	}
	for _, p := range scene.Track {
		set(p, '+', styleTrack)
	}
	for _, p := range scene.Detectors {
		set(p, '@', styleDetector)
	}
	for _, b := range scene.Beacons {
		col, row, ok := set(b.Position, '*', styleBeacon)
		if ok {
			placeLabel(grid, col, row, label(b.ID))
		}
	}
	for _, p := range scene.Candidates {
		set(p, 'X', styleCandidate)
	}

	var sb strings.Builder
	for row := range grid {
		for _, c := range grid[row] {
			sb.WriteString(c.style.Render(string(c.ch)))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func backgroundCell(vp Viewport, col, row int) cell {
	p := vp.World(col, row)
	onX := math.Abs(p.Y) < vp.RowHeight()/2
	onY := math.Abs(p.X) < vp.Scale/2
	switch {
	case onX && onY:
		return cell{'+', styleAxis}
	case onX:
		return cell{'-', styleAxis}
	case onY:
		return cell{'|', styleAxis}
	}
	return cell{' ', lipgloss.NewStyle()}
}

func drawCircle(grid [][]cell, vp Viewport, c Circle) {
	for row := range grid {
		for col := range grid[row] {
			if vp.OnCircle(col, row, c.Center, c.Radius) {
				ch := RingChar(Angle(c.Center, vp.World(col, row)))
				grid[row][col] = cell{ch, styleRing}
			}
		}
	}
}

// placeLabel writes text to the right of (col, row), or to the left when it
// does not fit. Labels never overwrite anything but background.
func placeLabel(grid [][]cell, col, row int, text string) {
	width := len(grid[row])
	start := col + 2
	if start+len(text) > width {
		start = col - len(text) - 1
	}
	if start < 0 {
		return
	}
	for i := range text {
		if c := grid[row][start+i]; c.ch != ' ' && c.ch != '-' && c.ch != '|' {
			return
		}
	}
	for i, ch := range text {
		grid[row][start+i] = cell{ch, styleLabel}
	}
}

func label(id string) string {
	if len(id) > maxLabelLen {
		return id[:maxLabelLen]
	}
	return id
}

// RenderLegend produces the plot legend line.
func RenderLegend(width int) string {
	legend := styleBeacon.Render("* beacon") + "  " +
		styleDetector.Render("@ detector") + "  " +
		styleTrack.Render("+ track") + "  " +
		styleCandidate.Render("X fix") + "  " +
		styleRing.Render("o distance")

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
