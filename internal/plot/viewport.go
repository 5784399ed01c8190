package plot

import (
	"math"

	"trilat.klederson.com/internal/config"
	"trilat.klederson.com/internal/geometry"
)

// Viewport maps world coordinates (meters) to terminal cells. One column is
// Scale meters wide; a row is Scale/AspectRatio meters tall since terminal
// cells are about twice as tall as they are wide.
type Viewport struct {
	Width, Height int
	MinX, MaxY    float64
	Scale         float64
}

// Fit returns a viewport of width x height cells showing every point with a
// margin of one meter.
func Fit(width, height int, points []geometry.Point) Viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if len(points) == 0 {
		minX, minY, maxX, maxY = -1, -1, 1, 1
	}
	minX--
	minY--
	maxX++
	maxY++

	cols := float64(max(width-1, 1))
	rows := float64(max(height-1, 1))
	scale := math.Max((maxX-minX)/cols, (maxY-minY)*config.AspectRatio/rows)

	// center the content
	usedW := (maxX - minX) / scale
	usedH := (maxY - minY) * config.AspectRatio / scale
	minX -= (cols - usedW) / 2 * scale
	maxY += (rows - usedH) / 2 * scale / config.AspectRatio

	return Viewport{Width: width, Height: height, MinX: minX, MaxY: maxY, Scale: scale}
}

// RowHeight returns the height of one row in meters.
func (v Viewport) RowHeight() float64 {
	return v.Scale / config.AspectRatio
}

// Cell returns the cell holding p, and false if p is outside the viewport.
func (v Viewport) Cell(p geometry.Point) (col, row int, ok bool) {
	col = int(math.Round((p.X - v.MinX) / v.Scale))
	row = int(math.Round((v.MaxY - p.Y) / v.RowHeight()))
	ok = col >= 0 && col < v.Width && row >= 0 && row < v.Height
	return col, row, ok
}

// World returns the world position at the center of a cell.
func (v Viewport) World(col, row int) geometry.Point {
	return geometry.XY(v.MinX+float64(col)*v.Scale, v.MaxY-float64(row)*v.RowHeight())
}

// OnCircle reports whether the cell at (col, row) lies on the circle of
// radius r around center.
func (v Viewport) OnCircle(col, row int, center geometry.Point, r float64) bool {
	p := v.World(col, row)
	return math.Abs(p.PlanarDistance(center)-r) < v.Scale*0.6
}

// Angle returns the bearing from center to p in radians [0, 2π),
// 0=north, increasing clockwise.
func Angle(center, p geometry.Point) float64 {
	angle := math.Atan2(p.X-center.X, p.Y-center.Y)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// RingChar returns the character drawing a circle at the given bearing.
func RingChar(angle float64) rune {
	sector := int(math.Round(NormalizeAngle(angle)/(math.Pi/4))) % 8

	switch sector {
	case 0, 4: // North, South
		return '-'
	case 1, 5: // NE, SW
		return '\\'
	case 2, 6: // East, West
		return '|'
	default: // SE, NW
		return '/'
	}
}

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
