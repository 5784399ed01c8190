package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position in the plane. Z is carried along but never takes part
// in distance calculations.
//
// Point is a value: Add returns a new Point and never modifies the receiver,
// so a position stored in a snapshot cannot change behind its back.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z,omitempty"`
}

// XY returns a planar point with Z=0.
func XY(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by delta.
func (p Point) Add(delta Point) Point {
	return Point(r3.Add(r3.Vec(p), r3.Vec(delta)))
}

// PlanarDistance returns the Euclidean distance between p and q in the XY plane.
func (p Point) PlanarDistance(q Point) float64 {
	return r2.Norm(r2.Sub(p.planar(), q.planar()))
}

func (p Point) planar() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
