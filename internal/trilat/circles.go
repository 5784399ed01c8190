// Package trilat intersects the distance circles of two observations.
package trilat

import (
	"errors"
	"fmt"
	"math"

	"trilat.klederson.com/internal/geometry"
	"trilat.klederson.com/internal/signal"
)

// ErrCoincidentCircles is returned when both circles are the same circle and
// the intersection is not a finite set of points.
var ErrCoincidentCircles = fmt.Errorf("%w: coincident circles", signal.ErrInvalidParameter)

// Intersect returns the intersection points of the circle of radius r0 around
// p0 and the circle of radius r1 around p1.
//
// The result is either empty (circles apart, externally touching, or one
// inside the other) or exactly two points. The two points coincide when one
// circle touches the other from inside. Which of the two is the real beacon
// cannot be told from two circles alone.
func Intersect(p0 geometry.Point, r0 float64, p1 geometry.Point, r1 float64) ([]geometry.Point, error) {
	if !validRadius(r0) || !validRadius(r1) {
		return nil, fmt.Errorf("%w: radii %v, %v", signal.ErrInvalidParameter, r0, r1)
	}

	a, b := p0.X, p0.Y
	c, d := p1.X, p1.Y
	D := p0.PlanarDistance(p1)

	if r0+r1 <= D {
		return nil, nil
	}
	if math.Abs(r0-r1) > D {
		return nil, nil
	}
	if D == 0 {
		// only equal radii get here
		return nil, ErrCoincidentCircles
	}

	// Heron: area of the triangle centre-centre-intersection
	area := (D + r0 + r1) * (D + r0 - r1) * (D - r0 + r1) * (-D + r0 + r1)
	delta := 0.25 * math.Sqrt(math.Max(area, 0))

	d2 := D * D
	k := (r0*r0 - r1*r1) / (2 * d2)
	mx := (a+c)/2 + (c-a)*k
	my := (b+d)/2 + (d-b)*k
	ox := 2 * (b - d) / d2 * delta
	oy := 2 * (a - c) / d2 * delta

	return []geometry.Point{
		geometry.XY(mx+ox, my-oy),
		geometry.XY(mx-ox, my+oy),
	}, nil
}

// Midpoint returns the centroid of points, or false for an empty slice.
func Midpoint(points []geometry.Point) (geometry.Point, bool) {
	if len(points) == 0 {
		return geometry.Point{}, false
	}
	var sum geometry.Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	n := float64(len(points))
	return geometry.Point{X: sum.X / n, Y: sum.Y / n, Z: sum.Z / n}, true
}

// Spread returns the distance between the two intersection points, zero for
// tangent circles. A wide spread means the two candidates are far apart and
// a third observation is needed to pick one.
func Spread(points []geometry.Point) (float64, error) {
	if len(points) != 2 {
		return 0, errors.New("spread needs exactly two points")
	}
	return points[0].PlanarDistance(points[1]), nil
}

func validRadius(r float64) bool {
	return r >= 0 && !math.IsInf(r, 0)
}
