package dcel

import (
	"fmt"
	"math"
)

// Line represents a line segment.
type Line struct {
	// The segment's start point.
	P0 Point
	// The segment's end point.
	P1 Point
}

func (l Line) String() string {
	return fmt.Sprintf("%v → %v", l.P0, l.P1)
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Eval returns the point at parameter t, with t = 0 at the start of the
// segment and t = 1 at the end.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Midpoint returns the midpoint of the segment.
func (l Line) Midpoint() Point {
	return l.P0.Midpoint(l.P1)
}

// Reversed returns the segment with its endpoints swapped.
func (l Line) Reversed() Line {
	return Line{l.P1, l.P0}
}

// Intersect computes the point where the two segments cross. The second
// return value reports whether such a point exists. Coincident (or nearly
// coincident) segments are reported as not crossing.
func (l Line) Intersect(o Line) (Point, bool) {
	const epsilon = 1e-9
	dx := o.P1.X - o.P0.X
	dy := o.P1.Y - o.P0.Y

	det := dx*(l.P1.Y-l.P0.Y) - dy*(l.P1.X-l.P0.X)
	if math.Abs(det) < epsilon {
		return Point{}, false
	}
	// t = position on l
	t := (dx*(o.P0.Y-l.P0.Y) - dy*(o.P0.X-l.P0.X)) / det
	if t < -epsilon || t > 1+epsilon {
		return Point{}, false
	}
	// u = position on o
	u := ((l.P0.X-o.P0.X)*(l.P1.Y-l.P0.Y) - (l.P0.Y-o.P0.Y)*(l.P1.X-l.P0.X)) / det
	if u < -epsilon || u > 1+epsilon {
		return Point{}, false
	}
	return l.Eval(min(max(t, 0), 1)), true
}

// IntersectCircle returns the points where the segment crosses the circle
// with the given center and radius. The result has zero, one, or two
// entries, ordered by their position along the segment.
func (l Line) IntersectCircle(center Point, radius float64) []Point {
	const epsilon = 1e-9
	d := l.P1.Sub(l.P0)
	f := l.P0.Sub(center)

	a := d.Dot(d)
	b := 2 * f.Dot(d)
	c := f.Dot(f) - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 || a == 0 {
		return nil
	}
	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)

	var pts []Point
	if t1 >= -epsilon && t1 <= 1+epsilon {
		pts = append(pts, l.Eval(min(max(t1, 0), 1)))
	}
	if disc > epsilon && t2 >= -epsilon && t2 <= 1+epsilon {
		pts = append(pts, l.Eval(min(max(t2, 0), 1)))
	}
	return pts
}

// Nearest returns the squared distance from pt to the segment and the
// parameter of the closest point on the segment.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 || dSquared == 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

// PointOn reports whether pt lies on the segment, within tolerance.
func (l Line) PointOn(pt Point, tolerance float64) bool {
	distSq, _ := l.Nearest(pt)
	return distSq <= tolerance*tolerance
}

// Extend returns the point at distance d beyond the end of the segment,
// along the segment's direction.
func (l Line) Extend(d float64) Point {
	return l.P1.Translate(l.P1.Sub(l.P0).Normalize().Mul(d))
}

// Bisector returns the unit direction perpendicular to the segment. For a
// counter-clockwise boundary edge this points into the face's interior.
func (l Line) Bisector() Vec2 {
	return l.P1.Sub(l.P0).Perp().Normalize()
}
