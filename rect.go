package dcel

import "fmt"

// Rect is an axis-aligned rectangle, used as the clipping region for
// bounding-box constraints.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1,
// ensuring that width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// Abs returns a new rectangle with the same extents as r, but ensuring that
// width and height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) MinX() float64 { return min(r.X0, r.X1) }
func (r Rect) MaxX() float64 { return max(r.X0, r.X1) }
func (r Rect) MinY() float64 { return min(r.Y0, r.Y1) }
func (r Rect) MaxY() float64 { return max(r.Y0, r.Y1) }

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// Contains reports whether pt lies inside the rectangle or on its boundary.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.MinX() &&
		pt.X <= r.MaxX() &&
		pt.Y >= r.MinY() &&
		pt.Y <= r.MaxY()
}

// IsValid reports whether the rectangle has non-negative extent in both
// dimensions.
func (r Rect) IsValid() bool {
	return r.X0 <= r.X1 && r.Y0 <= r.Y1
}

// RectSide identifies one of the four sides of a rectangle.
type RectSide int

const (
	SideLeft RectSide = iota
	SideRight
	SideTop
	SideBottom
)

func (s RectSide) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return fmt.Sprintf("RectSide(%d)", int(s))
	}
}

// Side returns the segment forming the given side of the rectangle. Top and
// bottom refer to the maximum and minimum y extents respectively.
func (r Rect) Side(s RectSide) Line {
	r = r.Abs()
	switch s {
	case SideLeft:
		return Line{Pt(r.X0, r.Y0), Pt(r.X0, r.Y1)}
	case SideRight:
		return Line{Pt(r.X1, r.Y0), Pt(r.X1, r.Y1)}
	case SideTop:
		return Line{Pt(r.X0, r.Y1), Pt(r.X1, r.Y1)}
	case SideBottom:
		return Line{Pt(r.X0, r.Y0), Pt(r.X1, r.Y0)}
	default:
		panic(fmt.Sprintf("invalid RectSide %d", int(s)))
	}
}

// Sides returns the four sides of the rectangle in a fixed order.
func (r Rect) Sides() [4]RectSide {
	return [4]RectSide{SideLeft, SideRight, SideTop, SideBottom}
}

// Corner returns the corner point shared by two adjacent sides.
func (r Rect) Corner(a, b RectSide) (Point, bool) {
	if a == b {
		return Point{}, false
	}
	if a == SideTop || a == SideBottom {
		a, b = b, a
	}
	r = r.Abs()
	var x, y float64
	switch a {
	case SideLeft:
		x = r.X0
	case SideRight:
		x = r.X1
	default:
		return Point{}, false
	}
	switch b {
	case SideBottom:
		y = r.Y0
	case SideTop:
		y = r.Y1
	default:
		return Point{}, false
	}
	return Pt(x, y), true
}
