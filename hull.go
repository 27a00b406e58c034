package dcel

import "sort"

// convexHull returns the indices into pts of the points forming the convex
// hull, wound counter-clockwise. Interior and duplicate points are omitted.
// Inputs with fewer than three distinct points yield the distinct points in
// sorted order.
func convexHull(pts []Point) []int {
	n := len(pts)
	if n == 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		pa, pb := pts[idx[a]], pts[idx[b]]
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})

	// Drop exact duplicates so they cannot survive as fake hull members.
	distinct := idx[:0]
	var last Point
	for i, j := range idx {
		if i == 0 || pts[j] != last {
			distinct = append(distinct, j)
			last = pts[j]
		}
	}
	idx = distinct
	if len(idx) < 3 {
		out := make([]int, len(idx))
		copy(out, idx)
		return out
	}

	cross := func(o, a, b int) float64 {
		return pts[a].Sub(pts[o]).Cross(pts[b].Sub(pts[o]))
	}

	var lower []int
	for _, i := range idx {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], i) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, i)
	}
	var upper []int
	for j := len(idx) - 1; j >= 0; j-- {
		i := idx[j]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], i) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, i)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// hullVertices partitions verts into the members of their convex hull, in
// counter-clockwise hull order, and the discarded interior vertices.
func hullVertices(verts []*Vertex) (hull, discarded []*Vertex) {
	pts := make([]Point, len(verts))
	for i, v := range verts {
		pts[i] = v.Loc
	}
	onHull := make(map[*Vertex]bool, len(verts))
	for _, i := range convexHull(pts) {
		hull = append(hull, verts[i])
		onHull[verts[i]] = true
	}
	for _, v := range verts {
		if !onHull[v] {
			discarded = append(discarded, v)
		}
	}
	return hull, discarded
}

// hullPoints returns the convex hull of a coordinate set, wound
// counter-clockwise.
func hullPoints(pts []Point) []Point {
	indices := convexHull(pts)
	out := make([]Point, len(indices))
	for i, j := range indices {
		out[i] = pts[j]
	}
	return out
}
