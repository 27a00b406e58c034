package dcel

import "sort"

// Vertex is a point of the subdivision together with the set of half-edges
// originating there.
//
// Invariant: every half-edge in the incidence set has this vertex as its
// origin.
type Vertex struct {
	Index int
	Loc   Point
	Data  map[string]any

	incident         map[*HalfEdge]struct{}
	markedForCleanup bool
	d                *DCEL
}

// HalfEdges returns the half-edges originating at this vertex, ordered by
// index.
func (v *Vertex) HalfEdges() []*HalfEdge {
	out := make([]*HalfEdge, 0, len(v.incident))
	for e := range v.incident {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func (v *Vertex) registerHalfEdge(e *HalfEdge) {
	v.incident[e] = struct{}{}
}

func (v *Vertex) unregisterHalfEdge(e *HalfEdge) {
	delete(v.incident, e)
}

// Within reports whether the vertex lies inside bbox or on its boundary.
func (v *Vertex) Within(bbox Rect) bool {
	return bbox.Contains(v.Loc)
}

// OutsideOf reports whether the vertex lies strictly outside bbox.
func (v *Vertex) OutsideOf(bbox Rect) bool {
	return !bbox.Contains(v.Loc)
}

// WithinCircle reports whether the vertex lies inside the circle or on it.
func (v *Vertex) WithinCircle(center Point, radius float64) bool {
	return v.Loc.DistanceSquared(center) <= radius*radius
}

// MarkForCleanup marks the vertex for logical deletion. Physical
// reclamation is the caller's responsibility.
func (v *Vertex) MarkForCleanup() {
	v.markedForCleanup = true
}

func (v *Vertex) MarkedForCleanup() bool {
	return v.markedForCleanup
}

// HasConstraints reports whether the vertex is used by any half-edge
// outside the candidate set. A vertex named in the set is treated as
// exclusively owned by the caller regardless of its incidence.
func (v *Vertex) HasConstraints(candidates *CandidateSet) bool {
	if candidates.ContainsVertex(v) {
		return false
	}
	for e := range v.incident {
		if !candidates.ContainsEdge(e) {
			return true
		}
	}
	return false
}

// Copy returns a fresh vertex at the same location, carrying a copy of the
// metadata. The incidence set is not copied.
func (v *Vertex) Copy() *Vertex {
	nv := v.d.NewVertex(v.Loc)
	nv.copyDataFrom(v.Data)
	return nv
}

// Translate moves the vertex by delta under the copy-on-write protocol.
func (v *Vertex) Translate(delta Vec2, candidates *CandidateSet, force bool) (*Vertex, Edit) {
	return v.TranslateTo(v.Loc.Translate(delta), candidates, force)
}

// TranslateTo moves the vertex to loc under the copy-on-write protocol: if
// the vertex is referenced outside the candidate set and force is false,
// a copy is created at loc instead and tagged EditNew.
func (v *Vertex) TranslateTo(loc Point, candidates *CandidateSet, force bool) (*Vertex, Edit) {
	if !force && v.HasConstraints(candidates) {
		nv := v.Copy()
		nv.Loc = loc
		return nv, EditNew
	}
	v.moveTo(loc)
	return v, EditModified
}

// moveTo relocates the vertex in place, invalidating the cached lengths of
// incident half-edges and the hull caches of their faces.
func (v *Vertex) moveTo(loc Point) {
	v.Loc = loc
	for e := range v.incident {
		e.invalidateLength()
		if e.Face != nil {
			e.Face.invalidateCoords()
		}
		if e.Twin != nil {
			e.Twin.invalidateLength()
			if e.Twin.Face != nil {
				e.Twin.Face.invalidateCoords()
			}
		}
	}
}

func (v *Vertex) copyDataFrom(data map[string]any) {
	for k, val := range data {
		v.Data[k] = val
	}
}
