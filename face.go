package dcel

import (
	"fmt"
	"math"
	"sort"
)

// Face is a region of the subdivision, bounded by a counter-clockwise loop
// of half-edges. It may be anchored to a site point; without one, its
// centroid is derived from the boundary vertices. Free vertices not yet
// claimed by any edge can be attached to seed a convex hull.
type Face struct {
	Index int
	// Site anchors the face to a generator point. Nil means the centroid
	// is derived from the boundary.
	Site *Point
	Data map[string]any

	edges     []*HalfEdge
	freeVerts map[*Vertex]struct{}
	coords    []Point // cached hull of all vertices; nil when invalid

	markedForCleanup bool
	d                *DCEL
}

func (f *Face) String() string {
	return fmt.Sprintf("Face %d: %d boundary edges", f.Index, len(f.edges))
}

func (f *Face) MarkForCleanup() {
	f.markedForCleanup = true
}

func (f *Face) MarkedForCleanup() bool {
	return f.markedForCleanup
}

// HasEdges reports whether the face has a non-empty boundary.
func (f *Face) HasEdges() bool {
	return len(f.edges) > 0
}

// Edges returns a copy of the boundary list.
func (f *Face) Edges() []*HalfEdge {
	out := make([]*HalfEdge, len(f.edges))
	copy(out, f.edges)
	return out
}

// AddEdge claims edge for this face: it is removed from any previous face,
// appended to the boundary list, and given this face as its back-reference.
// Claiming an edge clears its cleanup mark.
func (f *Face) AddEdge(edge *HalfEdge) {
	if edge == nil || edge.Face == f {
		return
	}
	if edge.Face != nil {
		edge.Face.RemoveEdge(edge)
	}
	f.invalidateCoords()
	edge.Face = f
	for _, e := range f.edges {
		if e == edge {
			edge.markedForCleanup = false
			return
		}
	}
	f.edges = append(f.edges, edge)
	edge.markedForCleanup = false
}

// AddEdges claims every edge in edges.
func (f *Face) AddEdges(edges []*HalfEdge) {
	for _, e := range edges {
		f.AddEdge(e)
	}
}

// RemoveEdge drops edge from the boundary list and clears its face
// back-reference. An edge left with no face on either side is marked for
// cleanup.
func (f *Face) RemoveEdge(edge *HalfEdge) {
	if edge == nil || len(f.edges) == 0 {
		return
	}
	for i, e := range f.edges {
		if e == edge {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			f.invalidateCoords()
			break
		}
	}
	if edge.Face == f {
		edge.Face = nil
	}
	if edge.Twin == nil || edge.Twin.Face == nil {
		edge.MarkForCleanup()
	}
}

// setBoundary replaces the boundary list wholesale, updating every edge's
// back-reference.
func (f *Face) setBoundary(edges []*HalfEdge) {
	f.edges = edges
	for _, e := range edges {
		e.Face = f
	}
	f.invalidateCoords()
}

func (f *Face) insertEdgeAt(i int, edge *HalfEdge) {
	edge.Face = f
	f.edges = append(f.edges, nil)
	copy(f.edges[i+1:], f.edges[i:])
	f.edges[i] = edge
	f.invalidateCoords()
}

func (f *Face) edgeIndex(edge *HalfEdge) int {
	for i, e := range f.edges {
		if e == edge {
			return i
		}
	}
	return -1
}

// AddVertex attaches a free vertex, usable for hull construction before
// any boundary edges exist.
func (f *Face) AddVertex(v *Vertex) {
	if v == nil {
		return
	}
	f.freeVerts[v] = struct{}{}
	f.invalidateCoords()
}

// AllVertices returns every vertex of the face, both free and incident to
// boundary edges, sorted by index.
func (f *Face) AllVertices() []*Vertex {
	seen := make(map[*Vertex]struct{}, len(f.freeVerts)+2*len(f.edges))
	for v := range f.freeVerts {
		seen[v] = struct{}{}
	}
	for _, e := range f.edges {
		a, b := e.Vertices()
		if a != nil {
			seen[a] = struct{}{}
		}
		if b != nil {
			seen[b] = struct{}{}
		}
	}
	out := make([]*Vertex, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// AllCoords returns the convex hull of the face's vertex locations, cached
// until the boundary or free-vertex set changes.
func (f *Face) AllCoords() []Point {
	if f.coords != nil {
		return f.coords
	}
	verts := f.AllVertices()
	pts := make([]Point, len(verts))
	for i, v := range verts {
		pts[i] = v.Loc
	}
	f.coords = hullPoints(pts)
	return f.coords
}

func (f *Face) invalidateCoords() {
	f.coords = nil
}

// Bbox returns the axis-aligned bounds of the boundary edges' origins. A
// face with no located origins yields the zero rectangle.
func (f *Face) Bbox() Rect {
	first := true
	var r Rect
	for _, e := range f.edges {
		if e.Origin == nil {
			continue
		}
		p := e.Origin.Loc
		if first {
			r = Rect{p.X, p.Y, p.X, p.Y}
			first = false
			continue
		}
		r.X0 = math.Min(r.X0, p.X)
		r.Y0 = math.Min(r.Y0, p.Y)
		r.X1 = math.Max(r.X1, p.X)
		r.Y1 = math.Max(r.Y1, p.Y)
	}
	return r
}

// Centroid returns the site point if one is set, else the averaged
// centroid of the boundary origins.
func (f *Face) Centroid() Point {
	if f.Site != nil {
		return *f.Site
	}
	return f.AvgCentroid()
}

// AvgCentroid returns the mean of the boundary edges' origin locations.
func (f *Face) AvgCentroid() Point {
	var sum Vec2
	n := 0
	for _, e := range f.edges {
		if e.Origin != nil {
			sum = sum.Add(Vec2(e.Origin.Loc))
			n++
		}
	}
	if n == 0 {
		return Point{}
	}
	return Point(sum.Mul(1 / float64(n)))
}

// CentroidFromBbox returns the centre of the face's bounding box.
func (f *Face) CentroidFromBbox() Point {
	return f.Bbox().Center()
}

// SortEdges repairs boundary orientation and ordering: every boundary
// half-edge not wound counter-clockwise about the centroid swaps face
// assignment with its twin, then the list is sorted by bearing about the
// centroid, ties broken by distance.
func (f *Face) SortEdges() error {
	const op = "Face.SortEdges"
	center := f.Centroid()
	for _, e := range f.Edges() {
		ok, err := e.ccw(center)
		if err != nil {
			return err
		}
		if !ok {
			if err := e.SwapFaces(); err != nil {
				return err
			}
		}
	}
	for _, e := range f.edges {
		ok, err := e.ccw(center)
		if err != nil {
			return err
		}
		if !ok {
			return errTopology(op, "face %d cannot be wound counter-clockwise about %v", f.Index, center)
		}
	}
	sort.SliceStable(f.edges, func(i, j int) bool {
		bi := f.edges[i].Bearing(center)
		bj := f.edges[j].Bearing(center)
		if bi != bj {
			return bi < bj
		}
		di := center.DistanceSquared(f.edges[i].Origin.Loc)
		dj := center.DistanceSquared(f.edges[j].Origin.Loc)
		return di < dj
	})
	return nil
}

// Copy clones the face: every boundary edge is copied with fresh vertices,
// claimed by a new face, along with the metadata. The site is not copied.
func (f *Face) Copy() (*Face, error) {
	nf := f.d.NewFace()
	for _, e := range f.edges {
		ne, err := e.Copy()
		if err != nil {
			return nil, err
		}
		nf.AddEdge(ne)
	}
	for k, v := range f.Data {
		nf.Data[k] = v
	}
	return nf, nil
}

// HasConstraints reports whether any boundary edge is referenced by
// something outside the face itself, its boundary half-edges and their
// twins, and candidates.
func (f *Face) HasConstraints(candidates *CandidateSet) bool {
	cps := candidates.Clone()
	cps.AddFace(f)
	for _, e := range f.edges {
		cps.AddEdge(e)
		cps.AddEdge(e.Twin)
	}
	for _, e := range f.edges {
		if e.HasConstraints(cps) {
			return true
		}
	}
	return false
}

// CutOut detaches the face from shared structure under the copy-on-write
// protocol: a constrained face is cloned, an unconstrained one is returned
// as is.
func (f *Face) CutOut(candidates *CandidateSet, force bool) (*Face, Edit, error) {
	if !force && f.HasConstraints(candidates) {
		nf, err := f.Copy()
		if err != nil {
			return nil, 0, err
		}
		return nf, EditNew, nil
	}
	return f, EditModified, nil
}

// TranslateEdge moves the i'th boundary edge by delta under the
// copy-on-write protocol.
func (f *Face) TranslateEdge(delta Vec2, i int, candidates *CandidateSet, force bool) (*Face, Edit, error) {
	const op = "Face.TranslateEdge"
	if i < 0 || i >= len(f.edges) {
		return nil, 0, errPrecondition(op, "edge index %d outside boundary of %d edges", i, len(f.edges))
	}
	if !force && f.HasConstraints(candidates) {
		nf, err := f.Copy()
		if err != nil {
			return nil, 0, err
		}
		if _, _, err := nf.TranslateEdge(delta, i, nil, true); err != nil {
			return nil, 0, err
		}
		return nf, EditNew, nil
	}
	if _, _, err := f.edges[i].Translate(delta, nil, true); err != nil {
		return nil, 0, err
	}
	return f, EditModified, nil
}

// Rotate turns the whole face by rads about target under the copy-on-write
// protocol. A nil target rotates about the bbox centre.
func (f *Face) Rotate(rads float64, target *Point, candidates *CandidateSet, force bool) (*Face, Edit, error) {
	const op = "Face.Rotate"
	if rads < -2*math.Pi || rads > 2*math.Pi {
		return nil, 0, errPrecondition(op, "angle %g outside [-2π, 2π]", rads)
	}
	if !force && f.HasConstraints(candidates) {
		nf, err := f.Copy()
		if err != nil {
			return nil, 0, err
		}
		if _, _, err := nf.Rotate(rads, target, nil, true); err != nil {
			return nil, 0, err
		}
		return nf, EditNew, nil
	}
	center := f.CentroidFromBbox()
	if target != nil {
		center = *target
	}
	for _, v := range f.AllVertices() {
		v.TranslateTo(v.Loc.Rotate(center, rads), nil, true)
	}
	return f, EditModified, nil
}

// Scale stretches the face componentwise by amnt about target under the
// copy-on-write protocol. A nil target scales about the bbox centre.
func (f *Face) Scale(amnt Vec2, target *Point, candidates *CandidateSet, force bool) (*Face, Edit, error) {
	if !force && f.HasConstraints(candidates) {
		nf, err := f.Copy()
		if err != nil {
			return nil, 0, err
		}
		if _, _, err := nf.Scale(amnt, target, nil, true); err != nil {
			return nil, 0, err
		}
		return nf, EditNew, nil
	}
	center := f.CentroidFromBbox()
	if target != nil {
		center = *target
	}
	for _, v := range f.AllVertices() {
		d := v.Loc.Sub(center)
		loc := center.Translate(Vec2{d.X * amnt.X, d.Y * amnt.Y})
		v.TranslateTo(loc, nil, true)
	}
	return f, EditModified, nil
}

// ConstrainToCircle clips every boundary edge to the circle, dropping the
// edges that end up fully outside. Under the copy-on-write protocol a
// constrained face is cloned first.
func (f *Face) ConstrainToCircle(center Point, radius float64, candidates *CandidateSet, force bool) (*Face, Edit, error) {
	if !force && f.HasConstraints(candidates) {
		nf, err := f.Copy()
		if err != nil {
			return nil, 0, err
		}
		if _, _, err := nf.ConstrainToCircle(center, radius, nil, true); err != nil {
			return nil, 0, err
		}
		return nf, EditNew, nil
	}
	for _, e := range f.Edges() {
		eprime, _, err := e.ConstrainToCircle(center, radius, nil, true)
		if err != nil {
			return nil, 0, err
		}
		if eprime.MarkedForCleanup() {
			f.RemoveEdge(eprime)
		}
	}
	return f, EditModified, nil
}

// ConstrainToBbox clips every boundary edge to the rectangle, dropping the
// edges that lie fully outside. Under the copy-on-write protocol a
// constrained face is cloned first.
func (f *Face) ConstrainToBbox(bbox Rect, candidates *CandidateSet, force bool) (*Face, Edit, error) {
	if !force && f.HasConstraints(candidates) {
		nf, err := f.Copy()
		if err != nil {
			return nil, 0, err
		}
		if _, _, err := nf.ConstrainToBbox(bbox, nil, true); err != nil {
			return nil, 0, err
		}
		return nf, EditNew, nil
	}
	for _, e := range f.Edges() {
		eprime, _, err := e.ConstrainToBbox(bbox, candidates, true)
		if err != nil {
			return nil, 0, err
		}
		if eprime.MarkedForCleanup() {
			f.RemoveEdge(eprime)
		}
	}
	return f, EditModified, nil
}

// Subdivide cuts the face in two. The given boundary edge is split at the
// ratio point; from there a probe is cast along the edge's bisector,
// rotated by angleDeg degrees, until it crosses exactly one other boundary
// edge, which is split at the crossing. A new dividing edge joins the two
// split vertices, and the boundary is partitioned between this face and a
// new one. Returns both faces.
func (f *Face) Subdivide(edge *HalfEdge, ratio, angleDeg float64) (*Face, *Face, error) {
	const op = "Face.Subdivide"
	if f.edgeIndex(edge) < 0 {
		return nil, nil, errPrecondition(op, "edge %d is not on face %d", edge.Index, f.Index)
	}
	if ratio < 0 || ratio > 1 {
		return nil, nil, errPrecondition(op, "ratio %g outside [0, 1]", ratio)
	}
	if angleDeg < -90 || angleDeg > 90 {
		return nil, nil, errPrecondition(op, "angle %g outside [-90, 90]", angleDeg)
	}
	if err := f.SortEdges(); err != nil {
		return nil, nil, err
	}
	l, err := edge.AsLine()
	if err != nil {
		return nil, nil, err
	}

	newPoint, newEdge, err := edge.SplitByRatio(ratio, true)
	if err != nil {
		return nil, nil, err
	}

	dir := l.Bisector().Rotate(angleDeg * math.Pi / 180)
	probe := Line{newPoint.Loc, newPoint.Loc.Translate(dir.Mul(subdivideProbeLength))}

	var oppEdge *HalfEdge
	var crossing Point
	crossings := 0
	for _, he := range f.Edges() {
		if he == edge || he == newEdge {
			continue
		}
		hl, err := he.AsLine()
		if err != nil {
			return nil, nil, err
		}
		if pt, ok := probe.Intersect(hl); ok {
			oppEdge = he
			crossing = pt
			crossings++
		}
	}
	if crossings != 1 {
		return nil, nil, errDegeneracy(op, "dividing probe crosses the boundary of face %d at %d edges", f.Index, crossings)
	}

	newOppPoint, newOppEdge, err := oppEdge.SplitAt(crossing, true, true)
	if err != nil {
		return nil, nil, err
	}

	newFace := f.d.NewFace()
	dividing := f.d.NewEdge(newPoint, newOppPoint)
	dividing.copyDataFrom(edge.Data)
	dividing.setPrev(edge)
	dividing.setNext(newOppEdge)
	dividing.Twin.setPrev(oppEdge)
	dividing.Twin.setNext(newEdge)

	// Walk the next chains to partition the boundary between the faces.
	origGroup := []*HalfEdge{}
	cur := newOppEdge
	for guard := 0; cur != edge; guard++ {
		if cur.Next == nil || guard > edgeFollowGuard {
			return nil, nil, errTopology(op, "boundary of face %d is not a closed next chain", f.Index)
		}
		origGroup = append(origGroup, cur)
		cur = cur.Next
	}
	origGroup = append(origGroup, edge, dividing)

	newGroup := []*HalfEdge{}
	cur = newEdge
	for guard := 0; cur != oppEdge; guard++ {
		if cur.Next == nil || guard > edgeFollowGuard {
			return nil, nil, errTopology(op, "boundary of face %d is not a closed next chain", f.Index)
		}
		newGroup = append(newGroup, cur)
		cur = cur.Next
	}
	newGroup = append(newGroup, oppEdge, dividing.Twin)

	f.setBoundary(origGroup)
	newFace.setBoundary(newGroup)
	f.d.log.Debug("subdivided face", "index", f.Index, "new", newFace.Index)
	return f, newFace, nil
}

// Fixup repairs the face after destructive edits. Boundary back-references
// are normalized, the site is replaced by the averaged centroid when the
// site has fallen outside bbox, edges are re-sorted, and misaligned
// consecutive boundary edges are bridged with synthetic edges. A bridge
// crossing two distinct rectangle sides is split at its midpoint and the
// midpoint snapped to the shared corner. Returns the inferred bridges.
func (f *Face) Fixup(bbox Rect) ([]*HalfEdge, error) {
	if len(f.edges) == 0 {
		f.MarkForCleanup()
		return nil, nil
	}
	if len(f.edges) < 2 {
		return nil, nil
	}

	for _, e := range f.Edges() {
		f.AddEdge(e)
	}

	center := f.Centroid()
	avg := f.AvgCentroid()
	if !bbox.Contains(center) && bbox.Contains(avg) {
		f.Site = &avg
	}

	if err := f.SortEdges(); err != nil {
		return nil, err
	}

	var inferred []*HalfEdge
	edges := f.Edges()
	prev := edges[len(edges)-1]
	for _, e := range edges {
		if e.Prev != prev {
			e.setPrev(prev)
		}
		if !prev.connectionsAlign(e) {
			bridge := f.d.NewEdge(e.Prev.Twin.Origin, e.Origin)
			bridge.copyDataFrom(e.Data)
			bridge.Face = f
			bridge.setPrev(e.Prev)
			bridge.setNext(e)
			i := f.edgeIndex(e)
			f.insertEdgeAt(i, bridge)
			inferred = append(inferred, bridge)

			crossings, err := bridge.IntersectsBbox(bbox)
			if err != nil {
				return nil, err
			}
			if len(crossings) == 2 && crossings[0].Side != crossings[1].Side {
				mid, bridge2, err := bridge.SplitByRatio(0.5, false)
				if err != nil {
					return nil, err
				}
				f.insertEdgeAt(i+1, bridge2)
				if corner, ok := bbox.Corner(crossings[0].Side, crossings[1].Side); ok {
					mid.TranslateTo(corner, nil, true)
				}
			}
		}
		prev = e
	}

	if err := f.SortEdges(); err != nil {
		return nil, err
	}
	return inferred, nil
}

// ContainsPoints would test point membership against the face polygon.
// It is not implemented.
func (f *Face) ContainsPoints(pts []Point) (bool, error) {
	return false, ErrUnimplemented
}
