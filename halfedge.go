package dcel

import (
	"fmt"
	"math"
)

// edgeFollowGuard bounds next/prev chain walks so that a corrupted cycle
// cannot loop forever.
const edgeFollowGuard = 4096

// subdivideProbeLength is the length of the probe segment cast from a split
// point when subdividing a face. It only needs to exceed any face diameter
// handled by the kernel.
const subdivideProbeLength = 1e5

// HalfEdge is one directed side of an edge. Two half-edges, mutually
// referencing through Twin, make a full edge.
//
// Origin may be nil while the edge is under construction (an "infinite"
// half-edge). Next and Prev, when set, form a counter-clockwise cycle
// around a face boundary with next.Prev == self.
type HalfEdge struct {
	Index  int
	Origin *Vertex
	Twin   *HalfEdge
	Next   *HalfEdge
	Prev   *HalfEdge
	Face   *Face
	Data   map[string]any

	lengthSq         float64 // cached squared length; -1 when invalid
	constrained      bool
	markedForCleanup bool
	d                *DCEL
}

func (e *HalfEdge) String() string {
	if e.Origin == nil || e.Twin == nil || e.Twin.Origin == nil {
		return fmt.Sprintf("HalfEdge %d (incomplete)", e.Index)
	}
	return fmt.Sprintf("HalfEdge %d: %v - %v", e.Index, e.Origin.Loc, e.Twin.Origin.Loc)
}

// Vertices returns the origin vertices of the half-edge and its twin.
// Either may be nil.
func (e *HalfEdge) Vertices() (*Vertex, *Vertex) {
	if e.Twin == nil {
		return e.Origin, nil
	}
	return e.Origin, e.Twin.Origin
}

// IsInfinite reports whether the half-edge has fewer than two defined
// endpoints and so stretches off to infinity.
func (e *HalfEdge) IsInfinite() bool {
	return e.Origin == nil || e.Twin == nil || e.Twin.Origin == nil
}

// AsLine returns the segment spanned by the full edge.
func (e *HalfEdge) AsLine() (Line, error) {
	return e.line("HalfEdge.AsLine")
}

func (e *HalfEdge) line(op string) (Line, error) {
	if e.IsInfinite() {
		return Line{}, errTopology(op, "half-edge %d is missing an endpoint", e.Index)
	}
	return Line{e.Origin.Loc, e.Twin.Origin.Loc}, nil
}

// LengthSquared returns the squared length of the edge, computing and
// caching it if no valid cached value exists.
func (e *HalfEdge) LengthSquared() float64 {
	if e.lengthSq >= 0 {
		return e.lengthSq
	}
	if e.IsInfinite() {
		return math.Inf(1)
	}
	e.lengthSq = e.Origin.Loc.DistanceSquared(e.Twin.Origin.Loc)
	return e.lengthSq
}

func (e *HalfEdge) invalidateLength() {
	e.lengthSq = -1
}

// MarkForCleanup marks this half-edge for logical deletion. The twin is not
// marked, to allow degenerate boundary cases where only one side dies.
func (e *HalfEdge) MarkForCleanup() {
	e.markedForCleanup = true
}

func (e *HalfEdge) MarkedForCleanup() bool {
	return e.markedForCleanup
}

// IsConstrained reports whether this edge or its twin has been clipped to a
// region boundary.
func (e *HalfEdge) IsConstrained() bool {
	if e.Twin == nil {
		return e.constrained
	}
	return e.constrained || e.Twin.constrained
}

// SetConstrained marks the full edge as clipped. The flag is monotonic: it
// is never cleared.
func (e *HalfEdge) SetConstrained() {
	e.constrained = true
	if e.Twin != nil {
		e.Twin.constrained = true
	}
}

// setNext links n as this half-edge's successor, maintaining next.Prev
// reciprocity. The previous successor's back pointer is cleared only if it
// still points here.
func (e *HalfEdge) setNext(n *HalfEdge) {
	if e.Next != nil && e.Next.Prev == e {
		e.Next.Prev = nil
	}
	e.Next = n
	if n != nil {
		n.Prev = e
	}
}

// setPrev links p as this half-edge's predecessor, maintaining prev.Next
// reciprocity.
func (e *HalfEdge) setPrev(p *HalfEdge) {
	if e.Prev != nil && e.Prev.Next == e {
		e.Prev.Next = nil
	}
	e.Prev = p
	if p != nil {
		p.Next = e
	}
}

// FollowSequence walks the next chain (or the prev chain, if backwards)
// starting at this half-edge, stopping at a nil link, on returning to the
// start, or after the follow guard. The result starts with the receiver.
func (e *HalfEdge) FollowSequence(backwards bool) []*HalfEdge {
	edges := []*HalfEdge{e}
	step := func(x *HalfEdge) *HalfEdge { return x.Next }
	if backwards {
		step = func(x *HalfEdge) *HalfEdge { return x.Prev }
	}
	cur := step(e)
	for count := 1; count < edgeFollowGuard && cur != nil && cur != e; count++ {
		edges = append(edges, cur)
		cur = step(cur)
	}
	return edges
}

// ConnectionsAlign reports whether this half-edge's far endpoint is the
// other's origin, i.e. the two form consecutive parts of a boundary.
func (e *HalfEdge) ConnectionsAlign(other *HalfEdge) (bool, error) {
	const op = "HalfEdge.ConnectionsAlign"
	if e.Twin == nil || e.Twin.Origin == nil || other == nil || other.Origin == nil {
		return false, errTopology(op, "half-edge %d: invalid connection test", e.Index)
	}
	return e.Twin.Origin == other.Origin, nil
}

func (e *HalfEdge) connectionsAlign(other *HalfEdge) bool {
	ok, err := e.ConnectionsAlign(other)
	return err == nil && ok
}

// ccw reports whether the half-edge is wound counter-clockwise about
// center.
func (e *HalfEdge) ccw(center Point) (bool, error) {
	l, err := e.line("HalfEdge.ccw")
	if err != nil {
		return false, err
	}
	return l.P0.Sub(center).Cross(l.P1.Sub(center)) >= 0, nil
}

// Bearing returns the angle of the half-edge's origin about center,
// normalized to [0, 2π).
func (e *HalfEdge) Bearing(center Point) float64 {
	return e.Origin.Loc.Bearing(center)
}

// Within reports whether both endpoints lie inside bbox or on its boundary.
func (e *HalfEdge) Within(bbox Rect) bool {
	return !e.IsInfinite() && e.Origin.Within(bbox) && e.Twin.Origin.Within(bbox)
}

// OutsideOf reports whether every defined endpoint lies strictly outside
// bbox.
func (e *HalfEdge) OutsideOf(bbox Rect) bool {
	if e.Origin != nil && !e.Origin.OutsideOf(bbox) {
		return false
	}
	if e.Twin != nil && e.Twin.Origin != nil && !e.Twin.Origin.OutsideOf(bbox) {
		return false
	}
	return true
}

// WithinCircle classifies both endpoints against the circle, returning
// whether the origin and the far endpoint lie inside it.
func (e *HalfEdge) WithinCircle(center Point, radius float64) (originIn, endIn bool) {
	return e.Origin.WithinCircle(center, radius), e.Twin.Origin.WithinCircle(center, radius)
}

// CloserAndFurther returns the edge's vertices ordered by distance from
// center, nearest first.
func (e *HalfEdge) CloserAndFurther(center Point) (closer, further *Vertex) {
	a, b := e.Origin, e.Twin.Origin
	if center.DistanceSquared(a.Loc) <= center.DistanceSquared(b.Loc) {
		return a, b
	}
	return b, a
}

// Intersect computes the crossing point of two full edges. The second
// return value reports whether they cross.
func (e *HalfEdge) Intersect(other *HalfEdge) (Point, bool) {
	l1, err := e.line("HalfEdge.Intersect")
	if err != nil {
		return Point{}, false
	}
	l2, err := other.line("HalfEdge.Intersect")
	if err != nil {
		return Point{}, false
	}
	return l1.Intersect(l2)
}

// PointOn reports whether pt lies on the edge, within tolerance.
func (e *HalfEdge) PointOn(pt Point, tolerance float64) bool {
	l, err := e.line("HalfEdge.PointOn")
	if err != nil {
		return false
	}
	return l.PointOn(pt, tolerance)
}

// BboxCrossing is a point where an edge crosses a rectangle side, labeled
// with the side.
type BboxCrossing struct {
	Point Point
	Side  RectSide
}

// IntersectsBbox returns the crossings of the edge with the four sides of
// bbox. A simple segment crosses a convex rectangle at most twice; more
// crossings are reported as a degeneracy.
func (e *HalfEdge) IntersectsBbox(bbox Rect) ([]BboxCrossing, error) {
	const op = "HalfEdge.IntersectsBbox"
	l, err := e.line(op)
	if err != nil {
		return nil, err
	}
	var out []BboxCrossing
	for _, s := range bbox.Sides() {
		if pt, ok := l.Intersect(bbox.Side(s)); ok {
			out = append(out, BboxCrossing{pt, s})
		}
	}
	if len(out) > 2 {
		return nil, errDegeneracy(op, "edge %d crosses the bbox %d times", e.Index, len(out))
	}
	return out, nil
}

// AddVertex places v into the first open endpoint slot of the full edge.
func (e *HalfEdge) AddVertex(v *Vertex) error {
	const op = "HalfEdge.AddVertex"
	if v == nil {
		return errPrecondition(op, "nil vertex")
	}
	switch {
	case e.Origin == nil:
		e.Origin = v
		v.registerHalfEdge(e)
	case e.Twin != nil && e.Twin.Origin == nil:
		e.Twin.Origin = v
		v.registerHalfEdge(e.Twin)
	default:
		return errTopology(op, "edge %d already has both endpoints", e.Index)
	}
	e.invalidateLength()
	if e.Twin != nil {
		e.Twin.invalidateLength()
	}
	return nil
}

// ClearVertices removes both endpoints from the full edge, unregistering
// the half-edges from their incidence sets.
func (e *HalfEdge) ClearVertices() {
	if v := e.Origin; v != nil {
		e.Origin = nil
		v.unregisterHalfEdge(e)
	}
	if e.Twin != nil {
		if v := e.Twin.Origin; v != nil {
			e.Twin.Origin = nil
			v.unregisterHalfEdge(e.Twin)
		}
	}
	e.invalidateLength()
	if e.Twin != nil {
		e.Twin.invalidateLength()
	}
}

// ReplaceVertex swaps this half-edge's origin for v, keeping both
// incidence sets consistent.
func (e *HalfEdge) ReplaceVertex(v *Vertex) error {
	const op = "HalfEdge.ReplaceVertex"
	if v == nil {
		return errPrecondition(op, "nil vertex")
	}
	if e.Origin == nil {
		return errTopology(op, "half-edge %d has no origin to replace", e.Index)
	}
	e.Origin.unregisterHalfEdge(e)
	e.Origin = v
	v.registerHalfEdge(e)
	e.invalidateLength()
	if e.Twin != nil {
		e.Twin.invalidateLength()
	}
	if e.Face != nil {
		e.Face.invalidateCoords()
	}
	return nil
}

// Copy clones the full edge pair, including fresh copies of both vertices
// and the metadata. Next/prev links and face membership are not copied.
func (e *HalfEdge) Copy() (*HalfEdge, error) {
	const op = "HalfEdge.Copy"
	if e.IsInfinite() {
		return nil, errTopology(op, "half-edge %d is missing an endpoint", e.Index)
	}
	v1 := e.Origin.Copy()
	v2 := e.Twin.Origin.Copy()
	ne := e.d.NewEdge(v1, v2)
	ne.copyDataFrom(e.Data)
	return ne, nil
}

func (e *HalfEdge) copyDataFrom(data map[string]any) {
	for k, v := range data {
		e.Data[k] = v
	}
}

// SwapFaces exchanges the face registration between the half-edge and its
// twin, keeping the half-edge that bounds each face wound counter-clockwise.
func (e *HalfEdge) SwapFaces() error {
	const op = "HalfEdge.SwapFaces"
	if e.Face == nil {
		return errTopology(op, "half-edge %d has no face", e.Index)
	}
	if e.Twin == nil {
		return errTopology(op, "half-edge %d has no twin", e.Index)
	}
	originFace := e.Face
	twinFace := e.Twin.Face
	originFace.RemoveEdge(e)
	if twinFace != nil {
		twinFace.RemoveEdge(e.Twin)
		twinFace.AddEdge(e)
	}
	originFace.AddEdge(e.Twin)
	return nil
}

// HasConstraints reports whether the full edge is referenced by anything
// outside candidates plus the edge pair itself: its face, its twin's face,
// or any other half-edge incident to either endpoint.
func (e *HalfEdge) HasConstraints(candidates *CandidateSet) bool {
	cps := candidates.withEdgePair(e)
	if e.Face != nil && !cps.ContainsFace(e.Face) {
		return true
	}
	if e.Origin != nil && e.Origin.HasConstraints(cps) {
		return true
	}
	if e.Twin != nil {
		if e.Twin.Face != nil && !cps.ContainsFace(e.Twin.Face) {
			return true
		}
		if e.Twin.Origin != nil && e.Twin.Origin.HasConstraints(cps) {
			return true
		}
	}
	return false
}

// Split inserts v into the middle of the full edge, turning s → t into
// s → v → t. A new edge pair is created from v to t, spliced into the
// next/prev cycles on both sides. With faceUpdate, the new half-edges are
// added to the owning faces' boundary lists. Returns the vertex and the new
// edge.
func (e *HalfEdge) Split(v *Vertex, copyData, faceUpdate bool) (*Vertex, *HalfEdge, error) {
	const op = "HalfEdge.Split"
	if v == nil {
		return nil, nil, errPrecondition(op, "nil vertex")
	}
	if e.IsInfinite() {
		return nil, nil, errTopology(op, "half-edge %d is missing an endpoint", e.Index)
	}
	start := e.Origin
	end := e.Twin.Origin
	if copyData {
		v.copyDataFrom(start.Data)
	}
	newEdge := e.d.NewEdge(v, end)
	if copyData {
		newEdge.copyDataFrom(e.Data)
	}

	// Rewire the twin's origin from the far endpoint to the split vertex.
	end.unregisterHalfEdge(e.Twin)
	e.Twin.Origin = v
	v.registerHalfEdge(e.Twin)

	e.invalidateLength()
	e.Twin.invalidateLength()

	// Splice the new pair into the next/prev cycles on both sides.
	newEdge.setNext(e.Next)
	newEdge.Twin.setPrev(e.Twin.Prev)
	e.setNext(newEdge)
	newEdge.Twin.setNext(e.Twin)

	if faceUpdate {
		if e.Face != nil {
			e.Face.AddEdge(newEdge)
		}
		if e.Twin.Face != nil {
			e.Twin.Face.AddEdge(newEdge.Twin)
		}
	}
	e.d.log.Debug("split edge", "index", e.Index, "at", v.Loc.String(), "new", newEdge.Index)
	return v, newEdge, nil
}

// SplitAt splits the edge at loc, creating the vertex there. See Split.
func (e *HalfEdge) SplitAt(loc Point, copyData, faceUpdate bool) (*Vertex, *HalfEdge, error) {
	if e.IsInfinite() {
		return nil, nil, errTopology("HalfEdge.SplitAt", "half-edge %d is missing an endpoint", e.Index)
	}
	return e.Split(e.d.NewVertex(loc), copyData, faceUpdate)
}

// SplitByRatio splits the edge at the point a fraction r of the way from
// origin to far endpoint. r must lie in [0, 1].
func (e *HalfEdge) SplitByRatio(r float64, faceUpdate bool) (*Vertex, *HalfEdge, error) {
	const op = "HalfEdge.SplitByRatio"
	if r < 0 || r > 1 {
		return nil, nil, errPrecondition(op, "ratio %g outside [0, 1]", r)
	}
	l, err := e.line(op)
	if err != nil {
		return nil, nil, err
	}
	return e.Split(e.d.NewVertex(l.Eval(r)), true, faceUpdate)
}

// Translate moves the full edge by delta under the copy-on-write protocol.
func (e *HalfEdge) Translate(delta Vec2, candidates *CandidateSet, force bool) (*HalfEdge, Edit, error) {
	const op = "HalfEdge.Translate"
	l, err := e.line(op)
	if err != nil {
		return nil, 0, err
	}
	return e.moveTo(l.P0.Translate(delta), l.P1.Translate(delta), candidates, force)
}

// TranslateTo moves the full edge to the absolute segment (start, end)
// under the copy-on-write protocol.
func (e *HalfEdge) TranslateTo(start, end Point, candidates *CandidateSet, force bool) (*HalfEdge, Edit, error) {
	if _, err := e.line("HalfEdge.TranslateTo"); err != nil {
		return nil, 0, err
	}
	return e.moveTo(start, end, candidates, force)
}

// Rotate turns the full edge by th radians counter-clockwise about center
// under the copy-on-write protocol.
func (e *HalfEdge) Rotate(center Point, th float64, candidates *CandidateSet, force bool) (*HalfEdge, Edit, error) {
	const op = "HalfEdge.Rotate"
	if th < -2*math.Pi || th > 2*math.Pi {
		return nil, 0, errPrecondition(op, "angle %g outside [-2π, 2π]", th)
	}
	l, err := e.line(op)
	if err != nil {
		return nil, 0, err
	}
	return e.moveTo(l.P0.Rotate(center, th), l.P1.Rotate(center, th), candidates, force)
}

// moveTo is the shared copy-on-write tail of the transform operations: if
// the edge is constrained and force is false, a fresh edge is created at
// the target coordinates; otherwise both vertices move in place.
func (e *HalfEdge) moveTo(start, end Point, candidates *CandidateSet, force bool) (*HalfEdge, Edit, error) {
	if !force && e.HasConstraints(candidates) {
		ne := e.d.NewEdgeAt(start, end)
		ne.copyDataFrom(e.Data)
		ne.Origin.copyDataFrom(e.Origin.Data)
		return ne, EditNew, nil
	}
	e.Origin.moveTo(start)
	e.Twin.Origin.moveTo(end)
	return e, EditModified, nil
}

// ExtendTo grows the structure with a new edge from this edge's far
// endpoint to a new vertex exactly at target.
func (e *HalfEdge) ExtendTo(target Point) (*HalfEdge, error) {
	if _, err := e.line("HalfEdge.ExtendTo"); err != nil {
		return nil, err
	}
	return e.extend(target)
}

// ExtendToward extends from the far endpoint a distance d in the direction
// of target.
func (e *HalfEdge) ExtendToward(target Point, d float64) (*HalfEdge, error) {
	const op = "HalfEdge.ExtendToward"
	l, err := e.line(op)
	if err != nil {
		return nil, err
	}
	dir := target.Sub(l.P1)
	if dir.Hypot2() == 0 {
		return nil, errPrecondition(op, "target coincides with the far endpoint")
	}
	return e.extend(l.P1.Translate(dir.Normalize().Mul(d)))
}

// ExtendBy extends from the far endpoint a distance d along the edge's own
// direction.
func (e *HalfEdge) ExtendBy(d float64) (*HalfEdge, error) {
	l, err := e.line("HalfEdge.ExtendBy")
	if err != nil {
		return nil, err
	}
	return e.extend(l.Extend(d))
}

// ExtendRotated extends from the far endpoint a distance d along the
// edge's direction rotated by th radians.
func (e *HalfEdge) ExtendRotated(th, d float64) (*HalfEdge, error) {
	l, err := e.line("HalfEdge.ExtendRotated")
	if err != nil {
		return nil, err
	}
	dir := l.P1.Sub(l.P0).Normalize().Rotate(th)
	return e.extend(l.P1.Translate(dir.Mul(d)))
}

func (e *HalfEdge) extend(newEnd Point) (*HalfEdge, error) {
	newVert := e.d.NewVertex(newEnd)
	newVert.copyDataFrom(e.Origin.Data)
	ne := e.d.NewEdge(e.Twin.Origin, newVert)
	ne.copyDataFrom(e.Data)
	if err := ne.fixFaces(e); err != nil {
		return nil, err
	}
	return ne, nil
}

// fixFaces integrates a freshly extended half-edge into the faces around
// its origin vertex: all half-edges incident to the shared origin are
// sorted angularly, consecutive pairs are chained through their twins, and
// the resulting loops are assigned to existing or new faces so that both
// the new half-edge and its twin end up correctly bounded.
func (e *HalfEdge) fixFaces(originator *HalfEdge) error {
	const op = "HalfEdge.fixFaces"
	if e.Origin == nil || e.Twin == nil {
		return errTopology(op, "half-edge %d is incomplete", e.Index)
	}
	if originator == nil || originator.Twin == nil || originator.Origin == nil {
		return errTopology(op, "originator is incomplete")
	}
	hub := e.Origin

	// Map each neighboring far endpoint to the half-edge arriving at the
	// hub from it.
	outgoing := hub.HalfEdges()
	inward := make(map[*Vertex]*HalfEdge, len(outgoing))
	far := make([]*Vertex, 0, len(outgoing))
	for _, out := range outgoing {
		if out.Twin == nil || out.Twin.Origin == nil {
			return errTopology(op, "half-edge %d at vertex %d is incomplete", out.Index, hub.Index)
		}
		far = append(far, out.Twin.Origin)
		inward[out.Twin.Origin] = out.Twin
	}
	if _, ok := inward[originator.Origin]; !ok {
		return errTopology(op, "originator %d does not arrive at vertex %d", originator.Index, hub.Index)
	}

	ordered := e.d.OrderVertices(hub.Loc, far)
	start := 0
	for i, v := range ordered {
		if v == originator.Origin {
			start = i
			break
		}
	}
	n := len(ordered)
	for i := 0; i < n; i++ {
		a := ordered[(start+i)%n]
		b := ordered[(start+i+1)%n]
		// The outgoing edge toward a is preceded, in its boundary loop, by
		// the edge arriving from b.
		inward[a].Twin.setPrev(inward[b])
	}

	if e.Prev == nil {
		return errTopology(op, "half-edge %d was not linked around vertex %d", e.Index, hub.Index)
	}
	if e.Prev.Face == nil {
		e.d.NewFace().AddEdge(e.Prev)
	}
	if originator.Twin.Face == nil {
		e.d.NewFace().AddEdge(originator.Twin)
	}
	e.Prev.Face.AddEdge(e)

	seq := e.Twin.FollowSequence(false)
	onLoop := false
	for _, s := range seq {
		if s == originator.Twin {
			onLoop = true
			break
		}
	}
	if onLoop {
		originator.Twin.Face.AddEdge(e.Twin)
	} else {
		twinFace := e.d.NewFace()
		for _, s := range seq {
			e.Prev.Face.RemoveEdge(s)
			twinFace.AddEdge(s)
		}
	}
	return nil
}

// ConstrainToCircle clips the edge to the circle with the given center and
// radius. An edge fully inside is untouched; one fully outside is marked
// for cleanup; a straddling edge has its outside endpoint moved to the
// crossing. Under the copy-on-write protocol a constrained edge is cloned
// first and the original marked for cleanup.
func (e *HalfEdge) ConstrainToCircle(center Point, radius float64, candidates *CandidateSet, force bool) (*HalfEdge, Edit, error) {
	const op = "HalfEdge.ConstrainToCircle"
	if radius < 0 {
		return nil, 0, errPrecondition(op, "negative radius %g", radius)
	}
	l, err := e.line(op)
	if err != nil {
		return nil, 0, err
	}
	originIn, endIn := e.WithinCircle(center, radius)
	if originIn && endIn {
		return e, EditModified, nil
	}
	if !originIn && !endIn {
		e.MarkForCleanup()
		return e, EditModified, nil
	}

	_, further := e.CloserAndFurther(center)
	crossings := l.IntersectCircle(center, radius)
	if len(crossings) == 0 {
		return nil, 0, errDegeneracy(op, "straddling edge %d has no circle crossing", e.Index)
	}
	best := crossings[0]
	bestDist := further.Loc.DistanceSquared(best)
	for _, c := range crossings[1:] {
		if d := further.Loc.DistanceSquared(c); d < bestDist {
			best, bestDist = c, d
		}
	}

	target := e
	kind := EditModified
	var vertTarget *Vertex
	if !force && e.HasConstraints(candidates) {
		kind = EditNew
		vertTarget = e.d.NewVertex(best)
		clone, err := e.Copy()
		if err != nil {
			return nil, 0, err
		}
		e.MarkForCleanup()
		target = clone
	}

	if further == e.Origin {
		if vertTarget != nil {
			if err := target.ReplaceVertex(vertTarget); err != nil {
				return nil, 0, err
			}
		} else {
			target.Origin.moveTo(best)
		}
	} else {
		if vertTarget != nil {
			if err := target.Twin.ReplaceVertex(vertTarget); err != nil {
				return nil, 0, err
			}
		} else {
			target.Twin.Origin.moveTo(best)
		}
	}
	target.SetConstrained()
	return target, kind, nil
}

// ConstrainToBbox clips the edge to an axis-aligned rectangle. An edge
// fully inside is untouched; one fully outside with no boundary crossing
// is marked for cleanup; otherwise each outside endpoint moves to its
// nearest boundary crossing. A straddling edge with no crossing is a
// degeneracy the operation cannot resolve.
func (e *HalfEdge) ConstrainToBbox(bbox Rect, candidates *CandidateSet, force bool) (*HalfEdge, Edit, error) {
	const op = "HalfEdge.ConstrainToBbox"
	if !bbox.IsValid() {
		return nil, 0, errPrecondition(op, "malformed bbox %+v", bbox)
	}
	if _, err := e.line(op); err != nil {
		return nil, 0, err
	}
	if !force && e.HasConstraints(candidates) {
		clone, err := e.Copy()
		if err != nil {
			return nil, 0, err
		}
		prime, _, err := clone.ConstrainToBbox(bbox, nil, true)
		if err != nil {
			return nil, 0, err
		}
		return prime, EditNew, nil
	}

	crossings, err := e.IntersectsBbox(bbox)
	if err != nil {
		return nil, 0, err
	}
	switch {
	case e.Within(bbox):
		// Fully inside; nothing to do.
	case len(crossings) == 0:
		if !e.OutsideOf(bbox) {
			return nil, 0, errDegeneracy(op, "edge %d straddles the bbox with no boundary crossing", e.Index)
		}
		e.MarkForCleanup()
	case len(crossings) == 1:
		if e.OutsideOf(bbox) {
			// Grazing contact only.
			e.MarkForCleanup()
			break
		}
		target := e
		if e.Origin.Within(bbox) {
			target = e.Twin
		}
		nv := e.d.NewVertex(crossings[0].Point)
		nv.copyDataFrom(target.Origin.Data)
		if err := target.ReplaceVertex(nv); err != nil {
			return nil, 0, err
		}
		e.SetConstrained()
	default: // two crossings
		for _, side := range [2]*HalfEdge{e, e.Twin} {
			if side.Origin.Within(bbox) {
				continue
			}
			best := crossings[0].Point
			if side.Origin.Loc.DistanceSquared(crossings[1].Point) < side.Origin.Loc.DistanceSquared(best) {
				best = crossings[1].Point
			}
			nv := e.d.NewVertex(best)
			nv.copyDataFrom(side.Origin.Data)
			if err := side.ReplaceVertex(nv); err != nil {
				return nil, 0, err
			}
		}
		e.SetConstrained()
	}
	return e, EditModified, nil
}
