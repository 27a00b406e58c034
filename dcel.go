package dcel

import (
	"io"
	"log/slog"
	"sort"
)

// DCEL is a doubly-connected edge list: the container owning every vertex,
// half-edge, and face of a planar subdivision.
//
// A DCEL is not safe for concurrent use. Exactly one mutator at a time is
// assumed; callers running kernel operations from several goroutines must
// serialize them.
type DCEL struct {
	Vertices  []*Vertex
	HalfEdges []*HalfEdge
	Faces     []*Face

	// Per-type monotonic index counters. Indices are never reused, so
	// entity identity is stable across logical deletions.
	nextVertexIndex int
	nextEdgeIndex   int
	nextFaceIndex   int

	log *slog.Logger
}

// New returns an empty subdivision.
func New() *DCEL {
	return &DCEL{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger routes the container's debug logging to l.
func (d *DCEL) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log = l
	}
}

// NewVertex creates a vertex at loc and registers it with the container.
func (d *DCEL) NewVertex(loc Point) *Vertex {
	v := &Vertex{
		Index:    d.nextVertexIndex,
		Loc:      loc,
		Data:     make(map[string]any),
		incident: make(map[*HalfEdge]struct{}),
		d:        d,
	}
	d.nextVertexIndex++
	d.Vertices = append(d.Vertices, v)
	d.log.Debug("created vertex", "index", v.Index, "loc", loc.String())
	return v
}

func (d *DCEL) newHalfEdge() *HalfEdge {
	e := &HalfEdge{
		Index:    d.nextEdgeIndex,
		Data:     make(map[string]any),
		lengthSq: -1,
		d:        d,
	}
	d.nextEdgeIndex++
	d.HalfEdges = append(d.HalfEdges, e)
	return e
}

// NewEdge creates a twinned pair of half-edges from origin to end and
// returns the forward half. Either vertex may be nil for an edge still
// under construction; non-nil vertices have the new half-edges registered
// in their incidence sets.
func (d *DCEL) NewEdge(origin, end *Vertex) *HalfEdge {
	e := d.newHalfEdge()
	t := d.newHalfEdge()
	e.Twin = t
	t.Twin = e
	if origin != nil {
		e.Origin = origin
		origin.registerHalfEdge(e)
	}
	if end != nil {
		t.Origin = end
		end.registerHalfEdge(t)
	}
	d.log.Debug("created edge", "index", e.Index, "twin", t.Index)
	return e
}

// NewEdgeAt creates two fresh vertices and an edge between them.
func (d *DCEL) NewEdgeAt(start, end Point) *HalfEdge {
	return d.NewEdge(d.NewVertex(start), d.NewVertex(end))
}

// NewFace creates an empty face with no site point.
func (d *DCEL) NewFace() *Face {
	f := &Face{
		Index:     d.nextFaceIndex,
		Data:      make(map[string]any),
		freeVerts: make(map[*Vertex]struct{}),
		d:         d,
	}
	d.nextFaceIndex++
	d.Faces = append(d.Faces, f)
	d.log.Debug("created face", "index", f.Index)
	return f
}

// NewFaceAt creates a face anchored to the given site point.
func (d *DCEL) NewFaceAt(site Point) *Face {
	f := d.NewFace()
	s := site
	f.Site = &s
	return f
}

// OrderVertices returns verts sorted by bearing about origin, normalized to
// [0, 2π). Vertices with equal bearing are ordered by squared distance from
// origin, nearest first, making the order total.
func (d *DCEL) OrderVertices(origin Point, verts []*Vertex) []*Vertex {
	out := make([]*Vertex, len(verts))
	copy(out, verts)
	sort.SliceStable(out, func(i, j int) bool {
		bi := out[i].Loc.Bearing(origin)
		bj := out[j].Loc.Bearing(origin)
		if bi != bj {
			return bi < bj
		}
		return out[i].Loc.DistanceSquared(origin) < out[j].Loc.DistanceSquared(origin)
	})
	return out
}

// LinkEdges chains the next/prev pointers through edges in order,
// optionally closing the chain into a loop. Consecutive edges must connect:
// each edge's far endpoint must be the next edge's origin.
func (d *DCEL) LinkEdges(edges []*HalfEdge, loop bool) error {
	const op = "DCEL.LinkEdges"
	for i, e := range edges {
		if e == nil {
			return errPrecondition(op, "edge %d of %d is nil", i, len(edges))
		}
	}
	for i := 0; i+1 < len(edges); i++ {
		ok, err := edges[i].ConnectionsAlign(edges[i+1])
		if err != nil {
			return err
		}
		if !ok {
			return errTopology(op, "edges %d and %d do not share an endpoint",
				edges[i].Index, edges[i+1].Index)
		}
		edges[i].setNext(edges[i+1])
	}
	if loop && len(edges) > 1 {
		last, first := edges[len(edges)-1], edges[0]
		ok, err := last.ConnectionsAlign(first)
		if err != nil {
			return err
		}
		if !ok {
			return errTopology(op, "edges %d and %d do not close the loop",
				last.Index, first.Index)
		}
		last.setNext(first)
	}
	return nil
}

// MergeFaces builds a new face from the convex hull of the union of the
// given faces' boundary and free vertices. Hull members become the new
// boundary, in hull order and closed into a loop; interior vertices are
// returned as discarded.
func (d *DCEL) MergeFaces(faces ...*Face) (*Face, []*Vertex, error) {
	const op = "DCEL.MergeFaces"
	if len(faces) == 0 {
		return nil, nil, errPrecondition(op, "no faces given")
	}
	seen := make(map[*Vertex]bool)
	var all []*Vertex
	for _, f := range faces {
		if f == nil {
			return nil, nil, errPrecondition(op, "nil face")
		}
		for _, v := range f.AllVertices() {
			if !seen[v] {
				seen[v] = true
				all = append(all, v)
			}
		}
	}
	hull, discarded := hullVertices(all)
	if len(hull) < 3 {
		return nil, nil, errDegeneracy(op, "merged faces span only %d hull vertices", len(hull))
	}
	nf := d.NewFace()
	edges := make([]*HalfEdge, len(hull))
	for i, s := range hull {
		e := d.NewEdge(s, hull[(i+1)%len(hull)])
		nf.AddEdge(e)
		edges[i] = e
	}
	if err := d.LinkEdges(edges, true); err != nil {
		return nil, nil, err
	}
	return nf, discarded, nil
}

// Check walks the whole subdivision and reports the first violated
// cross-referential invariant: twin pairing, next/prev reciprocity, face
// membership, and vertex incidence.
func (d *DCEL) Check() error {
	const op = "DCEL.Check"
	for _, e := range d.HalfEdges {
		if e.Twin != nil && e.Twin.Twin != e {
			return errTopology(op, "edge %d: twin pairing broken", e.Index)
		}
		if e.Next != nil && e.Next.Prev != e {
			return errTopology(op, "edge %d: next edge %d does not point back", e.Index, e.Next.Index)
		}
		if e.Prev != nil && e.Prev.Next != e {
			return errTopology(op, "edge %d: prev edge %d does not point forward", e.Index, e.Prev.Index)
		}
		if e.Origin != nil {
			if _, ok := e.Origin.incident[e]; !ok {
				return errTopology(op, "edge %d: not registered at its origin %d", e.Index, e.Origin.Index)
			}
		}
	}
	for _, v := range d.Vertices {
		for e := range v.incident {
			if e.Origin != v {
				return errTopology(op, "vertex %d: incident edge %d has origin elsewhere", v.Index, e.Index)
			}
		}
	}
	for _, f := range d.Faces {
		for _, e := range f.edges {
			if e.Face != f {
				return errTopology(op, "face %d: boundary edge %d belongs to another face", f.Index, e.Index)
			}
		}
	}
	return nil
}
