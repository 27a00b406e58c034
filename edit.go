package dcel

// Edit reports whether an editing operation mutated its target in place or
// left it untouched and produced a copy. It is returned by every operation
// participating in the copy-on-write protocol.
type Edit int

const (
	// EditModified indicates the operation mutated the original in place.
	EditModified Edit = iota
	// EditNew indicates the operation cloned its target and applied the
	// edit to the clone, leaving the original untouched.
	EditNew
)

func (e Edit) String() string {
	switch e {
	case EditModified:
		return "MODIFIED"
	case EditNew:
		return "NEW"
	default:
		return "UNKNOWN"
	}
}

// CandidateSet names the entities an edit operation may treat as
// exclusively owned and therefore safe to mutate without cloning. A nil
// *CandidateSet is valid and contains nothing.
type CandidateSet struct {
	faces map[*Face]struct{}
	edges map[*HalfEdge]struct{}
	verts map[*Vertex]struct{}
}

// NewCandidateSet returns an empty candidate set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{
		faces: make(map[*Face]struct{}),
		edges: make(map[*HalfEdge]struct{}),
		verts: make(map[*Vertex]struct{}),
	}
}

func (cs *CandidateSet) AddFace(f *Face) *CandidateSet {
	if f != nil {
		cs.faces[f] = struct{}{}
	}
	return cs
}

func (cs *CandidateSet) AddEdge(e *HalfEdge) *CandidateSet {
	if e != nil {
		cs.edges[e] = struct{}{}
	}
	return cs
}

func (cs *CandidateSet) AddVertex(v *Vertex) *CandidateSet {
	if v != nil {
		cs.verts[v] = struct{}{}
	}
	return cs
}

func (cs *CandidateSet) ContainsFace(f *Face) bool {
	if cs == nil {
		return false
	}
	_, ok := cs.faces[f]
	return ok
}

func (cs *CandidateSet) ContainsEdge(e *HalfEdge) bool {
	if cs == nil {
		return false
	}
	_, ok := cs.edges[e]
	return ok
}

func (cs *CandidateSet) ContainsVertex(v *Vertex) bool {
	if cs == nil {
		return false
	}
	_, ok := cs.verts[v]
	return ok
}

// Clone returns an independent copy of the set. Cloning a nil set yields an
// empty one.
func (cs *CandidateSet) Clone() *CandidateSet {
	out := NewCandidateSet()
	if cs == nil {
		return out
	}
	for f := range cs.faces {
		out.faces[f] = struct{}{}
	}
	for e := range cs.edges {
		out.edges[e] = struct{}{}
	}
	for v := range cs.verts {
		out.verts[v] = struct{}{}
	}
	return out
}

// withEdgePair returns a copy of the set extended with a half-edge and its
// twin. Every exclusivity test treats the edge under edit and its twin as
// part of the caller's claim.
func (cs *CandidateSet) withEdgePair(e *HalfEdge) *CandidateSet {
	out := cs.Clone()
	out.AddEdge(e)
	if e != nil {
		out.AddEdge(e.Twin)
	}
	return out
}
