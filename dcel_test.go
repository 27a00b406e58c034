package dcel

import (
	"errors"
	"testing"
)

func TestIndicesMonotonic(t *testing.T) {
	d := New()
	v0 := d.NewVertex(Pt(0.0, 0.0))
	v1 := d.NewVertex(Pt(1.0, 0.0))
	if v0.Index != 0 || v1.Index != 1 {
		t.Errorf("vertex indices = %d, %d", v0.Index, v1.Index)
	}

	e := d.NewEdge(v0, v1)
	if e.Index != 0 || e.Twin.Index != 1 {
		t.Errorf("edge indices = %d, %d", e.Index, e.Twin.Index)
	}
	e2 := d.NewEdgeAt(Pt(2.0, 0.0), Pt(3.0, 0.0))
	if e2.Index != 2 {
		t.Errorf("edge index = %d", e2.Index)
	}

	f0 := d.NewFace()
	f1 := d.NewFaceAt(Pt(0.5, 0.5))
	if f0.Index != 0 || f1.Index != 1 {
		t.Errorf("face indices = %d, %d", f0.Index, f1.Index)
	}
	if f1.Site == nil || *f1.Site != Pt(0.5, 0.5) {
		t.Errorf("site = %v", f1.Site)
	}
}

func TestTwinPairing(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	if e.Twin.Twin != e {
		t.Error("twin pairing broken")
	}
	if e.Twin.Origin == e.Origin {
		t.Error("twin shares the origin")
	}
}

func TestOrderVertices(t *testing.T) {
	d := New()
	east := d.NewVertex(Pt(1.0, 0.0))
	north := d.NewVertex(Pt(0.0, 1.0))
	west := d.NewVertex(Pt(-1.0, 0.0))
	south := d.NewVertex(Pt(0.0, -1.0))
	farEast := d.NewVertex(Pt(5.0, 0.0))

	got := d.OrderVertices(Pt(0.0, 0.0), []*Vertex{south, farEast, west, north, east})
	want := []*Vertex{east, farEast, north, west, south}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got vertex %d, want %d", i, got[i].Index, want[i].Index)
		}
	}
}

func TestLinkEdges(t *testing.T) {
	d := New()
	a := d.NewVertex(Pt(0.0, 0.0))
	b := d.NewVertex(Pt(1.0, 0.0))
	c := d.NewVertex(Pt(0.5, 1.0))
	e0 := d.NewEdge(a, b)
	e1 := d.NewEdge(b, c)
	e2 := d.NewEdge(c, a)

	if err := d.LinkEdges([]*HalfEdge{e0, e1, e2}, true); err != nil {
		t.Fatal(err)
	}
	if e0.Next != e1 || e1.Next != e2 || e2.Next != e0 {
		t.Error("next chain broken")
	}
	if e0.Prev != e2 || e1.Prev != e0 || e2.Prev != e1 {
		t.Error("prev chain broken")
	}

	// Disconnected edges must be rejected.
	e3 := d.NewEdgeAt(Pt(5.0, 5.0), Pt(6.0, 5.0))
	err := d.LinkEdges([]*HalfEdge{e0, e3}, false)
	var topo *TopologyError
	if !errors.As(err, &topo) {
		t.Errorf("expected a TopologyError, got %v", err)
	}
}

func TestMergeFaces(t *testing.T) {
	d := New()
	f1 := d.NewFace()
	f2 := d.NewFace()
	for _, pt := range []Point{Pt(0.0, 0.0), Pt(1.0, 0.0), Pt(0.0, 1.0), Pt(0.25, 0.25)} {
		f1.AddVertex(d.NewVertex(pt))
	}
	for _, pt := range []Point{Pt(1.0, 1.0)} {
		f2.AddVertex(d.NewVertex(pt))
	}

	merged, discarded, err := d.MergeFaces(f1, f2)
	if err != nil {
		t.Fatal(err)
	}
	if len(merged.Edges()) != 4 {
		t.Fatalf("expected 4 boundary edges, got %d", len(merged.Edges()))
	}
	if len(discarded) != 1 || discarded[0].Loc != Pt(0.25, 0.25) {
		t.Errorf("discarded = %v", discarded)
	}
	// The boundary must be a closed loop.
	edges := merged.Edges()
	seq := edges[0].FollowSequence(false)
	if len(seq) != 4 || seq[len(seq)-1].Next != edges[0] {
		t.Error("merged boundary is not a closed loop")
	}
	if err := d.Check(); err != nil {
		t.Error(err)
	}
}

func TestMergeFacesDegenerate(t *testing.T) {
	d := New()
	f := d.NewFace()
	f.AddVertex(d.NewVertex(Pt(0.0, 0.0)))
	f.AddVertex(d.NewVertex(Pt(1.0, 0.0)))

	_, _, err := d.MergeFaces(f)
	var degen *DegeneracyError
	if !errors.As(err, &degen) {
		t.Errorf("expected a DegeneracyError, got %v", err)
	}
}

func TestCheckDetectsBrokenTopology(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	if err := d.Check(); err != nil {
		t.Fatal(err)
	}
	e.Twin.Twin = nil
	err := d.Check()
	var topo *TopologyError
	if !errors.As(err, &topo) {
		t.Errorf("expected a TopologyError, got %v", err)
	}
}
