package dcel

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestHalfEdgeSplit(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(2.0, 0.0))
	origStart := e.Origin
	origEnd := e.Twin.Origin

	v, ne, err := e.SplitAt(Pt(1.0, 0.0), true, false)
	if err != nil {
		t.Fatal(err)
	}
	if e.Origin != origStart {
		t.Error("split changed the origin")
	}
	if e.Twin.Origin != v {
		t.Error("twin origin not rewired to the split vertex")
	}
	if ne.Origin != v || ne.Twin.Origin != origEnd {
		t.Error("new edge spans the wrong vertices")
	}
	if e.Next != ne || ne.Prev != e {
		t.Error("new edge not spliced after the split edge")
	}
	if ne.Twin.Next != e.Twin {
		t.Error("twin chain not spliced")
	}

	// Incidence must follow the rewiring.
	if _, ok := origEnd.incident[e.Twin]; ok {
		t.Error("old far endpoint still registers the twin")
	}
	if _, ok := v.incident[e.Twin]; !ok {
		t.Error("split vertex does not register the twin")
	}
	diff(t, 1.0, e.LengthSquared())
	diff(t, 1.0, ne.LengthSquared())
	if err := d.Check(); err != nil {
		t.Error(err)
	}
}

func TestHalfEdgeSplitByRatio(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	v, ne, err := e.SplitByRatio(0.5, false)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(0.5, 0.0), v.Loc)
	diff(t, Pt(0.5, 0.0), ne.Origin.Loc)
	diff(t, Pt(1.0, 0.0), ne.Twin.Origin.Loc)

	if _, _, err := e.SplitByRatio(1.5, false); err == nil {
		t.Error("expected an error for a ratio outside [0, 1]")
	}
}

func TestHalfEdgeConstrainToCircle(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(5.0, 0.0), Pt(7.0, 0.0))
	got, kind, err := e.ConstrainToCircle(Pt(5.0, 0.0), 1.0, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != e || kind != EditModified {
		t.Errorf("edit = (%v, %v)", got, kind)
	}
	diff(t, Pt(6.0, 0.0), e.Twin.Origin.Loc, cmpopts.EquateApprox(0, 1e-9))
	if !e.IsConstrained() {
		t.Error("clipped edge should be constrained")
	}
}

func TestHalfEdgeConstrainToCircleClassification(t *testing.T) {
	d := New()

	// Fully inside: untouched.
	in := d.NewEdgeAt(Pt(-0.5, 0.0), Pt(0.5, 0.0))
	if _, _, err := in.ConstrainToCircle(Pt(0.0, 0.0), 1.0, nil, false); err != nil {
		t.Fatal(err)
	}
	if in.MarkedForCleanup() || in.IsConstrained() {
		t.Error("interior edge should be untouched")
	}

	// Fully outside: marked for cleanup.
	out := d.NewEdgeAt(Pt(5.0, 5.0), Pt(6.0, 5.0))
	if _, _, err := out.ConstrainToCircle(Pt(0.0, 0.0), 1.0, nil, false); err != nil {
		t.Fatal(err)
	}
	if !out.MarkedForCleanup() {
		t.Error("exterior edge should be marked for cleanup")
	}
}

func TestHalfEdgeIntersectsBbox(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	crossings, err := e.IntersectsBbox(Rect{-0.5, -0.5, 0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if len(crossings) != 1 {
		t.Fatalf("expected 1 crossing, got %d", len(crossings))
	}
	if crossings[0].Side != SideRight {
		t.Errorf("side = %v", crossings[0].Side)
	}
	diff(t, Pt(0.5, 0.0), crossings[0].Point, cmpopts.EquateApprox(0, 1e-9))
}

func TestHalfEdgeConstrainToBboxOneCrossing(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(2.0, 0.0))
	bbox := Rect{-1.0, -1.0, 1.0, 1.0}
	got, kind, err := e.ConstrainToBbox(bbox, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != e || kind != EditModified {
		t.Errorf("edit = (%v, %v)", got, kind)
	}
	diff(t, Pt(1.0, 0.0), e.Twin.Origin.Loc, cmpopts.EquateApprox(0, 1e-9))
	if !e.IsConstrained() {
		t.Error("clipped edge should be constrained")
	}
}

func TestHalfEdgeConstrainToBboxTwoCrossings(t *testing.T) {
	// Both endpoints outside, the middle crossing the box: each endpoint
	// must move to its own nearest boundary crossing.
	d := New()
	e := d.NewEdgeAt(Pt(-2.0, 0.0), Pt(2.0, 0.0))
	bbox := Rect{-1.0, -1.0, 1.0, 1.0}
	if _, _, err := e.ConstrainToBbox(bbox, nil, false); err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(-1.0, 0.0), e.Origin.Loc, cmpopts.EquateApprox(0, 1e-9))
	diff(t, Pt(1.0, 0.0), e.Twin.Origin.Loc, cmpopts.EquateApprox(0, 1e-9))
}

func TestHalfEdgeConstrainToBboxInsideAndOutside(t *testing.T) {
	d := New()
	bbox := Rect{0.0, 0.0, 10.0, 10.0}

	in := d.NewEdgeAt(Pt(1.0, 1.0), Pt(2.0, 2.0))
	if _, _, err := in.ConstrainToBbox(bbox, nil, false); err != nil {
		t.Fatal(err)
	}
	if in.MarkedForCleanup() || in.IsConstrained() {
		t.Error("interior edge should be untouched")
	}

	out := d.NewEdgeAt(Pt(20.0, 20.0), Pt(30.0, 30.0))
	if _, _, err := out.ConstrainToBbox(bbox, nil, false); err != nil {
		t.Fatal(err)
	}
	if !out.MarkedForCleanup() {
		t.Error("exterior edge should be marked for cleanup")
	}
}

func TestHalfEdgeHasConstraints(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	if e.HasConstraints(nil) {
		t.Error("lone edge should be unconstrained")
	}

	// A second edge sharing both endpoints claims the vertices.
	e2 := d.NewEdge(e.Origin, e.Twin.Origin)
	if !e.HasConstraints(nil) {
		t.Error("shared vertices should constrain the edge")
	}
	cs := NewCandidateSet().AddEdge(e2).AddEdge(e2.Twin)
	if e.HasConstraints(cs) {
		t.Error("claimed sharing edge should not constrain")
	}
}

func TestHalfEdgeTranslateCopyOnWrite(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	d.NewEdge(e.Origin, e.Twin.Origin) // constrain e

	clone, kind, err := e.Translate(Vec(0.0, 1.0), nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if kind != EditNew || clone == e {
		t.Fatalf("expected a clone, got (%v, %v)", clone, kind)
	}
	// Original geometry untouched.
	diff(t, Pt(0.0, 0.0), e.Origin.Loc)
	diff(t, Pt(1.0, 0.0), e.Twin.Origin.Loc)
	diff(t, Pt(0.0, 1.0), clone.Origin.Loc)
	diff(t, Pt(1.0, 1.0), clone.Twin.Origin.Loc)

	got, kind, err := e.Translate(Vec(0.0, 1.0), nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != e || kind != EditModified {
		t.Fatalf("forced edit = (%v, %v)", got, kind)
	}
	diff(t, Pt(0.0, 1.0), e.Origin.Loc)
}

func TestHalfEdgeRotate(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(1.0, 0.0), Pt(2.0, 0.0))
	if _, _, err := e.Rotate(Pt(0.0, 0.0), math.Pi/2, nil, true); err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(0.0, 1.0), e.Origin.Loc, cmpopts.EquateApprox(0, 1e-9))
	diff(t, Pt(0.0, 2.0), e.Twin.Origin.Loc, cmpopts.EquateApprox(0, 1e-9))

	if _, _, err := e.Rotate(Pt(0.0, 0.0), 7.0, nil, true); err == nil {
		t.Error("expected an error for an angle outside [-2π, 2π]")
	}
}

func TestHalfEdgeExtend(t *testing.T) {
	d := New()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	ne, err := e.ExtendBy(2.0)
	if err != nil {
		t.Fatal(err)
	}
	if ne.Origin != e.Twin.Origin {
		t.Error("extension does not start at the far endpoint")
	}
	diff(t, Pt(3.0, 0.0), ne.Twin.Origin.Loc, cmpopts.EquateApprox(0, 1e-9))
	if ne.Face == nil || ne.Twin.Face == nil {
		t.Error("extension left half-edges without faces")
	}
	if err := d.Check(); err != nil {
		t.Error(err)
	}

	ne2, err := ne.ExtendTo(Pt(3.0, 5.0))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(3.0, 5.0), ne2.Twin.Origin.Loc)
}

func TestHalfEdgeAddClearVertices(t *testing.T) {
	d := New()
	e := d.NewEdge(nil, nil)
	if !e.IsInfinite() {
		t.Error("empty edge should be infinite")
	}
	v1 := d.NewVertex(Pt(0.0, 0.0))
	v2 := d.NewVertex(Pt(1.0, 0.0))
	if err := e.AddVertex(v1); err != nil {
		t.Fatal(err)
	}
	if err := e.AddVertex(v2); err != nil {
		t.Fatal(err)
	}
	if e.Origin != v1 || e.Twin.Origin != v2 {
		t.Error("vertices filled the wrong slots")
	}
	var topo *TopologyError
	if err := e.AddVertex(d.NewVertex(Pt(2.0, 0.0))); !errors.As(err, &topo) {
		t.Errorf("expected a TopologyError, got %v", err)
	}

	e.ClearVertices()
	if !e.IsInfinite() {
		t.Error("cleared edge should be infinite")
	}
	if len(v1.HalfEdges()) != 0 || len(v2.HalfEdges()) != 0 {
		t.Error("cleared vertices still register the edge")
	}
}

func TestHalfEdgeFollowSequenceGuard(t *testing.T) {
	d := New()
	a := d.NewVertex(Pt(0.0, 0.0))
	b := d.NewVertex(Pt(1.0, 0.0))
	e0 := d.NewEdge(a, b)
	e1 := d.NewEdge(b, a)
	e0.setNext(e1)
	e1.setNext(e0)

	seq := e0.FollowSequence(false)
	if len(seq) != 2 || seq[0] != e0 || seq[1] != e1 {
		t.Errorf("sequence = %v", seq)
	}
	seq = e0.FollowSequence(true)
	if len(seq) != 2 || seq[1] != e1 {
		t.Errorf("backwards sequence = %v", seq)
	}
}

func TestHalfEdgeSwapFaces(t *testing.T) {
	d := New()
	f1 := d.NewFace()
	f2 := d.NewFace()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	f1.AddEdge(e)
	f2.AddEdge(e.Twin)

	if err := e.SwapFaces(); err != nil {
		t.Fatal(err)
	}
	if e.Face != f2 || e.Twin.Face != f1 {
		t.Error("faces not swapped")
	}
	if len(f1.Edges()) != 1 || f1.Edges()[0] != e.Twin {
		t.Error("boundary list of f1 not updated")
	}
	if len(f2.Edges()) != 1 || f2.Edges()[0] != e {
		t.Error("boundary list of f2 not updated")
	}
}

func TestHalfEdgeExport(t *testing.T) {
	d := New()
	f := d.NewFace()
	e := d.NewEdgeAt(Pt(0.0, 0.0), Pt(1.0, 0.0))
	f.AddEdge(e)
	e.Data[DataWidth] = 2.0
	e.Data["custom"] = "x"

	ex := e.Export()
	if ex.Index != e.Index || ex.Origin != e.Origin.Index || ex.Twin != e.Twin.Index {
		t.Errorf("export refs = %+v", ex)
	}
	if ex.Face != f.Index {
		t.Errorf("face ref = %d", ex.Face)
	}
	if ex.Next != -1 || ex.Prev != -1 {
		t.Errorf("unset refs should be -1, got next=%d prev=%d", ex.Next, ex.Prev)
	}
	diff(t, map[string]any{DataWidth: 2.0}, ex.Known)
	diff(t, map[string]any{"custom": "x"}, ex.Other)

	tex := e.Twin.Export()
	if tex.Face != -1 {
		t.Errorf("twin face ref = %d", tex.Face)
	}
}
