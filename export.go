package dcel

// Recognized metadata keys. Export splits each entity's Data map into the
// keys listed here and everything else.
const (
	DataFill       = "fill"
	DataText       = "text"
	DataTextOffset = "text_offset"
	DataStroke     = "stroke"
	DataCentroid   = "centroid"
	DataCenRadius  = "cen_radius"
	DataNull       = "null"
	DataStartVert  = "start_vert"
	DataStartRad   = "start_rad"
	DataWidth      = "width"
	DataColour     = "colour"
	DataStart      = "start"
	DataEnd        = "end"
	DataEndRad     = "end_rad"
	DataRadius     = "radius"
)

var (
	faceDataKeys = keySet(DataFill, DataText, DataTextOffset, DataStroke,
		DataCentroid, DataCenRadius, DataNull, DataStartVert, DataStartRad, DataWidth)
	edgeDataKeys = keySet(DataStroke, DataColour, DataWidth, DataStart,
		DataEnd, DataStartRad, DataEndRad, DataNull)
	vertexDataKeys = keySet(DataStroke, DataRadius, DataNull)
)

func keySet(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

func splitData(data map[string]any, recognized map[string]struct{}) (known, other map[string]any) {
	known = make(map[string]any)
	other = make(map[string]any)
	for k, v := range data {
		if _, ok := recognized[k]; ok {
			known[k] = v
		} else {
			other[k] = v
		}
	}
	return known, other
}

// VertexExport is a vertex flattened to indices and plain values, suitable
// for reconstruction. Absent references are -1.
type VertexExport struct {
	Index     int
	Loc       Point
	HalfEdges []int
	Known     map[string]any
	Other     map[string]any
}

// Export flattens the vertex to indices.
func (v *Vertex) Export() VertexExport {
	edges := v.HalfEdges()
	indices := make([]int, len(edges))
	for i, e := range edges {
		indices[i] = e.Index
	}
	known, other := splitData(v.Data, vertexDataKeys)
	return VertexExport{
		Index:     v.Index,
		Loc:       v.Loc,
		HalfEdges: indices,
		Known:     known,
		Other:     other,
	}
}

// HalfEdgeExport is a half-edge flattened to indices. Absent references
// are -1.
type HalfEdgeExport struct {
	Index  int
	Origin int
	Twin   int
	Face   int
	Next   int
	Prev   int
	Known  map[string]any
	Other  map[string]any
}

// Export flattens the half-edge to indices.
func (e *HalfEdge) Export() HalfEdgeExport {
	out := HalfEdgeExport{
		Index:  e.Index,
		Origin: -1,
		Twin:   -1,
		Face:   -1,
		Next:   -1,
		Prev:   -1,
	}
	if e.Origin != nil {
		out.Origin = e.Origin.Index
	}
	if e.Twin != nil {
		out.Twin = e.Twin.Index
	}
	if e.Face != nil {
		out.Face = e.Face.Index
	}
	if e.Next != nil {
		out.Next = e.Next.Index
	}
	if e.Prev != nil {
		out.Prev = e.Prev.Index
	}
	out.Known, out.Other = splitData(e.Data, edgeDataKeys)
	return out
}

// FaceExport is a face flattened to indices. A face with no site has
// HasSite false and a zero Site.
type FaceExport struct {
	Index   int
	Edges   []int
	Site    Point
	HasSite bool
	Known   map[string]any
	Other   map[string]any
}

// Export flattens the face to indices.
func (f *Face) Export() FaceExport {
	indices := make([]int, len(f.edges))
	for i, e := range f.edges {
		indices[i] = e.Index
	}
	out := FaceExport{
		Index: f.Index,
		Edges: indices,
	}
	if f.Site != nil {
		out.Site = *f.Site
		out.HasSite = true
	}
	out.Known, out.Other = splitData(f.Data, faceDataKeys)
	return out
}
