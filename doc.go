// Package dcel implements a planar-subdivision kernel: a doubly-connected
// edge list of vertices, twinned half-edges, and faces, together with the
// editing algorithms that keep it topologically consistent.
//
// # Structure
//
// A [DCEL] owns every entity of a subdivision and hands out stable,
// monotonically increasing indices. The entities are:
//
//   - [Vertex]: a point plus the set of half-edges originating there
//   - [HalfEdge]: a directed edge with origin, twin, next/prev links, and
//     an owning face
//   - [Face]: a counter-clockwise boundary loop of half-edges, anchored to
//     an optional site point
//
// Two half-edges referencing each other through Twin make a full edge.
// Next and prev links chain half-edges into counter-clockwise boundary
// cycles. Entities are never physically removed; destructive operations
// mark them for cleanup and reclamation is left to the caller.
//
// # Editing
//
// Edges can be split ([HalfEdge.Split], [HalfEdge.SplitByRatio]), extended
// ([HalfEdge.ExtendTo] and friends), and clipped to regions
// ([HalfEdge.ConstrainToCircle], [HalfEdge.ConstrainToBbox]). Faces can be
// cut in two ([Face.Subdivide]), merged ([DCEL.MergeFaces]), transformed
// ([Face.Rotate], [Face.Scale]), and repaired after destructive edits
// ([Face.Fixup]).
//
// Geometry-mutating operations follow a copy-on-write protocol: each takes
// a [CandidateSet] naming the entities the caller claims exclusively, and a
// force flag. If the target is referenced outside that claim and force is
// false, the operation clones the target and edits the clone, reporting
// [EditNew]; otherwise it mutates in place and reports [EditModified]. An
// edit scoped to one face or edge therefore never silently corrupts
// topology shared with another.
//
// [DCEL.Check] validates the cross-referential invariants of the whole
// subdivision.
//
// A DCEL is not safe for concurrent use; callers must serialize access.
package dcel
