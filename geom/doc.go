// Package geom provides the 2D primitives shared by the tessellators:
// points, vectors, rectangles, affine matrices, Bézier curves and arcs,
// and the fill rule and sweep orientation enums.
//
// # Flattening
//
// Curves are converted to polylines before tessellation. Every curve type
// has a Flatten method that calls a function with each point of the
// polyline after the start point, and a FlattenSeq method that returns the
// same points as an [iter.Seq]. The maximum distance between the polyline
// and the true curve never exceeds the tolerance:
//
//	q := geom.QuadBez{P0: geom.Pt(0, 0), P1: geom.Pt(50, 100), P2: geom.Pt(100, 0)}
//	for p := range q.FlattenSeq(0.1) {
//	    fmt.Println(p)
//	}
//
// Degenerate curves (coincident control points, zero radius arcs) produce
// at most one segment. A tolerance that is not a positive number is
// replaced by [MinTolerance].
package geom
