// Package stroke tessellates stroked polylines into triangles.
//
// Curves are flattened by the caller, so the stroker only sees polylines.
// Each polyline is walked segment by segment:
//
//  1. Every segment of non-zero length becomes a quad, offset by half the
//     line width on both sides of the centerline.
//  2. Between two segments the gap on the outer side of the turn is filled
//     by a fan around the shared centerline vertex, shaped by the join.
//  3. Open polylines get a cap at each end. Closed polylines join their
//     last segment back to the first instead.
//
// # Line Joins
//
//   - LineJoinMiter: extends both outer edges to their intersection, or
//     falls back to a bevel when the miter ratio exceeds the miter limit
//   - LineJoinMiterClip: like miter, but clips the spike at the limit
//     instead of falling back
//   - LineJoinRound: circular arc of radius width/2, flattened to the
//     tolerance
//   - LineJoinBevel: single triangle across the corner
//
// # Line Caps
//
//   - LineCapButt: flat cap ending exactly at the endpoint
//   - LineCapSquare: extends the stroke by width/2 past the endpoint
//   - LineCapRound: half disc of radius width/2
//
// A polyline whose points all coincide is drawn as a dot for round and
// square caps and produces nothing for butt caps.
//
// # Usage
//
//	s := stroke.NewStroker(stroke.DefaultStyle())
//	err := s.Stroke(out, []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}, false)
//
// Overlapping stroke geometry is not resolved: a polyline that crosses
// itself produces overlapping triangles.
//
// # References
//
// The join and cap geometry follows kurbo (src/stroke.rs).
package stroke
