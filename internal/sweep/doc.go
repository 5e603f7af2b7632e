// Package sweep implements the sweep-line fill tessellator.
//
// The tessellator consumes closed polylines and produces triangles that
// cover the regions classified as inside by a fill rule. It is a
// monotone-decomposition sweep:
//
//   - Every polyline edge becomes an event at its upper endpoint. Events
//     are ordered by Y then X and events at the same position are grouped
//     into a sibling list, in insertion order.
//   - The sweep keeps an ordered list of active edges crossing the sweep
//     line. Adjacent pairs of active edges whose winding number is inside
//     form spans.
//   - Each span owns a monotone tessellator that receives the vertices
//     found on its left and right chains and emits triangles when the
//     span ends.
//   - New edges are checked against active edges for crossings. A
//     crossing truncates both edges and inserts the lower halves back into
//     the event queue, so self-intersecting input needs no preprocessing.
//
// # Robustness
//
// Floating point error can leave the active edge list in an order that
// contradicts the current event. The scan phase detects this before any
// state is modified. The tessellator then re-sorts the active edges,
// rebuilds the spans and retries the event once. A second failure is
// reported as an *InternalError.
//
// The number of processed events is bounded by the number of events in
// the queue, including synthesized intersection events, so the sweep
// cannot loop forever.
//
// # Orientation
//
// Emitted triangles always have a positive signed area,
// (b-a)×(c-a) > 0, in output coordinates. Triangles with exactly zero
// area are dropped.
package sweep
