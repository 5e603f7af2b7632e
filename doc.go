// Package tess converts 2D vector paths into triangle meshes for GPU
// rasterization.
//
// # Overview
//
// Two tessellators share one input and one output contract:
//
//   - [FillTessellator] triangulates the inside of a path with a sweep line,
//     honoring the [EvenOdd] or [NonZero] fill rule. Self-intersecting
//     contours and holes are supported.
//   - [StrokeTessellator] inflates the centerline of a path by a line
//     width, with configurable joins, caps and dashes.
//
// Input is a sequence of [PathEvent] values, usually produced by a [Path]
// or a [PathBuilder]. Curves are flattened to line segments within the
// tolerance given in the options before triangulation.
//
// Output goes through a [GeometrySink]. [VertexBuffers] with a
// [BuffersBuilder] is the ready-made sink that collects vertices and
// indices, and [Mesh] is its simplest instantiation.
//
// # Custom Attributes
//
// Every output vertex carries a [VertexSource] naming the input endpoints
// it derives from. Values stored per endpoint in [Attributes], such as
// colors, are interpolated from it. The stroke tessellator can also read
// a line width factor from them, see [StrokeOptions.VariableLineWidth].
//
// # Quick Start
//
//	path := tess.BuildPath().
//	    MoveTo(0, 0).
//	    LineTo(100, 0).
//	    LineTo(100, 100).
//	    Close().
//	    Build()
//
//	mesh, err := tess.NewFillTessellator().Fill(path.Events(), tess.DefaultFillOptions())
//	if err != nil {
//	    return err
//	}
//	upload(mesh.Vertices, mesh.Indices)
//
// # Winding Order
//
// Every emitted triangle has a positive signed area in the coordinate
// space of the input, which is counter-clockwise with the Y axis pointing
// up. Sinks that expect the opposite convention can wrap themselves with
// [InvertWinding].
//
// # Errors
//
// Errors wrap one of [ErrInvalidInput], [ErrUnsupported],
// [ErrTooManyVertices] or [ErrInternal] and are tested with errors.Is.
// After a failed call the sink may hold a partial mesh that must be
// discarded.
//
// # Concurrency
//
// Tessellators reuse their working buffers between calls and must not be
// shared between goroutines. Independent tessellators can run in parallel.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to receive debug
// records about the sweep and warnings about aborted calls.
package tess
