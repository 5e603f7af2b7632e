package tess

import (
	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/internal/stroke"
)

// VertexID identifies a vertex added to a GeometrySink.
type VertexID uint32

// Vertex is a vertex produced by a tessellator.
//
// Fill vertices carry a Position and a Source. Stroke vertices also carry
// the offset from the centerline, the distance along the contour and the
// side of the centerline, from which a sink can derive custom attributes.
type Vertex struct {
	Position Point
	// Normal is the offset of Position from the centerline in units of
	// half the line width.
	Normal Vec2
	// Advancement is the distance along the contour.
	Advancement float64
	Side        Side
	// Source is the place on the input path the vertex derives from.
	// Attributes.Interpolate turns it into per-vertex values. A fill
	// vertex created where edges cross takes the source of the closest
	// point on an input edge.
	Source VertexSource
}

// GeometrySink receives the output of a tessellator.
//
// Every triangle passed to AddTriangle references vertices added during
// the same call, and has a positive signed area in the coordinate space
// of the input.
type GeometrySink interface {
	// AddVertex stores a vertex and returns its identifier. An error
	// aborts the tessellation and is returned to the caller.
	AddVertex(v Vertex) (VertexID, error)
	// AddTriangle stores a triangle.
	AddTriangle(a, b, c VertexID)
}

// Count is the amount of geometry produced by one tessellation call.
type Count struct {
	Vertices uint32
	Indices  uint32
}

// Add returns the sum of two counts.
func (c Count) Add(other Count) Count {
	return Count{
		Vertices: c.Vertices + other.Vertices,
		Indices:  c.Indices + other.Indices,
	}
}

// GeometryLifecycle is implemented by sinks that want to know where the
// output of a call starts and ends.
type GeometryLifecycle interface {
	// BeginGeometry is called before the first vertex of a call.
	BeginGeometry()
	// EndGeometry is called after a successful call and returns the
	// geometry added since BeginGeometry.
	EndGeometry() Count
	// AbortGeometry is called instead of EndGeometry when a call fails.
	AbortGeometry()
}

// InvertWinding wraps sink so that every triangle is passed with its
// last two vertices swapped, turning counter-clockwise output into
// clockwise output.
func InvertWinding(sink GeometrySink) GeometrySink {
	return invertedSink{sink}
}

type invertedSink struct {
	GeometrySink
}

func (s invertedSink) AddTriangle(a, b, c VertexID) {
	s.GeometrySink.AddTriangle(a, c, b)
}

func (s invertedSink) BeginGeometry() {
	if lc, ok := s.GeometrySink.(GeometryLifecycle); ok {
		lc.BeginGeometry()
	}
}

func (s invertedSink) EndGeometry() Count {
	if lc, ok := s.GeometrySink.(GeometryLifecycle); ok {
		return lc.EndGeometry()
	}
	return Count{}
}

func (s invertedSink) AbortGeometry() {
	if lc, ok := s.GeometrySink.(GeometryLifecycle); ok {
		lc.AbortGeometry()
	}
}

// NoOutput is a sink that counts the geometry it receives and discards it.
type NoOutput struct {
	Count Count
	next  VertexID
}

// AddVertex implements GeometrySink.
func (n *NoOutput) AddVertex(Vertex) (VertexID, error) {
	id := n.next
	n.next++
	n.Count.Vertices++
	return id, nil
}

// AddTriangle implements GeometrySink.
func (n *NoOutput) AddTriangle(_, _, _ VertexID) {
	n.Count.Indices += 3
}

// output adapts a GeometrySink to the output interfaces of the internal
// tessellators and counts what passes through.
type output struct {
	sink  GeometrySink
	count Count
}

func (o *output) begin(sink GeometrySink) {
	o.sink = sink
	o.count = Count{}
	if lc, ok := sink.(GeometryLifecycle); ok {
		lc.BeginGeometry()
	}
}

// finish ends the geometry of the call, or aborts it when err is set.
func (o *output) finish(err error) (Count, error) {
	sink := o.sink
	o.sink = nil
	lc, ok := sink.(GeometryLifecycle)
	if err != nil {
		if ok {
			lc.AbortGeometry()
		}
		return o.count, err
	}
	if ok {
		return lc.EndGeometry(), nil
	}
	return o.count, nil
}

func (o *output) AddTriangle(a, b, c uint32) {
	o.sink.AddTriangle(VertexID(a), VertexID(b), VertexID(c))
	o.count.Indices += 3
}

func (o *output) add(v Vertex) (uint32, error) {
	id, err := o.sink.AddVertex(v)
	if err != nil {
		return 0, err
	}
	o.count.Vertices++
	return uint32(id), nil
}

// fillOutput receives fill vertices.
type fillOutput struct {
	*output
	source func(Point) VertexSource
}

func (o fillOutput) AddVertex(p geom.Point) (uint32, error) {
	return o.add(Vertex{Position: p, Source: o.source(p)})
}

// strokeOutput receives stroke vertices. sources holds the source of each
// point of the polyline being stroked.
type strokeOutput struct {
	*output
	sources *[]VertexSource
}

func (o strokeOutput) AddVertex(v stroke.Vertex) (uint32, error) {
	return o.add(Vertex{
		Position:    v.Position,
		Normal:      v.Normal,
		Advancement: v.Advancement,
		Side:        v.Side,
		Source:      (*o.sources)[v.Index],
	})
}
