package tess

import (
	"errors"
	"slices"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
)

// lifecycleSink records lifecycle calls around a NoOutput.
type lifecycleSink struct {
	NoOutput
	calls []string
}

func (s *lifecycleSink) BeginGeometry() { s.calls = append(s.calls, "begin") }

func (s *lifecycleSink) EndGeometry() Count {
	s.calls = append(s.calls, "end")
	return s.Count
}

func (s *lifecycleSink) AbortGeometry() { s.calls = append(s.calls, "abort") }

// failingSink accepts a fixed number of vertices.
type failingSink struct {
	NoOutput
	limit uint32
}

var errSinkFull = errors.New("sink full")

func (s *failingSink) AddVertex(v Vertex) (VertexID, error) {
	if s.Count.Vertices >= s.limit {
		return 0, errSinkFull
	}
	return s.NoOutput.AddVertex(v)
}

func TestNoOutputCounts(t *testing.T) {
	path := BuildPath().Star(0, 0, 10, 4, 6).Circle(30, 0, 5).Build()

	var fillSink NoOutput
	fillCount, err := NewFillTessellator().TessellatePath(path, DefaultFillOptions(), &fillSink)
	if err != nil {
		t.Fatalf("fill error = %v", err)
	}
	if fillCount != fillSink.Count {
		t.Errorf("fill count = %+v, sink saw %+v", fillCount, fillSink.Count)
	}

	var strokeSink NoOutput
	strokeCount, err := NewStrokeTessellator().TessellatePath(path, DefaultStrokeOptions(), &strokeSink)
	if err != nil {
		t.Fatalf("stroke error = %v", err)
	}
	if strokeCount != strokeSink.Count {
		t.Errorf("stroke count = %+v, sink saw %+v", strokeCount, strokeSink.Count)
	}
	if strokeCount.Indices%3 != 0 {
		t.Errorf("stroke indices = %d, want a multiple of 3", strokeCount.Indices)
	}
}

func TestCountAdd(t *testing.T) {
	got := Count{Vertices: 3, Indices: 6}.Add(Count{Vertices: 4, Indices: 9})
	if want := (Count{Vertices: 7, Indices: 15}); got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
}

func TestLifecycle(t *testing.T) {
	square := Polyline(points(0, 0, 1, 0, 1, 1, 0, 1), true)

	sink := &lifecycleSink{}
	if _, err := NewFillTessellator().Tessellate(square, DefaultFillOptions(), sink); err != nil {
		t.Fatalf("Tessellate() error = %v", err)
	}
	if got := sink.calls; len(got) != 2 || got[0] != "begin" || got[1] != "end" {
		t.Errorf("calls = %v, want [begin end]", got)
	}

	sink = &lifecycleSink{}
	bad := DefaultStrokeOptions().WithLineWidth(-1)
	if _, err := NewStrokeTessellator().Tessellate(square, bad, sink); err == nil {
		t.Fatal("Tessellate() error = nil, want an error")
	}
	if len(sink.calls) != 0 {
		t.Errorf("calls after option error = %v, want none", sink.calls)
	}

	broken := []PathEvent{BeginEvent(Pt(0, 0)), LineEvent(Pt(0, 0), Pt(1, 0))}
	sink = &lifecycleSink{}
	if _, err := NewStrokeTessellator().Tessellate(slices.Values(broken), DefaultStrokeOptions(), sink); err == nil {
		t.Fatal("Tessellate() error = nil, want an error")
	}
	if got := sink.calls; len(got) != 2 || got[0] != "begin" || got[1] != "abort" {
		t.Errorf("calls = %v, want [begin abort]", got)
	}
}

func TestSinkError(t *testing.T) {
	sink := &failingSink{limit: 2}
	_, err := NewStrokeTessellator().TessellatePolyline(points(0, 0, 10, 0), false, DefaultStrokeOptions(), sink)
	if !errors.Is(err, errSinkFull) {
		t.Errorf("stroke error = %v, want %v", err, errSinkFull)
	}

	sink = &failingSink{limit: 2}
	_, err = NewFillTessellator().TessellatePolygon(points(0, 0, 10, 0, 10, 10), DefaultFillOptions(), sink)
	if !errors.Is(err, errSinkFull) {
		t.Errorf("fill error = %v, want %v", err, errSinkFull)
	}
}

func TestInvertWinding(t *testing.T) {
	mesh := NewMesh()
	builder := NewBuffersBuilder(mesh, Position)
	sink := InvertWinding(builder)

	lc, ok := sink.(GeometryLifecycle)
	if !ok {
		t.Fatal("InvertWinding() result does not forward GeometryLifecycle")
	}
	count, err := NewStrokeTessellator().TessellatePolyline(points(0, 0, 10, 0), false, DefaultStrokeOptions(), sink)
	if err != nil {
		t.Fatalf("TessellatePolyline() error = %v", err)
	}
	if count != (Count{Vertices: 4, Indices: 6}) {
		t.Errorf("count = %+v, want {4 6}", count)
	}
	for i := range mesh.Triangles() {
		if a := triangleArea(mesh, i); a >= 0 {
			t.Errorf("triangle %d area = %v, want < 0", i, a)
		}
	}

	lc.BeginGeometry()
	mesh.Vertices = append(mesh.Vertices, Pt(1, 1))
	lc.AbortGeometry()
	if len(mesh.Vertices) != 4 {
		t.Errorf("vertices after abort = %d, want 4", len(mesh.Vertices))
	}

	plain := InvertWinding(&NoOutput{}).(GeometryLifecycle)
	if got := plain.EndGeometry(); got != (Count{}) {
		t.Errorf("EndGeometry() without lifecycle = %+v, want zero", got)
	}
}

func TestBuffersBuilderAppends(t *testing.T) {
	mesh := NewMesh()
	ft := NewFillTessellator()
	first, err := ft.TessellateRect(Rect{Min: Pt(0, 0), Max: Pt(1, 1)}, DefaultFillOptions(), NewBuffersBuilder(mesh, Position))
	if err != nil {
		t.Fatalf("first TessellateRect() error = %v", err)
	}
	second, err := ft.TessellateRect(Rect{Min: Pt(2, 0), Max: Pt(3, 1)}, DefaultFillOptions(), NewBuffersBuilder(mesh, Position))
	if err != nil {
		t.Fatalf("second TessellateRect() error = %v", err)
	}
	if first != second {
		t.Errorf("counts = %+v and %+v, want equal", first, second)
	}
	if got := len(mesh.Vertices); got != 8 {
		t.Errorf("vertices = %d, want 8", got)
	}
	for _, idx := range mesh.Indices[6:] {
		if idx < 4 {
			t.Errorf("second rect references vertex %d of the first", idx)
		}
	}
	checkMesh(t, mesh)

	mesh.Clear()
	if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
		t.Errorf("Clear() left %d vertices and %d indices", len(mesh.Vertices), len(mesh.Indices))
	}
}

func TestIndexFormat(t *testing.T) {
	if got := NewVertexBuffers[Point, uint16]().IndexFormat(); got != gputypes.IndexFormatUint16 {
		t.Errorf("uint16 IndexFormat() = %v, want %v", got, gputypes.IndexFormatUint16)
	}
	if got := NewMesh().IndexFormat(); got != gputypes.IndexFormatUint32 {
		t.Errorf("uint32 IndexFormat() = %v, want %v", got, gputypes.IndexFormatUint32)
	}
}

func TestPrimitiveState(t *testing.T) {
	got := NewMesh().PrimitiveState()
	if got.Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("Topology = %v, want triangle list", got.Topology)
	}
	if got.FrontFace != gputypes.FrontFaceCCW {
		t.Errorf("FrontFace = %v, want CCW", got.FrontFace)
	}
	if got.CullMode != gputypes.CullModeNone {
		t.Errorf("CullMode = %v, want none", got.CullMode)
	}
}

func TestGPUVertexLayout(t *testing.T) {
	layout := GPUVertexLayout()
	if size := uint64(unsafe.Sizeof(GPUVertex{})); uint64(layout.ArrayStride) != size {
		t.Errorf("ArrayStride = %d, want %d", layout.ArrayStride, size)
	}
	want := []uint64{
		uint64(unsafe.Offsetof(GPUVertex{}.Position)),
		uint64(unsafe.Offsetof(GPUVertex{}.Normal)),
		uint64(unsafe.Offsetof(GPUVertex{}.Advancement)),
		uint64(unsafe.Offsetof(GPUVertex{}.Side)),
	}
	if layout.ArrayStride != 24 {
		t.Errorf("ArrayStride = %d, want 24", layout.ArrayStride)
	}
	if got := layout.Attributes[len(layout.Attributes)-1].Format; got != gputypes.VertexFormatUint32 {
		t.Errorf("side format = %v, want %v", got, gputypes.VertexFormatUint32)
	}
	if len(layout.Attributes) != len(want) {
		t.Fatalf("attributes = %d, want %d", len(layout.Attributes), len(want))
	}
	for i, attr := range layout.Attributes {
		if uint64(attr.Offset) != want[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, want[i])
		}
		if uint32(attr.ShaderLocation) != uint32(i) {
			t.Errorf("attribute %d location = %d, want %d", i, attr.ShaderLocation, i)
		}
	}

	if got := uint64(PositionLayout().ArrayStride); got != uint64(unsafe.Sizeof(PositionF32(Vertex{}))) {
		t.Errorf("PositionLayout().ArrayStride = %d, want 8", got)
	}
}

func TestGPUVertexFromVertex(t *testing.T) {
	v := GPUVertexFromVertex(Vertex{
		Position:    Pt(1.5, -2),
		Normal:      Vec2{X: 0, Y: 1},
		Advancement: 12.25,
		Side:        Right,
	})
	if v.Position[0] != 1.5 || v.Position[1] != -2 {
		t.Errorf("Position = %v, want [1.5 -2]", v.Position)
	}
	if v.Normal[0] != 0 || v.Normal[1] != 1 {
		t.Errorf("Normal = %v, want [0 1]", v.Normal)
	}
	if v.Advancement != 12.25 {
		t.Errorf("Advancement = %v, want 12.25", v.Advancement)
	}
	if v.Side != 1 {
		t.Errorf("Side = %v, want 1", v.Side)
	}
}
