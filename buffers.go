package tess

import (
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// Index is the type of the elements of an index buffer.
type Index interface {
	~uint16 | ~uint32
}

// VertexBuffers holds a vertex list and a triangle list of indices into it.
type VertexBuffers[V any, I Index] struct {
	Vertices []V
	Indices  []I
}

// NewVertexBuffers returns empty buffers.
func NewVertexBuffers[V any, I Index]() *VertexBuffers[V, I] {
	return &VertexBuffers[V, I]{}
}

// Clear empties the buffers and keeps their memory.
func (b *VertexBuffers[V, I]) Clear() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
}

// Triangles returns the number of triangles in the buffers.
func (b *VertexBuffers[V, I]) Triangles() int {
	return len(b.Indices) / 3
}

// maxIndex returns the largest value of I.
func maxIndex[I Index]() uint64 {
	return uint64(^I(0))
}

// IndexFormat returns the GPU index format matching I.
func (b *VertexBuffers[V, I]) IndexFormat() gputypes.IndexFormat {
	if maxIndex[I]() <= 0xFFFF {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

// PrimitiveState returns the primitive state for drawing the buffers: an
// indexed triangle list with counter-clockwise front faces and no culling.
func (b *VertexBuffers[V, I]) PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeNone,
	}
}

// Mesh is the simplest output: float64 positions and 32-bit indices.
type Mesh = VertexBuffers[Point, uint32]

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return NewVertexBuffers[Point, uint32]()
}

// Position is a vertex constructor that keeps only the position.
func Position(v Vertex) Point {
	return v.Position
}

// BuffersBuilder is a GeometrySink that appends to VertexBuffers. The
// constructor turns each Vertex into the caller's vertex type.
//
// Example:
//
//	buffers := tess.NewVertexBuffers[tess.GPUVertex, uint16]()
//	sink := tess.NewBuffersBuilder(buffers, tess.GPUVertexFromVertex)
//	_, err := tess.NewStrokeTessellator().Tessellate(events, opts, sink)
type BuffersBuilder[V any, I Index] struct {
	buffers     *VertexBuffers[V, I]
	ctor        func(Vertex) V
	firstVertex int
	firstIndex  int
}

// NewBuffersBuilder returns a sink writing to buffers.
func NewBuffersBuilder[V any, I Index](buffers *VertexBuffers[V, I], ctor func(Vertex) V) *BuffersBuilder[V, I] {
	return &BuffersBuilder[V, I]{
		buffers:     buffers,
		ctor:        ctor,
		firstVertex: len(buffers.Vertices),
		firstIndex:  len(buffers.Indices),
	}
}

// Buffers returns the underlying buffers.
func (b *BuffersBuilder[V, I]) Buffers() *VertexBuffers[V, I] {
	return b.buffers
}

// AddVertex implements GeometrySink. It returns ErrTooManyVertices when
// the new vertex could not be addressed by an index of type I.
func (b *BuffersBuilder[V, I]) AddVertex(v Vertex) (VertexID, error) {
	id := uint64(len(b.buffers.Vertices))
	if id > maxIndex[I]() || id > uint64(^VertexID(0)) {
		return 0, ErrTooManyVertices
	}
	b.buffers.Vertices = append(b.buffers.Vertices, b.ctor(v))
	return VertexID(id), nil
}

// AddTriangle implements GeometrySink.
func (b *BuffersBuilder[V, I]) AddTriangle(v0, v1, v2 VertexID) {
	b.buffers.Indices = append(b.buffers.Indices, I(v0), I(v1), I(v2))
}

// BeginGeometry implements GeometryLifecycle.
func (b *BuffersBuilder[V, I]) BeginGeometry() {
	b.firstVertex = len(b.buffers.Vertices)
	b.firstIndex = len(b.buffers.Indices)
}

// EndGeometry implements GeometryLifecycle.
func (b *BuffersBuilder[V, I]) EndGeometry() Count {
	return Count{
		Vertices: uint32(len(b.buffers.Vertices) - b.firstVertex),
		Indices:  uint32(len(b.buffers.Indices) - b.firstIndex),
	}
}

// AbortGeometry implements GeometryLifecycle. It drops everything added
// since BeginGeometry.
func (b *BuffersBuilder[V, I]) AbortGeometry() {
	b.buffers.Vertices = b.buffers.Vertices[:b.firstVertex]
	b.buffers.Indices = b.buffers.Indices[:b.firstIndex]
}

// GPUVertex is a vertex in the layout described by GPUVertexLayout.
type GPUVertex struct {
	Position    f32.Vec2
	Normal      f32.Vec2
	Advancement float32
	// Side is 0 for the left side of a stroke and 1 for the right side.
	Side uint32
}

// gpuVertexStride is the size of GPUVertex in bytes.
const gpuVertexStride = 24

// GPUVertexFromVertex converts a vertex to single precision.
func GPUVertexFromVertex(v Vertex) GPUVertex {
	return GPUVertex{
		Position:    f32.Vec2{float32(v.Position.X), float32(v.Position.Y)},
		Normal:      f32.Vec2{float32(v.Normal.X), float32(v.Normal.Y)},
		Advancement: float32(v.Advancement),
		Side:        uint32(v.Side),
	}
}

// GPUVertexLayout describes GPUVertex for a render pipeline: position at
// location 0, normal at location 1, advancement at location 2 and side at
// location 3.
func GPUVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: gpuVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // normal
			{Format: gputypes.VertexFormatFloat32, Offset: 16, ShaderLocation: 2},  // advancement
			{Format: gputypes.VertexFormatUint32, Offset: 20, ShaderLocation: 3},   // side
		},
	}
}

// PositionLayout describes a buffer of f32.Vec2 positions at location 0.
func PositionLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: 8,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		},
	}
}

// PositionF32 is a vertex constructor for position-only GPU buffers.
func PositionF32(v Vertex) f32.Vec2 {
	return f32.Vec2{float32(v.Position.X), float32(v.Position.Y)}
}
