package tess

import (
	"errors"
	"iter"
	"math"

	"github.com/gogpu/tess/internal/sweep"
)

// FillTessellator triangulates the inside of paths.
//
// Contours are always treated as closed: the End event of an open contour
// connects its last point back to its first one. Working buffers are
// reused between calls. A FillTessellator must not be used concurrently.
type FillTessellator struct {
	sweep *sweep.Tessellator
	flat  flattener
	out   output

	// Input points with their sources, contour by contour, for resolving
	// the sources of output vertices.
	points  []Point
	psrcs   []pointSource
	ends    []int
	sources map[Point]VertexSource
}

// NewFillTessellator returns a fill tessellator.
func NewFillTessellator() *FillTessellator {
	return &FillTessellator{
		sweep:   sweep.New(),
		sources: make(map[Point]VertexSource),
	}
}

// Tessellate fills the path described by events and writes the triangles
// to sink. The whole path is read before the first vertex is written, so
// invalid input leaves the sink untouched.
func (t *FillTessellator) Tessellate(events iter.Seq[PathEvent], opts FillOptions, sink GeometrySink) (Count, error) {
	if err := opts.validate(); err != nil {
		return Count{}, err
	}

	t.sweep.Reset(opts.sweepOptions())
	t.flat.tolerance = opts.Tolerance
	t.flat.reverse = againstSweep(opts.Orientation)
	t.points, t.psrcs, t.ends = t.points[:0], t.psrcs[:0], t.ends[:0]
	clear(t.sources)

	err := t.flat.walk(events, func(points []Point, _ bool, segments int) error {
		if segments == 0 {
			return invalidInput("fill contour with a single point %v", points[0])
		}
		t.sweep.AddContour(points)
		for i, p := range points {
			if _, ok := t.sources[p]; !ok {
				t.sources[p] = t.flat.sources[i].vertexSource()
			}
		}
		t.points = append(t.points, points...)
		t.psrcs = append(t.psrcs, t.flat.sources...)
		t.ends = append(t.ends, len(t.points))
		return nil
	})
	if err != nil {
		return Count{}, err
	}

	t.out.begin(sink)
	err = fromSweep(t.sweep.Tessellate(fillOutput{&t.out, t.source}))
	if errors.Is(err, ErrInternal) {
		Logger().Warn("tess: fill aborted", "error", err)
	}
	return t.out.finish(err)
}

// source returns the source of an output vertex. Vertices that are not
// input points take the source of the closest point on an input edge.
func (t *FillTessellator) source(p Point) VertexSource {
	if src, ok := t.sources[p]; ok {
		return src
	}
	best := math.Inf(1)
	var src VertexSource
	start := 0
	for _, end := range t.ends {
		pts := t.points[start:end]
		for k, a := range pts {
			b := pts[(k+1)%len(pts)]
			u := closestOnSegment(a, b, p)
			if d := a.Lerp(b, u).Distance(p); d < best {
				best, src = d, edgeSource(t.psrcs[start:end], k, u)
			}
		}
		start = end
	}
	t.sources[p] = src
	return src
}

// closestOnSegment returns the fraction of the segment from a to b at
// which it comes closest to p.
func closestOnSegment(a, b, p Point) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return 0
	}
	return min(max(p.Sub(a).Dot(d)/l2, 0), 1)
}

// againstSweep returns a function reporting whether a segment from a to b
// runs against the sweep direction of o.
func againstSweep(o Orientation) func(a, b Point) bool {
	if o == Horizontal {
		return func(a, b Point) bool {
			return Pt(a.Y, -a.X).IsAfter(Pt(b.Y, -b.X))
		}
	}
	return func(a, b Point) bool {
		return a.IsAfter(b)
	}
}

// TessellatePath fills a Path.
func (t *FillTessellator) TessellatePath(p *Path, opts FillOptions, sink GeometrySink) (Count, error) {
	return t.Tessellate(p.Events(), opts, sink)
}

// TessellatePolygon fills the polygon through points.
func (t *FillTessellator) TessellatePolygon(points []Point, opts FillOptions, sink GeometrySink) (Count, error) {
	return t.Tessellate(Polyline(points, true), opts, sink)
}

// TessellateRect fills a rectangle with two triangles without running the
// sweep. An empty rectangle produces nothing. The corners are endpoints 0
// to 3, starting at Min and going through (Max.X, Min.Y).
func (t *FillTessellator) TessellateRect(r Rect, opts FillOptions, sink GeometrySink) (Count, error) {
	if err := opts.validate(); err != nil {
		return Count{}, err
	}
	if !r.Min.IsFinite() || !r.Max.IsFinite() {
		return Count{}, invalidInput("rectangle %v", r)
	}

	t.out.begin(sink)
	if r.IsEmpty() {
		return t.out.finish(nil)
	}
	corners := [4]Point{r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y}}
	var ids [4]uint32
	for i, c := range corners {
		id, err := t.out.add(Vertex{Position: c, Source: EndpointSource(EndpointID(i))})
		if err != nil {
			return t.out.finish(err)
		}
		ids[i] = id
	}
	t.out.AddTriangle(ids[0], ids[1], ids[2])
	t.out.AddTriangle(ids[0], ids[2], ids[3])
	return t.out.finish(nil)
}

// TessellateCircle fills a circle. A radius that is not positive produces
// nothing.
func (t *FillTessellator) TessellateCircle(center Point, radius float64, opts FillOptions, sink GeometrySink) (Count, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return Count{}, invalidInput("circle radius %v", radius)
	}
	if radius <= 0 {
		return t.Tessellate(nil, opts, sink)
	}
	p := NewPath()
	p.Circle(center.X, center.Y, radius)
	return t.TessellatePath(p, opts, sink)
}

// Fill tessellates events into a new Mesh.
func (t *FillTessellator) Fill(events iter.Seq[PathEvent], opts FillOptions) (*Mesh, error) {
	mesh := NewMesh()
	if _, err := t.Tessellate(events, opts, NewBuffersBuilder(mesh, Position)); err != nil {
		return nil, err
	}
	return mesh, nil
}
