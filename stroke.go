package tess

import (
	"iter"
	"math"

	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/internal/stroke"
)

// StrokeTessellator converts the outline of paths into triangles.
//
// Each contour is stroked on its own. Overlaps between segments, joins
// and contours are not resolved, so the output may cover a pixel more
// than once. Working buffers are reused between calls. A
// StrokeTessellator must not be used concurrently.
type StrokeTessellator struct {
	stroker *stroke.Stroker
	flat    flattener
	out     output

	// Per call state.
	attrs     *Attributes
	widthAttr int
	lineWidth float64
	sources   []VertexSource
	widths    []float64
}

// NewStrokeTessellator returns a stroke tessellator.
func NewStrokeTessellator() *StrokeTessellator {
	return &StrokeTessellator{stroker: stroke.NewStroker(stroke.DefaultStyle())}
}

// Tessellate strokes the path described by events and writes the
// triangles to sink. Contours are stroked as they are read, so an invalid
// event can stop the call after earlier contours reached the sink.
func (t *StrokeTessellator) Tessellate(events iter.Seq[PathEvent], opts StrokeOptions, sink GeometrySink) (Count, error) {
	return t.TessellateWithAttributes(events, nil, opts, sink)
}

// TessellateWithAttributes is like Tessellate with custom values per
// endpoint. With VariableLineWidth set, the width at each endpoint is
// LineWidth scaled by its WidthAttribute value, and varies linearly in
// between. attrs may be nil when the options do not read it.
func (t *StrokeTessellator) TessellateWithAttributes(events iter.Seq[PathEvent], attrs *Attributes, opts StrokeOptions, sink GeometrySink) (Count, error) {
	if err := opts.validate(); err != nil {
		return Count{}, err
	}
	t.widthAttr = -1
	if opts.VariableLineWidth {
		if attrs == nil || opts.WidthAttribute >= attrs.Stride() {
			return Count{}, invalidInput("width attribute %d without attributes", opts.WidthAttribute)
		}
		t.widthAttr = opts.WidthAttribute
	}
	t.attrs = attrs
	t.lineWidth = opts.LineWidth
	defer func() { t.attrs = nil }()

	t.stroker.SetStyle(opts.style())
	t.flat.tolerance = opts.Tolerance
	t.flat.reverse = nil

	dash := opts.Dash
	if !dash.IsDashed() {
		dash = nil
	}

	t.out.begin(sink)
	err := t.flat.walk(events, func(points []Point, closed bool, _ int) error {
		srcs := t.flat.sources
		if dash == nil {
			t.sources = t.sources[:0]
			for _, ps := range srcs {
				t.sources = append(t.sources, ps.vertexSource())
			}
			return t.stroke(points, closed)
		}
		var err error
		dash.apply(points, closed, func(run []Point, at []stroke.Location) {
			if err != nil {
				return
			}
			t.sources = t.sources[:0]
			for _, loc := range at {
				t.sources = append(t.sources, edgeSource(srcs, loc.Index, loc.T))
			}
			err = t.stroke(run, false)
		})
		return err
	})
	return t.out.finish(err)
}

// stroke strokes one polyline whose point sources are in t.sources.
func (t *StrokeTessellator) stroke(points []Point, closed bool) error {
	out := strokeOutput{&t.out, &t.sources}
	if t.widthAttr < 0 {
		return t.stroker.Stroke(out, points, closed)
	}

	t.widths = t.widths[:0]
	for _, src := range t.sources {
		f, ok := t.attrs.value(src, t.widthAttr)
		if !ok {
			return invalidInput("no attributes for endpoint %d", max(src.From, src.To))
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return invalidInput("line width factor %v at endpoint %d", f, src.From)
		}
		t.widths = append(t.widths, t.lineWidth*f)
	}
	return t.stroker.StrokeWidths(out, points, t.widths, closed)
}

// TessellatePath strokes a Path.
func (t *StrokeTessellator) TessellatePath(p *Path, opts StrokeOptions, sink GeometrySink) (Count, error) {
	return t.Tessellate(p.Events(), opts, sink)
}

// TessellatePolyline strokes the polyline through points.
func (t *StrokeTessellator) TessellatePolyline(points []Point, closed bool, opts StrokeOptions, sink GeometrySink) (Count, error) {
	return t.Tessellate(Polyline(points, closed), opts, sink)
}

// TessellateRect strokes the outline of a rectangle. The corners are
// endpoints 0 to 3, starting at Min and going through (Max.X, Min.Y).
func (t *StrokeTessellator) TessellateRect(r Rect, opts StrokeOptions, sink GeometrySink) (Count, error) {
	if !r.Min.IsFinite() || !r.Max.IsFinite() {
		return Count{}, invalidInput("rectangle %v", r)
	}
	corners := []Point{r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y}}
	return t.TessellatePolyline(corners, true, opts, sink)
}

// TessellateCircle strokes a circle. A radius that is not positive
// produces nothing.
func (t *StrokeTessellator) TessellateCircle(center Point, radius float64, opts StrokeOptions, sink GeometrySink) (Count, error) {
	return t.TessellateEllipse(center, Vec2{X: radius, Y: radius}, 0, opts, sink)
}

// TessellateEllipse strokes an ellipse with the given radii, rotated by
// rotation radians around its center. Radii that are not positive
// produce nothing.
func (t *StrokeTessellator) TessellateEllipse(center Point, radii Vec2, rotation float64, opts StrokeOptions, sink GeometrySink) (Count, error) {
	for _, v := range []float64{radii.X, radii.Y, rotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Count{}, invalidInput("ellipse %v %v %v", center, radii, rotation)
		}
	}
	if !center.IsFinite() {
		return Count{}, invalidInput("ellipse center %v", center)
	}
	if radii.X <= 0 || radii.Y <= 0 {
		return t.Tessellate(nil, opts, sink)
	}

	p := NewPath()
	p.Ellipse(center.X, center.Y, radii.X, radii.Y)
	if rotation != 0 {
		m := geom.Translate(center.X, center.Y).
			Multiply(geom.Rotate(rotation)).
			Multiply(geom.Translate(-center.X, -center.Y))
		p = p.Transform(m)
	}
	return t.TessellatePath(p, opts, sink)
}

// Stroke tessellates events into a new Mesh.
func (t *StrokeTessellator) Stroke(events iter.Seq[PathEvent], opts StrokeOptions) (*Mesh, error) {
	mesh := NewMesh()
	if _, err := t.Tessellate(events, opts, NewBuffersBuilder(mesh, Position)); err != nil {
		return nil, err
	}
	return mesh, nil
}
