package tess

import (
	"errors"
	"iter"
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/gogpu/tess/internal/coverage"
)

func TestFillSquare(t *testing.T) {
	square := points(0, 0, 10, 0, 10, 10, 0, 10)
	for _, rule := range []FillRule{EvenOdd, NonZero} {
		t.Run(rule.String(), func(t *testing.T) {
			mesh := NewMesh()
			count, err := NewFillTessellator().TessellatePolygon(square,
				DefaultFillOptions().WithFillRule(rule), NewBuffersBuilder(mesh, Position))
			if err != nil {
				t.Fatalf("TessellatePolygon() error = %v", err)
			}
			if len(mesh.Vertices) != 4 {
				t.Errorf("vertices = %d, want 4", len(mesh.Vertices))
			}
			if mesh.Triangles() != 2 {
				t.Errorf("triangles = %d, want 2", mesh.Triangles())
			}
			if got := meshArea(mesh); !approxEqual(got, 100, 1e-9) {
				t.Errorf("area = %v, want 100", got)
			}
			if count != (Count{Vertices: 4, Indices: 6}) {
				t.Errorf("count = %+v, want {4 6}", count)
			}
			checkMesh(t, mesh)
		})
	}
}

func TestFillConvexPolygon(t *testing.T) {
	for _, n := range []int{3, 5, 8, 17, 64} {
		for _, rule := range []FillRule{EvenOdd, NonZero} {
			path := BuildPath().Polygon(100, 100, 50, n).Build()
			mesh, err := NewFillTessellator().Fill(path.Events(), DefaultFillOptions().WithFillRule(rule))
			if err != nil {
				t.Fatalf("Fill(%d-gon, %v) error = %v", n, rule, err)
			}
			if got := mesh.Triangles(); got != n-2 {
				t.Errorf("Fill(%d-gon, %v) triangles = %d, want %d", n, rule, got, n-2)
			}
			want := math.Abs(path.Area())
			if got := meshArea(mesh); !approxEqual(got, want, 1e-6*want) {
				t.Errorf("Fill(%d-gon, %v) area = %v, want %v", n, rule, got, want)
			}
			checkMesh(t, mesh)
		}
	}
}

func TestFillRulesDiffer(t *testing.T) {
	// The inner pentagon of a pentagram has winding number 2.
	star := BuildPath().Pentagram(0, 0, 10).Build()
	ft := NewFillTessellator()

	nonZero, err := ft.Fill(star.Events(), DefaultFillOptions().WithFillRule(NonZero))
	if err != nil {
		t.Fatalf("Fill(NonZero) error = %v", err)
	}
	evenOdd, err := ft.Fill(star.Events(), DefaultFillOptions().WithFillRule(EvenOdd))
	if err != nil {
		t.Fatalf("Fill(EvenOdd) error = %v", err)
	}
	checkMesh(t, nonZero)
	checkMesh(t, evenOdd)

	nz, eo := meshArea(nonZero), meshArea(evenOdd)
	if nz <= eo+1 {
		t.Errorf("area NonZero = %v, EvenOdd = %v, want NonZero larger", nz, eo)
	}

	// No EvenOdd triangle may lie in the inner pentagon.
	for i := range evenOdd.Triangles() {
		c := centroid(evenOdd, i)
		if w := star.Winding(c); w != 1 && w != -1 {
			t.Errorf("EvenOdd triangle %d centroid %v has winding %d", i, c, w)
		}
	}
}

func TestFillHole(t *testing.T) {
	outer := points(0, 0, 10, 0, 10, 10, 0, 10)
	hole := reversed(points(3, 3, 7, 3, 7, 7, 3, 7))
	path := polygonPath(outer, hole)

	for _, rule := range []FillRule{EvenOdd, NonZero} {
		for _, o := range []Orientation{Vertical, Horizontal} {
			opts := DefaultFillOptions().WithFillRule(rule).WithOrientation(o)
			mesh, err := NewFillTessellator().Fill(path.Events(), opts)
			if err != nil {
				t.Fatalf("Fill(%v, %v) error = %v", rule, o, err)
			}
			checkMesh(t, mesh)
			if got := meshArea(mesh); !approxEqual(got, 84, 1e-9) {
				t.Errorf("Fill(%v, %v) area = %v, want 84", rule, o, got)
			}
			for i := range mesh.Triangles() {
				c := centroid(mesh, i)
				if c.X > 3 && c.X < 7 && c.Y > 3 && c.Y < 7 {
					t.Errorf("Fill(%v, %v) triangle %d centroid %v inside the hole", rule, o, i, c)
				}
			}
		}
	}
}

func centroid(m *Mesh, i int) Point {
	a := m.Vertices[m.Indices[3*i]]
	b := m.Vertices[m.Indices[3*i+1]]
	c := m.Vertices[m.Indices[3*i+2]]
	return a.Add(b).Add(c).Mul(1.0 / 3)
}

func TestFillSameWindingHole(t *testing.T) {
	outer := points(0, 0, 10, 0, 10, 10, 0, 10)
	inner := points(3, 3, 7, 3, 7, 7, 3, 7)
	path := polygonPath(outer, inner)

	tests := []struct {
		rule FillRule
		want float64
	}{
		{EvenOdd, 84},
		{NonZero, 100},
	}
	for _, tt := range tests {
		mesh, err := NewFillTessellator().Fill(path.Events(), DefaultFillOptions().WithFillRule(tt.rule))
		if err != nil {
			t.Fatalf("Fill(%v) error = %v", tt.rule, err)
		}
		if got := meshArea(mesh); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("Fill(%v) area = %v, want %v", tt.rule, got, tt.want)
		}
	}
}

func TestFillOrientationEquivalence(t *testing.T) {
	paths := map[string]*Path{
		"star":      BuildPath().Star(50, 50, 40, 15, 7).Build(),
		"pentagram": BuildPath().Pentagram(50, 50, 40).Build(),
		"circle":    BuildPath().Circle(20, 20, 15).Build(),
		"roundrect": BuildPath().RoundRect(0, 0, 30, 20, 5).Build(),
	}
	for name, path := range paths {
		for _, rule := range []FillRule{EvenOdd, NonZero} {
			opts := DefaultFillOptions().WithFillRule(rule)
			v, err := NewFillTessellator().Fill(path.Events(), opts)
			if err != nil {
				t.Fatalf("%s vertical error = %v", name, err)
			}
			h, err := NewFillTessellator().Fill(path.Events(), opts.WithOrientation(Horizontal))
			if err != nil {
				t.Fatalf("%s horizontal error = %v", name, err)
			}
			checkMesh(t, v)
			checkMesh(t, h)
			va, ha := meshArea(v), meshArea(h)
			if !approxEqual(va, ha, 1e-6*va) {
				t.Errorf("%s %v: vertical area = %v, horizontal area = %v", name, rule, va, ha)
			}
		}
	}
}

func TestFillIdempotent(t *testing.T) {
	path := BuildPath().
		Circle(30, 30, 20).
		Star(30, 30, 25, 10, 6).
		MoveTo(0, 0).QuadTo(40, -20, 60, 10).CubicTo(50, 40, 10, 40, 0, 0).
		Build()
	opts := DefaultFillOptions().WithFillRule(NonZero)

	ft := NewFillTessellator()
	first, err := ft.Fill(path.Events(), opts)
	if err != nil {
		t.Fatalf("first Fill() error = %v", err)
	}
	second, err := ft.Fill(path.Events(), opts)
	if err != nil {
		t.Fatalf("second Fill() error = %v", err)
	}
	fresh, err := NewFillTessellator().Fill(path.Events(), opts)
	if err != nil {
		t.Fatalf("fresh Fill() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("second Fill() output differs from first")
	}
	if !reflect.DeepEqual(first, fresh) {
		t.Error("Fill() with a new tessellator differs from first")
	}
}

func TestFillDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		events     iter.Seq[PathEvent]
		noVertices bool
	}{
		{"nil", nil, true},
		{"empty path", NewPath().Events(), true},
		{"repeated point", Polyline(points(1, 1, 1, 1), true), true},
		{"segment", Polyline(points(0, 0, 5, 5), true), false},
		{"collinear", Polyline(points(0, 0, 5, 5, 10, 10), false), false},
		{"flat curve", BuildPath().MoveTo(0, 0).QuadTo(5, 0, 10, 0).Close().Events(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := NewFillTessellator().Fill(tt.events, DefaultFillOptions())
			if err != nil {
				t.Fatalf("Fill() error = %v", err)
			}
			if mesh.Triangles() != 0 {
				t.Errorf("triangles = %d, want 0", mesh.Triangles())
			}
			if tt.noVertices && len(mesh.Vertices) != 0 {
				t.Errorf("vertices = %d, want 0", len(mesh.Vertices))
			}
		})
	}
}

func TestFillInvalidInput(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		events []PathEvent
		opts   FillOptions
		want   error
	}{
		{
			name:   "NaN coordinate",
			events: []PathEvent{BeginEvent(Pt(0, 0)), LineEvent(Pt(0, 0), Pt(nan, 1)), LineEvent(Pt(nan, 1), Pt(1, 0)), EndEvent(Pt(1, 0), Pt(0, 0), true)},
			want:   ErrInvalidInput,
		},
		{
			name:   "infinite control point",
			events: []PathEvent{BeginEvent(Pt(0, 0)), QuadraticEvent(Pt(0, 0), Pt(math.Inf(1), 0), Pt(1, 1)), EndEvent(Pt(1, 1), Pt(0, 0), true)},
			want:   ErrInvalidInput,
		},
		{
			name:   "segment outside contour",
			events: []PathEvent{LineEvent(Pt(0, 0), Pt(1, 1))},
			want:   ErrInvalidInput,
		},
		{
			name:   "begin inside contour",
			events: []PathEvent{BeginEvent(Pt(0, 0)), BeginEvent(Pt(1, 1))},
			want:   ErrInvalidInput,
		},
		{
			name:   "missing end",
			events: []PathEvent{BeginEvent(Pt(0, 0)), LineEvent(Pt(0, 0), Pt(1, 0)), LineEvent(Pt(1, 0), Pt(1, 1))},
			want:   ErrInvalidInput,
		},
		{
			name:   "end outside contour",
			events: []PathEvent{EndEvent(Pt(0, 0), Pt(0, 0), true)},
			want:   ErrInvalidInput,
		},
		{
			name:   "single point contour",
			events: []PathEvent{BeginEvent(Pt(3, 3)), EndEvent(Pt(3, 3), Pt(3, 3), true)},
			want:   ErrInvalidInput,
		},
		{
			name:   "unknown event",
			events: []PathEvent{{Kind: EventKind(42)}},
			want:   ErrInvalidInput,
		},
		{
			name:   "unknown fill rule",
			events: nil,
			opts:   DefaultFillOptions().WithFillRule(FillRule(7)),
			want:   ErrUnsupported,
		},
		{
			name:   "NaN tolerance",
			events: nil,
			opts:   DefaultFillOptions().WithTolerance(nan),
			want:   ErrInvalidInput,
		},
		{
			name:   "zero tolerance",
			events: slices.Collect(Polyline(points(0, 0, 10, 0, 10, 10), true)),
			opts:   DefaultFillOptions().WithTolerance(0),
			want:   ErrInvalidInput,
		},
		{
			name:   "negative tolerance",
			events: slices.Collect(Polyline(points(18, 18, 1, 7, 11, 8, 4, 8, 4, 20, 15, 17, 0, 6), true)),
			opts:   DefaultFillOptions().WithTolerance(-1),
			want:   ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			if opts == (FillOptions{}) {
				opts = DefaultFillOptions()
			}
			mesh := NewMesh()
			_, err := NewFillTessellator().Tessellate(slices.Values(tt.events), opts, NewBuffersBuilder(mesh, Position))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Tessellate() error = %v, want %v", err, tt.want)
			}
			if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
				t.Errorf("mesh = %d vertices, %d indices, want empty", len(mesh.Vertices), len(mesh.Indices))
			}
		})
	}
}

func TestFillTooManyVertices(t *testing.T) {
	buffers := NewVertexBuffers[Point, uint16]()
	buffers.Vertices = make([]Point, 0xFFFF-3)
	sink := NewBuffersBuilder(buffers, Position)

	path := BuildPath().Polygon(0, 0, 10, 12).Build()
	_, err := NewFillTessellator().TessellatePath(path, DefaultFillOptions(), sink)
	if !errors.Is(err, ErrTooManyVertices) {
		t.Fatalf("TessellatePath() error = %v, want %v", err, ErrTooManyVertices)
	}
	if len(buffers.Vertices) != 0xFFFF-3 || len(buffers.Indices) != 0 {
		t.Errorf("buffers = %d vertices, %d indices, want rollback to %d, 0",
			len(buffers.Vertices), len(buffers.Indices), 0xFFFF-3)
	}

	// A 32-bit index has room for the same geometry.
	wide := NewVertexBuffers[Point, uint32]()
	wide.Vertices = make([]Point, 0xFFFF-3)
	count, err := NewFillTessellator().TessellatePath(path, DefaultFillOptions(), NewBuffersBuilder(wide, Position))
	if err != nil {
		t.Fatalf("TessellatePath() with uint32 indices error = %v", err)
	}
	if count.Vertices != 12 || count.Indices != 30 {
		t.Errorf("count = %+v, want {12 30}", count)
	}
}

func TestFillRect(t *testing.T) {
	tests := []struct {
		name     string
		rect     Rect
		wantTris int
		wantArea float64
	}{
		{"rect", Rect{Min: Pt(1, 2), Max: Pt(5, 7)}, 2, 20},
		{"empty", Rect{Min: Pt(1, 2), Max: Pt(1, 7)}, 0, 0},
		{"inverted", Rect{Min: Pt(5, 7), Max: Pt(1, 2)}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := NewMesh()
			_, err := NewFillTessellator().TessellateRect(tt.rect, DefaultFillOptions(), NewBuffersBuilder(mesh, Position))
			if err != nil {
				t.Fatalf("TessellateRect() error = %v", err)
			}
			if mesh.Triangles() != tt.wantTris {
				t.Errorf("triangles = %d, want %d", mesh.Triangles(), tt.wantTris)
			}
			if got := meshArea(mesh); got != tt.wantArea {
				t.Errorf("area = %v, want %v", got, tt.wantArea)
			}
			checkMesh(t, mesh)
		})
	}

	_, err := NewFillTessellator().TessellateRect(Rect{Max: Pt(math.NaN(), 1)}, DefaultFillOptions(), &NoOutput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("TessellateRect(NaN) error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestFillCircle(t *testing.T) {
	const r = 50.0
	tol := 0.1
	mesh := NewMesh()
	_, err := NewFillTessellator().TessellateCircle(Pt(60, 60), r,
		DefaultFillOptions().WithTolerance(tol), NewBuffersBuilder(mesh, Position))
	if err != nil {
		t.Fatalf("TessellateCircle() error = %v", err)
	}
	checkMesh(t, mesh)
	want := math.Pi * r * r
	if got := meshArea(mesh); !approxEqual(got, want, 2*math.Pi*r*tol) {
		t.Errorf("area = %v, want %v", got, want)
	}

	var none NoOutput
	if _, err := NewFillTessellator().TessellateCircle(Pt(0, 0), 0, DefaultFillOptions(), &none); err != nil {
		t.Fatalf("TessellateCircle(r=0) error = %v", err)
	}
	if none.Count != (Count{}) {
		t.Errorf("TessellateCircle(r=0) count = %+v, want zero", none.Count)
	}
}

func TestFillFlatteningTolerance(t *testing.T) {
	// Finer tolerances produce more vertices and converge to the curve.
	path := BuildPath().Circle(0, 0, 100).Build()
	want := math.Pi * 100 * 100

	prevVerts := 0
	for _, tol := range []float64{1, 0.1, 0.01} {
		mesh, err := NewFillTessellator().Fill(path.Events(), DefaultFillOptions().WithTolerance(tol))
		if err != nil {
			t.Fatalf("Fill(tol=%v) error = %v", tol, err)
		}
		if len(mesh.Vertices) <= prevVerts {
			t.Errorf("Fill(tol=%v) vertices = %d, want more than %d", tol, len(mesh.Vertices), prevVerts)
		}
		prevVerts = len(mesh.Vertices)
		if got := meshArea(mesh); !approxEqual(got, want, 2*math.Pi*100*tol) {
			t.Errorf("Fill(tol=%v) area = %v, want %v", tol, got, want)
		}
	}
}

func TestFillWithoutIntersections(t *testing.T) {
	path := BuildPath().Star(0, 0, 20, 8, 5).Build()
	opts := DefaultFillOptions().WithIntersections(false)
	mesh, err := NewFillTessellator().Fill(path.Events(), opts)
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if got, want := meshArea(mesh), math.Abs(path.Area()); !approxEqual(got, want, 1e-6*want) {
		t.Errorf("area = %v, want %v", got, want)
	}
}

func TestFillOpenContourIsClosed(t *testing.T) {
	open := BuildPath().MoveTo(0, 0).LineTo(4, 0).LineTo(4, 3).Build()
	mesh, err := NewFillTessellator().Fill(open.Events(), DefaultFillOptions())
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if got := meshArea(mesh); !approxEqual(got, 6, 1e-12) {
		t.Errorf("area = %v, want 6", got)
	}
}

func TestFillInvertWinding(t *testing.T) {
	mesh := NewMesh()
	_, err := NewFillTessellator().TessellatePolygon(points(0, 0, 10, 0, 10, 10, 0, 10),
		DefaultFillOptions(), InvertWinding(NewBuffersBuilder(mesh, Position)))
	if err != nil {
		t.Fatalf("TessellatePolygon() error = %v", err)
	}
	for i := range mesh.Triangles() {
		if a := triangleArea(mesh, i); a >= 0 {
			t.Errorf("triangle %d area = %v, want < 0", i, a)
		}
	}
	if got := meshArea(mesh); !approxEqual(got, -100, 1e-9) {
		t.Errorf("area = %v, want -100", got)
	}
}

func TestFillCoverage(t *testing.T) {
	const size = 64
	tests := []struct {
		name      string
		path      *Path
		tolerance float64
		threshold uint8
	}{
		{"star", BuildPath().Star(32, 32, 30, 12, 7).Build(), 0.1, 4},
		{"overlapping squares", BuildPath().Rect(4, 4, 30, 30).Rect(20, 20, 40, 40).Build(), 0.1, 4},
		{"circle", BuildPath().Circle(32, 32, 25).Build(), 0.01, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultFillOptions().WithFillRule(NonZero).WithTolerance(tt.tolerance)
			mesh, err := NewFillTessellator().Fill(tt.path.Events(), opts)
			if err != nil {
				t.Fatalf("Fill() error = %v", err)
			}
			got := coverage.Triangles(size, size, mesh.Vertices, mesh.Indices)
			want := coverage.Polygons(size, size, tt.path.Flatten(0.001))
			if n, maxDiff := coverage.Compare(got, want, tt.threshold); n > 0 {
				t.Errorf("%d pixels differ by more than %d (max %d)", n, tt.threshold, maxDiff)
			}
		})
	}
}

// Pixel coverage sums signed areas, which differs from NonZero where a
// self-intersecting contour crosses inside a pixel. Point samples avoid
// that.
func TestFillPointSamples(t *testing.T) {
	tests := []struct {
		name string
		path *Path
	}{
		{"pentagram", BuildPath().Pentagram(32, 32, 28).Build()},
		{"self-intersecting polygon", polygonPath(points(18, 18, 1, 7, 11, 8, 4, 8, 4, 20, 15, 17, 0, 6))},
		{"overlapping squares", BuildPath().Rect(4, 4, 30, 30).Rect(20, 20, 40, 40).Build()},
	}
	for _, tt := range tests {
		for _, rule := range []FillRule{EvenOdd, NonZero} {
			t.Run(tt.name+"/"+rule.String(), func(t *testing.T) {
				mesh, err := NewFillTessellator().Fill(tt.path.Events(), DefaultFillOptions().WithFillRule(rule))
				if err != nil {
					t.Fatalf("Fill() error = %v", err)
				}
				wrong := 0
				for i := range 128 {
					for j := range 128 {
						p := Pt(float64(i)*0.5+0.137, float64(j)*0.5+0.291)
						if got, want := meshContains(mesh, p), tt.path.Contains(p, rule); got != want {
							if wrong < 5 {
								t.Errorf("mesh contains %v = %v, want %v", p, got, want)
							}
							wrong++
						}
					}
				}
				if wrong > 0 {
					t.Errorf("%d samples misclassified", wrong)
				}
			})
		}
	}
}

func TestFillVertexSources(t *testing.T) {
	selfIntersecting := points(18, 18, 1, 7, 11, 8, 4, 8, 4, 20, 15, 17, 0, 6)
	tests := []struct {
		name        string
		points      []Point
		orientation Orientation
	}{
		{"square", points(0, 0, 10, 0, 10, 10, 0, 10), Vertical},
		{"bowtie", points(0, 0, 10, 10, 10, 0, 0, 10), Vertical},
		{"self-intersecting", selfIntersecting, Vertical},
		{"self-intersecting horizontal", selfIntersecting, Horizontal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := positionAttributes(tt.points)
			buffers := NewVertexBuffers[Vertex, uint32]()
			opts := DefaultFillOptions().WithOrientation(tt.orientation)
			_, err := NewFillTessellator().TessellatePolygon(tt.points, opts,
				NewBuffersBuilder(buffers, func(v Vertex) Vertex { return v }))
			if err != nil {
				t.Fatalf("TessellatePolygon() error = %v", err)
			}
			if len(buffers.Vertices) == 0 {
				t.Fatal("no vertices")
			}
			for _, v := range buffers.Vertices {
				// Interpolating the endpoint positions recovers the vertex.
				if got := sourcePosition(t, attrs, v.Source); got.Distance(v.Position) > 1e-6 {
					t.Errorf("vertex %v has source %+v at %v", v.Position, v.Source, got)
				}
				if slices.Contains(tt.points, v.Position) && !v.Source.IsEndpoint() {
					t.Errorf("input point %v has source %+v, want an endpoint", v.Position, v.Source)
				}
			}
		})
	}
}

func TestFillRectSources(t *testing.T) {
	buffers := NewVertexBuffers[Vertex, uint16]()
	r := Rect{Min: Pt(1, 2), Max: Pt(5, 7)}
	_, err := NewFillTessellator().TessellateRect(r, DefaultFillOptions(),
		NewBuffersBuilder(buffers, func(v Vertex) Vertex { return v }))
	if err != nil {
		t.Fatalf("TessellateRect() error = %v", err)
	}
	want := points(1, 2, 5, 2, 5, 7, 1, 7)
	for _, v := range buffers.Vertices {
		if !v.Source.IsEndpoint() || want[v.Source.From] != v.Position {
			t.Errorf("vertex %v has source %+v", v.Position, v.Source)
		}
	}
}
