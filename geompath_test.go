package tess

import (
	"reflect"
	"slices"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestFromGeomData(t *testing.T) {
	data := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		QuadTo(vec.Vec2{X: 12, Y: 5}, vec.Vec2{X: 10, Y: 10}).
		CubeTo(vec.Vec2{X: 7, Y: 12}, vec.Vec2{X: 3, Y: 12}, vec.Vec2{X: 0, Y: 10}).
		Close()

	got := FromGeomData(data).Elements()
	want := []PathElement{
		MoveTo{Point: Pt(0, 0)},
		LineTo{Point: Pt(10, 0)},
		QuadTo{Control: Pt(12, 5), Point: Pt(10, 10)},
		CubicTo{Control1: Pt(7, 12), Control2: Pt(3, 12), Point: Pt(0, 10)},
		Close{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromGeomData() = %v, want %v", got, want)
	}

	if n := len(FromGeomData(nil).Elements()); n != 0 {
		t.Errorf("FromGeomData(nil) has %d elements, want 0", n)
	}
}

func TestFromGeomPath(t *testing.T) {
	data := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	p := FromGeomPath(data.Iter())
	if got := p.Area(); !approxEqual(got, 5, 1e-12) {
		t.Errorf("Area() = %v, want 5", got)
	}
	if !reflect.DeepEqual(p.Elements(), FromGeomData(data).Elements()) {
		t.Errorf("FromGeomPath() = %v, want %v", p.Elements(), FromGeomData(data).Elements())
	}

	mesh, err := NewFillTessellator().Fill(p.Events(), DefaultFillOptions())
	if err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if got := meshArea(mesh); !approxEqual(got, 5, 1e-9) {
		t.Errorf("mesh area = %v, want 5", got)
	}

	if n := len(FromGeomPath(nil).Elements()); n != 0 {
		t.Errorf("FromGeomPath(nil) has %d elements, want 0", n)
	}
}

func TestGeomPathRoundTrip(t *testing.T) {
	orig := BuildPath().
		MoveTo(1, 2).
		QuadTo(3, 4, 5, 6).
		CubicTo(7, 8, 9, 10, 11, 12).
		Close().
		Circle(20, 20, 5).
		Build()

	back := FromGeomPath(orig.GeomPath())
	if !reflect.DeepEqual(back.Elements(), orig.Elements()) {
		t.Errorf("round trip = %v, want %v", back.Elements(), orig.Elements())
	}

	// Stopping early must not panic.
	for range orig.GeomPath() {
		break
	}
}

func TestGeomMatrix(t *testing.T) {
	tests := []struct {
		name string
		m    matrix.Matrix
		in   Point
		want Point
	}{
		{"identity", matrix.Matrix{1, 0, 0, 1, 0, 0}, Pt(3, 4), Pt(3, 4)},
		{"translate", matrix.Matrix{1, 0, 0, 1, 5, -2}, Pt(3, 4), Pt(8, 2)},
		{"flip y", matrix.Matrix{1, 0, 0, -1, 0, 100}, Pt(3, 4), Pt(3, 96)},
		{"shear", matrix.Matrix{1, 0, 2, 1, 0, 0}, Pt(3, 4), Pt(11, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeomMatrix(tt.m).TransformPoint(tt.in); got != tt.want {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformEvents(t *testing.T) {
	m := GeomMatrix(matrix.Matrix{2, 0, 0, 2, 10, 0})
	src := BuildPath().MoveTo(0, 0).QuadTo(1, 1, 2, 0).Close().Build()

	got := slices.Collect(Transform(src.Events(), m))
	want := slices.Collect(src.Transform(m).Events())
	if !slices.Equal(got, want) {
		t.Errorf("Transform() = %v, want %v", got, want)
	}

	if n := len(slices.Collect(Transform(nil, m))); n != 0 {
		t.Errorf("Transform(nil) yielded %d events, want 0", n)
	}
}
