package tess

import (
	"math"
	"testing"
)

// triangleArea returns the signed area of triangle i of m.
func triangleArea(m *Mesh, i int) float64 {
	a := m.Vertices[m.Indices[3*i]]
	b := m.Vertices[m.Indices[3*i+1]]
	c := m.Vertices[m.Indices[3*i+2]]
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

// meshArea returns the sum of the signed triangle areas of m.
func meshArea(m *Mesh) float64 {
	var sum float64
	for i := range m.Triangles() {
		sum += triangleArea(m, i)
	}
	return sum
}

// checkMesh reports triangles with a non-positive area and indices out of
// range.
func checkMesh(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("len(Indices) = %d, want a multiple of 3", len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range [0, %d)", idx, len(m.Vertices))
		}
	}
	for i := range m.Triangles() {
		if a := triangleArea(m, i); a <= 0 {
			t.Errorf("triangle %d area = %v, want > 0", i, a)
		}
	}
}

// meshContains reports whether p lies in any triangle of m.
func meshContains(m *Mesh, p Point) bool {
	for i := range m.Triangles() {
		a := m.Vertices[m.Indices[3*i]]
		b := m.Vertices[m.Indices[3*i+1]]
		c := m.Vertices[m.Indices[3*i+2]]
		if b.Sub(a).Cross(p.Sub(a)) >= 0 && c.Sub(b).Cross(p.Sub(b)) >= 0 && a.Sub(c).Cross(p.Sub(c)) >= 0 {
			return true
		}
	}
	return false
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func points(coords ...float64) []Point {
	out := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, Pt(coords[i], coords[i+1]))
	}
	return out
}

func reversed(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// polygonPath returns a path with one closed contour per polygon.
func polygonPath(polygons ...[]Point) *Path {
	p := NewPath()
	for _, poly := range polygons {
		for i, pt := range poly {
			if i == 0 {
				p.MoveTo(pt.X, pt.Y)
			} else {
				p.LineTo(pt.X, pt.Y)
			}
		}
		p.Close()
	}
	return p
}
