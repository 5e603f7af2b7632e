package geom

import (
	"iter"
	"math"
)

// MinTolerance is the smallest flattening tolerance accepted. Smaller,
// zero, negative and NaN tolerances are replaced by it.
const MinTolerance = 1e-6

// maxFlattenDepth bounds recursive subdivision at 2^16 segments per curve.
const maxFlattenDepth = 16

// SanitizeTolerance returns tol clamped to [MinTolerance, +Inf).
func SanitizeTolerance(tol float64) float64 {
	if math.IsNaN(tol) || tol < MinTolerance {
		return MinTolerance
	}
	return tol
}

// Flatness returns an upper bound of the distance between the curve and
// its chord P0-P2.
func (q QuadBez) Flatness() float64 {
	return q.P0.Sub(q.P1.Mul(2)).Add(q.P2).Length() / 4
}

// Flatten calls fn with the points of a polyline approximating the curve
// within tolerance, excluding P0 and ending with P2.
func (q QuadBez) Flatten(tolerance float64, fn func(Point)) {
	flattenQuad(q, SanitizeTolerance(tolerance), 0, func(p Point) bool {
		fn(p)
		return true
	})
}

// FlattenSeq returns the points produced by Flatten as a sequence.
func (q QuadBez) FlattenSeq(tolerance float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		flattenQuad(q, SanitizeTolerance(tolerance), 0, yield)
	}
}

func flattenQuad(q QuadBez, tol float64, depth int, yield func(Point) bool) bool {
	if depth >= maxFlattenDepth || q.Flatness() <= tol {
		return yield(q.P2)
	}
	a, b := q.Subdivide()
	return flattenQuad(a, tol, depth+1, yield) && flattenQuad(b, tol, depth+1, yield)
}

// FlatnessSq returns the squared upper bound of the distance between the
// curve and its chord P0-P3.
func (c CubicBez) FlatnessSq() float64 {
	ux := 3*c.P1.X - 2*c.P0.X - c.P3.X
	uy := 3*c.P1.Y - 2*c.P0.Y - c.P3.Y
	vx := 3*c.P2.X - c.P0.X - 2*c.P3.X
	vy := 3*c.P2.Y - c.P0.Y - 2*c.P3.Y
	return (math.Max(ux*ux, vx*vx) + math.Max(uy*uy, vy*vy)) / 16
}

// Flatten calls fn with the points of a polyline approximating the curve
// within tolerance, excluding P0 and ending with P3.
func (c CubicBez) Flatten(tolerance float64, fn func(Point)) {
	tol := SanitizeTolerance(tolerance)
	flattenCubic(c, tol*tol, 0, func(p Point) bool {
		fn(p)
		return true
	})
}

// FlattenSeq returns the points produced by Flatten as a sequence.
func (c CubicBez) FlattenSeq(tolerance float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		tol := SanitizeTolerance(tolerance)
		flattenCubic(c, tol*tol, 0, yield)
	}
}

func flattenCubic(c CubicBez, tolSq float64, depth int, yield func(Point) bool) bool {
	if depth >= maxFlattenDepth || c.FlatnessSq() <= tolSq {
		return yield(c.P3)
	}
	a, b := c.Subdivide()
	return flattenCubic(a, tolSq, depth+1, yield) && flattenCubic(b, tolSq, depth+1, yield)
}
