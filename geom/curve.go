package geom

import "math"

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// IntersectionT returns the parameters (ta, tb) at which l and other
// cross, with l.Eval(ta) == other.Eval(tb). Segments sharing an endpoint,
// parallel segments and segments that do not cross report false.
func (l Line) IntersectionT(other Line) (float64, float64, bool) {
	if math.Min(l.P0.X, l.P1.X) > math.Max(other.P0.X, other.P1.X) ||
		math.Max(l.P0.X, l.P1.X) < math.Min(other.P0.X, other.P1.X) {
		return 0, 0, false
	}
	if l.P1 == other.P1 || l.P0 == other.P0 || l.P0 == other.P1 || l.P1 == other.P0 {
		return 0, 0, false
	}

	v1 := l.P1.Sub(l.P0)
	v2 := other.P1.Sub(other.P0)
	denom := v1.Cross(v2)
	if denom == 0 {
		return 0, 0, false
	}

	// Division is postponed to keep precision; signs follow denom.
	sign := 1.0
	if denom < 0 {
		sign = -1
	}
	abs := math.Abs(denom)
	v3 := other.P0.Sub(l.P0)
	t := v3.Cross(v2) * sign
	u := v3.Cross(v1) * sign
	if t < 0 || t > abs || u < 0 || u > abs {
		return 0, 0, false
	}
	return t / abs, u / abs, true
}

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	c0 := q.P0.Lerp(q.P1, 0.5)
	c1 := q.P1.Lerp(q.P2, 0.5)
	mid := c0.Lerp(c1, 0.5)
	return QuadBez{P0: q.P0, P1: c0, P2: mid}, QuadBez{P0: mid, P1: c1, P2: q.P2}
}

// ControlBox returns the bounding box of the control polygon, which
// contains the curve.
func (q QuadBez) ControlBox() Rect {
	return NewRect(q.P0, q.P2).Extend(q.P1)
}

// Raise elevates the quadratic to an equivalent cubic Bezier curve.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	t2 := t * t
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// ControlBox returns the bounding box of the control polygon, which
// contains the curve.
func (c CubicBez) ControlBox() Rect {
	return NewRect(c.P0, c.P3).Extend(c.P1).Extend(c.P2)
}

// Transform returns the curve with every control point transformed by m.
func (c CubicBez) Transform(m Matrix) CubicBez {
	return CubicBez{
		P0: m.TransformPoint(c.P0),
		P1: m.TransformPoint(c.P1),
		P2: m.TransformPoint(c.P2),
		P3: m.TransformPoint(c.P3),
	}
}
