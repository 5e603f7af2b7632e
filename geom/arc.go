package geom

import (
	"iter"
	"math"
)

// maxArcSteps bounds the number of segments produced for a single arc.
const maxArcSteps = 1024

// Arc is an elliptical arc in center parameterization.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
}

// Eval returns the point of the arc at the given angle.
func (a Arc) Eval(angle float64) Point {
	sin, cos := math.Sincos(angle)
	v := Vec2{X: a.Radii.X * cos, Y: a.Radii.Y * sin}
	if a.XRotation != 0 {
		v = v.Rotate(a.XRotation)
	}
	return a.Center.Add(v.ToPoint())
}

// From returns the start point of the arc.
func (a Arc) From() Point {
	return a.Eval(a.StartAngle)
}

// To returns the end point of the arc.
func (a Arc) To() Point {
	return a.Eval(a.StartAngle + a.SweepAngle)
}

// steps returns the number of chords needed so that the sagitta of each
// chord stays below tol.
func (a Arc) steps(tol float64) int {
	r := math.Max(math.Abs(a.Radii.X), math.Abs(a.Radii.Y))
	sweep := math.Abs(a.SweepAngle)
	if r == 0 || sweep == 0 || math.IsNaN(sweep) {
		return 1
	}
	c := math.Max(-1, 1-tol/r)
	theta := 2 * math.Acos(c)
	n := math.Ceil(sweep / theta)
	if n < 1 || math.IsNaN(n) {
		return 1
	}
	if n > maxArcSteps {
		return maxArcSteps
	}
	return int(n)
}

// Flatten calls fn with the points of a polyline approximating the arc
// within tolerance, excluding the start point and ending with To().
func (a Arc) Flatten(tolerance float64, fn func(Point)) {
	for p := range a.FlattenSeq(tolerance) {
		fn(p)
	}
}

// AppendFlatten appends the points produced by Flatten to dst and returns
// the extended slice.
func (a Arc) AppendFlatten(dst []Point, tolerance float64) []Point {
	n := a.steps(SanitizeTolerance(tolerance))
	step := a.SweepAngle / float64(n)
	for i := 1; i <= n; i++ {
		dst = append(dst, a.Eval(a.StartAngle+step*float64(i)))
	}
	return dst
}

// FlattenSeq returns the points produced by Flatten as a sequence.
func (a Arc) FlattenSeq(tolerance float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		n := a.steps(SanitizeTolerance(tolerance))
		step := a.SweepAngle / float64(n)
		for i := 1; i <= n; i++ {
			if !yield(a.Eval(a.StartAngle + step*float64(i))) {
				return
			}
		}
	}
}

// Cubics calls fn with cubic Bézier curves approximating the arc, one per
// quarter turn or less.
func (a Arc) Cubics(fn func(CubicBez)) {
	n := int(math.Ceil(math.Abs(a.SweepAngle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := a.SweepAngle / float64(n)
	m := Translate(a.Center.X, a.Center.Y).
		Multiply(Rotate(a.XRotation)).
		Multiply(Scale(a.Radii.X, a.Radii.Y))
	for i := range n {
		a0 := a.StartAngle + float64(i)*step
		fn(unitArcSegment(a0, a0+step).Transform(m))
	}
}

// unitArcSegment approximates an arc of the unit circle of at most 90
// degrees with a cubic curve.
func unitArcSegment(a0, a1 float64) CubicBez {
	da := a1 - a0
	alpha := 4.0 / 3 * math.Tan(da/4)

	sin0, cos0 := math.Sincos(a0)
	sin1, cos1 := math.Sincos(a1)
	p0 := Point{X: cos0, Y: sin0}
	p3 := Point{X: cos1, Y: sin1}
	return CubicBez{
		P0: p0,
		P1: Point{X: p0.X - alpha*sin0, Y: p0.Y + alpha*cos0},
		P2: Point{X: p3.X + alpha*sin1, Y: p3.Y - alpha*cos1},
		P3: p3,
	}
}

// SvgArc is an elliptical arc in the endpoint parameterization used by
// SVG path data.
type SvgArc struct {
	From, To  Point
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

// IsStraightLine reports whether the arc degenerates to a line segment
// (or nothing, when the endpoints coincide).
func (s SvgArc) IsStraightLine() bool {
	return s.From == s.To || s.Radii.X == 0 || s.Radii.Y == 0 ||
		math.IsNaN(s.Radii.X) || math.IsNaN(s.Radii.Y)
}

// ToArc converts the arc to center parameterization. Radii too small to
// span the endpoints are scaled up uniformly. The second result is false
// when the arc degenerates to a straight line.
func (s SvgArc) ToArc() (Arc, bool) {
	if s.IsStraightLine() {
		return Arc{}, false
	}
	rx, ry := math.Abs(s.Radii.X), math.Abs(s.Radii.Y)
	sinPhi, cosPhi := math.Sincos(s.XRotation)

	hx := (s.From.X - s.To.X) / 2
	hy := (s.From.Y - s.To.Y) / 2
	x1 := cosPhi*hx + sinPhi*hy
	y1 := -sinPhi*hx + cosPhi*hy

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		k := math.Sqrt(lambda)
		rx *= k
		ry *= k
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if s.LargeArc == s.Sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	center := Point{
		X: cosPhi*cx1 - sinPhi*cy1 + (s.From.X+s.To.X)/2,
		Y: sinPhi*cx1 + cosPhi*cy1 + (s.From.Y+s.To.Y)/2,
	}
	u := Vec2{X: (x1 - cx1) / rx, Y: (y1 - cy1) / ry}
	v := Vec2{X: (-x1 - cx1) / rx, Y: (-y1 - cy1) / ry}

	start := u.Angle()
	sweep := math.Atan2(u.Cross(v), u.Dot(v))
	if !s.Sweep && sweep > 0 {
		sweep -= 2 * math.Pi
	} else if s.Sweep && sweep < 0 {
		sweep += 2 * math.Pi
	}

	return Arc{
		Center:     center,
		Radii:      Vec2{X: rx, Y: ry},
		StartAngle: start,
		SweepAngle: sweep,
		XRotation:  s.XRotation,
	}, true
}

// Flatten calls fn with the points of a polyline approximating the arc
// within tolerance, excluding From and ending exactly at To. A degenerate
// arc produces at most one point.
func (s SvgArc) Flatten(tolerance float64, fn func(Point)) {
	if s.From == s.To {
		return
	}
	arc, ok := s.ToArc()
	if !ok {
		fn(s.To)
		return
	}
	n := arc.steps(SanitizeTolerance(tolerance))
	step := arc.SweepAngle / float64(n)
	for i := 1; i < n; i++ {
		fn(arc.Eval(arc.StartAngle + step*float64(i)))
	}
	fn(s.To)
}

// Cubics calls fn with cubic Bézier curves approximating the arc. A
// degenerate arc produces a single straight cubic, or nothing when the
// endpoints coincide.
func (s SvgArc) Cubics(fn func(CubicBez)) {
	if s.From == s.To {
		return
	}
	arc, ok := s.ToArc()
	if !ok {
		fn(CubicBez{P0: s.From, P1: s.From.Lerp(s.To, 1.0/3), P2: s.From.Lerp(s.To, 2.0/3), P3: s.To})
		return
	}
	arc.Cubics(fn)
}
