package stroke

import (
	"math"

	"github.com/gogpu/tess/geom"
)

// doJoin fills the gap on the outer side of the turn at p between the end
// of the previous segment and the start of the next one.
func (s *Stroker) doJoin(p geom.Point, prev, next edge, ab, cd geom.Vec2, adv float64) {
	if s.err != nil {
		return
	}
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	if cross == 0 && dot > 0 {
		return
	}

	// Turning towards the left side opens the gap on the right.
	var from, to vref
	var side Side
	var sign float64
	if cross > 0 {
		from, to, side, sign = prev.right, next.right, Right, -1
	} else {
		from, to, side, sign = prev.left, next.left, Left, 1
	}

	center := s.centerVertex(p, adv, side)

	switch s.style.Join {
	case LineJoinBevel:
		s.applyBevelJoin(center, from, to)
	case LineJoinMiter:
		s.applyMiterJoin(center, from, to, ab, cd, sign, dot, adv, side)
	case LineJoinMiterClip:
		s.applyMiterClipJoin(center, from, to, ab, cd, sign, dot, adv, side)
	case LineJoinRound:
		s.applyRoundJoin(center, from, to, ab, cross, dot, sign, adv, side)
	}
}

func (s *Stroker) applyBevelJoin(center, from, to vref) {
	s.triangle(center, from, to)
}

// miterOffset returns the offset of the miter point from the centerline in
// half widths, for unit tangents ab and cd.
func miterOffset(ab, cd geom.Vec2, sign, dot float64) geom.Vec2 {
	return ab.Perp().Add(cd.Perp()).Mul(sign / (1 + dot))
}

// withinMiterLimit reports whether the miter ratio of a turn between unit
// tangents with the given dot product is below limit.
func withinMiterLimit(dot, limit float64) bool {
	// With unit tangents the hypotenuse is 1, so the miter ratio squared
	// is 2 / (1 + dot).
	return 2 < (1+dot)*limit*limit
}

func (s *Stroker) applyMiterJoin(center, from, to vref, ab, cd geom.Vec2, sign, dot, adv float64, side Side) {
	if !withinMiterLimit(dot, s.style.MiterLimit) {
		s.applyBevelJoin(center, from, to)
		return
	}
	n := miterOffset(ab, cd, sign, dot)
	m := s.vertex(center.pos.Add(n.Mul(s.hw).ToPoint()), n, adv, side)
	s.triangle(center, from, m)
	s.triangle(center, m, to)
}

// applyMiterClipJoin draws a miter that is cut by a line perpendicular to
// the bisector at MiterLimit half widths from the centerline.
func (s *Stroker) applyMiterClipJoin(center, from, to vref, ab, cd geom.Vec2, sign, dot, adv float64, side Side) {
	if withinMiterLimit(dot, s.style.MiterLimit) {
		s.applyMiterJoin(center, from, to, ab, cd, sign, dot, adv, side)
		return
	}

	bisector := ab.Perp().Add(cd.Perp()).Mul(sign).Normalize()
	if bisector.IsZero() {
		// A full turn back: the spike points along the incoming direction.
		bisector = ab
	}
	clip := s.style.MiterLimit * s.hw

	p := center.pos
	fromOff := from.pos.Sub(p).Vec()
	toOff := to.pos.Sub(p).Vec()
	t0 := (clip - fromOff.Dot(bisector)) / ab.Dot(bisector)
	t1 := (clip - toOff.Dot(bisector)) / cd.Neg().Dot(bisector)
	if math.IsNaN(t0) || math.IsInf(t0, 0) || math.IsNaN(t1) || math.IsInf(t1, 0) {
		s.applyBevelJoin(center, from, to)
		return
	}

	c0 := fromOff.Add(ab.Mul(t0))
	c1 := toOff.Sub(cd.Mul(t1))
	v0 := s.vertex(p.Add(c0.ToPoint()), s.unitNormal(c0), adv, side)
	v1 := s.vertex(p.Add(c1.ToPoint()), s.unitNormal(c1), adv, side)
	s.triangle(center, from, v0)
	s.triangle(center, v0, v1)
	s.triangle(center, v1, to)
}

// applyRoundJoin fans an arc from the previous outer corner to the next.
func (s *Stroker) applyRoundJoin(center, from, to vref, ab geom.Vec2, cross, dot, sign, adv float64, side Side) {
	sweep := math.Atan2(cross, dot)
	if sign > 0 && sweep > 0 {
		// A full turn back on the left side goes around clockwise.
		sweep = -sweep
	}
	arc := geom.Arc{
		Center:     center.pos,
		Radii:      geom.Vec2{X: s.hw, Y: s.hw},
		StartAngle: ab.Perp().Mul(sign).Angle(),
		SweepAngle: sweep,
	}
	s.fan(center, from, to, arc, adv, geom.Vec2{}, side)
}

// startCap closes the beginning of an open polyline at p, where the first
// segment leaves in direction dir.
func (s *Stroker) startCap(p geom.Point, start edge, dir geom.Vec2) {
	switch s.style.StartCap {
	case LineCapSquare:
		s.squareCap(p, start, dir.Neg(), -s.hw)
	case LineCapRound:
		center := s.centerVertex(p, 0, Left)
		arc := geom.Arc{
			Center:     p,
			Radii:      geom.Vec2{X: s.hw, Y: s.hw},
			StartAngle: dir.Perp().Angle(),
			SweepAngle: math.Pi,
		}
		s.fan(center, start.left, start.right, arc, 0, dir, Left)
	}
}

// endCap closes the end of an open polyline at p, where the last segment
// arrives in direction dir.
func (s *Stroker) endCap(p geom.Point, end edge, dir geom.Vec2, adv float64) {
	switch s.style.EndCap {
	case LineCapSquare:
		s.squareCap(p, end, dir, adv+s.hw)
	case LineCapRound:
		center := s.centerVertex(p, adv, Left)
		arc := geom.Arc{
			Center:     p,
			Radii:      geom.Vec2{X: s.hw, Y: s.hw},
			StartAngle: dir.Perp().Neg().Angle(),
			SweepAngle: math.Pi,
		}
		s.fan(center, end.right, end.left, arc, adv, dir, Left)
	}
}

// squareCap extends the edge at p by half the width in direction out.
func (s *Stroker) squareCap(p geom.Point, e edge, out geom.Vec2, adv float64) {
	ext := out.Mul(s.hw).ToPoint()
	left := e.left.pos.Add(ext)
	right := e.right.pos.Add(ext)
	l := s.vertex(left, s.unitNormal(left.Sub(p).Vec()), adv, Left)
	r := s.vertex(right, s.unitNormal(right.Sub(p).Vec()), adv, Right)
	s.triangle(e.left, e.right, l)
	s.triangle(e.right, r, l)
}
