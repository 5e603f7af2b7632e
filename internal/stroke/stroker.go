package stroke

import (
	"math"

	"github.com/gogpu/tess/geom"
)

// Side tells on which side of the centerline a vertex lies, looking along
// the direction of travel. Left is the side of Vec2.Perp.
type Side uint8

const (
	Left Side = iota
	Right
)

// Vertex is a stroke vertex as handed to an Output.
type Vertex struct {
	Position geom.Point
	// Normal is the offset of Position from the centerline, in units of
	// half the line width. It has unit length on segment edges and is
	// zero for centerline vertices.
	Normal geom.Vec2
	// Advancement is the distance along the polyline.
	Advancement float64
	Side        Side
	// Index is the position in the stroked polyline of the point the
	// vertex was built around.
	Index int
}

// Output receives the vertices and triangles produced by a Stroker.
type Output interface {
	AddVertex(v Vertex) (uint32, error)
	AddTriangle(a, b, c uint32)
}

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapSquare specifies a square line cap.
	LineCapSquare
	// LineCapRound specifies a rounded line cap.
	LineCapRound
)

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinMiterClip specifies a miter clipped at the miter limit.
	LineJoinMiterClip
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Style defines the stroke geometry.
type Style struct {
	Width      float64
	StartCap   LineCap
	EndCap     LineCap
	Join       LineJoin
	MiterLimit float64
	// Tolerance bounds the deviation of round joins and caps.
	Tolerance float64
}

// DefaultStyle returns a style with default settings.
func DefaultStyle() Style {
	return Style{
		Width:      1.0,
		StartCap:   LineCapButt,
		EndCap:     LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
		Tolerance:  0.1,
	}
}

// vref is a vertex that has been sent to the output.
type vref struct {
	id  uint32
	pos geom.Point
}

// edge is the pair of offset vertices at one end of a segment quad.
type edge struct {
	left, right vref
}

// Stroker converts polylines to stroke triangles.
// A Stroker must not be used concurrently.
type Stroker struct {
	style Style
	base  float64
	// hw is the half width at the current point.
	hw  float64
	cur int

	out      Output
	err      error
	pts      []geom.Point
	idx      []int
	hws      []float64
	variable bool
	arc      []geom.Point
}

// NewStroker creates a stroker with the given style.
func NewStroker(style Style) *Stroker {
	s := &Stroker{}
	s.SetStyle(style)
	return s
}

// SetStyle replaces the style used by subsequent calls to Stroke.
func (s *Stroker) SetStyle(style Style) {
	s.style = style
	s.base = 0.5 * style.Width
	s.hw = s.base
}

// Stroke tessellates one polyline. Consecutive duplicate points are
// ignored. If closed is set the last point is joined back to the first
// and no caps are drawn.
func (s *Stroker) Stroke(out Output, points []geom.Point, closed bool) error {
	return s.StrokeWidths(out, points, nil, closed)
}

// StrokeWidths is like Stroke with a line width per point. widths is
// either nil, for the width of the style, or as long as points. The width
// varies linearly along each segment. Joins and caps take the width of
// the point they are built around.
func (s *Stroker) StrokeWidths(out Output, points []geom.Point, widths []float64, closed bool) error {
	s.out = out
	s.err = nil
	defer func() { s.out = nil }()

	s.variable = widths != nil
	pts, idx, hws := s.pts[:0], s.idx[:0], s.hws[:0]
	for i, p := range points {
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
		idx = append(idx, i)
		if s.variable {
			hws = append(hws, 0.5*widths[i])
		}
	}
	if closed {
		for len(pts) > 1 && pts[len(pts)-1] == pts[0] {
			pts = pts[:len(pts)-1]
			idx = idx[:len(idx)-1]
			if s.variable {
				hws = hws[:len(hws)-1]
			}
		}
	}
	s.pts, s.idx, s.hws = pts, idx, hws

	switch len(pts) {
	case 0:
		return nil
	case 1:
		s.at(0)
		s.dot(pts[0])
		return s.err
	}

	if closed {
		s.strokeClosed(pts)
	} else {
		s.strokeOpen(pts)
	}
	return s.err
}

// at makes point i the one that new vertices are built around.
func (s *Stroker) at(i int) {
	s.cur = s.idx[i]
	if s.variable {
		s.hw = s.hws[i]
	} else {
		s.hw = s.base
	}
}

func (s *Stroker) strokeOpen(pts []geom.Point) {
	var prev edge
	var prevDir geom.Vec2
	var firstStart edge
	var firstDir geom.Vec2
	adv := 0.0

	for i := 0; i+1 < len(pts) && s.err == nil; i++ {
		start, end, dir, length := s.doLine(i, i+1, adv)
		if i == 0 {
			firstStart, firstDir = start, dir
		} else {
			s.at(i)
			s.doJoin(pts[i], prev, start, prevDir, dir, adv)
		}
		prev, prevDir = end, dir
		adv += length
	}
	if s.err != nil {
		return
	}

	s.at(0)
	s.startCap(pts[0], firstStart, firstDir)
	s.at(len(pts) - 1)
	s.endCap(pts[len(pts)-1], prev, prevDir, adv)
}

func (s *Stroker) strokeClosed(pts []geom.Point) {
	var prev edge
	var prevDir geom.Vec2
	var firstStart edge
	var firstDir geom.Vec2
	adv := 0.0

	n := len(pts)
	for i := 0; i < n && s.err == nil; i++ {
		start, end, dir, length := s.doLine(i, (i+1)%n, adv)
		if i == 0 {
			firstStart, firstDir = start, dir
		} else {
			s.at(i)
			s.doJoin(pts[i], prev, start, prevDir, dir, adv)
		}
		prev, prevDir = end, dir
		adv += length
	}
	if s.err != nil {
		return
	}

	s.at(0)
	s.doJoin(pts[0], prev, firstStart, prevDir, firstDir, adv)
}

// doLine emits the quad of the segment from point i to point j and
// returns its two offset edges, its unit direction and its length.
func (s *Stroker) doLine(i, j int, adv float64) (start, end edge, dir geom.Vec2, length float64) {
	p0, p1 := s.pts[i], s.pts[j]
	d := p1.Sub(p0).Vec()
	length = d.Length()
	dir = d.Mul(1 / length)
	norm := dir.Perp()

	s.at(i)
	start = s.edgeAt(p0, norm, adv)
	s.at(j)
	end = s.edgeAt(p1, norm, adv+length)

	s.triangle(start.left, start.right, end.left)
	s.triangle(start.right, end.right, end.left)
	return start, end, dir, length
}

func (s *Stroker) edgeAt(p geom.Point, norm geom.Vec2, adv float64) edge {
	off := norm.Mul(s.hw).ToPoint()
	return edge{
		left:  s.vertex(p.Add(off), norm, adv, Left),
		right: s.vertex(p.Sub(off), norm.Neg(), adv, Right),
	}
}

// vertex sends a vertex to the output. After the first failure it only
// returns zero values.
func (s *Stroker) vertex(p geom.Point, normal geom.Vec2, adv float64, side Side) vref {
	if s.err != nil {
		return vref{}
	}
	id, err := s.out.AddVertex(Vertex{
		Position:    p,
		Normal:      normal,
		Advancement: adv,
		Side:        side,
		Index:       s.cur,
	})
	if err != nil {
		s.err = err
		return vref{}
	}
	return vref{id: id, pos: p}
}

// unitNormal converts an offset from the centerline to half widths.
func (s *Stroker) unitNormal(off geom.Vec2) geom.Vec2 {
	if s.hw == 0 {
		return geom.Vec2{}
	}
	return off.Mul(1 / s.hw)
}

// centerVertex adds a vertex on the centerline.
func (s *Stroker) centerVertex(p geom.Point, adv float64, side Side) vref {
	return s.vertex(p, geom.Vec2{}, adv, side)
}

// triangle emits a triangle with a positive signed area. Triangles with
// zero area are dropped.
func (s *Stroker) triangle(a, b, c vref) {
	if s.err != nil {
		return
	}
	area := b.pos.Sub(a.pos).Cross(c.pos.Sub(a.pos))
	switch {
	case area > 0:
		s.out.AddTriangle(a.id, b.id, c.id)
	case area < 0:
		s.out.AddTriangle(a.id, c.id, b.id)
	}
}

// dot draws a polyline reduced to a single point.
func (s *Stroker) dot(p geom.Point) {
	capStyle := s.style.StartCap
	if capStyle == LineCapButt {
		capStyle = s.style.EndCap
	}

	switch capStyle {
	case LineCapRound:
		center := s.centerVertex(p, 0, Left)
		arc := geom.Arc{
			Center:     p,
			Radii:      geom.Vec2{X: s.hw, Y: s.hw},
			SweepAngle: 2 * math.Pi,
		}
		first := s.vertex(arc.From(), geom.Vec2{X: 1}, s.hw, Left)
		s.fan(center, first, first, arc, 0, geom.Vec2{X: 1}, Left)

	case LineCapSquare:
		h := s.hw
		corner := func(x, y float64) vref {
			n := geom.Vec2{X: x, Y: y}
			return s.vertex(p.Add(n.Mul(h).ToPoint()), n, x*h, Left)
		}
		a, b, c, d := corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)
		s.triangle(a, b, c)
		s.triangle(a, c, d)
	}
}

// fan emits triangles around center covering the arc from `from` to `to`.
// Intermediate arc points become new vertices on the given side, with
// their advancement projected onto dir.
func (s *Stroker) fan(center, from, to vref, arc geom.Arc, adv float64, dir geom.Vec2, side Side) {
	pts := arc.AppendFlatten(s.arc[:0], s.style.Tolerance)
	s.arc = pts
	// The last point is the arc end, which `to` already provides.
	if len(pts) > 0 {
		pts = pts[:len(pts)-1]
	}

	prev := from
	for _, p := range pts {
		off := p.Sub(center.pos).Vec()
		v := s.vertex(p, s.unitNormal(off), adv+off.Dot(dir), side)
		s.triangle(center, prev, v)
		prev = v
	}
	s.triangle(center, prev, to)
}
