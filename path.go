package tess

import (
	"iter"
	"math"

	"github.com/gogpu/tess/geom"
)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current contour.
type Close struct{}

func (Close) isPathElement() {}

// Path is an append-only list of path elements.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current contour
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current contour.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// HasCurrentPoint returns true if the path has a current point.
func (p *Path) HasCurrentPoint() bool {
	return len(p.elements) > 0
}

// Events returns the path as a tessellator command stream. Every contour
// is reported between a Begin and an End event: a MoveTo ends an open
// contour, and a segment after Close starts a new contour at the closing
// point. The sequence can be iterated any number of times.
func (p *Path) Events() iter.Seq[PathEvent] {
	return func(yield func(PathEvent) bool) {
		var start, current Point
		open := false

		begin := func(at Point) bool {
			start, current, open = at, at, true
			return yield(BeginEvent(at))
		}
		end := func(close bool) bool {
			open = false
			ok := yield(EndEvent(current, start, close))
			if close {
				current = start
			}
			return ok
		}

		for _, elem := range p.elements {
			var ev PathEvent
			switch e := elem.(type) {
			case MoveTo:
				if open && !end(false) {
					return
				}
				if !begin(e.Point) {
					return
				}
				continue
			case LineTo:
				ev = LineEvent(current, e.Point)
			case QuadTo:
				ev = QuadraticEvent(current, e.Control, e.Point)
			case CubicTo:
				ev = CubicEvent(current, e.Control1, e.Control2, e.Point)
			case Close:
				if open && !end(true) {
					return
				}
				continue
			}
			if !open && !begin(current) {
				return
			}
			if !yield(ev) {
				return
			}
			current = ev.To
		}
		if open {
			end(false)
		}
	}
}

// Transform applies a transformation matrix to all points in the path.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a circle to the path using cubic Bezier curves.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	ox := rx * k
	oy := ry * k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Arc adds a circular arc to the path.
// The arc is drawn from angle1 to angle2 (in radians) around center (cx, cy).
// It is connected to the current point by a line, or starts a new contour
// when the path is empty.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}
	arc := geom.Arc{
		Center:     Pt(cx, cy),
		Radii:      geom.V2(r, r),
		StartAngle: angle1,
		SweepAngle: angle2 - angle1,
	}
	from := arc.From()
	if p.HasCurrentPoint() {
		p.LineTo(from.X, from.Y)
	} else {
		p.MoveTo(from.X, from.Y)
	}
	p.cubics(arc.Cubics, arc.To())
}

// ArcTo adds an elliptical arc from the current point to (x, y), with the
// parameters of the SVG arc command. Radii too small to reach the end
// point are scaled up, and zero radii draw a line.
func (p *Path) ArcTo(rx, ry, xRotation float64, largeArc, sweep bool, x, y float64) {
	to := Pt(x, y)
	arc := geom.SvgArc{
		From:      p.current,
		To:        to,
		Radii:     geom.V2(rx, ry),
		XRotation: xRotation,
		LargeArc:  largeArc,
		Sweep:     sweep,
	}
	if arc.IsStraightLine() {
		p.LineTo(x, y)
		return
	}
	p.cubics(arc.Cubics, to)
}

// cubics appends the curves produced by gen and makes the last one end
// exactly at end.
func (p *Path) cubics(gen func(func(geom.CubicBez)), end Point) {
	var curves []geom.CubicBez
	gen(func(c geom.CubicBez) {
		curves = append(curves, c)
	})
	for i, c := range curves {
		if i == len(curves)-1 {
			c.P3 = end
		}
		p.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
	}
}

// RoundedRectangle adds a rectangle with rounded corners.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	maxR := math.Min(w, h) / 2
	if r > maxR {
		r = maxR
	}
	if r <= 0 {
		p.Rectangle(x, y, w, h)
		return
	}

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.Close()
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	return result
}
