package tess

import (
	"math"

	"github.com/gogpu/tess/geom"
)

// Path operations for area calculation, winding number, containment testing,
// bounding box computation, flattening, and arc length measurement.
// Contours are treated as closed, the way the fill tessellator sees them.

// Area returns the signed area enclosed by the path, positive for
// counter-clockwise contours in a Y-up space.
// Uses the shoelace formula extended for curves (Green's theorem).
func (p *Path) Area() float64 {
	var area float64
	var current, start Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			area += lineArea(current, start)
			start = e.Point
			current = e.Point
		case LineTo:
			area += lineArea(current, e.Point)
			current = e.Point
		case QuadTo:
			area += cubicArea(geom.QuadBez{P0: current, P1: e.Control, P2: e.Point}.Raise())
			current = e.Point
		case CubicTo:
			area += cubicArea(geom.CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point})
			current = e.Point
		case Close:
			area += lineArea(current, start)
			current = start
		}
	}
	return area + lineArea(current, start)
}

// lineArea computes the contribution of a line segment to the signed area.
// Uses the shoelace formula: 0.5 * (x0*y1 - x1*y0)
func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// cubicArea computes the contribution of a cubic Bezier to the signed area.
// Quadratics are raised to cubics first.
func cubicArea(c geom.CubicBez) float64 {
	p0, p1, p2, p3 := c.P0, c.P1, c.P2, c.P3
	return (p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
		3*p1.X*(-2*p0.Y+p2.Y+p3.Y) +
		3*p2.X*(-p0.Y-p1.Y+2*p3.Y) +
		p3.X*(-p0.Y-3*p1.Y-6*p2.Y)) / 20.0
}

// windingTolerance is the flattening tolerance used for winding queries.
const windingTolerance = 0.01

// Winding returns the winding number of a point relative to the path.
// Uses ray casting with a horizontal ray to the right.
func (p *Path) Winding(pt Point) int {
	var winding int
	for _, contour := range p.Flatten(windingTolerance) {
		n := len(contour)
		for i := range n {
			winding += lineWinding(contour[i], contour[(i+1)%n], pt)
		}
	}
	return winding
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// Contains tests if a point is inside the path under the given fill rule.
func (p *Path) Contains(pt Point, rule FillRule) bool {
	return rule.IsIn(p.Winding(pt))
}

// BoundingBox returns a bounding box of the path. Curves contribute their
// control points, so the box may be larger than the curves themselves.
func (p *Path) BoundingBox() Rect {
	if len(p.elements) == 0 {
		return Rect{}
	}

	bbox := Rect{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
	var current, start Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			bbox = bbox.Extend(e.Point)
			current, start = e.Point, e.Point
		case LineTo:
			bbox = bbox.Extend(e.Point)
			current = e.Point
		case QuadTo:
			bbox = bbox.Union(geom.QuadBez{P0: current, P1: e.Control, P2: e.Point}.ControlBox())
			current = e.Point
		case CubicTo:
			bbox = bbox.Union(geom.CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}.ControlBox())
			current = e.Point
		case Close:
			current = start
		}
	}
	if bbox.Min.X == math.MaxFloat64 {
		return Rect{}
	}
	return bbox
}

// Flatten converts all curves to line segments with given tolerance and
// returns one polyline per contour. The closing point of a closed contour
// is not repeated.
func (p *Path) Flatten(tolerance float64) [][]Point {
	var contours [][]Point
	f := flattener{tolerance: tolerance}
	_ = f.walk(p.Events(), func(points []Point, closed bool, _ int) error {
		c := append([]Point(nil), points...)
		if closed && len(c) > 1 && c[len(c)-1] == c[0] {
			c = c[:len(c)-1]
		}
		contours = append(contours, c)
		return nil
	})
	return contours
}

// Reversed returns a new path with reversed direction.
// Each contour is reversed independently.
func (p *Path) Reversed() *Path {
	result := NewPath()
	for _, sp := range p.collectSubpaths() {
		reverseSubpath(sp, result)
	}
	return result
}

// subpath represents a single contour with its start point, its elements
// after the MoveTo, and its closure state.
type subpath struct {
	start    Point
	elements []PathElement
	closed   bool
}

// collectSubpaths splits the path into separate contours.
func (p *Path) collectSubpaths() []subpath {
	var subpaths []subpath
	var current subpath
	var last Point
	open := false

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				subpaths = append(subpaths, current)
			}
			current = subpath{start: e.Point}
			last = e.Point
			open = true
		case Close:
			if open {
				current.closed = true
				subpaths = append(subpaths, current)
				last = current.start
				open = false
			}
		default:
			if !open {
				current = subpath{start: last}
				open = true
			}
			current.elements = append(current.elements, elem)
			last = endPoint(elem)
		}
	}
	if open {
		subpaths = append(subpaths, current)
	}
	return subpaths
}

// endPoint returns the end point of a drawing element.
func endPoint(elem PathElement) Point {
	switch e := elem.(type) {
	case MoveTo:
		return e.Point
	case LineTo:
		return e.Point
	case QuadTo:
		return e.Point
	case CubicTo:
		return e.Point
	}
	return Point{}
}

// reverseSubpath reverses a single contour and appends it to result.
func reverseSubpath(sp subpath, result *Path) {
	end := sp.start
	if n := len(sp.elements); n > 0 {
		end = endPoint(sp.elements[n-1])
	}
	result.MoveTo(end.X, end.Y)

	for i := len(sp.elements) - 1; i >= 0; i-- {
		prev := sp.start
		if i > 0 {
			prev = endPoint(sp.elements[i-1])
		}
		switch e := sp.elements[i].(type) {
		case LineTo:
			result.LineTo(prev.X, prev.Y)
		case QuadTo:
			result.QuadraticTo(e.Control.X, e.Control.Y, prev.X, prev.Y)
		case CubicTo:
			result.CubicTo(e.Control2.X, e.Control2.Y, e.Control1.X, e.Control1.Y, prev.X, prev.Y)
		}
	}

	if sp.closed {
		result.Close()
	}
}

// Length returns the total arc length of the path, closing segments
// included. accuracy controls the precision of the approximation.
func (p *Path) Length(accuracy float64) float64 {
	if accuracy <= 0 {
		accuracy = 0.001
	}

	var length float64
	var current, start Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			start = e.Point
			current = e.Point
		case LineTo:
			length += current.Distance(e.Point)
			current = e.Point
		case QuadTo:
			length += quadLength(geom.QuadBez{P0: current, P1: e.Control, P2: e.Point}, accuracy*accuracy, 0)
			current = e.Point
		case CubicTo:
			length += cubicLength(geom.CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}, accuracy*accuracy, 0)
			current = e.Point
		case Close:
			length += current.Distance(start)
			current = start
		}
	}
	return length
}

// maxLengthDepth bounds the subdivision of curve length estimates.
const maxLengthDepth = 16

// quadLength computes the arc length of a quadratic Bezier by comparing
// chord and control polygon lengths.
func quadLength(q geom.QuadBez, accuracySq float64, depth int) float64 {
	chord := q.P0.Distance(q.P2)
	polygon := q.P0.Distance(q.P1) + q.P1.Distance(q.P2)

	diff := polygon - chord
	if diff*diff <= accuracySq || depth >= maxLengthDepth {
		return (chord + polygon) / 2
	}
	q1, q2 := q.Subdivide()
	return quadLength(q1, accuracySq, depth+1) + quadLength(q2, accuracySq, depth+1)
}

// cubicLength computes the arc length of a cubic Bezier.
func cubicLength(c geom.CubicBez, accuracySq float64, depth int) float64 {
	chord := c.P0.Distance(c.P3)
	polygon := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)

	diff := polygon - chord
	if diff*diff <= accuracySq || depth >= maxLengthDepth {
		return (chord + polygon) / 2
	}
	c1, c2 := c.Subdivide()
	return cubicLength(c1, accuracySq, depth+1) + cubicLength(c2, accuracySq, depth+1)
}
