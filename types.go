package tess

import (
	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/internal/stroke"
)

// Geometry types shared with package geom.
type (
	// Point is a position in the input coordinate space.
	Point = geom.Point
	// Vec2 is a 2D vector.
	Vec2 = geom.Vec2
	// Rect is an axis-aligned rectangle.
	Rect = geom.Rect
	// Matrix is a 2D affine transformation.
	Matrix = geom.Matrix
)

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// FillRule decides which regions of a path are inside.
type FillRule = geom.FillRule

const (
	// EvenOdd fills regions with an odd winding number.
	EvenOdd = geom.EvenOdd
	// NonZero fills regions with a winding number other than zero.
	NonZero = geom.NonZero
)

// Orientation selects the axis of the fill sweep.
type Orientation = geom.Orientation

const (
	// Vertical sweeps along the Y axis.
	Vertical = geom.Vertical
	// Horizontal sweeps along the X axis.
	Horizontal = geom.Horizontal
)

// LineCap specifies the shape of open contour endpoints.
type LineCap = stroke.LineCap

const (
	// LineCapButt ends the stroke flat at the endpoint.
	LineCapButt = stroke.LineCapButt
	// LineCapSquare extends the stroke by half the line width.
	LineCapSquare = stroke.LineCapSquare
	// LineCapRound ends the stroke with a half disc.
	LineCapRound = stroke.LineCapRound
)

// LineJoin specifies the shape of the outer corner between two segments.
type LineJoin = stroke.LineJoin

const (
	// LineJoinMiter extends the outer edges to their intersection, or
	// falls back to a bevel beyond the miter limit.
	LineJoinMiter = stroke.LineJoinMiter
	// LineJoinMiterClip extends the outer edges and cuts the miter at the
	// miter limit.
	LineJoinMiterClip = stroke.LineJoinMiterClip
	// LineJoinRound joins with a circular arc.
	LineJoinRound = stroke.LineJoinRound
	// LineJoinBevel joins with a straight cut.
	LineJoinBevel = stroke.LineJoinBevel
)

// Side tells on which side of a stroke's centerline a vertex lies.
type Side = stroke.Side

const (
	// Left is the side to the left of the direction of travel.
	Left = stroke.Left
	// Right is the side to the right of the direction of travel.
	Right = stroke.Right
)
