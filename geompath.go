package tess

import (
	"iter"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FromGeomPath converts a seehuhn.de/go/geom path iterator into a Path.
func FromGeomPath(p path.Path) *Path {
	result := NewPath()
	if p == nil {
		return result
	}
	for cmd, pts := range p {
		result.appendGeom(cmd, pts)
	}
	return result
}

// FromGeomData converts seehuhn.de/go/geom path data into a Path.
func FromGeomData(d *path.Data) *Path {
	result := NewPath()
	if d == nil {
		return result
	}
	coordIdx := 0
	for _, cmd := range d.Cmds {
		var n int
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			n = 1
		case path.CmdQuadTo:
			n = 2
		case path.CmdCubeTo:
			n = 3
		}
		if coordIdx+n > len(d.Coords) {
			break
		}
		result.appendGeom(cmd, d.Coords[coordIdx:coordIdx+n])
		coordIdx += n
	}
	return result
}

func (p *Path) appendGeom(cmd path.Command, pts []vec.Vec2) {
	switch cmd {
	case path.CmdMoveTo:
		p.MoveTo(pts[0].X, pts[0].Y)
	case path.CmdLineTo:
		p.LineTo(pts[0].X, pts[0].Y)
	case path.CmdQuadTo:
		p.QuadraticTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
	case path.CmdCubeTo:
		p.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
	case path.CmdClose:
		p.Close()
	}
}

// GeomPath returns the path as a seehuhn.de/go/geom path iterator.
func (p *Path) GeomPath() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		buf := make([]vec.Vec2, 0, 3)
		v := func(pt Point) vec.Vec2 { return vec.Vec2{X: pt.X, Y: pt.Y} }
		for _, elem := range p.elements {
			buf = buf[:0]
			var cmd path.Command
			switch e := elem.(type) {
			case MoveTo:
				cmd = path.CmdMoveTo
				buf = append(buf, v(e.Point))
			case LineTo:
				cmd = path.CmdLineTo
				buf = append(buf, v(e.Point))
			case QuadTo:
				cmd = path.CmdQuadTo
				buf = append(buf, v(e.Control), v(e.Point))
			case CubicTo:
				cmd = path.CmdCubeTo
				buf = append(buf, v(e.Control1), v(e.Control2), v(e.Point))
			case Close:
				cmd = path.CmdClose
			}
			if !yield(cmd, buf) {
				return
			}
		}
	}
}

// GeomMatrix converts a seehuhn.de/go/geom matrix, which maps (x, y) to
// (m[0]x + m[2]y + m[4], m[1]x + m[3]y + m[5]).
func GeomMatrix(m matrix.Matrix) Matrix {
	return Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}

// Transform returns events with their points mapped through m. Control
// points are only mapped for the curve kinds that use them.
func Transform(events iter.Seq[PathEvent], m Matrix) iter.Seq[PathEvent] {
	return func(yield func(PathEvent) bool) {
		if events == nil {
			return
		}
		for ev := range events {
			ev.From = m.TransformPoint(ev.From)
			ev.To = m.TransformPoint(ev.To)
			switch ev.Kind {
			case EventQuadratic:
				ev.Ctrl1 = m.TransformPoint(ev.Ctrl1)
			case EventCubic:
				ev.Ctrl1 = m.TransformPoint(ev.Ctrl1)
				ev.Ctrl2 = m.TransformPoint(ev.Ctrl2)
			}
			if !yield(ev) {
				return
			}
		}
	}
}
