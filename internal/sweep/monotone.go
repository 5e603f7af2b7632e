package sweep

import "github.com/gogpu/tess/geom"

// side tells which chain of a monotone polygon a vertex belongs to.
type side uint8

const (
	left side = iota
	right
)

func (s side) opposite() side {
	if s == left {
		return right
	}
	return left
}

type monotoneVertex struct {
	pos  geom.Point
	id   uint32
	side side
}

type triangle struct {
	a, b, c monotoneVertex
}

// monotoneTessellator triangulates a polygon that is monotone along the
// sweep direction. Vertices arrive in sweep order, each tagged with the
// chain it belongs to. Vertices that cannot be triangulated yet wait on a
// stack, which always forms a reflex chain.
type monotoneTessellator struct {
	stack     []monotoneVertex
	previous  monotoneVertex
	triangles []triangle
}

func (m *monotoneTessellator) begin(pos geom.Point, id uint32) {
	first := monotoneVertex{pos: pos, id: id, side: left}
	m.previous = first
	m.triangles = m.triangles[:0]
	m.stack = append(m.stack[:0], first)
}

func (m *monotoneTessellator) vertex(pos geom.Point, id uint32, s side) {
	current := monotoneVertex{pos: pos, id: id, side: s}

	if current.side != m.previous.side {
		// The whole stack is visible from the new vertex: fan it out.
		for i := 0; i+1 < len(m.stack); i++ {
			m.push(m.stack[i], m.stack[i+1], current)
		}
		m.stack = append(m.stack[:0], m.previous)
	} else {
		last := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		for len(m.stack) > 0 {
			a, b := last, m.stack[len(m.stack)-1]
			if current.side == right {
				a, b = b, a
			}
			if current.pos.Sub(b.pos).Cross(a.pos.Sub(b.pos)) < 0 {
				break
			}
			m.push(b, a, current)
			last = m.stack[len(m.stack)-1]
			m.stack = m.stack[:len(m.stack)-1]
		}
		m.stack = append(m.stack, last)
	}

	m.stack = append(m.stack, current)
	m.previous = current
}

func (m *monotoneTessellator) end(pos geom.Point, id uint32) {
	m.vertex(pos, id, m.previous.side.opposite())
	m.stack = m.stack[:0]
}

func (m *monotoneTessellator) push(a, b, c monotoneVertex) {
	if a.id == b.id || b.id == c.id || a.id == c.id {
		return
	}
	m.triangles = append(m.triangles, triangle{a: a, b: b, c: c})
}

// flush sends the pending triangles to out with a positive signed area.
// Triangles with zero area are dropped.
func (m *monotoneTessellator) flush(out Output) {
	for _, t := range m.triangles {
		area := t.b.pos.Sub(t.a.pos).Cross(t.c.pos.Sub(t.a.pos))
		switch {
		case area > 0:
			out.AddTriangle(t.a.id, t.b.id, t.c.id)
		case area < 0:
			out.AddTriangle(t.a.id, t.c.id, t.b.id)
		}
	}
	m.triangles = m.triangles[:0]
}
