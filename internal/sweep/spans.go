package sweep

import (
	"slices"

	"github.com/gogpu/tess/geom"
)

// windingState accumulates the winding number while walking the active
// edges from left to right. spanIndex starts at -1 so that entering the
// first inside region makes it 0.
type windingState struct {
	spanIndex int
	number    int
	isIn      bool
}

func newWindingState() windingState {
	return windingState{spanIndex: -1}
}

func (w *windingState) update(rule geom.FillRule, edgeWinding int) {
	w.number += edgeWinding
	w.isIn = rule.IsIn(w.number)
	if w.isIn {
		w.spanIndex++
	}
}

// spans holds one monotone tessellator per inside region of the sweep
// line, ordered left to right. Ended spans are set to nil until cleanup.
// Tessellators are recycled through pool.
type spans struct {
	list []*monotoneTessellator
	pool []*monotoneTessellator
}

func (s *spans) reset() {
	for _, t := range s.list {
		if t != nil {
			s.pool = append(s.pool, t)
		}
	}
	s.list = s.list[:0]
}

func (s *spans) begin(idx int, pos geom.Point, id uint32) {
	var t *monotoneTessellator
	if n := len(s.pool); n > 0 {
		t = s.pool[n-1]
		s.pool = s.pool[:n-1]
	} else {
		t = &monotoneTessellator{}
	}
	t.begin(pos, id)
	s.list = append(s.list, nil)
	copy(s.list[idx+1:], s.list[idx:])
	s.list[idx] = t
}

func (s *spans) end(idx int, pos geom.Point, id uint32, out Output) {
	t := s.list[idx]
	if t == nil {
		return
	}
	t.end(pos, id)
	t.flush(out)
	s.pool = append(s.pool, t)
	s.list[idx] = nil
}

func (s *spans) vertex(idx int, pos geom.Point, id uint32, sd side) {
	if t := s.list[idx]; t != nil {
		t.vertex(pos, id, sd)
	}
}

// cleanup removes the spans that ended during the current event.
func (s *spans) cleanup() {
	s.list = slices.DeleteFunc(s.list, func(t *monotoneTessellator) bool { return t == nil })
}
