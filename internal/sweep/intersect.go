package sweep

import (
	"cmp"
	"context"
	"log/slog"
	"math"
	"slices"

	"github.com/gogpu/tess/geom"
)

// handleIntersections checks every edge starting at the current event
// against the active edges outside [skipStart, skipEnd). Only the crossing
// closest to the current position is kept per new edge. Both edges are
// truncated there and their lower parts go back into the event queue.
func (t *Tessellator) handleIntersections(skipStart, skipEnd int) {
	for i := range t.edgesBelow {
		below := &t.edgesBelow[i]
		belowMinX := math.Min(t.currentPosition.X, below.to.X)
		belowMaxX := math.Max(t.currentPosition.X, below.to.X)
		belowSeg := geom.Line{P0: t.currentPosition, P1: below.to}

		tbMin := 1.0
		found := -1
		var foundTA, foundTB float64
		for j := range t.active {
			if j >= skipStart && j < skipEnd {
				continue
			}
			e := &t.active[j]
			// Edges further right can still reach further left, so there
			// is no early exit here.
			if e.isMerge || belowMinX > e.maxX() || belowMaxX < e.minX() {
				continue
			}
			ta, tb, ok := geom.Line{P0: e.from, P1: e.to}.IntersectionT(belowSeg)
			if ok && tb < tbMin && tb > 0 && ta > 0 && ta <= 1 {
				tbMin = tb
				found = j
				foundTA, foundTB = ta, tb
			}
		}

		if found >= 0 {
			t.processIntersection(foundTA, foundTB, found, below, belowSeg)
		}
	}
}

func (t *Tessellator) processIntersection(ta, tb float64, activeIdx int, below *pendingEdge, belowSeg geom.Line) {
	pos := belowSeg.Eval(tb)
	active := &t.active[activeIdx]

	if l := slogger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("sweep: intersection",
			"x", pos.X, "y", pos.Y, "ta", ta, "tb", tb)
	}

	if t.currentPosition == pos {
		active.from = pos
		return
	}

	// The crossing must not be placed above the sweep line.
	if !pos.IsAfter(t.currentPosition) {
		pos.Y = math.Nextafter(t.currentPosition.Y, math.Inf(1))
	}

	switch {
	case isNear(pos, below.to):
		pos = below.to
	case isNear(pos, active.to):
		pos = active.to
	}

	t.intersections++

	inserted := invalidEvent
	flippedActive := false

	if active.to != pos && active.from != pos {
		if active.to.IsAfter(pos) {
			inserted = t.events.insertSorted(pos, edgeData{
				to:      active.to,
				winding: active.winding,
				isEdge:  true,
			}, t.currentEvent)
		} else {
			// Snapping moved the crossing below the end of the edge.
			flippedActive = true
			t.events.insertSorted(active.to, edgeData{
				to:      pos,
				winding: -active.winding,
				isEdge:  true,
			}, t.currentEvent)
		}
		active.to = pos
	}

	if below.to != pos && t.currentPosition != pos {
		if below.to.IsAfter(pos) {
			data := edgeData{to: below.to, winding: below.winding, isEdge: true}
			if t.events.valid(inserted) {
				t.events.insertSibling(inserted, pos, data)
			} else {
				t.events.insertSorted(pos, data, t.currentEvent)
			}
		} else {
			t.events.insertSorted(below.to, edgeData{
				to:      pos,
				winding: -below.winding,
				isEdge:  true,
			}, t.currentEvent)

			if flippedActive {
				// Both flipped halves end at pos with nothing starting
				// there, which the sweep would otherwise skip.
				t.events.insertVertexSorted(pos, t.currentEvent)
			}
		}
		below.to = pos
	}
}

func isNear(a, b geom.Point) bool {
	return a.Sub(b).LengthSquared() < nearDistanceSq
}

type sortKey struct {
	x   float64
	idx int
}

// sortActiveEdges reorders the active edges by their X coordinate on the
// sweep line. Merge vertices keep their position relative to the edge on
// their left and are then moved left until they are inside the fill.
func (t *Tessellator) sortActiveEdges() {
	y := t.currentPosition.Y
	keys := t.sortKeys[:0]

	hasMerge := false
	prevX := math.NaN()
	for i := range t.active {
		e := &t.active[i]
		if e.isMerge {
			hasMerge = true
			keys = append(keys, sortKey{x: prevX, idx: i})
			continue
		}

		eqTo := e.to.Y == y
		eqFrom := e.from.Y == y
		var x float64
		switch {
		case eqTo && eqFrom:
			currentX := t.currentPosition.X
			if e.maxX() >= currentX && e.minX() <= currentX {
				x = currentX
			} else {
				x = e.minX()
			}
		case eqFrom:
			x = e.from.X
		case eqTo:
			x = e.to.X
		default:
			x = e.solveXForY(y)
		}
		keys = append(keys, sortKey{x: math.Max(x, e.minX()), idx: i})
		prevX = x
	}

	slices.SortStableFunc(keys, func(a, b sortKey) int {
		if c := cmp.Compare(a.x, b.x); c != 0 {
			return c
		}
		ea, eb := &t.active[a.idx], &t.active[b.idx]
		switch {
		case ea.isMerge && eb.isMerge:
			return 0
		case ea.isMerge:
			return 1
		case eb.isMerge:
			return -1
		}
		return cmp.Compare(slope(eb.to.Sub(eb.from)), slope(ea.to.Sub(ea.from)))
	})

	sorted := t.scratch[:0]
	for _, k := range keys {
		sorted = append(sorted, t.active[k.idx])
	}
	t.active = append(t.active[:0], sorted...)
	t.scratch = sorted[:0]
	t.sortKeys = keys

	if !hasMerge {
		return
	}

	rule := t.opts.FillRule
	winding := 0
	for i := range t.active {
		e := &t.active[i]
		if !e.isMerge {
			winding += e.winding
			continue
		}
		if rule.IsIn(winding) {
			continue
		}
		w := winding
		for idx := i; idx > 0; idx-- {
			w -= t.active[idx-1].winding
			t.active[idx], t.active[idx-1] = t.active[idx-1], t.active[idx]
			if rule.IsIn(w) {
				break
			}
		}
	}
}

// recoverFromError re-sorts the active edges and rebuilds the span list
// to match them. Spans that no longer have a place are flushed.
func (t *Tessellator) recoverFromError() {
	t.sortActiveEdges()

	if n := len(t.active); n > 1 && t.active[n-1].isMerge {
		t.active[n-1], t.active[n-2] = t.active[n-2], t.active[n-1]
	}

	winding := newWindingState()
	for i := range t.active {
		e := &t.active[i]
		if e.isMerge {
			winding.spanIndex++
		} else {
			winding.update(t.opts.FillRule, e.winding)
		}
		if winding.spanIndex >= len(t.spans.list) {
			t.spans.begin(winding.spanIndex, e.from, e.fromID)
		}
	}

	for len(t.spans.list) > winding.spanIndex+1 {
		last := t.spans.list[len(t.spans.list)-1]
		if last != nil {
			last.flush(t.out)
			t.spans.pool = append(t.spans.pool, last)
		}
		t.spans.list = t.spans.list[:len(t.spans.list)-1]
	}
}
