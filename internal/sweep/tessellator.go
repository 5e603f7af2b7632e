package sweep

import (
	"cmp"
	"context"
	"log/slog"
	"math"
	"slices"

	"github.com/gogpu/tess/geom"
)

// Output receives the vertices and triangles produced by the sweep.
type Output interface {
	// AddVertex registers a vertex and returns its identifier.
	AddVertex(pos geom.Point) (uint32, error)
	// AddTriangle adds a triangle referencing previously added vertices.
	AddTriangle(a, b, c uint32)
}

// Options configures a sweep.
type Options struct {
	FillRule    geom.FillRule
	Orientation geom.Orientation
	// Tolerance is the flattening tolerance. Half of it is the distance
	// under which a vertex is considered to lie on an edge.
	Tolerance float64
	// HandleIntersections enables detection of crossing edges. Disabling
	// it is only safe for input known to be free of self-intersections.
	HandleIntersections bool
}

// coincidentSlope is the slope difference under which two edges leaving
// the same vertex are treated as overlapping.
const coincidentSlope = 0.00005

// nearDistanceSq is the squared distance under which an intersection is
// snapped to a nearby edge endpoint.
const nearDistanceSq = 1e-9

type activeEdge struct {
	from, to geom.Point
	winding  int
	isMerge  bool
	fromID   uint32
}

func (e *activeEdge) minX() float64 { return math.Min(e.from.X, e.to.X) }

func (e *activeEdge) maxX() float64 { return math.Max(e.from.X, e.to.X) }

// solveXForY returns the X coordinate of the edge at y, clamped to the
// edge's X range so that rounding cannot contradict minX and maxX.
func (e *activeEdge) solveXForY(y float64) float64 {
	x := e.from.X
	if dy := e.to.Y - e.from.Y; dy != 0 {
		t := (y - e.from.Y) / dy
		x = e.from.X*(1-t) + e.to.X*t
	}
	return math.Min(math.Max(x, e.minX()), e.maxX())
}

// pendingEdge is an edge starting at the current event, not yet active.
type pendingEdge struct {
	to      geom.Point
	sortKey float64
	winding int
}

type vertexEvent struct {
	span int
	side side
}

// activeEdgeScan collects what processing the current event needs,
// without modifying the sweep state.
type activeEdgeScan struct {
	vertexEvents    []vertexEvent
	edgesToSplit    []int
	spansToEnd      []int
	mergeEvent      bool
	splitEvent      bool
	mergeSplitEvent bool
	aboveStart      int
	aboveEnd        int
	windingBefore   windingState
}

func (s *activeEdgeScan) reset() {
	s.vertexEvents = s.vertexEvents[:0]
	s.edgesToSplit = s.edgesToSplit[:0]
	s.spansToEnd = s.spansToEnd[:0]
	s.mergeEvent = false
	s.splitEvent = false
	s.mergeSplitEvent = false
	s.aboveStart = 0
	s.aboveEnd = 0
	s.windingBefore = newWindingState()
}

// Tessellator is the sweep-line fill tessellator. Its buffers are reused
// between calls. A Tessellator must not be used concurrently.
type Tessellator struct {
	opts      Options
	threshold float64

	events     queue
	active     []activeEdge
	edgesBelow []pendingEdge
	spans      spans
	scan       activeEdgeScan
	sortKeys   []sortKey
	scratch    []activeEdge
	contour    []geom.Point

	currentPosition geom.Point
	currentVertex   uint32
	currentEvent    eventID
	out             Output

	intersections int
	recoveries    int
}

// New returns an empty tessellator.
func New() *Tessellator {
	t := &Tessellator{}
	t.Reset(Options{HandleIntersections: true, Tolerance: 0.1})
	return t
}

// Reset clears the tessellator for a new path without releasing memory.
func (t *Tessellator) Reset(opts Options) {
	t.opts = opts
	t.threshold = opts.Tolerance * 0.5
	t.events.reset()
	t.active = t.active[:0]
	t.edgesBelow = t.edgesBelow[:0]
	t.spans.reset()
	t.scan.reset()
	t.currentPosition = geom.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	t.currentEvent = invalidEvent
	t.out = nil
	t.intersections = 0
	t.recoveries = 0
}

// reorient maps a point into the sweep space.
func (t *Tessellator) reorient(p geom.Point) geom.Point {
	if t.opts.Orientation == geom.Horizontal {
		return geom.Point{X: p.Y, Y: -p.X}
	}
	return p
}

// unorient maps a point from the sweep space back to output space.
func (t *Tessellator) unorient(p geom.Point) geom.Point {
	if t.opts.Orientation == geom.Horizontal {
		return geom.Point{X: -p.Y, Y: p.X}
	}
	return p
}

// AddContour adds a polyline that is implicitly closed. Consecutive
// duplicate points and a repeated closing point are ignored. Contours with
// fewer than two distinct points contribute nothing.
func (t *Tessellator) AddContour(points []geom.Point) {
	c := t.contour[:0]
	for _, p := range points {
		p = t.reorient(p)
		if len(c) > 0 && c[len(c)-1] == p {
			continue
		}
		c = append(c, p)
	}
	for len(c) > 1 && c[len(c)-1] == c[0] {
		c = c[:len(c)-1]
	}
	t.events.addContour(c)
	t.contour = c
}

// Intersections returns the number of edge crossings resolved by the
// last call to Tessellate.
func (t *Tessellator) Intersections() int { return t.intersections }

// Tessellate runs the sweep over the contours added since the last Reset.
func (t *Tessellator) Tessellate(out Output) error {
	t.out = out
	defer func() { t.out = nil }()

	t.events.sort()
	if err := t.loop(); err != nil {
		return err
	}

	if len(t.active) != 0 || len(t.spans.list) != 0 {
		if t.opts.HandleIntersections {
			slogger().Warn("sweep: unfinished sweep",
				"activeEdges", len(t.active), "spans", len(t.spans.list))
			return &InternalError{Code: UnfinishedSweep}
		}
		// Without intersection handling the sweep state is only as good
		// as the input. Keep the triangles produced so far.
		for _, s := range t.spans.list {
			if s != nil {
				s.flush(out)
			}
		}
		t.spans.reset()
		t.active = t.active[:0]
	}

	slogger().Debug("sweep: done",
		"events", t.events.len(),
		"intersections", t.intersections,
		"recoveries", t.recoveries)
	return nil
}

func (t *Tessellator) loop() error {
	iterations := 0
	t.currentEvent = t.events.first
	for t.events.valid(t.currentEvent) {
		iterations++
		if iterations > t.events.len() {
			return &InternalError{Code: IterationLimit}
		}

		if err := t.initializeEvents(); err != nil {
			return err
		}

		if err := t.processEvents(); err != nil {
			t.recoveries++
			if l := slogger(); l.Enabled(context.Background(), slog.LevelDebug) {
				l.Debug("sweep: recovering", "error", err,
					"x", t.currentPosition.X, "y", t.currentPosition.Y)
			}
			t.recoverFromError()
			if err := t.processEvents(); err != nil {
				return err
			}
		}

		t.currentEvent = t.events.next(t.currentEvent)
	}
	return nil
}

// initializeEvents emits the vertex of the current event and collects the
// edges starting there.
func (t *Tessellator) initializeEvents() error {
	t.currentPosition = t.events.position(t.currentEvent)
	if math.IsNaN(t.currentPosition.X) || math.IsNaN(t.currentPosition.Y) {
		return ErrInvalidPosition
	}

	id, err := t.out.AddVertex(t.unorient(t.currentPosition))
	if err != nil {
		return err
	}
	t.currentVertex = id

	for sib := t.currentEvent; t.events.valid(sib); sib = t.events.nextSibling(sib) {
		e := t.events.edges[sib]
		if !e.isEdge {
			continue
		}
		t.edgesBelow = append(t.edgesBelow, pendingEdge{
			to:      e.to,
			sortKey: slope(e.to.Sub(t.currentPosition)),
			winding: e.winding,
		})
	}
	return nil
}

// slope orders edges leaving a vertex from left to right.
func slope(v geom.Point) float64 {
	return v.X / v.Y
}

// processEvents runs one iteration of the sweep. It fails only during the
// scan, before any state is modified.
func (t *Tessellator) processEvents() error {
	if err := t.scanActiveEdges(&t.scan); err != nil {
		return err
	}
	t.processEdgesAbove(&t.scan)
	t.processEdgesBelow(&t.scan)
	t.updateActiveEdges(&t.scan)
	return nil
}

// scanActiveEdges walks the active edges in three steps: the edges left
// of the current point, the edges connecting with it, and the edges to
// its right, which are only checked for ordering errors.
func (t *Tessellator) scanActiveEdges(scan *activeEdgeScan) error {
	scan.reset()

	currentX := t.currentPosition.X
	connecting := false
	idx := 0
	winding := newWindingState()
	previousWasMerge := false

	for i := range t.active {
		e := &t.active[i]
		if e.isMerge {
			// An unresolved merge vertex sits between two adjacent spans
			// with no transition, so the span index is bumped by hand.
			winding.spanIndex++
			idx++
			previousWasMerge = true
			continue
		}

		before := false
		switch {
		case t.currentPosition == e.to:
			connecting = true
		case e.maxX() < currentX:
			before = true
		case e.minX() > currentX:
		case e.from.Y == e.to.Y:
			connecting = true
		default:
			ex := e.solveXForY(t.currentPosition.Y)
			switch {
			case math.Abs(ex-currentX) <= t.threshold:
				connecting = true
			case ex > currentX:
			default:
				before = true
			}
		}
		if !before {
			break
		}

		winding.update(t.opts.FillRule, e.winding)
		previousWasMerge = false
		idx++
	}

	scan.aboveStart = idx
	scan.windingBefore = winding

	if previousWasMerge {
		scan.windingBefore.spanIndex--
		scan.aboveStart--

		if !connecting {
			// The merge is the only thing touching the current vertex, so
			// two edges below form a split that cancels it out.
			scan.vertexEvents = append(scan.vertexEvents,
				vertexEvent{span: winding.spanIndex - 1, side: right},
				vertexEvent{span: winding.spanIndex, side: left},
			)
			scan.mergeSplitEvent = true
		}
	}

	scan.splitEvent = !connecting && winding.isIn && !scan.mergeSplitEvent

	if connecting {
		inBefore := winding.isIn
		first := !previousWasMerge

		for idx < len(t.active) {
			e := &t.active[idx]
			if e.isMerge {
				if !winding.isIn {
					return &InternalError{Code: MergeVertexOutside}
				}
				// The span left of the merge ends here. The right side is
				// treated as if it just transitioned into the shape.
				scan.spansToEnd = append(scan.spansToEnd, winding.spanIndex)
				winding.spanIndex++
				idx++
				first = false
				continue
			}

			ok, err := t.isEdgeConnecting(e, idx, scan)
			if err != nil {
				return err
			}
			if !ok {
				break
			}

			if !first && winding.isIn {
				scan.spansToEnd = append(scan.spansToEnd, winding.spanIndex)
			}

			winding.update(t.opts.FillRule, e.winding)

			if winding.isIn && winding.spanIndex >= len(t.spans.list) {
				return &InternalError{Code: InsufficientNumberOfSpans}
			}

			idx++
			first = false
		}

		inAfter := winding.isIn

		if inBefore && inAfter && len(t.edgesBelow) == 0 && len(scan.edgesToSplit) == 0 {
			scan.mergeEvent = true
		}
		if inBefore {
			scan.vertexEvents = append(scan.vertexEvents,
				vertexEvent{span: scan.windingBefore.spanIndex, side: right})
		}
		if inAfter {
			scan.vertexEvents = append(scan.vertexEvents,
				vertexEvent{span: winding.spanIndex, side: left})
		}
	}

	scan.aboveEnd = idx

	return t.checkRemainingEdges(idx, currentX)
}

func (t *Tessellator) checkRemainingEdges(from int, currentX float64) error {
	for i := from; i < len(t.active); i++ {
		e := &t.active[i]
		if e.isMerge {
			continue
		}
		if e.maxX() < currentX {
			return orderError(1)
		}
		if t.currentPosition == e.to {
			return orderError(2)
		}
		if e.minX() < currentX && e.solveXForY(t.currentPosition.Y) < currentX {
			return orderError(3)
		}
	}
	return nil
}

// isEdgeConnecting reports whether the edge touches the current vertex.
// An edge that passes through the vertex is recorded for splitting.
func (t *Tessellator) isEdgeConnecting(e *activeEdge, idx int, scan *activeEdgeScan) (bool, error) {
	if t.currentPosition == e.to {
		return true, nil
	}

	currentX := t.currentPosition.X
	minX, maxX := e.minX(), e.maxX()

	if maxX+t.threshold < currentX || e.to.Y < t.currentPosition.Y {
		return false, orderError(4)
	}
	if minX > currentX {
		return false, nil
	}

	var ex float64
	switch {
	case e.from.Y != e.to.Y:
		ex = e.solveXForY(t.currentPosition.Y)
	case maxX >= currentX && minX <= currentX:
		ex = currentX
	default:
		ex = e.to.X
	}

	if math.Abs(ex-currentX) <= t.threshold {
		scan.edgesToSplit = append(scan.edgesToSplit, idx)
		return true, nil
	}
	if ex < currentX {
		return false, orderError(5)
	}
	return false, nil
}

func (t *Tessellator) processEdgesAbove(scan *activeEdgeScan) {
	for _, ve := range scan.vertexEvents {
		t.spans.vertex(ve.span, t.currentPosition, t.currentVertex, ve.side)
	}

	for _, span := range scan.spansToEnd {
		t.spans.end(span, t.currentPosition, t.currentVertex, t.out)
	}
	t.spans.cleanup()

	for _, idx := range scan.edgesToSplit {
		e := &t.active[idx]
		t.edgesBelow = append(t.edgesBelow, pendingEdge{
			to:      e.to,
			sortKey: slope(e.to.Sub(t.currentPosition)),
			winding: e.winding,
		})
		e.to = t.currentPosition
	}

	if scan.mergeEvent {
		e := &t.active[scan.aboveStart]
		e.isMerge = true
		e.from = e.to
		e.winding = 0
		e.fromID = t.currentVertex
		// Keep the merge vertex out of the range replaced below.
		scan.aboveStart++
	}
}

func (t *Tessellator) processEdgesBelow(scan *activeEdgeScan) {
	winding := scan.windingBefore

	slices.SortStableFunc(t.edgesBelow, func(a, b pendingEdge) int {
		return cmp.Compare(a.sortKey, b.sortKey)
	})
	t.handleCoincidentEdgesBelow()

	if scan.splitEvent {
		t.splitEvent(scan.aboveStart-1, winding.spanIndex)
	}

	// A span begins for every in-out pair of edges below the vertex.
	for i, e := range t.edgesBelow {
		if i > 0 && winding.isIn {
			t.spans.begin(winding.spanIndex, t.currentPosition, t.currentVertex)
		}
		winding.update(t.opts.FillRule, e.winding)
	}
}

func (t *Tessellator) updateActiveEdges(scan *activeEdgeScan) {
	if t.opts.HandleIntersections {
		t.handleIntersections(scan.aboveStart, scan.aboveEnd)
	}

	below := t.scratch[:0]
	for _, e := range t.edgesBelow {
		below = append(below, activeEdge{
			from:    t.currentPosition,
			to:      e.to,
			winding: e.winding,
			fromID:  t.currentVertex,
		})
	}
	t.active = slices.Replace(t.active, scan.aboveStart, scan.aboveEnd, below...)
	t.scratch = below[:0]
	t.edgesBelow = t.edgesBelow[:0]
}

// splitEvent starts a new span for a vertex that appears inside an
// existing span. The new span begins at the lower of the two upper
// endpoints of the enclosing edges.
func (t *Tessellator) splitEvent(leftEdge, leftSpan int) {
	rightEdge := leftEdge + 1
	rightSpan := leftSpan + 1

	upperLeft := t.active[leftEdge].from
	upperRight := t.active[rightEdge].from

	if upperLeft.IsAfter(upperRight) {
		t.spans.begin(leftSpan, upperLeft, t.active[leftEdge].fromID)
	} else {
		t.spans.begin(rightSpan, upperRight, t.active[rightEdge].fromID)
	}

	t.spans.vertex(leftSpan, t.currentPosition, t.currentVertex, right)
	t.spans.vertex(rightSpan, t.currentPosition, t.currentVertex, left)
}

func (t *Tessellator) handleCoincidentEdgesBelow() {
	for idx := len(t.edgesBelow) - 2; idx >= 0; idx-- {
		a := t.edgesBelow[idx].sortKey
		b := t.edgesBelow[idx+1].sortKey

		// The slope approximates the angle poorly near horizontal, where
		// the inverse is compared instead.
		var close bool
		if math.Abs(a) <= 1 {
			close = math.Abs(a-b) < coincidentSlope
		} else {
			close = math.Abs(1/a-1/b) < coincidentSlope
		}
		if close {
			t.mergeCoincidentEdges(idx, idx+1)
		}
	}
}

// mergeCoincidentEdges folds the winding of the longer of two overlapping
// edges into the shorter one. The rest of the longer edge is queued from
// the end of the shorter one.
func (t *Tessellator) mergeCoincidentEdges(a, b int) {
	aTo := t.edgesBelow[a].to
	bTo := t.edgesBelow[b].to

	lower, upper, split := a, b, true
	switch comparePositions(aTo, bTo) {
	case -1:
		lower, upper = b, a
	case 0:
		split = false
	}

	t.edgesBelow[upper].winding += t.edgesBelow[lower].winding
	splitPoint := t.edgesBelow[upper].to
	edge := t.edgesBelow[lower]
	t.edgesBelow = slices.Delete(t.edgesBelow, lower, lower+1)

	if !split {
		return
	}
	t.events.insertSorted(splitPoint, edgeData{
		to:      edge.to,
		winding: edge.winding,
		isEdge:  true,
	}, t.currentEvent)
}
