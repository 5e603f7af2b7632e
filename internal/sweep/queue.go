package sweep

import (
	"cmp"
	"math"
	"slices"

	"github.com/gogpu/tess/geom"
)

// eventID indexes the event arena.
type eventID = uint32

const invalidEvent eventID = math.MaxUint32

// event is a node of the sorted event list. Events at the same position
// are chained through nextSibling; only the head of a sibling list is
// linked through nextEvent.
type event struct {
	position    geom.Point
	nextSibling eventID
	nextEvent   eventID
}

// edgeData describes what starts at an event: an edge going down to `to`,
// or nothing for a vertex event that only forces the position to be
// visited.
type edgeData struct {
	to      geom.Point
	winding int
	isEdge  bool
}

// queue is the event queue. events and edges are parallel arenas.
type queue struct {
	events []event
	edges  []edgeData
	first  eventID
	order  []eventID
}

func (q *queue) reset() {
	q.events = q.events[:0]
	q.edges = q.edges[:0]
	q.first = invalidEvent
}

func (q *queue) len() int { return len(q.events) }

func (q *queue) valid(id eventID) bool { return id != invalidEvent }

func (q *queue) next(id eventID) eventID { return q.events[id].nextEvent }

func (q *queue) nextSibling(id eventID) eventID { return q.events[id].nextSibling }

func (q *queue) position(id eventID) geom.Point { return q.events[id].position }

func (q *queue) push(position geom.Point, data edgeData) eventID {
	id := eventID(len(q.events))
	q.events = append(q.events, event{
		position:    position,
		nextSibling: invalidEvent,
		nextEvent:   invalidEvent,
	})
	q.edges = append(q.edges, data)
	return id
}

// addEdge adds an edge starting at its upper endpoint. Edges are oriented
// downwards; an edge that had to be flipped gets a negated winding.
func (q *queue) addEdge(from, to geom.Point) {
	if from == to {
		return
	}
	winding := 1
	if from.IsAfter(to) {
		from, to = to, from
		winding = -1
	}
	q.push(from, edgeData{to: to, winding: winding, isEdge: true})
}

// addVertexEvent forces the sweep to visit a position where no edge starts.
func (q *queue) addVertexEvent(at geom.Point) {
	q.push(at, edgeData{to: geom.Point{X: math.NaN(), Y: math.NaN()}})
}

// addContour adds the edges of a closed polyline. Consecutive duplicate
// points must already be removed, including the closing point.
func (q *queue) addContour(points []geom.Point) {
	n := len(points)
	if n < 2 {
		return
	}
	for i, p := range points {
		prev := points[(i+n-1)%n]
		next := points[(i+1)%n]
		q.addEdge(p, next)
		if p.IsAfter(prev) && p.IsAfter(next) {
			q.addVertexEvent(p)
		}
	}
}

// comparePositions orders positions along the sweep: Y first, then X.
func comparePositions(a, b geom.Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// sort links the events in sweep order. Events at equal positions become
// siblings in insertion order.
func (q *queue) sort() {
	q.first = invalidEvent
	if len(q.events) == 0 {
		return
	}
	q.order = q.order[:0]
	for i := range q.events {
		q.order = append(q.order, eventID(i))
	}
	slices.SortStableFunc(q.order, func(a, b eventID) int {
		return comparePositions(q.events[a].position, q.events[b].position)
	})

	head := q.order[0]
	q.first = head
	lastSibling := head
	for _, id := range q.order[1:] {
		if q.events[id].position == q.events[head].position {
			q.events[lastSibling].nextSibling = id
			lastSibling = id
			continue
		}
		q.events[head].nextEvent = id
		head = id
		lastSibling = id
	}
}

// insertSorted adds an edge event after `after`, keeping the list sorted.
func (q *queue) insertSorted(position geom.Point, data edgeData, after eventID) eventID {
	id := q.push(position, data)
	q.link(id, position, after)
	return id
}

// insertSibling adds an edge event at the same position as sibling.
func (q *queue) insertSibling(sibling eventID, position geom.Point, data edgeData) {
	id := q.push(position, data)
	q.events[id].nextSibling = q.events[sibling].nextSibling
	q.events[sibling].nextSibling = id
}

// insertVertexSorted adds a vertex event after `after`.
func (q *queue) insertVertexSorted(position geom.Point, after eventID) {
	id := q.push(position, edgeData{to: geom.Point{X: math.NaN(), Y: math.NaN()}})
	q.link(id, position, after)
}

func (q *queue) link(id eventID, position geom.Point, after eventID) {
	prev := after
	current := after
	for q.valid(current) {
		pos := q.events[current].position
		if pos == position {
			q.events[id].nextSibling = q.events[current].nextSibling
			q.events[current].nextSibling = id
			return
		}
		if pos.IsAfter(position) {
			q.events[prev].nextEvent = id
			q.events[id].nextEvent = current
			return
		}
		prev = current
		current = q.next(current)
	}
	q.events[prev].nextEvent = id
}
