package tess

import (
	"fmt"
	"iter"

	"github.com/gogpu/tess/geom"
)

// EventKind identifies the type of a PathEvent.
type EventKind uint8

const (
	// EventBegin starts a contour at To.
	EventBegin EventKind = iota
	// EventLine is a line segment from From to To.
	EventLine
	// EventQuadratic is a quadratic Bézier curve with control point Ctrl1.
	EventQuadratic
	// EventCubic is a cubic Bézier curve with control points Ctrl1 and Ctrl2.
	EventCubic
	// EventEnd ends a contour. From is the last point and To the first
	// point of the contour. Close reports whether the contour is closed.
	EventEnd
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventBegin:
		return "Begin"
	case EventLine:
		return "Line"
	case EventQuadratic:
		return "Quadratic"
	case EventCubic:
		return "Cubic"
	case EventEnd:
		return "End"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// PathEvent is one element of the command stream consumed by the
// tessellators. Every contour is a Begin event, any number of segment
// events, and an End event.
//
// The tessellators take the start of a segment from the end of the
// previous event, so From only needs to be filled in for consumers that
// read it.
type PathEvent struct {
	Kind         EventKind
	From         Point
	Ctrl1, Ctrl2 Point
	To           Point
	Close        bool
}

// BeginEvent returns the event that starts a contour at p.
func BeginEvent(p Point) PathEvent {
	return PathEvent{Kind: EventBegin, From: p, To: p}
}

// LineEvent returns a line segment event.
func LineEvent(from, to Point) PathEvent {
	return PathEvent{Kind: EventLine, From: from, To: to}
}

// QuadraticEvent returns a quadratic curve event.
func QuadraticEvent(from, ctrl, to Point) PathEvent {
	return PathEvent{Kind: EventQuadratic, From: from, Ctrl1: ctrl, To: to}
}

// CubicEvent returns a cubic curve event.
func CubicEvent(from, ctrl1, ctrl2, to Point) PathEvent {
	return PathEvent{Kind: EventCubic, From: from, Ctrl1: ctrl1, Ctrl2: ctrl2, To: to}
}

// EndEvent returns the event that ends a contour whose last point is last
// and whose first point is first.
func EndEvent(last, first Point, close bool) PathEvent {
	return PathEvent{Kind: EventEnd, From: last, To: first, Close: close}
}

// Polyline returns the events of a single contour through points. It
// yields nothing for an empty slice.
func Polyline(points []Point, closed bool) iter.Seq[PathEvent] {
	return func(yield func(PathEvent) bool) {
		if len(points) == 0 {
			return
		}
		if !yield(BeginEvent(points[0])) {
			return
		}
		for i := 1; i < len(points); i++ {
			if !yield(LineEvent(points[i-1], points[i])) {
				return
			}
		}
		yield(EndEvent(points[len(points)-1], points[0], closed))
	}
}

// flattener validates a stream of path events and turns each contour into
// a polyline. Its buffers are reused between calls.
type flattener struct {
	tolerance float64
	// reverse, when set, reports whether a curve from a to b runs against
	// the sweep. Such curves are flattened from b to a so that a curve
	// shared by two contours yields the same points in both.
	reverse func(a, b Point) bool

	points  []Point
	sources []pointSource
	scratch []Point
	// next is the ID of the next endpoint.
	next EndpointID
}

// walk flattens events and calls contour once per contour with its
// points and the number of segment events it contained. f.sources holds
// the source of each point. Both are only valid during the call.
func (f *flattener) walk(events iter.Seq[PathEvent], contour func(points []Point, closed bool, segments int) error) error {
	f.next = 0
	if events == nil {
		return nil
	}
	open := false
	segments := 0
	var current Point

	for ev := range events {
		switch ev.Kind {
		case EventBegin:
			if open {
				return invalidInput("begin inside an open contour")
			}
			if !ev.To.IsFinite() {
				return invalidInput("begin at %v", ev.To)
			}
			f.points = append(f.points[:0], ev.To)
			f.sources = append(f.sources[:0], pointSource{from: f.next, to: f.next})
			f.next++
			current = ev.To
			open = true
			segments = 0

		case EventLine, EventQuadratic, EventCubic:
			if !open {
				return invalidInput("%v outside a contour", ev.Kind)
			}
			k := len(f.points)
			if err := f.segment(current, ev); err != nil {
				return err
			}
			f.label(k)
			current = ev.To
			segments++

		case EventEnd:
			if !open {
				return invalidInput("end outside a contour")
			}
			open = false
			if err := contour(f.points, ev.Close, segments); err != nil {
				return err
			}

		default:
			return invalidInput("event kind %v", ev.Kind)
		}
	}

	if open {
		return invalidInput("contour without end")
	}
	return nil
}

func (f *flattener) segment(from Point, ev PathEvent) error {
	switch ev.Kind {
	case EventLine:
		if !ev.To.IsFinite() {
			return invalidInput("line to %v", ev.To)
		}
		f.points = append(f.points, ev.To)

	case EventQuadratic:
		if !ev.Ctrl1.IsFinite() || !ev.To.IsFinite() {
			return invalidInput("quadratic curve %v %v", ev.Ctrl1, ev.To)
		}
		if f.reverse != nil && f.reverse(from, ev.To) {
			q := geom.QuadBez{P0: ev.To, P1: ev.Ctrl1, P2: from}
			f.appendReversed(q.Flatten, ev.To)
		} else {
			q := geom.QuadBez{P0: from, P1: ev.Ctrl1, P2: ev.To}
			q.Flatten(f.tolerance, f.add)
		}

	case EventCubic:
		if !ev.Ctrl1.IsFinite() || !ev.Ctrl2.IsFinite() || !ev.To.IsFinite() {
			return invalidInput("cubic curve %v %v %v", ev.Ctrl1, ev.Ctrl2, ev.To)
		}
		if f.reverse != nil && f.reverse(from, ev.To) {
			c := geom.CubicBez{P0: ev.To, P1: ev.Ctrl2, P2: ev.Ctrl1, P3: from}
			f.appendReversed(c.Flatten, ev.To)
		} else {
			c := geom.CubicBez{P0: from, P1: ev.Ctrl1, P2: ev.Ctrl2, P3: ev.To}
			c.Flatten(f.tolerance, f.add)
		}
	}
	return nil
}

// label records the sources of the points of the segment that starts at
// index k, giving each the fraction of the flattened length it ends.
func (f *flattener) label(k int) {
	from, to := f.next-1, f.next
	f.next++

	total := 0.0
	for i := k; i < len(f.points); i++ {
		total += f.points[i-1].Distance(f.points[i])
	}
	run := 0.0
	for i := k; i < len(f.points); i++ {
		t := 1.0
		if i < len(f.points)-1 {
			run += f.points[i-1].Distance(f.points[i])
			if total > 0 {
				t = run / total
			} else {
				t = float64(i-k+1) / float64(len(f.points)-k)
			}
		}
		f.sources = append(f.sources, pointSource{from: from, to: to, t: t})
	}
}

func (f *flattener) add(p Point) {
	f.points = append(f.points, p)
}

// appendReversed flattens a curve running from end back to the current
// point and appends its points in forward order, ending with end.
func (f *flattener) appendReversed(flatten func(float64, func(Point)), end Point) {
	f.scratch = f.scratch[:0]
	flatten(f.tolerance, func(p Point) {
		f.scratch = append(f.scratch, p)
	})
	// The last point is the current point, which is already in place.
	for i := len(f.scratch) - 2; i >= 0; i-- {
		f.points = append(f.points, f.scratch[i])
	}
	f.points = append(f.points, end)
}
