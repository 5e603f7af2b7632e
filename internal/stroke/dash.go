package stroke

import "github.com/gogpu/tess/geom"

// maxDashes bounds the number of dashes produced for one polyline.
const maxDashes = 1 << 20

// Location is a point on a polyline, at fraction T of the segment that
// starts at point Index.
type Location struct {
	Index int
	T     float64
}

// Dash splits a polyline into the open runs covered by the dash intervals
// of pattern. pattern alternates dash and gap lengths, has an even length
// and a positive sum. offset is the distance into the pattern at which the
// polyline starts, in [0, sum).
//
// emit is called once per dash with the points of the run and their
// locations on the polyline. It must retain neither slice. A dash of zero
// length is reported as a run of two equal points.
func Dash(points []geom.Point, closed bool, pattern []float64, offset float64, emit func(run []geom.Point, at []Location)) {
	if len(points) == 0 || len(pattern) == 0 {
		return
	}

	idx := 0
	rem := pattern[0]
	for i := 0; (offset > rem || offset == rem && rem > 0) && i < 2*len(pattern); i++ {
		offset -= rem
		idx = (idx + 1) % len(pattern)
		rem = pattern[idx]
	}
	rem -= offset
	if rem < 0 {
		rem = 0
	}
	on := idx%2 == 0

	var run []geom.Point
	var at []Location
	if on {
		run = append(run, points[0])
		at = append(at, Location{})
	}

	count := 0
	n := len(points)
	segments := n - 1
	if closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		a, b := points[i], points[(i+1)%n]
		segLen := a.Distance(b)
		t := 0.0
		for segLen-t > rem {
			t += rem
			q := a.Lerp(b, t/segLen)
			loc := Location{Index: i, T: t / segLen}
			if on {
				run = append(run, q)
				at = append(at, loc)
				emit(run, at)
				run, at = run[:0], at[:0]
				count++
				if count >= maxDashes {
					slogger().Warn("stroke: dash limit reached", "dashes", count)
					return
				}
			} else {
				run = append(run[:0], q)
				at = append(at[:0], loc)
			}
			idx = (idx + 1) % len(pattern)
			rem = pattern[idx]
			on = !on
		}
		rem -= segLen - t
		if on {
			run = append(run, b)
			at = append(at, Location{Index: (i + 1) % n})
		}
	}

	if on && len(run) > 1 {
		emit(run, at)
	}
}
