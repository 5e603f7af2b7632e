package sweep

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition is returned when an event position is NaN.
var ErrInvalidPosition = errors.New("sweep: event position is NaN")

// InternalCode identifies which sweep invariant was broken.
type InternalCode uint8

const (
	// IncorrectActiveEdgeOrder means the active edge list is not sorted
	// relative to the current event.
	IncorrectActiveEdgeOrder InternalCode = iota + 1
	// InsufficientNumberOfSpans means a span was needed that was never opened.
	InsufficientNumberOfSpans
	// MergeVertexOutside means an unresolved merge vertex is outside the fill.
	MergeVertexOutside
	// UnfinishedSweep means active edges or spans remained after the last event.
	UnfinishedSweep
	// IterationLimit means the sweep processed more events than the queue holds.
	IterationLimit
)

// String returns the name of the code.
func (c InternalCode) String() string {
	switch c {
	case IncorrectActiveEdgeOrder:
		return "incorrect active edge order"
	case InsufficientNumberOfSpans:
		return "insufficient number of spans"
	case MergeVertexOutside:
		return "merge vertex outside"
	case UnfinishedSweep:
		return "unfinished sweep"
	case IterationLimit:
		return "iteration limit"
	default:
		return fmt.Sprintf("InternalCode(%d)", uint8(c))
	}
}

// InternalError reports a broken sweep invariant. It indicates a bug in
// the tessellator, never malformed input.
type InternalError struct {
	Code InternalCode
	// Detail distinguishes the checks that raise the same code.
	Detail int
}

func (e *InternalError) Error() string {
	if e.Detail != 0 {
		return fmt.Sprintf("sweep: %s (%d)", e.Code, e.Detail)
	}
	return "sweep: " + e.Code.String()
}

func orderError(detail int) error {
	return &InternalError{Code: IncorrectActiveEdgeOrder, Detail: detail}
}
