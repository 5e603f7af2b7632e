package tess

import (
	"errors"
	"fmt"

	"github.com/gogpu/tess/internal/sweep"
)

var (
	// ErrInvalidInput is returned for malformed paths and options, such as
	// NaN coordinates, events outside a contour or a negative line width.
	ErrInvalidInput = errors.New("tess: invalid input")

	// ErrUnsupported is returned for option values the tessellators do
	// not implement.
	ErrUnsupported = errors.New("tess: unsupported option")

	// ErrTooManyVertices is returned by a sink whose index type cannot
	// address another vertex.
	ErrTooManyVertices = errors.New("tess: too many vertices")

	// ErrInternal is returned when a tessellator breaks one of its own
	// invariants. It indicates a bug, not bad input.
	ErrInternal = errors.New("tess: internal error")
)

// invalidInput returns an ErrInvalidInput with context.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// fromSweep translates an error of the sweep into the package errors.
// Errors coming from the sink are returned unchanged.
func fromSweep(err error) error {
	var ie *sweep.InternalError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ie):
		return fmt.Errorf("%w: %v", ErrInternal, ie)
	case errors.Is(err, sweep.ErrInvalidPosition):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return err
	}
}
