package tess

import (
	"fmt"
	"math"

	"github.com/gogpu/tess/internal/stroke"
	"github.com/gogpu/tess/internal/sweep"
)

// DefaultTolerance is the default maximum distance between a curve and
// the polyline that replaces it.
const DefaultTolerance = 0.1

// DefaultMiterLimit is the default ratio between miter length and line
// width above which miter joins become bevels.
const DefaultMiterLimit = 4.0

// FillOptions configures a FillTessellator call.
//
// Example:
//
//	opts := tess.DefaultFillOptions().
//	    WithFillRule(tess.NonZero).
//	    WithTolerance(0.01)
type FillOptions struct {
	// Tolerance is the flattening tolerance. It must be positive.
	Tolerance float64
	// FillRule selects the inside test. The zero value is EvenOdd.
	FillRule FillRule
	// Orientation selects the sweep axis. It changes the order of the
	// output, not the covered area.
	Orientation Orientation
	// HandleIntersections enables detection of crossing edges. Turning it
	// off is faster but only correct for paths known to be free of
	// self-intersections.
	HandleIntersections bool
}

// DefaultFillOptions returns the default fill options.
func DefaultFillOptions() FillOptions {
	return FillOptions{
		Tolerance:           DefaultTolerance,
		FillRule:            EvenOdd,
		Orientation:         Vertical,
		HandleIntersections: true,
	}
}

// WithTolerance returns a copy with the given flattening tolerance.
func (o FillOptions) WithTolerance(tolerance float64) FillOptions {
	o.Tolerance = tolerance
	return o
}

// WithFillRule returns a copy with the given fill rule.
func (o FillOptions) WithFillRule(rule FillRule) FillOptions {
	o.FillRule = rule
	return o
}

// WithOrientation returns a copy with the given sweep orientation.
func (o FillOptions) WithOrientation(orientation Orientation) FillOptions {
	o.Orientation = orientation
	return o
}

// WithIntersections returns a copy with intersection handling set.
func (o FillOptions) WithIntersections(enabled bool) FillOptions {
	o.HandleIntersections = enabled
	return o
}

func (o FillOptions) validate() error {
	if !o.FillRule.IsValid() {
		return fmt.Errorf("%w: fill rule %v", ErrUnsupported, o.FillRule)
	}
	if !o.Orientation.IsValid() {
		return fmt.Errorf("%w: orientation %v", ErrUnsupported, o.Orientation)
	}
	if !validTolerance(o.Tolerance) {
		return invalidInput("tolerance %v", o.Tolerance)
	}
	return nil
}

// validTolerance reports whether tol is finite and positive. The sweep
// derives its snapping threshold from it.
func validTolerance(tol float64) bool {
	return tol > 0 && !math.IsInf(tol, 0)
}

func (o FillOptions) sweepOptions() sweep.Options {
	return sweep.Options{
		FillRule:            o.FillRule,
		Orientation:         o.Orientation,
		Tolerance:           o.Tolerance,
		HandleIntersections: o.HandleIntersections,
	}
}

// StrokeOptions configures a StrokeTessellator call.
//
// Example:
//
//	opts := tess.DefaultStrokeOptions().
//	    WithLineWidth(4).
//	    WithLineJoin(tess.LineJoinRound).
//	    WithDash(tess.NewDash(10, 5))
type StrokeOptions struct {
	// LineWidth is the full width of the stroke.
	LineWidth float64
	StartCap  LineCap
	EndCap    LineCap
	LineJoin  LineJoin
	// MiterLimit is the maximum ratio between miter length and line
	// width. It must be at least 1.
	MiterLimit float64
	// Tolerance is the flattening tolerance for curves, round joins and
	// round caps. It must be positive.
	Tolerance float64
	// Dash is the dash pattern. Nil strokes a solid line.
	Dash *Dash
	// VariableLineWidth scales LineWidth at each endpoint by the endpoint
	// attribute at index WidthAttribute. It needs attributes passed to
	// TessellateWithAttributes, with factors that are not negative.
	VariableLineWidth bool
	WidthAttribute    int
}

// DefaultStrokeOptions returns the default stroke options: a solid line
// of width 1 with butt caps and miter joins.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{
		LineWidth:  1,
		StartCap:   LineCapButt,
		EndCap:     LineCapButt,
		LineJoin:   LineJoinMiter,
		MiterLimit: DefaultMiterLimit,
		Tolerance:  DefaultTolerance,
	}
}

// WithLineWidth returns a copy with the given line width.
func (o StrokeOptions) WithLineWidth(width float64) StrokeOptions {
	o.LineWidth = width
	return o
}

// WithLineCap returns a copy with both caps set.
func (o StrokeOptions) WithLineCap(c LineCap) StrokeOptions {
	o.StartCap = c
	o.EndCap = c
	return o
}

// WithStartCap returns a copy with the given start cap.
func (o StrokeOptions) WithStartCap(c LineCap) StrokeOptions {
	o.StartCap = c
	return o
}

// WithEndCap returns a copy with the given end cap.
func (o StrokeOptions) WithEndCap(c LineCap) StrokeOptions {
	o.EndCap = c
	return o
}

// WithLineJoin returns a copy with the given join.
func (o StrokeOptions) WithLineJoin(j LineJoin) StrokeOptions {
	o.LineJoin = j
	return o
}

// WithMiterLimit returns a copy with the given miter limit.
func (o StrokeOptions) WithMiterLimit(limit float64) StrokeOptions {
	o.MiterLimit = limit
	return o
}

// WithTolerance returns a copy with the given flattening tolerance.
func (o StrokeOptions) WithTolerance(tolerance float64) StrokeOptions {
	o.Tolerance = tolerance
	return o
}

// WithDash returns a copy with the given dash pattern.
func (o StrokeOptions) WithDash(d *Dash) StrokeOptions {
	o.Dash = d
	return o
}

// WithVariableLineWidth returns a copy that scales the line width by the
// endpoint attribute at index attr.
func (o StrokeOptions) WithVariableLineWidth(attr int) StrokeOptions {
	o.VariableLineWidth = true
	o.WidthAttribute = attr
	return o
}

func (o StrokeOptions) validate() error {
	if math.IsNaN(o.LineWidth) || math.IsInf(o.LineWidth, 0) || o.LineWidth <= 0 {
		return invalidInput("line width %v", o.LineWidth)
	}
	if math.IsNaN(o.MiterLimit) || o.MiterLimit < 1 {
		return invalidInput("miter limit %v", o.MiterLimit)
	}
	if !validTolerance(o.Tolerance) {
		return invalidInput("tolerance %v", o.Tolerance)
	}
	for _, c := range []LineCap{o.StartCap, o.EndCap} {
		if c > LineCapRound {
			return fmt.Errorf("%w: line cap %d", ErrUnsupported, c)
		}
	}
	if o.LineJoin > LineJoinBevel {
		return fmt.Errorf("%w: line join %d", ErrUnsupported, o.LineJoin)
	}
	if o.VariableLineWidth && o.WidthAttribute < 0 {
		return invalidInput("width attribute %d", o.WidthAttribute)
	}
	return o.Dash.validate()
}

func (o StrokeOptions) style() stroke.Style {
	return stroke.Style{
		Width:      o.LineWidth,
		StartCap:   o.StartCap,
		EndCap:     o.EndCap,
		Join:       o.LineJoin,
		MiterLimit: o.MiterLimit,
		Tolerance:  o.Tolerance,
	}
}
