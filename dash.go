package tess

import (
	"math"

	"github.com/gogpu/tess/internal/stroke"
)

// Dash defines a dash pattern for stroking.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Array contains alternating dash/gap lengths.
	// If the array has an odd number of elements, it is logically duplicated
	// to create an even-length pattern (e.g., [5] becomes [5, 5]).
	Array []float64

	// Offset is the starting offset into the pattern.
	// The stroke begins at this point in the pattern cycle.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// If an odd number of elements is provided, the pattern is conceptually
// duplicated to create an even-length pattern.
//
// Examples:
//
//	NewDash(5, 3)        // 5 units dash, 3 units gap
//	NewDash(10, 5, 2, 5) // 10 dash, 5 gap, 2 dash, 5 gap
//	NewDash(5)           // equivalent to [5, 5]
//
// Returns nil if no lengths are provided or all lengths are zero.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}

	// A pattern without a positive length would never draw anything.
	allZeroOrNeg := true
	for _, l := range lengths {
		if l > 0 {
			allZeroOrNeg = false
			break
		}
	}
	if allZeroOrNeg {
		return nil
	}

	// Negative lengths are taken by magnitude.
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}

	return &Dash{Array: normalized}
}

// WithOffset returns a new Dash with the given offset.
// The offset determines where in the pattern the first contour begins.
// The receiver's Array is shared, not copied.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{
		Array:  d.Array,
		Offset: offset,
	}
}

// PatternLength returns the total length of one complete pattern cycle.
// For odd-length arrays, this includes the duplicated pattern.
func (d *Dash) PatternLength() float64 {
	if d == nil || len(d.Array) == 0 {
		return 0
	}

	var total float64
	for _, l := range d.Array {
		total += l
	}

	// An odd pattern repeats once with dashes and gaps swapped.
	if len(d.Array)%2 != 0 {
		total *= 2
	}
	return total
}

// IsDashed returns true if this represents a dashed line (not solid).
// Returns false for nil Dash or empty/all-zero arrays.
func (d *Dash) IsDashed() bool {
	if d == nil || len(d.Array) == 0 {
		return false
	}

	// A single positive length is enough to break the line.
	for _, l := range d.Array {
		if l > 0 {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the Dash.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	arrayCopy := make([]float64, len(d.Array))
	copy(arrayCopy, d.Array)
	return &Dash{
		Array:  arrayCopy,
		Offset: d.Offset,
	}
}

// NormalizedOffset returns the offset normalized to be within one pattern cycle.
// Negative offsets wrap around, so -1 on a pattern of length 4 starts at 3.
func (d *Dash) NormalizedOffset() float64 {
	if d == nil {
		return 0
	}
	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}
	// math.Mod keeps the sign of the dividend.
	offset := math.Mod(d.Offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	return offset
}

// Scale returns a new Dash with all lengths multiplied by the given factor.
// Dash lengths are in path units, so a caller that transforms a path by a
// uniform scale should scale its pattern by the same factor before
// stroking. Factors <= 0 return d unchanged.
func (d *Dash) Scale(factor float64) *Dash {
	if d == nil || factor <= 0 {
		return d
	}
	scaledArray := make([]float64, len(d.Array))
	for i, l := range d.Array {
		scaledArray[i] = l * factor
	}
	return &Dash{
		Array:  scaledArray,
		Offset: d.Offset * factor,
	}
}

// effectiveArray returns the array with odd-length arrays duplicated.
// The stroke dash pre-pass walks the result as strict dash/gap pairs, so
// [5] must become [5, 5] and [3, 1, 2] must become [3, 1, 2, 3, 1, 2].
func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	// Odd arrays are copied so that Array is never modified.
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}

// validate rejects patterns with negative or non-finite entries. A nil
// or all-zero pattern is valid and strokes a solid line.
func (d *Dash) validate() error {
	if d == nil {
		return nil
	}
	for _, l := range d.Array {
		if l < 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return invalidInput("dash length %v", l)
		}
	}
	if math.IsNaN(d.Offset) || math.IsInf(d.Offset, 0) {
		return invalidInput("dash offset %v", d.Offset)
	}
	return nil
}

// apply splits a flattened contour into dashes and calls emit with each.
func (d *Dash) apply(points []Point, closed bool, emit func(run []Point, at []stroke.Location)) {
	stroke.Dash(points, closed, d.effectiveArray(), d.NormalizedOffset(), emit)
}
