package geom

// FillRule decides which regions of a path are inside from their
// winding number.
type FillRule uint8

const (
	// EvenOdd treats a region as inside when its winding number is odd.
	EvenOdd FillRule = iota
	// NonZero treats a region as inside when its winding number is not zero.
	NonZero
)

// IsIn reports whether a region with the given winding number is inside.
func (r FillRule) IsIn(winding int) bool {
	switch r {
	case NonZero:
		return winding != 0
	default:
		return winding&1 != 0
	}
}

// IsValid reports whether r is a known fill rule.
func (r FillRule) IsValid() bool {
	return r == EvenOdd || r == NonZero
}

// String returns the name of the fill rule.
func (r FillRule) String() string {
	switch r {
	case EvenOdd:
		return "EvenOdd"
	case NonZero:
		return "NonZero"
	default:
		return "FillRule(?)"
	}
}

// Orientation selects the axis the fill sweep line moves along.
type Orientation uint8

const (
	// Vertical sweeps from small Y to large Y.
	Vertical Orientation = iota
	// Horizontal sweeps from small X to large X.
	Horizontal
)

// IsValid reports whether o is a known orientation.
func (o Orientation) IsValid() bool {
	return o == Vertical || o == Horizontal
}

// String returns the name of the orientation.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	default:
		return "Orientation(?)"
	}
}
