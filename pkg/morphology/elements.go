// Package morphology implements the binary morphological operators used by the
// geodesic active contour: erosion and dilation with 3x3 structuring elements,
// the SI and IS compound operators and the alternating curvature step.
//
// Grids are passed as row-major []uint8 slices whose elements are 0 or 1,
// together with their width and height. Pixels outside the grid count as 0.
package morphology

// Element is a 3x3 structuring element with its origin at the centre
type Element [3][3]bool

// offset is a (row, column) displacement relative to the origin
type offset struct {
	dy, dx int
}

// offsets lists the displacements covered by the element
func (e Element) offsets() []offset {
	var out []offset
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if e[r][c] {
				out = append(out, offset{dy: r - 1, dx: c - 1})
			}
		}
	}
	return out
}

var (
	// Identity is the main diagonal
	Identity = Element{
		{true, false, false},
		{false, true, false},
		{false, false, true},
	}

	// Band is the centre column, three rows of [0 1 0]
	Band = Element{
		{false, true, false},
		{false, true, false},
		{false, true, false},
	}

	// FlippedIdentity is the anti-diagonal (Identity flipped upside down)
	FlippedIdentity = Element{
		{false, false, true},
		{false, true, false},
		{true, false, false},
	}

	// RotatedBand is Band rotated by 90 degrees, the centre row
	RotatedBand = Element{
		{false, false, false},
		{true, true, true},
		{false, false, false},
	}

	// Full is the complete 3x3 neighbourhood used by the balloon force
	Full = Element{
		{true, true, true},
		{true, true, true},
		{true, true, true},
	}
)

// P2 returns the four line elements the 2D SI and IS operators are built from.
// A fresh slice is returned on every call.
func P2() []Element {
	return []Element{Identity, Band, FlippedIdentity, RotatedBand}
}
