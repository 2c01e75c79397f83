// Package roi turns a user supplied region of interest into the initial level
// set of a segmentation run.
//
// A region of interest is described by one of four descriptor types:
//   - Rectangle: an axis aligned box between two corners
//   - Ellipse: the ellipse inscribed in the box between two corners
//   - Circle: a disc whose diameter is the segment between two points
//   - Seed: a disc of default radius around a single point
//
// Coordinates are pixel positions (X = column, Y = row). They are clamped to
// the image before any mask is built, so clicks outside the image are safe.
package roi

import (
	"errors"
	"fmt"
	"strings"

	"medcontour/internal/models"
)

// ErrInvalidROI is returned when a mode and its points do not form a descriptor
var ErrInvalidROI = errors.New("invalid region of interest")

// Mode selects how the ROI points are interpreted
type Mode string

const (
	ModePoint     Mode = "point"
	ModeRectangle Mode = "rectangle"
	ModeEllipse   Mode = "ellipse"
)

// ParseMode converts a user facing mode name into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePoint:
		return ModePoint, nil
	case ModeRectangle:
		return ModeRectangle, nil
	case ModeEllipse:
		return ModeEllipse, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidROI, s)
}

// Descriptor is a region of interest. The concrete types are Rectangle,
// Ellipse, Circle and Seed.
type Descriptor interface {
	// Mode reports the mode the descriptor was created for
	Mode() Mode

	// Points returns the coordinates that define the descriptor
	Points() []models.Point

	// mask builds the initial level set for an image of the given size
	mask(width, height int) *models.LevelSet
}

// Rectangle is the axis aligned box between A and B, both corners inclusive
type Rectangle struct {
	A, B models.Point
}

// Ellipse is the ellipse inscribed in the box between A and B
type Ellipse struct {
	A, B models.Point
}

// Circle is the disc centred between A and B with half their distance as radius
type Circle struct {
	A, B models.Point
}

// Seed is a disc of default radius centred on a single point
type Seed struct {
	Center models.Point
}

func (Rectangle) Mode() Mode { return ModeRectangle }
func (Ellipse) Mode() Mode   { return ModeEllipse }
func (Circle) Mode() Mode    { return ModePoint }
func (Seed) Mode() Mode      { return ModePoint }

func (r Rectangle) Points() []models.Point { return []models.Point{r.A, r.B} }
func (e Ellipse) Points() []models.Point   { return []models.Point{e.A, e.B} }
func (c Circle) Points() []models.Point    { return []models.Point{c.A, c.B} }
func (s Seed) Points() []models.Point      { return []models.Point{s.Center} }

// New builds a descriptor from a mode and the points collected for it.
// Rectangle and ellipse need exactly two points; point mode takes one point
// (Seed) or two points (Circle).
func New(mode Mode, points []models.Point) (Descriptor, error) {
	switch mode {
	case ModeRectangle:
		if len(points) != 2 {
			return nil, fmt.Errorf("%w: rectangle needs 2 points, got %d", ErrInvalidROI, len(points))
		}
		return Rectangle{A: points[0], B: points[1]}, nil
	case ModeEllipse:
		if len(points) != 2 {
			return nil, fmt.Errorf("%w: ellipse needs 2 points, got %d", ErrInvalidROI, len(points))
		}
		return Ellipse{A: points[0], B: points[1]}, nil
	case ModePoint:
		switch len(points) {
		case 1:
			return Seed{Center: points[0]}, nil
		case 2:
			return Circle{A: points[0], B: points[1]}, nil
		}
		return nil, fmt.Errorf("%w: point mode needs 1 or 2 points, got %d", ErrInvalidROI, len(points))
	}
	return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidROI, mode)
}

// Clamp limits p to the pixel range of a width x height image
func Clamp(p models.Point, width, height int) models.Point {
	return models.Point{
		X: clamp(p.X, 0, width-1),
		Y: clamp(p.Y, 0, height-1),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
