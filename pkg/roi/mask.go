package roi

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"medcontour/internal/models"
)

// seedRadiusFraction is the radius of a Seed disc relative to the shorter image side
const seedRadiusFraction = 3.0 / 8.0

// GenerateInitialMask builds the initial level set for img from desc and
// returns it together with the mean image intensity inside the mask.
//
// A degenerate region (reversed rectangle corners, zero ellipse axis, zero
// radius) is not an error: it yields an empty mask and a mean of 0.
func GenerateInitialMask(img *models.Image, desc Descriptor) (*models.LevelSet, float64) {
	if img.Width <= 0 || img.Height <= 0 {
		return models.NewLevelSet(max(img.Width, 0), max(img.Height, 0)), 0
	}

	mask := desc.mask(img.Width, img.Height)
	return mask, MeanIntensity(img, mask)
}

// MeanIntensity returns the mean of img over the pixels set in mask, or 0 when
// the mask is empty
func MeanIntensity(img *models.Image, mask *models.LevelSet) float64 {
	var values []float64
	for i, v := range mask.Data {
		if v == 1 {
			values = append(values, img.Data[i])
		}
	}
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func (r Rectangle) mask(width, height int) *models.LevelSet {
	a := Clamp(r.A, width, height)
	b := Clamp(r.B, width, height)

	ls := models.NewLevelSet(width, height)
	for y := a.Y; y <= b.Y; y++ {
		for x := a.X; x <= b.X; x++ {
			ls.Set(x, y, 1)
		}
	}
	return ls
}

func (e Ellipse) mask(width, height int) *models.LevelSet {
	a := Clamp(e.A, width, height)
	b := Clamp(e.B, width, height)
	cx, cy := (a.X+b.X)/2, (a.Y+b.Y)/2
	semiX := math.Abs(float64(b.X-a.X)) / 2
	semiY := math.Abs(float64(b.Y-a.Y)) / 2

	ls := models.NewLevelSet(width, height)
	if semiX == 0 || semiY == 0 {
		return ls
	}
	for y := 0; y < height; y++ {
		dy := float64(y - cy)
		for x := 0; x < width; x++ {
			dx := float64(x - cx)
			if dx*dx/(semiX*semiX)+dy*dy/(semiY*semiY) <= 1 {
				ls.Set(x, y, 1)
			}
		}
	}
	return ls
}

func (c Circle) mask(width, height int) *models.LevelSet {
	a := Clamp(c.A, width, height)
	b := Clamp(c.B, width, height)
	center := models.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	radius := math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y)) / 2
	return disc(center, radius, width, height)
}

func (s Seed) mask(width, height int) *models.LevelSet {
	center := Clamp(s.Center, width, height)
	radius := float64(min(width, height)) * seedRadiusFraction
	return disc(center, radius, width, height)
}

// disc sets every pixel whose distance to center is strictly below radius
func disc(center models.Point, radius float64, width, height int) *models.LevelSet {
	ls := models.NewLevelSet(width, height)
	if !(radius > 0) {
		return ls
	}
	for y := 0; y < height; y++ {
		dy := float64(y - center.Y)
		for x := 0; x < width; x++ {
			dx := float64(x - center.X)
			if radius-math.Sqrt(dx*dx+dy*dy) > 0 {
				ls.Set(x, y, 1)
			}
		}
	}
	return ls
}
