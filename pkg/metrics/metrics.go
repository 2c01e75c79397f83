// Package metrics compares binary masks: region area, pixel changes between
// iterations and overlap scores against a reference segmentation.
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"medcontour/internal/models"
)

// Confusion holds the pixel counts of a mask compared against a reference
type Confusion struct {
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
	TotalPixels    int
}

// MaskMetrics summarises a segmentation result against a reference mask
type MaskMetrics struct {
	// Area is the number of pixels inside the result
	Area int

	// ReferenceArea is the number of pixels inside the reference
	ReferenceArea int

	// Changed is the number of pixels whose label differs
	Changed int

	// Dice is 2|A∩B| / (|A|+|B|), 1 for two empty masks
	Dice float64

	// Jaccard is |A∩B| / |A∪B|, 1 for two empty masks
	Jaccard float64
}

func checkShapes(a, b *models.LevelSet) error {
	if a == nil || b == nil {
		return fmt.Errorf("masks must not be nil")
	}
	if a.Width != b.Width || a.Height != b.Height {
		return fmt.Errorf("dimension mismatch %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	return nil
}

// Area returns the number of set pixels
func Area(mask *models.LevelSet) int {
	n := 0
	for _, v := range mask.Data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Centroid returns the mean position of the set pixels and false for an empty mask
func Centroid(mask *models.LevelSet) (x, y float64, ok bool) {
	var xs, ys []float64
	for i, v := range mask.Data {
		if v != 0 {
			xs = append(xs, float64(i%mask.Width))
			ys = append(ys, float64(i/mask.Width))
		}
	}
	if len(xs) == 0 {
		return 0, 0, false
	}
	n := float64(len(xs))
	return floats.Sum(xs) / n, floats.Sum(ys) / n, true
}

// Changed counts the pixels whose label differs between a and b
func Changed(a, b *models.LevelSet) (int, error) {
	if err := checkShapes(a, b); err != nil {
		return 0, err
	}
	n := 0
	for i := range a.Data {
		if (a.Data[i] != 0) != (b.Data[i] != 0) {
			n++
		}
	}
	return n, nil
}

// CalculateConfusion compares result against reference pixel by pixel
func CalculateConfusion(reference, result *models.LevelSet) (Confusion, error) {
	if err := checkShapes(reference, result); err != nil {
		return Confusion{}, err
	}

	c := Confusion{TotalPixels: len(reference.Data)}
	for i := range reference.Data {
		ref := reference.Data[i] != 0
		res := result.Data[i] != 0
		switch {
		case ref && res:
			c.TruePositives++
		case !ref && !res:
			c.TrueNegatives++
		case res:
			c.FalsePositives++
		default:
			c.FalseNegatives++
		}
	}
	return c, nil
}

// Dice returns the Dice coefficient of the confusion counts
func (c Confusion) Dice() float64 {
	denom := 2*c.TruePositives + c.FalsePositives + c.FalseNegatives
	if denom == 0 {
		return 1
	}
	return 2 * float64(c.TruePositives) / float64(denom)
}

// Jaccard returns the intersection over union of the confusion counts
func (c Confusion) Jaccard() float64 {
	denom := c.TruePositives + c.FalsePositives + c.FalseNegatives
	if denom == 0 {
		return 1
	}
	return float64(c.TruePositives) / float64(denom)
}

// Compare computes all mask metrics of result against reference
func Compare(reference, result *models.LevelSet) (MaskMetrics, error) {
	c, err := CalculateConfusion(reference, result)
	if err != nil {
		return MaskMetrics{}, err
	}
	return MaskMetrics{
		Area:          c.TruePositives + c.FalsePositives,
		ReferenceArea: c.TruePositives + c.FalseNegatives,
		Changed:       c.FalsePositives + c.FalseNegatives,
		Dice:          c.Dice(),
		Jaccard:       c.Jaccard(),
	}, nil
}
