package metrics

import (
	"math"
	"testing"

	"medcontour/internal/models"
)

func box(width, height, x0, y0, x1, y1 int) *models.LevelSet {
	ls := models.NewLevelSet(width, height)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ls.Set(x, y, 1)
		}
	}
	return ls
}

// TestAreaAndCentroid checks the basic region statistics
func TestAreaAndCentroid(t *testing.T) {
	m := box(10, 10, 2, 4, 5, 7)
	if a := Area(m); a != 16 {
		t.Errorf("Expected area 16, got %d", a)
	}

	x, y, ok := Centroid(m)
	if !ok {
		t.Fatalf("Centroid of a non-empty mask reported empty")
	}
	if x != 3.5 || y != 5.5 {
		t.Errorf("Expected centroid (3.5, 5.5), got (%f, %f)", x, y)
	}

	if _, _, ok := Centroid(models.NewLevelSet(4, 4)); ok {
		t.Errorf("Centroid of an empty mask should not be ok")
	}
}

// TestCompare verifies the overlap scores of two shifted boxes
func TestCompare(t *testing.T) {
	ref := box(10, 10, 0, 0, 3, 3)    // 16 pixels
	result := box(10, 10, 2, 0, 5, 3) // 16 pixels, 8 shared

	m, err := Compare(ref, result)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Area != 16 || m.ReferenceArea != 16 {
		t.Errorf("Unexpected areas %d and %d", m.Area, m.ReferenceArea)
	}
	if m.Changed != 16 {
		t.Errorf("Expected 16 changed pixels, got %d", m.Changed)
	}
	if math.Abs(m.Dice-0.5) > 1e-12 {
		t.Errorf("Expected Dice 0.5, got %f", m.Dice)
	}
	if math.Abs(m.Jaccard-1.0/3.0) > 1e-12 {
		t.Errorf("Expected Jaccard 1/3, got %f", m.Jaccard)
	}

	n, err := Changed(ref, result)
	if err != nil || n != 16 {
		t.Errorf("Changed returned %d, %v", n, err)
	}
}

// TestEmptyMasks checks the conventions for two empty masks
func TestEmptyMasks(t *testing.T) {
	a := models.NewLevelSet(5, 5)
	b := models.NewLevelSet(5, 5)

	m, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if m.Dice != 1 || m.Jaccard != 1 {
		t.Errorf("Two empty masks should match perfectly, got Dice %f Jaccard %f", m.Dice, m.Jaccard)
	}
}

// TestShapeMismatch verifies that masks of different size are rejected
func TestShapeMismatch(t *testing.T) {
	if _, err := Compare(models.NewLevelSet(5, 5), models.NewLevelSet(5, 6)); err == nil {
		t.Errorf("Expected an error for mismatched masks")
	}
	if _, err := Changed(nil, models.NewLevelSet(5, 5)); err == nil {
		t.Errorf("Expected an error for a nil mask")
	}
}
