package morphology

import "sync"

// applyAll runs op with every element concurrently. Results are indexed by
// element so the reduction that follows does not depend on scheduling.
func applyAll(u []uint8, width, height int, op func([]uint8, int, int, Element) []uint8) [][]uint8 {
	elements := P2()
	results := make([][]uint8, len(elements))

	var wg sync.WaitGroup
	for i, el := range elements {
		wg.Add(1)
		go func(i int, el Element) {
			defer wg.Done()
			results[i] = op(u, width, height, el)
		}(i, el)
	}
	wg.Wait()

	return results
}

// SupInf is the SI operator: the pixel-wise maximum of the erosions of u by
// each element of P2.
func SupInf(u []uint8, width, height int) []uint8 {
	erosions := applyAll(u, width, height, Erode)
	out := make([]uint8, len(u))
	for _, e := range erosions {
		for i, v := range e {
			if v > out[i] {
				out[i] = v
			}
		}
	}
	return out
}

// InfSup is the IS operator: the pixel-wise minimum of the dilations of u by
// each element of P2.
func InfSup(u []uint8, width, height int) []uint8 {
	dilations := applyAll(u, width, height, Dilate)
	out := make([]uint8, len(u))
	for i := range out {
		out[i] = 1
	}
	for _, d := range dilations {
		for i, v := range d {
			if v < out[i] {
				out[i] = v
			}
		}
	}
	return out
}

// Curvature is the morphological curvature operator. Successive calls to Apply
// alternate between SI∘IS and IS∘SI. The zero value starts with SI∘IS.
//
// A Curvature must not be shared between concurrent segmentation runs.
type Curvature struct {
	calls int
}

// Apply performs one smoothing step on u and returns the result
func (c *Curvature) Apply(u []uint8, width, height int) []uint8 {
	var out []uint8
	if c.calls%2 == 0 {
		out = SupInf(InfSup(u, width, height), width, height)
	} else {
		out = InfSup(SupInf(u, width, height), width, height)
	}
	c.calls++
	return out
}

// Calls returns how many steps have been applied since the last Reset
func (c *Curvature) Calls() int {
	return c.calls
}

// Reset makes the next call to Apply use SI∘IS again
func (c *Curvature) Reset() {
	c.calls = 0
}
