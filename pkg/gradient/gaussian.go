// Package gradient turns an intensity image into the speed field that drives
// the geodesic active contour, and provides the finite-difference gradient the
// evolver uses for its image attachment term.
package gradient

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"medcontour/internal/models"
)

// truncate is the kernel half-width in units of sigma
const truncate = 4.0

var (
	// ErrInvalidSigma is returned when the smoothing radius is not positive
	ErrInvalidSigma = errors.New("sigma must be positive")

	// ErrInvalidAlpha is returned when alpha is negative
	ErrInvalidAlpha = errors.New("alpha must not be negative")

	// ErrEmptyImage is returned for images without pixels
	ErrEmptyImage = errors.New("image has no pixels")
)

// gaussianKernel returns the sampled Gaussian of the given order (0 or 1) on
// [-radius, radius]. The order 0 kernel sums to 1; the order 1 kernel is its
// derivative, -x/sigma² times the normalized Gaussian.
func gaussianKernel(sigma float64, order, radius int) []float64 {
	sigma2 := sigma * sigma
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-0.5 / sigma2 * x * x)
	}
	floats.Scale(1/floats.Sum(kernel), kernel)

	if order == 1 {
		for i := range kernel {
			x := float64(i - radius)
			kernel[i] *= -x / sigma2
		}
	}
	return kernel
}

// convolveAxis convolves data with kernel along one axis (0 = rows, 1 = columns)
// extending the border by repeating the nearest pixel.
func convolveAxis(data []float64, width, height int, kernel []float64, axis int) []float64 {
	radius := len(kernel) / 2
	out := make([]float64, len(data))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for k, w := range kernel {
				s := k - radius
				if axis == 0 {
					yy := clampIndex(y-s, height)
					sum += w * data[yy*width+x]
				} else {
					xx := clampIndex(x-s, width)
					sum += w * data[y*width+xx]
				}
			}
			out[y*width+x] = sum
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// GaussianGradientMagnitude computes the magnitude of the gradient of img after
// Gaussian smoothing with standard deviation sigma. Each axis is differentiated
// with a derivative-of-Gaussian filter and smoothed along the other axis; the
// border is extended with the nearest pixel.
func GaussianGradientMagnitude(img *models.Image, sigma float64) ([]float64, error) {
	if img == nil || img.Width <= 0 || img.Height <= 0 || len(img.Data) == 0 {
		return nil, ErrEmptyImage
	}
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidSigma, sigma)
	}

	radius := int(truncate*sigma + 0.5)
	smooth := gaussianKernel(sigma, 0, radius)
	derivative := gaussianKernel(sigma, 1, radius)

	w, h := img.Width, img.Height

	// Axis 0: derivative along rows, smoothing along columns
	d0 := convolveAxis(img.Data, w, h, derivative, 0)
	d0 = convolveAxis(d0, w, h, smooth, 1)

	// Axis 1: smoothing along rows, derivative along columns
	d1 := convolveAxis(img.Data, w, h, smooth, 0)
	d1 = convolveAxis(d1, w, h, derivative, 1)

	magnitude := make([]float64, len(img.Data))
	for i := range magnitude {
		magnitude[i] = math.Sqrt(d0[i]*d0[i] + d1[i]*d1[i])
	}
	return magnitude, nil
}

// InverseGaussianGradient computes the speed field 1 / sqrt(1 + alpha*|∇(G_σ * I)|).
// Flat regions map to values near 1 and strong edges to values near 0.
func InverseGaussianGradient(img *models.Image, alpha, sigma float64) (*models.SpeedField, error) {
	if alpha < 0 || math.IsNaN(alpha) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidAlpha, alpha)
	}

	magnitude, err := GaussianGradientMagnitude(img, sigma)
	if err != nil {
		return nil, err
	}

	speed := &models.SpeedField{
		Data:   make([]float64, len(magnitude)),
		Width:  img.Width,
		Height: img.Height,
	}
	for i, g := range magnitude {
		speed.Data[i] = 1.0 / math.Sqrt(1.0+alpha*g)
	}
	return speed, nil
}
