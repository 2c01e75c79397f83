package visualization

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"medcontour/internal/models"
	"medcontour/pkg/morphology"
)

// namedColors are the contour colours offered by the colour selector
var namedColors = map[string]string{
	"red":     "#ff0000",
	"green":   "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"white":   "#ffffff",
}

// ParseColor converts a colour name or a #RRGGBB string into a colour
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// FromImage converts a decoded image to a grayscale models.Image with
// intensities in [0, 1]
func FromImage(img image.Image) *models.Image {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	out := models.NewImage(bounds.Dx(), bounds.Dy())

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			off := gray.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)
			out.Set(x, y, float64(gray.Pix[off])/255.0)
		}
	}
	return out
}

// ToImage renders a models.Image as an 8-bit grayscale image
func ToImage(img *models.Image) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			v := img.At(x, y)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			out.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return out
}

// Overlay paints the boundary of mask onto a copy of base. The mask must
// have the size of base.
func Overlay(base image.Image, mask *models.LevelSet, c color.Color) (*image.NRGBA, error) {
	bounds := base.Bounds()
	if bounds.Dx() != mask.Width || bounds.Dy() != mask.Height {
		return nil, fmt.Errorf("mask %dx%d does not match image %dx%d",
			mask.Width, mask.Height, bounds.Dx(), bounds.Dy())
	}

	out := imaging.Clone(base)
	edges := morphology.Boundary(mask.Data, mask.Width, mask.Height)
	for i, e := range edges {
		if e == 1 {
			out.Set(i%mask.Width, i/mask.Width, c)
		}
	}
	return out, nil
}

// Blend mixes the overlay onto base with the given opacity in [0, 1]
func Blend(base, overlay image.Image, opacity float64) *image.RGBA {
	return blend.Opacity(base, overlay, opacity)
}

// FrameRecorder is a contour observer that renders every iteration as an
// overlay on a fixed background. It is safe for concurrent use.
type FrameRecorder struct {
	mu     sync.Mutex
	base   image.Image
	color  color.Color
	frames []image.Image
}

// NewFrameRecorder creates a recorder drawing on base with colour c
func NewFrameRecorder(base image.Image, c color.Color) *FrameRecorder {
	return &FrameRecorder{base: base, color: c}
}

// OnIterationComplete renders the mask of one iteration
func (r *FrameRecorder) OnIterationComplete(iteration int, mask *models.LevelSet) {
	frame, err := Overlay(r.base, mask, r.color)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.frames) <= iteration {
		r.frames = append(r.frames, nil)
	}
	r.frames[iteration] = frame
}

// Frames returns the rendered frames indexed by iteration
func (r *FrameRecorder) Frames() []image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]image.Image, len(r.frames))
	copy(out, r.frames)
	return out
}

// SaveFrames writes every recorded frame as a PNG file to dir
func (r *FrameRecorder) SaveFrames(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	for i, frame := range r.Frames() {
		if frame == nil {
			continue
		}
		filename := filepath.Join(dir, fmt.Sprintf("iteration_%03d.png", i))
		if err := imaging.Save(frame, filename); err != nil {
			return fmt.Errorf("failed to save frame %d: %w", i, err)
		}
	}
	return nil
}
