package models

// Shaper is implemented by every grid the engine works with. Shape returns the
// extent of each axis in row-major order, e.g. [Height, Width] for 2D grids.
type Shaper interface {
	Shape() []int
}

// Point is an integer pixel coordinate. X is the column and Y is the row.
type Point struct {
	X int
	Y int
}

// Image represents a grayscale image with intensities normalized to [0, 1]
type Image struct {
	// Data is the pixel data as a 1D array in row-major order
	Data []float64

	// Width is the number of columns
	Width int

	// Height is the number of rows
	Height int
}

// NewImage allocates a zero-filled image of the given size
func NewImage(width, height int) *Image {
	return &Image{
		Data:   make([]float64, width*height),
		Width:  width,
		Height: height,
	}
}

// At returns the intensity at column x, row y
func (img *Image) At(x, y int) float64 {
	return img.Data[y*img.Width+x]
}

// Set stores the intensity at column x, row y
func (img *Image) Set(x, y int, v float64) {
	img.Data[y*img.Width+x] = v
}

// Shape implements Shaper
func (img *Image) Shape() []int {
	return []int{img.Height, img.Width}
}

// SpeedField is the edge-stopping function g(I) derived from an Image.
// Values lie in (0, 1]: close to 1 in flat regions, close to 0 on strong edges.
type SpeedField struct {
	Data   []float64
	Width  int
	Height int
}

// At returns the speed at column x, row y
func (s *SpeedField) At(x, y int) float64 {
	return s.Data[y*s.Width+x]
}

// Shape implements Shaper
func (s *SpeedField) Shape() []int {
	return []int{s.Height, s.Width}
}

// LevelSet is a binary region estimate. Every element is exactly 0 or 1.
type LevelSet struct {
	// Data holds the labels in row-major order
	Data []uint8

	Width  int
	Height int
}

// NewLevelSet allocates an empty level set of the given size
func NewLevelSet(width, height int) *LevelSet {
	return &LevelSet{
		Data:   make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// At returns the label at column x, row y
func (ls *LevelSet) At(x, y int) uint8 {
	return ls.Data[y*ls.Width+x]
}

// Set stores the label at column x, row y
func (ls *LevelSet) Set(x, y int, v uint8) {
	ls.Data[y*ls.Width+x] = v
}

// Shape implements Shaper
func (ls *LevelSet) Shape() []int {
	return []int{ls.Height, ls.Width}
}

// Clone returns an independent copy of the level set
func (ls *LevelSet) Clone() *LevelSet {
	data := make([]uint8, len(ls.Data))
	copy(data, ls.Data)
	return &LevelSet{Data: data, Width: ls.Width, Height: ls.Height}
}

// Equal reports whether both level sets have the same shape and labels
func (ls *LevelSet) Equal(other *LevelSet) bool {
	if other == nil || ls.Width != other.Width || ls.Height != other.Height {
		return false
	}
	for i := range ls.Data {
		if ls.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// Volume represents a stack of slices as a 3D grid
type Volume struct {
	// Data is the 3D volume data as a 1D array in row-major order
	Data []float64

	// Width is the width of the volume in voxels
	Width int

	// Height is the height of the volume in voxels
	Height int

	// Depth is the number of slices
	Depth int
}

// Shape implements Shaper
func (v *Volume) Shape() []int {
	return []int{v.Depth, v.Height, v.Width}
}
