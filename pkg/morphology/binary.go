package morphology

// Erode returns the binary erosion of u by el. A pixel survives only if every
// position covered by the element is inside the grid and set.
func Erode(u []uint8, width, height int, el Element) []uint8 {
	offs := el.offsets()
	out := make([]uint8, len(u))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			keep := uint8(1)
			for _, o := range offs {
				yy, xx := y+o.dy, x+o.dx
				if yy < 0 || yy >= height || xx < 0 || xx >= width || u[yy*width+xx] == 0 {
					keep = 0
					break
				}
			}
			out[y*width+x] = keep
		}
	}
	return out
}

// Dilate returns the binary dilation of u by el. The element is reflected
// through its origin, as in the usual definition of dilation.
func Dilate(u []uint8, width, height int, el Element) []uint8 {
	offs := el.offsets()
	out := make([]uint8, len(u))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, o := range offs {
				yy, xx := y-o.dy, x-o.dx
				if yy < 0 || yy >= height || xx < 0 || xx >= width {
					continue
				}
				if u[yy*width+xx] != 0 {
					out[y*width+x] = 1
					break
				}
			}
		}
	}
	return out
}

// Boundary returns the one pixel thick inner edge of u: u XOR erode(u, Full)
func Boundary(u []uint8, width, height int) []uint8 {
	eroded := Erode(u, width, height, Full)
	out := make([]uint8, len(u))
	for i := range u {
		out[i] = (u[i] & 1) ^ eroded[i]
	}
	return out
}
