package gradient

// Numeric returns the finite-difference gradient of a row-major grid along the
// row axis and the column axis. Interior points use central differences and
// the first and last point of each axis use one-sided differences. An axis of
// length 1 has a zero gradient.
func Numeric(data []float64, width, height int) (dRow, dCol []float64) {
	dRow = make([]float64, len(data))
	dCol = make([]float64, len(data))

	if height > 1 {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				var d float64
				switch y {
				case 0:
					d = data[width+x] - data[x]
				case height - 1:
					d = data[y*width+x] - data[(y-1)*width+x]
				default:
					d = (data[(y+1)*width+x] - data[(y-1)*width+x]) / 2
				}
				dRow[y*width+x] = d
			}
		}
	}

	if width > 1 {
		for y := 0; y < height; y++ {
			row := data[y*width : (y+1)*width]
			for x := 0; x < width; x++ {
				var d float64
				switch x {
				case 0:
					d = row[1] - row[0]
				case width - 1:
					d = row[x] - row[x-1]
				default:
					d = (row[x+1] - row[x-1]) / 2
				}
				dCol[y*width+x] = d
			}
		}
	}

	return dRow, dCol
}

// NumericLabels is Numeric for a binary label grid
func NumericLabels(labels []uint8, width, height int) (dRow, dCol []float64) {
	data := make([]float64, len(labels))
	for i, v := range labels {
		data[i] = float64(v)
	}
	return Numeric(data, width, height)
}
