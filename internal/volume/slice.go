package volume

import "mpr-viewer/internal/view"

// Slice is a 2D cross-section of the volume in display orientation,
// row-major with row 0 at the top of the view.
type Slice struct {
	W, H int
	data []float64
}

// At returns the intensity at display column col and row row.
func (s *Slice) At(col, row int) float64 {
	return s.data[row*s.W+col]
}

// Data returns the underlying row-major intensities.
func (s *Slice) Data() []float64 { return s.data }

// ExtractSlice returns the plane's cross-section at the given fixed-axis
// index, already in display orientation: every plane's raw 2D section is
// rotated 90 degrees counterclockwise and then mirrored horizontally so
// that left/right and superior/inferior match radiological convention.
// The index is clamped to the plane's axis range.
func (v *Volume) ExtractSlice(p view.Plane, index int) *Slice {
	max := v.Dim(p.FixedAxis()) - 1
	if index < 0 {
		index = 0
	} else if index > max {
		index = max
	}

	var w, h int
	switch p {
	case view.Axial:
		w, h = v.nx, v.ny
	case view.Sagittal:
		w, h = v.ny, v.nz
	default: // coronal
		w, h = v.nx, v.nz
	}

	s := &Slice{W: w, H: h, data: make([]float64, w*h)}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			var val float64
			switch p {
			case view.Axial:
				val = v.At(v.nx-col-1, v.ny-row-1, index)
			case view.Sagittal:
				val = v.At(index, v.ny-col-1, v.nz-row-1)
			default:
				val = v.At(v.nx-col-1, index, v.nz-row-1)
			}
			s.data[row*w+col] = val
		}
	}
	return s
}
