// Package display computes the brightness/contrast display window and
// renders oriented slices to 8-bit grayscale for the canvas.
package display

import (
	"image"

	"mpr-viewer/internal/volume"
)

// Params is the computed display range. Intensities at or below VMin render
// black, at or above VMax render white.
type Params struct {
	VMin, VMax float64
}

// Window derives the display range from the volume's intensity extrema and
// the two control values, both in [-100, 100]:
//
//	vmin = dataMin + (brightness/100) * (dataMax - dataMin)
//	vmax = dataMax * ((contrast+100)/100)
//
// Contrast 0 therefore means unchanged. Nothing forces vmin < vmax; extreme
// settings yield a degenerate window and a blank image, which is accepted
// input-space behavior rather than an error.
func Window(dataMin, dataMax, brightness, contrast float64) Params {
	b := brightness / 100
	c := (contrast + 100) / 100
	return Params{
		VMin: dataMin + b*(dataMax-dataMin),
		VMax: dataMax * c,
	}
}

// Render maps a slice through the window to an 8-bit grayscale image of the
// same dimensions. A degenerate window (VMax <= VMin) renders each pixel as
// full white if it exceeds VMin and black otherwise, so the caller never
// sees a divide-by-zero.
func Render(s *volume.Slice, p Params) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.W, s.H))

	span := p.VMax - p.VMin
	data := s.Data()
	for i, val := range data {
		var g uint8
		switch {
		case span <= 0:
			if val > p.VMin {
				g = 255
			}
		case val <= p.VMin:
			g = 0
		case val >= p.VMax:
			g = 255
		default:
			g = uint8((val - p.VMin) / span * 255)
		}
		img.Pix[i] = g
	}
	return img
}
