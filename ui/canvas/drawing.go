// Package canvas provides the per-plane slice canvas widget and its
// drawing primitives.
package canvas

import (
	"image"
	"image/color"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns contains 3x5 pixel patterns for letters and the symbols
// the view titles need.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'M': {0b111, 0b111, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'=': {0b000, 0b111, 0b000, 0b111, 0b000},
	'(': {0b001, 0b010, 0b010, 0b010, 0b001},
	')': {0b100, 0b010, 0b010, 0b010, 0b100},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// charPattern returns the 3x5 pixel pattern for a character, or an empty
// pattern for anything unsupported.
func charPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{}
}

// DrawLabel renders text onto img with its top-left corner at (x, y),
// using the bitmap font scaled up by scale.
func DrawLabel(img *image.RGBA, text string, x, y int, col color.RGBA, scale int) {
	if scale < 1 {
		scale = 1
	}
	cx := x
	for _, ch := range text {
		pattern := charPattern(ch)
		for row := 0; row < 5; row++ {
			for bit := 0; bit < 3; bit++ {
				if pattern[row]&(1<<(2-bit)) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						px := cx + bit*scale + dx
						py := y + row*scale + dy
						if image.Pt(px, py).In(img.Bounds()) {
							img.SetRGBA(px, py, col)
						}
					}
				}
			}
		}
		cx += 4 * scale // 3 pixels of glyph plus 1 of spacing
	}
}

// blendPixel mixes col into img at (x, y) with the given alpha in [0, 1].
func blendPixel(img *image.RGBA, x, y int, col color.RGBA, alpha float64) {
	if !(image.Pt(x, y).In(img.Bounds())) {
		return
	}
	dst := img.RGBAAt(x, y)
	inv := 1 - alpha
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(col.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(col.B)*alpha + float64(dst.B)*inv),
		A: 255,
	})
}

// drawVLine blends a vertical line at column x between y0 and y1.
// A dash length of 0 draws solid; otherwise equal dashes and gaps.
func drawVLine(img *image.RGBA, x, y0, y1 int, col color.RGBA, alpha float64, dash int) {
	for y := y0; y < y1; y++ {
		if dash > 0 && (y/dash)%2 == 1 {
			continue
		}
		blendPixel(img, x, y, col, alpha)
	}
}

// drawHLine blends a horizontal line at row y between x0 and x1.
func drawHLine(img *image.RGBA, y, x0, x1 int, col color.RGBA, alpha float64, dash int) {
	for x := x0; x < x1; x++ {
		if dash > 0 && (x/dash)%2 == 1 {
			continue
		}
		blendPixel(img, x, y, col, alpha)
	}
}
