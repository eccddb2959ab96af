package view

// This file maps between volume-index space and each plane's display-pixel
// space. The two directions must be exact inverses for the axes a plane
// addresses: placing the crosshair for a cursor and clicking on that exact
// pixel yields the cursor back.

// DisplaySize returns the width and height in pixels of the plane's
// rendered slice for the cursor's volume.
func DisplaySize(p Plane, c *Cursor) (w, h int) {
	r := rules[p]
	return c.dims[r.horiz], c.dims[r.vert]
}

// Crosshair returns the display position of the crosshair lines for the
// plane: vx is the column of the vertical line, hy the row of the
// horizontal line.
func Crosshair(p Plane, c *Cursor) (vx, hy int) {
	r := rules[p]
	vx = c.pos[r.horiz]
	if r.flipH {
		vx = c.dims[r.horiz] - vx - 1
	}
	hy = c.pos[r.vert]
	if r.flipV {
		hy = c.dims[r.vert] - hy - 1
	}
	return vx, hy
}

// ApplyClick maps a click at display pixel (px, py) on the plane back to
// volume indices and writes them to the cursor. Pixels are clamped against
// the plane's own two display dimensions, not the volume's first two; the
// plane's fixed axis is left untouched. Reports whether the cursor moved.
func ApplyClick(p Plane, px, py int, c *Cursor) bool {
	r := rules[p]

	px = clamp(px, c.dims[r.horiz]-1)
	py = clamp(py, c.dims[r.vert]-1)

	h := px
	if r.flipH {
		h = c.dims[r.horiz] - px - 1
	}
	v := py
	if r.flipV {
		v = c.dims[r.vert] - py - 1
	}

	moved := c.pos[r.horiz] != h || c.pos[r.vert] != v
	c.Set(r.horiz, h)
	c.Set(r.vert, v)
	return moved
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
