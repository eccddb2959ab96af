package view

// Cursor is the single source of truth for the current 3D position in
// volume-index space. Every write is clamped to the volume bounds; out of
// range input is silently corrected, never rejected. All three slice views
// and the per-axis slider/entry widgets read the same cursor, so no two UI
// elements can disagree about where the crosshair is.
type Cursor struct {
	dims [3]int
	pos  [3]int
}

// NewCursor creates a cursor for a volume with the given dimensions,
// positioned at the origin. Dimensions smaller than 1 are treated as 1.
func NewCursor(nx, ny, nz int) *Cursor {
	c := &Cursor{dims: [3]int{nx, ny, nz}}
	for i, d := range c.dims {
		if d < 1 {
			c.dims[i] = 1
		}
	}
	return c
}

// Set stores a clamped value for the axis and returns the value actually
// stored.
func (c *Cursor) Set(axis Axis, v int) int {
	max := c.dims[axis] - 1
	if v < 0 {
		v = 0
	} else if v > max {
		v = max
	}
	c.pos[axis] = v
	return v
}

// Get returns the current position.
func (c *Cursor) Get() (x, y, z int) {
	return c.pos[0], c.pos[1], c.pos[2]
}

// Pos returns the current position along one axis.
func (c *Cursor) Pos(axis Axis) int { return c.pos[axis] }

// Dim returns the volume dimension along one axis.
func (c *Cursor) Dim(axis Axis) int { return c.dims[axis] }

// Center moves the cursor to the volume midpoint, the initial position
// after a volume loads.
func (c *Cursor) Center() {
	for i := range c.pos {
		c.pos[i] = (c.dims[i] - 1) / 2
	}
}
