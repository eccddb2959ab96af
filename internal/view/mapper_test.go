package view

import "testing"

// TestDisplaySize verifies the pixel dimensions of each plane for a
// 10x20x30 volume: axial shows (x, y), sagittal (y, z), coronal (x, z).
func TestDisplaySize(t *testing.T) {
	c := NewCursor(10, 20, 30)

	tests := []struct {
		plane Plane
		w, h  int
	}{
		{Axial, 10, 20},
		{Sagittal, 20, 30},
		{Coronal, 10, 30},
	}

	for _, tt := range tests {
		w, h := DisplaySize(tt.plane, c)
		if w != tt.w || h != tt.h {
			t.Errorf("DisplaySize(%s) = (%d, %d), want (%d, %d)",
				tt.plane, w, h, tt.w, tt.h)
		}
	}
}

// TestCrosshairPositions verifies the display position of the crosshair
// lines for a known cursor. The axial view flips y vertically and the
// sagittal view flips y horizontally.
func TestCrosshairPositions(t *testing.T) {
	c := NewCursor(10, 20, 30)
	c.Set(AxisX, 3)
	c.Set(AxisY, 5)
	c.Set(AxisZ, 7)

	tests := []struct {
		plane  Plane
		vx, hy int
	}{
		{Axial, 3, 14},    // vx = x, hy = Ny-y-1
		{Sagittal, 14, 7}, // vx = Ny-y-1, hy = z
		{Coronal, 3, 7},   // vx = x, hy = z
	}

	for _, tt := range tests {
		vx, hy := Crosshair(tt.plane, c)
		if vx != tt.vx || hy != tt.hy {
			t.Errorf("Crosshair(%s) = (%d, %d), want (%d, %d)",
				tt.plane, vx, hy, tt.vx, tt.hy)
		}
	}
}

// TestAxialClick verifies the click mapping for the axial view: a click at
// pixel (3, 5) on a 10x20x30 volume selects x=3, y=14 and leaves z alone.
func TestAxialClick(t *testing.T) {
	c := NewCursor(10, 20, 30)
	c.Set(AxisZ, 7)

	moved := ApplyClick(Axial, 3, 5, c)
	if !moved {
		t.Error("ApplyClick reported no movement for a new position")
	}

	x, y, z := c.Get()
	if x != 3 || y != 14 || z != 7 {
		t.Errorf("cursor after axial click (3, 5) = (%d, %d, %d), want (3, 14, 7)", x, y, z)
	}
}

// TestClickCrosshairRoundTrip verifies that the two mapping directions are
// exact inverses: clicking on the crosshair's own pixel never moves the
// cursor, for every plane and a spread of positions.
func TestClickCrosshairRoundTrip(t *testing.T) {
	c := NewCursor(10, 20, 30)

	positions := [][3]int{
		{0, 0, 0},
		{9, 19, 29},
		{3, 5, 7},
		{4, 14, 15},
		{0, 19, 7},
	}

	for _, pos := range positions {
		for _, plane := range Planes {
			c.Set(AxisX, pos[0])
			c.Set(AxisY, pos[1])
			c.Set(AxisZ, pos[2])

			vx, hy := Crosshair(plane, c)
			if moved := ApplyClick(plane, vx, hy, c); moved {
				t.Errorf("%s: click on own crosshair pixel (%d, %d) moved the cursor", plane, vx, hy)
			}

			x, y, z := c.Get()
			if x != pos[0] || y != pos[1] || z != pos[2] {
				t.Errorf("%s: round trip from (%d, %d, %d) gave (%d, %d, %d)",
					plane, pos[0], pos[1], pos[2], x, y, z)
			}
		}
	}
}

// TestClickClampsPerView verifies that out-of-bounds clicks clamp against
// the clicked view's own display dimensions. On a 10x20x30 volume the
// sagittal view is 20x30 pixels, so its clicks range over y and z bounds
// rather than the volume's x and y.
func TestClickClampsPerView(t *testing.T) {
	c := NewCursor(10, 20, 30)

	// Far beyond the sagittal view's 20x30 extent: px clamps to 19
	// (y = 20-19-1 = 0) and py clamps to 29 (z = 29).
	ApplyClick(Sagittal, 25, 40, c)
	x, y, z := c.Get()
	if y != 0 || z != 29 {
		t.Errorf("sagittal click (25, 40) gave y=%d z=%d, want y=0 z=29", y, z)
	}
	if x != 0 {
		t.Errorf("sagittal click changed x to %d", x)
	}

	// Negative pixels clamp to the near edge of each display axis.
	ApplyClick(Axial, -5, -5, c)
	x, y, _ = c.Get()
	if x != 0 || y != 19 {
		t.Errorf("axial click (-5, -5) gave x=%d y=%d, want x=0 y=19 (flipped)", x, y)
	}

	// Coronal view is 10x30; a click at (100, 100) pins x and z to their
	// far edges.
	ApplyClick(Coronal, 100, 100, c)
	x, _, z = c.Get()
	if x != 9 || z != 29 {
		t.Errorf("coronal click (100, 100) gave x=%d z=%d, want x=9 z=29", x, z)
	}
}

// TestClickLeavesFixedAxis verifies that a click never touches the plane's
// fixed axis.
func TestClickLeavesFixedAxis(t *testing.T) {
	for _, plane := range Planes {
		c := NewCursor(10, 20, 30)
		c.Set(AxisX, 4)
		c.Set(AxisY, 9)
		c.Set(AxisZ, 15)

		before := c.Pos(plane.FixedAxis())
		ApplyClick(plane, 1, 1, c)
		if after := c.Pos(plane.FixedAxis()); after != before {
			t.Errorf("%s: click changed fixed axis %s from %d to %d",
				plane, plane.FixedAxis(), before, after)
		}
	}
}

// TestPlaneAxes verifies the axis assignment of each plane.
func TestPlaneAxes(t *testing.T) {
	tests := []struct {
		plane              Plane
		fixed, horiz, vert Axis
	}{
		{Axial, AxisZ, AxisX, AxisY},
		{Sagittal, AxisX, AxisY, AxisZ},
		{Coronal, AxisY, AxisX, AxisZ},
	}

	for _, tt := range tests {
		if got := tt.plane.FixedAxis(); got != tt.fixed {
			t.Errorf("%s.FixedAxis() = %s, want %s", tt.plane, got, tt.fixed)
		}
		if got := tt.plane.HorizAxis(); got != tt.horiz {
			t.Errorf("%s.HorizAxis() = %s, want %s", tt.plane, got, tt.horiz)
		}
		if got := tt.plane.VertAxis(); got != tt.vert {
			t.Errorf("%s.VertAxis() = %s, want %s", tt.plane, got, tt.vert)
		}
	}
}
