// Package view provides the anatomical plane definitions, the shared 3D
// cursor, and the coordinate mapping between volume-index space and each
// plane's display-pixel space.
package view

// Axis identifies one of the three volume axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Axes lists the volume axes in index order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// Plane identifies one of the three anatomical viewing planes.
type Plane int

const (
	Axial    Plane = iota // fixes z, displays (x, y)
	Sagittal              // fixes x, displays (y, z)
	Coronal               // fixes y, displays (x, z)
)

func (p Plane) String() string {
	switch p {
	case Axial:
		return "Axial"
	case Sagittal:
		return "Sagittal"
	case Coronal:
		return "Coronal"
	default:
		return "Unknown"
	}
}

// Planes lists the viewing planes in display order.
var Planes = [3]Plane{Axial, Sagittal, Coronal}

// rule describes how a plane's display space relates to the volume axes.
// horiz runs along display columns and vert along display rows. A flipped
// axis runs opposite its volume direction in display space, so a display
// coordinate d corresponds to volume index dim-d-1.
type rule struct {
	fixed Axis
	horiz Axis
	vert  Axis
	flipH bool
	flipV bool
}

// Every slice is shown rotated 90 degrees and mirrored horizontally, which
// leaves each plane with one flipped display axis at most. The axial view
// flips y vertically, the sagittal view flips y horizontally, and the
// coronal view flips nothing.
var rules = [3]rule{
	Axial:    {fixed: AxisZ, horiz: AxisX, vert: AxisY, flipV: true},
	Sagittal: {fixed: AxisX, horiz: AxisY, vert: AxisZ, flipH: true},
	Coronal:  {fixed: AxisY, horiz: AxisX, vert: AxisZ},
}

// FixedAxis returns the volume axis held constant by the plane.
func (p Plane) FixedAxis() Axis { return rules[p].fixed }

// HorizAxis returns the volume axis shown along the plane's display columns.
func (p Plane) HorizAxis() Axis { return rules[p].horiz }

// VertAxis returns the volume axis shown along the plane's display rows.
func (p Plane) VertAxis() Axis { return rules[p].vert }
