package volume

import (
	"math"
	"testing"

	"mpr-viewer/internal/view"
)

// testVolume builds a 4x3x2 volume where every voxel encodes its own
// coordinates: value = x + 10*y + 100*z. Orientation mistakes then show up
// as wrong digits instead of silently matching.
func testVolume(t *testing.T) *Volume {
	t.Helper()
	nx, ny, nz := 4, 3, 2
	data := make([]float64, nx*ny*nz)
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				data[x+nx*(y+ny*z)] = float64(x + 10*y + 100*z)
			}
		}
	}
	v, err := New(data, nx, ny, nz)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name       string
		dataLen    int
		nx, ny, nz int
	}{
		{"short data", 5, 2, 2, 2},
		{"long data", 9, 2, 2, 2},
		{"zero dimension", 0, 2, 0, 2},
		{"negative dimension", 8, -2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(make([]float64, tt.dataLen), tt.nx, tt.ny, tt.nz)
			if err == nil {
				t.Errorf("New(%d values, %d, %d, %d) succeeded, want error",
					tt.dataLen, tt.nx, tt.ny, tt.nz)
			}
		})
	}
}

func TestAtIndexing(t *testing.T) {
	v := testVolume(t)

	// Spot checks of the x-fastest layout.
	tests := []struct {
		x, y, z int
		want    float64
	}{
		{0, 0, 0, 0},
		{3, 0, 0, 3},
		{0, 2, 0, 20},
		{0, 0, 1, 100},
		{3, 2, 1, 123},
	}
	for _, tt := range tests {
		if got := v.At(tt.x, tt.y, tt.z); got != tt.want {
			t.Errorf("At(%d, %d, %d) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	v := testVolume(t)
	min, max := v.MinMax()
	if min != 0 || max != 123 {
		t.Errorf("MinMax() = (%v, %v), want (0, 123)", min, max)
	}
}

func TestPercentiles(t *testing.T) {
	// A plain ramp so the quantiles are easy to reason about.
	n := 100
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(i)
	}
	v, err := New(data, n, 1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	lo, hi := v.Percentiles(0.02, 0.98)
	if lo >= hi {
		t.Fatalf("Percentiles(0.02, 0.98) = (%v, %v), lo not below hi", lo, hi)
	}
	if lo < 0 || lo > 5 {
		t.Errorf("2nd percentile of 0..99 ramp = %v, want near 2", lo)
	}
	if hi < 94 || hi > 99 {
		t.Errorf("98th percentile of 0..99 ramp = %v, want near 97", hi)
	}

	// Repeated calls reuse the sorted copy and agree.
	lo2, hi2 := v.Percentiles(0.02, 0.98)
	if lo2 != lo || hi2 != hi {
		t.Errorf("repeated Percentiles disagree: (%v, %v) then (%v, %v)", lo, hi, lo2, hi2)
	}
}

// TestExtractSliceDims verifies each plane's display dimensions on a
// 4x3x2 volume.
func TestExtractSliceDims(t *testing.T) {
	v := testVolume(t)

	tests := []struct {
		plane view.Plane
		w, h  int
	}{
		{view.Axial, 4, 3},
		{view.Sagittal, 3, 2},
		{view.Coronal, 4, 2},
	}
	for _, tt := range tests {
		s := v.ExtractSlice(tt.plane, 0)
		if s.W != tt.w || s.H != tt.h {
			t.Errorf("ExtractSlice(%s) dims = (%d, %d), want (%d, %d)",
				tt.plane, s.W, s.H, tt.w, tt.h)
		}
		if len(s.Data()) != tt.w*tt.h {
			t.Errorf("ExtractSlice(%s) data length = %d, want %d",
				tt.plane, len(s.Data()), tt.w*tt.h)
		}
	}
}

// TestExtractSliceOrientation verifies the display orientation voxel by
// voxel: every plane's section is rotated 90 degrees counterclockwise and
// mirrored horizontally relative to the raw array.
func TestExtractSliceOrientation(t *testing.T) {
	v := testVolume(t)
	nx, ny, nz := v.Dims()

	// Axial at z: pixel (col, row) shows voxel (nx-col-1, ny-row-1, z).
	z := 1
	s := v.ExtractSlice(view.Axial, z)
	for row := 0; row < s.H; row++ {
		for col := 0; col < s.W; col++ {
			want := v.At(nx-col-1, ny-row-1, z)
			if got := s.At(col, row); got != want {
				t.Errorf("axial pixel (%d, %d) = %v, want %v", col, row, got, want)
			}
		}
	}

	// Sagittal at x: pixel (col, row) shows voxel (x, ny-col-1, nz-row-1).
	x := 2
	s = v.ExtractSlice(view.Sagittal, x)
	for row := 0; row < s.H; row++ {
		for col := 0; col < s.W; col++ {
			want := v.At(x, ny-col-1, nz-row-1)
			if got := s.At(col, row); got != want {
				t.Errorf("sagittal pixel (%d, %d) = %v, want %v", col, row, got, want)
			}
		}
	}

	// Coronal at y: pixel (col, row) shows voxel (nx-col-1, y, nz-row-1).
	y := 1
	s = v.ExtractSlice(view.Coronal, y)
	for row := 0; row < s.H; row++ {
		for col := 0; col < s.W; col++ {
			want := v.At(nx-col-1, y, nz-row-1)
			if got := s.At(col, row); got != want {
				t.Errorf("coronal pixel (%d, %d) = %v, want %v", col, row, got, want)
			}
		}
	}
}

// TestExtractSliceClampsIndex verifies that out-of-range slice indices are
// clamped to the fixed axis instead of panicking.
func TestExtractSliceClampsIndex(t *testing.T) {
	v := testVolume(t)

	for _, plane := range view.Planes {
		max := v.Dim(plane.FixedAxis()) - 1
		over := v.ExtractSlice(plane, max+10)
		edge := v.ExtractSlice(plane, max)
		under := v.ExtractSlice(plane, -3)
		zero := v.ExtractSlice(plane, 0)

		if !slicesEqual(over.Data(), edge.Data()) {
			t.Errorf("%s: index beyond range not clamped to %d", plane, max)
		}
		if !slicesEqual(under.Data(), zero.Data()) {
			t.Errorf("%s: negative index not clamped to 0", plane)
		}
	}
}

func slicesEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			return false
		}
	}
	return true
}
