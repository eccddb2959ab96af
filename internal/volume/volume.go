// Package volume holds the loaded 3D scalar volume and answers
// slice-extraction queries against it.
package volume

import (
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"mpr-viewer/internal/view"
)

// Volume is an immutable 3D grid of scalar intensities indexed (x, y, z)
// with x varying fastest, the storage order NIfTI uses. A volume is
// installed wholesale when a file loads and never mutated afterwards.
type Volume struct {
	data       []float64
	nx, ny, nz int

	dataMin, dataMax float64

	sortOnce sync.Once
	sorted   []float64
}

// New wraps the given intensity data as a volume. The data length must
// match the product of the dimensions.
func New(data []float64, nx, ny, nz int) (*Volume, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("volume dimensions must be positive, got (%d, %d, %d)", nx, ny, nz)
	}
	if len(data) != nx*ny*nz {
		return nil, fmt.Errorf("volume data length %d does not match dimensions (%d, %d, %d)",
			len(data), nx, ny, nz)
	}
	return &Volume{
		data:    data,
		nx:      nx,
		ny:      ny,
		nz:      nz,
		dataMin: floats.Min(data),
		dataMax: floats.Max(data),
	}, nil
}

// Dims returns the volume dimensions.
func (v *Volume) Dims() (nx, ny, nz int) { return v.nx, v.ny, v.nz }

// Dim returns the dimension along one axis.
func (v *Volume) Dim(axis view.Axis) int {
	switch axis {
	case view.AxisX:
		return v.nx
	case view.AxisY:
		return v.ny
	default:
		return v.nz
	}
}

// At returns the intensity at the given volume indices.
func (v *Volume) At(x, y, z int) float64 {
	return v.data[x+v.nx*(y+v.ny*z)]
}

// MinMax returns the global intensity range.
func (v *Volume) MinMax() (min, max float64) {
	return v.dataMin, v.dataMax
}

// Percentiles returns the intensities at the lo and hi quantiles
// (both in [0, 1]). The sorted copy backing the computation is built once
// and reused; volumes are immutable so it never goes stale.
func (v *Volume) Percentiles(lo, hi float64) (float64, float64) {
	v.sortOnce.Do(func() {
		v.sorted = make([]float64, len(v.data))
		copy(v.sorted, v.data)
		sort.Float64s(v.sorted)
	})
	return stat.Quantile(lo, stat.Empirical, v.sorted, nil),
		stat.Quantile(hi, stat.Empirical, v.sorted, nil)
}
