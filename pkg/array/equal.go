package array

import (
	"maps"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Identical reports whether two arrays have the same name, dimensions, values, element type,
// attributes and coordinates. NaNs compare equal.
func Identical(a, b *DataArray) bool {
	if !sameMeta(a, b) || a.name != b.name || !maps.Equal(a.attrs, b.attrs) {
		return false
	}
	for i := range a.values {
		x, y := a.values[i], b.values[i]
		if x != y && !(math.IsNaN(x) && math.IsNaN(y)) {
			return false
		}
	}
	return sameCoords(a, b, Identical)
}

// AllClose reports whether two arrays have the same dimensions, element type and attributes,
// and values equal within an absolute or relative tolerance.
func AllClose(a, b *DataArray, tol float64) bool {
	if !sameMeta(a, b) || !maps.Equal(a.attrs, b.attrs) {
		return false
	}
	return floats.EqualApprox(a.values, b.values, tol)
}

func sameMeta(a, b *DataArray) bool {
	return a.dtype == b.dtype && slices.Equal(a.dims, b.dims) && slices.Equal(a.shape, b.shape)
}

func sameCoords(a, b *DataArray, eq func(x, y *DataArray) bool) bool {
	if len(a.coords) != len(b.coords) {
		return false
	}
	for k, c := range a.coords {
		o, ok := b.coords[k]
		if !ok || !eq(c, o) {
			return false
		}
	}
	return true
}
