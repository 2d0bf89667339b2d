package testutils

import (
	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/quantity"
)

var (
	// KM is [1, 2, 3] km.
	KM = MustSet(array.MustNew([]float64{1, 2, 3}), "km")

	// MM is the same distances in millimeters.
	MM = MustSet(array.MustNew([]float64{1e6, 2e6, 3e6}), "mm")

	// SC1 is a plain number.
	SC1 = quantity.Unitless(2)

	// SC2 is a unit-bearing scalar.
	SC2 = quantity.MustQuantity(2000, "m")
)

// MustSet annotates an array with a unit and panics on error.
func MustSet(da *array.DataArray, text string) *array.DataArray {
	ret, err := quantity.SetString(da, text, true)
	if err != nil {
		panic(err)
	}
	return ret
}

// Ann wraps an array as an operand.
func Ann(da *array.DataArray) quantity.Annotated {
	return quantity.Annotated{DataArray: da}
}
