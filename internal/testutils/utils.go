package testutils

import (
	. "github.com/onsi/gomega"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/quantity"
)

// Tolerance is the relative and absolute tolerance of value comparisons in tests.
const Tolerance = 1e-12

// MatchArray checks the values of an array within Tolerance and its unit annotation. An empty
// unit means the array must have no annotation.
func MatchArray(actual *array.DataArray, values []float64, unit string) {
	Expect(actual).NotTo(BeNil())
	Expect(actual.IsBool()).To(BeFalse(), "array should hold numbers")
	expected, err := actual.WithData(values)
	Expect(err).NotTo(HaveOccurred(), "array should have %d elements", len(values))
	Expect(array.AllClose(actual, expected, Tolerance)).To(BeTrue(),
		"values %v should be close to %v", actual.Values(), values)
	MatchUnits(actual, unit)
}

// MatchBools checks that an array holds the given booleans and carries no unit.
func MatchBools(actual *array.DataArray, values []bool) {
	Expect(actual).NotTo(BeNil())
	Expect(actual.IsBool()).To(BeTrue(), "array should hold booleans")
	Expect(actual.Bools()).To(Equal(values))
	MatchUnits(actual, "")
}

// MatchUnits checks the raw unit annotation of an array.
func MatchUnits(actual *array.DataArray, unit string) {
	v, ok := actual.Attr(quantity.UnitsAttr)
	if unit == "" {
		Expect(ok).To(BeFalse(), "array should carry no units, got %q", v)
		return
	}
	Expect(ok).To(BeTrue(), "array should carry units %q", unit)
	Expect(v).To(Equal(unit))
}
