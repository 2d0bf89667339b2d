// Package units implements the unit model: parsing and formatting of physical units, conversion
// between convertible units (optionally through equivalencies such as wavelength to frequency),
// scalar quantity algebra and the dry-run combination of units under binary operators.
//
// A Unit is an immutable product of unit symbols raised to integer powers, e.g. "km s-1". Units
// are compared structurally: "km m" and "m2" describe the same dimension but are different
// units. Physical dimensions are represented with gonum's unit.Dimensions.
//
// Example usage:
//
//	km := units.MustParse("km")
//	u, err := units.Combine(units.OpMul, km, units.MustParse("m")) // "km m"
//	vs, err := units.Convert([]float64{1, 2}, km, units.MustParse("mm"))
package units
