package units

import (
	"fmt"
)

// Convert converts values from one unit into another, optionally through the rules of the given
// equivalencies. Units that cannot be converted yield an ErrUnitsConversion error.
func Convert(values []float64, from, to Unit, eqs ...Equivalency) ([]float64, error) {
	f, err := Converter(from, to, eqs...)
	if err != nil {
		return nil, err
	}

	ret := make([]float64, len(values))
	for i, v := range values {
		ret[i] = f(v)
	}
	return ret, nil
}

// ConvertValue converts a single value.
func ConvertValue(value float64, from, to Unit, eqs ...Equivalency) (float64, error) {
	f, err := Converter(from, to, eqs...)
	if err != nil {
		return 0, err
	}
	return f(value), nil
}

// Converter returns the function that converts values from one unit into another.
func Converter(from, to Unit, eqs ...Equivalency) (func(float64) float64, error) {
	if from.Equal(to) {
		return func(v float64) float64 { return v }, nil
	}

	fs, ts := from.Scale(), to.Scale()
	fromDims, toDims := from.Dimensions(), to.Dimensions()
	// offsets are zero for units other than stand-alone offset units
	fo, _ := from.affine()
	tof, _ := to.affine()

	if sameDimensions(fromDims, toDims) {
		if fo != 0 || tof != 0 {
			return func(v float64) float64 { return (v*fs + fo - tof) / ts }, nil
		}

		r := fs / ts
		return func(v float64) float64 { return v * r }, nil
	}

	for _, eq := range eqs {
		for _, rule := range eq.Rules {
			if sameDimensions(fromDims, rule.From) && sameDimensions(toDims, rule.To) {
				fwd := rule.Forward
				return func(v float64) float64 { return (fwd(v*fs+fo) - tof) / ts }, nil
			}
			if sameDimensions(fromDims, rule.To) && sameDimensions(toDims, rule.From) {
				bwd := rule.Backward
				return func(v float64) float64 { return (bwd(v*fs+fo) - tof) / ts }, nil
			}
		}
	}

	return nil, NewConversionError(fmt.Errorf("%q (%s) and %q (%s) are not convertible",
		from.String(), fromDims.String(), to.String(), toDims.String()))
}
