package units

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// Factor is a single unit symbol raised to an integer power.
type Factor struct {
	Symbol string
	Power  int
}

// Unit is an immutable physical unit: a product of unit symbols raised to integer powers. The
// zero value is the dimensionless unit "1".
type Unit struct {
	factors []Factor
}

// Dimensionless is the unit of pure numbers.
var Dimensionless = Unit{}

// newUnit merges equal symbols, drops zero powers and sorts the factors into canonical order:
// power descending, then symbol ascending.
func newUnit(fs []Factor) Unit {
	powers := map[string]int{}
	order := []string{}
	for _, f := range fs {
		if _, ok := powers[f.Symbol]; !ok {
			order = append(order, f.Symbol)
		}
		powers[f.Symbol] += f.Power
	}

	ret := []Factor{}
	for _, s := range order {
		if p := powers[s]; p != 0 {
			ret = append(ret, Factor{Symbol: s, Power: p})
		}
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Power != ret[j].Power {
			return ret[i].Power > ret[j].Power
		}
		return ret[i].Symbol < ret[j].Symbol
	})

	return Unit{factors: ret}
}

// Factors returns a copy of the factors of the unit in canonical order.
func (u Unit) Factors() []Factor {
	ret := make([]Factor, len(u.factors))
	copy(ret, u.factors)
	return ret
}

// String returns the canonical (generic) form of the unit.
func (u Unit) String() string {
	if len(u.factors) == 0 {
		return "1"
	}

	parts := make([]string, len(u.factors))
	for i, f := range u.factors {
		parts[i] = f.Symbol
		if f.Power != 1 {
			parts[i] += strconv.Itoa(f.Power)
		}
	}
	return strings.Join(parts, " ")
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	ret, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = ret
	return nil
}

func (u Unit) Equal(other Unit) bool {
	if len(u.factors) != len(other.factors) {
		return false
	}
	for i := range u.factors {
		if u.factors[i] != other.factors[i] {
			return false
		}
	}
	return true
}

// Scale returns the factor that converts a value in this unit into SI base units.
func (u Unit) Scale() float64 {
	ret := 1.0
	for _, f := range u.factors {
		r, _ := lookup(f.Symbol)
		ret *= math.Pow(r.scale, float64(f.Power))
	}
	return ret
}

// Dimensions returns the physical dimensions of the unit.
func (u Unit) Dimensions() unit.Dimensions {
	ret := unit.Dimensions{}
	for _, f := range u.factors {
		r, _ := lookup(f.Symbol)
		for d, p := range r.dims {
			ret[d] += p * f.Power
			if ret[d] == 0 {
				delete(ret, d)
			}
		}
	}
	return ret
}

// IsDimensionless reports whether the unit has no physical dimension. Note that a dimensionless
// unit may still carry a scale, e.g. "km m-1".
func (u Unit) IsDimensionless() bool {
	return len(u.Dimensions()) == 0
}

// IsConvertible reports whether values of u can be converted into other without
// equivalencies.
func (u Unit) IsConvertible(other Unit) bool {
	return sameDimensions(u.Dimensions(), other.Dimensions())
}

func sameDimensions(a, b unit.Dimensions) bool {
	return unit.DimensionsMatch(unit.New(1, a), unit.New(1, b))
}

// affine returns the offset of a stand-alone offset unit such as deg_C.
func (u Unit) affine() (float64, bool) {
	if len(u.factors) != 1 || u.factors[0].Power != 1 {
		return 0, false
	}
	r, _ := lookup(u.factors[0].Symbol)
	return r.offset, r.offset != 0
}

func (u Unit) Mul(other Unit) Unit {
	return newUnit(append(u.Factors(), other.factors...))
}

func (u Unit) Div(other Unit) Unit {
	fs := u.Factors()
	for _, f := range other.factors {
		fs = append(fs, Factor{Symbol: f.Symbol, Power: -f.Power})
	}
	return newUnit(fs)
}

// Pow raises the unit to a power. Every resulting power must be an integer.
func (u Unit) Pow(exponent float64) (Unit, error) {
	if math.IsNaN(exponent) || math.IsInf(exponent, 0) {
		return Unit{}, fmt.Errorf("invalid exponent %v", exponent)
	}

	fs := make([]Factor, len(u.factors))
	for i, f := range u.factors {
		p := float64(f.Power) * exponent
		r := math.Round(p)
		if math.Abs(p-r) > 1e-9 {
			return Unit{}, fmt.Errorf("fractional power %v of unit %q is not supported",
				exponent, u.String())
		}
		if math.Abs(r) > math.MaxInt32 {
			return Unit{}, fmt.Errorf("power %v of unit %q is out of range", exponent, u.String())
		}
		fs[i] = Factor{Symbol: f.Symbol, Power: int(r)}
	}
	return newUnit(fs), nil
}

// Decompose returns the unit expressed in SI base units together with the scale of the
// original unit relative to the decomposed one.
func (u Unit) Decompose() (Unit, float64) {
	return u.decomposeInto(siBase)
}

// CGS returns the unit expressed in CGS base units together with the scale of the original
// unit relative to the returned one.
func (u Unit) CGS() (Unit, float64) {
	bases := map[unit.Dimension]string{}
	for d, s := range siBase {
		bases[d] = s
	}
	for d, s := range cgsBase {
		bases[d] = s
	}
	return u.decomposeInto(bases)
}

func (u Unit) decomposeInto(bases map[unit.Dimension]string) (Unit, float64) {
	fs := []Factor{}
	for d, p := range u.Dimensions() {
		fs = append(fs, Factor{Symbol: bases[d], Power: p})
	}
	ret := newUnit(fs)
	return ret, u.Scale() / ret.Scale()
}
