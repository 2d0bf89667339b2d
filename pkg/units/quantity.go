package units

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/unit"
)

// Quantity is a scalar value with a unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"units"`
}

// NewQuantity parses the unit and returns the quantity.
func NewQuantity(value float64, text string) (Quantity, error) {
	u, err := Parse(text)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: value, Unit: u}, nil
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit.String())
}

// SI returns the quantity in SI base units as a gonum unit value.
func (q Quantity) SI() *unit.Unit {
	return unit.New(q.Value*q.Unit.Scale(), q.Unit.Dimensions())
}

// To converts the quantity into another unit.
func (q Quantity) To(u Unit, eqs ...Equivalency) (Quantity, error) {
	v, err := ConvertValue(q.Value, q.Unit, u, eqs...)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: u}, nil
}

// in returns the value of other expressed in the unit of q.
func (q Quantity) in(other Quantity) (float64, error) {
	return ConvertValue(other.Value, other.Unit, q.Unit)
}

func (q Quantity) Add(other Quantity) (Quantity, error) {
	v, err := q.in(other)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: q.Value + v, Unit: q.Unit}, nil
}

func (q Quantity) Sub(other Quantity) (Quantity, error) {
	v, err := q.in(other)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: q.Value - v, Unit: q.Unit}, nil
}

// Mod is the floored modulo, the sign of the result follows the divisor.
func (q Quantity) Mod(other Quantity) (Quantity, error) {
	v, err := q.in(other)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: FloorMod(q.Value, v), Unit: q.Unit}, nil
}

// FloorDiv divides two quantities of convertible units and floors the dimensionless quotient.
func (q Quantity) FloorDiv(other Quantity) (Quantity, error) {
	v, err := q.in(other)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: math.Floor(q.Value / v), Unit: Dimensionless}, nil
}

func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{Value: q.Value * other.Value, Unit: q.Unit.Mul(other.Unit)}
}

func (q Quantity) Div(other Quantity) Quantity {
	return Quantity{Value: q.Value / other.Value, Unit: q.Unit.Div(other.Unit)}
}

// Pow raises the quantity to a dimensionless exponent.
func (q Quantity) Pow(exponent Quantity) (Quantity, error) {
	e, err := exponent.Scalar()
	if err != nil {
		return Quantity{}, fmt.Errorf("exponent must be dimensionless: %w", err)
	}
	u, err := q.Unit.Pow(e)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: math.Pow(q.Value, e), Unit: u}, nil
}

// Scalar returns the value of a dimensionless quantity as a pure number.
func (q Quantity) Scalar() (float64, error) {
	return ConvertValue(q.Value, q.Unit, Dimensionless)
}

// Compare compares two quantities of convertible units.
func (q Quantity) Compare(op Operator, other Quantity) (bool, error) {
	v, err := q.in(other)
	if err != nil {
		return false, err
	}
	return CompareValues(op, q.Value, v)
}

// CompareValues evaluates a comparison operator on two numbers.
func CompareValues(op Operator, a, b float64) (bool, error) {
	switch op {
	case OpLt:
		return a < b, nil
	case OpLe:
		return a <= b, nil
	case OpEq:
		return a == b, nil
	case OpNe:
		return a != b, nil
	case OpGe:
		return a >= b, nil
	case OpGt:
		return a > b, nil
	}
	return false, fmt.Errorf("%q is not a comparison operator", op)
}

// FloorMod is the modulo that rounds the quotient towards negative infinity.
func FloorMod(a, b float64) float64 {
	return a - b*math.Floor(a/b)
}
