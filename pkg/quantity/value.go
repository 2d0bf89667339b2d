package quantity

import (
	"fmt"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/units"
)

// UnitsAttr is the attribute holding the unit annotation of an array.
const UnitsAttr = "units"

// Value is an operand of a unit-aware operation: a Unitless number, a unit-bearing Quantity or
// an Annotated array. The set of implementations is closed.
type Value interface {
	isValue()
	fmt.Stringer
}

// Unitless is a plain number without a unit.
type Unitless float64

func (Unitless) isValue() {}

func (u Unitless) String() string { return fmt.Sprintf("%g", float64(u)) }

// Quantity is a scalar with a unit.
type Quantity struct {
	units.Quantity
}

func (Quantity) isValue() {}

// NewQuantity parses the unit and returns the quantity.
func NewQuantity(value float64, text string) (Quantity, error) {
	q, err := units.NewQuantity(value, text)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{q}, nil
}

// MustQuantity is like NewQuantity but panics on error.
func MustQuantity(value float64, text string) Quantity {
	q, err := NewQuantity(value, text)
	if err != nil {
		panic(err)
	}
	return q
}

// Annotated is a labeled array that may carry a unit annotation in its attributes.
type Annotated struct {
	*array.DataArray
}

func (Annotated) isValue() {}

// Annotate wraps an array after checking that its annotation, if any, is a valid unit.
func Annotate(da *array.DataArray) (Annotated, error) {
	a := Annotated{da}
	if _, err := Of(a, false); err != nil {
		return Annotated{}, err
	}
	return a, nil
}

// From converts a Go value into an operand: numbers become Unitless, units.Quantity becomes
// Quantity and arrays become Annotated.
func From(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case float64:
		return Unitless(x), nil
	case float32:
		return Unitless(x), nil
	case int:
		return Unitless(x), nil
	case int64:
		return Unitless(x), nil
	case units.Quantity:
		return Quantity{x}, nil
	case *array.DataArray:
		if x == nil {
			return nil, fmt.Errorf("nil array")
		}
		return Annotated{x}, nil
	}
	return nil, fmt.Errorf("cannot use %#v of type %T as an operand", v, v)
}
