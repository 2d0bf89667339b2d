package operator

import (
	"github.com/l7mp/xunits/pkg/units"
)

// Operator is the name of a binary operator.
type Operator = units.Operator

const (
	OpMul      = units.OpMul
	OpPow      = units.OpPow
	OpMatMul   = units.OpMatMul
	OpTrueDiv  = units.OpTrueDiv
	OpAdd      = units.OpAdd
	OpSub      = units.OpSub
	OpFloorDiv = units.OpFloorDiv
	OpMod      = units.OpMod
	OpLt       = units.OpLt
	OpLe       = units.OpLe
	OpEq       = units.OpEq
	OpNe       = units.OpNe
	OpGe       = units.OpGe
	OpGt       = units.OpGt
)

// Category decides how the units of the operands of a binary operator interact.
type Category int

const (
	// AnyUnits operators accept operands in any units and combine them algebraically.
	AnyUnits Category = iota
	// SameUnits operators need convertible units; the right operand is converted into the unit
	// of the left operand first.
	SameUnits
)

func (c Category) String() string {
	switch c {
	case AnyUnits:
		return "any-units"
	case SameUnits:
		return "same-units"
	}
	return "unknown"
}

var categories = map[Operator]Category{
	OpMul:      AnyUnits,
	OpPow:      AnyUnits,
	OpMatMul:   AnyUnits,
	OpTrueDiv:  AnyUnits,
	OpAdd:      SameUnits,
	OpSub:      SameUnits,
	OpFloorDiv: SameUnits,
	OpMod:      SameUnits,
	OpLt:       SameUnits,
	OpLe:       SameUnits,
	OpEq:       SameUnits,
	OpNe:       SameUnits,
	OpGe:       SameUnits,
	OpGt:       SameUnits,
}

// CategoryOf returns the category of an operator.
func CategoryOf(op Operator) (Category, error) {
	c, ok := categories[op]
	if !ok {
		return 0, NewInvalidOperatorError(string(op))
	}
	return c, nil
}

// ParseOperator checks an operator name.
func ParseOperator(name string) (Operator, error) {
	op := Operator(name)
	if _, err := CategoryOf(op); err != nil {
		return "", err
	}
	return op, nil
}
