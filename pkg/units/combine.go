package units

import (
	"fmt"
)

// Tester is the magnitude of the placeholder quantities used in dry runs.
const Tester = 1.0

// Operator is the name of a binary operator.
type Operator string

const (
	OpMul      Operator = "mul"
	OpPow      Operator = "pow"
	OpMatMul   Operator = "matmul"
	OpTrueDiv  Operator = "truediv"
	OpAdd      Operator = "add"
	OpSub      Operator = "sub"
	OpFloorDiv Operator = "floordiv"
	OpMod      Operator = "mod"
	OpLt       Operator = "lt"
	OpLe       Operator = "le"
	OpEq       Operator = "eq"
	OpNe       Operator = "ne"
	OpGe       Operator = "ge"
	OpGt       Operator = "gt"
)

// Operators lists every supported binary operator.
var Operators = []Operator{
	OpMul, OpPow, OpMatMul, OpTrueDiv,
	OpAdd, OpSub, OpFloorDiv, OpMod, OpLt, OpLe, OpEq, OpNe, OpGe, OpGt,
}

// IsComparison reports whether the operator yields a boolean.
func (op Operator) IsComparison() bool {
	switch op {
	case OpLt, OpLe, OpEq, OpNe, OpGe, OpGt:
		return true
	}
	return false
}

// Outcome is the result of a binary operator on two quantities. Unit is nil for comparisons,
// in which case Value is 1 for true and 0 for false.
type Outcome struct {
	Value float64
	Unit  *Unit
}

func quantityOutcome(q Quantity, err error) (Outcome, error) {
	if err != nil {
		return Outcome{}, err
	}
	u := q.Unit
	return Outcome{Value: q.Value, Unit: &u}, nil
}

// Operate applies a binary operator to two quantities. The matrix product of two scalars is
// their product.
func Operate(op Operator, a, b Quantity) (Outcome, error) {
	switch op {
	case OpMul, OpMatMul:
		return quantityOutcome(a.Mul(b), nil)
	case OpTrueDiv:
		return quantityOutcome(a.Div(b), nil)
	case OpPow:
		return quantityOutcome(a.Pow(b))
	case OpAdd:
		return quantityOutcome(a.Add(b))
	case OpSub:
		return quantityOutcome(a.Sub(b))
	case OpFloorDiv:
		return quantityOutcome(a.FloorDiv(b))
	case OpMod:
		return quantityOutcome(a.Mod(b))
	case OpLt, OpLe, OpEq, OpNe, OpGe, OpGt:
		ok, err := a.Compare(op, b)
		if err != nil {
			return Outcome{}, err
		}
		v := 0.0
		if ok {
			v = 1.0
		}
		return Outcome{Value: v}, nil
	}

	return Outcome{}, fmt.Errorf("unknown operator %q", op)
}

// Combine computes the unit of the result of applying op to a value in unit a and a value in
// unit b by operating on placeholder quantities. It returns nil for comparisons.
func Combine(op Operator, a, b Unit) (*Unit, error) {
	return CombineQuantity(op, a, Quantity{Value: Tester, Unit: b})
}

// CombineQuantity is like Combine but uses the given right-hand quantity instead of a
// placeholder. This is needed for the power operator, whose result unit depends on the
// exponent.
func CombineQuantity(op Operator, a Unit, right Quantity) (*Unit, error) {
	out, err := Operate(op, Quantity{Value: Tester, Unit: a}, right)
	if err != nil {
		return nil, err
	}
	return out.Unit, nil
}
