package operator

import (
	"context"
	"errors"
	"math"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/quantity"
	"github.com/l7mp/xunits/pkg/units"
)

var arithmetic = map[Operator]array.BinaryFunc{
	OpMul:      func(a, b float64) float64 { return a * b },
	OpTrueDiv:  func(a, b float64) float64 { return a / b },
	OpPow:      math.Pow,
	OpAdd:      func(a, b float64) float64 { return a + b },
	OpSub:      func(a, b float64) float64 { return a - b },
	OpFloorDiv: func(a, b float64) float64 { return math.Floor(a / b) },
	OpMod:      units.FloorMod,
}

var comparison = map[Operator]array.CompareFunc{
	OpLt: func(a, b float64) bool { return a < b },
	OpLe: func(a, b float64) bool { return a <= b },
	OpEq: func(a, b float64) bool { return a == b },
	OpNe: func(a, b float64) bool { return a != b },
	OpGe: func(a, b float64) bool { return a >= b },
	OpGt: func(a, b float64) bool { return a > b },
}

// Take performs "left op right" considering units. The left array must carry a unit; a right
// operand without a unit counts as dimensionless. For same-units operators the right operand is
// converted into the unit of the left one first. The result carries the unit derived in the
// dry run, or no unit for comparisons.
func (d *Dispatcher) Take(ctx context.Context, left *array.DataArray, op Operator, right quantity.Value) (*array.DataArray, error) {
	category, err := CategoryOf(op)
	if err != nil {
		return nil, err
	}
	log := d.log.WithValues("operator", op, "category", category.String())

	lu, err := quantity.Of(quantity.Annotated{DataArray: left}, true)
	if err != nil {
		return nil, err
	}
	ru, err := quantity.Of(right, false)
	if err != nil {
		return nil, err
	}
	rightUnit := units.Dimensionless
	if ru != nil {
		rightUnit = *ru
	}

	// a scaled dimensionless base raised to varying powers is taken in plain numbers, since no
	// single scaled unit describes the result
	if op == OpPow && lu.IsDimensionless() && !lu.Equal(units.Dimensionless) && !uniformExponent(right) {
		log.V(4).Info("converting base to plain numbers", "left-units", lu.String())
		left, err = d.To(ctx, left, units.Dimensionless)
		if err != nil {
			return nil, err
		}
		lu = &units.Dimensionless
	}

	result, err := d.dryRun(op, category, *lu, rightUnit, right)
	if err != nil {
		log.V(4).Info("dry run failed", "left-units", lu.String(), "right-units", rightUnit.String(),
			"error", err.Error())
		return nil, units.NewConversionError(err)
	}
	log.V(4).Info("dry run", "left-units", lu.String(), "right-units", rightUnit.String(),
		"result-units", unitString(result))

	operand, err := d.operand(ctx, op, category, *lu, ru, right)
	if err != nil {
		return nil, units.NewConversionError(err)
	}

	ret, err := d.execute(ctx, left, op, operand)
	if err != nil {
		return nil, units.NewConversionError(err)
	}

	if result == nil {
		return quantity.Unset(ret), nil
	}
	return quantity.Set(ret, *result, true)
}

// dryRun derives the unit of the result on placeholder quantities. Equality operators are checked
// as "lt" so that inconvertible units are rejected. For same-units operators the placeholder is
// converted into the left unit first, honoring the equivalencies of the dispatcher.
func (d *Dispatcher) dryRun(op Operator, category Category, lu, ru units.Unit, right quantity.Value) (*units.Unit, error) {
	placeholder := units.Quantity{Value: units.Tester, Unit: ru}

	switch {
	case op == OpPow:
		exponent, err := exponentOf(lu, ru, right)
		if err != nil {
			return nil, err
		}
		placeholder = exponent
	case category == SameUnits:
		q, err := placeholder.To(lu, d.equivalencies...)
		if err != nil {
			return nil, err
		}
		placeholder = q
	}

	if op == OpEq || op == OpNe {
		op = OpLt
	}

	return units.CombineQuantity(op, lu, placeholder)
}

// exponentOf returns the exponent of a power. An array exponent must be uniform unless the base
// is dimensionless.
func exponentOf(lu, ru units.Unit, right quantity.Value) (units.Quantity, error) {
	switch x := right.(type) {
	case quantity.Unitless:
		return units.Quantity{Value: float64(x), Unit: units.Dimensionless}, nil
	case quantity.Quantity:
		return x.Quantity, nil
	case quantity.Annotated:
		if x.DataArray == nil {
			return units.Quantity{}, errors.New("nil array operand")
		}
		values := x.Values()
		switch {
		case len(values) == 0:
			return units.Quantity{Value: units.Tester, Unit: ru}, nil
		case uniformExponent(x):
			return units.Quantity{Value: values[0], Unit: ru}, nil
		case lu.Equal(units.Dimensionless):
			return units.Quantity{Value: units.Tester, Unit: ru}, nil
		}
		return units.Quantity{}, errors.New("exponent array must be uniform for a base with units")
	}
	return units.Quantity{}, errors.New("invalid exponent")
}

// uniformExponent reports whether the exponent has the same value everywhere. Scalars always do.
func uniformExponent(right quantity.Value) bool {
	x, ok := right.(quantity.Annotated)
	if !ok || x.DataArray == nil {
		return true
	}
	values := x.Values()
	for _, v := range values {
		if v != values[0] {
			return false
		}
	}
	return true
}

// operand returns the right operand of the real operation as an array, converted as the
// operator category requires. Scalars become 0-d arrays.
func (d *Dispatcher) operand(ctx context.Context, op Operator, category Category, lu units.Unit, ru *units.Unit, right quantity.Value) (*array.DataArray, error) {
	var target *units.Unit
	switch {
	case op == OpPow:
		target = &units.Dimensionless
	case category == SameUnits:
		target = &lu
	}

	switch x := right.(type) {
	case quantity.Unitless:
		return array.NewScalar(float64(x))

	case quantity.Quantity:
		v := x.Value
		if target != nil {
			q, err := x.To(*target, d.equivalencies...)
			if err != nil {
				return nil, err
			}
			v = q.Value
		}
		return array.NewScalar(v)

	case quantity.Annotated:
		if x.DataArray == nil {
			return nil, errors.New("nil array operand")
		}
		if target == nil || ru == nil {
			return x.DataArray, nil
		}
		return d.To(ctx, x.DataArray, *target)
	}

	return nil, errors.New("invalid operand")
}

// execute runs the real operation. Elementwise operators run block-wise along the first
// dimension of left; the matrix product runs on the full arrays.
func (d *Dispatcher) execute(ctx context.Context, left *array.DataArray, op Operator, right *array.DataArray) (*array.DataArray, error) {
	if op == OpMatMul {
		d.log.V(8).Info("matrix product", "left-dims", left.Dims(), "right-dims", right.Dims())
		return array.MatMul(left, right)
	}

	var kernel func(a, b *array.DataArray) (*array.DataArray, error)
	if fn, ok := arithmetic[op]; ok {
		kernel = func(a, b *array.DataArray) (*array.DataArray, error) { return array.Binary(a, b, fn) }
	} else if fn, ok := comparison[op]; ok {
		kernel = func(a, b *array.DataArray) (*array.DataArray, error) { return array.Compare(a, b, fn) }
	} else {
		return nil, NewInvalidOperatorError(string(op))
	}

	return left.MapBlocks(ctx, func(_ context.Context, b array.Block) (*array.DataArray, error) {
		operand := right
		if b.NDim() > 0 {
			if _, ok := right.Size(b.Dims()[0]); ok {
				sliced, err := right.Slice(b.Dims()[0], b.Start, b.End)
				if err != nil {
					return nil, err
				}
				operand = sliced
			}
		}
		d.log.V(8).Info("block", "operator", op, "index", b.Index, "start", b.Start, "end", b.End)
		return kernel(b.DataArray, operand)
	}, d.concurrency)
}

func unitString(u *units.Unit) string {
	if u == nil {
		return "<none>"
	}
	return u.String()
}
