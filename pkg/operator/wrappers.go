package operator

import (
	"context"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/quantity"
	"github.com/l7mp/xunits/pkg/units"
)

// The package-level functions below run on the default dispatcher.

// Take performs "left op right" considering units.
func Take(left *array.DataArray, op Operator, right quantity.Value) (*array.DataArray, error) {
	return DefaultDispatcher().Take(context.Background(), left, op, right)
}

// Mul computes "left * right".
func Mul(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpMul, right)
}

// Pow computes "left ** right".
func Pow(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpPow, right)
}

// MatMul computes "left @ right".
func MatMul(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpMatMul, right)
}

// TrueDiv computes "left / right".
func TrueDiv(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpTrueDiv, right)
}

// Add computes "left + right".
func Add(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpAdd, right)
}

// Sub computes "left - right".
func Sub(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpSub, right)
}

// FloorDiv computes "left // right".
func FloorDiv(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpFloorDiv, right)
}

// Mod computes "left % right".
func Mod(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpMod, right)
}

// Lt computes "left < right".
func Lt(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpLt, right)
}

// Le computes "left <= right".
func Le(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpLe, right)
}

// Eq computes "left == right".
func Eq(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpEq, right)
}

// Ne computes "left != right".
func Ne(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpNe, right)
}

// Ge computes "left >= right".
func Ge(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpGe, right)
}

// Gt computes "left > right".
func Gt(left *array.DataArray, right quantity.Value) (*array.DataArray, error) {
	return Take(left, OpGt, right)
}

// Apply applies a named unit method to an array with units.
func Apply(da *array.DataArray, method string, args ...any) (*array.DataArray, error) {
	return DefaultDispatcher().Apply(context.Background(), da, method, args...)
}

// To converts an array with units into another unit.
func To(da *array.DataArray, u units.Unit, eqs ...units.Equivalency) (*array.DataArray, error) {
	return DefaultDispatcher().To(context.Background(), da, u, eqs...)
}

// ToString converts an array with units into the unit given as text.
func ToString(da *array.DataArray, text string, eqs ...units.Equivalency) (*array.DataArray, error) {
	return DefaultDispatcher().ToString(context.Background(), da, text, eqs...)
}

// Like converts an array with units into the unit of another array.
func Like(da, other *array.DataArray, eqs ...units.Equivalency) (*array.DataArray, error) {
	return DefaultDispatcher().Like(context.Background(), da, other, eqs...)
}

// Decompose converts an array with units into SI base units.
func Decompose(da *array.DataArray) (*array.DataArray, error) {
	return DefaultDispatcher().Decompose(context.Background(), da)
}

// Format rewrites the unit annotation of an array in the given format.
func Format(da *array.DataArray, format string) (*array.DataArray, error) {
	return DefaultDispatcher().Format(da, format)
}
