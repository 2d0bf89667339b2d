package operator

import (
	"context"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/quantity"
	"github.com/l7mp/xunits/pkg/units"
)

// Apply applies a named unit method to an array with units. The method is first applied to a
// placeholder value to derive the unit of the result, then to every block of the array.
func (d *Dispatcher) Apply(ctx context.Context, da *array.DataArray, method string, args ...any) (*array.DataArray, error) {
	log := d.log.WithValues("method", method)

	u, err := quantity.Of(quantity.Annotated{DataArray: da}, true)
	if err != nil {
		return nil, err
	}

	m, err := units.LookupMethod(method)
	if err != nil {
		return nil, units.NewConversionError(err)
	}

	_, target, err := m([]float64{units.Tester}, *u, args...)
	if err != nil {
		log.V(4).Info("dry run failed", "units", u.String(), "error", err.Error())
		return nil, units.NewConversionError(err)
	}
	log.V(4).Info("dry run", "units", u.String(), "result-units", target.String())

	ret, err := da.MapBlocks(ctx, func(_ context.Context, b array.Block) (*array.DataArray, error) {
		log.V(8).Info("block", "index", b.Index, "start", b.Start, "end", b.End)
		values, _, err := m(b.Values(), *u, args...)
		if err != nil {
			return nil, err
		}
		return b.WithData(values)
	}, d.concurrency)
	if err != nil {
		return nil, units.NewConversionError(err)
	}

	return quantity.Set(ret, target, true)
}

// To converts an array with units into another unit.
func (d *Dispatcher) To(ctx context.Context, da *array.DataArray, u units.Unit, eqs ...units.Equivalency) (*array.DataArray, error) {
	return d.Apply(ctx, da, "to", u, d.withEquivalencies(eqs))
}

// ToString is like To but takes the unit as text. Invalid text fails the conversion.
func (d *Dispatcher) ToString(ctx context.Context, da *array.DataArray, text string, eqs ...units.Equivalency) (*array.DataArray, error) {
	return d.Apply(ctx, da, "to", text, d.withEquivalencies(eqs))
}

// Like converts an array with units into the unit of another array.
func (d *Dispatcher) Like(ctx context.Context, da, other *array.DataArray, eqs ...units.Equivalency) (*array.DataArray, error) {
	u, err := quantity.Of(quantity.Annotated{DataArray: other}, true)
	if err != nil {
		return nil, err
	}
	return d.To(ctx, da, *u, eqs...)
}

// Decompose converts an array with units into SI base units.
func (d *Dispatcher) Decompose(ctx context.Context, da *array.DataArray) (*array.DataArray, error) {
	return d.Apply(ctx, da, "decompose")
}

// Format rewrites the unit annotation of an array in the given format. The data is unchanged.
func (d *Dispatcher) Format(da *array.DataArray, format string) (*array.DataArray, error) {
	u, err := quantity.Of(quantity.Annotated{DataArray: da}, true)
	if err != nil {
		return nil, err
	}
	d.log.V(4).Info("format", "units", u.String(), "format", format)
	return quantity.SetFormatted(da, *u, format)
}
