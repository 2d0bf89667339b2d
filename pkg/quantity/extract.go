package quantity

import (
	"fmt"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/units"
)

// Of returns the unit of a value. A value without a unit gives nil, or an ErrUnitsNotFound error
// when strict is set. A malformed annotation always gives an ErrUnitsNotValid error.
func Of(v Value, strict bool) (*units.Unit, error) {
	switch x := v.(type) {
	case Quantity:
		u := x.Unit
		return &u, nil
	case Annotated:
		if x.DataArray == nil {
			break
		}
		text, ok := x.Attr(UnitsAttr)
		if !ok {
			break
		}
		u, err := units.Parse(text)
		if err != nil {
			return nil, units.NewNotValidError(text, err)
		}
		return &u, nil
	}

	if strict {
		return nil, units.NewNotFoundError(describe(v))
	}
	return nil, nil
}

// FormatOf returns the unit of a value rendered in the given format, the empty string standing
// for the generic format. A value without a unit gives "" unless strict is set.
func FormatOf(v Value, format string, strict bool) (string, error) {
	u, err := Of(v, strict)
	if err != nil || u == nil {
		return "", err
	}
	if format == "" {
		format = units.FormatGeneric
	}
	return u.Format(format)
}

// Set returns a copy of the array annotated with the unit. Unless overwrite is set, an array
// that already carries a unit is rejected with an ErrUnitsExist error.
func Set(da *array.DataArray, u units.Unit, overwrite bool) (*array.DataArray, error) {
	return setText(da, u.String(), overwrite)
}

// SetString is like Set but takes the unit as text, which must be a valid unit. The text is
// stored as given.
func SetString(da *array.DataArray, text string, overwrite bool) (*array.DataArray, error) {
	if _, err := units.Parse(text); err != nil {
		return nil, err
	}
	return setText(da, text, overwrite)
}

// SetFormatted annotates the array with the unit rendered in the given format, overwriting any
// existing annotation. Only the generic, cds, fits and unicode renderings can be read back.
func SetFormatted(da *array.DataArray, u units.Unit, format string) (*array.DataArray, error) {
	text, err := u.Format(format)
	if err != nil {
		return nil, err
	}
	return setText(da, text, true)
}

func setText(da *array.DataArray, text string, overwrite bool) (*array.DataArray, error) {
	if !overwrite {
		u, err := Of(Annotated{da}, false)
		if err != nil {
			return nil, err
		}
		if u != nil {
			return nil, units.NewExistError(describe(Annotated{da}))
		}
	}
	return da.AssignAttrs(array.Attrs{UnitsAttr: text}), nil
}

// Unset returns a copy of the array without a unit annotation.
func Unset(da *array.DataArray) *array.DataArray {
	return da.DropAttrs(UnitsAttr)
}

func describe(v Value) string {
	if a, ok := v.(Annotated); ok {
		if a.DataArray == nil {
			return "<nil>"
		}
		if a.Name() != "" {
			return "array " + a.Name()
		}
		return fmt.Sprintf("array of shape %v", a.Shape())
	}
	if v == nil {
		return "<nil>"
	}
	return v.String()
}
