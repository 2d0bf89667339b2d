package expression

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/quantity"
	"github.com/l7mp/xunits/pkg/util"
)

func IsList(d any) bool {
	dv := reflect.ValueOf(d)
	return dv.Kind() == reflect.Slice || dv.Kind() == reflect.Array
}

func AsList(d any) ([]any, error) {
	if !IsList(d) {
		return nil, fmt.Errorf("argument is not a list: %s", util.Stringify(d))
	}

	ret, ok := d.([]any)
	if !ok {
		return nil, fmt.Errorf("failed to convert argument into a list: %s", util.Stringify(d))
	}

	return ret, nil
}

func AsBool(d any) (bool, error) {
	if d == nil {
		return false, errors.New("argument is nil")
	}

	if reflect.ValueOf(d).Kind() == reflect.Bool {
		return reflect.ValueOf(d).Bool(), nil
	}
	return false, fmt.Errorf("argument is not a boolean: %s", util.Stringify(d))
}

func AsString(d any) (string, error) {
	if d == nil {
		return "", errors.New("argument is nil")
	}

	if reflect.ValueOf(d).Kind() == reflect.String {
		return reflect.ValueOf(d).String(), nil
	}

	return "", fmt.Errorf("argument is not a string: %s", util.Stringify(d))
}

func AsStringList(d any) ([]string, error) {
	if !IsList(d) {
		return []string{}, fmt.Errorf("argument is not a list: %s", util.Stringify(d))
	}

	dv := reflect.ValueOf(d)
	ret := []string{}
	for i := 0; i < dv.Len(); i++ {
		arg, err := AsString(dv.Index(i).Interface())
		if err != nil {
			return []string{}, err
		}
		ret = append(ret, arg)
	}
	return ret, nil
}

func AsInt(d any) (int64, error) {
	if d == nil {
		return int64(0), errors.New("argument is nil")
	}

	switch reflect.ValueOf(d).Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(d).Int(), nil
	case reflect.String:
		i, err := strconv.ParseInt(d.(string), 10, 64)
		if err == nil {
			return i, nil
		}
	}

	return 0, fmt.Errorf("argument is not an int: %s", util.Stringify(d))
}

func AsFloat(d any) (float64, error) {
	if d == nil {
		return 0.0, errors.New("argument is nil")
	}

	v := reflect.ValueOf(d)
	switch v.Kind() { //nolint:exhaustive
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(d.(string), 64)
		if err == nil {
			return f, nil
		}
	}

	return 0.0, fmt.Errorf("argument is not a float: %s", util.Stringify(d))
}

func AsMap(d any) (map[string]any, error) {
	ret, ok := d.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to convert argument into a map: %s", util.Stringify(d))
	}

	return ret, nil
}

// AsExpOrExpList returns an expression list, or a single expression as a list.
func AsExpOrExpList(d any) ([]Expression, error) {
	exp, ok := d.(Expression)
	if !ok {
		var expp *Expression
		expp, ok = d.(*Expression)
		if ok && expp != nil {
			exp = *expp
		} else {
			ok = false
		}
	}
	if !ok {
		return nil, fmt.Errorf("argument is not an expression: %s", util.Stringify(d))
	}

	if exp.Op == "@list" && exp.Arg == nil { //nolint:goconst
		ret, ok := exp.Literal.([]Expression)
		if !ok {
			return nil, fmt.Errorf("internal error: list expression should contain a literal list: %s",
				exp.String())
		}
		return ret, nil
	}

	return []Expression{exp}, nil
}

// AsArray returns a labeled array.
func AsArray(d any) (*array.DataArray, error) {
	da, ok := d.(*array.DataArray)
	if !ok || da == nil {
		return nil, fmt.Errorf("argument is not an array: %s", util.Stringify(d))
	}
	return da, nil
}

// AsValue returns an operand of a unit-aware operation: an array, a quantity or a number.
func AsValue(d any) (quantity.Value, error) {
	return quantity.From(d)
}
