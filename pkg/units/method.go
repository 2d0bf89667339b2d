package units

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Method is a named transformation of values carrying a unit. Methods must return exactly one
// value per input value so that they can be applied to a single placeholder value as well as to
// every block of an array.
type Method func(values []float64, u Unit, args ...any) ([]float64, Unit, error)

var methods = map[string]Method{
	"to":        methodTo,
	"decompose": methodDecompose,
	"si":        methodDecompose,
	"cgs":       methodCGS,
	"abs":       elementwise(math.Abs),
	"neg":       elementwise(func(v float64) float64 { return -v }),
	"square":    power(2, func(v float64) float64 { return v * v }),
	"sqrt":      power(0.5, math.Sqrt),
	"inverse":   power(-1, func(v float64) float64 { return 1 / v }),
}

// LookupMethod returns the named transformation.
func LookupMethod(name string) (Method, error) {
	m, ok := methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method %q", name)
	}
	return m, nil
}

// MethodNames returns the names of the known transformations in alphabetical order.
func MethodNames() []string {
	ret := make([]string, 0, len(methods))
	for name := range methods {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// methodTo converts into the unit given as the first argument (a Unit or a unit string); the
// remaining arguments are equivalencies.
func methodTo(values []float64, u Unit, args ...any) ([]float64, Unit, error) {
	if len(args) == 0 {
		return nil, Unit{}, errors.New("missing target unit")
	}

	target, err := AsUnit(args[0])
	if err != nil {
		return nil, Unit{}, err
	}

	eqs, err := AsEquivalencies(args[1:]...)
	if err != nil {
		return nil, Unit{}, err
	}

	ret, err := Convert(values, u, target, eqs...)
	if err != nil {
		return nil, Unit{}, err
	}
	return ret, target, nil
}

func methodDecompose(values []float64, u Unit, _ ...any) ([]float64, Unit, error) {
	target, _ := u.Decompose()
	ret, err := Convert(values, u, target)
	return ret, target, err
}

func methodCGS(values []float64, u Unit, _ ...any) ([]float64, Unit, error) {
	target, _ := u.CGS()
	ret, err := Convert(values, u, target)
	return ret, target, err
}

func elementwise(f func(float64) float64) Method {
	return func(values []float64, u Unit, _ ...any) ([]float64, Unit, error) {
		ret := make([]float64, len(values))
		for i, v := range values {
			ret[i] = f(v)
		}
		return ret, u, nil
	}
}

func power(p float64, f func(float64) float64) Method {
	return func(values []float64, u Unit, args ...any) ([]float64, Unit, error) {
		target, err := u.Pow(p)
		if err != nil {
			return nil, Unit{}, err
		}
		ret, _, err := elementwise(f)(values, u, args...)
		return ret, target, err
	}
}

// AsUnit converts a Unit, a *Unit or a unit string into a Unit.
func AsUnit(arg any) (Unit, error) {
	switch v := arg.(type) {
	case Unit:
		return v, nil
	case *Unit:
		if v == nil {
			return Unit{}, errors.New("nil unit")
		}
		return *v, nil
	case string:
		return Parse(v)
	case fmt.Stringer:
		return Parse(v.String())
	}
	return Unit{}, fmt.Errorf("argument %#v is not a unit", arg)
}

// AsEquivalencies collects equivalencies given as Equivalency values, slices of them or names.
func AsEquivalencies(args ...any) ([]Equivalency, error) {
	ret := []Equivalency{}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Equivalency:
			ret = append(ret, v)
		case []Equivalency:
			ret = append(ret, v...)
		case string:
			eqs, err := EquivalenciesByName(v)
			if err != nil {
				return nil, err
			}
			ret = append(ret, eqs...)
		default:
			return nil, fmt.Errorf("argument %#v is not an equivalency", arg)
		}
	}
	return ret, nil
}
