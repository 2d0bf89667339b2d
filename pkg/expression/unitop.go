package expression

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/json"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/operator"
	"github.com/l7mp/xunits/pkg/quantity"
	"github.com/l7mp/xunits/pkg/units"
)

// evalUnitOp evaluates the array constructors and the unit-aware operators.
func (e *Expression) evalUnitOp(ctx EvalCtx) (any, error) {
	if op, err := operator.ParseOperator(strings.TrimPrefix(e.Op, "@")); err == nil {
		args, err := e.evalArgs(ctx, 2, 2)
		if err != nil {
			return nil, err
		}
		return e.take(ctx, args[0], op, args[1])
	}

	switch e.Op {
	case "@take":
		args, err := e.evalArgs(ctx, 3, 3)
		if err != nil {
			return nil, err
		}

		name, err := AsString(args[1])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		op, err := operator.ParseOperator(name)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		return e.take(ctx, args[0], op, args[2])

	case "@array":
		if e.Arg == nil {
			return nil, NewExpressionError(e, errors.New("missing arguments"))
		}

		v, err := e.Arg.Evaluate(ctx)
		if err != nil {
			return nil, err
		}

		spec, err := AsMap(v)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		da, err := newArray(spec)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		if l := ctx.Log.V(8); l.Enabled() {
			l.Info("eval ready", "expression", e.String(), "result", da.String())
		}

		return da, nil

	case "@quantity":
		args, err := e.evalArgs(ctx, 2, 2)
		if err != nil {
			return nil, err
		}

		value, err := AsFloat(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		text, err := AsString(args[1])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		q, err := quantity.NewQuantity(value, text)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		if l := ctx.Log.V(8); l.Enabled() {
			l.Info("eval ready", "expression", e.String(), "result", q.String())
		}

		return q, nil

	case "@set":
		args, err := e.evalArgs(ctx, 2, 3)
		if err != nil {
			return nil, err
		}

		da, err := AsArray(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		text, err := AsString(args[1])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		overwrite := false
		if len(args) == 3 {
			if overwrite, err = AsBool(args[2]); err != nil {
				return nil, NewExpressionError(e, err)
			}
		}

		ret, err := quantity.SetString(da, text, overwrite)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		return e.ready(ctx, ret), nil

	case "@unset":
		args, err := e.evalArgs(ctx, 1, 1)
		if err != nil {
			return nil, err
		}

		da, err := AsArray(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		return e.ready(ctx, quantity.Unset(da)), nil

	case "@units":
		args, err := e.evalArgs(ctx, 1, 2)
		if err != nil {
			return nil, err
		}

		v, err := AsValue(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		format := ""
		if len(args) == 2 {
			if format, err = AsString(args[1]); err != nil {
				return nil, NewExpressionError(e, err)
			}
		}

		ret, err := quantity.FormatOf(v, format, true)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", ret)

		return ret, nil

	case "@to":
		args, err := e.evalArgs(ctx, 2, -1)
		if err != nil {
			return nil, err
		}

		da, err := AsArray(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		text, err := AsString(args[1])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		eqs, err := units.AsEquivalencies(args[2:]...)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ret, err := ctx.dispatcher().ToString(ctx.context(), da, text, eqs...)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		return e.ready(ctx, ret), nil

	case "@like":
		args, err := e.evalArgs(ctx, 2, -1)
		if err != nil {
			return nil, err
		}

		da, err := AsArray(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		other, err := AsArray(args[1])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		eqs, err := units.AsEquivalencies(args[2:]...)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ret, err := ctx.dispatcher().Like(ctx.context(), da, other, eqs...)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		return e.ready(ctx, ret), nil

	case "@decompose":
		args, err := e.evalArgs(ctx, 1, 1)
		if err != nil {
			return nil, err
		}

		da, err := AsArray(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ret, err := ctx.dispatcher().Decompose(ctx.context(), da)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		return e.ready(ctx, ret), nil

	case "@format":
		args, err := e.evalArgs(ctx, 2, 2)
		if err != nil {
			return nil, err
		}

		da, err := AsArray(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		format, err := AsString(args[1])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ret, err := ctx.dispatcher().Format(da, format)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		return e.ready(ctx, ret), nil

	case "@apply":
		args, err := e.evalArgs(ctx, 2, -1)
		if err != nil {
			return nil, err
		}

		da, err := AsArray(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		method, err := AsString(args[1])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ret, err := ctx.dispatcher().Apply(ctx.context(), da, method, args[2:]...)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		return e.ready(ctx, ret), nil

	case "@all", "@any":
		args, err := e.evalArgs(ctx, 1, 1)
		if err != nil {
			return nil, err
		}

		da, err := AsArray(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		if !da.IsBool() {
			return nil, NewExpressionError(e, errors.New("argument is not a boolean array"))
		}

		ret := e.Op == "@all"
		for _, b := range da.Bools() {
			if b != ret {
				ret = !ret
				break
			}
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", ret)

		return ret, nil
	case "@query":
		args, err := e.evalArgs(ctx, 2, 2)
		if err != nil {
			return nil, err
		}

		path, err := AsString(args[1])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ret, err := Query(args[0], path)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", ret)

		return ret, nil

	case "@hash":
		args, err := e.evalArgs(ctx, 1, 1)
		if err != nil {
			return nil, err
		}

		ret, err := Hash(args[0])
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", ret)

		return ret, nil
	}

	return nil, NewInvalidArgumentsError(fmt.Sprintf("unknown operator %q in expression %s",
		e.Op, e.String()))
}

func (e *Expression) take(ctx EvalCtx, l any, op operator.Operator, r any) (any, error) {
	left, err := AsArray(l)
	if err != nil {
		return nil, NewExpressionError(e, err)
	}

	right, err := AsValue(r)
	if err != nil {
		return nil, NewExpressionError(e, err)
	}

	ret, err := ctx.dispatcher().Take(ctx.context(), left, op, right)
	if err != nil {
		return nil, NewExpressionError(e, err)
	}

	return e.ready(ctx, ret), nil
}

func (e *Expression) ready(ctx EvalCtx, da *array.DataArray) *array.DataArray {
	if l := ctx.Log.V(8); l.Enabled() {
		l.Info("eval ready", "expression", e.String(), "result", da.String())
	}
	return da
}

// newArray builds an array from its serialized form; the optional "units" key annotates it.
func newArray(spec map[string]any) (*array.DataArray, error) {
	text, hasUnits := spec[quantity.UnitsAttr]
	rest := make(map[string]any, len(spec))
	for k, v := range spec {
		if k != quantity.UnitsAttr {
			rest[k] = v
		}
	}

	b, err := json.Marshal(rest)
	if err != nil {
		return nil, err
	}

	da := &array.DataArray{}
	if err := json.Unmarshal(b, da); err != nil {
		return nil, err
	}

	if !hasUnits {
		return da, nil
	}

	str, err := AsString(text)
	if err != nil {
		return nil, err
	}

	return quantity.SetString(da, str, true)
}
