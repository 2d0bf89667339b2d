package expression

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/operator"
)

// RefPrefix marks a string literal as a reference to a named array.
const RefPrefix = "$"

type Unstructured = map[string]any

// EvalCtx is the environment of an evaluation: the named arrays that references resolve to and
// the dispatcher that runs the unit-aware operations.
type EvalCtx struct {
	Arrays     map[string]*array.DataArray
	Dispatcher *operator.Dispatcher
	Context    context.Context
	Log        logr.Logger
}

func (ctx EvalCtx) dispatcher() *operator.Dispatcher {
	if ctx.Dispatcher == nil {
		return operator.DefaultDispatcher()
	}
	return ctx.Dispatcher
}

func (ctx EvalCtx) context() context.Context {
	if ctx.Context == nil {
		return context.Background()
	}
	return ctx.Context
}

// Expression is a node of an expression tree. Literals store their value in Literal, operators
// store their argument in Arg.
type Expression struct {
	Op      string
	Arg     *Expression
	Literal any
}

func (e *Expression) Evaluate(ctx EvalCtx) (any, error) {
	if len(e.Op) == 0 {
		return nil, NewInvalidArgumentsError(fmt.Sprintf("empty operator in expession %q", e.String()))
	}

	switch e.Op {
	case "@bool":
		lit, err := e.literal(ctx)
		if err != nil {
			return nil, err
		}

		v, err := AsBool(lit)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", v)

		return v, nil

	case "@int":
		lit, err := e.literal(ctx)
		if err != nil {
			return nil, err
		}

		v, err := AsInt(lit)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", v)

		return v, nil

	case "@float":
		lit, err := e.literal(ctx)
		if err != nil {
			return nil, err
		}

		v, err := AsFloat(lit)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", v)

		return v, nil

	case "@string":
		lit, err := e.literal(ctx)
		if err != nil {
			return nil, err
		}

		str, err := AsString(lit)
		if err != nil {
			return nil, NewExpressionError(e, err)
		}

		name, ok := strings.CutPrefix(str, RefPrefix)
		if !ok {
			ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", str)
			return str, nil
		}

		da, ok := ctx.Arrays[name]
		if !ok {
			return nil, NewExpressionError(e, NewUnknownArrayError(name))
		}

		if l := ctx.Log.V(8); l.Enabled() {
			l.Info("eval ready", "expression", e.String(), "result", da.String())
		}

		return da, nil

	case "@list":
		ret := []any{}
		if e.Arg != nil {
			// eval stacked expressions stored in e.Arg
			v, err := e.Arg.Evaluate(ctx)
			if err != nil {
				return nil, err
			}

			vs, ok := v.([]any)
			if !ok {
				return nil, NewExpressionError(e, errors.New("argument must be a list"))
			}

			ret = vs
		} else {
			// literal lists stored in Literal
			vs, ok := e.Literal.([]Expression)
			if !ok {
				return nil, NewExpressionError(e,
					errors.New("argument must be an expression list"))
			}

			for _, exp := range vs {
				res, err := exp.Evaluate(ctx)
				if err != nil {
					return nil, err
				}
				ret = append(ret, res)
			}
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", ret)

		return ret, nil

	case "@dict":
		ret := Unstructured{}
		if e.Arg != nil {
			// eval stacked expressions stored in e.Arg
			v, err := e.Arg.Evaluate(ctx)
			if err != nil {
				return nil, err
			}

			vs, ok := v.(Unstructured)
			if !ok {
				return nil, NewExpressionError(e, errors.New("argument must be a map"))
			}
			ret = vs
		} else {
			vm, ok := e.Literal.(map[string]Expression)
			if !ok {
				return nil, NewExpressionError(e,
					errors.New("argument must be a string->expression map"))
			}

			for k, exp := range vm {
				res, err := exp.Evaluate(ctx)
				if err != nil {
					return nil, err
				}
				ret[k] = res
			}
		}

		ctx.Log.V(8).Info("eval ready", "expression", e.String(), "result", ret)

		return ret, nil
	}

	return e.evalUnitOp(ctx)
}

// literal returns the literal of a terminal expression, evaluating a stacked argument if any.
func (e *Expression) literal(ctx EvalCtx) (any, error) {
	if e.Arg == nil {
		return e.Literal, nil
	}
	return e.Arg.Evaluate(ctx)
}

// evalArgs evaluates the arguments of an operator and checks their number; hi < 0 means no
// upper bound.
func (e *Expression) evalArgs(ctx EvalCtx, lo, hi int) ([]any, error) {
	if e.Arg == nil {
		return nil, NewExpressionError(e, errors.New("missing arguments"))
	}

	args, err := AsExpOrExpList(e.Arg)
	if err != nil {
		return nil, NewExpressionError(e, err)
	}

	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return nil, NewExpressionError(e, fmt.Errorf("invalid number of arguments: %d", len(args)))
	}

	ret := make([]any, len(args))
	for i, exp := range args {
		v, err := exp.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}

	return ret, nil
}
