// Package accessor provides a fluent builder over the unit-aware operations of an array.
//
//	ret, err := accessor.Units(m).Chain(2).TrueDiv(s).TrueDiv(s).Result()
//
// Chain sets how many operations may be applied in a row, Of redirects the operations to the
// named coordinates of the array. The first error stops the chain and is returned by Result.
package accessor

import (
	"context"
	"errors"
	"fmt"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/operator"
	"github.com/l7mp/xunits/pkg/quantity"
	"github.com/l7mp/xunits/pkg/units"
)

var ErrChainExhausted = errors.New("method chain exhausted")

// Accessor applies unit-aware operations to an array. Accessors are immutable: every call
// returns a new accessor of the result.
type Accessor struct {
	ctx        context.Context
	dispatcher *operator.Dispatcher
	accessed   *array.DataArray
	chain      int
	of         []string
	err        error
}

// Units returns an accessor of an array that allows a single operation.
func Units(da *array.DataArray) *Accessor {
	a := &Accessor{
		ctx:        context.Background(),
		dispatcher: operator.DefaultDispatcher(),
		accessed:   da,
		chain:      1,
	}
	if da == nil {
		a.err = errors.New("nil array")
	}
	return a
}

func (a *Accessor) with(f func(*Accessor)) *Accessor {
	ret := *a
	ret.of = append([]string{}, a.of...)
	f(&ret)
	return &ret
}

// WithContext sets the context of the operations.
func (a *Accessor) WithContext(ctx context.Context) *Accessor {
	return a.with(func(r *Accessor) { r.ctx = ctx })
}

// WithDispatcher sets the dispatcher running the operations.
func (a *Accessor) WithDispatcher(d *operator.Dispatcher) *Accessor {
	return a.with(func(r *Accessor) { r.dispatcher = d })
}

// Chain sets the number of operations that can be applied in a row.
func (a *Accessor) Chain(n int) *Accessor {
	return a.with(func(r *Accessor) {
		if n < 1 && r.err == nil {
			r.err = fmt.Errorf("invalid chain length %d", n)
		}
		r.chain = n
	})
}

// Of redirects the operations to the named coordinates. The array is returned with the
// coordinates replaced by the results.
func (a *Accessor) Of(coords ...string) *Accessor {
	return a.with(func(r *Accessor) {
		for _, name := range coords {
			if r.err != nil {
				break
			}
			if _, ok := r.accessed.Coord(name); !ok {
				r.err = fmt.Errorf("no coordinate %q", name)
			}
		}
		r.of = append([]string{}, coords...)
	})
}

// Result returns the accessed array, or the first error of the chain.
func (a *Accessor) Result() (*array.DataArray, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.accessed, nil
}

// Err returns the first error of the chain.
func (a *Accessor) Err() error { return a.err }

// Remaining returns the number of operations left in the chain.
func (a *Accessor) Remaining() int { return a.chain }

func (a *Accessor) do(fn func(*array.DataArray) (*array.DataArray, error)) *Accessor {
	if a.err != nil {
		return a
	}
	if a.chain < 1 {
		return a.with(func(r *Accessor) { r.err = ErrChainExhausted })
	}

	da := a.accessed
	var err error
	if len(a.of) == 0 {
		da, err = fn(da)
	} else {
		for _, name := range a.of {
			coord, ok := da.Coord(name)
			if !ok {
				err = fmt.Errorf("no coordinate %q", name)
				break
			}
			if coord, err = fn(coord); err != nil {
				break
			}
			if da, err = da.AssignCoord(name, coord); err != nil {
				break
			}
		}
	}

	return a.with(func(r *Accessor) {
		r.err = err
		r.chain--
		if err == nil {
			r.accessed = da
		}
	})
}

func (a *Accessor) Apply(method string, args ...any) *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return a.dispatcher.Apply(a.ctx, da, method, args...)
	})
}

func (a *Accessor) Decompose() *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return a.dispatcher.Decompose(a.ctx, da)
	})
}

func (a *Accessor) Format(format string) *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return a.dispatcher.Format(da, format)
	})
}

func (a *Accessor) Like(other *array.DataArray, eqs ...units.Equivalency) *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return a.dispatcher.Like(a.ctx, da, other, eqs...)
	})
}

func (a *Accessor) Set(u units.Unit, overwrite bool) *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return quantity.Set(da, u, overwrite)
	})
}

func (a *Accessor) SetString(text string, overwrite bool) *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return quantity.SetString(da, text, overwrite)
	})
}

func (a *Accessor) To(u units.Unit, eqs ...units.Equivalency) *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return a.dispatcher.To(a.ctx, da, u, eqs...)
	})
}

func (a *Accessor) ToString(text string, eqs ...units.Equivalency) *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return a.dispatcher.ToString(a.ctx, da, text, eqs...)
	})
}

func (a *Accessor) Unset() *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return quantity.Unset(da), nil
	})
}

// Take applies a binary operator with the accessed array on the left.
func (a *Accessor) Take(op operator.Operator, right quantity.Value) *Accessor {
	return a.do(func(da *array.DataArray) (*array.DataArray, error) {
		return a.dispatcher.Take(a.ctx, da, op, right)
	})
}

func (a *Accessor) Mul(right quantity.Value) *Accessor { return a.Take(operator.OpMul, right) }

func (a *Accessor) Pow(right quantity.Value) *Accessor { return a.Take(operator.OpPow, right) }

func (a *Accessor) MatMul(right quantity.Value) *Accessor { return a.Take(operator.OpMatMul, right) }

func (a *Accessor) TrueDiv(right quantity.Value) *Accessor { return a.Take(operator.OpTrueDiv, right) }

func (a *Accessor) Add(right quantity.Value) *Accessor { return a.Take(operator.OpAdd, right) }

func (a *Accessor) Sub(right quantity.Value) *Accessor { return a.Take(operator.OpSub, right) }

func (a *Accessor) FloorDiv(right quantity.Value) *Accessor {
	return a.Take(operator.OpFloorDiv, right)
}

func (a *Accessor) Mod(right quantity.Value) *Accessor { return a.Take(operator.OpMod, right) }

func (a *Accessor) Lt(right quantity.Value) *Accessor { return a.Take(operator.OpLt, right) }

func (a *Accessor) Le(right quantity.Value) *Accessor { return a.Take(operator.OpLe, right) }

func (a *Accessor) Eq(right quantity.Value) *Accessor { return a.Take(operator.OpEq, right) }

func (a *Accessor) Ne(right quantity.Value) *Accessor { return a.Take(operator.OpNe, right) }

func (a *Accessor) Ge(right quantity.Value) *Accessor { return a.Take(operator.OpGe, right) }

func (a *Accessor) Gt(right quantity.Value) *Accessor { return a.Take(operator.OpGt, right) }
