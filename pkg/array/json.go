package array

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/util/json"
)

// dataArrayJSON is the wire form of a DataArray: values are nested lists following the shape.
type dataArrayJSON struct {
	Name   string                `json:"name,omitempty"`
	Dims   []string              `json:"dims,omitempty"`
	Data   any                   `json:"data"`
	DType  string                `json:"dtype,omitempty"`
	Attrs  Attrs                 `json:"attrs,omitempty"`
	Coords map[string]*DataArray `json:"coords,omitempty"`
	Chunks int                   `json:"chunks,omitempty"`
}

func (d *DataArray) MarshalJSON() ([]byte, error) {
	var pos int
	var nest func(ax int) any
	nest = func(ax int) any {
		if ax == len(d.shape) {
			v := d.values[pos]
			pos++
			if d.dtype == Bool {
				return v != 0
			}
			return v
		}
		ret := make([]any, d.shape[ax])
		for i := range ret {
			ret[i] = nest(ax + 1)
		}
		return ret
	}

	w := dataArrayJSON{
		Name:   d.name,
		Dims:   d.dims,
		Data:   nest(0),
		Attrs:  d.attrs,
		Coords: d.coords,
		Chunks: d.chunks,
	}
	if d.dtype == Bool {
		w.DType = Bool.String()
	}
	return json.Marshal(w)
}

func (d *DataArray) UnmarshalJSON(b []byte) error {
	w := dataArrayJSON{}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	values, shape, dtype := []float64{}, []int{}, Float64
	if err := flatten(w.Data, 0, &values, &shape, &dtype); err != nil {
		return err
	}
	if w.DType == Bool.String() {
		dtype = Bool
	}

	opts := []Option{WithShape(shape...), WithName(w.Name), WithAttrs(w.Attrs),
		WithChunks(w.Chunks), withDType(dtype)}
	if w.Dims != nil {
		opts = append(opts, WithDims(w.Dims...))
	}
	for k, c := range w.Coords {
		opts = append(opts, WithCoord(k, c))
	}

	ret, err := New(values, opts...)
	if err != nil {
		return err
	}
	*d = *ret
	return nil
}

// flatten collects the leaves of a nested list and infers its shape, which must be regular.
func flatten(data any, depth int, values *[]float64, shape *[]int, dtype *DType) error {
	list, ok := data.([]any)
	if !ok {
		if depth != len(*shape) {
			return NewShapeError("ragged nested data")
		}
		v, err := leaf(data, dtype)
		if err != nil {
			return err
		}
		*values = append(*values, v)
		return nil
	}

	switch {
	case depth == len(*shape) && len(*values) == 0:
		*shape = append(*shape, len(list))
	case depth >= len(*shape) || (*shape)[depth] != len(list):
		return NewShapeError("ragged nested data")
	}

	for _, e := range list {
		if err := flatten(e, depth+1, values, shape, dtype); err != nil {
			return err
		}
	}
	return nil
}

func leaf(v any, dtype *DType) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case bool:
		*dtype = Bool
		if x {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, errors.New("null array element")
	default:
		return 0, fmt.Errorf("invalid array element %v of type %T", v, v)
	}
}
