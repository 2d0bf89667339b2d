package array

import (
	"errors"
	"fmt"
	"sort"

	"github.com/l7mp/xunits/pkg/util"
)

// DType is the element type of an array.
type DType int

const (
	Float64 DType = iota
	Bool
)

func (t DType) String() string {
	if t == Bool {
		return "bool"
	}
	return "float64"
}

// Attrs are free-form string metadata attached to an array.
type Attrs = map[string]string

// DataArray is an immutable labeled N-dimensional array: values stored in row-major order,
// named dimensions, optional 1-D coordinates along the dimensions and string attributes. An
// array can be split into chunks along its first dimension for block-wise processing.
//
// All methods that "modify" an array return a new one; the receiver is never changed.
type DataArray struct {
	name   string
	dims   []string
	shape  []int
	values []float64
	dtype  DType
	coords map[string]*DataArray
	attrs  Attrs
	chunks int
}

// Option configures a new DataArray.
type Option func(*DataArray)

func WithName(name string) Option {
	return func(d *DataArray) { d.name = name }
}

func WithDims(dims ...string) Option {
	return func(d *DataArray) { d.dims = append([]string{}, dims...) }
}

func WithShape(shape ...int) Option {
	return func(d *DataArray) { d.shape = append([]int{}, shape...) }
}

func WithAttrs(attrs Attrs) Option {
	return func(d *DataArray) {
		for k, v := range attrs {
			d.attrs[k] = v
		}
	}
}

// WithCoord adds a 1-D coordinate. The coordinate must have a single dimension of the array.
func WithCoord(name string, coord *DataArray) Option {
	return func(d *DataArray) { d.coords[name] = coord }
}

// WithChunks sets the block length along the first dimension, 0 means a single block.
func WithChunks(n int) Option {
	return func(d *DataArray) { d.chunks = n }
}

func withDType(t DType) Option {
	return func(d *DataArray) { d.dtype = t }
}

// New creates an array from row-major values. Without WithShape the array is 1-D; without
// WithDims the dimensions are named dim_0, dim_1, ...
func New(values []float64, opts ...Option) (*DataArray, error) {
	d := &DataArray{
		values: append([]float64{}, values...),
		coords: map[string]*DataArray{},
		attrs:  Attrs{},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.shape == nil {
		if d.dims != nil && len(d.dims) == 0 {
			d.shape = []int{}
		} else {
			d.shape = []int{len(d.values)}
		}
	}
	if d.dims == nil {
		d.dims = make([]string, len(d.shape))
		for i := range d.dims {
			d.dims[i] = fmt.Sprintf("dim_%d", i)
		}
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// MustNew is like New but panics on error.
func MustNew(values []float64, opts ...Option) *DataArray {
	d, err := New(values, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// NewScalar creates a 0-dimensional array.
func NewScalar(value float64, opts ...Option) (*DataArray, error) {
	return New([]float64{value}, append([]Option{WithShape(), WithDims()}, opts...)...)
}

// NewBool creates a boolean array.
func NewBool(values []bool, opts ...Option) (*DataArray, error) {
	vs := make([]float64, len(values))
	for i, b := range values {
		if b {
			vs[i] = 1
		}
	}
	return New(vs, append(opts, withDType(Bool))...)
}

func (d *DataArray) validate() error {
	if len(d.dims) != len(d.shape) {
		return NewShapeError("%d dimensions for a %d-dimensional shape %v", len(d.dims),
			len(d.shape), d.shape)
	}

	seen := map[string]bool{}
	for _, dim := range d.dims {
		if dim == "" {
			return NewDimensionError(dim, errors.New("empty dimension name"))
		}
		if seen[dim] {
			return NewDimensionError(dim, errors.New("duplicate dimension"))
		}
		seen[dim] = true
	}

	if n := size(d.shape); n != len(d.values) {
		return NewShapeError("%d values for shape %v", len(d.values), d.shape)
	}

	if d.chunks < 0 {
		return fmt.Errorf("invalid chunk length %d", d.chunks)
	}

	for name, c := range d.coords {
		if c == nil || c.NDim() != 1 {
			return fmt.Errorf("coordinate %q must be 1-dimensional", name)
		}
		i := d.axis(c.dims[0])
		if i < 0 {
			return NewDimensionError(c.dims[0], fmt.Errorf("coordinate %q is not along a dimension", name))
		}
		if c.shape[0] != d.shape[i] {
			return NewShapeError("coordinate %q has length %d, dimension %q has %d", name,
				c.shape[0], c.dims[0], d.shape[i])
		}
	}

	return nil
}

func size(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func (d *DataArray) axis(dim string) int {
	for i, n := range d.dims {
		if n == dim {
			return i
		}
	}
	return -1
}

func (d *DataArray) Name() string { return d.name }

func (d *DataArray) Dims() []string { return append([]string{}, d.dims...) }

func (d *DataArray) Shape() []int { return append([]int{}, d.shape...) }

func (d *DataArray) NDim() int { return len(d.shape) }

// Len returns the number of elements.
func (d *DataArray) Len() int { return len(d.values) }

// Values returns a copy of the row-major values; booleans are returned as 0 and 1.
func (d *DataArray) Values() []float64 { return append([]float64{}, d.values...) }

// Bools returns the values as booleans.
func (d *DataArray) Bools() []bool {
	ret := make([]bool, len(d.values))
	for i, v := range d.values {
		ret[i] = v != 0
	}
	return ret
}

func (d *DataArray) DType() DType { return d.dtype }

func (d *DataArray) IsBool() bool { return d.dtype == Bool }

func (d *DataArray) Chunks() int { return d.chunks }

// Size returns the length of a dimension.
func (d *DataArray) Size(dim string) (int, bool) {
	i := d.axis(dim)
	if i < 0 {
		return 0, false
	}
	return d.shape[i], true
}

func (d *DataArray) Attr(key string) (string, bool) {
	v, ok := d.attrs[key]
	return v, ok
}

// Attrs returns a copy of the attributes.
func (d *DataArray) Attrs() Attrs {
	ret := Attrs{}
	for k, v := range d.attrs {
		ret[k] = v
	}
	return ret
}

func (d *DataArray) Coord(name string) (*DataArray, bool) {
	c, ok := d.coords[name]
	return c, ok
}

// Coords returns a copy of the coordinate map.
func (d *DataArray) Coords() map[string]*DataArray {
	ret := make(map[string]*DataArray, len(d.coords))
	for k, c := range d.coords {
		ret[k] = c
	}
	return ret
}

// CoordNames returns the names of the coordinates in alphabetical order.
func (d *DataArray) CoordNames() []string {
	ret := make([]string, 0, len(d.coords))
	for name := range d.coords {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func (d *DataArray) String() string {
	return util.Stringify(d)
}

// Copy returns a shallow copy: slices and maps are duplicated, coordinates are shared since they
// are immutable.
func (d *DataArray) Copy() *DataArray {
	ret := *d
	ret.dims = d.Dims()
	ret.shape = d.Shape()
	ret.values = d.Values()
	ret.attrs = d.Attrs()
	ret.coords = make(map[string]*DataArray, len(d.coords))
	for k, c := range d.coords {
		ret.coords[k] = c
	}
	return &ret
}

// WithData returns a copy with the values replaced. The number of values must match.
func (d *DataArray) WithData(values []float64) (*DataArray, error) {
	return d.withValues(values, Float64)
}

// WithBoolData returns a copy with boolean values.
func (d *DataArray) WithBoolData(values []bool) (*DataArray, error) {
	vs := make([]float64, len(values))
	for i, b := range values {
		if b {
			vs[i] = 1
		}
	}
	return d.withValues(vs, Bool)
}

func (d *DataArray) withValues(values []float64, dtype DType) (*DataArray, error) {
	if len(values) != len(d.values) {
		return nil, NewShapeError("%d values for shape %v", len(values), d.shape)
	}
	ret := d.Copy()
	ret.values = append([]float64{}, values...)
	ret.dtype = dtype
	return ret, nil
}

// AssignAttrs returns a copy with the given attributes added or replaced.
func (d *DataArray) AssignAttrs(attrs Attrs) *DataArray {
	ret := d.Copy()
	for k, v := range attrs {
		ret.attrs[k] = v
	}
	return ret
}

// DropAttrs returns a copy without the given attributes. Missing keys are ignored.
func (d *DataArray) DropAttrs(keys ...string) *DataArray {
	ret := d.Copy()
	for _, k := range keys {
		delete(ret.attrs, k)
	}
	return ret
}

// AssignCoord returns a copy with the coordinate added or replaced.
func (d *DataArray) AssignCoord(name string, coord *DataArray) (*DataArray, error) {
	ret := d.Copy()
	ret.coords[name] = coord
	if err := ret.validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Chunk returns a copy with a new block length along the first dimension.
func (d *DataArray) Chunk(n int) (*DataArray, error) {
	ret := d.Copy()
	ret.chunks = n
	if err := ret.validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
