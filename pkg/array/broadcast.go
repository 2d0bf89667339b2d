package array

// layout describes the result of aligning two arrays by dimension name: the result dimensions
// and shape, and for each result element the flat index into the left and right operands.
type layout struct {
	dims   []string
	shape  []int
	left   []int
	right  []int
	coords map[string]*DataArray
}

func strides(shape []int) []int {
	st := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = s
		s *= shape[i]
	}
	return st
}

// broadcast aligns a and b by dimension name. The result carries the dimensions of a followed
// by the dimensions that only b has. Dimensions with the same name must have the same length.
func broadcast(a, b *DataArray) (*layout, error) {
	l := &layout{
		dims:   a.Dims(),
		shape:  a.Shape(),
		coords: map[string]*DataArray{},
	}
	for i, dim := range b.dims {
		j := a.axis(dim)
		if j < 0 {
			l.dims = append(l.dims, dim)
			l.shape = append(l.shape, b.shape[i])
			continue
		}
		if a.shape[j] != b.shape[i] {
			return nil, NewShapeError("dimension %q has length %d and %d", dim, a.shape[j], b.shape[i])
		}
	}

	for k, c := range b.coords {
		l.coords[k] = c
	}
	for k, c := range a.coords {
		l.coords[k] = c
	}

	sa, sb := operandStrides(a, l.dims), operandStrides(b, l.dims)
	n := size(l.shape)
	l.left, l.right = make([]int, n), make([]int, n)
	index := make([]int, len(l.shape))
	for k := 0; k < n; k++ {
		ia, ib := 0, 0
		for ax, i := range index {
			ia += i * sa[ax]
			ib += i * sb[ax]
		}
		l.left[k], l.right[k] = ia, ib
		increment(index, l.shape)
	}

	return l, nil
}

// operandStrides maps each result axis to the stride of the operand, 0 for missing axes.
func operandStrides(d *DataArray, dims []string) []int {
	own := strides(d.shape)
	ret := make([]int, len(dims))
	for ax, dim := range dims {
		if i := d.axis(dim); i >= 0 {
			ret[ax] = own[i]
		}
	}
	return ret
}

func (l *layout) array(name string, values []float64, dtype DType, chunks int) *DataArray {
	return &DataArray{
		name:   name,
		dims:   l.dims,
		shape:  l.shape,
		values: values,
		dtype:  dtype,
		coords: l.coords,
		attrs:  Attrs{},
		chunks: chunks,
	}
}

func resultName(a, b *DataArray) string {
	if b.name == "" || b.name == a.name {
		return a.name
	}
	return ""
}
