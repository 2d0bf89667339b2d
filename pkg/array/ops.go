package array

// BinaryFunc computes one element of an elementwise arithmetic operation.
type BinaryFunc func(a, b float64) float64

// CompareFunc computes one element of an elementwise comparison.
type CompareFunc func(a, b float64) bool

// Binary applies fn elementwise, broadcasting the operands by dimension name. The result keeps
// the coordinates of both operands and no attributes.
func Binary(a, b *DataArray, fn BinaryFunc) (*DataArray, error) {
	l, err := broadcast(a, b)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(l.left))
	for k := range values {
		values[k] = fn(a.values[l.left[k]], b.values[l.right[k]])
	}

	return l.array(resultName(a, b), values, Float64, a.chunks), nil
}

// BinaryScalar applies fn between each element of a and a scalar.
func BinaryScalar(a *DataArray, b float64, fn BinaryFunc) (*DataArray, error) {
	s, _ := NewScalar(b)
	return Binary(a, s, fn)
}

// Compare applies fn elementwise and returns a boolean array.
func Compare(a, b *DataArray, fn CompareFunc) (*DataArray, error) {
	l, err := broadcast(a, b)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(l.left))
	for k := range values {
		if fn(a.values[l.left[k]], b.values[l.right[k]]) {
			values[k] = 1
		}
	}

	return l.array(resultName(a, b), values, Bool, a.chunks), nil
}

// Map applies fn to each element. Attributes and coordinates are kept.
func (d *DataArray) Map(fn func(float64) float64) *DataArray {
	ret := d.Copy()
	for i, v := range ret.values {
		ret.values[i] = fn(v)
	}
	ret.dtype = Float64
	return ret
}
