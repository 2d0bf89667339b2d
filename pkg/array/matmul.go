package array

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrScalarMatMul = errors.New("matmul: scalar operands are not allowed")

// MatMul contracts a and b over their shared dimensions. The result carries the remaining
// dimensions of a followed by those of b; two 1-D arrays along the same dimension give a 0-d
// array. Scalar operands are rejected.
func MatMul(a, b *DataArray) (*DataArray, error) {
	if a.NDim() == 0 || b.NDim() == 0 {
		return nil, ErrScalarMatMul
	}

	shared := []string{}
	for i, dim := range a.dims {
		j := b.axis(dim)
		if j < 0 {
			continue
		}
		if a.shape[i] != b.shape[j] {
			return nil, NewShapeError("dimension %q has length %d and %d", dim, a.shape[i], b.shape[j])
		}
		shared = append(shared, dim)
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("matmul: no common dimension in %v and %v", a.dims, b.dims)
	}

	// free dimensions of each operand
	dims, shape := []string{}, []int{}
	af, bf := free(a, shared), free(b, shared)
	for _, i := range af {
		dims, shape = append(dims, a.dims[i]), append(shape, a.shape[i])
	}
	for _, i := range bf {
		dims, shape = append(dims, b.dims[i]), append(shape, b.shape[i])
	}

	var values []float64
	switch {
	case a.NDim() == 1 && b.NDim() == 1:
		values = []float64{floats.Dot(a.values, b.values)}
	case a.NDim() == 2 && b.NDim() == 2 && len(shared) == 1 && a.Len() > 0 && b.Len() > 0:
		values = matmul2D(a, b, shared[0])
	default:
		values = contract(a, b, shared, af, bf, shape)
	}

	coords := map[string]*DataArray{}
	for _, d := range []*DataArray{b, a} {
		for k, c := range d.coords {
			if slices.Contains(dims, c.dims[0]) {
				coords[k] = c
			}
		}
	}

	return &DataArray{
		name:   resultName(a, b),
		dims:   dims,
		shape:  shape,
		values: values,
		coords: coords,
		attrs:  Attrs{},
	}, nil
}

func matmul2D(a, b *DataArray, dim string) []float64 {
	var ma, mb mat.Matrix
	da := mat.NewDense(a.shape[0], a.shape[1], a.Values())
	db := mat.NewDense(b.shape[0], b.shape[1], b.Values())

	ma = da
	if a.axis(dim) == 0 {
		ma = da.T()
	}
	mb = db
	if b.axis(dim) == 1 {
		mb = db.T()
	}

	var c mat.Dense
	c.Mul(ma, mb)
	return c.RawMatrix().Data
}

// contract is the generic contraction over any number of shared dimensions.
func contract(a, b *DataArray, shared []string, af, bf []int, shape []int) []float64 {
	sa, sb := strides(a.shape), strides(b.shape)
	sharedShape := make([]int, len(shared))
	for i, dim := range shared {
		sharedShape[i] = a.shape[a.axis(dim)]
	}

	n := size(shape)
	values := make([]float64, n)
	out := make([]int, len(shape))
	for k := 0; k < n; k++ {
		base1, base2 := 0, 0
		for i, ax := range af {
			base1 += out[i] * sa[ax]
		}
		for i, ax := range bf {
			base2 += out[len(af)+i] * sb[ax]
		}

		sum := 0.0
		in := make([]int, len(shared))
		for m := 0; m < size(sharedShape); m++ {
			i1, i2 := base1, base2
			for i, dim := range shared {
				i1 += in[i] * sa[a.axis(dim)]
				i2 += in[i] * sb[b.axis(dim)]
			}
			sum += a.values[i1] * b.values[i2]
			increment(in, sharedShape)
		}
		values[k] = sum
		increment(out, shape)
	}
	return values
}

func increment(index, shape []int) {
	for ax := len(index) - 1; ax >= 0; ax-- {
		index[ax]++
		if index[ax] < shape[ax] {
			return
		}
		index[ax] = 0
	}
}

func free(d *DataArray, shared []string) []int {
	ret := []int{}
	for i, dim := range d.dims {
		if !slices.Contains(shared, dim) {
			ret = append(ret, i)
		}
	}
	return ret
}
