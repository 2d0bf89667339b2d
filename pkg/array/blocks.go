package array

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sourcegraph/conc/pool"
)

// Block is a chunk of an array along its first dimension, covering [Start, End).
type Block struct {
	*DataArray
	Index, Start, End int
}

// BlockFunc processes one block of an array.
type BlockFunc func(ctx context.Context, block Block) (*DataArray, error)

// Slice returns the elements in [start, end) along a dimension. Coordinates along the dimension
// are sliced too.
func (d *DataArray) Slice(dim string, start, end int) (*DataArray, error) {
	ax := d.axis(dim)
	if ax < 0 {
		return nil, NewDimensionError(dim, errors.New("no such dimension"))
	}
	if start < 0 || end > d.shape[ax] || start > end {
		return nil, fmt.Errorf("slice [%d:%d] out of range for dimension %q of length %d",
			start, end, dim, d.shape[ax])
	}

	ret := d.Copy()
	ret.shape[ax] = end - start
	ret.values = make([]float64, 0, size(ret.shape))

	outer := size(d.shape[:ax])
	inner := size(d.shape[ax+1:])
	for o := 0; o < outer; o++ {
		base := o * d.shape[ax] * inner
		ret.values = append(ret.values, d.values[base+start*inner:base+end*inner]...)
	}

	for k, c := range d.coords {
		if c.dims[0] == dim {
			sc, err := c.Slice(dim, start, end)
			if err != nil {
				return nil, err
			}
			ret.coords[k] = sc
		}
	}

	return ret, nil
}

// Blocks splits the array into chunks along its first dimension. Scalars and unchunked arrays
// give a single block.
func (d *DataArray) Blocks() ([]Block, error) {
	if d.NDim() == 0 || d.chunks == 0 || d.chunks >= d.shape[0] {
		end := 0
		if d.NDim() > 0 {
			end = d.shape[0]
		}
		return []Block{{DataArray: d, End: end}}, nil
	}

	ret := []Block{}
	for start := 0; start < d.shape[0]; start += d.chunks {
		end := min(start+d.chunks, d.shape[0])
		b, err := d.Slice(d.dims[0], start, end)
		if err != nil {
			return nil, err
		}
		ret = append(ret, Block{DataArray: b, Index: len(ret), Start: start, End: end})
	}
	return ret, nil
}

// Concat joins arrays along their common first dimension. Name, attributes and coordinates not
// along the dimension are taken from the first array.
func Concat(arrays ...*DataArray) (*DataArray, error) {
	if len(arrays) == 0 {
		return nil, errors.New("concat: no arrays")
	}
	first := arrays[0]
	if len(arrays) == 1 {
		return first, nil
	}
	if first.NDim() == 0 {
		return nil, errors.New("concat: cannot join scalars")
	}

	ret := first.Copy()
	dim := first.dims[0]
	for _, a := range arrays[1:] {
		if !slices.Equal(a.dims, first.dims) || !slices.Equal(a.shape[1:], first.shape[1:]) {
			return nil, NewShapeError("cannot join %v%v to %v%v", a.dims, a.shape, first.dims, first.shape)
		}
		if a.dtype != first.dtype {
			return nil, fmt.Errorf("concat: mixed element types %s and %s", first.dtype, a.dtype)
		}
		ret.shape[0] += a.shape[0]
		ret.values = append(ret.values, a.values...)
	}

	for k, c := range first.coords {
		if c.dims[0] != dim {
			continue
		}
		parts := []*DataArray{}
		for _, a := range arrays {
			pc, ok := a.coords[k]
			if !ok {
				return nil, fmt.Errorf("concat: coordinate %q missing from a block", k)
			}
			parts = append(parts, pc)
		}
		joined, err := Concat(parts...)
		if err != nil {
			return nil, err
		}
		ret.coords[k] = joined
	}

	return ret, nil
}

// MapBlocks applies fn to each block of the array on a pool of at most concurrency goroutines
// and joins the results in block order. Each result must keep the first dimension of its block.
// The first failing block cancels the rest and its error is returned.
func (d *DataArray) MapBlocks(ctx context.Context, fn BlockFunc, concurrency int) (*DataArray, error) {
	blocks, err := d.Blocks()
	if err != nil {
		return nil, err
	}

	if len(blocks) == 1 {
		ret, err := fn(ctx, blocks[0])
		if err != nil {
			return nil, NewBlockError(0, err)
		}
		return ret, nil
	}

	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]*DataArray, len(blocks))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(concurrency)
	for i, b := range blocks {
		p.Go(func(ctx context.Context) error {
			r, err := fn(ctx, b)
			if err != nil {
				return NewBlockError(i, err)
			}
			if r == nil {
				return NewBlockError(i, errors.New("no result"))
			}
			if r.NDim() == 0 || r.dims[0] != b.dims[0] || r.shape[0] != b.shape[0] {
				return NewBlockError(i, NewShapeError("block result %v%v does not keep dimension %q",
					r.dims, r.shape, b.dims[0]))
			}
			results[i] = r
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	ret, err := Concat(results...)
	if err != nil {
		return nil, err
	}
	ret.chunks = d.chunks
	return ret, nil
}
