package array

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/apimachinery/pkg/util/json"
)

var _ = Describe("DataArray", func() {
	var km *DataArray

	BeforeEach(func() {
		km = MustNew([]float64{1, 2, 3}, WithDims("x"), WithAttrs(Attrs{"units": "km"}),
			WithCoord("x", MustNew([]float64{10, 20, 30}, WithDims("x"))))
	})

	Describe("construction", func() {
		It("should default to a 1-D array", func() {
			d, err := New([]float64{1, 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Dims()).To(Equal([]string{"dim_0"}))
			Expect(d.Shape()).To(Equal([]int{2}))
			Expect(d.DType()).To(Equal(Float64))
		})

		It("should create scalars", func() {
			s, err := NewScalar(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.NDim()).To(Equal(0))
			Expect(s.Values()).To(Equal([]float64{2}))
		})

		It("should create boolean arrays", func() {
			b, err := NewBool([]bool{true, false})
			Expect(err).NotTo(HaveOccurred())
			Expect(b.IsBool()).To(BeTrue())
			Expect(b.Bools()).To(Equal([]bool{true, false}))
		})

		It("should reject inconsistent shapes", func() {
			_, err := New([]float64{1, 2, 3}, WithShape(2, 2))
			Expect(err).To(HaveOccurred())
			_, err = New([]float64{1, 2, 3, 4}, WithShape(2, 2), WithDims("x", "x"))
			Expect(err).To(HaveOccurred())
			_, err = New([]float64{1, 2}, WithCoord("x", MustNew([]float64{1, 2, 3}, WithDims("dim_0"))))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("copy-on-write", func() {
		It("should not modify the receiver", func() {
			d := km.DropAttrs("units")
			_, ok := d.Attr("units")
			Expect(ok).To(BeFalse())
			v, ok := km.Attr("units")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("km"))

			d = km.AssignAttrs(Attrs{"units": "m"})
			v, _ = d.Attr("units")
			Expect(v).To(Equal("m"))
			v, _ = km.Attr("units")
			Expect(v).To(Equal("km"))

			d, err := km.WithData([]float64{4, 5, 6})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Values()).To(Equal([]float64{4, 5, 6}))
			Expect(km.Values()).To(Equal([]float64{1, 2, 3}))
			_, err = km.WithData([]float64{1})
			Expect(err).To(HaveOccurred())
		})

		It("should keep coordinates on copies", func() {
			c, ok := km.Copy().Coord("x")
			Expect(ok).To(BeTrue())
			Expect(c.Values()).To(Equal([]float64{10, 20, 30}))
			Expect(km.CoordNames()).To(Equal([]string{"x"}))
		})
	})

	Describe("elementwise operations", func() {
		It("should combine with a scalar and drop attributes", func() {
			d, err := BinaryScalar(km, 2, func(a, b float64) float64 { return a * b })
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Values()).To(Equal([]float64{2, 4, 6}))
			Expect(d.Attrs()).To(BeEmpty())
			_, ok := d.Coord("x")
			Expect(ok).To(BeTrue())
		})

		It("should broadcast by dimension name", func() {
			y := MustNew([]float64{10, 100}, WithDims("y"))
			d, err := Binary(km, y, func(a, b float64) float64 { return a * b })
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Dims()).To(Equal([]string{"x", "y"}))
			Expect(d.Shape()).To(Equal([]int{3, 2}))
			Expect(d.Values()).To(Equal([]float64{10, 100, 20, 200, 30, 300}))
		})

		It("should align transposed operands", func() {
			a := MustNew([]float64{1, 2, 3, 4, 5, 6}, WithDims("x", "y"), WithShape(2, 3))
			b := MustNew([]float64{1, 4, 2, 5, 3, 6}, WithDims("y", "x"), WithShape(3, 2))
			d, err := Binary(a, b, func(a, b float64) float64 { return a - b })
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Values()).To(Equal([]float64{0, 0, 0, 0, 0, 0}))
		})

		It("should reject mismatched lengths", func() {
			_, err := Binary(km, MustNew([]float64{1, 2}, WithDims("x")),
				func(a, b float64) float64 { return a + b })
			Expect(err).To(HaveOccurred())
		})

		It("should compare into a boolean array", func() {
			d, err := Compare(km, MustNew([]float64{2}, WithShape(), WithDims()),
				func(a, b float64) bool { return a < b })
			Expect(err).NotTo(HaveOccurred())
			Expect(d.IsBool()).To(BeTrue())
			Expect(d.Bools()).To(Equal([]bool{true, false, false}))
		})
	})

	Describe("matmul", func() {
		It("should contract 1-D arrays into a scalar", func() {
			mm := MustNew([]float64{1e6, 2e6, 3e6}, WithDims("x"))
			d, err := MatMul(km, mm)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.NDim()).To(Equal(0))
			Expect(d.Values()).To(Equal([]float64{14e6}))
		})

		It("should multiply matrices", func() {
			a := MustNew([]float64{1, 2, 3, 4}, WithDims("i", "k"), WithShape(2, 2))
			b := MustNew([]float64{5, 6, 7, 8}, WithDims("k", "j"), WithShape(2, 2))
			d, err := MatMul(a, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Dims()).To(Equal([]string{"i", "j"}))
			Expect(d.Values()).To(Equal([]float64{19, 22, 43, 50}))

			// the contracted dimension leading on the left
			at := MustNew([]float64{1, 3, 2, 4}, WithDims("k", "i"), WithShape(2, 2))
			d, err = MatMul(at, b)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Dims()).To(Equal([]string{"i", "j"}))
			Expect(d.Values()).To(Equal([]float64{19, 22, 43, 50}))
		})

		It("should contract a matrix with a vector", func() {
			a := MustNew([]float64{1, 2, 3, 4, 5, 6}, WithDims("i", "x"), WithShape(2, 3))
			d, err := MatMul(a, km)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Dims()).To(Equal([]string{"i"}))
			Expect(d.Values()).To(Equal([]float64{14, 32}))
		})

		It("should reject scalars", func() {
			s, _ := NewScalar(2)
			_, err := MatMul(km, s)
			Expect(err).To(MatchError(ErrScalarMatMul))
			_, err = MatMul(s, km)
			Expect(err).To(MatchError(ErrScalarMatMul))
		})
	})

	Describe("blocks", func() {
		var chunked *DataArray

		BeforeEach(func() {
			var err error
			chunked, err = MustNew([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, WithDims("x"),
				WithCoord("x", MustNew([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, WithDims("x")))).Chunk(3)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should slice along a dimension", func() {
			a := MustNew([]float64{1, 2, 3, 4, 5, 6}, WithDims("x", "y"), WithShape(2, 3))
			s, err := a.Slice("y", 1, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Shape()).To(Equal([]int{2, 2}))
			Expect(s.Values()).To(Equal([]float64{2, 3, 5, 6}))
			_, err = a.Slice("y", 2, 4)
			Expect(err).To(HaveOccurred())
		})

		It("should split into chunks", func() {
			bs, err := chunked.Blocks()
			Expect(err).NotTo(HaveOccurred())
			Expect(bs).To(HaveLen(4))
			Expect(bs[3].Values()).To(Equal([]float64{10}))
			Expect(bs[1].Start).To(Equal(3))
			Expect(bs[1].End).To(Equal(6))
			c, _ := bs[1].Coord("x")
			Expect(c.Values()).To(Equal([]float64{3, 4, 5}))
		})

		It("should map blocks and join the results in order", func() {
			var calls atomic.Int32
			d, err := chunked.MapBlocks(context.Background(), func(_ context.Context, b Block) (*DataArray, error) {
				calls.Add(1)
				return b.Map(func(v float64) float64 { return v * v }), nil
			}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(calls.Load()).To(Equal(int32(4)))
			Expect(d.Values()).To(Equal([]float64{1, 4, 9, 16, 25, 36, 49, 64, 81, 100}))
			Expect(d.Chunks()).To(Equal(3))
			c, _ := d.Coord("x")
			Expect(c.Len()).To(Equal(10))
		})

		It("should report the first failing block", func() {
			boom := errors.New("boom")
			_, err := chunked.MapBlocks(context.Background(), func(_ context.Context, b Block) (*DataArray, error) {
				if b.Values()[0] > 5 {
					return nil, boom
				}
				return b.DataArray, nil
			}, 4)
			Expect(err).To(MatchError(boom))
		})

		It("should run unchunked arrays as one block", func() {
			d, err := km.MapBlocks(context.Background(), func(_ context.Context, b Block) (*DataArray, error) {
				return b.Map(math.Sqrt), nil
			}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Values()[0]).To(Equal(1.0))
		})
	})

	Describe("equality", func() {
		It("should compare arrays", func() {
			Expect(Identical(km, km.Copy())).To(BeTrue())
			Expect(Identical(km, km.DropAttrs("units"))).To(BeFalse())
			close, _ := km.WithData([]float64{1, 2, 3 + 1e-12})
			Expect(Identical(km, close)).To(BeFalse())
			Expect(AllClose(km, close, 1e-9)).To(BeTrue())
		})
	})

	Describe("JSON", func() {
		It("should round-trip nested data", func() {
			a := MustNew([]float64{1, 2, 3, 4, 5, 6}, WithDims("x", "y"), WithShape(2, 3),
				WithName("a"), WithAttrs(Attrs{"units": "m"}))
			b, err := json.Marshal(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(ContainSubstring(`"data":[[1,2,3],[4,5,6]]`))

			var d DataArray
			Expect(json.Unmarshal(b, &d)).To(Succeed())
			Expect(Identical(a, &d)).To(BeTrue())
		})

		It("should parse integers and booleans", func() {
			var d DataArray
			Expect(json.Unmarshal([]byte(`{"dims":["x"],"data":[1,2,3]}`), &d)).To(Succeed())
			Expect(d.Values()).To(Equal([]float64{1, 2, 3}))

			Expect(json.Unmarshal([]byte(`{"data":[true,false]}`), &d)).To(Succeed())
			Expect(d.IsBool()).To(BeTrue())
		})

		It("should reject ragged data", func() {
			var d DataArray
			Expect(json.Unmarshal([]byte(`{"data":[[1],[2,3]]}`), &d)).NotTo(Succeed())
			Expect(json.Unmarshal([]byte(`{"data":[1,"a"]}`), &d)).NotTo(Succeed())
		})
	})
})
