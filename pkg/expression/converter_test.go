package expression

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/quantity"
)

var _ = Describe("Converters", func() {
	Describe("Scalar conversion", func() {
		It("should read a bool", func() {
			v, err := AsBool(true)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeTrue())
			_, err = AsBool(12)
			Expect(err).To(HaveOccurred())
			_, err = AsBool(nil)
			Expect(err).To(HaveOccurred())
		})

		It("should read an int", func() {
			v, err := AsInt(int64(12))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(12)))
			v, err = AsInt("12")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(int64(12)))
			_, err = AsInt(1.5)
			Expect(err).To(HaveOccurred())
		})

		It("should read a float", func() {
			v, err := AsFloat(1.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(1.5))
			v, err = AsFloat(int64(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(2.0))
			v, err = AsFloat("2.5")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(2.5))
			_, err = AsFloat("a")
			Expect(err).To(HaveOccurred())
		})

		It("should read a string", func() {
			v, err := AsString("km")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal("km"))
			_, err = AsString(1)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Collection conversion", func() {
		It("should read a list", func() {
			Expect(IsList([]any{1})).To(BeTrue())
			Expect(IsList("a")).To(BeFalse())
			vs, err := AsList([]any{int64(1), "a"})
			Expect(err).NotTo(HaveOccurred())
			Expect(vs).To(HaveLen(2))
			_, err = AsList(1)
			Expect(err).To(HaveOccurred())
		})

		It("should read a string list", func() {
			vs, err := AsStringList([]any{"spectral", "mass_energy"})
			Expect(err).NotTo(HaveOccurred())
			Expect(vs).To(Equal([]string{"spectral", "mass_energy"}))
			_, err = AsStringList([]any{"a", 1})
			Expect(err).To(HaveOccurred())
		})

		It("should read a map", func() {
			m, err := AsMap(map[string]any{"a": int64(1)})
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(HaveKeyWithValue("a", int64(1)))
			_, err = AsMap([]any{})
			Expect(err).To(HaveOccurred())
		})

		It("should unpack expression lists", func() {
			exp := NewOpExpression("@add", NewReferenceExpression("a"), NewReferenceExpression("b"))
			es, err := AsExpOrExpList(exp.Arg)
			Expect(err).NotTo(HaveOccurred())
			Expect(es).To(HaveLen(2))

			single := Expression{Op: "@int", Literal: int64(1)}
			es, err = AsExpOrExpList(single)
			Expect(err).NotTo(HaveOccurred())
			Expect(es).To(Equal([]Expression{single}))

			_, err = AsExpOrExpList(1)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Operand conversion", func() {
		It("should read an array", func() {
			da := array.MustNew([]float64{1, 2})
			ret, err := AsArray(da)
			Expect(err).NotTo(HaveOccurred())
			Expect(ret).To(BeIdenticalTo(da))
			_, err = AsArray(1.0)
			Expect(err).To(HaveOccurred())
			_, err = AsArray((*array.DataArray)(nil))
			Expect(err).To(HaveOccurred())
		})

		It("should read operands", func() {
			v, err := AsValue(int64(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(quantity.Unitless(2)))

			q := quantity.MustQuantity(2, "m")
			v, err = AsValue(q)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(q))

			_, err = AsValue("m")
			Expect(err).To(HaveOccurred())
		})
	})
})
