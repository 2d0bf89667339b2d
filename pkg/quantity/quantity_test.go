package quantity

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/l7mp/xunits/pkg/array"
	"github.com/l7mp/xunits/pkg/units"
)

var _ = Describe("Unit extraction", func() {
	var plain, km *array.DataArray

	BeforeEach(func() {
		plain = array.MustNew([]float64{1, 2, 3}, array.WithDims("x"))
		km = plain.AssignAttrs(array.Attrs{UnitsAttr: "km"})
	})

	Describe("Of", func() {
		It("should return the unit of a quantity", func() {
			u, err := Of(MustQuantity(2000, "m"), true)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.String()).To(Equal("m"))
		})

		It("should parse the annotation of an array", func() {
			u, err := Of(Annotated{km}, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Equal(units.MustParse("km"))).To(BeTrue())
		})

		It("should handle missing units", func() {
			u, err := Of(Annotated{plain}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(BeNil())

			_, err = Of(Annotated{plain}, true)
			Expect(err).To(MatchError(units.ErrUnitsNotFound))

			u, err = Of(Unitless(2), false)
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(BeNil())

			_, err = Of(Unitless(2), true)
			Expect(err).To(MatchError(units.ErrUnitsNotFound))
		})

		It("should reject malformed annotations", func() {
			for _, text := range []string{"m, s", "invalid", ""} {
				da := array.MustNew([]float64{1}, array.WithAttrs(array.Attrs{UnitsAttr: text}))
				_, err := Of(Annotated{da}, false)
				Expect(err).To(MatchError(units.ErrUnitsNotValid), text)
				_, err = Annotate(da)
				Expect(err).To(MatchError(units.ErrUnitsNotValid), text)
			}
		})

		It("should format units", func() {
			s, err := FormatOf(Annotated{plain.AssignAttrs(array.Attrs{UnitsAttr: "km s-1"})}, units.FormatUnicode, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal("km s⁻¹"))

			s, err = FormatOf(Annotated{km}, "", true)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal("km"))

			s, err = FormatOf(Unitless(1), "", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(BeEmpty())

			_, err = FormatOf(Annotated{km}, "invalid", true)
			Expect(err).To(MatchError(units.ErrUnitsConversion))
		})
	})

	Describe("From", func() {
		It("should convert Go values into operands", func() {
			v, err := From(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(Unitless(2)))

			v, err = From(units.Quantity{Value: 1, Unit: units.MustParse("m")})
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeAssignableToTypeOf(Quantity{}))

			v, err = From(km)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(Annotated{km}))

			_, err = From("km")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Set and Unset", func() {
		It("should annotate without modifying the input", func() {
			da, err := SetString(plain, "km", false)
			Expect(err).NotTo(HaveOccurred())
			v, _ := da.Attr(UnitsAttr)
			Expect(v).To(Equal("km"))
			_, ok := plain.Attr(UnitsAttr)
			Expect(ok).To(BeFalse())
		})

		It("should refuse to overwrite unless asked", func() {
			da, err := SetString(plain, "km", false)
			Expect(err).NotTo(HaveOccurred())
			_, err = SetString(da, "mm", false)
			Expect(err).To(MatchError(units.ErrUnitsExist))

			da, err = Set(da, units.MustParse("mm"), true)
			Expect(err).NotTo(HaveOccurred())
			v, _ := da.Attr(UnitsAttr)
			Expect(v).To(Equal("mm"))
		})

		It("should validate unit text", func() {
			_, err := SetString(plain, "m, s", false)
			Expect(err).To(MatchError(units.ErrUnitsNotValid))
		})

		It("should report a malformed annotation before overwriting", func() {
			bad := plain.AssignAttrs(array.Attrs{UnitsAttr: "invalid"})
			_, err := SetString(bad, "m", false)
			Expect(err).To(MatchError(units.ErrUnitsNotValid))
			_, err = SetString(bad, "m", true)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should restore the original attributes on unset", func() {
			orig := plain.AssignAttrs(array.Attrs{"long_name": "distance"})
			da, err := SetString(orig, "km", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(array.Identical(Unset(da), orig)).To(BeTrue())
			Expect(array.Identical(Unset(orig), orig)).To(BeTrue())
		})

		It("should store formatted units", func() {
			da, err := SetFormatted(km, units.MustParse("km s-1"), units.FormatLaTeX)
			Expect(err).NotTo(HaveOccurred())
			v, _ := da.Attr(UnitsAttr)
			Expect(v).To(Equal(`$\mathrm{km\,s^{-1}}$`))
		})
	})
})
