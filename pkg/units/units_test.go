package units

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/util/json"
)

var _ = Describe("Units", func() {
	var km, m, mm, s Unit

	BeforeEach(func() {
		km, m, mm, s = MustParse("km"), MustParse("m"), MustParse("mm"), MustParse("s")
	})

	Describe("Unit algebra", func() {
		It("should multiply and divide units", func() {
			Expect(km.Mul(m).String()).To(Equal("km m"))
			Expect(km.Mul(km).String()).To(Equal("km2"))
			Expect(km.Div(s).String()).To(Equal("km s-1"))
			Expect(mm.Div(km).String()).To(Equal("mm km-1"))
			Expect(km.Div(km).Equal(Dimensionless)).To(BeTrue())
		})

		It("should raise units to integral powers only", func() {
			u, err := MustParse("m2").Pow(0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Equal(m)).To(BeTrue())

			u, err = km.Pow(-2)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.String()).To(Equal("km-2"))

			_, err = m.Pow(0.5)
			Expect(err).To(HaveOccurred())
		})

		It("should compute scales and dimensions", func() {
			Expect(km.Scale()).To(BeNumerically("~", 1e3))
			Expect(MustParse("kg").Scale()).To(BeNumerically("~", 1))
			Expect(km.IsConvertible(mm)).To(BeTrue())
			Expect(km.IsConvertible(s)).To(BeFalse())
			Expect(MustParse("km m-1").IsDimensionless()).To(BeTrue())
			Expect(MustParse("km m-1").Scale()).To(BeNumerically("~", 1e3))
		})

		It("should decompose into base units", func() {
			u, scale := km.Decompose()
			Expect(u.String()).To(Equal("m"))
			Expect(scale).To(BeNumerically("~", 1e3))

			u, scale = MustParse("J").Decompose()
			Expect(u.String()).To(Equal("m2 kg s-2"))
			Expect(scale).To(BeNumerically("~", 1))

			u, scale = MustParse("km").CGS()
			Expect(u.String()).To(Equal("cm"))
			Expect(scale).To(BeNumerically("~", 1e5))
		})

		It("should format units", func() {
			u := MustParse("m s-1")
			Expect(u.Format(FormatCDS)).To(Equal("m.s-1"))
			Expect(u.Format(FormatUnicode)).To(Equal("m s⁻¹"))
			Expect(u.Format(FormatLaTeX)).To(Equal(`$\mathrm{m\,s^{-1}}$`))

			_, err := u.Format("invalid")
			Expect(err).To(MatchError(ErrUnitsConversion))
		})
	})

	Describe("Conversion", func() {
		It("should convert between convertible units", func() {
			vs, err := Convert([]float64{1, 2, 3}, km, mm)
			Expect(err).NotTo(HaveOccurred())
			Expect(vs).To(HaveLen(3))
			for i, v := range []float64{1e6, 2e6, 3e6} {
				Expect(vs[i]).To(BeNumerically("~", v, 1e-6))
			}
		})

		It("should convert offset units", func() {
			v, err := ConvertValue(0, MustParse("deg_C"), MustParse("K"))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", 273.15, 1e-9))

			v, err = ConvertValue(300, MustParse("K"), MustParse("deg_C"))
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", 26.85, 1e-9))
		})

		It("should honour offsets when converting through equivalencies", func() {
			v, err := ConvertValue(0, MustParse("deg_C"), MustParse("J"), TemperatureEnergy())
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", 273.15*Boltzmann, 1e-30))

			v, err = ConvertValue(273.15*Boltzmann, MustParse("J"), MustParse("deg_C"), TemperatureEnergy())
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", 0, 1e-9))
		})

		It("should reject out-of-range powers", func() {
			_, err := km.Pow(1e19)
			Expect(err).To(HaveOccurred())
		})

		It("should refuse to convert incompatible units", func() {
			_, err := ConvertValue(1, km, s)
			Expect(err).To(MatchError(ErrUnitsConversion))
		})

		It("should convert through equivalencies", func() {
			hz := MustParse("Hz")
			_, err := ConvertValue(1, km, hz)
			Expect(err).To(MatchError(ErrUnitsConversion))

			v, err := ConvertValue(1, km, hz, Spectral())
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", SpeedOfLight/1e3, 1e-6))

			back, err := ConvertValue(v, hz, km, Spectral())
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(BeNumerically("~", 1, 1e-12))
		})

		It("should resolve equivalencies by name", func() {
			eqs, err := EquivalenciesByName("spectral", "mass_energy")
			Expect(err).NotTo(HaveOccurred())
			Expect(eqs).To(HaveLen(2))

			v, err := ConvertValue(1, MustParse("kg"), MustParse("J"), eqs...)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNumerically("~", SpeedOfLight*SpeedOfLight, 1))

			_, err = EquivalenciesByName("unknown")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Combining units", func() {
		DescribeTable("should derive the unit of the result",
			func(op Operator, left, right string, expected string) {
				u, err := Combine(op, MustParse(left), MustParse(right))
				Expect(err).NotTo(HaveOccurred())
				if expected == "" {
					Expect(u).To(BeNil())
					return
				}
				Expect(u).NotTo(BeNil())
				Expect(u.String()).To(Equal(expected))
			},
			Entry("mul", OpMul, "km", "m", "km m"),
			Entry("mul by a pure number", OpMul, "km", "1", "km"),
			Entry("matmul", OpMatMul, "km", "mm", "km mm"),
			Entry("truediv", OpTrueDiv, "mm", "km", "mm km-1"),
			Entry("add", OpAdd, "km", "m", "km"),
			Entry("sub", OpSub, "mm", "km", "mm"),
			Entry("floordiv", OpFloorDiv, "km", "m", "1"),
			Entry("mod", OpMod, "km", "m", "km"),
			Entry("lt", OpLt, "km", "m", ""),
			Entry("eq", OpEq, "km", "m", ""),
		)

		DescribeTable("should reject incompatible units",
			func(op Operator, left, right string) {
				_, err := Combine(op, MustParse(left), MustParse(right))
				Expect(err).To(MatchError(ErrUnitsConversion))
			},
			Entry("add a pure number", OpAdd, "km", "1"),
			Entry("sub seconds", OpSub, "km", "s"),
			Entry("compare seconds", OpGt, "km", "s"),
			Entry("ne seconds", OpNe, "km", "s"),
		)

		It("should combine the power operator on the actual exponent", func() {
			u, err := CombineQuantity(OpPow, km, Quantity{Value: 2, Unit: Dimensionless})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.String()).To(Equal("km2"))

			u, err = CombineQuantity(OpPow, km, Quantity{Value: 2, Unit: MustParse("km m-1")})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.String()).To(Equal("km2000"))

			_, err = CombineQuantity(OpPow, km, Quantity{Value: 2000, Unit: m})
			Expect(err).To(HaveOccurred())
		})

		It("should evaluate operators on quantities", func() {
			out, err := Operate(OpAdd, Quantity{Value: 1, Unit: km}, Quantity{Value: 2000, Unit: m})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Value).To(BeNumerically("~", 3))
			Expect(out.Unit.String()).To(Equal("km"))

			out, err = Operate(OpMod, Quantity{Value: -1, Unit: km}, Quantity{Value: 2000, Unit: m})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Value).To(BeNumerically("~", 1))

			out, err = Operate(OpLe, Quantity{Value: 2, Unit: km}, Quantity{Value: 2000, Unit: m})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Unit).To(BeNil())
			Expect(out.Value).To(Equal(1.0))

			q := Quantity{Value: 2, Unit: km}
			Expect(q.SI().Value()).To(BeNumerically("~", 2000))
		})
	})

	Describe("Methods", func() {
		It("should apply named transformations", func() {
			sqrt, err := LookupMethod("sqrt")
			Expect(err).NotTo(HaveOccurred())
			vs, u, err := sqrt([]float64{4, 9}, MustParse("m2"))
			Expect(err).NotTo(HaveOccurred())
			Expect(vs).To(Equal([]float64{2, 3}))
			Expect(u.String()).To(Equal("m"))

			to, err := LookupMethod("to")
			Expect(err).NotTo(HaveOccurred())
			vs, u, err = to([]float64{1}, km, "m")
			Expect(err).NotTo(HaveOccurred())
			Expect(vs[0]).To(BeNumerically("~", 1e3))
			Expect(u.String()).To(Equal("m"))

			vs, _, err = to([]float64{1}, km, "Hz", "spectral")
			Expect(err).NotTo(HaveOccurred())
			Expect(vs[0]).To(BeNumerically("~", SpeedOfLight/1e3, 1e-6))

			_, _, err = to([]float64{1}, km, "s")
			Expect(err).To(HaveOccurred())

			_, err = LookupMethod("unknown")
			Expect(err).To(HaveOccurred())
			Expect(MethodNames()).To(ContainElements("to", "decompose", "si", "cgs"))
			Expect(math.IsNaN(FloorMod(1, 0))).To(BeTrue())
		})
	})
})

var _ = Describe("Serialization", func() {
	It("should marshal quantities", func() {
		q, err := NewQuantity(2000, "m s-1")
		Expect(err).NotTo(HaveOccurred())
		b, err := json.Marshal(q)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(Equal(`{"value":2000,"units":"m s-1"}`))

		var r Quantity
		Expect(json.Unmarshal(b, &r)).To(Succeed())
		Expect(r.Value).To(Equal(2000.0))
		Expect(r.Unit.Equal(q.Unit)).To(BeTrue())

		Expect(json.Unmarshal([]byte(`{"value":1,"units":"m, s"}`), &r)).To(MatchError(ErrUnitsNotValid))
	})
})
