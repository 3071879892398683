package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/aggre/field"
	"github.com/sarchlab/aggre/ident"
)

func u(v uint32) ident.Uint32 { return ident.Uint32(v) }

var _ = Describe("Field", func() {
	It("returns the default from Local", func() {
		f := field.New[ident.Uint32](42, map[ident.Uint32]int{1: 100, 2: 200})
		Expect(f.Local()).To(Equal(42))
	})

	It("reports size as 1 plus the override count", func() {
		f := field.New[ident.Uint32](42, map[ident.Uint32]int{1: 100, 2: 200})
		Expect(f.Size()).To(Equal(3))
	})

	Describe("AlignedMap", func() {
		It("keeps only keys present in both overrides", func() {
			f1 := field.New[ident.Uint32](1, map[ident.Uint32]int{10: 2, 20: 3})
			f2 := field.New[ident.Uint32](4, map[ident.Uint32]int{10: 5, 30: 6})

			result := field.AlignedMap(f1, f2, func(a, b int) int { return a + b })

			Expect(result.Local()).To(Equal(5))
			overrides := result.Overrides()
			Expect(overrides).To(HaveLen(1))
			Expect(overrides[u(10)]).To(Equal(7))
		})

		It("produces an empty override set when there is no overlap", func() {
			f1 := field.New[ident.Uint32](1, map[ident.Uint32]int{10: 2})
			f2 := field.New[ident.Uint32](4, map[ident.Uint32]int{20: 5})

			result := field.AlignedMap(f1, f2, func(a, b int) int { return a - b })

			Expect(result.Local()).To(Equal(-3))
			Expect(result.Overrides()).To(BeEmpty())
		})

		It("is a sub-map of the intersection of both override keysets", func() {
			f1 := field.New[ident.Uint32](0, map[ident.Uint32]int{1: 10, 2: 20, 3: 30})
			f2 := field.New[ident.Uint32](100, map[ident.Uint32]int{2: 200, 3: 300, 4: 400})

			result := field.AlignedMap(f1, f2, func(a, b int) int { return a + b })

			for _, id := range result.Ids() {
				_, inF1 := f1.Overrides()[id]
				_, inF2 := f2.Overrides()[id]
				Expect(inF1).To(BeTrue())
				Expect(inF2).To(BeTrue())
			}
		})
	})

	Describe("MinBy and MaxBy", func() {
		cmp := func(a, b float64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}

		It("finds the minimum across default and overrides", func() {
			f := field.New[ident.Uint32](5.0, map[ident.Uint32]float64{1: 2.0, 2: 9.0})
			Expect(field.MinBy(f, cmp)).To(Equal(2.0))
		})

		It("finds the maximum across default and overrides", func() {
			f := field.New[ident.Uint32](5.0, map[ident.Uint32]float64{1: 2.0, 2: 9.0})
			Expect(field.MaxBy(f, cmp)).To(Equal(9.0))
		})

		It("falls back to the default when there are no overrides", func() {
			f := field.New[ident.Uint32](5.0, map[ident.Uint32]float64{})
			Expect(field.MinBy(f, cmp)).To(Equal(5.0))
			Expect(field.MaxBy(f, cmp)).To(Equal(5.0))
		})
	})

	It("folds over the default and every override", func() {
		f := field.New[ident.Uint32](1, map[ident.Uint32]int{1: 2, 2: 3})
		sum := field.Fold(f, 0, func(acc, v int) int { return acc + v })
		Expect(sum).To(Equal(6))
	})
})
