package state_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/aggre/alignment"
	"github.com/sarchlab/aggre/state"
)

var _ = Describe("State", func() {
	var (
		s    *state.State
		path alignment.Path
	)

	BeforeEach(func() {
		s = state.New()
		st := alignment.NewStack()
		path = st.Align("repeat")
	})

	It("returns found=false for a path never inserted", func() {
		_, found, err := state.Get[int](s, path)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
	})

	It("returns the inserted value", func() {
		state.Insert(s, path, 42)
		v, found, err := state.Get[int](s, path)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(v).To(Equal(42))
	})

	It("always overwrites on Insert", func() {
		state.Insert(s, path, 1)
		state.Insert(s, path, 2)
		v, _, _ := state.Get[int](s, path)
		Expect(v).To(Equal(2))
	})

	It("reports a type mismatch instead of silently coercing", func() {
		state.Insert(s, path, "hello")
		_, _, err := state.Get[int](s, path)
		Expect(err).To(HaveOccurred())

		var mismatch *state.TypeMismatchError
		Expect(err).To(BeAssignableToTypeOf(mismatch))
	})
})
