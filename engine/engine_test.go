package engine_test

import (
	"errors"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/aggre/engine"
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/message"
	"github.com/sarchlab/aggre/serial"
	"github.com/sarchlab/aggre/vm"
)

var _ = Describe("Engine", func() {
	var (
		ctrl    *gomock.Controller
		network *MockNetwork[ident.Uint32]
		s       serial.Serializer
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		network = NewMockNetwork[ident.Uint32](ctrl)
		s = serial.JSON{}
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("pulls inbound, runs the program, and pushes outbound on a clean round", func() {
		network.EXPECT().PrepareInbound().Return(message.EmptyInbound[ident.Uint32]())
		network.EXPECT().PrepareOutbound(gomock.Any())

		e := engine.New[ident.Uint32, struct{}, int](0, s, network, nil)
		program := func(_ struct{}, v *vm.VM[ident.Uint32]) (int, error) {
			f, err := vm.Neighboring(v, 3)
			if err != nil {
				return 0, err
			}
			return f.Local(), nil
		}

		out, err := e.Cycle(struct{}{}, program)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(3))
	})

	It("propagates a program error without pushing outbound", func() {
		network.EXPECT().PrepareInbound().Return(message.EmptyInbound[ident.Uint32]())

		e := engine.New[ident.Uint32, struct{}, int](0, s, network, nil)
		boom := errors.New("boom")
		program := func(_ struct{}, _ *vm.VM[ident.Uint32]) (int, error) {
			return 0, boom
		}

		_, err := e.Cycle(struct{}{}, program)
		Expect(err).To(MatchError(boom))
	})

	It("recovers a fatal type-mismatch panic into a returned error instead of crashing", func() {
		network.EXPECT().PrepareInbound().Return(message.EmptyInbound[ident.Uint32]()).Times(2)

		e := engine.New[ident.Uint32, struct{}, int](0, s, network, nil)

		_, err := e.Cycle(struct{}{}, func(_ struct{}, v *vm.VM[ident.Uint32]) (int, error) {
			return vm.Repeat(v, int32(0), func(prev int32, _ *vm.VM[ident.Uint32]) int32 { return prev }), nil
		})
		Expect(err).NotTo(HaveOccurred())

		out, err := e.Cycle(struct{}{}, func(_ struct{}, v *vm.VM[ident.Uint32]) (int, error) {
			vm.Repeat(v, "hello", func(prev string, _ *vm.VM[ident.Uint32]) string { return prev })
			return 0, nil
		})
		Expect(err).To(HaveOccurred())
		Expect(out).To(Equal(0))
	})
})
