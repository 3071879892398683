package message_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/aggre/alignment"
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/message"
	"github.com/sarchlab/aggre/serial"
)

var _ = Describe("ValueTree", func() {
	It("reports contains and get consistently", func() {
		st := alignment.NewStack()
		p := st.Align("neighboring")

		vt := message.NewValueTree(map[string][]byte{p.Key(): []byte("hi")})
		Expect(vt.Contains(p)).To(BeTrue())
		b, ok := vt.Get(p)
		Expect(ok).To(BeTrue())
		Expect(b).To(Equal([]byte("hi")))

		other, _ := alignment.ParsePath("other:0")
		Expect(vt.Contains(other)).To(BeFalse())
	})
})

var _ = Describe("InboundMessage", func() {
	It("returns neighbor values at a path in ascending id order", func() {
		st := alignment.NewStack()
		p := st.Align("neighboring")

		msg := message.NewInboundMessage(map[ident.Uint32]message.ValueTree{
			3: message.NewValueTree(map[string][]byte{p.Key(): []byte("c")}),
			1: message.NewValueTree(map[string][]byte{p.Key(): []byte("a")}),
			2: message.NewValueTree(map[string][]byte{p.Key(): []byte("b")}),
		})

		got := msg.GetAtPath(p)
		Expect(got).To(HaveLen(3))
		Expect(got[0].ID).To(Equal(ident.Uint32(1)))
		Expect(got[1].ID).To(Equal(ident.Uint32(2)))
		Expect(got[2].ID).To(Equal(ident.Uint32(3)))
	})

	It("only reports devices that actually have an entry at the path", func() {
		st := alignment.NewStack()
		p := st.Align("share")
		other, _ := alignment.ParsePath("other:0")

		msg := message.NewInboundMessage(map[ident.Uint32]message.ValueTree{
			1: message.NewValueTree(map[string][]byte{p.Key(): []byte("x")}),
			2: message.NewValueTree(map[string][]byte{other.Key(): []byte("y")}),
		})

		Expect(msg.DevicesAtPath(p)).To(Equal([]ident.Uint32{1}))
	})
})

var _ = Describe("OutboundMessage", func() {
	It("rejects writing the same path twice", func() {
		st := alignment.NewStack()
		p := st.Align("neighboring")

		out := message.NewOutboundMessage(ident.Uint32(0))
		Expect(out.Append(p, []byte("a"))).To(Succeed())
		Expect(out.Append(p, []byte("b"))).To(HaveOccurred())
	})

	It("round-trips through DecodeValueTree", func() {
		st := alignment.NewStack()
		p := st.Align("neighboring")

		out := message.NewOutboundMessage(ident.Uint32(7))
		Expect(out.Append(p, []byte("payload"))).To(Succeed())

		data, err := serial.Encode[message.OutboundMessage[ident.Uint32]](serial.JSON{}, *out)
		Expect(err).NotTo(HaveOccurred())

		sender, vt, err := message.DecodeValueTree[ident.Uint32](serial.JSON{}, data)
		Expect(err).NotTo(HaveOccurred())
		Expect(sender).To(Equal(ident.Uint32(7)))

		b, ok := vt.Get(p)
		Expect(ok).To(BeTrue())
		Expect(b).To(Equal([]byte("payload")))
	})

	It("encodes deterministically across repeated calls", func() {
		st := alignment.NewStack()
		p1 := st.Align("neighboring")
		st.Unalign()
		p2 := st.Align("neighboring")

		build := func() []byte {
			out := message.NewOutboundMessage(ident.Uint32(1))
			_ = out.Append(p1, []byte("a"))
			_ = out.Append(p2, []byte("b"))
			data, _ := serial.Encode[message.OutboundMessage[ident.Uint32]](serial.JSON{}, *out)
			return data
		}

		Expect(build()).To(Equal(build()))
	})
})
