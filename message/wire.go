package message

import (
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/serial"
)

// DecodeValueTree deserializes the bytes a VM produced from GetOutboundBytes
// back into the sender's id and its ValueTree.
// It is used by Network implementations (such as simnet.Hub) to turn the
// raw bytes one neighbor sent last round into the ValueTree an
// InboundMessage needs for the next round — a responsibility that
// belongs to the network, not the VM.
func DecodeValueTree[Id ident.Id[Id]](s serial.Serializer, data []byte) (Id, ValueTree, error) {
	env, err := serial.Decode[wireEnvelope[Id]](s, data)
	if err != nil {
		var zero Id
		return zero, ValueTree{}, err
	}

	underlying := make(map[string][]byte, len(env.Entries))
	for _, e := range env.Entries {
		underlying[e.Path] = e.Bytes
	}
	return env.Sender, NewValueTree(underlying), nil
}
