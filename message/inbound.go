package message

import (
	"sort"

	"github.com/sarchlab/aggre/alignment"
	"github.com/sarchlab/aggre/ident"
)

// NeighborValue pairs a neighbor id with the bytes it had at some path.
type NeighborValue[Id ident.Id[Id]] struct {
	ID    Id
	Bytes []byte
}

// InboundMessage is the read-only, per-round view of what every neighbor
// emitted on its last round: a mapping from neighbor id to its ValueTree.
type InboundMessage[Id ident.Id[Id]] struct {
	underlying map[Id]ValueTree
}

// EmptyInbound returns an InboundMessage with no neighbors, the state a
// freshly constructed VM starts with.
func EmptyInbound[Id ident.Id[Id]]() InboundMessage[Id] {
	return InboundMessage[Id]{underlying: map[Id]ValueTree{}}
}

// NewInboundMessage builds an InboundMessage from a per-neighbor map of
// ValueTrees.
func NewInboundMessage[Id ident.Id[Id]](underlying map[Id]ValueTree) InboundMessage[Id] {
	cp := make(map[Id]ValueTree, len(underlying))
	for k, v := range underlying {
		cp[k] = v
	}
	return InboundMessage[Id]{underlying: cp}
}

// Get returns the ValueTree for the given neighbor, if present.
func (m InboundMessage[Id]) Get(id Id) (ValueTree, bool) {
	vt, ok := m.underlying[id]
	return vt, ok
}

// GetAtPath returns the bytes every neighbor whose ValueTree contains path
// had there, ordered by neighbor id.
func (m InboundMessage[Id]) GetAtPath(path alignment.Path) []NeighborValue[Id] {
	out := make([]NeighborValue[Id], 0, len(m.underlying))
	for id, vt := range m.underlying {
		if b, ok := vt.Get(path); ok {
			out = append(out, NeighborValue[Id]{ID: id, Bytes: b})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Compare(out[j].ID) < 0 })
	return out
}

// DevicesAtPath returns, in ascending order, the neighbor ids whose
// ValueTree contains path. Useful for programs that only need neighbor
// presence, not payload.
func (m InboundMessage[Id]) DevicesAtPath(path alignment.Path) []Id {
	out := make([]Id, 0, len(m.underlying))
	for id, vt := range m.underlying {
		if vt.Contains(path) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}
