// Package vm implements the virtual machine that makes an aggregate
// computing program well-defined: the three-plus-one primitives
// (neighboring, repeat, branch, share) built on top of the alignment,
// field, state, message, and serial packages.
package vm

import (
	"github.com/sarchlab/aggre/alignment"
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/message"
	"github.com/sarchlab/aggre/serial"
	"github.com/sarchlab/aggre/state"
)

// VM holds everything one device needs to evaluate one round of an
// aggregate program: its own identity, its persistent state, the
// inbound/outbound messages for the current round, the alignment stack,
// and the serializer used for every value that transits the wire.
type VM[Id ident.Id[Id]] struct {
	LocalID Id

	state      *state.State
	inbound    message.InboundMessage[Id]
	outbound   *message.OutboundMessage[Id]
	stack      *alignment.Stack
	serializer serial.Serializer
}

// New returns a VM with empty state, ready for its first round.
func New[Id ident.Id[Id]](localID Id, serializer serial.Serializer) *VM[Id] {
	return NewWithState(localID, serializer, state.New())
}

// NewWithState returns a VM seeded with a pre-existing state store, for
// tests and for resuming a device's execution from a snapshot.
func NewWithState[Id ident.Id[Id]](localID Id, serializer serial.Serializer, st *state.State) *VM[Id] {
	return &VM[Id]{
		LocalID:    localID,
		state:      st,
		inbound:    message.EmptyInbound[Id](),
		outbound:   message.NewOutboundMessage(localID),
		stack:      alignment.NewStack(),
		serializer: serializer,
	}
}

// PrepareNewRound replaces the inbound message, starts a fresh empty
// outbound message, and resets the alignment stack. State is not
// cleared: it survives across rounds.
func (v *VM[Id]) PrepareNewRound(inbound message.InboundMessage[Id]) {
	v.inbound = inbound
	v.outbound = message.NewOutboundMessage(v.LocalID)
	v.stack.Reset()
}

// Outbound exposes the in-progress outbound message, mainly for tests and
// debug tooling that want to inspect what a round wrote before it ends.
func (v *VM[Id]) Outbound() *message.OutboundMessage[Id] { return v.outbound }

// GetOutboundBytes serializes the round's outbound message with the VM's
// configured serializer.
func (v *VM[Id]) GetOutboundBytes() ([]byte, error) {
	data, err := serial.Encode[message.OutboundMessage[Id]](v.serializer, *v.outbound)
	if err != nil {
		return nil, &SerializationError{Path: alignment.Root, Err: err}
	}
	return data, nil
}

// StackDepth exposes the alignment stack's depth, for tests asserting
// that every primitive call leaves the stack balanced after a round.
func (v *VM[Id]) StackDepth() int { return v.stack.Depth() }
