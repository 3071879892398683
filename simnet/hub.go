// Package simnet is a trivial in-process stand-in for a real network:
// each device's last outbound message is handed verbatim to its
// declared neighbors on the next round. It exists purely to drive the
// engine and example programs end-to-end in a single process; it is not
// part of the execution core and has no opinion about transport, timing,
// loss, or reordering.
package simnet

import (
	"sync"

	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/message"
	"github.com/sarchlab/aggre/serial"
)

// Hub relays outbound bytes between a fixed set of devices according to
// a static neighbor graph. Safe for concurrent use by one goroutine per
// device.
type Hub[Id ident.Id[Id]] struct {
	mu         sync.Mutex
	neighbors  map[Id][]Id
	serializer serial.Serializer
	lastRound  map[Id][]byte
}

// NewHub builds a Hub over the given neighbor graph (device id -> the
// ids it can hear from) using serializer to decode each outbound
// message's wire envelope.
func NewHub[Id ident.Id[Id]](neighbors map[Id][]Id, serializer serial.Serializer) *Hub[Id] {
	return &Hub[Id]{
		neighbors:  neighbors,
		serializer: serializer,
		lastRound:  make(map[Id][]byte),
	}
}

// NetworkFor returns the engine.Network view of the hub for one device.
func (h *Hub[Id]) NetworkFor(id Id) *DeviceNetwork[Id] {
	return &DeviceNetwork[Id]{hub: h, id: id}
}

// DeviceNetwork adapts a Hub to the engine.Network contract for exactly
// one device.
type DeviceNetwork[Id ident.Id[Id]] struct {
	hub *Hub[Id]
	id  Id
}

// PrepareInbound composes an InboundMessage from whatever each declared
// neighbor last put in the hub; a neighbor that hasn't produced output
// yet (e.g. round one) is simply absent, not an error.
func (n *DeviceNetwork[Id]) PrepareInbound() message.InboundMessage[Id] {
	n.hub.mu.Lock()
	defer n.hub.mu.Unlock()

	trees := make(map[Id]message.ValueTree)
	for _, neighborID := range n.hub.neighbors[n.id] {
		data, ok := n.hub.lastRound[neighborID]
		if !ok {
			continue
		}
		sender, vt, err := message.DecodeValueTree[Id](n.hub.serializer, data)
		if err != nil || sender != neighborID {
			continue
		}
		trees[neighborID] = vt
	}
	return message.NewInboundMessage(trees)
}

// PrepareOutbound stores this round's serialized outbound bytes so that
// this device's neighbors can read it back out next round.
func (n *DeviceNetwork[Id]) PrepareOutbound(data []byte) {
	n.hub.mu.Lock()
	defer n.hub.mu.Unlock()
	n.hub.lastRound[n.id] = data
}
