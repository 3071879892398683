// Package engine binds a VM to a Network, one round at a time: pull
// inbound, run the user program, push outbound. It owns the only I/O
// the system performs — the VM itself never touches the network.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/message"
	"github.com/sarchlab/aggre/serial"
	"github.com/sarchlab/aggre/state"
	"github.com/sarchlab/aggre/vm"
)

const (
	// LevelTrace sits one step above slog.LevelInfo, mirroring the
	// teacher's core/util.go LevelTrace/LevelWaveform convention for a
	// verbose, opt-in logging tier.
	LevelTrace slog.Level = slog.LevelInfo + 1

	// DebugEnabled gates the per-round trace log. Flip to true when
	// chasing a misbehaving program; left off by default since it is
	// one log line per round per device.
	DebugEnabled = false
)

// Network is the host's side of the contract: it buffers peer messages
// between rounds and composes them into this round's InboundMessage, and
// accepts the bytes this round produced for delivery to peers next round.
type Network[Id ident.Id[Id]] interface {
	PrepareInbound() message.InboundMessage[Id]
	PrepareOutbound(data []byte)
}

// Program is a pure function of the round's environment and the VM;
// it may call neighboring/repeat/share/branch and arbitrary pure code,
// but must not retain a Field across rounds or call primitives outside
// the round engine.Cycle drives.
type Program[Id ident.Id[Id], Env any, Out any] func(env Env, v *vm.VM[Id]) (Out, error)

// Engine owns one device's VM and the Network it talks to, and advances
// the pair one round at a time via Cycle.
type Engine[Id ident.Id[Id], Env any, Out any] struct {
	vm      *vm.VM[Id]
	network Network[Id]
	logger  *slog.Logger
}

// New returns an Engine for localID, talking to network, with an empty
// starting state. A nil logger defaults to slog.Default().
func New[Id ident.Id[Id], Env any, Out any](
	localID Id,
	serializer serial.Serializer,
	network Network[Id],
	logger *slog.Logger,
) *Engine[Id, Env, Out] {
	return NewWithState[Id, Env, Out](localID, serializer, network, state.New(), logger)
}

// NewWithState is New, but seeded with a pre-existing state store —
// for resuming a device or for tests.
func NewWithState[Id ident.Id[Id], Env any, Out any](
	localID Id,
	serializer serial.Serializer,
	network Network[Id],
	st *state.State,
	logger *slog.Logger,
) *Engine[Id, Env, Out] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine[Id, Env, Out]{
		vm:      vm.NewWithState(localID, serializer, st),
		network: network,
		logger:  logger,
	}
}

// Cycle runs exactly one round: pull inbound from the network, prepare
// the VM for a new round, run program against (env, vm), push the
// serialized outbound to the network, and return the program's result.
//
// A type-mismatch between this round's state access and a previous
// round's is a programmer error (vm/primitives.go panics on it per the
// fatal taxonomy); Cycle recovers it, logs the round as skipped, and
// returns the panic value as an error rather than crashing the process
// (a panic value that is not an error is replaced by a generic error) —
// "may log and skip the round" is explicitly a policy the Engine owns,
// not the VM.
func (e *Engine[Id, Env, Out]) Cycle(env Env, program Program[Id, Env, Out]) (out Out, err error) {
	inbound := e.network.PrepareInbound()
	e.vm.PrepareNewRound(inbound)

	defer func() {
		if r := recover(); r != nil {
			recoveredErr, ok := r.(error)
			if !ok {
				recoveredErr = errors.New("engine: non-error panic recovered from round")
			}
			e.logger.Warn("round skipped after fatal error", "error", recoveredErr)
			err = recoveredErr
		}
	}()

	out, err = program(env, e.vm)
	if err != nil {
		e.logger.Warn("round skipped after program error", "error", err)
		return out, err
	}

	data, err := e.vm.GetOutboundBytes()
	if err != nil {
		e.logger.Warn("round skipped, outbound serialization failed", "error", err)
		return out, err
	}

	e.network.PrepareOutbound(data)

	if DebugEnabled {
		e.logger.Log(context.Background(), LevelTrace, "round complete",
			"localID", e.vm.LocalID, "stackDepth", e.vm.StackDepth())
	}

	return out, nil
}

// LocalID exposes the device identity the engine's VM is running as.
func (e *Engine[Id, Env, Out]) LocalID() Id { return e.vm.LocalID }
