package vm

import (
	"github.com/sarchlab/aggre/field"
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/serial"
	"github.com/sarchlab/aggre/state"
)

// Neighboring shares value with neighbors and returns a Field combining
// this device's value with whatever each neighbor that reached the same
// program point (the same aligned path) sent last round. It cannot be a
// method on VM because Go does not allow a generic method to introduce a
// type parameter the receiver doesn't have; this free-function shape is
// the generic-primitive-with-per-instantiation-codegen pattern used
// throughout this package.
func Neighboring[Id ident.Id[Id], V any](v *VM[Id], value V) (field.Field[Id, V], error) {
	path := v.stack.Align("neighboring")

	overrides := make(map[Id]V)
	for _, nv := range v.inbound.GetAtPath(path) {
		decoded, err := serial.Decode[V](v.serializer, nv.Bytes)
		if err != nil {
			v.stack.Unalign()
			return field.Field[Id, V]{}, &DeserializationError{Path: path, Err: err}
		}
		overrides[nv.ID] = decoded
	}

	encoded, err := serial.Encode(v.serializer, value)
	if err != nil {
		v.stack.Unalign()
		return field.Field[Id, V]{}, &SerializationError{Path: path, Err: err}
	}

	if err := v.outbound.Append(path, encoded); err != nil {
		v.stack.Unalign()
		return field.Field[Id, V]{}, err
	}

	v.stack.Unalign()
	return field.New(value, overrides), nil
}

// Repeat maintains state across rounds: on the path's first visit it
// starts from initial, otherwise from whatever was stored last round, and
// returns evolution applied to that. evolution may re-enter the VM via
// further primitive calls. No value is emitted to outbound.
//
// A type mismatch between this call's V and a previous round's stored
// value at the same path is a programmer error, not a recoverable
// condition; it is panicked rather than returned, matching a reference
// implementation's behavior (a typed-state store panicking on downcast
// failure) and the convention of panicking on internal invariant
// violations rather than threading an error through every call site.
func Repeat[Id ident.Id[Id], V any](v *VM[Id], initial V, evolution func(prev V, v *VM[Id]) V) V {
	path := v.stack.Align("repeat")

	prev, found, err := state.Get[V](v.state, path)
	if err != nil {
		v.stack.Unalign()
		panic(err)
	}
	if !found {
		prev = initial
	}

	next := evolution(prev, v)
	state.Insert(v.state, path, next)
	v.stack.Unalign()
	return next
}

// Share behaves like Repeat but also communicates: the evolution
// function is handed a Field built from the previous round's state (as
// the default) and each neighbor's value at this path (as overrides), and
// whatever it returns is both the new persistent state and the value
// emitted to outbound.
func Share[Id ident.Id[Id], V any](v *VM[Id], initial V, evolution func(v *VM[Id], f field.Field[Id, V]) V) (V, error) {
	path := v.stack.Align("share")

	prev, found, err := state.Get[V](v.state, path)
	if err != nil {
		v.stack.Unalign()
		panic(err)
	}
	if !found {
		prev = initial
	}

	overrides := make(map[Id]V)
	for _, nv := range v.inbound.GetAtPath(path) {
		decoded, derr := serial.Decode[V](v.serializer, nv.Bytes)
		if derr != nil {
			v.stack.Unalign()
			var zero V
			return zero, &DeserializationError{Path: path, Err: derr}
		}
		overrides[nv.ID] = decoded
	}

	next := evolution(v, field.New(prev, overrides))
	state.Insert(v.state, path, next)

	encoded, err := serial.Encode(v.serializer, next)
	if err != nil {
		v.stack.Unalign()
		return next, &SerializationError{Path: path, Err: err}
	}
	if err := v.outbound.Append(path, encoded); err != nil {
		v.stack.Unalign()
		return next, err
	}

	v.stack.Unalign()
	return next, nil
}

// Branch evaluates th if condition holds, el otherwise — never both. The
// token aligned on differs per condition ("branch[true]" vs
// "branch[false]"), so a neighbor that took the other branch sits on a
// different path and is automatically excluded from every
// neighboring/share field evaluated inside: this is how branch projects
// fields onto the subset of devices that aligned the same way.
func Branch[Id ident.Id[Id], V any](v *VM[Id], condition bool, th func(v *VM[Id]) V, el func(v *VM[Id]) V) V {
	if condition {
		v.stack.Align("branch[true]")
	} else {
		v.stack.Align("branch[false]")
	}

	var result V
	if condition {
		result = th(v)
	} else {
		result = el(v)
	}

	v.stack.Unalign()
	return result
}
