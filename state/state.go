// Package state implements the per-path persistent store that survives
// across rounds for the lifetime of a VM. The store is heterogeneous:
// different paths hold different value types, but a given path must
// always carry the same type across rounds — a violation is a programmer
// error and is reported, not silently corrected.
package state

import (
	"fmt"

	"github.com/sarchlab/aggre/alignment"
)

type entry struct {
	typeName string
	value    any
}

// State is a mapping from Path to a typed, tagged value. Entries are
// created on first visit to a persistent primitive (repeat, share) at
// their path and overwritten on every subsequent visit. Per the open
// question, this implementation never evicts entries for
// paths that go unvisited in a later round: retain-forever is simplest
// and nothing requires eviction.
type State struct {
	entries map[string]entry
}

// New returns an empty state store.
func New() *State {
	return &State{entries: make(map[string]entry)}
}

// TypeMismatchError reports that a path already holds a value of a
// different type than the one just requested. It is a programmer error:
// the same alignment path must always be used for the same value type.
type TypeMismatchError struct {
	Path     alignment.Path
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("state: type mismatch at path %q: expected %s, found %s", e.Path, e.Expected, e.Actual)
}

func typeName[V any]() string {
	var zero V
	return fmt.Sprintf("%T", zero)
}

// Get retrieves the value stored at path, typed as V. found is false if
// no entry exists at path. A *TypeMismatchError is returned, never
// panicked, if the stored type does not match V; callers that treat this
// as fatal (as the VM primitives do) are responsible for surfacing it as
// such.
func Get[V any](s *State, path alignment.Path) (value V, found bool, err error) {
	e, ok := s.entries[path.Key()]
	if !ok {
		return value, false, nil
	}
	v, ok := e.value.(V)
	if !ok {
		return value, false, &TypeMismatchError{Path: path, Expected: typeName[V](), Actual: e.typeName}
	}
	return v, true, nil
}

// Insert stores value at path, always overwriting whatever was there.
func Insert[V any](s *State, path alignment.Path, value V) {
	s.entries[path.Key()] = entry{typeName: typeName[V](), value: value}
}

// Snapshot returns the set of paths currently populated, for inspection
// and tests.
func (s *State) Snapshot() []alignment.Path {
	out := make([]alignment.Path, 0, len(s.entries))
	for k := range s.entries {
		p, err := alignment.ParsePath(k)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
