// Package message implements the wire-facing data structures: the
// immutable per-neighbor ValueTree, the InboundMessage that aggregates
// one ValueTree per neighbor for the current round, and the
// OutboundMessage a device builds up as it executes the round's program.
package message

import "github.com/sarchlab/aggre/alignment"

// ValueTree is an immutable mapping from Path to the serialized bytes a
// neighbor emitted at that path on its last round.
type ValueTree struct {
	underlying map[string][]byte
}

// EmptyValueTree returns a ValueTree with no entries.
func EmptyValueTree() ValueTree {
	return ValueTree{underlying: map[string][]byte{}}
}

// NewValueTree builds a ValueTree from a path-keyed map of bytes.
func NewValueTree(underlying map[string][]byte) ValueTree {
	cp := make(map[string][]byte, len(underlying))
	for k, v := range underlying {
		cp[k] = v
	}
	return ValueTree{underlying: cp}
}

// Contains reports whether path has an entry in this tree.
func (vt ValueTree) Contains(path alignment.Path) bool {
	_, ok := vt.underlying[path.Key()]
	return ok
}

// Get returns the bytes stored at path, if any.
func (vt ValueTree) Get(path alignment.Path) ([]byte, bool) {
	v, ok := vt.underlying[path.Key()]
	return v, ok
}
