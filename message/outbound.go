package message

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sarchlab/aggre/alignment"
	"github.com/sarchlab/aggre/ident"
)

// DuplicateWriteError reports that a path was appended to an
// OutboundMessage more than once in the same round. The alignment
// discipline guarantees this cannot happen for a correct program — each
// primitive enters exactly one path frame — so this is always a
// programmer-error signal, and this implementation asserts it rather
// than silently letting the second write win.
type DuplicateWriteError struct {
	Path alignment.Path
}

func (e *DuplicateWriteError) Error() string {
	return fmt.Sprintf("message: path %q written twice in one round", e.Path)
}

// OutboundMessage is built up monotonically during a round and sealed by
// serialization at the end of the round.
type OutboundMessage[Id ident.Id[Id]] struct {
	sender  Id
	entries map[string][]byte
}

// NewOutboundMessage returns an empty OutboundMessage for sender.
func NewOutboundMessage[Id ident.Id[Id]](sender Id) *OutboundMessage[Id] {
	return &OutboundMessage[Id]{sender: sender, entries: make(map[string][]byte)}
}

// Sender returns the device id this message was built for.
func (m *OutboundMessage[Id]) Sender() Id { return m.sender }

// Append inserts (path, value). Each path may be written at most once per
// round.
func (m *OutboundMessage[Id]) Append(path alignment.Path, value []byte) error {
	key := path.Key()
	if _, exists := m.entries[key]; exists {
		return &DuplicateWriteError{Path: path}
	}
	m.entries[key] = value
	return nil
}

// At returns the bytes appended at path, if any.
func (m *OutboundMessage[Id]) At(path alignment.Path) ([]byte, bool) {
	v, ok := m.entries[path.Key()]
	return v, ok
}

// wireEntry is one (path, bytes) pair in the on-the-wire envelope. Using
// a slice rather than a bare map guarantees a stable iteration order
// under every Serializer: Go map iteration order is randomized, and not
// every codec sorts map keys the way encoding/json happens to for
// string-keyed maps, so relying on map order would break determinism
// for some pluggable serializers even though it holds for the default one.
type wireEntry struct {
	Path  string `json:"path" yaml:"path"`
	Bytes []byte `json:"bytes" yaml:"bytes"`
}

// wireEnvelope is the logical wire shape, represented with
// an ordered entry list instead of a raw map for the reason above.
type wireEnvelope[Id any] struct {
	Sender  Id          `json:"sender" yaml:"sender"`
	Entries []wireEntry `json:"underlying" yaml:"underlying"`
}

func (m *OutboundMessage[Id]) toWire() wireEnvelope[Id] {
	entries := make([]wireEntry, 0, len(m.entries))
	for k, v := range m.entries {
		entries = append(entries, wireEntry{Path: k, Bytes: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return wireEnvelope[Id]{Sender: m.sender, Entries: entries}
}

// MarshalJSON implements json.Marshaler, encoding the sorted entry list
// regardless of Go's map iteration order.
func (m OutboundMessage[Id]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.toWire())
}

// MarshalYAML implements yaml.Marshaler for the same reason.
func (m OutboundMessage[Id]) MarshalYAML() (any, error) {
	return m.toWire(), nil
}
