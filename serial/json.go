package serial

import "encoding/json"

// JSON is the default Serializer, backed by the standard library's
// encoding/json. No third-party wire codec appears anywhere in the
// example corpus this core was grounded on, so encoding/json is used
// directly rather than adopting one speculatively (see DESIGN.md).
//
// encoding/json sorts map keys with string keys when marshaling, which
// makes this serializer deterministic for the map-shaped values the VM
// passes to it; OutboundMessage additionally guarantees determinism by
// encoding its path entries as a sorted slice rather than relying on
// that behavior (see message.OutboundMessage).
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
