// Package serial defines the pluggable serializer contract the VM is
// polymorphic over, plus the generic Encode/Decode helpers the rest of the
// core uses to serialize values transiting the wire. Serializer
// implementations must be deterministic: repeated serialization of equal
// values yields equal bytes.
package serial

// Serializer is an opaque codec for values transiting the wire. It is
// deliberately not itself generic — Go does not allow a generic method,
// so the per-call type parameter lives on the free functions Encode and
// Decode instead (the "generic primitive with per-instantiation codegen"
// option, used throughout this codebase).
type Serializer interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Encode serializes value using s.
func Encode[T any](s Serializer, value T) ([]byte, error) {
	return s.Marshal(value)
}

// Decode deserializes data into a T using s.
func Decode[T any](s Serializer, data []byte) (T, error) {
	var value T
	err := s.Unmarshal(data, &value)
	return value, err
}
