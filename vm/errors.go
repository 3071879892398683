package vm

import (
	"fmt"

	"github.com/sarchlab/aggre/alignment"
)

// SerializationError reports that the Serializer failed to encode a
// value a program passed to neighboring or share.
type SerializationError struct {
	Path alignment.Path
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("vm: serialization failed at path %q: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// DeserializationError reports that the Serializer failed to decode a
// neighbor's bytes at a path neighboring or share just aligned on.
type DeserializationError struct {
	Path alignment.Path
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("vm: deserialization failed at path %q: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }
