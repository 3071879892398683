package serial

import "gopkg.in/yaml.v3"

// YAML is a second Serializer implementation, built on gopkg.in/yaml.v3.
// It exists to exercise the VM's pluggable serializer contract with a
// second codec rather than leaving Serializer with a single hard-wired
// implementation.
type YAML struct{}

func (YAML) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

func (YAML) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }
