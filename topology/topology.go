// Package topology loads a static neighbor graph from YAML, the
// simplest possible stand-in for real neighbor discovery: the VM itself
// has no notion of topology or transport, so this lives entirely outside
// it, per the core's "no neighbor discovery" non-goal.
package topology

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DeviceSpec is one device's entry in a topology file: its id and the
// ids of the devices it can hear from.
type DeviceSpec struct {
	ID        string   `yaml:"id"`
	Neighbors []string `yaml:"neighbors"`
}

// yamlRoot is a single annotated root struct consumed by yaml.Unmarshal,
// keeping the on-disk shape separate from the in-memory Topology.
type yamlRoot struct {
	Devices []DeviceSpec `yaml:"devices"`
}

// Topology is a static, symmetric-or-not neighbor graph: device A
// listing B as a neighbor does not require B to list A.
type Topology struct {
	neighbors map[string][]string
	order     []string
}

// Load reads and parses a topology YAML file.
func Load(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("topology: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a Topology from YAML bytes already in memory, for tests
// that would rather not touch the filesystem.
func Parse(data []byte) (*Topology, error) {
	var root yamlRoot
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("topology: parsing yaml: %w", err)
	}

	t := &Topology{neighbors: make(map[string][]string, len(root.Devices))}
	for _, d := range root.Devices {
		if _, exists := t.neighbors[d.ID]; exists {
			return nil, fmt.Errorf("topology: duplicate device id %q", d.ID)
		}
		neighbors := append([]string(nil), d.Neighbors...)
		sort.Strings(neighbors)
		t.neighbors[d.ID] = neighbors
		t.order = append(t.order, d.ID)
	}
	sort.Strings(t.order)
	return t, nil
}

// DeviceIDs returns every device id in the topology, in ascending order.
func (t *Topology) DeviceIDs() []string {
	return append([]string(nil), t.order...)
}

// NeighborsOf returns id's neighbor list, in ascending order. Returns nil
// if id is not a device in this topology.
func (t *Topology) NeighborsOf(id string) []string {
	ns, ok := t.neighbors[id]
	if !ok {
		return nil
	}
	return append([]string(nil), ns...)
}
