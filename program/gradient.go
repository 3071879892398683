// Package program holds example aggregate programs built purely from
// the vm and field primitives: a distance gradient, a leader election,
// and a majority-consensus counter.
package program

import (
	"github.com/sarchlab/aggre/field"
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/vm"
)

// Unreachable stands in for "no known path to a source yet". It is
// small enough that repeatedly adding 1 to it, round after round,
// never overflows an int.
const Unreachable = 1 << 30

func addCapped(a, b int) int {
	if a >= Unreachable {
		return Unreachable
	}
	return a + b
}

// Gradient computes, per device, the hop-count distance to the nearest
// device for which isSource is true — the classic aggregate-computing
// gradient, following the structure of a reference gradient.rs example.
// Each round every device shares its current estimate; the next estimate
// is 0 at a source, otherwise one more than the smallest of its own
// previous estimate and the estimates heard from its neighbors.
func Gradient[Id ident.Id[Id]](isSource bool, v *vm.VM[Id]) (int, error) {
	return vm.Share(v, Unreachable, func(_ *vm.VM[Id], f field.Field[Id, int]) int {
		if isSource {
			return 0
		}

		ones := make(map[Id]int, len(f.Ids()))
		for _, id := range f.Ids() {
			ones[id] = 1
		}
		incremented := field.AlignedMap(f, field.New(1, ones), addCapped)
		return field.MinBy(incremented, func(a, b int) int { return a - b })
	})
}
