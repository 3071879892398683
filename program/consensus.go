package program

import (
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/vm"
)

// Consensus converges every device to the majority boolean value
// observed across the network: each round a device broadcasts its
// current belief via neighboring, counts true vs. false among its
// neighbors (including its own belief), and adopts whichever is more
// common, breaking ties by keeping its current belief. repeat carries
// the belief across rounds; neighboring is what lets a device see the
// beliefs its neighbors emitted on their last round. Converges within the
// network's diameter for a sufficiently skewed initial distribution;
// it is not guaranteed to converge for an exact 50/50 split.
func Consensus[Id ident.Id[Id]](initialBelief bool, v *vm.VM[Id]) (bool, error) {
	var neighborErr error
	belief := vm.Repeat(v, initialBelief, func(prev bool, vv *vm.VM[Id]) bool {
		f, err := vm.Neighboring(vv, prev)
		if err != nil {
			neighborErr = err
			return prev
		}

		trueCount, falseCount := 0, 0
		if f.Default {
			trueCount++
		} else {
			falseCount++
		}
		for _, belief := range f.Overrides() {
			if belief {
				trueCount++
			} else {
				falseCount++
			}
		}

		switch {
		case trueCount > falseCount:
			return true
		case falseCount > trueCount:
			return false
		default:
			return prev
		}
	})
	return belief, neighborErr
}

// AgreesWithMajority demonstrates branch projection: each device reports
// how many like-minded devices it can see, itself included, routing the neighboring call
// for "agrees with the majority" and "disagrees" devices onto disjoint
// paths so each only ever hears from peers on the same side.
func AgreesWithMajority[Id ident.Id[Id]](belief, majority bool, v *vm.VM[Id]) (int, error) {
	var callErr error
	size := vm.Branch(v, belief == majority,
		func(vv *vm.VM[Id]) int {
			f, err := vm.Neighboring(vv, 1)
			if err != nil {
				callErr = err
				return 0
			}
			return f.Size()
		},
		func(vv *vm.VM[Id]) int {
			f, err := vm.Neighboring(vv, 1)
			if err != nil {
				callErr = err
				return 0
			}
			return f.Size()
		},
	)
	return size, callErr
}
