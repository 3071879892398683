package program

import (
	"github.com/rs/xid"
	"github.com/sarchlab/aggre/field"
	"github.com/sarchlab/aggre/ident"
	"github.com/sarchlab/aggre/vm"
)

// Elect runs one round of leader election: every device converges on the
// smallest device id reachable through the network. localID is the
// device's own identity; Elect shares it and folds in whatever the
// smallest id seen so far was, so after the network's diameter worth of
// rounds every connected device agrees on the same leader.
func Elect(localID xid.ID, v *vm.VM[xid.ID]) (xid.ID, error) {
	return vm.Share(v, localID, func(_ *vm.VM[xid.ID], f field.Field[xid.ID, xid.ID]) xid.ID {
		return field.MinBy(f, func(a, b xid.ID) int { return a.Compare(b) })
	})
}

// IsLeader reports whether candidate is the device's own id, i.e.
// whether this device has converged to believing itself the leader.
func IsLeader[Id ident.Id[Id]](localID, candidate Id) bool {
	return localID.Compare(candidate) == 0
}
