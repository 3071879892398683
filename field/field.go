// Package field implements the Field abstraction: a value indexed by
// neighbor identity with a local default, supporting pointwise combination
// restricted to neighbors that were aligned on the same path.
package field

import (
	"sort"

	"github.com/sarchlab/aggre/ident"
)

type entry[Id any, V any] struct {
	id    Id
	value V
}

// Field is a local value (Default) plus values supplied by neighbors that
// reached the same aligned point (overrides). The local device's id is
// never a key of overrides. Field has no side effects and no knowledge of
// the VM or network.
type Field[Id ident.Id[Id], V any] struct {
	Default   V
	overrides []entry[Id, V]
}

// New builds a Field from a default value and a set of neighbor overrides.
// The overrides are sorted once, by Id, so every later iteration over the
// field is deterministic.
func New[Id ident.Id[Id], V any](def V, overrides map[Id]V) Field[Id, V] {
	es := make([]entry[Id, V], 0, len(overrides))
	for id, v := range overrides {
		es = append(es, entry[Id, V]{id: id, value: v})
	}
	sort.Slice(es, func(i, j int) bool { return es[i].id.Compare(es[j].id) < 0 })
	return Field[Id, V]{Default: def, overrides: es}
}

// Local returns the field's local (default) value.
func (f Field[Id, V]) Local() V { return f.Default }

// Size returns 1 (the local value) plus the number of neighbor overrides.
func (f Field[Id, V]) Size() int { return 1 + len(f.overrides) }

// Overrides returns a copy of the neighbor->value mapping.
func (f Field[Id, V]) Overrides() map[Id]V {
	out := make(map[Id]V, len(f.overrides))
	for _, e := range f.overrides {
		out[e.id] = e.value
	}
	return out
}

// Ids returns the neighbor ids present in this field's overrides, in
// ascending order.
func (f Field[Id, V]) Ids() []Id {
	out := make([]Id, len(f.overrides))
	for i, e := range f.overrides {
		out[i] = e.id
	}
	return out
}

// AlignedMap combines two fields pointwise. The result's default is
// transform(this.Default, other.Default); its overrides contain exactly
// the keys present in both input overrides (set intersection) — the
// propagation of the alignment discipline into data.
func AlignedMap[Id ident.Id[Id], V1, V2, O any](f Field[Id, V1], other Field[Id, V2], transform func(V1, V2) O) Field[Id, O] {
	result := Field[Id, O]{Default: transform(f.Default, other.Default)}

	i, j := 0, 0
	for i < len(f.overrides) && j < len(other.overrides) {
		switch c := f.overrides[i].id.Compare(other.overrides[j].id); {
		case c == 0:
			result.overrides = append(result.overrides, entry[Id, O]{
				id:    f.overrides[i].id,
				value: transform(f.overrides[i].value, other.overrides[j].value),
			})
			i++
			j++
		case c < 0:
			i++
		default:
			j++
		}
	}
	return result
}

// Fold accumulates over the default value and every override, in id
// order, starting from the local default.
func Fold[Id ident.Id[Id], V, Acc any](f Field[Id, V], init Acc, combine func(Acc, V) Acc) Acc {
	acc := combine(init, f.Default)
	for _, e := range f.overrides {
		acc = combine(acc, e.value)
	}
	return acc
}

// MinBy returns the value minimizing cmp across the default and every
// override; ties (cmp == 0) favor the earlier iteration order, i.e. the
// value already held is kept.
func MinBy[Id ident.Id[Id], V any](f Field[Id, V], cmp func(a, b V) int) V {
	best := f.Default
	for _, e := range f.overrides {
		if cmp(e.value, best) < 0 {
			best = e.value
		}
	}
	return best
}

// MaxBy returns the value maximizing cmp across the default and every
// override; ties favor the earlier iteration order.
func MaxBy[Id ident.Id[Id], V any](f Field[Id, V], cmp func(a, b V) int) V {
	best := f.Default
	for _, e := range f.overrides {
		if cmp(e.value, best) > 0 {
			best = e.value
		}
	}
	return best
}
