// Package ordered provides the occupied/vacant entry pattern shared by
// the attribute and namespace map views.
//
// It is adapted from droyo-go-xml's internal/ordered package, which
// gave deterministic traversal over plain Go maps via a Keys() method
// and a lexically sorted RangeMap walk. The attribute/namespace maps
// here are not backed by Go maps at all -- they are views over a
// slice of arena children whose order already is the deterministic,
// caller-meaningful order (spec.md §4.6) -- so there is nothing to
// sort. What carries over from the teacher's package is the idea of a
// small interface decoupling "a deterministic ordered collection" from
// its storage; this package narrows that idea to the entry API
// (Occupied/Vacant, OrInsert, OrInsertWith, AndModify) spec.md asks
// the maps to support, backed by any type implementing Backing.
package ordered

// Backing is the minimal interface an ordered map view must provide
// for the Entry API to work against it.
type Backing[K comparable, V any] interface {
	Get(key K) (V, bool)
	Put(key K, value V)
}

// Entry represents a single key's slot in a Backing collection: either
// Occupied (the key is present, carrying its current value) or Vacant
// (the key is absent).
type Entry[K comparable, V any] struct {
	backing  Backing[K, V]
	key      K
	value    V
	occupied bool
}

// Get looks up key in backing and returns its Entry.
func Get[K comparable, V any](backing Backing[K, V], key K) Entry[K, V] {
	v, ok := backing.Get(key)
	return Entry[K, V]{backing: backing, key: key, value: v, occupied: ok}
}

// Occupied reports whether the entry's key is already present.
func (e Entry[K, V]) Occupied() bool { return e.occupied }

// Value returns the entry's current value and whether it was occupied.
func (e Entry[K, V]) Value() (V, bool) { return e.value, e.occupied }

// OrInsert returns the entry's existing value if occupied, or inserts
// and returns v otherwise.
func (e Entry[K, V]) OrInsert(v V) V {
	if e.occupied {
		return e.value
	}
	e.backing.Put(e.key, v)
	return v
}

// OrInsertWith is like OrInsert, but only computes the value to insert
// on a miss.
func (e Entry[K, V]) OrInsertWith(f func() V) V {
	if e.occupied {
		return e.value
	}
	v := f()
	e.backing.Put(e.key, v)
	return v
}

// AndModify calls f with the entry's current value if occupied, and
// writes the result back. It is a no-op on a vacant entry, and returns
// the (possibly updated) entry so calls can chain into OrInsert.
func (e Entry[K, V]) AndModify(f func(V) V) Entry[K, V] {
	if !e.occupied {
		return e
	}
	e.value = f(e.value)
	e.backing.Put(e.key, e.value)
	return e
}
