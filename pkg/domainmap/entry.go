package domainmap

import "github.com/yndnr/domainmap/pkg/widehash"

// Entry is a key/value record owned by a Map.
//
// Pointers to an Entry handed out by the iterator stay valid for the life
// of the Map (slots are never moved), but a tombstoned Entry no longer holds
// its key or value.
type Entry[K comparable, V any] struct {
	key        K
	value      V
	hash       widehash.Hash
	tombstoned bool
}

// Key returns the entry's key, or the zero K once tombstoned.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Value returns the entry's value, or the zero V once tombstoned.
func (e *Entry[K, V]) Value() V {
	return e.value
}

// ValueRef returns a pointer to the stored value. Writes through it update
// the entry in place.
func (e *Entry[K, V]) ValueRef() *V {
	return &e.value
}

// Hash returns the hash the entry was stored under.
func (e *Entry[K, V]) Hash() widehash.Hash {
	return e.hash
}

// Live reports whether the entry has not been tombstoned.
func (e *Entry[K, V]) Live() bool {
	return !e.tombstoned
}

// invalidate drops the key and value and marks the slot dead. The hash is
// kept so diagnostics can still tell what used to live here.
func (e *Entry[K, V]) invalidate() {
	var (
		k K
		v V
	)
	e.key = k
	e.value = v
	e.tombstoned = true
}
