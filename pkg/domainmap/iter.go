package domainmap

import (
	"iter"

	"github.com/yndnr/domainmap/pkg/maperr"
)

// Iterator is a cursor over the live entries of a Map, in ascending domain
// order and ascending slot order within a domain.
//
// The end position is (N, N). Begin and Next leave the cursor on a live
// entry or at the end; a cursor obtained from Find may later sit on an entry
// that has since been removed, in which case Entry skips forward.
type Iterator[K comparable, V any] struct {
	m      *Map[K, V]
	domain int
	index  int
}

// Begin returns an iterator at the first live entry, or End() if there is none.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	it := m.End()
	for d, slots := range m.domains {
		if len(slots) > 0 {
			it.domain, it.index = d, 0
			break
		}
	}
	it.settle()
	return it
}

// End returns the end sentinel.
func (m *Map[K, V]) End() Iterator[K, V] {
	n := len(m.domains)
	return Iterator[K, V]{m: m, domain: n, index: n}
}

// Done reports whether the iterator is at the end sentinel.
func (it *Iterator[K, V]) Done() bool {
	return it.domain >= len(it.m.domains)
}

// Position returns the (domain, index) pair of the cursor.
func (it *Iterator[K, V]) Position() (int, int) {
	return it.domain, it.index
}

// Equal reports whether both iterators have the same position.
func (it Iterator[K, V]) Equal(o Iterator[K, V]) bool {
	return it.domain == o.domain && it.index == o.index
}

// Next moves to the next live entry, or to the end.
func (it *Iterator[K, V]) Next() {
	it.advance()
	it.settle()
}

// Entry returns the entry under the cursor, first skipping any tombstones.
// It panics with maperr.ErrDereferenceAtEnd if that reaches the end; callers
// check Done (or compare with End) before dereferencing.
func (it *Iterator[K, V]) Entry() *Entry[K, V] {
	it.settle()
	if it.Done() {
		panic(maperr.ErrDereferenceAtEnd)
	}
	return it.m.domains[it.domain][it.index]
}

// advance moves one slot forward without looking at tombstones. From the
// last slot of a domain it jumps to slot 0 of the next non-empty domain;
// when no such domain exists below N it lands on the end sentinel.
func (it *Iterator[K, V]) advance() {
	if it.Done() {
		return
	}
	if it.index+1 < len(it.m.domains[it.domain]) {
		it.index++
		return
	}
	n := len(it.m.domains)
	for d := it.domain + 1; d < n; d++ {
		if len(it.m.domains[d]) > 0 {
			it.domain, it.index = d, 0
			return
		}
	}
	it.domain, it.index = n, n
}

// settle advances past tombstoned slots.
func (it *Iterator[K, V]) settle() {
	for !it.Done() && it.m.domains[it.domain][it.index].tombstoned {
		it.advance()
	}
}

// All returns an iterator over live key/value pairs in iterator order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.Begin(); !it.Done(); it.Next() {
			e := it.Entry()
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Range calls fn for each live entry in iterator order.
//
// The callback returns false to stop iteration.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for k, v := range m.All() {
		if !fn(k, v) {
			return
		}
	}
}

// Keys returns all live keys in iterator order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Values returns all live values in iterator order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	for _, v := range m.All() {
		values = append(values, v)
	}
	return values
}

// Item is a key/value pair returned by Items.
type Item[K comparable, V any] struct {
	Key   K
	Value V
}

// Items returns all live key/value pairs in iterator order.
func (m *Map[K, V]) Items() []Item[K, V] {
	items := make([]Item[K, V], 0, m.Len())
	for k, v := range m.All() {
		items = append(items, Item[K, V]{Key: k, Value: v})
	}
	return items
}

// RangeWithLimit iterates over at most limit live entries and returns how
// many callbacks returned true.
func (m *Map[K, V]) RangeWithLimit(limit int, fn func(key K, value V) bool) int {
	count := 0
	for k, v := range m.All() {
		if count >= limit {
			return count
		}
		if !fn(k, v) {
			return count
		}
		count++
	}
	return count
}
