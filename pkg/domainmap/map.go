// Package domainmap provides a fixed-shard map keyed by a 128-bit hash.
package domainmap

import (
	"fmt"

	"github.com/yndnr/domainmap/pkg/maperr"
	"github.com/yndnr/domainmap/pkg/widehash"
)

// Map is a hash map split into a fixed number of domains.
//
// A key's hash selects one domain; lookups scan that domain linearly.
// Entries are appended and never moved: Remove tombstones a slot in place.
// Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	domains [][]*Entry[K, V]
	hash    func(K) widehash.Hash
	route   Router
	free    ledger
	live    int
	logger  Logger
}

// New creates a map. An invalid domain count falls back to DefaultDomains,
// a nil hasher or router to the defaults.
func New[K comparable, V any](opts ...Option) *Map[K, V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := defaultOptions()
	if o.domains <= 0 {
		o.domains = d.domains
	}
	if o.hasher == nil {
		o.hasher = d.hasher
	}
	if o.router == nil {
		o.router = d.router
	}
	return newMap[K, V](o, keyHashFunc[K](o.hasher))
}

// NewWithDomains creates a map with n domains and default policies.
func NewWithDomains[K comparable, V any](n int) *Map[K, V] {
	return New[K, V](WithDomains(n))
}

// NewChecked is New but rejects invalid options instead of repairing them.
func NewChecked[K comparable, V any](opts ...Option) (*Map[K, V], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case o.domains <= 0:
		return nil, maperr.ErrInvalidArgument.WithDetailsf("domain count %d", o.domains)
	case o.hasher == nil:
		return nil, maperr.ErrInvalidArgument.WithDetails("nil hasher")
	case o.router == nil:
		return nil, maperr.ErrInvalidArgument.WithDetails("nil router")
	}
	return newMap[K, V](o, keyHashFunc[K](o.hasher)), nil
}

// NewWithHashFunc creates a map that hashes keys with fn directly, bypassing
// the byte-level Hasher. Any WithHasher option is ignored.
func NewWithHashFunc[K comparable, V any](fn func(K) widehash.Hash, opts ...Option) *Map[K, V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.domains <= 0 {
		o.domains = DefaultDomains
	}
	if o.router == nil {
		o.router = FieldRouter
	}
	return newMap[K, V](o, fn)
}

func newMap[K comparable, V any](o options, fn func(K) widehash.Hash) *Map[K, V] {
	return &Map[K, V]{
		domains: make([][]*Entry[K, V], o.domains),
		hash:    fn,
		route:   o.router,
		logger:  o.logger,
	}
}

// domainFor routes h, panicking if the router breaks its contract.
func (m *Map[K, V]) domainFor(h widehash.Hash) int {
	d := m.route(h, len(m.domains))
	if d < 0 || d >= len(m.domains) {
		panic(fmt.Sprintf("domainmap: router returned domain %d for N=%d", d, len(m.domains)))
	}
	return d
}

// lookup returns the key's hash, its domain and the index of the live entry
// holding it, or -1.
func (m *Map[K, V]) lookup(key K) (widehash.Hash, int, int) {
	h := m.hash(key)
	d := m.domainFor(h)
	for i, e := range m.domains[d] {
		if !e.tombstoned && e.hash == h {
			return h, d, i
		}
	}
	return h, d, -1
}

// Set stores value under key, replacing the value of an existing live entry
// in place or appending a new entry to the key's domain.
func (m *Map[K, V]) Set(key K, value V) {
	h, d, i := m.lookup(key)
	if i >= 0 {
		m.domains[d][i].value = value
		return
	}
	m.insert(key, value, h, d)
}

func (m *Map[K, V]) insert(key K, value V, h widehash.Hash, d int) *Entry[K, V] {
	e := &Entry[K, V]{key: key, value: value, hash: h}
	m.domains[d] = append(m.domains[d], e)
	m.live++
	if m.logger != nil {
		m.logger.Debug("entry inserted",
			"domain", d,
			"index", len(m.domains[d])-1,
			"hash", h.String(),
		)
	}
	return e
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, error) {
	_, d, i := m.lookup(key)
	if i < 0 {
		var zero V
		return zero, maperr.ErrKeyNotFound.WithDetailsf("key %v", key)
	}
	return m.domains[d][i].value, nil
}

// Ref returns a pointer to the value stored under key. The pointer is
// borrowed: it must not be used after the key is removed or the map cleared.
func (m *Map[K, V]) Ref(key K) (*V, error) {
	_, d, i := m.lookup(key)
	if i < 0 {
		return nil, maperr.ErrKeyNotFound.WithDetailsf("key %v", key)
	}
	return &m.domains[d][i].value, nil
}

// Remove tombstones the live entry for key and records its slot in the
// free-slot ledger. It reports whether an entry was removed.
func (m *Map[K, V]) Remove(key K) bool {
	_, d, i := m.lookup(key)
	if i < 0 {
		return false
	}
	m.tombstone(d, i)
	return true
}

func (m *Map[K, V]) tombstone(d, i int) {
	m.domains[d][i].invalidate()
	m.free.push(d, i)
	m.live--
	if m.logger != nil {
		m.logger.Debug("entry tombstoned", "domain", d, "index", i)
	}
}

// Contains reports whether a live entry exists for key.
func (m *Map[K, V]) Contains(key K) bool {
	_, _, i := m.lookup(key)
	return i >= 0
}

// Find returns an iterator positioned at key's entry, or End().
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	_, d, i := m.lookup(key)
	if i < 0 {
		return m.End()
	}
	return Iterator[K, V]{m: m, domain: d, index: i}
}

// DomainSize returns the number of slots, tombstones included, in a domain.
func (m *Map[K, V]) DomainSize(domain int) (int, error) {
	if domain < 0 || domain >= len(m.domains) {
		return 0, maperr.ErrIndexOutOfRange.WithDetailsf("domain %d, have %d", domain, len(m.domains))
	}
	return len(m.domains[domain]), nil
}

// TotalSize returns the number of slots, tombstones included, across all domains.
func (m *Map[K, V]) TotalSize() int {
	total := 0
	for _, d := range m.domains {
		total += len(d)
	}
	return total
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int {
	return m.live
}

// Tombstones returns the number of tombstoned slots.
func (m *Map[K, V]) Tombstones() int {
	return m.free.len()
}

// Domains returns N.
func (m *Map[K, V]) Domains() int {
	return len(m.domains)
}

// HashOf returns the hash the map computes for key.
func (m *Map[K, V]) HashOf(key K) widehash.Hash {
	return m.hash(key)
}

// DomainOf returns the domain key routes to.
func (m *Map[K, V]) DomainOf(key K) int {
	return m.domainFor(m.hash(key))
}

// FreeSlots returns the free-slot ledger, most recently released first.
func (m *Map[K, V]) FreeSlots() []FreeSlot {
	return m.free.snapshot()
}

// LastFreed returns the most recently released slot.
func (m *Map[K, V]) LastFreed() (FreeSlot, bool) {
	return m.free.peek()
}

// Clear drops every entry and the ledger. Outstanding iterators and value
// references become invalid.
func (m *Map[K, V]) Clear() {
	for i := range m.domains {
		m.domains[i] = nil
	}
	m.free.reset()
	m.live = 0
}

// DomainStats describes one domain.
type DomainStats struct {
	Domain     int `json:"domain" yaml:"domain"`
	Entries    int `json:"entries" yaml:"entries"`
	Live       int `json:"live" yaml:"live"`
	Tombstones int `json:"tombstones" yaml:"tombstones"`
}

// Stats returns per-domain slot counts.
func (m *Map[K, V]) Stats() []DomainStats {
	stats := make([]DomainStats, len(m.domains))
	for i, d := range m.domains {
		live := 0
		for _, e := range d {
			if !e.tombstoned {
				live++
			}
		}
		stats[i] = DomainStats{
			Domain:     i,
			Entries:    len(d),
			Live:       live,
			Tombstones: len(d) - live,
		}
	}
	return stats
}
